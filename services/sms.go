package services

import (
	"context"
	"fmt"

	"github.com/rpupo63/developer-portfolio-backend/config"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMS bodies are cut to one concatenated message.
const maxSMSLength = 320

// messageCreator is the part of the Twilio API used here.
type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// TwilioSMS texts a short notification through Twilio.
type TwilioSMS struct {
	api        messageCreator
	from       string
	recipients []string
}

func NewTwilioSMS(api messageCreator, from string, recipients []string) *TwilioSMS {
	return &TwilioSMS{api: api, from: from, recipients: recipients}
}

// NewSMSFromConfig returns false unless TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN,
// TWILIO_FROM_NUMBER and NOTIFY_SMS_TO are all set.
func NewSMSFromConfig(cfg map[string]string) (*TwilioSMS, bool) {
	sid := config.GetString(cfg, "TWILIO_ACCOUNT_SID", "")
	token := config.GetString(cfg, "TWILIO_AUTH_TOKEN", "")
	from := config.GetString(cfg, "TWILIO_FROM_NUMBER", "")
	to := config.GetStrings(cfg, "NOTIFY_SMS_TO", nil)
	if sid == "" || token == "" || from == "" || len(to) == 0 {
		return nil, false
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: sid,
		Password: token,
	})
	return NewTwilioSMS(client.Api, from, to), true
}

func (s *TwilioSMS) Name() string {
	return "sms"
}

func (s *TwilioSMS) Send(ctx context.Context, n Notification) error {
	body := truncateRunes(n.Subject+"\n\n"+n.Text, maxSMSLength)

	for _, to := range s.recipients {
		if err := ctx.Err(); err != nil {
			return err
		}

		params := &openapi.CreateMessageParams{}
		params.SetTo(to)
		params.SetFrom(s.from)
		params.SetBody(body)

		resp, err := s.api.CreateMessage(params)
		if err != nil {
			return fmt.Errorf("twilio send to %s: %w", to, err)
		}
		if resp != nil && resp.Sid != nil {
			log.Debug().Str("sid", *resp.Sid).Msg("Sent SMS via Twilio")
		}
	}
	return nil
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
