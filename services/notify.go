package services

import (
	"context"
	"fmt"
	"html"
	"strings"
	"sync"
	"time"

	"github.com/rpupo63/developer-portfolio-backend/config"
	"github.com/rpupo63/developer-portfolio-backend/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Notification is the channel-neutral content of an alert.
type Notification struct {
	Subject string
	Text    string
	HTML    string
}

// Channel delivers a notification over one transport.
type Channel interface {
	Name() string
	Send(ctx context.Context, n Notification) error
}

// Notifier announces new contact messages.
type Notifier interface {
	NotifyContactMessage(ctx context.Context, msg models.ContactMessage) error
}

// NotifyEverywhere fans a notification out to every configured channel.
type NotifyEverywhere struct {
	channels []Channel
	timeout  time.Duration
}

func NewNotifyEverywhere(timeout time.Duration, channels ...Channel) *NotifyEverywhere {
	return &NotifyEverywhere{channels: channels, timeout: timeout}
}

// NewNotifierFromConfig enables each channel whose settings are present:
//
//	Resend: RESEND_API_KEY, RESEND_FROM_EMAIL, NOTIFY_EMAIL_TO
//	SMTP:   SMTP_HOST, SMTP_FROM, NOTIFY_EMAIL_TO
//	SMS:    TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN, TWILIO_FROM_NUMBER, NOTIFY_SMS_TO
func NewNotifierFromConfig(cfg map[string]string) *NotifyEverywhere {
	var channels []Channel

	if resend, ok := NewResendFromConfig(cfg); ok {
		channels = append(channels, resend)
	}
	if smtp, ok := NewSMTPFromConfig(cfg); ok {
		channels = append(channels, smtp)
	}
	if sms, ok := NewSMSFromConfig(cfg); ok {
		channels = append(channels, sms)
	}

	names := make([]string, 0, len(channels))
	for _, c := range channels {
		names = append(names, c.Name())
	}
	log.Info().Strs("channels", names).Msg("Contact notifications configured")

	timeout := time.Duration(config.GetInt(cfg, "NOTIFY_TIMEOUT_SECONDS", 10)) * time.Second
	return NewNotifyEverywhere(timeout, channels...)
}

func (n *NotifyEverywhere) Channels() []Channel {
	return n.channels
}

func (n *NotifyEverywhere) NotifyContactMessage(ctx context.Context, msg models.ContactMessage) error {
	return n.Send(ctx, ContactNotification(msg))
}

// Send delivers to all channels concurrently. Every channel is attempted even
// if others fail; the returned error lists each failure.
func (n *NotifyEverywhere) Send(ctx context.Context, notification Notification) error {
	if len(n.channels) == 0 {
		return nil
	}

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	var (
		mu        sync.Mutex
		failures  []string
		successes []string
	)

	var g errgroup.Group
	for _, channel := range n.channels {
		channel := channel // per-iteration copy (go.mod targets Go 1.21 loop semantics)
		g.Go(func() error {
			err := channel.Send(ctx, notification)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Error().Err(err).Str("channel", channel.Name()).Msg("Failed to send notification")
				failures = append(failures, fmt.Sprintf("%s: %v", channel.Name(), err))
				return nil
			}
			successes = append(successes, channel.Name())
			return nil
		})
	}
	_ = g.Wait()

	if len(successes) > 0 {
		log.Info().Strs("channels", successes).Msg("Notification sent")
	}
	if len(failures) > 0 {
		return fmt.Errorf("some channels failed: %s", strings.Join(failures, "; "))
	}
	return nil
}

// ContactNotification renders a contact message for delivery.
func ContactNotification(msg models.ContactMessage) Notification {
	subject := "New contact message from " + msg.Name
	if msg.Subject != nil && *msg.Subject != "" {
		subject = fmt.Sprintf("%s: %s", subject, *msg.Subject)
	}

	text := fmt.Sprintf("From: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Message)
	body := fmt.Sprintf("<p><strong>From:</strong> %s &lt;%s&gt;</p><p>%s</p>",
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>"),
	)

	return Notification{Subject: subject, Text: text, HTML: body}
}
