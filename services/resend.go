package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rpupo63/developer-portfolio-backend/config"
	"github.com/rs/zerolog/log"
)

const defaultResendBaseURL = "https://api.resend.com"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// ResendEmail sends notifications through the Resend HTTP API.
type ResendEmail struct {
	apiKey     string
	from       string
	recipients []string
	baseURL    string
	client     *http.Client
}

func NewResendEmail(apiKey, from string, recipients []string, baseURL string) *ResendEmail {
	if baseURL == "" {
		baseURL = defaultResendBaseURL
	}
	return &ResendEmail{
		apiKey:     apiKey,
		from:       from,
		recipients: recipients,
		baseURL:    baseURL,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// NewResendFromConfig returns false when RESEND_API_KEY, RESEND_FROM_EMAIL
// or NOTIFY_EMAIL_TO is missing.
func NewResendFromConfig(cfg map[string]string) (*ResendEmail, bool) {
	apiKey := config.GetString(cfg, "RESEND_API_KEY", "")
	from := config.GetString(cfg, "RESEND_FROM_EMAIL", "")
	to := config.GetStrings(cfg, "NOTIFY_EMAIL_TO", nil)
	if apiKey == "" || from == "" || len(to) == 0 {
		return nil, false
	}
	return NewResendEmail(apiKey, from, to, config.GetString(cfg, "RESEND_BASE_URL", "")), true
}

func (r *ResendEmail) Name() string {
	return "resend"
}

func (r *ResendEmail) Send(ctx context.Context, n Notification) error {
	return r.SendEmail(ctx, n.Subject, n.HTML, n.Text)
}

// SendEmail posts one email to the Resend API
func (r *ResendEmail) SendEmail(ctx context.Context, subject, htmlBody, textBody string) error {
	if len(r.recipients) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	payload := ResendEmailRequest{
		From:    r.from,
		To:      r.recipients,
		Subject: subject,
		Html:    htmlBody,
		Text:    textBody,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/emails", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}

	return nil
}
