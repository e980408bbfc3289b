package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rpupo63/developer-portfolio-backend/models"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type recordingChannel struct {
	name string
	err  error

	mu   sync.Mutex
	sent []Notification
}

func (c *recordingChannel) Name() string { return c.name }

func (c *recordingChannel) Send(ctx context.Context, n Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, n)
	return c.err
}

func testMessage() models.ContactMessage {
	subject := "Hiring"
	return models.ContactMessage{
		ID:      1,
		Name:    "Jane <Smith>",
		Email:   "jane.smith@example.com",
		Subject: &subject,
		Message: "Hello\nthere",
	}
}

func TestContactNotificationEscapesHTML(t *testing.T) {
	n := ContactNotification(testMessage())

	if n.Subject != "New contact message from Jane <Smith>: Hiring" {
		t.Fatalf("subject = %q", n.Subject)
	}
	if strings.Contains(n.HTML, "<Smith>") || !strings.Contains(n.HTML, "&lt;Smith&gt;") {
		t.Fatalf("html not escaped: %s", n.HTML)
	}
	if !strings.Contains(n.HTML, "Hello<br>there") {
		t.Fatalf("newlines not converted: %s", n.HTML)
	}
	if !strings.Contains(n.Text, "jane.smith@example.com") {
		t.Fatalf("text = %q", n.Text)
	}
}

func TestNotifyEverywhereAttemptsAllChannels(t *testing.T) {
	ok := &recordingChannel{name: "ok"}
	broken := &recordingChannel{name: "broken", err: errors.New("boom")}
	notifier := NewNotifyEverywhere(time.Second, ok, broken)

	err := notifier.NotifyContactMessage(context.Background(), testMessage())
	if err == nil || !strings.Contains(err.Error(), "broken: boom") {
		t.Fatalf("expected combined error, got %v", err)
	}
	if len(ok.sent) != 1 || len(broken.sent) != 1 {
		t.Fatalf("channels not all attempted: ok=%d broken=%d", len(ok.sent), len(broken.sent))
	}
}

func TestNotifyEverywhereWithoutChannels(t *testing.T) {
	if err := NewNotifyEverywhere(time.Second).NotifyContactMessage(context.Background(), testMessage()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewNotifierFromConfig(t *testing.T) {
	notifier := NewNotifierFromConfig(map[string]string{
		"RESEND_API_KEY":     "re_test",
		"RESEND_FROM_EMAIL":  "Portfolio <noreply@example.com>",
		"NOTIFY_EMAIL_TO":    "me@example.com",
		"SMTP_HOST":          "smtp.example.com",
		"TWILIO_ACCOUNT_SID": "AC123",
	})

	var names []string
	for _, c := range notifier.Channels() {
		names = append(names, c.Name())
	}
	if len(names) != 1 || names[0] != "resend" {
		t.Fatalf("channels = %v", names)
	}
}

func TestResendSendEmail(t *testing.T) {
	var got ResendEmailRequest
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emails" {
			http.NotFound(w, r)
			return
		}
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Write([]byte(`{"id":"email_1"}`))
	}))
	defer server.Close()

	resend := NewResendEmail("re_test", "noreply@example.com", []string{"me@example.com"}, server.URL)
	if err := resend.Send(context.Background(), ContactNotification(testMessage())); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if auth != "Bearer re_test" {
		t.Fatalf("authorization = %q", auth)
	}
	if got.From != "noreply@example.com" || len(got.To) != 1 || got.To[0] != "me@example.com" {
		t.Fatalf("request = %+v", got)
	}
	if !strings.HasPrefix(got.Subject, "New contact message") || got.Html == "" || got.Text == "" {
		t.Fatalf("request = %+v", got)
	}
}

func TestResendReportsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer server.Close()

	resend := NewResendEmail("re_test", "bad", []string{"me@example.com"}, server.URL)
	err := resend.SendEmail(context.Background(), "s", "<p>b</p>", "b")
	if err == nil || !strings.Contains(err.Error(), "invalid from address") {
		t.Fatalf("expected API error, got %v", err)
	}
}

func TestSMTPMessage(t *testing.T) {
	smtp, ok := NewSMTPFromConfig(map[string]string{
		"SMTP_HOST":       "smtp.example.com",
		"SMTP_FROM":       "noreply@example.com",
		"NOTIFY_EMAIL_TO": "me@example.com, you@example.com",
	})
	if !ok {
		t.Fatal("smtp not enabled")
	}

	var buf bytes.Buffer
	if _, err := smtp.message(ContactNotification(testMessage())).WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	raw := buf.String()
	for _, want := range []string{"From: noreply@example.com", "me@example.com", "you@example.com", "text/html", "text/plain"} {
		if !strings.Contains(raw, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

type fakeTwilio struct {
	params []*openapi.CreateMessageParams
	err    error
}

func (f *fakeTwilio) CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error) {
	f.params = append(f.params, params)
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM123"
	return &openapi.ApiV2010Message{Sid: &sid}, nil
}

func TestTwilioSMSSend(t *testing.T) {
	api := &fakeTwilio{}
	sms := NewTwilioSMS(api, "+15550000", []string{"+15551111", "+15552222"})

	long := Notification{Subject: "s", Text: strings.Repeat("é", 1000)}
	if err := sms.Send(context.Background(), long); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(api.params) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(api.params))
	}
	first := api.params[0]
	if *first.To != "+15551111" || *first.From != "+15550000" {
		t.Fatalf("params = %+v", first)
	}
	if n := len([]rune(*first.Body)); n != maxSMSLength {
		t.Fatalf("body length = %d", n)
	}
}

func TestTwilioSMSError(t *testing.T) {
	sms := NewTwilioSMS(&fakeTwilio{err: errors.New("unverified number")}, "+1", []string{"+2"})
	if err := sms.Send(context.Background(), Notification{Subject: "s"}); err == nil {
		t.Fatal("expected error")
	}
}
