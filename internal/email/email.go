package email

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// Message is one outbound notification. HTML is sent as-is.
type Message struct {
	To       string
	Subject  string
	HTML     string
	Category string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Welcome builds the notification sent after a seller registers. Names come
// from the request body and are escaped before landing in HTML.
func Welcome(firstName, lastName, addr string) Message {
	return Message{
		To:      addr,
		Subject: "Welcome to the catalog",
		HTML: fmt.Sprintf(
			"<p>Hello %s %s,</p><p>your seller account is ready. Sign in with %s to start listing books.</p>",
			html.EscapeString(firstName), html.EscapeString(lastName), html.EscapeString(addr),
		),
		Category: "seller_welcome",
	}
}

// LogSender writes messages to the log instead of delivering them. Used in ENV=local.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger.With("component", "email")}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.InfoContext(ctx, "email not delivered (local)",
		"to", msg.To, "subject", msg.Subject, "category", msg.Category)
	return nil
}

// ResendSender delivers through the Resend API. Used in staging/production.
type ResendSender struct {
	client *resend.Client
	from   string
}

func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	if msg.Category != "" {
		params.Tags = []resend.Tag{{Name: "category", Value: msg.Category}}
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send %s email: %w", msg.Category, err)
	}
	return nil
}

// NewSender returns a LogSender for ENV=local, ResendSender otherwise.
func NewSender(env, apiKey, from string, logger *slog.Logger) Sender {
	if env == "local" {
		return NewLogSender(logger)
	}
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}
