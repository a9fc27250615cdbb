// Package resend delivers Concierge emails through the Resend API.
package resend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/johnmikes100/concierge/internal/domain"
)

const defaultTimeout = 10 * time.Second

// Config holds the credential and transport settings. An empty or invalid
// APIKey is not rejected here; Resend reports it on the first send.
type Config struct {
	APIKey  string
	Timeout time.Duration
	BaseURL string // override for tests; must end in "/"
}

// Mailer satisfies ports.Mailer.
type Mailer struct {
	client *resend.Client
}

func New(cfg Config) (*Mailer, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := resend.NewCustomClient(&http.Client{Timeout: timeout}, cfg.APIKey)
	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("resend base url: %w", err)
		}
		client.BaseURL = u
	}
	return &Mailer{client: client}, nil
}

// Send issues one email and returns the Resend message id.
func (m *Mailer) Send(ctx context.Context, e domain.Email) (string, error) {
	req := &resend.SendEmailRequest{
		From:    e.From,
		To:      e.To,
		Subject: e.Subject,
		Html:    e.HTML,
	}
	for _, a := range e.Attachments {
		req.Attachments = append(req.Attachments, &resend.Attachment{
			Filename: a.Filename,
			Content:  a.Content,
		})
	}
	sent, err := m.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return "", fmt.Errorf("resend: %w", err)
	}
	return sent.Id, nil
}
