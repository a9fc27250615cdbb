// Package submission turns a completed AnswerSet into the two Concierge
// emails: a confirmation to the customer and an itemized notification to the
// team.
package submission

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/johnmikes100/concierge/internal/adapters/pdf"
	"github.com/johnmikes100/concierge/internal/domain"
	"github.com/johnmikes100/concierge/internal/ports"
	"github.com/johnmikes100/concierge/internal/templates"
)

// Send operations, in the order they are issued.
const (
	OpCustomerConfirmation = "customer-confirmation"
	OpInternalNotification = "internal-notification"
)

const (
	confirmationSubject = "We received your Concierge request"
	summaryFilename     = "concierge-request.pdf"
)

// Config is everything the service needs besides the mailer. It is passed in
// at construction; the service never reads the environment.
type Config struct {
	From             string // e.g. "Concierge <onboarding@resend.dev>"
	AdminAddress     string // internal notification recipient
	AttachSummaryPDF bool
}

type Service struct {
	cfg    Config
	mailer ports.Mailer
}

func New(cfg Config, mailer ports.Mailer) *Service {
	return &Service{cfg: cfg, mailer: mailer}
}

type operation struct {
	name      string
	recipient string
	build     func(ctx context.Context) (domain.Email, error)
}

// Submit issues both send operations sequentially, each awaited before the
// next. A failed operation does not stop the next one and nothing already
// sent is undone. The returned error joins every failed operation; the report
// accounts for each one either way.
func (s *Service) Submit(ctx context.Context, sub domain.Submission) (domain.DeliveryReport, error) {
	var (
		report domain.DeliveryReport
		errs   []error
	)
	for _, op := range s.operations(sub) {
		d := domain.Delivery{Operation: op.name, Recipient: op.recipient}
		email, err := op.build(ctx)
		if err == nil {
			d.MessageID, err = s.mailer.Send(ctx, email)
		}
		if err != nil {
			d.Err = err
			errs = append(errs, fmt.Errorf("%s: %w", op.name, err))
			slog.Error("email send failed", "operation", op.name, "to", op.recipient, "err", err)
		} else {
			slog.Info("email sent", "operation", op.name, "to", op.recipient, "id", d.MessageID)
		}
		report.Deliveries = append(report.Deliveries, d)
	}
	if report.Partial() {
		for _, d := range report.Deliveries {
			if d.Err == nil {
				slog.Warn("partial delivery: operation already sent", "operation", d.Operation, "to", d.Recipient)
			}
		}
	}
	return report, errors.Join(errs...)
}

// Deliver satisfies survey.Submitter for in-process submissions.
func (s *Service) Deliver(ctx context.Context, sub domain.Submission) error {
	_, err := s.Submit(ctx, sub)
	return err
}

func (s *Service) operations(sub domain.Submission) []operation {
	return []operation{
		{
			name:      OpCustomerConfirmation,
			recipient: sub.Email,
			build: func(ctx context.Context) (domain.Email, error) {
				return s.confirmation(ctx, sub)
			},
		},
		{
			name:      OpInternalNotification,
			recipient: s.cfg.AdminAddress,
			build: func(ctx context.Context) (domain.Email, error) {
				return s.notification(ctx, sub)
			},
		},
	}
}

func (s *Service) confirmation(ctx context.Context, sub domain.Submission) (domain.Email, error) {
	html, err := templates.RenderString(ctx, templates.ConfirmationEmail(templates.ConfirmationView{FullName: sub.FullName}))
	if err != nil {
		return domain.Email{}, fmt.Errorf("render confirmation: %w", err)
	}
	return domain.Email{
		From:    s.cfg.From,
		To:      []string{sub.Email},
		Subject: confirmationSubject,
		HTML:    html,
	}, nil
}

func (s *Service) notification(ctx context.Context, sub domain.Submission) (domain.Email, error) {
	rows := notificationRows(sub)
	html, err := templates.RenderString(ctx, templates.NotificationEmail(templates.NotificationView{Rows: rows}))
	if err != nil {
		return domain.Email{}, fmt.Errorf("render notification: %w", err)
	}
	email := domain.Email{
		From:    s.cfg.From,
		To:      []string{s.cfg.AdminAddress},
		Subject: NotificationSubject(sub),
		HTML:    html,
	}
	if s.cfg.AttachSummaryPDF {
		fields := make([]pdf.Field, len(rows))
		for i, r := range rows {
			fields[i] = pdf.Field{Label: r.Label, Value: r.Value}
		}
		var buf bytes.Buffer
		if err := pdf.GenerateSummary("New Event Request", fields, &buf); err != nil {
			return domain.Email{}, fmt.Errorf("render summary pdf: %w", err)
		}
		email.Attachments = []domain.Attachment{{Filename: summaryFilename, Content: buf.Bytes()}}
	}
	return email, nil
}

// NotificationSubject is the internal notification's subject line.
func NotificationSubject(sub domain.Submission) string {
	return fmt.Sprintf("New Concierge Request from %s at %s", sub.FullName, sub.CompanyName)
}
