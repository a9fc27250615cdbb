package ports

import (
	"context"
	"errors"

	"github.com/johnmikes100/concierge/internal/domain"
	"github.com/johnmikes100/concierge/internal/survey"
)

// ErrSessionNotFound is returned by a SessionStore when no session has the id.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists in-progress survey sessions between requests.
type SessionStore interface {
	CreateSession(ctx context.Context, id string, snap survey.Snapshot) error
	GetSession(ctx context.Context, id string) (survey.Snapshot, error)
	SaveSession(ctx context.Context, id string, snap survey.Snapshot) error
	DeleteSession(ctx context.Context, id string) error
}

// Mailer is the email collaborator. Send returns the provider message id.
type Mailer interface {
	Send(ctx context.Context, e domain.Email) (string, error)
}

// SubmissionService is the Submission Handler. Deliver is Submit without
// the per-operation report, for callers that only need success or failure.
type SubmissionService interface {
	survey.Submitter
	Submit(ctx context.Context, s domain.Submission) (domain.DeliveryReport, error)
}
