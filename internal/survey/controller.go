package survey

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/johnmikes100/concierge/internal/domain"
)

// DefaultTransitionDelay is how long a navigation takes to settle.
const DefaultTransitionDelay = 500 * time.Millisecond

// FailureNotice is shown on the last question after a failed submission.
const FailureNotice = "Something went wrong. Please try again."

var (
	ErrWrongPhase    = errors.New("action not allowed in current phase")
	ErrTransitioning = errors.New("navigation in progress")
	ErrNotAnswered   = errors.New("current question is not answered")
	ErrAtFirstStep   = errors.New("already at the first question")
	ErrWrongKind     = errors.New("action does not apply to this question kind")
	ErrUnknownChoice = errors.New("unknown choice")
	ErrDateInPast    = errors.New("date is earlier than today")
)

// Phase is the controller state. Submitted is terminal.
type Phase string

const (
	PhaseLanding    Phase = "landing"
	PhaseInProgress Phase = "in-progress"
	PhaseSubmitting Phase = "submitting"
	PhaseSubmitted  Phase = "submitted"
)

// Direction of the last navigation. Presentational only.
type Direction string

const (
	Forward Direction = "forward"
	Back    Direction = "back"
)

// Submitter delivers a completed AnswerSet to the submission handler.
type Submitter interface {
	Deliver(ctx context.Context, s domain.Submission) error
}

// Snapshot is the serializable state of a Controller.
type Snapshot struct {
	Phase       Phase          `json:"phase"`
	Step        int            `json:"step"`
	Direction   Direction      `json:"direction"`
	Answers     domain.Answers `json:"answers"`
	SettleUntil time.Time      `json:"settle_until"`
	Notice      string         `json:"notice,omitempty"`
}

type Option func(*Controller)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithTransitionDelay sets the settle window opened by each navigation.
func WithTransitionDelay(d time.Duration) Option {
	return func(c *Controller) { c.delay = d }
}

// Controller owns one survey session: the current step, the AnswerSet and
// the navigation guard. All methods are safe for concurrent use; actions are
// serialized, and any action arriving inside a transition's settle window is
// rejected with ErrTransitioning.
type Controller struct {
	mu      sync.Mutex
	catalog *Catalog
	now     func() time.Time
	delay   time.Duration

	phase       Phase
	step        int
	direction   Direction
	answers     domain.Answers
	settleUntil time.Time
	notice      string
}

// New returns a controller on the landing page with an empty AnswerSet.
func New(catalog *Catalog, opts ...Option) *Controller {
	c := &Controller{
		catalog:   catalog,
		now:       time.Now,
		delay:     DefaultTransitionDelay,
		phase:     PhaseLanding,
		direction: Forward,
		answers:   catalog.EmptyAnswers(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Restore rebuilds a controller from a stored snapshot.
func Restore(catalog *Catalog, snap Snapshot, opts ...Option) (*Controller, error) {
	c := New(catalog, opts...)
	switch snap.Phase {
	case PhaseLanding, PhaseInProgress, PhaseSubmitted:
	case PhaseSubmitting:
		// A snapshot taken mid-submission never resolved; let the user retry.
		snap.Phase = PhaseInProgress
		snap.Step = catalog.Len() - 1
		snap.Notice = FailureNotice
	default:
		return nil, fmt.Errorf("restore: unknown phase %q", snap.Phase)
	}
	if snap.Step < 0 || snap.Step >= catalog.Len() {
		return nil, fmt.Errorf("restore: step %d out of range", snap.Step)
	}
	c.phase = snap.Phase
	c.step = snap.Step
	if snap.Direction != "" {
		c.direction = snap.Direction
	}
	c.settleUntil = snap.SettleUntil
	c.notice = snap.Notice
	if c.phase == PhaseSubmitted {
		c.answers = nil
	} else {
		for id, ans := range snap.Answers.Clone() {
			if _, ok := catalog.Lookup(id); ok {
				c.answers[id] = ans
			}
		}
	}
	return c, nil
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Phase:       c.phase,
		Step:        c.step,
		Direction:   c.direction,
		Answers:     c.answers.Clone(),
		SettleUntil: c.settleUntil,
		Notice:      c.notice,
	}
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Controller) Step() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

func (c *Controller) Direction() Direction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.direction
}

func (c *Controller) Notice() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notice
}

// SetNotice shows a message on the current question until the next
// navigation clears it.
func (c *Controller) SetNotice(notice string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notice = notice
}

// Current returns the question at the current step.
func (c *Controller) Current() domain.Question {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalog.At(c.step)
}

// Answer returns the current value for question id.
func (c *Controller) Answer(id string) domain.Answer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.answers[id].Clone()
}

// Answers returns a copy of the AnswerSet.
func (c *Controller) Answers() domain.Answers {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.answers.Clone()
}

func (c *Controller) Len() int { return c.catalog.Len() }

// Transitioning reports whether a navigation is still settling.
func (c *Controller) Transitioning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transitioningLocked()
}

func (c *Controller) transitioningLocked() bool {
	return c.now().Before(c.settleUntil)
}

// IsAnswered reports whether question i has a usable value: a non-empty
// selection for multi-choice, a non-blank string otherwise.
func (c *Controller) IsAnswered(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isAnsweredLocked(i)
}

func (c *Controller) isAnsweredLocked(i int) bool {
	if i < 0 || i >= c.catalog.Len() {
		return false
	}
	q := c.catalog.At(i)
	ans := c.answers[q.ID]
	if q.Kind == domain.KindMultiChoice {
		return len(ans.Selected) > 0
	}
	return strings.TrimSpace(ans.Text) != ""
}

// Start leaves the landing page for the first question.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseLanding {
		return ErrWrongPhase
	}
	c.phase = PhaseInProgress
	c.step = 0
	c.direction = Forward
	return nil
}

// Advance moves to the next question, or submits the AnswerSet through sub
// when the current question is the last one. A failed submission returns the
// controller to the last question with answers intact.
func (c *Controller) Advance(ctx context.Context, sub Submitter) error {
	c.mu.Lock()
	if err := c.navigableLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	if !c.isAnsweredLocked(c.step) {
		c.mu.Unlock()
		return ErrNotAnswered
	}
	if c.step+1 < c.catalog.Len() {
		c.beginTransitionLocked(Forward, c.step+1)
		c.mu.Unlock()
		return nil
	}

	c.phase = PhaseSubmitting
	c.notice = ""
	frozen := domain.SubmissionFromAnswers(c.answers.Clone())
	c.mu.Unlock()

	err := sub.Deliver(ctx, frozen)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.phase = PhaseInProgress
		c.step = c.catalog.Len() - 1
		c.notice = FailureNotice
		return fmt.Errorf("submit: %w", err)
	}
	c.phase = PhaseSubmitted
	c.answers = nil
	return nil
}

// Retreat moves back one question. The AnswerSet is left untouched.
func (c *Controller) Retreat() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.navigableLocked(); err != nil {
		return err
	}
	if c.step == 0 {
		return ErrAtFirstStep
	}
	c.beginTransitionLocked(Back, c.step-1)
	return nil
}

// SetText sets the answer of a short-text, phone or email question.
func (c *Controller) SetText(value string) error {
	return c.edit(func(q domain.Question, ans *domain.Answer) error {
		switch q.Kind {
		case domain.KindShortText, domain.KindPhone, domain.KindEmail:
		default:
			return ErrWrongKind
		}
		ans.Text = value
		return nil
	})
}

// SelectChoice sets the answer of a single-choice question.
func (c *Controller) SelectChoice(choice string) error {
	return c.edit(func(q domain.Question, ans *domain.Answer) error {
		if q.Kind != domain.KindSingleChoice {
			return ErrWrongKind
		}
		if !q.HasChoice(choice) {
			return ErrUnknownChoice
		}
		ans.Text = choice
		return nil
	})
}

// ToggleChoice adds or removes choice from a multi-choice selection,
// preserving selection order.
func (c *Controller) ToggleChoice(choice string, checked bool) error {
	return c.edit(func(q domain.Question, ans *domain.Answer) error {
		if q.Kind != domain.KindMultiChoice {
			return ErrWrongKind
		}
		if !q.HasChoice(choice) {
			return ErrUnknownChoice
		}
		kept := ans.Selected[:0:0]
		present := false
		for _, s := range ans.Selected {
			if s == choice {
				present = true
				if !checked {
					continue
				}
			}
			kept = append(kept, s)
		}
		if checked && !present {
			kept = append(kept, choice)
		}
		ans.Selected = kept
		return nil
	})
}

// SelectDate picks a concrete date, replacing any "not sure yet" selection.
// Dates before today are rejected.
func (c *Controller) SelectDate(day time.Time) error {
	return c.edit(func(q domain.Question, ans *domain.Answer) error {
		if q.Kind != domain.KindDate {
			return ErrWrongKind
		}
		now := c.now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		picked := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
		if picked.Before(today) {
			return ErrDateInPast
		}
		ans.Text = picked.Format(domain.DateLayout)
		return nil
	})
}

// SelectNotSure picks the "not sure yet" sentinel, replacing any date.
func (c *Controller) SelectNotSure() error {
	return c.edit(func(q domain.Question, ans *domain.Answer) error {
		if q.Kind != domain.KindDate {
			return ErrWrongKind
		}
		ans.Text = domain.NotSureYet
		return nil
	})
}

func (c *Controller) edit(apply func(domain.Question, *domain.Answer) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.navigableLocked(); err != nil {
		return err
	}
	q := c.catalog.At(c.step)
	ans := c.answers[q.ID].Clone()
	if err := apply(q, &ans); err != nil {
		return err
	}
	c.answers[q.ID] = ans
	return nil
}

func (c *Controller) navigableLocked() error {
	if c.phase != PhaseInProgress {
		return ErrWrongPhase
	}
	if c.transitioningLocked() {
		return ErrTransitioning
	}
	return nil
}

func (c *Controller) beginTransitionLocked(dir Direction, to int) {
	c.direction = dir
	c.step = to
	c.notice = ""
	c.settleUntil = c.now().Add(c.delay)
}
