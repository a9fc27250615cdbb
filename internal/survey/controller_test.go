package survey_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/johnmikes100/concierge/internal/domain"
	"github.com/johnmikes100/concierge/internal/survey"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

const delay = 500 * time.Millisecond

func newController(t *testing.T) (*survey.Controller, *fakeClock) {
	t.Helper()
	clk := &fakeClock{t: time.Date(2025, time.June, 1, 10, 0, 0, 0, time.Local)}
	c := survey.New(survey.Concierge(), survey.WithClock(clk.now), survey.WithTransitionDelay(delay))
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	return c, clk
}

// answerCurrent fills the current question with a valid value for its kind.
func answerCurrent(t *testing.T, c *survey.Controller) {
	t.Helper()
	q := c.Current()
	var err error
	switch q.Kind {
	case domain.KindEmail:
		err = c.SetText("jane@example.com")
	case domain.KindShortText, domain.KindPhone:
		err = c.SetText("value for " + q.ID)
	case domain.KindSingleChoice:
		err = c.SelectChoice(q.Choices[0])
	case domain.KindMultiChoice:
		err = c.ToggleChoice(q.Choices[1], true)
	case domain.KindDate:
		err = c.SelectNotSure()
	}
	if err != nil {
		t.Fatalf("answer %s: %v", q.ID, err)
	}
}

// walkToLast answers and advances until the last question is current.
func walkToLast(t *testing.T, c *survey.Controller, clk *fakeClock) {
	t.Helper()
	for c.Step() < c.Len()-1 {
		answerCurrent(t, c)
		if err := c.Advance(context.Background(), nil); err != nil {
			t.Fatalf("advance from %d: %v", c.Step(), err)
		}
		clk.advance(delay)
	}
}

type recordingSubmitter struct {
	calls []domain.Submission
	err   error
}

func (s *recordingSubmitter) Deliver(_ context.Context, sub domain.Submission) error {
	s.calls = append(s.calls, sub)
	return s.err
}

// ---------------------------------------------------------------------------
// Navigation
// ---------------------------------------------------------------------------

func TestStartOnlyFromLanding(t *testing.T) {
	c := survey.New(survey.Concierge())
	if c.Phase() != survey.PhaseLanding {
		t.Fatalf("phase = %s, want landing", c.Phase())
	}
	if err := c.Advance(context.Background(), nil); !errors.Is(err, survey.ErrWrongPhase) {
		t.Fatalf("advance on landing: got %v, want ErrWrongPhase", err)
	}
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if c.Phase() != survey.PhaseInProgress || c.Step() != 0 {
		t.Fatalf("after start: phase=%s step=%d", c.Phase(), c.Step())
	}
	if err := c.Start(); !errors.Is(err, survey.ErrWrongPhase) {
		t.Fatalf("second start: got %v, want ErrWrongPhase", err)
	}
}

func TestAdvanceRejectedUntilAnswered(t *testing.T) {
	c, clk := newController(t)
	for i := 0; i < c.Len()-1; i++ {
		if c.IsAnswered(i) {
			t.Fatalf("step %d answered before input", i)
		}
		if err := c.Advance(context.Background(), nil); !errors.Is(err, survey.ErrNotAnswered) {
			t.Fatalf("step %d: advance unanswered got %v", i, err)
		}
		if c.Step() != i {
			t.Fatalf("step moved to %d on rejected advance", c.Step())
		}
		answerCurrent(t, c)
		if !c.IsAnswered(i) {
			t.Fatalf("step %d not answered after input", i)
		}
		if err := c.Advance(context.Background(), nil); err != nil {
			t.Fatalf("step %d: advance: %v", i, err)
		}
		if c.Step() != i+1 {
			t.Fatalf("step = %d, want %d", c.Step(), i+1)
		}
		clk.advance(delay)
	}
}

func TestWhitespaceIsNotAnAnswer(t *testing.T) {
	c, _ := newController(t)
	if err := c.SetText("   \t "); err != nil {
		t.Fatalf("set text: %v", err)
	}
	if c.IsAnswered(0) {
		t.Fatal("blank text counted as answered")
	}
	if err := c.Advance(context.Background(), nil); !errors.Is(err, survey.ErrNotAnswered) {
		t.Fatalf("got %v, want ErrNotAnswered", err)
	}
}

func TestRetreat(t *testing.T) {
	c, clk := newController(t)
	if err := c.Retreat(); !errors.Is(err, survey.ErrAtFirstStep) {
		t.Fatalf("retreat at 0: got %v", err)
	}
	walkToLast(t, c, clk)
	before := c.Answers()
	for i := c.Len() - 1; i > 0; i-- {
		if err := c.Retreat(); err != nil {
			t.Fatalf("retreat from %d: %v", i, err)
		}
		if c.Step() != i-1 {
			t.Fatalf("step = %d, want %d", c.Step(), i-1)
		}
		if c.Direction() != survey.Back {
			t.Fatalf("direction = %s, want back", c.Direction())
		}
		clk.advance(delay)
	}
	if !reflect.DeepEqual(before, c.Answers()) {
		t.Fatalf("retreat mutated answers:\nbefore %v\nafter  %v", before, c.Answers())
	}
}

func TestTransitionGuard(t *testing.T) {
	c, clk := newController(t)
	answerCurrent(t, c)
	if err := c.Advance(context.Background(), nil); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !c.Transitioning() {
		t.Fatal("expected transition window after advance")
	}

	// A held Enter key: every repeat inside the window is dropped.
	if err := c.SetText("typed during transition"); !errors.Is(err, survey.ErrTransitioning) {
		t.Fatalf("edit during transition: got %v", err)
	}
	if err := c.Advance(context.Background(), nil); !errors.Is(err, survey.ErrTransitioning) {
		t.Fatalf("advance during transition: got %v", err)
	}
	if err := c.Retreat(); !errors.Is(err, survey.ErrTransitioning) {
		t.Fatalf("retreat during transition: got %v", err)
	}
	if c.Step() != 1 {
		t.Fatalf("step = %d, want 1", c.Step())
	}

	clk.advance(delay - time.Millisecond)
	if !c.Transitioning() {
		t.Fatal("window closed early")
	}
	clk.advance(time.Millisecond)
	if c.Transitioning() {
		t.Fatal("window still open after delay")
	}
	if err := c.Retreat(); err != nil {
		t.Fatalf("retreat after settle: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Answers
// ---------------------------------------------------------------------------

func TestWrongKindEditsRejected(t *testing.T) {
	c, _ := newController(t)
	if err := c.SelectChoice("Private room"); !errors.Is(err, survey.ErrWrongKind) {
		t.Fatalf("select on text question: got %v", err)
	}
	if err := c.ToggleChoice("Wi-Fi", true); !errors.Is(err, survey.ErrWrongKind) {
		t.Fatalf("toggle on text question: got %v", err)
	}
	if err := c.SelectNotSure(); !errors.Is(err, survey.ErrWrongKind) {
		t.Fatalf("not-sure on text question: got %v", err)
	}
}

func stepTo(t *testing.T, c *survey.Controller, clk *fakeClock, id string) {
	t.Helper()
	for c.Current().ID != id {
		answerCurrent(t, c)
		if err := c.Advance(context.Background(), nil); err != nil {
			t.Fatalf("advance: %v", err)
		}
		clk.advance(delay)
	}
}

func TestNoticeClearedByNavigation(t *testing.T) {
	c, clk := newController(t)
	c.SetNotice("Please choose today or a later date.")
	if c.Notice() == "" || c.Snapshot().Notice == "" {
		t.Fatal("notice not recorded")
	}
	answerCurrent(t, c)
	if err := c.Advance(context.Background(), nil); err != nil {
		t.Fatalf("advance: %v", err)
	}
	clk.advance(delay)
	if c.Notice() != "" {
		t.Fatalf("notice = %q after navigation", c.Notice())
	}
}

func TestDateAndNotSureAreExclusive(t *testing.T) {
	c, clk := newController(t)
	stepTo(t, c, clk, domain.FieldPreferredDate)

	if err := c.SelectNotSure(); err != nil {
		t.Fatalf("not sure: %v", err)
	}
	if got := c.Answer(domain.FieldPreferredDate).Text; got != domain.NotSureYet {
		t.Fatalf("got %q, want sentinel", got)
	}

	day := time.Date(2025, time.June, 3, 15, 30, 0, 0, time.Local)
	if err := c.SelectDate(day); err != nil {
		t.Fatalf("select date: %v", err)
	}
	if got := c.Answer(domain.FieldPreferredDate).Text; got != "2025-06-03" {
		t.Fatalf("got %q, want 2025-06-03", got)
	}

	if err := c.SelectNotSure(); err != nil {
		t.Fatalf("not sure: %v", err)
	}
	if got := c.Answer(domain.FieldPreferredDate).Text; got != domain.NotSureYet {
		t.Fatalf("got %q, want sentinel after reselect", got)
	}
}

func TestDateBeforeTodayRejected(t *testing.T) {
	c, clk := newController(t)
	stepTo(t, c, clk, domain.FieldPreferredDate)

	yesterday := clk.now().AddDate(0, 0, -1)
	if err := c.SelectDate(yesterday); !errors.Is(err, survey.ErrDateInPast) {
		t.Fatalf("got %v, want ErrDateInPast", err)
	}
	if c.IsAnswered(c.Step()) {
		t.Fatal("rejected date was stored")
	}
	// Earlier today is still today.
	if err := c.SelectDate(clk.now().Add(-time.Hour)); err != nil {
		t.Fatalf("today: %v", err)
	}
}

func TestToggleChoicePreservesOrder(t *testing.T) {
	c, clk := newController(t)
	stepTo(t, c, clk, domain.FieldAmenities)

	for _, opt := range []string{"Parking", "Wi-Fi", "Other"} {
		if err := c.ToggleChoice(opt, true); err != nil {
			t.Fatalf("toggle %s: %v", opt, err)
		}
	}
	if err := c.ToggleChoice("Wi-Fi", true); err != nil {
		t.Fatalf("re-check: %v", err)
	}
	if err := c.ToggleChoice("Parking", false); err != nil {
		t.Fatalf("uncheck: %v", err)
	}
	want := []string{"Wi-Fi", "Other"}
	if got := c.Answer(domain.FieldAmenities).Selected; !reflect.DeepEqual(got, want) {
		t.Fatalf("selected = %v, want %v", got, want)
	}
	if err := c.ToggleChoice("Hot tub", true); !errors.Is(err, survey.ErrUnknownChoice) {
		t.Fatalf("unknown choice: got %v", err)
	}

	for _, opt := range want {
		if err := c.ToggleChoice(opt, false); err != nil {
			t.Fatalf("uncheck %s: %v", opt, err)
		}
	}
	if c.IsAnswered(c.Step()) {
		t.Fatal("empty selection counted as answered")
	}
}

// ---------------------------------------------------------------------------
// Submission
// ---------------------------------------------------------------------------

func TestSubmitSuccess(t *testing.T) {
	c, clk := newController(t)
	walkToLast(t, c, clk)
	answerCurrent(t, c)

	sub := &recordingSubmitter{}
	if err := c.Advance(context.Background(), sub); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(sub.calls) != 1 {
		t.Fatalf("deliveries = %d, want 1", len(sub.calls))
	}
	got := sub.calls[0]
	if got.Email != "jane@example.com" || got.PreferredDate != domain.NotSureYet {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if !reflect.DeepEqual(got.Amenities, []string{"AV Equipment"}) {
		t.Fatalf("amenities = %v", got.Amenities)
	}
	if c.Phase() != survey.PhaseSubmitted {
		t.Fatalf("phase = %s, want submitted", c.Phase())
	}
	if len(c.Answers()) != 0 {
		t.Fatal("answers not discarded after submission")
	}
	// Terminal.
	if err := c.Retreat(); !errors.Is(err, survey.ErrWrongPhase) {
		t.Fatalf("retreat after submit: got %v", err)
	}
}

func TestSubmitFailureKeepsAnswers(t *testing.T) {
	c, clk := newController(t)
	walkToLast(t, c, clk)
	answerCurrent(t, c)
	before := c.Answers()

	sub := &recordingSubmitter{err: errors.New("provider outage")}
	err := c.Advance(context.Background(), sub)
	if err == nil || !errors.Is(err, sub.err) {
		t.Fatalf("got %v, want wrapped provider error", err)
	}
	if c.Phase() != survey.PhaseInProgress || c.Step() != c.Len()-1 {
		t.Fatalf("after failure: phase=%s step=%d", c.Phase(), c.Step())
	}
	if c.Notice() != survey.FailureNotice {
		t.Fatalf("notice = %q", c.Notice())
	}
	if !reflect.DeepEqual(before, c.Answers()) {
		t.Fatal("answers changed after failed submission")
	}

	// Manual retry goes through, and resubmitting sends again.
	sub.err = nil
	if err := c.Advance(context.Background(), sub); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if len(sub.calls) != 2 {
		t.Fatalf("deliveries = %d, want 2", len(sub.calls))
	}
}

// ---------------------------------------------------------------------------
// Snapshots and catalog
// ---------------------------------------------------------------------------

func TestSnapshotRoundTrip(t *testing.T) {
	c, clk := newController(t)
	stepTo(t, c, clk, domain.FieldAmenities)
	if err := c.ToggleChoice("Parking", true); err != nil {
		t.Fatal(err)
	}
	snap := c.Snapshot()

	r, err := survey.Restore(survey.Concierge(), snap, survey.WithClock(clk.now))
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !reflect.DeepEqual(r.Snapshot(), snap) {
		t.Fatalf("restored snapshot differs:\n%+v\n%+v", r.Snapshot(), snap)
	}

	snap.Phase = survey.PhaseSubmitting
	r, err = survey.Restore(survey.Concierge(), snap, survey.WithClock(clk.now))
	if err != nil {
		t.Fatalf("restore submitting: %v", err)
	}
	if r.Phase() != survey.PhaseInProgress || r.Step() != r.Len()-1 || r.Notice() == "" {
		t.Fatalf("interrupted submission not recovered: %+v", r.Snapshot())
	}

	snap.Step = 99
	snap.Phase = survey.PhaseInProgress
	if _, err := survey.Restore(survey.Concierge(), snap); err == nil {
		t.Fatal("expected out-of-range step error")
	}
}

func TestNewCatalogValidation(t *testing.T) {
	cases := []struct {
		name string
		qs   []domain.Question
	}{
		{"empty", nil},
		{"missing id", []domain.Question{{Kind: domain.KindShortText}}},
		{"duplicate id", []domain.Question{
			{ID: "a", Kind: domain.KindShortText},
			{ID: "a", Kind: domain.KindEmail},
		}},
		{"choice kind without choices", []domain.Question{{ID: "a", Kind: domain.KindSingleChoice}}},
		{"text kind with choices", []domain.Question{{ID: "a", Kind: domain.KindShortText, Choices: []string{"x"}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := survey.NewCatalog(tc.qs); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	if n := survey.Concierge().Len(); n != 11 {
		t.Fatalf("concierge questions = %d, want 11", n)
	}
}
