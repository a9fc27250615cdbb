package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/johnmikes100/concierge/internal/domain"
	"github.com/johnmikes100/concierge/internal/ports"
	"github.com/johnmikes100/concierge/internal/survey"
	"github.com/johnmikes100/concierge/internal/templates"
)

type Handler struct {
	sessions  ports.SessionStore
	svc       ports.SubmissionService
	submitter survey.Submitter
	catalog   *survey.Catalog
	opts      []survey.Option
	now       func() time.Time
	locks     *keyedMutex
}

// New wires the HTTP surface. opts are applied to every survey controller
// (transition delay, clock).
func New(sessions ports.SessionStore, svc ports.SubmissionService, opts ...survey.Option) *Handler {
	return &Handler{
		sessions:  sessions,
		svc:       svc,
		submitter: svc,
		catalog:   survey.Concierge(),
		opts:      opts,
		now:       time.Now,
		locks:     newKeyedMutex(),
	}
}

// UseSubmitter routes survey submissions through s instead of the in-process
// service, e.g. an apiclient pointed at another Concierge instance.
func (h *Handler) UseSubmitter(s survey.Submitter) {
	h.submitter = s
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("POST /survey", h.startSurvey)
	mux.HandleFunc("GET /survey/{id}", h.viewSurvey)
	mux.HandleFunc("POST /survey/{id}", h.answerSurvey)
	mux.HandleFunc("GET /thank-you", h.thankYou)
	mux.HandleFunc("POST /api/submit", h.submit)
	return withLogging(mux)
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	render(w, r, templates.Landing())
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) thankYou(w http.ResponseWriter, r *http.Request) {
	render(w, r, templates.ThankYou())
}

// startSurvey is the "start" action: a new session positioned on the first question.
func (h *Handler) startSurvey(w http.ResponseWriter, r *http.Request) {
	c := survey.New(h.catalog, h.opts...)
	if err := c.Start(); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	id := uuid.NewString()
	if err := h.sessions.CreateSession(r.Context(), id, c.Snapshot()); err != nil {
		slog.Error("create session failed", "err", err)
		http.Error(w, err.Error(), 500)
		return
	}
	slog.Info("survey started", "session", id)
	http.Redirect(w, r, "/survey/"+id, http.StatusSeeOther)
}

func (h *Handler) viewSurvey(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	c, ok := h.load(w, r, id)
	if !ok {
		return
	}
	if c.Phase() == survey.PhaseSubmitted {
		render(w, r, templates.ThankYou())
		return
	}
	render(w, r, templates.Question(h.questionView(id, c)))
}

// answerSurvey applies the posted edit for the current question, then runs
// the requested navigation. Pointer clicks and the Enter key post the same
// form, so both go through Advance. Rejected actions are no-ops: the user is
// sent back to the unchanged question.
func (h *Handler) answerSurvey(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	unlock := h.locks.lock(id)
	defer unlock()

	c, ok := h.load(w, r, id)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}

	var err error
	switch r.FormValue("action") {
	case "back":
		err = c.Retreat()
	case "next":
		if err = applyEdit(c, r); err == nil {
			err = c.Advance(r.Context(), h.submitter)
		}
	default:
		http.Error(w, "unknown action", 400)
		return
	}
	if err != nil {
		switch {
		case errors.Is(err, survey.ErrTransitioning), errors.Is(err, survey.ErrNotAnswered),
			errors.Is(err, survey.ErrAtFirstStep), errors.Is(err, survey.ErrWrongPhase):
			slog.Debug("survey action ignored", "session", id, "err", err)
		default:
			slog.Warn("survey action failed", "session", id, "err", err)
		}
		if notice := editNotice(err); notice != "" {
			c.SetNotice(notice)
		}
	}

	if c.Phase() == survey.PhaseSubmitted {
		if err := h.sessions.DeleteSession(r.Context(), id); err != nil {
			slog.Warn("delete session failed", "session", id, "err", err)
		}
		slog.Info("survey submitted", "session", id)
		http.Redirect(w, r, "/thank-you", http.StatusSeeOther)
		return
	}
	if err := h.sessions.SaveSession(r.Context(), id, c.Snapshot()); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	http.Redirect(w, r, "/survey/"+id, http.StatusSeeOther)
}

// load restores the session's controller, writing a 404 or 500 on failure.
func (h *Handler) load(w http.ResponseWriter, r *http.Request, id string) (*survey.Controller, bool) {
	snap, err := h.sessions.GetSession(r.Context(), id)
	if errors.Is(err, ports.ErrSessionNotFound) {
		http.Error(w, "survey session not found", 404)
		return nil, false
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return nil, false
	}
	c, err := survey.Restore(h.catalog, snap, h.opts...)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return nil, false
	}
	return c, true
}

func (h *Handler) questionView(id string, c *survey.Controller) templates.QuestionView {
	step := c.Step()
	q := c.Current()
	return templates.QuestionView{
		SessionID: id,
		Step:      step,
		Total:     c.Len(),
		Question:  q,
		Answer:    c.Answer(q.ID),
		Answered:  c.IsAnswered(step),
		CanGoBack: step > 0,
		IsLast:    step == c.Len()-1,
		Direction: string(c.Direction()),
		Notice:    c.Notice(),
		MinDate:   h.now().Format(domain.DateLayout),
	}
}

// applyEdit maps the posted form onto the controller for the current
// question's kind.
func applyEdit(c *survey.Controller, r *http.Request) error {
	q := c.Current()
	switch q.Kind {
	case domain.KindShortText, domain.KindPhone, domain.KindEmail:
		return c.SetText(r.FormValue("value"))
	case domain.KindSingleChoice:
		if v := r.FormValue("choice"); v != "" {
			return c.SelectChoice(v)
		}
	case domain.KindMultiChoice:
		if r.FormValue("choices_present") == "" {
			return nil
		}
		want := r.Form["choice"]
		current := c.Answer(q.ID).Selected
		for _, s := range current {
			if !slices.Contains(want, s) {
				if err := c.ToggleChoice(s, false); err != nil {
					return err
				}
			}
		}
		for _, s := range want {
			if !slices.Contains(current, s) {
				if err := c.ToggleChoice(s, true); err != nil {
					return err
				}
			}
		}
	case domain.KindDate:
		if r.FormValue("date_mode") == domain.NotSureYet {
			return c.SelectNotSure()
		}
		if v := r.FormValue("date"); v != "" {
			day, err := time.ParseInLocation(domain.DateLayout, v, time.Local)
			if err != nil {
				return fmt.Errorf("%w: %v", errInvalidDate, err)
			}
			return c.SelectDate(day)
		}
	}
	return nil
}

var errInvalidDate = errors.New("invalid date")

// Notices shown on the question page when an edit is rejected.
const (
	noticeDateInPast  = "Please choose today or a later date."
	noticeInvalidDate = "Please enter a valid date."
)

// editNotice is the message for a rejected edit the user should see, or "".
func editNotice(err error) string {
	switch {
	case errors.Is(err, survey.ErrDateInPast):
		return noticeDateInPast
	case errors.Is(err, errInvalidDate):
		return noticeInvalidDate
	}
	return ""
}

// render writes a templ component to the response.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), 500)
	}
}
