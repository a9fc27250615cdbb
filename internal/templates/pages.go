package templates

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/johnmikes100/concierge/internal/domain"
)

// NOTE: pages are html/template blocks exposed as templ.Components so the
// handlers render everything through one templ-based path.

var baseTmpl = template.Must(template.New("base").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Concierge · Happy Hour SF</title>
<style>
  :root {
    --ink: #111111;
    --paper: #ffffff;
    --muted: #6b6b6b;
    --rule: #e4e4e4;
    --accent: #c0392b;
  }
  * { box-sizing: border-box; }
  body {
    margin: 0;
    background: var(--paper);
    color: var(--ink);
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    min-height: 100vh;
  }
  .center { min-height: 100vh; display: flex; flex-direction: column; align-items: center; justify-content: center; padding: 24px; text-align: center; }
  .muted { color: var(--muted); }
  .btn {
    font-size: 1rem;
    font-weight: 600;
    padding: 10px 28px;
    border: 2px solid var(--ink);
    border-radius: 6px;
    background: var(--ink);
    color: white;
    cursor: pointer;
  }
  .btn:disabled { opacity: 0.4; cursor: not-allowed; }
  .link { background: none; border: none; color: var(--muted); cursor: pointer; font-size: 0.9rem; padding: 0; }
  .option {
    display: flex; align-items: center; gap: 12px;
    padding: 16px; margin-bottom: 12px;
    border: 2px solid var(--rule); border-radius: 8px;
    font-size: 1.1rem; cursor: pointer;
  }
  .option:hover { border-color: var(--ink); }
  input[type=text], input[type=tel], input[type=email], input[type=date] {
    width: 100%; font-size: 1.1rem; padding: 18px;
    border: 2px solid var(--rule); border-radius: 8px; outline: none;
  }
  input:focus { border-color: var(--ink); }
  .notice { border-left: 4px solid var(--accent); padding: 8px 12px; color: var(--accent); margin-bottom: 16px; }
</style>
</head>
<body>
{{template "content" .}}
</body>
</html>`))

var landingTmpl = template.Must(template.Must(baseTmpl.Clone()).Parse(`
{{define "content"}}
<div class="center">
  <div style="max-width:560px;">
    <h1 style="font-size:3.5rem;margin:0;">Concierge</h1>
    <p class="muted" style="font-size:0.75rem;margin:4px 0 24px;">powered by Happy Hour SF</p>
    <p class="muted" style="font-size:1.1rem;">
      We've hand-picked the best spots in San Francisco for team events. Tell us what you need, and we'll handle the rest.
    </p>
    <form method="post" action="/survey">
      <button class="btn" type="submit">Start</button>
    </form>
  </div>
</div>
{{end}}`))

var thankYouTmpl = template.Must(template.Must(baseTmpl.Clone()).Parse(`
{{define "content"}}
<div class="center">
  <div style="max-width:560px;">
    <h1 style="font-size:3.5rem;margin:0 0 24px;">Thank you!</h1>
    <p class="muted" style="font-size:1.1rem;">
      We've received your request and sent a confirmation to your email. You can expect a curated set of venue options shortly.
    </p>
    <p class="muted" style="font-size:0.75rem;">powered by Happy Hour SF</p>
  </div>
</div>
{{end}}`))

var questionTmpl = template.Must(template.Must(baseTmpl.Clone()).Parse(`
{{define "content"}}
<header style="padding:24px;display:flex;justify-content:space-between;align-items:center;">
  <strong style="font-size:1.2rem;">Concierge</strong>
  <span class="muted" style="font-size:0.9rem;">{{seq .Step}} / {{.Total}}</span>
</header>
<main style="max-width:640px;margin:0 auto;padding:48px 24px;" data-direction="{{.Direction}}">
  <div style="height:36px;margin-bottom:32px;">
    {{if .CanGoBack}}
    <form method="post" action="/survey/{{.SessionID}}">
      <input type="hidden" name="action" value="back">
      <button class="link" type="submit">&larr; Back</button>
    </form>
    {{end}}
  </div>

  {{if .Notice}}<div class="notice" role="alert">{{.Notice}}</div>{{end}}

  <h2 style="font-size:1.8rem;margin:0 0 8px;">{{.Question.Prompt}}</h2>
  {{if .Question.Subtext}}<p class="muted" style="margin:0 0 24px;">{{.Question.Subtext}}</p>{{else}}<div style="margin-bottom:24px;"></div>{{end}}

  <form method="post" action="/survey/{{.SessionID}}">
    <input type="hidden" name="action" value="next">
    {{$q := .Question}}
    {{if eq $q.Kind "short-text"}}
      <input type="text" name="value" value="{{.Answer.Text}}" placeholder="Type your answer here..." autofocus>
    {{else if eq $q.Kind "phone"}}
      <input type="tel" name="value" value="{{.Answer.Text}}" placeholder="Type your answer here..." autofocus>
    {{else if eq $q.Kind "email"}}
      <input type="email" name="value" value="{{.Answer.Text}}" placeholder="Type your answer here..." autofocus>
    {{else if eq $q.Kind "single-choice"}}
      {{range $q.Choices}}
      <label class="option">
        <input type="radio" name="choice" value="{{.}}" {{if eq . $.Answer.Text}}checked{{end}}> {{.}}
      </label>
      {{end}}
    {{else if eq $q.Kind "multi-choice"}}
      <input type="hidden" name="choices_present" value="1">
      {{range $q.Choices}}
      <label class="option">
        <input type="checkbox" name="choice" value="{{.}}" {{if selected $.Answer.Selected .}}checked{{end}}> {{.}}
      </label>
      {{end}}
    {{else if eq $q.Kind "date"}}
      <label class="option">
        <input type="radio" name="date_mode" value="not-sure-yet" {{if .NotSure}}checked{{end}}
               onchange="if(this.checked){this.form.date.value='';}"> Not sure yet
      </label>
      <label class="option">
        <input type="radio" name="date_mode" value="date" {{if .DateValue}}checked{{end}}>
        <input type="date" name="date" min="{{.MinDate}}" value="{{.DateValue}}"
               oninput="this.form.querySelector('[name=date_mode][value=date]').checked=true;">
      </label>
      {{if .DateValue}}<p class="muted">Selected: <strong>{{displayDate .DateValue}}</strong></p>{{end}}
    {{end}}

    <div style="margin-top:32px;">
      <button class="btn" type="submit" {{if not .Answered}}data-unanswered="true"{{end}}>{{if .IsLast}}Submit{{else}}OK{{end}}</button>
      <p class="muted" style="font-size:0.85rem;margin-top:16px;">Press <strong>Enter &crarr;</strong></p>
    </div>
  </form>
</main>
{{end}}`))

// QuestionView is everything the question page needs for one step.
type QuestionView struct {
	SessionID string
	Step      int
	Total     int
	Question  domain.Question
	Answer    domain.Answer
	Answered  bool
	CanGoBack bool
	IsLast    bool
	Direction string
	Notice    string
	MinDate   string // yyyy-mm-dd; dates before it are not selectable
}

// NotSure reports whether the date question holds the "not sure yet" sentinel.
func (v QuestionView) NotSure() bool {
	return v.Answer.Text == domain.NotSureYet
}

// DateValue returns the concrete date answer, or "" when none is selected.
func (v QuestionView) DateValue() string {
	if v.Question.Kind != domain.KindDate || v.NotSure() {
		return ""
	}
	return v.Answer.Text
}

func Landing() templ.Component { return page(landingTmpl, nil) }

func ThankYou() templ.Component { return page(thankYouTmpl, nil) }

func Question(v QuestionView) templ.Component { return page(questionTmpl, v) }

func page(t *template.Template, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return t.ExecuteTemplate(w, "base", data)
	})
}
