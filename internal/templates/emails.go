package templates

import (
	"bytes"
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`
<div style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="font-size: 24px; color: #111; margin-bottom: 24px;">Thanks{{if .FullName}}, {{.FullName}}{{end}}!</h1>
  <p style="font-size: 16px; color: #111;">
    We've received your Concierge request. Our team is reviewing the details and will personally send you a curated set of venue options shortly.
  </p>
  <p style="font-size: 16px; color: #111;">
    If anything changes in the meantime, just reply to this email.
  </p>
  <p style="font-size: 12px; color: #666; margin-top: 32px;">Concierge · powered by Happy Hour SF</p>
</div>
`))

var notificationTmpl = template.Must(template.New("notification").Parse(`
<div style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="font-size: 24px; color: #111; margin-bottom: 24px;">New Event Request</h1>
  {{range .Rows}}
  <div style="margin-bottom: 20px;">
    <p style="font-size: 14px; color: #666; margin: 0 0 4px 0; font-weight: 600;">{{.Label}}</p>
    <p style="font-size: 16px; color: #111; margin: 0;">{{.Value}}</p>
  </div>
  {{end}}
</div>
`))

// ConfirmationView addresses the customer confirmation.
type ConfirmationView struct {
	FullName string
}

// Row is one labelled field of the internal notification.
type Row struct {
	Label string
	Value string
}

// NotificationView itemizes every collected field, in question order.
type NotificationView struct {
	Rows []Row
}

func ConfirmationEmail(v ConfirmationView) templ.Component { return fragment(confirmationTmpl, v) }

func NotificationEmail(v NotificationView) templ.Component { return fragment(notificationTmpl, v) }

// RenderString renders c into a string, for email bodies.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func fragment(t *template.Template, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return t.Execute(w, data)
	})
}
