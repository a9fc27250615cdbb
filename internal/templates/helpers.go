package templates

import (
	"html/template"
	"time"

	"github.com/johnmikes100/concierge/internal/domain"
)

var funcs = template.FuncMap{
	"seq":         func(i int) int { return i + 1 },
	"selected":    selected,
	"displayDate": displayDate,
}

// selected reports whether choice is in the current multi-choice selection.
func selected(sel []string, choice string) bool {
	for _, s := range sel {
		if s == choice {
			return true
		}
	}
	return false
}

// displayDate renders a yyyy-mm-dd answer as "June 3, 2025" for the
// confirmation line under the date picker.
func displayDate(v string) string {
	t, err := time.ParseInLocation(domain.DateLayout, v, time.Local)
	if err != nil {
		return v
	}
	return t.Format("January 2, 2006")
}
