package submission

import (
	"strings"
	"time"

	"github.com/johnmikes100/concierge/internal/domain"
	"github.com/johnmikes100/concierge/internal/survey"
	"github.com/johnmikes100/concierge/internal/templates"
)

// FormatDateLabel turns a preferredDate value into "Tuesday, June 3, 2025".
// The sentinel becomes "Not sure yet"; anything unparseable is returned as is.
func FormatDateLabel(v string) string {
	if v == domain.NotSureYet {
		return "Not sure yet"
	}
	t, err := time.ParseInLocation(domain.DateLayout, v, time.Local)
	if err != nil {
		return v
	}
	return t.Format("Monday, January 2, 2006")
}

// FormatAmenities joins the selection in order, or says "None selected".
func FormatAmenities(amenities []string) string {
	if len(amenities) == 0 {
		return "None selected"
	}
	return strings.Join(amenities, ", ")
}

// notificationRows itemizes s in notification order, labelled with the
// survey prompts.
func notificationRows(s domain.Submission) []templates.Row {
	values := map[string]string{
		domain.FieldFullName:      s.FullName,
		domain.FieldPhoneNumber:   s.PhoneNumber,
		domain.FieldEmail:         s.Email,
		domain.FieldCompanyName:   s.CompanyName,
		domain.FieldOccasion:      s.Occasion,
		domain.FieldPeopleCount:   s.PeopleCount,
		domain.FieldPreferredDate: FormatDateLabel(s.PreferredDate),
		domain.FieldBudget:        s.Budget,
		domain.FieldVibe:          s.Vibe,
		domain.FieldRoomType:      s.RoomType,
		domain.FieldAmenities:     FormatAmenities(s.Amenities),
	}
	rows := make([]templates.Row, 0, len(notificationOrder))
	for _, id := range notificationOrder {
		q, _ := questions.Lookup(id)
		rows = append(rows, templates.Row{Label: q.Prompt, Value: values[id]})
	}
	return rows
}

// questions labels the notification rows.
var questions = survey.Concierge()

// Contact fields lead, then the event details in survey order.
var notificationOrder = []string{
	domain.FieldFullName,
	domain.FieldPhoneNumber,
	domain.FieldEmail,
	domain.FieldCompanyName,
	domain.FieldOccasion,
	domain.FieldPeopleCount,
	domain.FieldPreferredDate,
	domain.FieldBudget,
	domain.FieldVibe,
	domain.FieldRoomType,
	domain.FieldAmenities,
}
