package domain

import "strings"

// NotSureYet is the sentinel stored for the date question when the user has
// no date in mind. It is mutually exclusive with a concrete date.
const NotSureYet = "not-sure-yet"

// DateLayout is the wire format of a concrete preferredDate value.
const DateLayout = "2006-01-02"

// Kind is the input modality of a question.
type Kind string

const (
	KindShortText    Kind = "short-text"
	KindPhone        Kind = "phone"
	KindEmail        Kind = "email"
	KindSingleChoice Kind = "single-choice"
	KindMultiChoice  Kind = "multi-choice"
	KindDate         Kind = "date"
)

// HasChoices reports whether questions of this kind carry a choice list.
func (k Kind) HasChoices() bool {
	return k == KindSingleChoice || k == KindMultiChoice
}

// Question is one static step of the survey.
type Question struct {
	ID      string
	Prompt  string
	Subtext string
	Kind    Kind
	Choices []string // single-choice and multi-choice only
}

// HasChoice reports whether c is one of the question's choices.
func (q Question) HasChoice(c string) bool {
	for _, choice := range q.Choices {
		if choice == c {
			return true
		}
	}
	return false
}

// Answer holds the value for one question. Multi-choice questions use
// Selected (in selection order); every other kind uses Text.
type Answer struct {
	Text     string   `json:"text,omitempty"`
	Selected []string `json:"selected,omitempty"`
}

// Clone returns a copy that shares no backing array with a.
func (a Answer) Clone() Answer {
	cp := Answer{Text: a.Text}
	if a.Selected != nil {
		cp.Selected = append([]string(nil), a.Selected...)
	}
	return cp
}

// Answers is the AnswerSet of one survey session, keyed by question id.
type Answers map[string]Answer

// Clone returns a deep copy so a frozen AnswerSet cannot be mutated through
// the original.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for id, ans := range a {
		out[id] = ans.Clone()
	}
	return out
}

// Question ids of the Concierge survey. They double as the JSON keys of the
// submission payload.
const (
	FieldOccasion      = "occasion"
	FieldPeopleCount   = "peopleCount"
	FieldPreferredDate = "preferredDate"
	FieldBudget        = "budget"
	FieldVibe          = "vibe"
	FieldRoomType      = "roomType"
	FieldAmenities     = "amenities"
	FieldCompanyName   = "companyName"
	FieldFullName      = "fullName"
	FieldPhoneNumber   = "phoneNumber"
	FieldEmail         = "email"
)

// Submission is the request body of POST /api/submit.
type Submission struct {
	FullName      string   `json:"fullName"`
	PhoneNumber   string   `json:"phoneNumber"`
	Email         string   `json:"email"`
	CompanyName   string   `json:"companyName"`
	Occasion      string   `json:"occasion"`
	PeopleCount   string   `json:"peopleCount"`
	PreferredDate string   `json:"preferredDate"`
	Budget        string   `json:"budget"`
	Vibe          string   `json:"vibe"`
	RoomType      string   `json:"roomType"`
	Amenities     []string `json:"amenities"`
}

// SubmissionFromAnswers flattens an AnswerSet into the wire payload.
func SubmissionFromAnswers(a Answers) Submission {
	amenities := append([]string{}, a[FieldAmenities].Selected...)
	return Submission{
		FullName:      strings.TrimSpace(a[FieldFullName].Text),
		PhoneNumber:   strings.TrimSpace(a[FieldPhoneNumber].Text),
		Email:         strings.TrimSpace(a[FieldEmail].Text),
		CompanyName:   strings.TrimSpace(a[FieldCompanyName].Text),
		Occasion:      strings.TrimSpace(a[FieldOccasion].Text),
		PeopleCount:   strings.TrimSpace(a[FieldPeopleCount].Text),
		PreferredDate: a[FieldPreferredDate].Text,
		Budget:        strings.TrimSpace(a[FieldBudget].Text),
		Vibe:          strings.TrimSpace(a[FieldVibe].Text),
		RoomType:      a[FieldRoomType].Text,
		Amenities:     amenities,
	}
}

// Attachment is a file carried by an outbound email.
type Attachment struct {
	Filename string
	Content  []byte
}

// Email is one message handed to the email collaborator.
type Email struct {
	From        string
	To          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Delivery is the outcome of one named send operation.
type Delivery struct {
	Operation string
	Recipient string
	MessageID string // provider id; empty when the send failed
	Err       error
}

// DeliveryReport accounts for every send operation issued for a submission.
type DeliveryReport struct {
	Deliveries []Delivery
}

// OK reports whether every operation succeeded.
func (r DeliveryReport) OK() bool {
	return len(r.Failed()) == 0
}

// Failed returns the operations that reported an error.
func (r DeliveryReport) Failed() []Delivery {
	var out []Delivery
	for _, d := range r.Deliveries {
		if d.Err != nil {
			out = append(out, d)
		}
	}
	return out
}

// Partial reports whether some, but not all, operations succeeded.
func (r DeliveryReport) Partial() bool {
	failed := len(r.Failed())
	return failed > 0 && failed < len(r.Deliveries)
}
