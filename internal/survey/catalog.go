// Package survey drives the Concierge questionnaire: the static question
// catalog and the per-session controller that moves a user through it.
package survey

import (
	"fmt"

	"github.com/johnmikes100/concierge/internal/domain"
)

// Catalog is an ordered, immutable list of questions. List order is
// navigation order.
type Catalog struct {
	questions []domain.Question
	index     map[string]int
}

// NewCatalog validates the question list and returns a catalog over a copy of it.
func NewCatalog(questions []domain.Question) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("catalog: no questions")
	}
	c := &Catalog{
		questions: make([]domain.Question, len(questions)),
		index:     make(map[string]int, len(questions)),
	}
	for i, q := range questions {
		if q.ID == "" {
			return nil, fmt.Errorf("catalog: question %d has no id", i)
		}
		if _, dup := c.index[q.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate question id %q", q.ID)
		}
		if q.Kind.HasChoices() != (len(q.Choices) > 0) {
			return nil, fmt.Errorf("catalog: question %q: choices do not match kind %s", q.ID, q.Kind)
		}
		q.Choices = append([]string(nil), q.Choices...)
		c.questions[i] = q
		c.index[q.ID] = i
	}
	return c, nil
}

// MustNewCatalog is NewCatalog for static question lists.
func MustNewCatalog(questions []domain.Question) *Catalog {
	c, err := NewCatalog(questions)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Len() int { return len(c.questions) }

// At returns the question at step i. i must be in [0, Len()).
func (c *Catalog) At(i int) domain.Question { return c.questions[i] }

// Lookup returns the question with the given id.
func (c *Catalog) Lookup(id string) (domain.Question, bool) {
	i, ok := c.index[id]
	if !ok {
		return domain.Question{}, false
	}
	return c.questions[i], true
}

// Questions returns a copy of the ordered question list.
func (c *Catalog) Questions() []domain.Question {
	return append([]domain.Question(nil), c.questions...)
}

// EmptyAnswers returns an AnswerSet with every field present and empty.
func (c *Catalog) EmptyAnswers() domain.Answers {
	a := make(domain.Answers, len(c.questions))
	for _, q := range c.questions {
		a[q.ID] = domain.Answer{}
	}
	return a
}

// Concierge returns the event-planning questionnaire.
func Concierge() *Catalog {
	return MustNewCatalog([]domain.Question{
		{ID: domain.FieldOccasion, Prompt: "What's the occasion?", Kind: domain.KindShortText},
		{ID: domain.FieldPeopleCount, Prompt: "Roughly how many people are you expecting?", Kind: domain.KindShortText},
		{ID: domain.FieldPreferredDate, Prompt: "What's your preferred date?", Kind: domain.KindDate},
		{ID: domain.FieldBudget, Prompt: "What is the estimated total budget?", Kind: domain.KindShortText},
		{ID: domain.FieldVibe, Prompt: `What "Vibe" are you looking for?`, Kind: domain.KindShortText},
		{
			ID:      domain.FieldRoomType,
			Prompt:  `Do you need a private room, or is a reserved "section" okay?`,
			Kind:    domain.KindSingleChoice,
			Choices: []string{"Private room", "Reserved section is fine", "No preference for now"},
		},
		{
			ID:      domain.FieldAmenities,
			Prompt:  `Any "Must-Have" amenities?`,
			Kind:    domain.KindMultiChoice,
			Choices: []string{"Wi-Fi", "AV Equipment", "Outdoor Space", "Parking", "Accessible", "Other"},
		},
		{ID: domain.FieldCompanyName, Prompt: "What is the name of your company?", Kind: domain.KindShortText},
		{ID: domain.FieldFullName, Prompt: "Full name", Kind: domain.KindShortText},
		{ID: domain.FieldPhoneNumber, Prompt: "Phone number", Kind: domain.KindPhone},
		{
			ID:      domain.FieldEmail,
			Prompt:  "Email address",
			Subtext: "We will personally send you our suggestions ;)",
			Kind:    domain.KindEmail,
		},
	})
}
