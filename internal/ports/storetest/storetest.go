// Package storetest holds the behavior every ports.SessionStore must share.
package storetest

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/johnmikes100/concierge/internal/domain"
	"github.com/johnmikes100/concierge/internal/ports"
	"github.com/johnmikes100/concierge/internal/survey"
)

// Run exercises create, get, save and delete against store.
func Run(t *testing.T, store ports.SessionStore) {
	t.Helper()
	ctx := context.Background()

	if _, err := store.GetSession(ctx, "missing"); !errors.Is(err, ports.ErrSessionNotFound) {
		t.Fatalf("get missing: got %v, want ErrSessionNotFound", err)
	}
	if err := store.SaveSession(ctx, "missing", survey.Snapshot{}); !errors.Is(err, ports.ErrSessionNotFound) {
		t.Fatalf("save missing: got %v, want ErrSessionNotFound", err)
	}

	c := survey.New(survey.Concierge())
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	snap := c.Snapshot()
	if err := store.CreateSession(ctx, "s1", snap); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := store.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Phase != survey.PhaseInProgress || got.Step != 0 || len(got.Answers) != survey.Concierge().Len() {
		t.Fatalf("unexpected snapshot: %+v", got)
	}

	snap.Step = 6
	snap.Direction = survey.Back
	snap.SettleUntil = time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	snap.Answers[domain.FieldAmenities] = domain.Answer{Selected: []string{"Parking", "Wi-Fi"}}
	snap.Answers[domain.FieldOccasion] = domain.Answer{Text: "Offsite"}
	snap.Notice = survey.FailureNotice
	if err := store.SaveSession(ctx, "s1", snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err = store.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("get after save: %v", err)
	}
	if got.Step != 6 || got.Direction != survey.Back || got.Notice != survey.FailureNotice {
		t.Fatalf("unexpected snapshot after save: %+v", got)
	}
	if !got.SettleUntil.Equal(snap.SettleUntil) {
		t.Fatalf("settle time = %v, want %v", got.SettleUntil, snap.SettleUntil)
	}
	if !reflect.DeepEqual(got.Answers[domain.FieldAmenities].Selected, []string{"Parking", "Wi-Fi"}) {
		t.Fatalf("amenities = %v", got.Answers[domain.FieldAmenities])
	}
	if got.Answers[domain.FieldOccasion].Text != "Offsite" {
		t.Fatalf("occasion = %v", got.Answers[domain.FieldOccasion])
	}

	if err := store.DeleteSession(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetSession(ctx, "s1"); !errors.Is(err, ports.ErrSessionNotFound) {
		t.Fatalf("get after delete: got %v", err)
	}
}
