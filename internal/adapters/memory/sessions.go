// Package memory is an in-process SessionStore for tests and for running
// without a database file.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/johnmikes100/concierge/internal/ports"
	"github.com/johnmikes100/concierge/internal/survey"
)

type Sessions struct {
	mu    sync.Mutex
	snaps map[string]survey.Snapshot
}

func NewSessions() *Sessions {
	return &Sessions{snaps: make(map[string]survey.Snapshot)}
}

func (s *Sessions) CreateSession(_ context.Context, id string, snap survey.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.snaps[id]; ok {
		return fmt.Errorf("session %s already exists", id)
	}
	s.snaps[id] = copySnapshot(snap)
	return nil
}

func (s *Sessions) GetSession(_ context.Context, id string) (survey.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.snaps[id]
	if !ok {
		return survey.Snapshot{}, ports.ErrSessionNotFound
	}
	return copySnapshot(snap), nil
}

func (s *Sessions) SaveSession(_ context.Context, id string, snap survey.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.snaps[id]; !ok {
		return ports.ErrSessionNotFound
	}
	s.snaps[id] = copySnapshot(snap)
	return nil
}

func (s *Sessions) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snaps, id)
	return nil
}

func copySnapshot(snap survey.Snapshot) survey.Snapshot {
	snap.Answers = snap.Answers.Clone()
	return snap
}
