// Package memory is a process-local activity store.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/mergington/activities/backend/internal/storage"
	"github.com/mergington/activities/shared/domain"
)

type Storage struct {
	mu         sync.RWMutex
	activities []domain.Activity
	index      map[string]int
}

var _ storage.Storage = (*Storage)(nil)

// New copies activities, so the caller's slice is never mutated.
func New(activities []domain.Activity) *Storage {
	s := &Storage{
		activities: make([]domain.Activity, len(activities)),
		index:      make(map[string]int, len(activities)),
	}
	for i, a := range activities {
		a.Participants = slices.Clone(a.Participants)
		s.activities[i] = a
		s.index[a.Name] = i
	}
	return s
}

func (s *Storage) Activities(ctx context.Context) ([]domain.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Activity, len(s.activities))
	for i, a := range s.activities {
		a.Participants = slices.Clone(a.Participants)
		if a.Participants == nil {
			a.Participants = []domain.Email{}
		}
		out[i] = a
	}
	return out, nil
}

func (s *Storage) AddParticipant(ctx context.Context, activity string, email domain.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[activity]
	if !ok {
		return storage.ErrNotFound
	}
	a := &s.activities[i]
	if a.HasParticipant(email) {
		return storage.ErrAlreadyRegistered
	}
	if len(a.Participants) >= a.MaxParticipants {
		return storage.ErrFull
	}
	a.Participants = append(a.Participants, email)
	return nil
}

func (s *Storage) RemoveParticipant(ctx context.Context, activity string, email domain.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[activity]
	if !ok {
		return storage.ErrNotFound
	}
	a := &s.activities[i]
	j := slices.Index(a.Participants, email)
	if j < 0 {
		return storage.ErrNotRegistered
	}
	a.Participants = slices.Delete(a.Participants, j, j+1)
	return nil
}

func (s *Storage) Ping(ctx context.Context) error { return nil }

func (s *Storage) Cleanup() error { return nil }
