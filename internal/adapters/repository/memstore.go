package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/metrics"
)

// MemStore is an in-memory Store guarded by a single RWMutex.
type MemStore struct {
	mu         sync.RWMutex
	activities model.Catalog
}

// NewMemStore constructs an empty store; use WithCatalog to seed it.
func NewMemStore(_ context.Context, opts ...Option) *MemStore {
	s := &MemStore{
		activities: make(model.Catalog),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.mu.RLock()
	publishAll(s.activities)
	s.mu.RUnlock()

	return s
}

// List implements Store.List.
func (s *MemStore) List(_ context.Context) model.Catalog {
	defer observe("list", time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activities.Clone()
}

// Get implements Store.Get.
func (s *MemStore) Get(_ context.Context, name string) (model.Activity, error) {
	defer observe("get", time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.activities[name]
	if !ok {
		return model.Activity{}, ErrActivityNotFound
	}
	return a.Clone(), nil
}

// Signup implements Store.Signup.
func (s *MemStore) Signup(_ context.Context, name, email string) error {
	defer observe("signup", time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[name]
	switch {
	case !ok:
		return ErrActivityNotFound
	case a.Has(email):
		return ErrAlreadySignedUp
	case a.Full():
		return ErrActivityFull
	}

	// Copy on write so clones handed out earlier never observe the append.
	participants := make([]string, len(a.Participants), len(a.Participants)+1)
	copy(participants, a.Participants)
	a.Participants = append(participants, email)
	s.activities[name] = a

	publish(s.activities, name)
	return nil
}

// Remove implements Store.Remove.
func (s *MemStore) Remove(_ context.Context, name, email string) error {
	defer observe("remove", time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[name]
	if !ok {
		return ErrActivityNotFound
	}
	rest, found := a.Without(email)
	if !found {
		return ErrParticipantNotFound
	}
	a.Participants = rest
	s.activities[name] = a

	publish(s.activities, name)
	return nil
}

// Replace implements Store.Replace.
func (s *MemStore) Replace(_ context.Context, c model.Catalog) {
	defer observe("replace", time.Now())

	next := c.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = next

	metrics.ResetActivities()
	publishAll(s.activities)
}

// Count implements Store.Count.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.activities)
}

func observe(op string, start time.Time) {
	metrics.RecordStoreLatency(op, float64(time.Since(start).Microseconds())/1000)
}

// publish refreshes gauges after a change to one activity. Caller holds the lock.
func publish(c model.Catalog, name string) {
	a := c[name]
	metrics.UpdateActivity(name, len(a.Participants), a.MaxParticipants)
	metrics.UpdateTotals(len(c), c.Participants())
}

// publishAll refreshes every gauge. Caller holds the lock.
func publishAll(c model.Catalog) {
	for name, a := range c {
		metrics.UpdateActivity(name, len(a.Participants), a.MaxParticipants)
	}
	metrics.UpdateTotals(len(c), c.Participants())
}
