// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/okian/mergington/internal/adapters/repository"
	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/internal/domain/seed"
	"github.com/okian/mergington/pkg/logger"
	"github.com/okian/mergington/pkg/metrics"
)

// ErrNotStarted is returned by roster operations before Start.
var ErrNotStarted = errors.New("service not started")

// Service implements the API dependencies for the activity directory.
type Service struct {
	mu sync.RWMutex

	store repository.Store

	// Configuration
	seedFile string
	catalog  model.Catalog

	// State
	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSeedFile makes Start load the roster from a YAML file instead of the built-in catalog.
func WithSeedFile(path string) Option {
	return func(s *Service) {
		s.seedFile = path
	}
}

// WithCatalog sets the seed roster directly. It takes precedence over WithSeedFile.
func WithCatalog(c model.Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c.Clone()
		}
	}
}

// WithStore injects a pre-built store. Start will still seed it.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start resolves the seed roster and loads it into the store.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting activities service...")

	if s.catalog == nil {
		c, err := s.loadSeed(ctx)
		if err != nil {
			return fmt.Errorf("service start: %w", err)
		}
		s.catalog = c
	}

	if s.store == nil {
		s.store = repository.NewMemStore(ctx, repository.WithCatalog(s.catalog))
	} else {
		s.store.Replace(ctx, s.catalog)
	}

	s.started = true
	s.logger.Info(ctx, "activities service started",
		logger.Int("activities", len(s.catalog)),
		logger.Int("participants", s.catalog.Participants()),
		logger.String("seedFile", s.seedFile),
		logger.Bool("builtinCatalog", s.seedFile == ""),
	)

	return nil
}

func (s *Service) loadSeed(ctx context.Context) (model.Catalog, error) {
	if s.seedFile == "" {
		return seed.Default(), nil
	}
	s.logger.Info(ctx, "loading seed file", logger.String("path", s.seedFile))
	return seed.LoadFile(ctx, s.seedFile)
}

// Stop marks the service stopped. The roster is kept in memory until the process exits.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "activities service stopped")
}

func (s *Service) activeStore() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// Activities returns every activity with its current participants.
func (s *Service) Activities(ctx context.Context) (model.Catalog, error) {
	store, err := s.activeStore()
	if err != nil {
		return nil, err
	}
	return store.List(ctx), nil
}

// Signup enrolls email in the named activity.
func (s *Service) Signup(ctx context.Context, activity, email string) error {
	store, err := s.activeStore()
	if err != nil {
		return err
	}

	err = store.Signup(ctx, activity, email)
	metrics.RecordSignup(metricActivity(activity, err), outcome(err))
	if err != nil {
		s.logger.Debug(ctx, "signup rejected",
			logger.String("activity", activity),
			logger.String("email", email),
			logger.Error(err),
		)
		return err
	}

	s.logger.Info(ctx, "student signed up",
		logger.String("activity", activity),
		logger.String("email", email),
	)
	return nil
}

// Unregister removes email from the named activity.
func (s *Service) Unregister(ctx context.Context, activity, email string) error {
	store, err := s.activeStore()
	if err != nil {
		return err
	}

	err = store.Remove(ctx, activity, email)
	metrics.RecordRemoval(metricActivity(activity, err), outcome(err))
	if err != nil {
		s.logger.Debug(ctx, "removal rejected",
			logger.String("activity", activity),
			logger.String("email", email),
			logger.Error(err),
		)
		return err
	}

	s.logger.Info(ctx, "student removed",
		logger.String("activity", activity),
		logger.String("email", email),
	)
	return nil
}

// ResetRoster restores every activity to its seed participants.
func (s *Service) ResetRoster(ctx context.Context) error {
	store, err := s.activeStore()
	if err != nil {
		return err
	}

	s.mu.RLock()
	c := s.catalog
	s.mu.RUnlock()

	store.Replace(ctx, c)
	metrics.RecordRosterReset()
	s.logger.Info(ctx, "roster reset to seed", logger.Int("activities", len(c)))
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
	}

	if s.started {
		c := s.store.List(context.Background())
		stats["activities"] = len(c)
		stats["participants"] = c.Participants()
		stats["capacity"] = c.Capacity()
		stats["spots_left"] = c.SpotsLeft()
	}

	return stats
}

// metricActivity keeps label cardinality bounded: unknown names share one label.
func metricActivity(name string, err error) string {
	if errors.Is(err, repository.ErrActivityNotFound) {
		return "unknown"
	}
	return name
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, repository.ErrActivityNotFound), errors.Is(err, repository.ErrParticipantNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, repository.ErrActivityFull):
		return metrics.OutcomeFull
	default:
		return metrics.OutcomeConflict
	}
}
