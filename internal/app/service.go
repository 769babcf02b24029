// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/fitcheck/internal/adapters/repository"
	"github.com/okian/fitcheck/internal/domain/bmi"
	"github.com/okian/fitcheck/internal/domain/history"
	"github.com/okian/fitcheck/internal/domain/model"
	"github.com/okian/fitcheck/pkg/logger"
	"github.com/okian/fitcheck/pkg/metrics"
)

// ErrNotConfirmed is returned by Clear when the user did not confirm.
var ErrNotConfirmed = errors.New("clearing history requires confirmation")

// Outcome is the result of a successful submission.
type Outcome struct {
	Result  bmi.Result           `json:"result"`
	Entry   model.HistoryEntry   `json:"entry"`
	History []model.HistoryEntry `json:"history"`
}

// Service translates UI events (unit change, submit, clear) into calculator
// and history calls.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   repository.Store
	history *history.Store

	// Configuration
	historyLimit int
	location     *time.Location
	now          func() time.Time

	// State
	started     bool
	submissions int64
	rejections  int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the key-value store history is persisted in.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithHistoryLimit sets the maximum number of history entries.
func WithHistoryLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.historyLimit = limit
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLocation sets the time zone history timestamps are rendered in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithClock overrides the time source used to stamp new entries.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service. Without WithStore history lives in memory.
func New(opts ...Option) *Service {
	s := &Service{
		historyLimit: history.MaxHistory,
		location:     time.Local,
		now:          time.Now,
		logger:       logger.Discard(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	s.history = history.NewStore(s.store,
		history.WithLimit(s.historyLimit),
		history.WithLogger(s.logger.Named("history")),
	)

	return s
}

// Start reads the persisted history once so an unreadable store is reported
// at startup rather than on the first request.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	entries := s.history.Load(ctx)
	metrics.UpdateHistorySize(len(entries))
	s.started = true

	s.logger.Info(ctx, "service started",
		logger.Int("history", len(entries)),
		logger.Int("historyLimit", s.historyLimit),
	)
	return nil
}

// Stop releases the underlying store.
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return s.store.Close()
	}
	s.started = false
	s.logger.Info(context.Background(), "service stopped")
	return s.store.Close()
}

// Units returns the labels and placeholders for a unit system.
func (s *Service) Units(unit model.MeasurementUnit) model.UnitLabels {
	return unit.Labels()
}

// Submit validates and computes a BMI, then records it in history.
// Validation errors are returned unwrapped and leave history untouched.
func (s *Service) Submit(ctx context.Context, unit model.MeasurementUnit, weight, height string) (Outcome, error) {
	res, err := bmi.Compute(unit, weight, height)
	if err != nil {
		s.mu.Lock()
		s.rejections++
		s.mu.Unlock()

		reason := bmi.Reason(err)
		metrics.RecordValidationFailure(reason)
		s.logger.Debug(ctx, "submission rejected",
			logger.String("unit", unit.String()),
			logger.String("reason", reason),
		)
		return Outcome{}, err
	}

	metrics.RecordComputation(unit.String(), string(res.Category), res.BMI)

	entry := model.NewHistoryEntry(unit, res.Weight, res.Height, res.BMI, string(res.Category), s.now())
	entries, err := s.history.Append(ctx, entry)
	if err != nil {
		s.logger.Error(ctx, "failed to record history entry", logger.Error(err))
		return Outcome{Result: res, Entry: entry}, fmt.Errorf("record history: %w", err)
	}

	s.mu.Lock()
	s.submissions++
	s.mu.Unlock()

	s.logger.Info(ctx, "bmi computed",
		logger.String("unit", unit.String()),
		logger.Float64("bmi", res.BMI),
		logger.String("category", string(res.Category)),
		logger.Int("history", len(entries)),
	)

	return Outcome{Result: res, Entry: entry, History: entries}, nil
}

// History returns the persisted entries, newest first.
func (s *Service) History(ctx context.Context) []model.HistoryEntry {
	return s.history.Load(ctx)
}

// Rows returns the persisted history formatted for display.
func (s *Service) Rows(ctx context.Context) []history.Row {
	return history.Rows(s.history.Load(ctx), s.location)
}

// Clear removes all history once the user has confirmed.
func (s *Service) Clear(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	if err := s.history.Clear(ctx); err != nil {
		s.logger.Error(ctx, "failed to clear history", logger.Error(err))
		return err
	}
	s.logger.Info(ctx, "history cleared")
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	size := len(s.history.Load(context.Background()))
	metrics.UpdateHistorySize(size)

	return map[string]interface{}{
		"started":      s.started,
		"historySize":  size,
		"historyLimit": s.historyLimit,
		"submissions":  s.submissions,
		"rejections":   s.rejections,
	}
}
