// Package history keeps the bounded, newest-first log of past BMI computations
// on top of an injected key-value store.
package history

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/okian/fitcheck/internal/domain/model"
	"github.com/okian/fitcheck/pkg/logger"
	"github.com/okian/fitcheck/pkg/metrics"
)

// Persistence constants.
const (
	// StorageKey holds the whole encoded history.
	StorageKey = "fitcheck.history.v1"
	// MaxHistory is the default number of entries kept.
	MaxHistory = 10
)

// KeyValue is the storage the history is persisted in.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithLimit sets the maximum number of entries kept.
func WithLimit(limit int) Option {
	return func(s *Store) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used to report recovered read failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Store is the persisted history log.
type Store struct {
	// mu serializes read-modify-write cycles within this process only.
	mu     sync.Mutex
	kv     KeyValue
	key    string
	limit  int
	logger logger.Logger
}

// NewStore creates a history Store persisting into kv.
func NewStore(kv KeyValue, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		key:    StorageKey,
		limit:  MaxHistory,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Limit returns the maximum number of entries kept.
func (s *Store) Limit() int { return s.limit }

// Load returns the persisted entries, newest first. A missing, unreadable or
// corrupt value yields an empty slice; the failure is logged, never returned.
func (s *Store) Load(ctx context.Context) []model.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) []model.HistoryEntry {
	entries, err := s.read(ctx)
	if err != nil {
		cause := "decode"
		if errors.Is(err, errStorageRead) {
			cause = "storage"
		}
		metrics.RecordHistoryReadRecovery(cause)
		s.logger.Warn(ctx, "history unreadable, starting empty",
			logger.String("key", s.key),
			logger.String("cause", cause),
			logger.Error(err),
		)
		return []model.HistoryEntry{}
	}
	return entries
}

// read is the Result-returning step behind load.
func (s *Store) read(ctx context.Context) ([]model.HistoryEntry, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrPersistenceReadFailed, errStorageRead, err)
	}
	if !ok {
		return []model.HistoryEntry{}, nil
	}
	entries, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistenceReadFailed, err)
	}
	return entries, nil
}

// Append puts entry at the front, truncates to the limit, persists the result
// and returns the persisted sequence.
func (s *Store) Append(ctx context.Context, entry model.HistoryEntry) ([]model.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.load(ctx)
	n := min(len(current)+1, s.limit)
	next := make([]model.HistoryEntry, 0, n)
	next = append(next, entry)
	next = append(next, current[:n-1]...)

	raw, err := Encode(next)
	if err != nil {
		metrics.RecordHistoryWriteError()
		return nil, fmt.Errorf("%w: %w", ErrPersistenceWriteFailed, err)
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		metrics.RecordHistoryWriteError()
		return nil, fmt.Errorf("%w: %w", ErrPersistenceWriteFailed, err)
	}

	metrics.RecordHistoryAppend()
	metrics.UpdateHistorySize(len(next))
	return next, nil
}

// Clear removes all persisted history. Callers confirm with the user first.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(ctx, s.key); err != nil {
		metrics.RecordHistoryWriteError()
		return fmt.Errorf("%w: %w", ErrPersistenceWriteFailed, err)
	}
	metrics.RecordHistoryClear()
	metrics.UpdateHistorySize(0)
	return nil
}
