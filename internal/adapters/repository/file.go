package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/okian/fitcheck/pkg/metrics"
)

// FileStore keeps one file per key under a directory. Writes go to a
// temporary file that is renamed over the target.
type FileStore struct {
	mu       sync.Mutex
	dir      string
	dirMode  fs.FileMode
	fileMode fs.FileMode
}

// NewFileStore creates the directory if needed and returns a store rooted at it.
func NewFileStore(dir string, opts ...FileOption) (*FileStore, error) {
	s := &FileStore{
		dir:      dir,
		dirMode:  defaultDirMode,
		fileMode: defaultFileMode,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := os.MkdirAll(dir, s.dirMode); err != nil {
		return nil, fmt.Errorf("create store dir %q: %w", dir, err)
	}
	return s, nil
}

// path maps key to a file name. Keys are used verbatim, so they must not
// contain path separators.
func (s *FileStore) path(key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Get returns the value stored under key.
func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	start := time.Now()
	defer func() { metrics.RecordStorageLatency(DriverFile, "get", msSince(start)) }()

	p, err := s.path(key)
	if err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %q: %w", key, err)
	}
	return string(b), true, nil
}

// Set stores value under key.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	start := time.Now()
	defer func() { metrics.RecordStorageLatency(DriverFile, "set", msSince(start)) }()

	p, err := s.path(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, "."+key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %q: %w", key, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %q: %w", key, err)
	}
	if err := tmp.Chmod(s.fileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %q: %w", key, err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		return fmt.Errorf("rename %q: %w", key, err)
	}
	return nil
}

// Remove deletes key.
func (s *FileStore) Remove(_ context.Context, key string) error {
	start := time.Now()
	defer func() { metrics.RecordStorageLatency(DriverFile, "remove", msSince(start)) }()

	p, err := s.path(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

// Close is a no-op; files are not held open between calls.
func (s *FileStore) Close() error { return nil }

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
