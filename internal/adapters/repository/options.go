package repository

import "io/fs"

// Default file store permissions.
const (
	defaultDirMode  fs.FileMode = 0o700
	defaultFileMode fs.FileMode = 0o600
)

// FileOption applies a configuration option to the FileStore.
type FileOption func(*FileStore)

// WithDirMode sets the permission bits used when creating the store directory.
func WithDirMode(mode fs.FileMode) FileOption {
	return func(s *FileStore) {
		if mode != 0 {
			s.dirMode = mode
		}
	}
}

// WithFileMode sets the permission bits of value files.
func WithFileMode(mode fs.FileMode) FileOption {
	return func(s *FileStore) {
		if mode != 0 {
			s.fileMode = mode
		}
	}
}
