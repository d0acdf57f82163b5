package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested path does not exist in storage.
var ErrNotFound = errors.New("not found")

// Object is a file entry returned by List.
type Object struct {
	Path    string
	ModTime time.Time
}

// Storage is a read-only view over a tree of documents. Paths are slash
// separated and relative to the storage root; the empty path is the root.
type Storage interface {
	Read(ctx context.Context, path string) ([]byte, error)
	// List returns the files directly under prefix, sorted by path.
	List(ctx context.Context, prefix string) ([]Object, error)
	// ListDirs returns the directories directly under prefix, sorted by path.
	ListDirs(ctx context.Context, prefix string) ([]string, error)
	// Exists reports whether path names a file or a directory.
	Exists(ctx context.Context, path string) (bool, error)
}
