package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
)

// LocalStorage implements Storage using the local filesystem.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a LocalStorage rooted at basePath. The directory is
// not created; a missing root surfaces through Exists.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base path: %w", err)
	}
	return &LocalStorage{basePath: abs}, nil
}

// Dir returns the absolute root directory.
func (s *LocalStorage) Dir() string {
	return s.basePath
}

func (s *LocalStorage) resolve(p string) string {
	return filepath.Join(s.basePath, filepath.FromSlash(path.Clean("/"+p)))
}

func (s *LocalStorage) Read(_ context.Context, p string) ([]byte, error) {
	data, err := os.ReadFile(s.resolve(p))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", p, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return data, nil
}

func (s *LocalStorage) List(_ context.Context, prefix string) ([]Object, error) {
	entries, err := s.readDir(prefix)
	if err != nil {
		return nil, err
	}
	var objects []Object
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		obj := Object{Path: join(prefix, entry.Name())}
		if info, err := entry.Info(); err == nil {
			obj.ModTime = info.ModTime()
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

func (s *LocalStorage) ListDirs(_ context.Context, prefix string) ([]string, error) {
	entries, err := s.readDir(prefix)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, join(prefix, entry.Name()))
		}
	}
	return dirs, nil
}

func (s *LocalStorage) readDir(prefix string) ([]os.DirEntry, error) {
	// os.ReadDir returns entries sorted by filename.
	entries, err := os.ReadDir(s.resolve(prefix))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", prefix, err)
	}
	return entries, nil
}

func (s *LocalStorage) Exists(_ context.Context, p string) (bool, error) {
	_, err := os.Stat(s.resolve(p))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", p, err)
	}
	return true, nil
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}
