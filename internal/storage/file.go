package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// fileStore persists values as a JSON object in a single file. Every write
// rewrites the file through a temporary file and rename.
type fileStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
	logger zerolog.Logger
}

// NewFileStore opens the store at path, creating parent directories as needed.
// A missing file is treated as an empty store.
func NewFileStore(path string, logger zerolog.Logger) (Store, error) {
	logger = logger.With().Str("component", "file-storage").Logger()

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	values := make(map[string]string)
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Debug().Str("path", path).Msg("storage file not found, starting empty")
	case err != nil:
		return nil, fmt.Errorf("failed to read storage file %s: %w", path, err)
	case len(data) > 0:
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("failed to decode storage file %s: %w", path, err)
		}
	}

	logger.Info().Str("path", path).Int("keys", len(values)).Msg("file storage opened")

	return &fileStore{
		path:   path,
		values: values,
		logger: logger,
	}, nil
}

func (s *fileStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *fileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.values[key]
	s.values[key] = value
	if err := s.flush(); err != nil {
		if existed {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

func (s *fileStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.values[key]
	if !existed {
		return nil
	}
	delete(s.values, key)
	if err := s.flush(); err != nil {
		s.values[key] = prev
		return err
	}
	return nil
}

// flush must be called with mu held.
func (s *fileStore) flush() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".storage-*")
	if err != nil {
		return fmt.Errorf("failed to create temp storage file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close storage file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("failed to replace storage file")
		return fmt.Errorf("failed to replace storage file: %w", err)
	}
	return nil
}
