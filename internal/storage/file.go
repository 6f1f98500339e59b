package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// FileKV stores every key in a single JSON object file.
// The whole file is rewritten on each Set.
type FileKV struct {
	mu     sync.RWMutex
	values map[string]string
	file   string
	log    zerolog.Logger
}

// NewFileKV opens (or prepares) the JSON file store at filePath
func NewFileKV(filePath string, log zerolog.Logger) (*FileKV, error) {
	s := &FileKV{
		values: make(map[string]string),
		file:   filePath,
		log:    log.With().Str("component", "file-store").Logger(),
	}

	// Load existing data if file exists
	if _, err := os.Stat(filePath); err == nil {
		if err := s.load(); err != nil {
			// keep the damaged file around and start from scratch
			backup := filePath + ".corrupt"
			if renameErr := os.Rename(filePath, backup); renameErr != nil {
				return nil, fmt.Errorf("failed to load storage: %w", err)
			}
			s.log.Warn().Err(err).Str("backup", backup).Msg("Store file unreadable, starting empty")
		}
	}

	return s, nil
}

func (s *FileKV) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok
}

func (s *FileKV) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.values[key]
	s.values[key] = value
	if err := s.save(); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

// save writes all values to the file
func (s *FileKV) save() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	// Ensure directory exists
	dir := filepath.Dir(s.file)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp := s.file + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, s.file); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}
	return nil
}

// load reads all values from the file
func (s *FileKV) load() error {
	data, err := os.ReadFile(s.file)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if len(data) == 0 {
		return nil
	}

	values := make(map[string]string)
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("failed to unmarshal data: %w", err)
	}
	s.values = values

	return nil
}
