package cart

import (
	"fmt"
	"os"
	"sync"
)

// Storage persists the cart snapshot between runs. Load returns (nil, nil)
// when no snapshot exists yet.
type Storage interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// FileStorage keeps the snapshot in a single JSON file.
type FileStorage struct {
	path string
	mu   sync.Mutex
}

// NewFileStorage creates a file-backed Storage at path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{
		path: path,
	}
}

// Load reads the snapshot file.
func (s *FileStorage) Load() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cart snapshot: %w", err)
	}
	return data, nil
}

// Save writes the snapshot file atomically via a temp file rename.
func (s *FileStorage) Save(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write cart snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace cart snapshot: %w", err)
	}
	return nil
}

// MemoryStorage is an in-process Storage for tests and single-run setups.
type MemoryStorage struct {
	data []byte
	mu   sync.Mutex
}

// NewMemoryStorage creates an empty MemoryStorage, optionally pre-seeded.
func NewMemoryStorage(seed []byte) *MemoryStorage {
	return &MemoryStorage{
		data: seed,
	}
}

// Load returns the stored snapshot.
func (s *MemoryStorage) Load() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data, nil
}

// Save replaces the stored snapshot.
func (s *MemoryStorage) Save(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	return nil
}
