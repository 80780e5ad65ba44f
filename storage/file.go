package storage

import (
	"os"
	"path/filepath"
)

// FileStore keeps each named document as one file in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store over
// it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Save writes a document file.
func (s *FileStore) Save(name string, data []byte) error {
	return os.WriteFile(s.path(name), data, 0o644)
}

// Load reads a document file. A missing file returns nil data and no
// error.
func (s *FileStore) Load(name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return nil, nil
	}
	return data, err
}
