package memblob

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/aanandhisonduri/BigBrain/internal/domain/model"
	"github.com/google/uuid"
)

// Store is the in-memory blob fallback used in tests and when no S3
// bucket is configured. Upload URLs are opaque placeholders; tests seed
// files with Put.
type Store struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewStore() *Store {
	return &Store{
		files: make(map[string][]byte),
	}
}

func (s *Store) Put(fileId string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[fileId] = data
}

func (s *Store) Get(ctx context.Context, fileId string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, found := s.files[fileId]
	if !found {
		return nil, model.ErrFileNotFound
	}
	copied := make([]byte, len(data))
	copy(copied, data)
	return copied, nil
}

func (s *Store) Delete(ctx context.Context, fileId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, fileId)
	return nil
}

func (s *Store) GenerateUploadURL(ctx context.Context, filename string) (string, string, error) {
	key := fmt.Sprintf("uploads/%s%s", uuid.New(), filepath.Ext(filename))
	return key, "memory://" + key, nil
}

func (s *Store) GenerateDownloadURL(ctx context.Context, fileId string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, found := s.files[fileId]; !found {
		return "", model.ErrFileNotFound
	}
	return "memory://" + fileId, nil
}
