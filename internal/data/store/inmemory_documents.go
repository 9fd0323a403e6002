package store

import (
	"context"
	"sort"
	"sync"

	"github.com/aanandhisonduri/BigBrain/internal/domain/model"
)

type InMemoryDocumentStore struct {
	mu   sync.RWMutex
	docs map[string]model.Document
}

func NewInMemoryDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		docs: make(map[string]model.Document),
	}
}

func (s *InMemoryDocumentStore) Create(ctx context.Context, doc *model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.Id] = *doc
	return nil
}

func (s *InMemoryDocumentStore) Get(ctx context.Context, id string) (*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, found := s.docs[id]
	if !found {
		return nil, model.ErrNotFound
	}
	return &doc, nil
}

func (s *InMemoryDocumentStore) ListByOwner(ctx context.Context, ownerToken string) ([]*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]*model.Document, 0)
	for _, doc := range s.docs {
		if doc.OwnerToken == ownerToken {
			copied := doc
			docs = append(docs, &copied)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}

func (s *InMemoryDocumentStore) PatchDescription(ctx context.Context, id string, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, found := s.docs[id]
	if !found {
		return model.ErrNotFound
	}
	doc.Description = description
	s.docs[id] = doc
	return nil
}

func (s *InMemoryDocumentStore) PatchEmbedding(ctx context.Context, id string, embedding []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, found := s.docs[id]
	if !found {
		return model.ErrNotFound
	}
	doc.Embedding = embedding
	s.docs[id] = doc
	return nil
}

func (s *InMemoryDocumentStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.docs[id]; !found {
		return model.ErrNotFound
	}
	delete(s.docs, id)
	return nil
}
