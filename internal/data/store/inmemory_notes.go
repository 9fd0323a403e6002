package store

import (
	"context"
	"sort"
	"sync"

	"github.com/aanandhisonduri/BigBrain/internal/domain/model"
)

// InMemoryNoteStore is the fallback when redis is offline, and the
// store used in most tests. Records are copied on the way in and out so
// callers can't mutate stored state; patches touch a single field.
type InMemoryNoteStore struct {
	mu    sync.RWMutex
	notes map[string]model.Note
}

func NewInMemoryNoteStore() *InMemoryNoteStore {
	return &InMemoryNoteStore{
		notes: make(map[string]model.Note),
	}
}

func (s *InMemoryNoteStore) Create(ctx context.Context, note *model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes[note.Id] = *note
	return nil
}

func (s *InMemoryNoteStore) Get(ctx context.Context, id string) (*model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	note, found := s.notes[id]
	if !found {
		return nil, model.ErrNotFound
	}
	return &note, nil
}

func (s *InMemoryNoteStore) ListByOwner(ctx context.Context, ownerToken string) ([]*model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	notes := make([]*model.Note, 0)
	for _, note := range s.notes {
		if note.OwnerToken == ownerToken {
			copied := note
			notes = append(notes, &copied)
		}
	}
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
	return notes, nil
}

func (s *InMemoryNoteStore) PatchEmbedding(ctx context.Context, id string, embedding []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	note, found := s.notes[id]
	if !found {
		return model.ErrNotFound
	}
	note.Embedding = embedding
	s.notes[id] = note
	return nil
}

func (s *InMemoryNoteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.notes[id]; !found {
		return model.ErrNotFound
	}
	delete(s.notes, id)
	return nil
}
