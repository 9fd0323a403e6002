package store

import (
	"context"
	"sync"

	"github.com/aanandhisonduri/BigBrain/internal/domain/model"
)

// InMemoryChatStore keeps per-document message slices; append order is
// the persisted order.
type InMemoryChatStore struct {
	mu    sync.RWMutex
	chats map[string][]model.ChatMessage
}

func NewInMemoryChatStore() *InMemoryChatStore {
	return &InMemoryChatStore{
		chats: make(map[string][]model.ChatMessage),
	}
}

func (s *InMemoryChatStore) Append(ctx context.Context, msg *model.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats[msg.DocumentId] = append(s.chats[msg.DocumentId], *msg)
	return nil
}

func (s *InMemoryChatStore) ListByDocument(ctx context.Context, documentId string) ([]model.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	messages := make([]model.ChatMessage, len(s.chats[documentId]))
	copy(messages, s.chats[documentId])
	return messages, nil
}

func (s *InMemoryChatStore) DeleteByDocument(ctx context.Context, documentId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chats, documentId)
	return nil
}
