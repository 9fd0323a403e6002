package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aanandhisonduri/BigBrain/internal/data/redisstore"
	"github.com/aanandhisonduri/BigBrain/internal/domain/model"
	"github.com/aanandhisonduri/BigBrain/pkg/logging"
)

// RedisChatStore appends chat messages onto a chats:<documentId> list.
// RPUSH order is the persisted conversation order, which is what the
// question-before-answer invariant of the orchestrator leans on.
type RedisChatStore struct {
	store  *redisstore.Store
	logger *logging.Logger
}

func NewRedisChatStore(store *redisstore.Store) *RedisChatStore {
	return &RedisChatStore{
		store:  store,
		logger: logging.NewLogger("ChatStore"),
	}
}

func chatKey(documentId string) string {
	return "chats:" + documentId
}

func (s *RedisChatStore) Append(ctx context.Context, msg *model.ChatMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding chat message: %w", err)
	}
	if err := s.store.ListPush(ctx, chatKey(msg.DocumentId), data); err != nil {
		return fmt.Errorf("appending chat message: %w", err)
	}
	s.logger.Debug("Appended chat message", "documentId", msg.DocumentId, "isHuman", msg.IsHuman)
	return nil
}

func (s *RedisChatStore) ListByDocument(ctx context.Context, documentId string) ([]model.ChatMessage, error) {
	raw, err := s.store.ListGetAll(ctx, chatKey(documentId))
	if err != nil {
		return nil, fmt.Errorf("listing chat messages: %w", err)
	}
	messages := make([]model.ChatMessage, 0, len(raw))
	for _, item := range raw {
		var msg model.ChatMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("decoding chat message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (s *RedisChatStore) DeleteByDocument(ctx context.Context, documentId string) error {
	return s.store.Del(ctx, chatKey(documentId))
}
