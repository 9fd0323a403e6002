package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/aanandhisonduri/BigBrain/internal/data/redisstore"
	"github.com/aanandhisonduri/BigBrain/internal/domain/model"
	"github.com/aanandhisonduri/BigBrain/pkg/logging"
)

// RedisNoteStore keeps each note as a hash under note:<id> plus a set
// owner:<token>:notes as the owner index. Hash fields give us the
// field-level patch semantics the embedding pipeline relies on.
type RedisNoteStore struct {
	store  *redisstore.Store
	logger *logging.Logger
}

func NewRedisNoteStore(store *redisstore.Store) *RedisNoteStore {
	return &RedisNoteStore{
		store:  store,
		logger: logging.NewLogger("NoteStore"),
	}
}

func noteKey(id string) string {
	return "note:" + id
}

func noteOwnerKey(ownerToken string) string {
	return "owner:" + ownerToken + ":notes"
}

func (s *RedisNoteStore) Create(ctx context.Context, note *model.Note) error {
	fields := map[string]interface{}{
		"id":          note.Id,
		"owner_token": note.OwnerToken,
		"text":        note.Text,
		"created_at":  encodeTime(note.CreatedAt),
	}
	if err := s.store.HSet(ctx, noteKey(note.Id), fields); err != nil {
		return fmt.Errorf("saving note: %w", err)
	}
	return s.store.SAdd(ctx, noteOwnerKey(note.OwnerToken), note.Id)
}

func (s *RedisNoteStore) Get(ctx context.Context, id string) (*model.Note, error) {
	fields, err := s.store.HGetAll(ctx, noteKey(id))
	if err != nil {
		return nil, fmt.Errorf("loading note: %w", err)
	}
	if len(fields) == 0 {
		return nil, model.ErrNotFound
	}
	return noteFromFields(fields)
}

func (s *RedisNoteStore) ListByOwner(ctx context.Context, ownerToken string) ([]*model.Note, error) {
	ids, err := s.store.SMembers(ctx, noteOwnerKey(ownerToken))
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}

	notes := make([]*model.Note, 0, len(ids))
	for _, id := range ids {
		note, err := s.Get(ctx, id)
		if err == model.ErrNotFound {
			// index can briefly outlive a deleted record
			continue
		}
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
	return notes, nil
}

func (s *RedisNoteStore) PatchEmbedding(ctx context.Context, id string, embedding []float32) error {
	encoded, err := encodeEmbedding(embedding)
	if err != nil {
		return err
	}
	if err := s.store.HSetField(ctx, noteKey(id), "embedding", encoded); err != nil {
		return fmt.Errorf("patching note embedding: %w", err)
	}
	s.logger.Debug("Patched note embedding", "noteId", id, "dimension", len(embedding))
	return nil
}

func (s *RedisNoteStore) Delete(ctx context.Context, id string) error {
	note, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Del(ctx, noteKey(id)); err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}
	return s.store.SRem(ctx, noteOwnerKey(note.OwnerToken), id)
}

func noteFromFields(fields map[string]string) (*model.Note, error) {
	embedding, err := decodeEmbedding(fields["embedding"])
	if err != nil {
		return nil, err
	}
	return &model.Note{
		Id:         fields["id"],
		OwnerToken: fields["owner_token"],
		Text:       fields["text"],
		Embedding:  embedding,
		CreatedAt:  decodeTime(fields["created_at"]),
	}, nil
}
