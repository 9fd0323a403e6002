package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/aanandhisonduri/BigBrain/internal/data/redisstore"
	"github.com/aanandhisonduri/BigBrain/internal/domain/model"
	"github.com/aanandhisonduri/BigBrain/pkg/logging"
)

// RedisDocumentStore mirrors the note layout: document:<id> hashes plus
// an owner:<token>:documents index set. Description and embedding are
// written by different pipeline stages, each through its own hash field,
// so the two patches cannot clobber each other.
type RedisDocumentStore struct {
	store  *redisstore.Store
	logger *logging.Logger
}

func NewRedisDocumentStore(store *redisstore.Store) *RedisDocumentStore {
	return &RedisDocumentStore{
		store:  store,
		logger: logging.NewLogger("DocumentStore"),
	}
}

func documentKey(id string) string {
	return "document:" + id
}

func documentOwnerKey(ownerToken string) string {
	return "owner:" + ownerToken + ":documents"
}

func (s *RedisDocumentStore) Create(ctx context.Context, doc *model.Document) error {
	fields := map[string]interface{}{
		"id":          doc.Id,
		"owner_token": doc.OwnerToken,
		"title":       doc.Title,
		"file_id":     doc.FileId,
		"description": doc.Description,
		"created_at":  encodeTime(doc.CreatedAt),
	}
	if err := s.store.HSet(ctx, documentKey(doc.Id), fields); err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return s.store.SAdd(ctx, documentOwnerKey(doc.OwnerToken), doc.Id)
}

func (s *RedisDocumentStore) Get(ctx context.Context, id string) (*model.Document, error) {
	fields, err := s.store.HGetAll(ctx, documentKey(id))
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}
	if len(fields) == 0 {
		return nil, model.ErrNotFound
	}
	return documentFromFields(fields)
}

func (s *RedisDocumentStore) ListByOwner(ctx context.Context, ownerToken string) ([]*model.Document, error) {
	ids, err := s.store.SMembers(ctx, documentOwnerKey(ownerToken))
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	docs := make([]*model.Document, 0, len(ids))
	for _, id := range ids {
		doc, err := s.Get(ctx, id)
		if err == model.ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}

func (s *RedisDocumentStore) PatchDescription(ctx context.Context, id string, description string) error {
	if err := s.store.HSetField(ctx, documentKey(id), "description", description); err != nil {
		return fmt.Errorf("patching document description: %w", err)
	}
	s.logger.Debug("Patched document description", "documentId", id)
	return nil
}

func (s *RedisDocumentStore) PatchEmbedding(ctx context.Context, id string, embedding []float32) error {
	encoded, err := encodeEmbedding(embedding)
	if err != nil {
		return err
	}
	if err := s.store.HSetField(ctx, documentKey(id), "embedding", encoded); err != nil {
		return fmt.Errorf("patching document embedding: %w", err)
	}
	s.logger.Debug("Patched document embedding", "documentId", id, "dimension", len(embedding))
	return nil
}

func (s *RedisDocumentStore) Delete(ctx context.Context, id string) error {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Del(ctx, documentKey(id)); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return s.store.SRem(ctx, documentOwnerKey(doc.OwnerToken), id)
}

func documentFromFields(fields map[string]string) (*model.Document, error) {
	embedding, err := decodeEmbedding(fields["embedding"])
	if err != nil {
		return nil, err
	}
	return &model.Document{
		Id:          fields["id"],
		OwnerToken:  fields["owner_token"],
		Title:       fields["title"],
		FileId:      fields["file_id"],
		Description: fields["description"],
		Embedding:   embedding,
		CreatedAt:   decodeTime(fields["created_at"]),
	}, nil
}
