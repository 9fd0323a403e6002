package store

import (
	"context"

	"github.com/aanandhisonduri/BigBrain/internal/domain/model"
)

// NoteStore and DocumentStore expose field-level patches for the
// asynchronously derived fields. The embedding field is written only by
// the embedding pipeline; the description only by the description
// generator. Patches must not clobber concurrent writes to other fields.

type NoteStore interface {
	Create(ctx context.Context, note *model.Note) error
	Get(ctx context.Context, id string) (*model.Note, error)
	ListByOwner(ctx context.Context, ownerToken string) ([]*model.Note, error)
	PatchEmbedding(ctx context.Context, id string, embedding []float32) error
	Delete(ctx context.Context, id string) error
}

type DocumentStore interface {
	Create(ctx context.Context, doc *model.Document) error
	Get(ctx context.Context, id string) (*model.Document, error)
	ListByOwner(ctx context.Context, ownerToken string) ([]*model.Document, error)
	PatchDescription(ctx context.Context, id string, description string) error
	PatchEmbedding(ctx context.Context, id string, embedding []float32) error
	Delete(ctx context.Context, id string) error
}

// ChatStore is append-only; the storage order of Append calls is the
// persisted conversation order.
type ChatStore interface {
	Append(ctx context.Context, msg *model.ChatMessage) error
	ListByDocument(ctx context.Context, documentId string) ([]model.ChatMessage, error)
	DeleteByDocument(ctx context.Context, documentId string) error
}
