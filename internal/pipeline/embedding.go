package pipeline

import (
	"context"
	"time"

	"github.com/aanandhisonduri/BigBrain/internal/data/store"
	"github.com/aanandhisonduri/BigBrain/internal/domain/model"
	"github.com/aanandhisonduri/BigBrain/internal/embedding"
	"github.com/aanandhisonduri/BigBrain/internal/metrics"
	"github.com/aanandhisonduri/BigBrain/pkg/logging"
)

// embeddingPatcher is the one store capability this pipeline writes
// through. Both entity stores satisfy it.
type embeddingPatcher interface {
	PatchEmbedding(ctx context.Context, id string, embedding []float32) error
}

// Pipeline computes embeddings for anything Embeddable as background
// work. The entity stays visible and fully usable while its embedding
// is absent; a failed run leaves it that way and never surfaces to the
// request that created the entity.
type Pipeline struct {
	embedder  embedding.Embedder
	notes     store.NoteStore
	documents store.DocumentStore
	logger    *logging.Logger
}

func New(embedder embedding.Embedder, notes store.NoteStore, documents store.DocumentStore) *Pipeline {
	return &Pipeline{
		embedder:  embedder,
		notes:     notes,
		documents: documents,
		logger:    logging.NewLogger("EmbeddingPipeline"),
	}
}

// EmbedNote embeds the note body and patches only the embedding field.
// Safe to re-run: same text yields the same stored vector.
func (p *Pipeline) EmbedNote(ctx context.Context, noteId string, text string) error {
	return p.run(ctx, &model.Note{Id: noteId, Text: text}, p.notes)
}

// EmbedDocument embeds the document's generated description.
func (p *Pipeline) EmbedDocument(ctx context.Context, documentId string, text string) error {
	return p.run(ctx, &model.Document{Id: documentId, Description: text}, p.documents)
}

func (p *Pipeline) run(ctx context.Context, entity model.Embeddable, patcher embeddingPatcher) error {
	start := time.Now()
	vector, err := p.embedder.Embed(ctx, entity.CanonicalText())
	metrics.CaptureDependencyLatency("embedding", time.Since(start))
	if err != nil {
		p.logger.Error("Embedding failed", "entityId", entity.EntityId(), "error", err)
		return err
	}
	return patcher.PatchEmbedding(ctx, entity.EntityId(), vector)
}
