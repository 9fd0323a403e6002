package search

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/aanandhisonduri/BigBrain/internal/data/store"
	"github.com/aanandhisonduri/BigBrain/internal/domain/model"
	"github.com/aanandhisonduri/BigBrain/internal/embedding"
	"github.com/aanandhisonduri/BigBrain/internal/metrics"
	"github.com/aanandhisonduri/BigBrain/pkg/logging"
)

// Engine ranks the caller's notes and documents by cosine similarity to
// a free-text query. Brute force over the owner's records: the scope is
// always "my content only", and entities still waiting on the embedding
// pipeline are silently skipped.
type Engine struct {
	embedder  embedding.Embedder
	notes     store.NoteStore
	documents store.DocumentStore
	logger    *logging.Logger
}

func NewEngine(embedder embedding.Embedder, notes store.NoteStore, documents store.DocumentStore) *Engine {
	return &Engine{
		embedder:  embedder,
		notes:     notes,
		documents: documents,
		logger:    logging.NewLogger("SearchEngine"),
	}
}

// Search returns results most relevant first. Unauthenticated callers
// get an empty list, not an error. Read-only; no side effects.
func (e *Engine) Search(ctx context.Context, callerIdentity string, queryText string) ([]model.SearchResult, error) {
	if callerIdentity == "" {
		return []model.SearchResult{}, nil
	}

	start := time.Now()
	queryVector, err := e.embedder.Embed(ctx, queryText)
	metrics.CaptureDependencyLatency("embedding", time.Since(start))
	if err != nil {
		return nil, err
	}

	notes, err := e.notes.ListByOwner(ctx, callerIdentity)
	if err != nil {
		return nil, err
	}
	documents, err := e.documents.ListByOwner(ctx, callerIdentity)
	if err != nil {
		return nil, err
	}

	results := make([]model.SearchResult, 0, len(notes)+len(documents))
	for _, note := range notes {
		if score, ok := Cosine(queryVector, note.Embedding); ok {
			results = append(results, model.SearchResult{Kind: model.KindNote, Note: note, Score: score})
		}
	}
	for _, doc := range documents {
		if score, ok := Cosine(queryVector, doc.Embedding); ok {
			results = append(results, model.SearchResult{Kind: model.KindDocument, Document: doc, Score: score})
		}
	}

	// score descending; ties broken by creation order then id so the
	// same query always comes back in the same order
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		ti, tj := results[i].RecordCreatedAt(), results[j].RecordCreatedAt()
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return results[i].RecordId() < results[j].RecordId()
	})

	e.logger.Debug("Search completed", "candidates", len(notes)+len(documents), "matches", len(results))
	return results, nil
}

// Cosine returns dot(a,b) / (|a|*|b|). ok is false when the vectors
// differ in length or either one is empty or zero — those candidates
// are excluded from results rather than failing the query.
func Cosine(a []float32, b []float32) (float64, bool) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, false
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), true
}
