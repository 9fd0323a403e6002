package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/aanandhisonduri/BigBrain/internal/blob"
	"github.com/aanandhisonduri/BigBrain/internal/config"
	"github.com/aanandhisonduri/BigBrain/internal/data/store"
	"github.com/aanandhisonduri/BigBrain/internal/extract"
	"github.com/aanandhisonduri/BigBrain/internal/llm"
	"github.com/aanandhisonduri/BigBrain/internal/metrics"
	"github.com/aanandhisonduri/BigBrain/pkg/logging"
)

const descriptionFallback = "Could not figure out the description for this document"

// DescriptionGenerator runs once per document creation: read the stored
// file, ask the model for a one-sentence summary, patch the description
// field and hand the new text straight to the embedding pipeline. The
// chaining means a document never carries a description without at
// least an attempt at an embedding.
type DescriptionGenerator struct {
	documents store.DocumentStore
	files     blob.FileStore
	provider  llm.Provider
	pipeline  *Pipeline
	logger    *logging.Logger
}

func NewDescriptionGenerator(documents store.DocumentStore, files blob.FileStore, provider llm.Provider, pipeline *Pipeline) *DescriptionGenerator {
	return &DescriptionGenerator{
		documents: documents,
		files:     files,
		provider:  provider,
		pipeline:  pipeline,
		logger:    logging.NewLogger("DescriptionGenerator"),
	}
}

func (g *DescriptionGenerator) Generate(ctx context.Context, documentId string) error {
	doc, err := g.documents.Get(ctx, documentId)
	if err != nil {
		return fmt.Errorf("loading document %s: %w", documentId, err)
	}

	data, err := g.files.Get(ctx, doc.FileId)
	if err != nil {
		// fatal for this task; document creation already committed
		return fmt.Errorf("loading file for document %s: %w", documentId, err)
	}

	text, err := extract.Text(doc.FileId, data)
	if err != nil {
		return fmt.Errorf("extracting text for document %s: %w", documentId, err)
	}

	description, err := g.summarize(ctx, text)
	if err != nil {
		return err
	}
	if description == "" {
		description = descriptionFallback
	}

	if err := g.documents.PatchDescription(ctx, documentId, description); err != nil {
		return err
	}
	g.logger.Debug("Stored document description", "documentId", documentId)

	return g.pipeline.EmbedDocument(ctx, documentId, description)
}

func (g *DescriptionGenerator) summarize(ctx context.Context, fileText string) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureDependencyLatency("llm_description", time.Since(start)) }()

	system := fmt.Sprintf("Here is a text file: %s", fileText)
	return g.provider.Complete(ctx, system, config.DescriptionQuestion)
}
