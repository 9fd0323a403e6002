package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/aanandhisonduri/BigBrain/internal/auth"
	"github.com/aanandhisonduri/BigBrain/internal/blob"
	"github.com/aanandhisonduri/BigBrain/internal/config"
	"github.com/aanandhisonduri/BigBrain/internal/data/store"
	"github.com/aanandhisonduri/BigBrain/internal/domain/model"
	"github.com/aanandhisonduri/BigBrain/internal/extract"
	"github.com/aanandhisonduri/BigBrain/internal/llm"
	"github.com/aanandhisonduri/BigBrain/internal/metrics"
	"github.com/aanandhisonduri/BigBrain/pkg/logging"
)

// Orchestrator answers one question against one document: authorize,
// load the file text, call the model, then persist the question and the
// answer in that order. Any failure before persistence aborts the whole
// call with nothing written, so there is never an unanswered question
// record.
type Orchestrator struct {
	gate     *auth.Gate
	files    blob.FileStore
	provider llm.Provider
	chats    store.ChatStore
	logger   *logging.Logger
}

func NewOrchestrator(gate *auth.Gate, files blob.FileStore, provider llm.Provider, chats store.ChatStore) *Orchestrator {
	return &Orchestrator{
		gate:     gate,
		files:    files,
		provider: provider,
		chats:    chats,
		logger:   logging.NewLogger("ChatOrchestrator"),
	}
}

func (o *Orchestrator) Ask(ctx context.Context, callerIdentity string, documentId string, question string) (string, error) {
	doc, ok := o.gate.Document(ctx, callerIdentity, documentId)
	if !ok {
		return "", model.ErrNotAuthorized
	}

	data, err := o.files.Get(ctx, doc.FileId)
	if err != nil {
		return "", err
	}
	text, err := extract.Text(doc.FileId, data)
	if err != nil {
		return "", fmt.Errorf("extracting document text: %w", err)
	}

	start := time.Now()
	answer, err := o.provider.Complete(ctx,
		fmt.Sprintf("Here is a text file: %s", text),
		fmt.Sprintf("Please answer this question: %s", question),
	)
	metrics.CaptureDependencyLatency("llm_chat", time.Since(start))
	if err != nil {
		return "", err
	}
	if answer == "" {
		answer = config.NoAnswerFallback
	}

	// question strictly before answer; both tagged with the authorized
	// owner so the chat log stays owner-scoped
	if err := o.chats.Append(ctx, newMessage(doc, question, true)); err != nil {
		return "", fmt.Errorf("recording question: %w", err)
	}
	if err := o.chats.Append(ctx, newMessage(doc, answer, false)); err != nil {
		return "", fmt.Errorf("recording answer: %w", err)
	}

	o.logger.Debug("Answered question", "documentId", documentId)
	return answer, nil
}

func newMessage(doc *model.Document, text string, isHuman bool) *model.ChatMessage {
	return &model.ChatMessage{
		Id:         newId(),
		DocumentId: doc.Id,
		OwnerToken: doc.OwnerToken,
		Text:       text,
		IsHuman:    isHuman,
		CreatedAt:  time.Now(),
	}
}
