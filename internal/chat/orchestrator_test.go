package chat_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aanandhisonduri/BigBrain/internal/auth"
	"github.com/aanandhisonduri/BigBrain/internal/blob/memblob"
	"github.com/aanandhisonduri/BigBrain/internal/chat"
	"github.com/aanandhisonduri/BigBrain/internal/config"
	"github.com/aanandhisonduri/BigBrain/internal/data/store"
	"github.com/aanandhisonduri/BigBrain/internal/domain/model"
)

// MockProvider implements llm.Provider
type MockProvider struct {
	OnComplete func(ctx context.Context, system string, user string) (string, error)
}

func (m *MockProvider) Complete(ctx context.Context, system string, user string) (string, error) {
	if m.OnComplete != nil {
		return m.OnComplete(ctx, system, user)
	}
	return "the answer", nil
}

type fixture struct {
	orchestrator *chat.Orchestrator
	chats        store.ChatStore
	files        *memblob.Store
	provider     *MockProvider
	doc          *model.Document
}

func newFixture(t *testing.T, seedFile bool) *fixture {
	t.Helper()
	notes := store.NewInMemoryNoteStore()
	documents := store.NewInMemoryDocumentStore()
	chats := store.NewInMemoryChatStore()
	files := memblob.NewStore()
	provider := &MockProvider{}

	doc := &model.Document{
		Id: "doc-1", OwnerToken: "alice", Title: "report",
		FileId: "uploads/report.txt", CreatedAt: time.Now(),
	}
	if err := documents.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if seedFile {
		files.Put(doc.FileId, []byte("the project shipped in June"))
	}

	gate := auth.NewGate(notes, documents)
	return &fixture{
		orchestrator: chat.NewOrchestrator(gate, files, provider, chats),
		chats:        chats,
		files:        files,
		provider:     provider,
		doc:          doc,
	}
}

func countMessages(t *testing.T, chats store.ChatStore, documentId string) []model.ChatMessage {
	t.Helper()
	messages, err := chats.ListByDocument(context.Background(), documentId)
	if err != nil {
		t.Fatalf("ListByDocument failed: %v", err)
	}
	return messages
}

func TestAsk_Success(t *testing.T) {
	f := newFixture(t, true)
	f.provider.OnComplete = func(ctx context.Context, system string, user string) (string, error) {
		if !strings.Contains(system, "the project shipped in June") {
			t.Error("file text was not handed to the model")
		}
		if !strings.Contains(user, "when did it ship?") {
			t.Error("question was not handed to the model")
		}
		return "In June.", nil
	}

	answer, err := f.orchestrator.Ask(context.Background(), "alice", f.doc.Id, "when did it ship?")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if answer != "In June." {
		t.Errorf("answer got %q, want %q", answer, "In June.")
	}

	messages := countMessages(t, f.chats, f.doc.Id)
	if len(messages) != 2 {
		t.Fatalf("message count got %d, want 2", len(messages))
	}
	if !messages[0].IsHuman || messages[0].Text != "when did it ship?" {
		t.Errorf("first message must be the question, got %+v", messages[0])
	}
	if messages[1].IsHuman || messages[1].Text != "In June." {
		t.Errorf("second message must be the answer, got %+v", messages[1])
	}
	for _, msg := range messages {
		if msg.DocumentId != f.doc.Id || msg.OwnerToken != "alice" {
			t.Errorf("message not tagged with document and owner: %+v", msg)
		}
	}
}

func TestAsk_EmptyAnswerFallsBack(t *testing.T) {
	f := newFixture(t, true)
	f.provider.OnComplete = func(ctx context.Context, system string, user string) (string, error) {
		return "", nil
	}

	answer, err := f.orchestrator.Ask(context.Background(), "alice", f.doc.Id, "anything?")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if answer != config.NoAnswerFallback {
		t.Errorf("answer got %q, want fallback %q", answer, config.NoAnswerFallback)
	}

	messages := countMessages(t, f.chats, f.doc.Id)
	if len(messages) != 2 || messages[1].Text != config.NoAnswerFallback {
		t.Error("fallback answer must still be persisted")
	}
}

func TestAsk_Failures_WriteNothing(t *testing.T) {
	tests := []struct {
		name     string
		identity string
		seedFile bool
		setup    func(f *fixture)
		wantErr  error
	}{
		{
			name:     "Denied_Caller",
			identity: "bob",
			seedFile: true,
			setup:    func(f *fixture) {},
			wantErr:  model.ErrNotAuthorized,
		},
		{
			name:     "Unauthenticated_Caller",
			identity: "",
			seedFile: true,
			setup:    func(f *fixture) {},
			wantErr:  model.ErrNotAuthorized,
		},
		{
			name:     "Missing_File",
			identity: "alice",
			seedFile: false,
			setup:    func(f *fixture) {},
			wantErr:  model.ErrFileNotFound,
		},
		{
			name:     "Completion_Failure",
			identity: "alice",
			seedFile: true,
			setup: func(f *fixture) {
				f.provider.OnComplete = func(ctx context.Context, system string, user string) (string, error) {
					return "", model.ErrChatCompletion
				}
			},
			wantErr: model.ErrChatCompletion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.seedFile)
			tt.setup(f)

			_, err := f.orchestrator.Ask(context.Background(), tt.identity, f.doc.Id, "q?")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error got %v, want %v", err, tt.wantErr)
			}

			// no partial writes: the chat log must not contain a question
			// without its answer
			if messages := countMessages(t, f.chats, f.doc.Id); len(messages) != 0 {
				t.Errorf("failed ask persisted %d messages, want 0", len(messages))
			}
		})
	}
}

func TestAsk_OrderAcrossMultipleQuestions(t *testing.T) {
	f := newFixture(t, true)
	answers := []string{"first answer", "second answer"}
	call := 0
	f.provider.OnComplete = func(ctx context.Context, system string, user string) (string, error) {
		answer := answers[call]
		call++
		return answer, nil
	}

	for _, question := range []string{"one?", "two?"} {
		if _, err := f.orchestrator.Ask(context.Background(), "alice", f.doc.Id, question); err != nil {
			t.Fatalf("Ask(%q) failed: %v", question, err)
		}
	}

	messages := countMessages(t, f.chats, f.doc.Id)
	wantTexts := []string{"one?", "first answer", "two?", "second answer"}
	if len(messages) != len(wantTexts) {
		t.Fatalf("message count got %d, want %d", len(messages), len(wantTexts))
	}
	for i, want := range wantTexts {
		if messages[i].Text != want {
			t.Errorf("message %d got %q, want %q", i, messages[i].Text, want)
		}
	}
}
