package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aanandhisonduri/BigBrain/internal/api"
	"github.com/aanandhisonduri/BigBrain/internal/auth"
	"github.com/aanandhisonduri/BigBrain/internal/blob/memblob"
	"github.com/aanandhisonduri/BigBrain/internal/chat"
	"github.com/aanandhisonduri/BigBrain/internal/config"
	"github.com/aanandhisonduri/BigBrain/internal/data/store"
	"github.com/aanandhisonduri/BigBrain/internal/domain/model"
	"github.com/aanandhisonduri/BigBrain/internal/domain/task"
	"github.com/aanandhisonduri/BigBrain/internal/handlers"
	"github.com/aanandhisonduri/BigBrain/internal/search"
	"github.com/go-chi/chi/v5"
)

// MockScheduler records scheduled tasks instead of running them
type MockScheduler struct {
	Tasks []task.Task
}

func (m *MockScheduler) Schedule(t task.Task, delay time.Duration) {
	m.Tasks = append(m.Tasks, t)
}

// MockProvider implements llm.Provider
type MockProvider struct {
	OnComplete func(ctx context.Context, system string, user string) (string, error)
}

func (m *MockProvider) Complete(ctx context.Context, system string, user string) (string, error) {
	if m.OnComplete != nil {
		return m.OnComplete(ctx, system, user)
	}
	return "handler test answer", nil
}

// MockEmbedder returns a fixed vector
type MockEmbedder struct{}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func (m *MockEmbedder) Dimension() int { return 3 }

type fixture struct {
	router    *chi.Mux
	notes     store.NoteStore
	documents store.DocumentStore
	chats     store.ChatStore
	files     *memblob.Store
	scheduler *MockScheduler
	provider  *MockProvider
}

// identityFromHeader mirrors the production middleware without the rate
// limiter so tests can fire as many requests as they like
func identityFromHeader(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if identity == r.Header.Get("Authorization") {
			identity = ""
		}
		ctx := context.WithValue(r.Context(), config.IdentityKey, identity)
		ctx = context.WithValue(ctx, config.TraceIdKey, "test-trace")
		next(w, r.WithContext(ctx))
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	notes := store.NewInMemoryNoteStore()
	documents := store.NewInMemoryDocumentStore()
	chats := store.NewInMemoryChatStore()
	files := memblob.NewStore()
	scheduler := &MockScheduler{}
	provider := &MockProvider{}
	gate := auth.NewGate(notes, documents)

	handler := handlers.NewHandler(handlers.Config{
		Notes:     notes,
		Documents: documents,
		Chats:     chats,
		Files:     files,
		Scheduler: scheduler,
		Search:    search.NewEngine(&MockEmbedder{}, notes, documents),
		Chat:      chat.NewOrchestrator(gate, files, provider, chats),
		Gate:      gate,
	})

	r := chi.NewRouter()
	r.Post("/notes", identityFromHeader(handler.CreateNote))
	r.Get("/notes", identityFromHeader(handler.ListNotes))
	r.Get("/notes/{id}", identityFromHeader(handler.GetNote))
	r.Delete("/notes/{id}", identityFromHeader(handler.DeleteNote))
	r.Post("/documents", identityFromHeader(handler.CreateDocument))
	r.Get("/documents/{id}", identityFromHeader(handler.GetDocument))
	r.Delete("/documents/{id}", identityFromHeader(handler.DeleteDocument))
	r.Post("/documents/{id}/ask", identityFromHeader(handler.AskQuestion))
	r.Get("/documents/{id}/chats", identityFromHeader(handler.ListChats))
	r.Post("/upload-url", identityFromHeader(handler.GenerateUploadURL))
	r.Get("/search", identityFromHeader(handler.Search))

	return &fixture{
		router:    r,
		notes:     notes,
		documents: documents,
		chats:     chats,
		files:     files,
		scheduler: scheduler,
		provider:  provider,
	}
}

func (f *fixture) request(t *testing.T, method string, path string, identity string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if identity != "" {
		req.Header.Set("Authorization", "Bearer "+identity)
	}
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, req)
	return recorder
}

func TestCreateNote(t *testing.T) {
	tests := []struct {
		name       string
		identity   string
		text       string
		wantStatus int
		wantTasks  int
	}{
		{name: "Valid", identity: "alice", text: "buy milk", wantStatus: http.StatusCreated, wantTasks: 1},
		{name: "Unauthenticated", identity: "", text: "buy milk", wantStatus: http.StatusUnauthorized},
		{name: "Empty_Text", identity: "alice", text: "", wantStatus: http.StatusBadRequest},
		{name: "Too_Long", identity: "alice", text: strings.Repeat("x", 5001), wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			rec := f.request(t, http.MethodPost, "/notes", tt.identity, api.CreateNoteRequest{Text: tt.text})

			if rec.Code != tt.wantStatus {
				t.Fatalf("status got %d, want %d", rec.Code, tt.wantStatus)
			}
			if len(f.scheduler.Tasks) != tt.wantTasks {
				t.Errorf("scheduled tasks got %d, want %d", len(f.scheduler.Tasks), tt.wantTasks)
			}
			if tt.wantStatus != http.StatusCreated {
				return
			}

			var created api.NoteResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if created.HasEmbedding {
				t.Error("fresh note must report no embedding")
			}
			scheduled := f.scheduler.Tasks[0]
			if scheduled.Kind != task.KindEmbedNote || scheduled.EntityId != created.Id {
				t.Errorf("scheduled task got %+v", scheduled)
			}
		})
	}
}

func TestGetNote_DenialsLookIdentical(t *testing.T) {
	f := newFixture(t)
	note := &model.Note{Id: "n-1", OwnerToken: "alice", Text: "secret", CreatedAt: time.Now()}
	f.notes.Create(context.Background(), note)

	foreign := f.request(t, http.MethodGet, "/notes/n-1", "bob", nil)
	missing := f.request(t, http.MethodGet, "/notes/ghost", "bob", nil)

	if foreign.Code != http.StatusNotFound || missing.Code != http.StatusNotFound {
		t.Fatalf("status got %d and %d, want both 404", foreign.Code, missing.Code)
	}
	if foreign.Body.String() != missing.Body.String() {
		t.Error("foreign and missing lookups must be indistinguishable")
	}

	owner := f.request(t, http.MethodGet, "/notes/n-1", "alice", nil)
	if owner.Code != http.StatusOK {
		t.Errorf("owner lookup got %d, want 200", owner.Code)
	}
}

func TestListNotes_UnauthenticatedIsEmpty(t *testing.T) {
	f := newFixture(t)
	f.notes.Create(context.Background(), &model.Note{Id: "n-1", OwnerToken: "alice", Text: "x", CreatedAt: time.Now()})

	rec := f.request(t, http.MethodGet, "/notes", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status got %d, want 200", rec.Code)
	}
	var notes []api.NoteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &notes); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("unauthenticated list got %d notes, want 0", len(notes))
	}
}

func TestCreateDocument_SchedulesDescription(t *testing.T) {
	f := newFixture(t)
	rec := f.request(t, http.MethodPost, "/documents", "alice", api.CreateDocumentRequest{
		Title:  "report",
		FileId: "uploads/r.txt",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status got %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if len(f.scheduler.Tasks) != 1 || f.scheduler.Tasks[0].Kind != task.KindGenerateDescription {
		t.Errorf("scheduled tasks got %+v", f.scheduler.Tasks)
	}
}

func TestDeleteDocument_Cascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc := &model.Document{Id: "d-1", OwnerToken: "alice", Title: "r", FileId: "uploads/r.txt", CreatedAt: time.Now()}
	f.documents.Create(ctx, doc)
	f.files.Put(doc.FileId, []byte("content"))
	f.chats.Append(ctx, &model.ChatMessage{Id: "m-1", DocumentId: doc.Id, OwnerToken: "alice", Text: "q", IsHuman: true, CreatedAt: time.Now()})

	rec := f.request(t, http.MethodDelete, "/documents/d-1", "alice", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status got %d, want 204", rec.Code)
	}

	if _, err := f.documents.Get(ctx, doc.Id); err == nil {
		t.Error("document survived its deletion")
	}
	if _, err := f.files.Get(ctx, doc.FileId); err == nil {
		t.Error("stored file survived its document")
	}
	messages, _ := f.chats.ListByDocument(ctx, doc.Id)
	if len(messages) != 0 {
		t.Error("chat log survived its document")
	}
}

func TestAskQuestion_EndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc := &model.Document{Id: "d-1", OwnerToken: "alice", Title: "r", FileId: "uploads/r.txt", CreatedAt: time.Now()}
	f.documents.Create(ctx, doc)
	f.files.Put(doc.FileId, []byte("the sky is blue"))

	t.Run("Owner_Gets_Answer", func(t *testing.T) {
		rec := f.request(t, http.MethodPost, "/documents/d-1/ask", "alice", api.AskRequest{Question: "what color?"})
		if rec.Code != http.StatusOK {
			t.Fatalf("status got %d, want 200: %s", rec.Code, rec.Body.String())
		}
		var response api.AskResponse
		json.Unmarshal(rec.Body.Bytes(), &response)
		if response.Answer != "handler test answer" {
			t.Errorf("answer got %q", response.Answer)
		}
	})

	t.Run("Foreign_Caller_Gets_404", func(t *testing.T) {
		rec := f.request(t, http.MethodPost, "/documents/d-1/ask", "bob", api.AskRequest{Question: "what color?"})
		if rec.Code != http.StatusNotFound {
			t.Errorf("status got %d, want 404", rec.Code)
		}
	})

	t.Run("Chat_Log_Is_Readable_And_Ordered", func(t *testing.T) {
		rec := f.request(t, http.MethodGet, "/documents/d-1/chats", "alice", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status got %d, want 200", rec.Code)
		}
		var messages []api.ChatMessageResponse
		json.Unmarshal(rec.Body.Bytes(), &messages)
		if len(messages) != 2 || !messages[0].IsHuman || messages[1].IsHuman {
			t.Errorf("chat log got %+v", messages)
		}
	})
}

func TestUploadURL(t *testing.T) {
	f := newFixture(t)

	rec := f.request(t, http.MethodPost, "/upload-url", "alice", api.UploadURLRequest{Filename: "notes.pdf"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status got %d, want 200", rec.Code)
	}
	var response api.UploadURLResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if response.FileId == "" || response.URL == "" {
		t.Errorf("response missing fields: %+v", response)
	}
	if !strings.HasSuffix(response.FileId, ".pdf") {
		t.Errorf("storage key should keep the extension, got %s", response.FileId)
	}

	t.Run("Unauthenticated_Rejected", func(t *testing.T) {
		rec := f.request(t, http.MethodPost, "/upload-url", "", api.UploadURLRequest{Filename: "notes.pdf"})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status got %d, want 401", rec.Code)
		}
	})
}

func TestSearchEndpoint(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.notes.Create(ctx, &model.Note{
		Id: "n-1", OwnerToken: "alice", Text: "buy milk",
		Embedding: []float32{1, 0, 0}, CreatedAt: time.Now(),
	})

	t.Run("Owner_Sees_Match", func(t *testing.T) {
		rec := f.request(t, http.MethodGet, "/search?q=groceries", "alice", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status got %d, want 200", rec.Code)
		}
		var results []api.SearchResultResponse
		json.Unmarshal(rec.Body.Bytes(), &results)
		if len(results) != 1 || results[0].Note == nil || results[0].Note.Id != "n-1" {
			t.Errorf("results got %+v", results)
		}
	})

	t.Run("Missing_Query_Rejected", func(t *testing.T) {
		rec := f.request(t, http.MethodGet, "/search", "alice", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status got %d, want 400", rec.Code)
		}
	})

	t.Run("Unauthenticated_Gets_Empty_List", func(t *testing.T) {
		rec := f.request(t, http.MethodGet, "/search?q=groceries", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status got %d, want 200", rec.Code)
		}
		var results []api.SearchResultResponse
		json.Unmarshal(rec.Body.Bytes(), &results)
		if len(results) != 0 {
			t.Errorf("results got %d, want 0", len(results))
		}
	})
}
