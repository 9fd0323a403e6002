package handlers

import (
	"net/http"
	"time"

	"github.com/aanandhisonduri/BigBrain/internal/adapter"
	"github.com/aanandhisonduri/BigBrain/internal/adapter/utils"
	"github.com/aanandhisonduri/BigBrain/internal/api"
	"github.com/aanandhisonduri/BigBrain/internal/auth"
	"github.com/aanandhisonduri/BigBrain/internal/blob"
	"github.com/aanandhisonduri/BigBrain/internal/chat"
	"github.com/aanandhisonduri/BigBrain/internal/config"
	"github.com/aanandhisonduri/BigBrain/internal/data/store"
	"github.com/aanandhisonduri/BigBrain/internal/domain/model"
	"github.com/aanandhisonduri/BigBrain/internal/domain/task"
	"github.com/aanandhisonduri/BigBrain/internal/middleware"
	"github.com/aanandhisonduri/BigBrain/internal/search"
	"github.com/aanandhisonduri/BigBrain/pkg/logging"
)

// Handler owns the HTTP surface. Write endpoints require a caller
// identity; list and search endpoints answer unauthenticated callers
// with empty results instead of errors.
type Handler struct {
	notes     store.NoteStore
	documents store.DocumentStore
	chats     store.ChatStore
	files     blob.FileStore
	scheduler task.Scheduler
	search    *search.Engine
	chat      *chat.Orchestrator
	gate      *auth.Gate
	logger    *logging.Logger
}

type Config struct {
	Notes     store.NoteStore
	Documents store.DocumentStore
	Chats     store.ChatStore
	Files     blob.FileStore
	Scheduler task.Scheduler
	Search    *search.Engine
	Chat      *chat.Orchestrator
	Gate      *auth.Gate
}

func NewHandler(cfg Config) *Handler {
	return &Handler{
		notes:     cfg.Notes,
		documents: cfg.Documents,
		chats:     cfg.Chats,
		files:     cfg.Files,
		scheduler: cfg.Scheduler,
		search:    cfg.Search,
		chat:      cfg.Chat,
		gate:      cfg.Gate,
		logger:    logging.NewLogger("RequestHandler"),
	}
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// notes ------------------------------------------------------------

func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	identity := middleware.CallerIdentity(r.Context())
	if identity == "" {
		h.writeDomainError(w, model.ErrNotAuthenticated)
		return
	}

	var requestData api.CreateNoteRequest
	if !h.decodeBody(w, r, &requestData) {
		return
	}
	if len(requestData.Text) < config.NoteTextMinLen || len(requestData.Text) > config.NoteTextMaxLen {
		h.writeErrorResponse(w, http.StatusBadRequest, "note text must be between 1 and 5000 characters")
		return
	}

	note := &model.Note{
		Id:         utils.GetNewUUID(),
		OwnerToken: identity,
		Text:       requestData.Text,
		CreatedAt:  time.Now(),
	}
	if err := h.notes.Create(r.Context(), note); err != nil {
		h.writeDomainError(w, err)
		return
	}

	h.scheduler.Schedule(task.Task{
		Kind:     task.KindEmbedNote,
		EntityId: note.Id,
		Text:     note.Text,
		TraceId:  middleware.TraceId(r.Context()),
	}, 0)

	h.writeJsonResponse(w, http.StatusCreated, adapter.ToNoteResponse(note))
}

func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	identity := middleware.CallerIdentity(r.Context())
	if identity == "" {
		h.writeJsonResponse(w, http.StatusOK, []api.NoteResponse{})
		return
	}
	notes, err := h.notes.ListByOwner(r.Context(), identity)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJsonResponse(w, http.StatusOK, adapter.ToNoteResponses(notes))
}

func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	identity := middleware.CallerIdentity(r.Context())
	note, ok := h.gate.Note(r.Context(), identity, utils.GetChiURLParam(r, "id"))
	if !ok {
		h.writeDomainError(w, model.ErrNotFound)
		return
	}
	h.writeJsonResponse(w, http.StatusOK, adapter.ToNoteResponse(note))
}

func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	identity := middleware.CallerIdentity(r.Context())
	note, ok := h.gate.Note(r.Context(), identity, utils.GetChiURLParam(r, "id"))
	if !ok {
		h.writeDomainError(w, model.ErrNotFound)
		return
	}
	if err := h.notes.Delete(r.Context(), note.Id); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// documents --------------------------------------------------------

func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	identity := middleware.CallerIdentity(r.Context())
	if identity == "" {
		h.writeDomainError(w, model.ErrNotAuthenticated)
		return
	}

	var requestData api.CreateDocumentRequest
	if !h.decodeBody(w, r, &requestData) {
		return
	}
	if requestData.Title == "" || requestData.FileId == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "title and file_id are required")
		return
	}

	doc := &model.Document{
		Id:         utils.GetNewUUID(),
		OwnerToken: identity,
		Title:      requestData.Title,
		FileId:     requestData.FileId,
		CreatedAt:  time.Now(),
	}
	if err := h.documents.Create(r.Context(), doc); err != nil {
		h.writeDomainError(w, err)
		return
	}

	h.scheduler.Schedule(task.Task{
		Kind:     task.KindGenerateDescription,
		EntityId: doc.Id,
		TraceId:  middleware.TraceId(r.Context()),
	}, 0)

	h.writeJsonResponse(w, http.StatusCreated, adapter.ToDocumentResponse(doc))
}

func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	identity := middleware.CallerIdentity(r.Context())
	if identity == "" {
		h.writeJsonResponse(w, http.StatusOK, []api.DocumentResponse{})
		return
	}
	docs, err := h.documents.ListByOwner(r.Context(), identity)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJsonResponse(w, http.StatusOK, adapter.ToDocumentResponses(docs))
}

func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	identity := middleware.CallerIdentity(r.Context())
	doc, ok := h.gate.Document(r.Context(), identity, utils.GetChiURLParam(r, "id"))
	if !ok {
		h.writeDomainError(w, model.ErrNotFound)
		return
	}

	response := adapter.ToDocumentResponse(doc)
	url, err := h.files.GenerateDownloadURL(r.Context(), doc.FileId)
	if err != nil {
		// the record is still useful without a link to the raw file
		h.logger.Warn("Could not presign download", "documentId", doc.Id, "error", err)
	} else {
		response.DownloadURL = url
	}
	h.writeJsonResponse(w, http.StatusOK, response)
}

func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	identity := middleware.CallerIdentity(r.Context())
	doc, ok := h.gate.Document(r.Context(), identity, utils.GetChiURLParam(r, "id"))
	if !ok {
		h.writeDomainError(w, model.ErrNotFound)
		return
	}

	if err := h.files.Delete(r.Context(), doc.FileId); err != nil {
		h.logger.Warn("Could not delete stored file", "documentId", doc.Id, "fileId", doc.FileId, "error", err)
	}
	if err := h.chats.DeleteByDocument(r.Context(), doc.Id); err != nil {
		h.writeDomainError(w, err)
		return
	}
	if err := h.documents.Delete(r.Context(), doc.Id); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GenerateUploadURL(w http.ResponseWriter, r *http.Request) {
	identity := middleware.CallerIdentity(r.Context())
	if identity == "" {
		h.writeDomainError(w, model.ErrNotAuthenticated)
		return
	}

	var requestData api.UploadURLRequest
	if !h.decodeBody(w, r, &requestData) {
		return
	}
	if requestData.Filename == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "filename is required")
		return
	}

	fileId, url, err := h.files.GenerateUploadURL(r.Context(), requestData.Filename)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJsonResponse(w, http.StatusOK, api.UploadURLResponse{FileId: fileId, URL: url})
}

// search and chat --------------------------------------------------

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "q is required")
		return
	}

	identity := middleware.CallerIdentity(r.Context())
	results, err := h.search.Search(r.Context(), identity, query)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJsonResponse(w, http.StatusOK, adapter.ToSearchResultResponses(results))
}

func (h *Handler) AskQuestion(w http.ResponseWriter, r *http.Request) {
	var requestData api.AskRequest
	if !h.decodeBody(w, r, &requestData) {
		return
	}
	if requestData.Question == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "question is required")
		return
	}

	identity := middleware.CallerIdentity(r.Context())
	answer, err := h.chat.Ask(r.Context(), identity, utils.GetChiURLParam(r, "id"), requestData.Question)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJsonResponse(w, http.StatusOK, api.AskResponse{Answer: answer})
}

func (h *Handler) ListChats(w http.ResponseWriter, r *http.Request) {
	identity := middleware.CallerIdentity(r.Context())
	doc, ok := h.gate.Document(r.Context(), identity, utils.GetChiURLParam(r, "id"))
	if !ok {
		h.writeDomainError(w, model.ErrNotFound)
		return
	}

	messages, err := h.chats.ListByDocument(r.Context(), doc.Id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJsonResponse(w, http.StatusOK, adapter.ToChatMessageResponses(messages))
}
