package auth

import (
	"context"

	"github.com/aanandhisonduri/BigBrain/internal/data/store"
	"github.com/aanandhisonduri/BigBrain/internal/domain/model"
	"github.com/aanandhisonduri/BigBrain/pkg/logging"
)

// Gate resolves an entity and checks that the caller owns it. It fails
// closed: a missing caller identity, a missing entity and a foreign
// entity all take the same denied return path, so a denied caller
// learns nothing about whether the entity exists.
type Gate struct {
	notes     store.NoteStore
	documents store.DocumentStore
	logger    *logging.Logger
}

func NewGate(notes store.NoteStore, documents store.DocumentStore) *Gate {
	return &Gate{
		notes:     notes,
		documents: documents,
		logger:    logging.NewLogger("AccessGate"),
	}
}

// Note returns the note when callerIdentity owns it; ok is false on any
// denial. Read-only, no side effects.
func (g *Gate) Note(ctx context.Context, callerIdentity string, noteId string) (*model.Note, bool) {
	if callerIdentity == "" {
		return nil, false
	}
	note, err := g.notes.Get(ctx, noteId)
	if err != nil {
		if err != model.ErrNotFound {
			g.logger.Error("Note lookup failed", "noteId", noteId, "error", err)
		}
		return nil, false
	}
	if note.OwnerToken != callerIdentity {
		return nil, false
	}
	return note, true
}

// Document is the document-side twin of Note.
func (g *Gate) Document(ctx context.Context, callerIdentity string, documentId string) (*model.Document, bool) {
	if callerIdentity == "" {
		return nil, false
	}
	doc, err := g.documents.Get(ctx, documentId)
	if err != nil {
		if err != model.ErrNotFound {
			g.logger.Error("Document lookup failed", "documentId", documentId, "error", err)
		}
		return nil, false
	}
	if doc.OwnerToken != callerIdentity {
		return nil, false
	}
	return doc, true
}
