package model

import "time"

type EntityKind string

const (
	KindNote     EntityKind = "note"
	KindDocument EntityKind = "document"
)

// Embeddable is any owned record that can carry a derived embedding.
// The embedding pipeline operates on this capability only, never on
// the concrete types.
type Embeddable interface {
	EntityId() string
	Owner() string
	CanonicalText() string
}

// Note is a free-text record embedded from its own body.
type Note struct {
	Id         string    `json:"id"`
	OwnerToken string    `json:"owner_token"`
	Text       string    `json:"text"`
	Embedding  []float32 `json:"embedding,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (n *Note) EntityId() string      { return n.Id }
func (n *Note) Owner() string         { return n.OwnerToken }
func (n *Note) CanonicalText() string { return n.Text }

// Document points at an uploaded file. Description starts empty and is
// populated by a background task; the embedding is computed from the
// description, never from the raw file content.
type Document struct {
	Id          string    `json:"id"`
	OwnerToken  string    `json:"owner_token"`
	Title       string    `json:"title"`
	FileId      string    `json:"file_id"`
	Description string    `json:"description"`
	Embedding   []float32 `json:"embedding,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (d *Document) EntityId() string      { return d.Id }
func (d *Document) Owner() string         { return d.OwnerToken }
func (d *Document) CanonicalText() string { return d.Description }

// ChatMessage is one side of a question/answer exchange against a
// document. Messages are append-only; the persisted order is the record
// of the conversation.
type ChatMessage struct {
	Id         string    `json:"id"`
	DocumentId string    `json:"document_id"`
	OwnerToken string    `json:"owner_token"`
	Text       string    `json:"text"`
	IsHuman    bool      `json:"is_human"`
	CreatedAt  time.Time `json:"created_at"`
}

// SearchResult tags a matched record with its kind and similarity score.
// Results are ephemeral; only the relative ordering is meaningful.
type SearchResult struct {
	Kind     EntityKind `json:"kind"`
	Note     *Note      `json:"note,omitempty"`
	Document *Document  `json:"document,omitempty"`
	Score    float64    `json:"score"`
}

func (r SearchResult) RecordId() string {
	if r.Kind == KindNote {
		return r.Note.Id
	}
	return r.Document.Id
}

func (r SearchResult) RecordCreatedAt() time.Time {
	if r.Kind == KindNote {
		return r.Note.CreatedAt
	}
	return r.Document.CreatedAt
}
