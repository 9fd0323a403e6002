package task

import "time"

type Kind string

const (
	KindEmbedNote           Kind = "EmbedNote"
	KindEmbedDocument       Kind = "EmbedDocument"
	KindGenerateDescription Kind = "GenerateDescription"
)

// Task is one unit of deferred work. Handlers are idempotent so the
// at-least-once delivery of the queue is safe.
type Task struct {
	Id        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	EntityId  string    `json:"entity_id"`
	Text      string    `json:"text,omitempty"`
	TraceId   string    `json:"trace_id"`
	Attempts  int       `json:"attempts"`
	CreatedAt time.Time `json:"created_at"`
}

// Scheduler is the deferred-task boundary. The enqueuing request returns
// immediately; execution happens on the worker pool.
type Scheduler interface {
	Schedule(t Task, delay time.Duration)
}
