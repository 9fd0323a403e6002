package llm

import "context"

// Provider is one chat-completion round trip: a system context plus a
// single user turn. An empty answer with a nil error means the model
// returned no content; callers decide the fallback text.
type Provider interface {
	Complete(ctx context.Context, system string, user string) (string, error)
}
