package embedding

import "context"

// Embedder turns text into a fixed-length vector. Implementations do no
// caching; every call is a fresh remote computation.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}
