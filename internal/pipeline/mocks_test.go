package pipeline_test

import (
	"context"
)

// MockEmbedder implements embedding.Embedder
type MockEmbedder struct {
	OnEmbed func(ctx context.Context, text string) ([]float32, error)
	Calls   int
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.Calls++
	if m.OnEmbed != nil {
		return m.OnEmbed(ctx, text)
	}
	// deterministic: same text always yields the same vector
	vector := make([]float32, 4)
	for i, r := range text {
		vector[i%4] += float32(r) / 1000
	}
	return vector, nil
}

func (m *MockEmbedder) Dimension() int { return 4 }

// MockProvider implements llm.Provider
type MockProvider struct {
	OnComplete func(ctx context.Context, system string, user string) (string, error)
}

func (m *MockProvider) Complete(ctx context.Context, system string, user string) (string, error) {
	if m.OnComplete != nil {
		return m.OnComplete(ctx, system, user)
	}
	return "mocked completion", nil
}
