package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aanandhisonduri/BigBrain/internal/domain/model"
	"github.com/aanandhisonduri/BigBrain/pkg/logging"
)

// Client calls a feature-extraction model over HTTP. The response must
// be a bare JSON array of numbers of the model's dimensionality; any
// other shape is ErrEmbeddingFormat, never silently coerced.
type Client struct {
	baseURL   string
	apiKey    string
	model     string
	dimension int
	client    *http.Client
	logger    *logging.Logger
}

type Config struct {
	BaseURL   string
	APIKey    string
	Model     string
	Dimension int
	Timeout   time.Duration
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		dimension: cfg.Dimension,
		client:    &http.Client{Timeout: timeout},
		logger:    logging.NewLogger("HuggingFaceEmbedding"),
	}
}

func (c *Client) Dimension() int {
	return c.dimension
}

type embedRequest struct {
	Model  string `json:"model"`
	Inputs string `json:"inputs"`
}

func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: empty input text", model.ErrValidation)
	}

	body, err := json.Marshal(embedRequest{Model: c.model, Inputs: text})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrEmbeddingService, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrEmbeddingService, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrEmbeddingService, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", model.ErrEmbeddingService, err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Embedding call failed", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", model.ErrEmbeddingService, resp.StatusCode)
	}

	var vector []float32
	if err := json.Unmarshal(payload, &vector); err != nil {
		return nil, fmt.Errorf("%w: expected a numeric array", model.ErrEmbeddingFormat)
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: empty vector", model.ErrEmbeddingFormat)
	}
	if c.dimension > 0 && len(vector) != c.dimension {
		return nil, fmt.Errorf("%w: got %d values, want %d", model.ErrEmbeddingFormat, len(vector), c.dimension)
	}
	return vector, nil
}
