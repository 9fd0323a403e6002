package gemini

import (
	"context"
	"fmt"

	"github.com/aanandhisonduri/BigBrain/internal/domain/model"
	"github.com/aanandhisonduri/BigBrain/pkg/logging"
	"google.golang.org/genai"
)

// Client is the Gemini alternative to the Groq provider, selected via
// CHAT_PROVIDER.
type Client struct {
	client    *genai.Client
	modelName string
	logger    *logging.Logger
}

func NewClient(ctx context.Context, apiKey string, modelName string) (*Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Client{
		client:    c,
		modelName: modelName,
		logger:    logging.NewLogger("GeminiLLM"),
	}, nil
}

func (c *Client) Complete(ctx context.Context, system string, user string) (string, error) {
	contentConfig := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: system},
			},
		},
	}

	result, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(user), contentConfig)
	if err != nil {
		c.logger.Error("Chat completion failed", "model", c.modelName, "error", err)
		return "", fmt.Errorf("%w: %v", model.ErrChatCompletion, err)
	}
	return result.Text(), nil
}
