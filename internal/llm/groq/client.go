package groq

import (
	"context"
	"fmt"

	"github.com/aanandhisonduri/BigBrain/internal/domain/model"
	"github.com/aanandhisonduri/BigBrain/pkg/logging"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Client talks to Groq's OpenAI-compatible chat completion endpoint.
type Client struct {
	client    openai.Client
	modelName string
	logger    *logging.Logger
}

func NewClient(apiKey string, baseURL string, modelName string) *Client {
	return &Client{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
		),
		modelName: modelName,
		logger:    logging.NewLogger("GroqLLM"),
	}
}

func (c *Client) Complete(ctx context.Context, system string, user string) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		c.logger.Error("Chat completion failed", "model", c.modelName, "error", err)
		return "", fmt.Errorf("%w: %v", model.ErrChatCompletion, err)
	}
	if len(completion.Choices) == 0 {
		return "", nil
	}
	return completion.Choices[0].Message.Content, nil
}
