package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/akolanti/GoDocQA/internal/qa/llm"
	"github.com/akolanti/GoDocQA/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var _ llm.Provider = (*llmClient)(nil)

type llmClient struct {
	completions openai.ChatCompletionService
	modelName   string
	logger      *logger_i.Logger
}

type Option func(*[]option.RequestOption)

func WithBaseURL(url string) Option {
	return func(opts *[]option.RequestOption) {
		if url != "" {
			*opts = append(*opts, option.WithBaseURL(url))
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(opts *[]option.RequestOption) {
		if client != nil {
			*opts = append(*opts, option.WithHTTPClient(client))
		}
	}
}

// NewOpenAIClient builds a chat completion provider. Retries are disabled:
// a failed call takes the caller's failure path instead.
func NewOpenAIClient(apiKey string, modelName string, options ...Option) llm.Provider {
	requestOptions := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	for _, o := range options {
		o(&requestOptions)
	}

	logger := logger_i.NewLogger("llm_openai")
	client := openai.NewClient(requestOptions...)
	logger.Info("OpenAI client created", "model", modelName)

	return &llmClient{
		completions: client.Chat.Completions,
		modelName:   modelName,
		logger:      logger,
	}
}

func (c *llmClient) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	log := c.logger.WithTrace(ctx)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.Prompt),
		},
		MaxTokens:   openai.Int(req.MaxTokens),
		Temperature: openai.Float(req.Temperature),
	}

	completion, err := c.completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
			log.Error("OpenAI rejected credentials", "status", apiErr.StatusCode)
			return "", fmt.Errorf("%w: openai status %d", llm.ErrUnrecoverable, apiErr.StatusCode)
		}
		return "", fmt.Errorf("openai completion: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: openai returned no choices", llm.ErrUnrecoverable)
	}
	return completion.Choices[0].Message.Content, nil
}
