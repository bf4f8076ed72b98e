package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/akolanti/GoDocQA/internal/qa/llm"
	"github.com/akolanti/GoDocQA/pkg/logger_i"
	"google.golang.org/genai"
)

var _ llm.Provider = (*llmClient)(nil)

type llmClient struct {
	models    generator
	modelName string
	logger    *logger_i.Logger
}

// generator is the part of genai.Models the provider calls.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

func GetGeminiClient(ctx context.Context, apikey string, modelName string, httpClient *http.Client) (llm.Provider, error) {
	logger := logger_i.NewLogger("llm_gemini")

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apikey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		logger.Error("Error creating Gemini client:", "error", err)
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	logger.Info("Gemini client created", "model", modelName)
	return &llmClient{models: c.Models, modelName: modelName, logger: logger}, nil
}

func (c *llmClient) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	contentConfig := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: req.System},
			},
		},
		Temperature:     genai.Ptr(float32(req.Temperature)),
		MaxOutputTokens: int32(req.MaxTokens),
	}

	result, err := c.models.GenerateContent(ctx, c.modelName, genai.Text(req.Prompt), contentConfig)
	if err != nil {
		if isAuthError(err) {
			c.logger.WithTrace(ctx).Error("Gemini rejected the credentials", "model", c.modelName, "error", err)
			return "", fmt.Errorf("%w: gemini completion: %v", llm.ErrUnrecoverable, err)
		}
		return "", fmt.Errorf("gemini completion: %w", err)
	}
	if result == nil || len(result.Candidates) == 0 {
		c.logger.WithTrace(ctx).Warn("Gemini returned no candidates", "model", c.modelName)
		return "", fmt.Errorf("%w: gemini returned no candidates", llm.ErrUnrecoverable)
	}
	return result.Text(), nil
}

func isAuthError(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code == http.StatusUnauthorized || apiErrPtr.Code == http.StatusForbidden
	}
	return false
}
