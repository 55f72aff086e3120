package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/johnquangdev/lecture-notes/pkg/config"
	"google.golang.org/genai"
)

// GeminiClient wraps the Gemini API client for chat-style generation
type GeminiClient struct {
	client   *genai.Client
	timeouts Timeouts
}

// NewGeminiClient creates a Gemini client. An empty base URL keeps the SDK default.
func NewGeminiClient(ctx context.Context, cfg config.GeminiConfig, timeouts Timeouts) (*GeminiClient, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{client: client, timeouts: timeouts.withDefaults()}, nil
}

// Name returns the provider name
func (c *GeminiClient) Name() string {
	return string(config.ProviderGemini)
}

// ChatComplete generates content with the system prompt as system instruction
func (c *GeminiClient) ChatComplete(ctx context.Context, req ChatRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Chat)
	defer cancel()

	gc := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if req.SystemPrompt != "" {
		gc.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}
	if req.JSONMode {
		gc.ResponseMIMEType = "application/json"
	}
	if req.MaxTokens > 0 {
		gc.MaxOutputTokens = int32(req.MaxTokens)
	}

	result, err := c.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.UserContent), gc)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &APIError{Service: c.Name(), StatusCode: apiErr.Code, Message: apiErr.Message}
		}
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text string
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" && !part.Thought {
				text += part.Text
			}
		}
		if text != "" {
			return text, nil
		}
	}

	return "", fmt.Errorf("empty response from Gemini")
}
