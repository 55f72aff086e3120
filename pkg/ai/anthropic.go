package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/johnquangdev/lecture-notes/pkg/config"
)

const (
	anthropicVersion   = "2023-06-01"
	anthropicMaxTokens = 4096
)

// AnthropicClient is a minimal client for the Anthropic Messages API
type AnthropicClient struct {
	apiKey   string
	baseURL  string
	timeouts Timeouts
	client   *http.Client
}

// NewAnthropicClient creates an Anthropic client using values from the provided config
func NewAnthropicClient(cfg config.AnthropicConfig, timeouts Timeouts) *AnthropicClient {
	base := cfg.BaseURL
	if base == "" {
		base = "https://api.anthropic.com"
	}
	return &AnthropicClient{
		apiKey:   cfg.APIKey,
		baseURL:  strings.TrimRight(base, "/"),
		timeouts: timeouts.withDefaults(),
		client:   &http.Client{},
	}
}

// Name returns the provider name
func (c *AnthropicClient) Name() string {
	return string(config.ProviderAnthropic)
}

type messagesRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// ChatComplete sends the system prompt and user content as a single user turn.
// The Messages API has no JSON mode, so JSONMode is carried by the prompt alone.
func (c *AnthropicClient) ChatComplete(ctx context.Context, req ChatRequest) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicMaxTokens
	}

	content := req.UserContent
	if req.SystemPrompt != "" {
		content = fmt.Sprintf("%s\n\nTranscript:\n%s", req.SystemPrompt, req.UserContent)
	}

	b, err := json.Marshal(messagesRequest{
		Model:       req.Model,
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
		Messages:    []chatMessage{{Role: "user", Content: content}},
	})
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Chat)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", newAPIError(c.Name(), resp)
	}

	var mr messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return "", err
	}

	var text strings.Builder
	for _, block := range mr.Content {
		if block.Type == "" || block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("empty response from anthropic")
	}
	return text.String(), nil
}
