package ai

import (
	"net/http"
	"strings"

	"github.com/johnquangdev/lecture-notes/pkg/config"
)

// NewGroqClient creates a Groq client using values from the provided config.
// Groq serves the OpenAI wire format under /openai/v1 and its transcription
// endpoint answers with plain json (no segments).
func NewGroqClient(cfg config.GroqConfig, timeouts Timeouts) *OpenAIClient {
	base := cfg.BaseURL
	if base == "" {
		base = "https://api.groq.com"
	}
	return &OpenAIClient{
		name:        string(config.ProviderGroq),
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(base, "/"),
		pathPrefix:  "/openai/v1",
		verboseJSON: false,
		timeouts:    timeouts.withDefaults(),
		client:      &http.Client{},
	}
}
