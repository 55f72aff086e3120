package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/johnquangdev/lecture-notes/pkg/config"
)

// OpenAIClient talks to an OpenAI-compatible REST API. It serves both OpenAI
// itself and Groq, which exposes the same endpoints under /openai/v1.
type OpenAIClient struct {
	name        string
	apiKey      string
	baseURL     string
	pathPrefix  string
	verboseJSON bool
	timeouts    Timeouts
	client      *http.Client
}

// NewOpenAIClient creates an OpenAI client using values from the provided config
func NewOpenAIClient(cfg config.OpenAIConfig, timeouts Timeouts) *OpenAIClient {
	base := cfg.BaseURL
	if base == "" {
		base = "https://api.openai.com"
	}
	return &OpenAIClient{
		name:        string(config.ProviderOpenAI),
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(base, "/"),
		pathPrefix:  "/v1",
		verboseJSON: true,
		timeouts:    timeouts.withDefaults(),
		client:      &http.Client{},
	}
}

// Name returns the provider name
func (c *OpenAIClient) Name() string {
	return c.name
}

// MaxUploadBytes returns the transcription upload ceiling
func (c *OpenAIClient) MaxUploadBytes() int64 {
	return MaxWhisperUploadBytes
}

type transcriptionResponse struct {
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
	Language string  `json:"language"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// Transcribe uploads the audio file at path to the transcriptions endpoint
func (c *OpenAIClient) Transcribe(ctx context.Context, path string, req TranscribeRequest) (*TranscribeResponse, error) {
	body, contentType, err := c.transcriptionForm(path, req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Transcription)
	defer cancel()

	endpoint := c.baseURL + c.pathPrefix + "/audio/transcriptions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, newAPIError(c.name, resp)
	}

	var tr transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("decode %s transcription: %w", c.name, err)
	}

	out := &TranscribeResponse{
		Text:     tr.Text,
		Duration: tr.Duration,
		Language: tr.Language,
	}
	for i, seg := range tr.Segments {
		out.Segments = append(out.Segments, Segment{ID: i, Start: seg.Start, End: seg.End, Text: seg.Text})
	}
	return out, nil
}

func (c *OpenAIClient) transcriptionForm(path string, req TranscribeRequest) (*bytes.Buffer, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	part, err := w.CreateFormFile("file", "audio.mp3")
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("read audio file: %w", err)
	}

	fields := map[string]string{
		"model":       req.Model,
		"language":    req.Language,
		"prompt":      req.Prompt,
		"temperature": strconv.FormatFloat(req.Temperature, 'f', -1, 64),
	}
	if c.verboseJSON {
		fields["response_format"] = "verbose_json"
	} else {
		fields["response_format"] = "json"
	}
	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ChatComplete sends one system+user exchange and returns the assistant content
func (c *OpenAIClient) ChatComplete(ctx context.Context, req ChatRequest) (string, error) {
	reqBody := chatCompletionRequest{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserContent},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSONMode {
		reqBody.ResponseFormat = map[string]string{"type": "json_object"}
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Chat)
	defer cancel()

	endpoint := c.baseURL + c.pathPrefix + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", newAPIError(c.name, resp)
	}

	var cr chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from %s", c.name)
	}
	return cr.Choices[0].Message.Content, nil
}
