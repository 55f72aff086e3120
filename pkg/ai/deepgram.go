package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/johnquangdev/lecture-notes/pkg/config"
)

// DeepgramClient is a minimal client for Deepgram's pre-recorded audio API
type DeepgramClient struct {
	apiKey   string
	baseURL  string
	timeouts Timeouts
	client   *http.Client
}

// NewDeepgramClient creates a Deepgram client using values from the provided config
func NewDeepgramClient(cfg config.DeepgramConfig, timeouts Timeouts) *DeepgramClient {
	base := cfg.BaseURL
	if base == "" {
		base = "https://api.deepgram.com"
	}
	return &DeepgramClient{
		apiKey:   cfg.APIKey,
		baseURL:  strings.TrimRight(base, "/"),
		timeouts: timeouts.withDefaults(),
		client:   &http.Client{},
	}
}

// Name returns the provider name
func (c *DeepgramClient) Name() string {
	return string(config.ProviderDeepgram)
}

// MaxUploadBytes returns 0: Deepgram imposes no client-side ceiling
func (c *DeepgramClient) MaxUploadBytes() int64 {
	return 0
}

type listenResponse struct {
	Metadata struct {
		Duration float64 `json:"duration"`
	} `json:"metadata"`
	Results struct {
		Channels []struct {
			DetectedLanguage string `json:"detected_language"`
			Alternatives     []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

// Transcribe posts the raw audio bytes to /v1/listen
func (c *DeepgramClient) Transcribe(ctx context.Context, path string, req TranscribeRequest) (*TranscribeResponse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	q := url.Values{}
	q.Set("model", req.Model)
	q.Set("smart_format", "true")
	q.Set("punctuate", "true")
	q.Set("paragraphs", "true")
	if req.Language != "" {
		q.Set("language", req.Language)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Transcription)
	defer cancel()

	endpoint := c.baseURL + "/v1/listen?" + q.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, f)
	if err != nil {
		return nil, err
	}
	if fi, err := f.Stat(); err == nil {
		httpReq.ContentLength = fi.Size()
	}
	httpReq.Header.Set("Authorization", "Token "+c.apiKey)
	httpReq.Header.Set("Content-Type", "audio/mp3")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, newAPIError(c.Name(), resp)
	}

	var lr listenResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, fmt.Errorf("decode deepgram response: %w", err)
	}
	if len(lr.Results.Channels) == 0 || len(lr.Results.Channels[0].Alternatives) == 0 {
		return nil, fmt.Errorf("empty response from deepgram")
	}

	channel := lr.Results.Channels[0]
	return &TranscribeResponse{
		Text:     channel.Alternatives[0].Transcript,
		Duration: lr.Metadata.Duration,
		Language: channel.DetectedLanguage,
	}, nil
}
