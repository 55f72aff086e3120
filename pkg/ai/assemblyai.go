package ai

import (
	"context"
	"fmt"
	"os"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/johnquangdev/lecture-notes/pkg/config"
)

// AssemblyAIClient transcribes local files through the official AssemblyAI SDK
type AssemblyAIClient struct {
	sdk      *aai.Client
	timeouts Timeouts
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config
func NewAssemblyAIClient(cfg config.AssemblyAIConfig, timeouts Timeouts) *AssemblyAIClient {
	return &AssemblyAIClient{
		sdk:      aai.NewClient(cfg.APIKey),
		timeouts: timeouts.withDefaults(),
	}
}

// Name returns the provider name
func (c *AssemblyAIClient) Name() string {
	return string(config.ProviderAssemblyAI)
}

// MaxUploadBytes returns 0: uploads go through the SDK without a client-side ceiling
func (c *AssemblyAIClient) MaxUploadBytes() int64 {
	return 0
}

// Transcribe uploads the file, then submits it and waits for completion
func (c *AssemblyAIClient) Transcribe(ctx context.Context, path string, req TranscribeRequest) (*TranscribeResponse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Transcription)
	defer cancel()

	uploadURL, err := c.sdk.Upload(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to upload to AssemblyAI: %w", err)
	}

	params := &aai.TranscriptOptionalParams{}
	if req.Language != "" {
		params.LanguageCode = aai.TranscriptLanguageCode(req.Language)
	} else {
		params.LanguageDetection = aai.Bool(true)
	}
	if req.Model != "" {
		params.SpeechModel = aai.SpeechModel(req.Model)
	}

	transcript, err := c.sdk.Transcripts.TranscribeFromURL(ctx, uploadURL, params)
	if err != nil {
		return nil, fmt.Errorf("assemblyai transcription: %w", err)
	}

	return transcriptToResponse(transcript)
}

// transcriptToResponse normalizes a finished transcript; AssemblyAI reports
// timings in milliseconds
func transcriptToResponse(t aai.Transcript) (*TranscribeResponse, error) {
	if t.Status == aai.TranscriptStatusError {
		return nil, fmt.Errorf("assemblyai reported error: %s", deref(t.Error))
	}

	out := &TranscribeResponse{
		Text:     deref(t.Text),
		Language: string(t.LanguageCode),
	}

	for i, u := range t.Utterances {
		seg := Segment{
			ID:    i,
			Start: msToSeconds(u.Start),
			End:   msToSeconds(u.End),
			Text:  deref(u.Text),
		}
		out.Segments = append(out.Segments, seg)
	}

	switch {
	case len(t.Words) > 0:
		out.Duration = msToSeconds(t.Words[len(t.Words)-1].End)
	case len(out.Segments) > 0:
		out.Duration = out.Segments[len(out.Segments)-1].End
	}

	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func msToSeconds(ms *int64) float64 {
	if ms == nil {
		return 0
	}
	return float64(*ms) / 1000
}
