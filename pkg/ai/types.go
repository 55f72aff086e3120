package ai

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// MaxWhisperUploadBytes is the upload ceiling of the OpenAI and Groq transcription endpoints
const MaxWhisperUploadBytes int64 = 25 * 1024 * 1024

// Timeouts bound a single backend call
type Timeouts struct {
	Transcription time.Duration
	Chat          time.Duration
}

// DefaultTimeouts returns the timeouts used when none are configured
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Transcription: 10 * time.Minute,
		Chat:          2 * time.Minute,
	}
}

func (t Timeouts) withDefaults() Timeouts {
	d := DefaultTimeouts()
	if t.Transcription <= 0 {
		t.Transcription = d.Transcription
	}
	if t.Chat <= 0 {
		t.Chat = d.Chat
	}
	return t
}

// TranscribeRequest carries the per-call transcription settings
type TranscribeRequest struct {
	Model       string
	Language    string
	Prompt      string
	Temperature float64
}

// Segment is a timed piece of a transcript
type Segment struct {
	ID    int
	Start float64
	End   float64
	Text  string
}

// TranscribeResponse is the backend-neutral transcription result.
// Duration and Language are zero when the backend does not report them.
type TranscribeResponse struct {
	Text     string
	Duration float64
	Language string
	Segments []Segment
}

// ChatRequest is one system+user exchange with a chat model
type ChatRequest struct {
	Model        string
	SystemPrompt string
	UserContent  string
	Temperature  float64
	JSONMode     bool
	MaxTokens    int
}

// APIError is a non-2xx response from a remote AI service
type APIError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Service, e.StatusCode, e.Message)
}

// HTTPStatus returns the response status code
func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}

// newAPIError builds an APIError from a failed response, preferring the
// service's own error message over the raw body
func newAPIError(service string, resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	msg := strings.TrimSpace(string(body))
	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
		ErrMsg  string          `json:"err_msg"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		var nested struct {
			Message string `json:"message"`
		}
		var plain string
		switch {
		case len(envelope.Error) > 0 && json.Unmarshal(envelope.Error, &nested) == nil && nested.Message != "":
			msg = nested.Message
		case len(envelope.Error) > 0 && json.Unmarshal(envelope.Error, &plain) == nil && plain != "":
			msg = plain
		case envelope.Message != "":
			msg = envelope.Message
		case envelope.ErrMsg != "":
			msg = envelope.ErrMsg
		}
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	return &APIError{Service: service, StatusCode: resp.StatusCode, Message: msg}
}
