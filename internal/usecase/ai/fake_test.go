package ai

import (
	"context"

	pkgai "github.com/johnquangdev/lecture-notes/pkg/ai"
	"github.com/johnquangdev/lecture-notes/pkg/config"
)

// fakeChat replays scripted replies and records every request
type fakeChat struct {
	replies []string
	errs    []error
	reqs    []pkgai.ChatRequest
}

func (f *fakeChat) Name() string { return "fake" }

func (f *fakeChat) ChatComplete(_ context.Context, req pkgai.ChatRequest) (string, error) {
	i := len(f.reqs)
	f.reqs = append(f.reqs, req)
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if len(f.replies) == 0 {
		return "", nil
	}
	if i < len(f.replies) {
		return f.replies[i], nil
	}
	return f.replies[len(f.replies)-1], nil
}

func testProviders() config.ProviderConfig {
	return config.ProviderConfig{
		Provider:           config.ProviderOpenAI,
		TranscriptionModel: "whisper-1",
		APIKey:             "sk-test",
		ChatProvider:       config.ProviderOpenAI,
		SummarizationModel: "gpt-4o-mini",
		ChatAPIKey:         "sk-test",
	}
}
