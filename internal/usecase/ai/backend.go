package ai

import (
	"context"

	pkgai "github.com/johnquangdev/lecture-notes/pkg/ai"
)

// ChatBackend is one chat-completion service
type ChatBackend interface {
	Name() string
	ChatComplete(ctx context.Context, req pkgai.ChatRequest) (string, error)
}

// Chat temperatures per stage
const (
	translationTemperature   = 0.3
	formattingTemperature    = 0.2
	summarizationTemperature = 0.3
)
