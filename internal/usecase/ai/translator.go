package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/johnquangdev/lecture-notes/errors"
	"github.com/johnquangdev/lecture-notes/internal/domain/entities"
	pkgai "github.com/johnquangdev/lecture-notes/pkg/ai"
	"github.com/johnquangdev/lecture-notes/pkg/config"
	"github.com/johnquangdev/lecture-notes/pkg/jobcontext"
	"go.uber.org/zap"
)

// Translator renders an English transcript in the notes language
type Translator struct {
	backend ChatBackend
	model   string
	logger  *zap.Logger
}

// NewTranslator creates a translator; a nil backend makes every call a no-op
func NewTranslator(backend ChatBackend, providers config.ProviderConfig, logger *zap.Logger) *Translator {
	if !providers.HasChat() {
		backend = nil
	}
	return &Translator{
		backend: backend,
		model:   providers.SummarizationModel,
		logger:  logger,
	}
}

// Translate returns transcript in the target language. English targets, a
// missing backend and any failure all return the input unchanged.
func (t *Translator) Translate(ctx context.Context, transcript, target string) string {
	if target == "" || target == entities.LanguageEnglish || t.backend == nil {
		return transcript
	}

	if t.logger != nil {
		t.logger.Info("🌐 Translating transcript",
			append(jobcontext.Fields(ctx), zap.String("target", target))...)
	}

	translated, err := t.translate(ctx, transcript)
	if err != nil {
		if t.logger != nil {
			appErr := errors.ErrTranslationFailed(err)
			t.logger.Warn("⚠️ Translation failed, keeping original transcript",
				append(jobcontext.Fields(ctx),
					zap.String("code", appErr.Code.String()),
					zap.Error(appErr),
				)...,
			)
		}
		return transcript
	}

	if t.logger != nil {
		t.logger.Info("✅ Translation complete", zap.Int("characters", len(translated)))
	}
	return translated
}

func (t *Translator) translate(ctx context.Context, transcript string) (string, error) {
	reply, err := t.backend.ChatComplete(ctx, pkgai.ChatRequest{
		Model:        t.model,
		SystemPrompt: translationPrompt,
		UserContent:  transcript,
		Temperature:  translationTemperature,
	})
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", fmt.Errorf("%s returned an empty translation", t.backend.Name())
	}
	return reply, nil
}
