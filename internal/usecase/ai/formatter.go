package ai

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/johnquangdev/lecture-notes/errors"
	pkgai "github.com/johnquangdev/lecture-notes/pkg/ai"
	"github.com/johnquangdev/lecture-notes/pkg/config"
	"github.com/johnquangdev/lecture-notes/pkg/jobcontext"
	"go.uber.org/zap"
)

// paragraphChars is the heuristic paragraph length
const paragraphChars = 500

// Formatter adds headings and paragraph breaks to a transcript
type Formatter struct {
	backend   ChatBackend
	model     string
	ceiling   int
	estimator TokenEstimator
	logger    *zap.Logger
}

// NewFormatter creates a formatter. Without a chat backend it only applies
// the paragraph heuristic.
func NewFormatter(backend ChatBackend, providers config.ProviderConfig, ceiling int, estimator TokenEstimator, logger *zap.Logger) *Formatter {
	if !providers.HasChat() {
		backend = nil
	}
	if ceiling <= 0 {
		ceiling = config.DefaultTokenCeiling(providers.ChatProvider)
	}
	if estimator == nil {
		estimator = DefaultEstimator()
	}
	return &Formatter{
		backend:   backend,
		model:     providers.SummarizationModel,
		ceiling:   ceiling,
		estimator: estimator,
		logger:    logger,
	}
}

// Format returns a readable version of transcript. It never fails: backend
// errors fall back to AddBasicParagraphs.
func (f *Formatter) Format(ctx context.Context, transcript, language string) string {
	if f.backend == nil {
		return AddBasicParagraphs(transcript)
	}

	formatted, err := f.format(ctx, transcript, language)
	if err != nil {
		if f.logger != nil {
			appErr := errors.ErrFormattingFailed(err)
			f.logger.Warn("⚠️ Formatting failed, using basic paragraphs",
				append(jobcontext.Fields(ctx),
					zap.String("code", appErr.Code.String()),
					zap.Error(appErr),
				)...,
			)
		}
		return AddBasicParagraphs(transcript)
	}
	return formatted
}

func (f *Formatter) format(ctx context.Context, transcript, language string) (string, error) {
	kept, rest, cropped := CropToTokenBudget(transcript, f.ceiling, f.estimator)
	if cropped && f.logger != nil {
		f.logger.Info("✂️ Transcript too long for formatting, formatting the first part only",
			append(jobcontext.Fields(ctx),
				zap.Int("estimated_tokens", f.estimator.Estimate(transcript)),
				zap.Int("ceiling", f.ceiling),
				zap.Int("unformatted_chars", utf8.RuneCountInString(rest)),
			)...,
		)
	}

	reply, err := f.backend.ChatComplete(ctx, pkgai.ChatRequest{
		Model:        f.model,
		SystemPrompt: formatPrompt(language),
		UserContent:  kept,
		Temperature:  formattingTemperature,
	})
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", fmt.Errorf("%s returned an empty reply", f.backend.Name())
	}

	if rest != "" {
		reply += "\n\n" + AddBasicParagraphs(rest)
	}
	return reply, nil
}

// AddBasicParagraphs inserts a blank line after the first sentence boundary
// once roughly 500 characters have accumulated. Text without sentence
// punctuation is returned trimmed.
func AddBasicParagraphs(transcript string) string {
	var b strings.Builder
	count := 0
	pos := 0

	for _, m := range sentenceBoundary.FindAllStringIndex(transcript, -1) {
		sentence := transcript[pos:m[0]]
		delim := transcript[m[0]:m[1]]
		pos = m[1]

		b.WriteString(sentence)
		b.WriteString(delim)
		count += utf8.RuneCountInString(sentence) + utf8.RuneCountInString(delim)

		if count > paragraphChars {
			b.WriteString("\n\n")
			count = 0
		}
	}
	b.WriteString(transcript[pos:])

	return strings.TrimSpace(b.String())
}
