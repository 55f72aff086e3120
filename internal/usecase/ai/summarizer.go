package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/johnquangdev/lecture-notes/errors"
	"github.com/johnquangdev/lecture-notes/internal/domain/entities"
	pkgai "github.com/johnquangdev/lecture-notes/pkg/ai"
	"github.com/johnquangdev/lecture-notes/pkg/config"
	"github.com/johnquangdev/lecture-notes/pkg/jobcontext"
	"go.uber.org/zap"
)

// Strategies for transcripts over the token ceiling
const (
	StrategyCrop  = "crop"
	StrategyChunk = "chunk"
)

// SummarizerConfig tunes how much text one request may carry
type SummarizerConfig struct {
	// TokenCeiling of 0 uses the chat provider's default
	TokenCeiling int
	Strategy     string
	Estimator    TokenEstimator
}

// Summarizer turns a transcript into LectureNotes through a chat model
type Summarizer struct {
	backend   ChatBackend
	providers config.ProviderConfig
	ceiling   int
	strategy  string
	estimator TokenEstimator
	parser    *Parser
	logger    *zap.Logger
	now       func() time.Time
}

// NewSummarizer creates a summarizer for the configured chat backend
func NewSummarizer(backend ChatBackend, providers config.ProviderConfig, cfg SummarizerConfig, logger *zap.Logger) *Summarizer {
	if cfg.TokenCeiling <= 0 {
		cfg.TokenCeiling = config.DefaultTokenCeiling(providers.ChatProvider)
	}
	if cfg.Strategy == "" {
		cfg.Strategy = StrategyCrop
	}
	if cfg.Estimator == nil {
		cfg.Estimator = DefaultEstimator()
	}
	return &Summarizer{
		backend:   backend,
		providers: providers,
		ceiling:   cfg.TokenCeiling,
		strategy:  cfg.Strategy,
		estimator: cfg.Estimator,
		parser:    NewParser(),
		logger:    logger,
		now:       time.Now,
	}
}

// Model returns the summarization model name
func (s *Summarizer) Model() string {
	return s.providers.SummarizationModel
}

// Summarize generates notes for transcript. Over-long transcripts are cropped
// at a sentence boundary, or summarized chunk by chunk when the chunk strategy
// is configured.
func (s *Summarizer) Summarize(ctx context.Context, transcript, filename string, opts entities.SummarizationOptions) (*entities.LectureNotes, error) {
	if s.backend == nil || !s.providers.HasChat() {
		return nil, errors.ErrSummarizationFailed(errors.ErrProviderUnconfigured(string(s.providers.ChatProvider)))
	}
	if strings.TrimSpace(transcript) == "" {
		return nil, errors.ErrSummarizationFailed(entities.ErrEmptyTranscript)
	}

	estimated := s.estimator.Estimate(transcript)
	if s.logger != nil {
		s.logger.Info("📝 Generating lecture notes",
			append(jobcontext.Fields(ctx),
				zap.String("provider", s.backend.Name()),
				zap.String("model", s.providers.SummarizationModel),
				zap.Int("estimated_tokens", estimated),
				zap.Int("max_tokens", s.ceiling),
			)...,
		)
	}

	var (
		notes *entities.LectureNotes
		err   error
	)
	if s.strategy == StrategyChunk && estimated > s.ceiling {
		notes, err = s.summarizeChunks(ctx, transcript, opts)
	} else {
		notes, err = s.summarizeCropped(ctx, transcript, opts)
	}
	if err != nil {
		return nil, err
	}

	notes.Metadata.GeneratedAt = s.now().UTC()
	notes.Metadata.TranscriptionModel = s.providers.TranscriptionModel
	notes.Metadata.SummarizationModel = s.providers.SummarizationModel
	notes.Metadata.OriginalFilename = filename

	if s.logger != nil {
		s.logger.Info("✅ Lecture notes generated",
			zap.String("title", notes.Title),
			zap.Int("word_count", notes.Metadata.WordCount),
			zap.Bool("cropped", notes.Metadata.Cropped),
		)
	}
	return notes, nil
}

func (s *Summarizer) summarizeCropped(ctx context.Context, transcript string, opts entities.SummarizationOptions) (*entities.LectureNotes, error) {
	text, _, cropped := CropToTokenBudget(transcript, s.ceiling, s.estimator)
	if cropped && s.logger != nil {
		s.logger.Warn("✂️ Transcript too long, cropping",
			append(jobcontext.Fields(ctx),
				zap.Int("ceiling", s.ceiling),
				zap.Int("cropped_tokens", s.estimator.Estimate(text)),
			)...,
		)
	}

	notes, err := s.complete(ctx, text, opts)
	if err != nil {
		return nil, err
	}

	if cropped {
		notes.Summary = croppedSummaryPrefix(s.ceiling) + notes.Summary
		notes.Metadata.Cropped = true
		notes.Metadata.Note = entities.CroppedNote
	}
	notes.Metadata.WordCount = WordCount(text)
	return notes, nil
}

func (s *Summarizer) summarizeChunks(ctx context.Context, transcript string, opts entities.SummarizationOptions) (*entities.LectureNotes, error) {
	chunks := ChunkTranscript(transcript, s.ceiling, s.estimator)
	if s.logger != nil {
		s.logger.Info("🧩 Summarizing transcript in chunks",
			append(jobcontext.Fields(ctx), zap.Int("chunks", len(chunks)))...)
	}

	parts := make([]*entities.LectureNotes, 0, len(chunks))
	for i, chunk := range chunks {
		if s.logger != nil {
			s.logger.Debug("Summarizing chunk", zap.Int("chunk", i+1), zap.Int("of", len(chunks)))
		}
		part, err := s.complete(ctx, chunk, opts)
		if err != nil {
			return nil, err
		}
		if part.Title == entities.DefaultNotesTitle {
			part.Title = fmt.Sprintf("Part %d", i+1)
		}
		parts = append(parts, part)
	}

	notes := mergeNotes(parts)
	notes.Metadata.ChunkCount = len(chunks)
	notes.Metadata.WordCount = WordCount(transcript)
	return notes, nil
}

// complete runs one summarization request and parses the reply
func (s *Summarizer) complete(ctx context.Context, text string, opts entities.SummarizationOptions) (*entities.LectureNotes, error) {
	reply, err := s.backend.ChatComplete(ctx, pkgai.ChatRequest{
		Model:        s.providers.SummarizationModel,
		SystemPrompt: summarizationPrompt(opts),
		UserContent:  text,
		Temperature:  summarizationTemperature,
		JSONMode:     true,
	})
	if err != nil {
		return nil, errors.ErrSummarizationFailed(err).WithDetail("provider", s.backend.Name())
	}

	notes, err := s.parser.ParseNotesResponse(reply)
	if err != nil {
		return nil, errors.ErrParseFailed(err)
	}
	return notes, nil
}

// mergeNotes joins per-chunk notes: the first title, summaries separated by a
// blank line and every list concatenated in chunk order
func mergeNotes(parts []*entities.LectureNotes) *entities.LectureNotes {
	merged := &entities.LectureNotes{}
	summaries := make([]string, 0, len(parts))
	for i, p := range parts {
		if i == 0 {
			merged.Title = p.Title
		}
		summaries = append(summaries, p.Summary)
		merged.Paragraphs = append(merged.Paragraphs, p.Paragraphs...)
		merged.BulletPoints = append(merged.BulletPoints, p.BulletPoints...)
		merged.KeyConcepts = append(merged.KeyConcepts, p.KeyConcepts...)
		merged.Definitions = append(merged.Definitions, p.Definitions...)
		merged.ExampleProblems = append(merged.ExampleProblems, p.ExampleProblems...)
		merged.ActionItems = append(merged.ActionItems, p.ActionItems...)
	}
	merged.Summary = strings.Join(summaries, "\n\n")
	merged.EnsureSlices()
	return merged
}
