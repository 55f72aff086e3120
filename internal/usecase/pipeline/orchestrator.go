package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/johnquangdev/lecture-notes/errors"
	"github.com/johnquangdev/lecture-notes/internal/domain/entities"
	"github.com/johnquangdev/lecture-notes/internal/usecase/media"
	"github.com/johnquangdev/lecture-notes/internal/usecase/transcription"
	"github.com/johnquangdev/lecture-notes/pkg/jobcontext"
	"go.uber.org/zap"
)

const bytesPerMB = 1024 * 1024

// Options tune a run
type Options struct {
	// CompressTriggerMB is the audio size above which compression runs
	CompressTriggerMB float64
	CompressTargetMB  float64
	// Timeout bounds a whole run, 0 for none
	Timeout time.Duration
	// Cache is optional
	Cache NotesCache
	// TranscriptionLanguage is an ISO-639-1 hint for speech-to-text, empty to auto-detect
	TranscriptionLanguage string
}

// Orchestrator runs the media-to-notes pipeline
type Orchestrator struct {
	stages Stages
	opts   Options
	logger *zap.Logger
}

// NewOrchestrator creates an orchestrator over the given stages
func NewOrchestrator(stages Stages, opts Options, logger *zap.Logger) *Orchestrator {
	if opts.CompressTriggerMB <= 0 {
		opts.CompressTriggerMB = 10
	}
	if opts.CompressTargetMB <= 0 {
		opts.CompressTargetMB = 8
	}
	return &Orchestrator{
		stages: stages,
		opts:   opts,
		logger: logger,
	}
}

// ProcessMedia turns asset into lecture notes. Every file created during the
// run is removed before it returns; asset itself is removed only when
// opts.DeleteSource is set.
func (o *Orchestrator) ProcessMedia(ctx context.Context, asset *entities.MediaAsset, opts entities.ProcessOptions) (*entities.LectureNotes, error) {
	if asset == nil || asset.Path == "" {
		return nil, errors.ErrInvalidArgument(entities.ErrEmptyPath.Error())
	}
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, errors.ErrInvalidArgument(err.Error())
	}

	ctx, cancel := jobcontext.Begin(ctx, uuid.New(), asset.DisplayName(), o.opts.Timeout)
	defer cancel()

	var derived []string
	defer func() {
		for _, path := range derived {
			o.remove(ctx, path)
		}
		if opts.DeleteSource {
			o.remove(ctx, asset.Path)
		}
	}()

	o.info(ctx, "🚀 Processing media",
		zap.String("filename", asset.OriginalFilename),
		zap.String("size", media.FormatFileSize(asset.SizeBytes)),
		zap.String("language", opts.Language),
		zap.String("detail_level", opts.DetailLevel),
	)

	if err := jobcontext.Stage(ctx, "validate", func(context.Context) error {
		return o.stages.Validator.Check(asset)
	}); err != nil {
		o.fail(ctx, "validate", err)
		return nil, err
	}

	filename := asset.OriginalFilename
	if filename == "" {
		filename = asset.DisplayName()
	}

	cacheKey := o.lookupKey(ctx, asset, opts)
	if cacheKey != "" {
		if cached, err := o.opts.Cache.Get(ctx, cacheKey); err != nil {
			o.warn(ctx, "⚠️ Notes cache read failed", zap.Error(errors.ErrCacheFailed("get", err)))
		} else if cached != nil {
			// the key covers content and options only; metadata belongs to this run
			notes := *cached
			notes.Metadata.OriginalFilename = filename
			notes.Metadata.GeneratedAt = time.Now().UTC()
			o.info(ctx, "♻️ Returning cached notes", zap.String("title", notes.Title))
			return &notes, nil
		}
	}

	audioPath := asset.Path
	var extractedDuration float64

	if asset.Kind == entities.MediaKindVideo {
		err := jobcontext.Stage(ctx, "extract", func(ctx context.Context) error {
			res, err := o.stages.Extractor.Extract(ctx, asset.Path)
			if err != nil {
				return err
			}
			derived = append(derived, res.AudioPath)
			audioPath = res.AudioPath
			extractedDuration = res.DurationSeconds
			return nil
		})
		if err != nil {
			o.fail(ctx, "extract", err)
			return nil, err
		}
	}

	if info, err := os.Stat(audioPath); err == nil && float64(info.Size()) > o.opts.CompressTriggerMB*bytesPerMB {
		err := jobcontext.Stage(ctx, "compress", func(ctx context.Context) error {
			compressed, err := o.stages.Compressor.CompressIfNeeded(ctx, audioPath, o.opts.CompressTargetMB)
			if err != nil {
				return err
			}
			if compressed != audioPath {
				derived = append(derived, compressed)
				audioPath = compressed
			}
			return nil
		})
		if err != nil {
			if ctx.Err() != nil {
				o.fail(ctx, "compress", err)
				return nil, err
			}
			o.warn(ctx, "⚠️ Compression failed, continuing with uncompressed audio", zap.Error(err))
		}
	}

	var result *entities.TranscriptionResult
	if err := jobcontext.Stage(ctx, "transcribe", func(ctx context.Context) error {
		r, err := o.stages.Transcriber.Transcribe(ctx, audioPath, transcription.Options{Language: o.opts.TranscriptionLanguage})
		if err != nil {
			return err
		}
		if strings.TrimSpace(r.Text) == "" {
			return errors.ErrTranscriptionFailed(entities.ErrEmptyTranscript)
		}
		result = r
		return nil
	}); err != nil {
		o.fail(ctx, "transcribe", err)
		return nil, err
	}

	text := result.Text
	if opts.Language != entities.LanguageEnglish {
		_ = jobcontext.Stage(ctx, "translate", func(ctx context.Context) error {
			text = o.stages.Translator.Translate(ctx, text, opts.Language)
			return nil
		})
	}

	_ = jobcontext.Stage(ctx, "format", func(ctx context.Context) error {
		text = o.stages.Formatter.Format(ctx, text, opts.Language)
		return nil
	})

	var notes *entities.LectureNotes
	if err := jobcontext.Stage(ctx, "summarize", func(ctx context.Context) error {
		n, err := o.stages.Summarizer.Summarize(ctx, text, filename, opts.Summarization())
		if err != nil {
			return err
		}
		notes = n
		return nil
	}); err != nil {
		o.fail(ctx, "summarize", err)
		return nil, err
	}

	notes.Transcript = text
	if result.DurationSeconds != nil {
		d := *result.DurationSeconds
		notes.Metadata.DurationSeconds = &d
	} else if extractedDuration > 0 {
		d := extractedDuration
		notes.Metadata.DurationSeconds = &d
	}

	if cacheKey != "" {
		if err := o.opts.Cache.Set(ctx, cacheKey, notes); err != nil {
			o.warn(ctx, "⚠️ Notes cache write failed", zap.Error(errors.ErrCacheFailed("set", err)))
		}
	}

	o.info(ctx, "🎉 Lecture notes ready",
		zap.String("title", notes.Title),
		zap.Int("word_count", notes.Metadata.WordCount),
	)
	return notes, nil
}

// lookupKey returns the cache key for this run, or "" when caching is off
func (o *Orchestrator) lookupKey(ctx context.Context, asset *entities.MediaAsset, opts entities.ProcessOptions) string {
	if o.opts.Cache == nil {
		return ""
	}
	key, err := CacheKey(asset.Path, opts, o.stages.Transcriber.Model(), o.stages.Summarizer.Model())
	if err != nil {
		o.warn(ctx, "⚠️ Could not hash media for cache", zap.Error(err))
		return ""
	}
	return key
}

func (o *Orchestrator) remove(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		o.warn(ctx, "Failed to remove file", zap.String("path", path), zap.Error(err))
	}
}

func (o *Orchestrator) fail(ctx context.Context, stage string, err error) {
	if o.logger == nil {
		return
	}
	o.logger.Error(fmt.Sprintf("❌ Pipeline failed at %s", stage), append(jobcontext.Fields(ctx), zap.Error(err))...)
}

func (o *Orchestrator) info(ctx context.Context, msg string, fields ...zap.Field) {
	if o.logger != nil {
		o.logger.Info(msg, append(jobcontext.Fields(ctx), fields...)...)
	}
}

func (o *Orchestrator) warn(ctx context.Context, msg string, fields ...zap.Field) {
	if o.logger != nil {
		o.logger.Warn(msg, append(jobcontext.Fields(ctx), fields...)...)
	}
}
