package transcription

import (
	"context"
	stdErrors "errors"
	"fmt"
	"os"
	"time"

	"github.com/johnquangdev/lecture-notes/errors"
	"github.com/johnquangdev/lecture-notes/internal/domain/entities"
	pkgai "github.com/johnquangdev/lecture-notes/pkg/ai"
	"github.com/johnquangdev/lecture-notes/pkg/config"
	"github.com/johnquangdev/lecture-notes/pkg/jobcontext"
	"github.com/johnquangdev/lecture-notes/pkg/retry"
	"go.uber.org/zap"
)

const bytesPerMB = 1024 * 1024

// Backend is one speech-to-text service
type Backend interface {
	Name() string
	// MaxUploadBytes is the largest accepted file, 0 for no limit
	MaxUploadBytes() int64
	Transcribe(ctx context.Context, path string, req pkgai.TranscribeRequest) (*pkgai.TranscribeResponse, error)
}

// Options are the per-call transcription hints
type Options struct {
	Language    string
	Prompt      string
	Temperature float64
}

// Provider runs the configured backend under the retry policy and
// normalizes its output
type Provider struct {
	backend   Backend
	providers config.ProviderConfig
	policy    retry.Policy
	logger    *zap.Logger
}

// NewProvider creates a transcription provider around backend
func NewProvider(backend Backend, providers config.ProviderConfig, policy retry.Policy, logger *zap.Logger) *Provider {
	return &Provider{
		backend:   backend,
		providers: providers,
		policy:    policy,
		logger:    logger,
	}
}

// Model returns the transcription model name
func (p *Provider) Model() string {
	return p.providers.TranscriptionModel
}

// Transcribe sends the audio at audioPath to the backend. Transient failures are
// retried; client errors fail on the first attempt. The file is never modified.
func (p *Provider) Transcribe(ctx context.Context, audioPath string, opts Options) (*entities.TranscriptionResult, error) {
	if p.backend == nil || !p.providers.HasTranscription() {
		return nil, errors.ErrProviderUnconfigured(string(p.providers.Provider))
	}

	info, err := os.Stat(audioPath)
	if err != nil {
		return nil, errors.ErrTranscriptionFailed(fmt.Errorf("stat audio: %w", err))
	}
	sizeMB := float64(info.Size()) / bytesPerMB

	if max := p.backend.MaxUploadBytes(); max > 0 && info.Size() > max {
		return nil, errors.ErrTranscriptionFailed(fmt.Errorf(
			"Audio file is %.2fMB. %s has a %dMB limit. Please compress the audio or use a shorter recording.",
			sizeMB, p.backend.Name(), max/bytesPerMB))
	}

	req := pkgai.TranscribeRequest{
		Model:       p.providers.TranscriptionModel,
		Language:    opts.Language,
		Prompt:      opts.Prompt,
		Temperature: opts.Temperature,
	}

	if p.logger != nil {
		p.logger.Info("🎙️ Starting transcription",
			append(jobcontext.Fields(ctx),
				zap.String("provider", p.backend.Name()),
				zap.String("model", req.Model),
				zap.String("size", fmt.Sprintf("%.2fMB", sizeMB)),
			)...,
		)
	}

	var resp *pkgai.TranscribeResponse
	attempts, err := p.policy.Do(ctx, func(ctx context.Context, attempt int) error {
		if p.logger != nil {
			p.logger.Debug("Transcription attempt",
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", p.policy.MaxAttempts),
			)
		}
		r, err := p.backend.Transcribe(ctx, audioPath, req)
		if err != nil {
			return err
		}
		resp = r
		return nil
	}, func(attempt int, err error, wait time.Duration) {
		if p.logger != nil {
			p.logger.Warn("⚠️ Transcription attempt failed, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("wait", wait),
				zap.Error(err),
			)
		}
	})
	if err != nil {
		var exhausted *retry.ExhaustedError
		if stdErrors.As(err, &exhausted) {
			err = fmt.Errorf(
				"Failed to transcribe after %d attempts. File size: %.2fMB. Last error: %s. Try with a smaller file (< 10MB recommended) or check your internet connection.",
				exhausted.Attempts, sizeMB, exhausted.Err.Error())
		}
		if p.logger != nil {
			p.logger.Error("❌ Transcription failed",
				zap.Int("attempts", attempts),
				zap.Error(err),
			)
		}
		return nil, errors.ErrTranscriptionFailed(err).WithDetail("provider", p.backend.Name())
	}

	result := normalize(resp)
	if p.logger != nil {
		p.logger.Info("✅ Transcription complete",
			zap.Int("attempts", attempts),
			zap.Int("characters", len(result.Text)),
			zap.Float64("duration_seconds", result.Duration()),
		)
	}
	return result, nil
}

func normalize(resp *pkgai.TranscribeResponse) *entities.TranscriptionResult {
	result := &entities.TranscriptionResult{
		Text:     resp.Text,
		Language: resp.Language,
	}
	if resp.Duration > 0 {
		d := resp.Duration
		result.DurationSeconds = &d
	}
	for _, seg := range resp.Segments {
		result.Segments = append(result.Segments, entities.TranscriptionSegment{
			ID:    seg.ID,
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
	}
	return result
}
