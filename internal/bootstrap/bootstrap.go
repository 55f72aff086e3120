// Package bootstrap wires configuration into a ready pipeline for the
// API server and the CLI.
package bootstrap

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/johnquangdev/lecture-notes/internal/infrastructure/cache"
	"github.com/johnquangdev/lecture-notes/internal/infrastructure/source"
	"github.com/johnquangdev/lecture-notes/internal/infrastructure/storage"
	aiuse "github.com/johnquangdev/lecture-notes/internal/usecase/ai"
	"github.com/johnquangdev/lecture-notes/internal/usecase/media"
	"github.com/johnquangdev/lecture-notes/internal/usecase/pipeline"
	"github.com/johnquangdev/lecture-notes/internal/usecase/transcription"
	pkgai "github.com/johnquangdev/lecture-notes/pkg/ai"
	"github.com/johnquangdev/lecture-notes/pkg/config"
	"github.com/johnquangdev/lecture-notes/pkg/executor"
	"github.com/johnquangdev/lecture-notes/pkg/ffmpeg"
	"github.com/johnquangdev/lecture-notes/pkg/retry"
)

// App holds the long-lived components built from configuration
type App struct {
	Orchestrator *pipeline.Orchestrator
	Validator    *media.Validator
	Fetcher      *source.Fetcher
	Archive      *storage.MinIOArchive // nil when storage is disabled
	Cache        *cache.NotesCache     // nil when caching is disabled

	logger *zap.Logger
}

// Build creates every pipeline component described by cfg
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	providers := cfg.Providers()

	for _, dir := range []string{cfg.Media.TempDir, cfg.Media.UploadDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	logger.Info("🤖 Initializing AI backends",
		zap.String("transcription", string(providers.Provider)),
		zap.String("transcription_model", providers.TranscriptionModel),
		zap.String("chat", string(providers.ChatProvider)),
		zap.String("summarization_model", providers.SummarizationModel),
	)
	if !providers.HasTranscription() {
		logger.Warn("⚠️ No API key for the transcription backend; runs will fail until one is configured",
			zap.String("provider", string(providers.Provider)))
	}
	if !providers.HasChat() {
		logger.Warn("⚠️ No API key for the chat backend; runs will fail until one is configured",
			zap.String("provider", string(providers.ChatProvider)))
	}

	speech, err := NewTranscriptionBackend(cfg)
	if err != nil {
		return nil, err
	}
	chat, err := NewChatBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	exec := executor.New()
	transcoder := ffmpeg.New(exec, cfg.Media.FFmpegPath, cfg.Media.FFprobePath)

	policy := retry.DefaultPolicy()
	policy.MaxAttempts = cfg.AI.RetryMaxAttempts
	if cfg.AI.RetryInitialInterval > 0 {
		policy.InitialInterval = cfg.AI.RetryInitialInterval
	}

	ceiling := cfg.SummaryTokenCeiling()
	estimator := aiuse.DefaultEstimator()

	stages := pipeline.Stages{
		Validator:   media.NewValidator(cfg.Media),
		Extractor:   media.NewExtractor(transcoder, cfg.Media.TempDir, cfg.Media.MaxAudioSizeMB, logger),
		Compressor:  media.NewCompressor(transcoder, cfg.Media.TempDir, logger),
		Transcriber: transcription.NewProvider(speech, providers, policy, logger),
		Translator:  aiuse.NewTranslator(chat, providers, logger),
		Formatter:   aiuse.NewFormatter(chat, providers, ceiling, estimator, logger),
		Summarizer: aiuse.NewSummarizer(chat, providers, aiuse.SummarizerConfig{
			TokenCeiling: ceiling,
			Strategy:     cfg.Summary.Strategy,
			Estimator:    estimator,
		}, logger),
	}

	app := &App{
		Validator: media.NewValidator(cfg.Media),
		Fetcher:   source.NewFetcher(cfg.Media, exec, logger),
		logger:    logger,
	}

	opts := pipeline.Options{
		CompressTriggerMB:     cfg.Media.CompressTriggerMB,
		CompressTargetMB:      cfg.Media.CompressTargetMB,
		Timeout:               cfg.Media.PipelineTimeout,
		TranscriptionLanguage: cfg.AI.TranscriptionLanguage,
	}

	notesCache, err := NewNotesCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if notesCache != nil {
		app.Cache = notesCache
		opts.Cache = notesCache
		logger.Info("📦 Notes cache enabled", zap.String("driver", cfg.Cache.Driver), zap.Duration("ttl", cfg.Cache.TTL))
	}

	if cfg.Storage.Enabled {
		archive, err := storage.NewMinIOArchive(ctx, cfg.Storage, logger)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to initialize notes archive: %w", err)
		}
		app.Archive = archive
		logger.Info("🪣 Notes archive enabled", zap.String("bucket", cfg.Storage.BucketName))
	}

	app.Orchestrator = pipeline.NewOrchestrator(stages, opts, logger)
	return app, nil
}

// Close releases the cache connection
func (a *App) Close() {
	if a.Cache == nil {
		return
	}
	if err := a.Cache.Close(); err != nil {
		a.logger.Warn("⚠️ Failed to close notes cache", zap.Error(err))
	}
}

// NewTranscriptionBackend returns the speech-to-text client for the configured provider
func NewTranscriptionBackend(cfg *config.Config) (transcription.Backend, error) {
	timeouts := timeoutsFrom(cfg)

	switch p := cfg.Providers().Provider; p {
	case config.ProviderOpenAI:
		return pkgai.NewOpenAIClient(cfg.AI.OpenAI, timeouts), nil
	case config.ProviderGroq:
		return pkgai.NewGroqClient(cfg.AI.Groq, timeouts), nil
	case config.ProviderDeepgram:
		return pkgai.NewDeepgramClient(cfg.AI.Deepgram, timeouts), nil
	case config.ProviderAssemblyAI:
		return pkgai.NewAssemblyAIClient(cfg.AI.AssemblyAI, timeouts), nil
	default:
		return nil, fmt.Errorf("no transcription backend for provider %q", p)
	}
}

// NewChatBackend returns the chat client for the configured summarization provider.
// A Gemini client is only created with an API key; without one the backend is nil
// and every chat stage reports the provider as unconfigured before calling it.
func NewChatBackend(ctx context.Context, cfg *config.Config) (aiuse.ChatBackend, error) {
	timeouts := timeoutsFrom(cfg)

	switch p := cfg.Providers().ChatProvider; p {
	case config.ProviderOpenAI:
		return pkgai.NewOpenAIClient(cfg.AI.OpenAI, timeouts), nil
	case config.ProviderGroq:
		return pkgai.NewGroqClient(cfg.AI.Groq, timeouts), nil
	case config.ProviderAnthropic:
		return pkgai.NewAnthropicClient(cfg.AI.Anthropic, timeouts), nil
	case config.ProviderGemini:
		if cfg.AI.Gemini.APIKey == "" {
			return nil, nil
		}
		return pkgai.NewGeminiClient(ctx, cfg.AI.Gemini, timeouts)
	default:
		return nil, fmt.Errorf("no chat backend for provider %q", p)
	}
}

// NewNotesCache returns the cache selected by CACHE_DRIVER, or nil for "none"
func NewNotesCache(ctx context.Context, cfg *config.Config) (*cache.NotesCache, error) {
	switch cfg.Cache.Driver {
	case "", "none":
		return nil, nil
	case "memory":
		return cache.NewNotesCache(cache.NewMemoryStore(), cfg.Cache.TTL), nil
	case "redis":
		store, err := cache.NewRedisStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return cache.NewNotesCache(store, cfg.Cache.TTL), nil
	default:
		return nil, fmt.Errorf("unsupported cache driver: %s", cfg.Cache.Driver)
	}
}

func timeoutsFrom(cfg *config.Config) pkgai.Timeouts {
	return pkgai.Timeouts{
		Transcription: cfg.AI.TranscriptionTimeout,
		Chat:          cfg.AI.ChatTimeout,
	}
}
