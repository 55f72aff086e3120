package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration.
// It is built once by Load and must not be mutated afterwards.
type Config struct {
	Server  ServerConfig
	AI      AIConfig
	Media   MediaConfig
	Summary SummaryConfig
	Storage StorageConfig
	Cache   CacheConfig
	Auth    AuthConfig
	Logging LoggingConfig

	providers ProviderConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10" validate:"gte=0"`
}

// AIConfig holds credentials and model names for every supported backend
type AIConfig struct {
	Provider              string        `envconfig:"AI_PROVIDER" default:"openai" validate:"oneof=openai groq deepgram anthropic assemblyai"`
	SummarizationProvider string        `envconfig:"SUMMARIZATION_PROVIDER" validate:"omitempty,oneof=openai groq anthropic gemini"`
	TranscriptionLanguage string        `envconfig:"TRANSCRIPTION_LANGUAGE" default:"en"`
	TranscriptionTimeout  time.Duration `envconfig:"TRANSCRIPTION_TIMEOUT" default:"10m"`
	ChatTimeout           time.Duration `envconfig:"CHAT_TIMEOUT" default:"2m"`
	RetryMaxAttempts      int           `envconfig:"RETRY_MAX_ATTEMPTS" default:"3" validate:"gte=1"`
	RetryInitialInterval  time.Duration `envconfig:"RETRY_INITIAL_INTERVAL" default:"2s"`

	OpenAI     OpenAIConfig
	Groq       GroqConfig
	Deepgram   DeepgramConfig
	Anthropic  AnthropicConfig
	AssemblyAI AssemblyAIConfig
	Gemini     GeminiConfig
}

// OpenAIConfig holds OpenAI configuration
type OpenAIConfig struct {
	APIKey             string `envconfig:"OPENAI_API_KEY"`
	BaseURL            string `envconfig:"OPENAI_API_URL" default:"https://api.openai.com"`
	TranscriptionModel string `envconfig:"OPENAI_TRANSCRIPTION_MODEL" default:"whisper-1"`
	SummarizationModel string `envconfig:"OPENAI_SUMMARIZATION_MODEL" default:"gpt-4-turbo-preview"`
}

// GroqConfig holds Groq configuration
type GroqConfig struct {
	APIKey             string `envconfig:"GROQ_API_KEY"`
	BaseURL            string `envconfig:"GROQ_API_URL" default:"https://api.groq.com"`
	TranscriptionModel string `envconfig:"GROQ_TRANSCRIPTION_MODEL" default:"whisper-large-v3"`
	SummarizationModel string `envconfig:"GROQ_SUMMARIZATION_MODEL" default:"llama-3.3-70b-versatile"`
}

// DeepgramConfig holds Deepgram configuration
type DeepgramConfig struct {
	APIKey  string `envconfig:"DEEPGRAM_API_KEY"`
	BaseURL string `envconfig:"DEEPGRAM_API_URL" default:"https://api.deepgram.com"`
	Model   string `envconfig:"DEEPGRAM_MODEL" default:"nova-2"`
}

// AnthropicConfig holds Anthropic configuration
type AnthropicConfig struct {
	APIKey  string `envconfig:"ANTHROPIC_API_KEY"`
	BaseURL string `envconfig:"ANTHROPIC_API_URL" default:"https://api.anthropic.com"`
	Model   string `envconfig:"ANTHROPIC_MODEL" default:"claude-3-opus-20240229"`
}

// AssemblyAIConfig holds AssemblyAI configuration
type AssemblyAIConfig struct {
	APIKey string `envconfig:"ASSEMBLYAI_API_KEY"`
	Model  string `envconfig:"ASSEMBLYAI_SPEECH_MODEL" default:"best"`
}

// GeminiConfig holds Gemini configuration
type GeminiConfig struct {
	APIKey  string `envconfig:"GEMINI_API_KEY"`
	BaseURL string `envconfig:"GEMINI_API_URL"`
	Model   string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
}

// MediaConfig holds size caps, allow-lists and tool paths for the media stages
type MediaConfig struct {
	// MaxFileSizeMB caps every input; raise it to MaxVideoSizeMB to accept videos up to that ceiling
	MaxFileSizeMB       int64         `envconfig:"MAX_FILE_SIZE_MB" default:"100" validate:"gt=0"`
	MaxAudioSizeMB      int64         `envconfig:"MAX_AUDIO_SIZE_MB" default:"25" validate:"gt=0"`
	MaxVideoSizeMB      int64         `envconfig:"MAX_VIDEO_SIZE_MB" default:"500" validate:"gt=0"`
	AllowedAudioFormats []string      `envconfig:"ALLOWED_AUDIO_FORMATS" default:"mp3,wav,m4a,aac,ogg,flac"`
	AllowedVideoFormats []string      `envconfig:"ALLOWED_VIDEO_FORMATS" default:"mp4,mkv,mov,avi,webm"`
	FFmpegPath          string        `envconfig:"FFMPEG_PATH" default:"ffmpeg"`
	FFprobePath         string        `envconfig:"FFPROBE_PATH" default:"ffprobe"`
	YtDlpPath           string        `envconfig:"YTDLP_PATH" default:"yt-dlp"`
	TempDir             string        `envconfig:"TEMP_DIR"`
	UploadDir           string        `envconfig:"UPLOAD_DIR" default:"uploads"`
	CompressTriggerMB   float64       `envconfig:"COMPRESS_TRIGGER_MB" default:"10" validate:"gt=0"`
	CompressTargetMB    float64       `envconfig:"COMPRESS_TARGET_MB" default:"8" validate:"gt=0"`
	PipelineTimeout     time.Duration `envconfig:"PIPELINE_TIMEOUT" default:"30m"`
	DownloadTimeout     time.Duration `envconfig:"DOWNLOAD_TIMEOUT" default:"5m"`
	MaxDownloadSizeMB   int64         `envconfig:"MAX_DOWNLOAD_SIZE_MB" default:"500" validate:"gt=0"`
}

// SummaryConfig controls how over-long transcripts are summarized
type SummaryConfig struct {
	Strategy        string `envconfig:"SUMMARY_STRATEGY" default:"crop" validate:"oneof=crop chunk"`
	MaxInputTokens  int    `envconfig:"SUMMARY_MAX_INPUT_TOKENS" validate:"gte=0"`
	DefaultLanguage string `envconfig:"DEFAULT_LANGUAGE" default:"english" validate:"oneof=english indonesian"`
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Enabled         bool          `envconfig:"STORAGE_ENABLED" default:"false"`
	Endpoint        string        `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string        `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string        `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string        `envconfig:"STORAGE_BUCKET" default:"lecture-notes"`
	UseSSL          bool          `envconfig:"STORAGE_USE_SSL" default:"false"`
	PublicURL       string        `envconfig:"STORAGE_PUBLIC_URL"`
	URLExpiry       time.Duration `envconfig:"STORAGE_URL_EXPIRY" default:"24h"`
}

// CacheConfig holds notes cache configuration
type CacheConfig struct {
	Driver        string        `envconfig:"CACHE_DRIVER" default:"none" validate:"oneof=none memory redis"`
	TTL           time.Duration `envconfig:"CACHE_TTL" default:"24h"`
	RedisHost     string        `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     string        `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
}

// AuthConfig holds API authentication configuration. An empty secret disables auth.
type AuthConfig struct {
	JWTSecret string `envconfig:"API_JWT_SECRET"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if cfg.Media.TempDir == "" {
		cfg.Media.TempDir = os.TempDir()
	}
	cfg.Media.AllowedAudioFormats = normalizeList(cfg.Media.AllowedAudioFormats)
	cfg.Media.AllowedVideoFormats = normalizeList(cfg.Media.AllowedVideoFormats)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	providers, err := ResolveProviders(cfg.AI)
	if err != nil {
		return nil, err
	}
	cfg.providers = providers

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Media.CompressTargetMB > c.Media.CompressTriggerMB {
		return fmt.Errorf("COMPRESS_TARGET_MB (%.1f) must not exceed COMPRESS_TRIGGER_MB (%.1f)",
			c.Media.CompressTargetMB, c.Media.CompressTriggerMB)
	}
	if len(c.Media.AllowedAudioFormats) == 0 && len(c.Media.AllowedVideoFormats) == 0 {
		return fmt.Errorf("at least one allowed media format is required")
	}
	return nil
}

// Providers returns the provider selection resolved at load time
func (c *Config) Providers() ProviderConfig {
	return c.providers
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Cache.RedisHost, c.Cache.RedisPort)
}

// SummaryTokenCeiling returns the input token ceiling for the configured chat provider
func (c *Config) SummaryTokenCeiling() int {
	if c.Summary.MaxInputTokens > 0 {
		return c.Summary.MaxInputTokens
	}
	return DefaultTokenCeiling(c.providers.ChatProvider)
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(v), ".")))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
