package bootstrap

import (
	"context"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/johnquangdev/lecture-notes/pkg/config"
)

func loadConfig(t *testing.T, env map[string]string) *config.Config {
	t.Helper()
	t.Setenv("TEMP_DIR", t.TempDir())
	t.Setenv("UPLOAD_DIR", t.TempDir())
	for k, v := range env {
		t.Setenv(k, v)
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	return cfg
}

func TestNewTranscriptionBackend(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"openai", "openai"},
		{"groq", "groq"},
		{"deepgram", "deepgram"},
		{"assemblyai", "assemblyai"},
		// anthropic has no speech-to-text, audio goes to whisper
		{"anthropic", "openai"},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg := loadConfig(t, map[string]string{"AI_PROVIDER": tt.provider})
			backend, err := NewTranscriptionBackend(cfg)
			if err != nil {
				t.Fatal(err)
			}
			if backend.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", backend.Name(), tt.want)
			}
		})
	}
}

func TestNewChatBackend(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"openai default", map[string]string{"AI_PROVIDER": "openai"}, "openai"},
		{"groq default", map[string]string{"AI_PROVIDER": "groq"}, "groq"},
		{"anthropic", map[string]string{"AI_PROVIDER": "anthropic"}, "anthropic"},
		{"override", map[string]string{"AI_PROVIDER": "deepgram", "SUMMARIZATION_PROVIDER": "groq"}, "groq"},
		{"gemini without key", map[string]string{"AI_PROVIDER": "openai", "SUMMARIZATION_PROVIDER": "gemini", "GEMINI_API_KEY": ""}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadConfig(t, tt.env)
			backend, err := NewChatBackend(context.Background(), cfg)
			if err != nil {
				t.Fatal(err)
			}
			if tt.want == "" {
				if backend != nil {
					t.Errorf("backend = %v, want nil", backend)
				}
				return
			}
			if backend.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", backend.Name(), tt.want)
			}
		})
	}
}

func TestNewNotesCache(t *testing.T) {
	ctx := context.Background()

	cfg := loadConfig(t, map[string]string{"CACHE_DRIVER": "none"})
	c, err := NewNotesCache(ctx, cfg)
	if err != nil || c != nil {
		t.Errorf("none: %v, %v", c, err)
	}

	cfg = loadConfig(t, map[string]string{"CACHE_DRIVER": "memory"})
	c, err = NewNotesCache(ctx, cfg)
	if err != nil || c == nil {
		t.Fatalf("memory: %v, %v", c, err)
	}
	defer c.Close()

	if notes, err := c.Get(ctx, "missing"); notes != nil || err != nil {
		t.Errorf("miss = %v, %v", notes, err)
	}
}

func TestBuild(t *testing.T) {
	cfg := loadConfig(t, map[string]string{
		"AI_PROVIDER":     "openai",
		"OPENAI_API_KEY":  "sk-test",
		"CACHE_DRIVER":    "memory",
		"STORAGE_ENABLED": "false",
	})

	app, err := Build(context.Background(), cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	defer app.Close()

	if app.Orchestrator == nil || app.Validator == nil || app.Fetcher == nil {
		t.Fatalf("incomplete app: %+v", app)
	}
	if app.Cache == nil {
		t.Error("memory cache should be enabled")
	}
	if app.Archive != nil {
		t.Error("archive must be nil when storage is disabled")
	}
	if res := app.Validator.Validate("audio/mpeg", 1024, "a.mp3"); !res.Valid {
		t.Errorf("default config rejects mp3: %s", res.Error)
	}
}
