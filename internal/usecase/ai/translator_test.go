package ai

import (
	"context"
	stdErrors "errors"
	"strings"
	"testing"

	"github.com/johnquangdev/lecture-notes/internal/domain/entities"
	"go.uber.org/zap/zaptest"
)

func TestTranslator_EnglishIsIdentity(t *testing.T) {
	chat := &fakeChat{replies: []string{"should not be used"}}
	tr := NewTranslator(chat, testProviders(), zaptest.NewLogger(t))

	for _, target := range []string{"", entities.LanguageEnglish} {
		if got := tr.Translate(context.Background(), "Hello class.", target); got != "Hello class." {
			t.Errorf("Translate(%q) = %q", target, got)
		}
	}
	if len(chat.reqs) != 0 {
		t.Errorf("backend called %d times", len(chat.reqs))
	}
}

func TestTranslator_Indonesian(t *testing.T) {
	chat := &fakeChat{replies: []string{"  Halo kelas.  "}}
	tr := NewTranslator(chat, testProviders(), zaptest.NewLogger(t))

	got := tr.Translate(context.Background(), "Hello class.", entities.LanguageIndonesian)
	if got != "Halo kelas." {
		t.Errorf("Translate() = %q", got)
	}
	if len(chat.reqs) != 1 {
		t.Fatalf("requests = %d", len(chat.reqs))
	}
	req := chat.reqs[0]
	if req.Temperature != 0.3 || req.Model != "gpt-4o-mini" || req.UserContent != "Hello class." || req.JSONMode {
		t.Errorf("unexpected request %+v", req)
	}
	for _, want := range []string{"---", "[QS. Surah Name: Verse]", "[HR. Bukhari]"} {
		if !strings.Contains(req.SystemPrompt, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}

func TestTranslator_DegradesToOriginal(t *testing.T) {
	tests := []struct {
		name string
		chat *fakeChat
	}{
		{"backend error", &fakeChat{errs: []error{stdErrors.New("boom")}}},
		{"empty reply", &fakeChat{replies: []string{"   "}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTranslator(tt.chat, testProviders(), zaptest.NewLogger(t))
			if got := tr.Translate(context.Background(), "Original text.", entities.LanguageIndonesian); got != "Original text." {
				t.Errorf("Translate() = %q", got)
			}
		})
	}
}

func TestTranslator_NoChatCredentials(t *testing.T) {
	chat := &fakeChat{replies: []string{"x"}}
	pc := testProviders()
	pc.ChatAPIKey = ""
	tr := NewTranslator(chat, pc, nil)

	if got := tr.Translate(context.Background(), "Original.", entities.LanguageIndonesian); got != "Original." {
		t.Errorf("Translate() = %q", got)
	}
	if len(chat.reqs) != 0 {
		t.Error("backend must not be called without credentials")
	}
}
