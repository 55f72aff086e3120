package main

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/johnquangdev/lecture-notes/internal/domain/entities"
	"github.com/johnquangdev/lecture-notes/internal/infrastructure/export"
)

func TestProcessOptions(t *testing.T) {
	got, err := cliOptions{focus: " limits, ,derivatives "}.processOptions(entities.LanguageIndonesian)
	if err != nil {
		t.Fatal(err)
	}
	want := entities.ProcessOptions{
		Language:    entities.LanguageIndonesian,
		DetailLevel: entities.DetailDetailed,
		FocusAreas:  []string{"limits", "derivatives"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("processOptions() = %+v, want %+v", got, want)
	}

	got, err = cliOptions{language: "english", detail: "concise"}.processOptions(entities.LanguageIndonesian)
	if err != nil {
		t.Fatal(err)
	}
	if got.Language != entities.LanguageEnglish || got.DetailLevel != entities.DetailConcise || got.FocusAreas != nil {
		t.Errorf("explicit flags: %+v", got)
	}
}

func TestProcessOptions_RejectsUnsupportedFlags(t *testing.T) {
	tests := []struct {
		name string
		opts cliOptions
		want error
	}{
		{"language", cliOptions{language: "french"}, entities.ErrUnsupportedLanguage},
		{"detail", cliOptions{detail: "ultra"}, entities.ErrUnsupportedDetail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.opts.processOptions(entities.LanguageEnglish); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDefaultOutputDir(t *testing.T) {
	root := t.TempDir()
	watch := filepath.Join(root, "inbox")

	got := defaultOutputDir(watch + string(filepath.Separator))
	if want := filepath.Join(root, "inbox_notes"); got != want {
		t.Errorf("defaultOutputDir() = %q, want %q", got, want)
	}
	if rel, err := filepath.Rel(watch, got); err == nil && !strings.HasPrefix(rel, "..") {
		t.Errorf("output dir %q is inside the watched dir", got)
	}
}

func TestLocalAsset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Lecture 3.MP4")
	if err := os.WriteFile(path, []byte("12345"), 0o644); err != nil {
		t.Fatal(err)
	}

	asset, err := localAsset(path)
	if err != nil {
		t.Fatal(err)
	}
	if asset.OriginalFilename != "Lecture 3.MP4" || asset.DeclaredMimeType != "video/mp4" || asset.DeclaredExtension != "mp4" || asset.SizeBytes != 5 {
		t.Errorf("asset = %+v", asset)
	}

	if _, err := localAsset(dir); err == nil {
		t.Error("directory must be rejected")
	}
	if _, err := localAsset(filepath.Join(dir, "missing.mp3")); err == nil {
		t.Error("missing file must be rejected")
	}
}

func TestNotesFilename(t *testing.T) {
	tests := []struct {
		name   string
		format export.Format
		want   string
	}{
		{"Lecture 3.MP4", export.FormatMarkdown, "lecture_3_notes.md"},
		{"calc.mp3", export.FormatDocx, "calc_notes.docx"},
		{"", export.FormatJSON, "lecture_notes.json"},
	}
	for _, tt := range tests {
		if got := notesFilename(tt.name, tt.format); got != tt.want {
			t.Errorf("notesFilename(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
	if got := baseName("week 1.wav"); got != "week_1" {
		t.Errorf("baseName() = %q", got)
	}
}
