package entities

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNormalizeImportance(t *testing.T) {
	tests := map[string]string{
		"high":     ImportanceHigh,
		"HIGH":     ImportanceHigh,
		"low":      ImportanceLow,
		"medium":   ImportanceMedium,
		"":         ImportanceMedium,
		"critical": ImportanceMedium,
	}
	for in, want := range tests {
		if got := NormalizeImportance(in); got != want {
			t.Errorf("NormalizeImportance(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLectureNotes_EnsureSlicesSerializesEmptyLists(t *testing.T) {
	n := &LectureNotes{Title: "T"}
	n.EnsureSlices()

	b, err := json.Marshal(n)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"definitions":[]`, `"keyConcepts":[]`, `"actionItems":[]`} {
		if !strings.Contains(string(b), key) {
			t.Errorf("json %s missing %s", b, key)
		}
	}
}

func TestNewMediaAsset(t *testing.T) {
	a := NewMediaAsset("/tmp/x", "Lecture 01.MP4", "video/mp4", 42)
	if a.DeclaredExtension != "mp4" {
		t.Errorf("DeclaredExtension = %q", a.DeclaredExtension)
	}
	if a.DisplayName() != "Lecture 01.MP4" {
		t.Errorf("DisplayName() = %q", a.DisplayName())
	}
	a.Title = "Calculus"
	if a.DisplayName() != "Calculus" {
		t.Errorf("DisplayName() = %q", a.DisplayName())
	}
}

func TestProcessOptions_WithDefaults(t *testing.T) {
	o := ProcessOptions{}.WithDefaults()
	if o.Language != LanguageEnglish || o.DetailLevel != DetailDetailed {
		t.Errorf("unexpected defaults %+v", o)
	}
}
