package ai

import (
	"testing"

	"github.com/johnquangdev/lecture-notes/internal/domain/entities"
)

func TestParser_ParseNotesResponse(t *testing.T) {
	p := NewParser()

	t.Run("fenced json with missing fields", func(t *testing.T) {
		content := "```json\n" + `{
			"title": "Limits",
			"summary": "Intro to limits.",
			"keyConcepts": [
				{"concept": "Limit", "explanation": "Value approached", "importance": "HIGH"},
				{"concept": "Epsilon", "explanation": "Tolerance", "importance": "critical"}
			]
		}` + "\n```"

		notes, err := p.ParseNotesResponse(content)
		if err != nil {
			t.Fatalf("ParseNotesResponse() error = %v", err)
		}
		if notes.Title != "Limits" || notes.Summary != "Intro to limits." {
			t.Errorf("unexpected notes %+v", notes)
		}
		if notes.Definitions == nil || len(notes.Definitions) != 0 {
			t.Errorf("missing definitions must be an empty slice, got %#v", notes.Definitions)
		}
		if notes.ExampleProblems == nil || notes.ActionItems == nil || notes.Paragraphs == nil || notes.BulletPoints == nil {
			t.Error("every list must be non-nil")
		}
		if notes.KeyConcepts[0].Importance != entities.ImportanceHigh || notes.KeyConcepts[1].Importance != entities.ImportanceMedium {
			t.Errorf("importance not normalized: %+v", notes.KeyConcepts)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		notes, err := p.ParseNotesResponse(`{}`)
		if err != nil {
			t.Fatal(err)
		}
		if notes.Title != entities.DefaultNotesTitle || notes.Summary != "" {
			t.Errorf("unexpected defaults %+v", notes)
		}
	})

	t.Run("prose around object", func(t *testing.T) {
		notes, err := p.ParseNotesResponse("Here are the notes:\n{\"title\": \"Derivatives\"}\nHope this helps.")
		if err != nil {
			t.Fatal(err)
		}
		if notes.Title != "Derivatives" {
			t.Errorf("title = %q", notes.Title)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, content := range []string{"", "not json", `{"title": `, "null", "```json\nnull\n```", `["a"]`} {
			if _, err := p.ParseNotesResponse(content); err == nil {
				t.Errorf("expected error for %q", content)
			}
		}
	})
}
