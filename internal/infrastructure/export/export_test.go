package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/johnquangdev/lecture-notes/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

func sampleNotes() *entities.LectureNotes {
	duration := 3725.0
	return &entities.LectureNotes{
		Title:        "Derivatives",
		Summary:      "The lecture introduces the derivative as a limit.",
		Paragraphs:   []string{"First we define the slope of a secant line."},
		BulletPoints: []string{"Derivative is a rate of change", "Power rule"},
		KeyConcepts: []entities.KeyConcept{
			{Concept: "Limit", Explanation: "Value a function approaches", Importance: entities.ImportanceHigh},
		},
		Definitions: []entities.Definition{
			{Term: "Derivative", Definition: "Instantaneous rate of change", Context: "Week 3"},
		},
		ExampleProblems: []entities.ExampleProblem{
			{Problem: "Differentiate x^2", Solution: "2x"},
		},
		ActionItems: []string{"Read chapter 3"},
		Metadata: entities.NotesMetadata{
			GeneratedAt:      time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC),
			OriginalFilename: "calc.mp4",
			DurationSeconds:  &duration,
			WordCount:        4200,
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"md", FormatMarkdown, false},
		{"markdown", FormatMarkdown, false},
		{"docx", FormatDocx, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleNotes())

	for _, want := range []string{
		"# Derivatives\n",
		"> Source: calc.mp4 | Duration: 1:02:05 | Words: 4200 | Generated: 2026-10-18 10:00 UTC",
		"## Summary\n\nThe lecture introduces the derivative as a limit.",
		"## Key Points\n\n- Derivative is a rate of change\n- Power rule\n",
		"- **Limit** (high): Value a function approaches",
		"- **Derivative**: Instantaneous rate of change (Week 3)",
		"### Example 1\n\n**Problem:** Differentiate x^2\n\n**Solution:** 2x",
		"## Action Items\n\n- [ ] Read chapter 3\n",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q\n%s", want, md)
		}
	}
	if strings.Contains(md, "**Explanation:**") {
		t.Error("empty explanation must be omitted")
	}
}

func TestMarkdown_EmptySectionsOmitted(t *testing.T) {
	md := Markdown(&entities.LectureNotes{Summary: "Short."})
	if !strings.HasPrefix(md, "# "+entities.DefaultNotesTitle) {
		t.Errorf("missing default title: %q", md)
	}
	for _, heading := range []string{"## Notes", "## Key Points", "## Definitions", "## Action Items"} {
		if strings.Contains(md, heading) {
			t.Errorf("unexpected section %q", heading)
		}
	}
}

func TestRender_JSONAndYAML(t *testing.T) {
	notes := sampleNotes()

	data, err := Render(notes, FormatJSON, "")
	if err != nil {
		t.Fatal(err)
	}
	var fromJSON map[string]any
	if err := json.Unmarshal(data, &fromJSON); err != nil {
		t.Fatal(err)
	}
	if fromJSON["title"] != "Derivatives" {
		t.Errorf("json title = %v", fromJSON["title"])
	}

	data, err = Render(notes, FormatYAML, "")
	if err != nil {
		t.Fatal(err)
	}
	var fromYAML entities.LectureNotes
	if err := yaml.Unmarshal(data, &fromYAML); err != nil {
		t.Fatal(err)
	}
	if fromYAML.Title != "Derivatives" || len(fromYAML.KeyConcepts) != 1 || fromYAML.Metadata.WordCount != 4200 {
		t.Errorf("yaml decoded to %+v", fromYAML)
	}
}

func TestRender_Docx(t *testing.T) {
	data, err := Render(sampleNotes(), FormatDocx, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	// docx is a zip container
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Errorf("docx output does not look like a zip archive")
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	if err := WriteFile(sampleNotes(), FormatMarkdown, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# Derivatives") {
		t.Errorf("unexpected file content %q", data[:20])
	}
}
