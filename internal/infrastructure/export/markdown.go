package export

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/lecture-notes/internal/domain/entities"
	"github.com/johnquangdev/lecture-notes/internal/usecase/media"
)

// Markdown renders notes as a Markdown document. Empty sections are left out.
func Markdown(notes *entities.LectureNotes) string {
	var b strings.Builder

	title := notes.Title
	if title == "" {
		title = entities.DefaultNotesTitle
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	writeMeta(&b, notes.Metadata)

	if notes.Summary != "" {
		b.WriteString("## Summary\n\n")
		b.WriteString(strings.TrimSpace(notes.Summary))
		b.WriteString("\n\n")
	}

	if len(notes.Paragraphs) > 0 {
		b.WriteString("## Notes\n\n")
		for _, p := range notes.Paragraphs {
			b.WriteString(strings.TrimSpace(p))
			b.WriteString("\n\n")
		}
	}

	writeList(&b, "Key Points", "- ", notes.BulletPoints)

	if len(notes.KeyConcepts) > 0 {
		b.WriteString("## Key Concepts\n\n")
		for _, c := range notes.KeyConcepts {
			fmt.Fprintf(&b, "- **%s** (%s): %s\n", c.Concept, c.Importance, c.Explanation)
		}
		b.WriteString("\n")
	}

	if len(notes.Definitions) > 0 {
		b.WriteString("## Definitions\n\n")
		for _, d := range notes.Definitions {
			fmt.Fprintf(&b, "- **%s**: %s", d.Term, d.Definition)
			if d.Context != "" {
				fmt.Fprintf(&b, " (%s)", d.Context)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(notes.ExampleProblems) > 0 {
		b.WriteString("## Example Problems\n\n")
		for i, ex := range notes.ExampleProblems {
			fmt.Fprintf(&b, "### Example %d\n\n**Problem:** %s\n\n", i+1, ex.Problem)
			if ex.Solution != "" {
				fmt.Fprintf(&b, "**Solution:** %s\n\n", ex.Solution)
			}
			if ex.Explanation != "" {
				fmt.Fprintf(&b, "**Explanation:** %s\n\n", ex.Explanation)
			}
		}
	}

	writeList(&b, "Action Items", "- [ ] ", notes.ActionItems)

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeMeta(b *strings.Builder, m entities.NotesMetadata) {
	var parts []string
	if m.OriginalFilename != "" {
		parts = append(parts, "Source: "+m.OriginalFilename)
	}
	if m.DurationSeconds != nil {
		parts = append(parts, "Duration: "+media.FormatDuration(*m.DurationSeconds))
	}
	if m.WordCount > 0 {
		parts = append(parts, fmt.Sprintf("Words: %d", m.WordCount))
	}
	if !m.GeneratedAt.IsZero() {
		parts = append(parts, "Generated: "+m.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"))
	}
	if len(parts) > 0 {
		b.WriteString("> " + strings.Join(parts, " | ") + "\n\n")
	}
	if m.Note != "" {
		b.WriteString("> " + m.Note + "\n\n")
	}
}

func writeList(b *strings.Builder, heading, marker string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", heading)
	for _, item := range items {
		b.WriteString(marker + strings.TrimSpace(item) + "\n")
	}
	b.WriteString("\n")
}
