package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/johnquangdev/lecture-notes/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// Format is an output document format for lecture notes
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatDocx     Format = "docx"
)

// ParseFormat accepts json, yaml/yml, markdown/md and docx
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "docx":
		return FormatDocx, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// Extension returns the file extension without the dot
func (f Format) Extension() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatMarkdown:
		return "md"
	case FormatDocx:
		return "docx"
	default:
		return "json"
	}
}

// ContentType returns the MIME type of documents in this format
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatDocx:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/json"
	}
}

// Render encodes notes in the given format. tempDir is only used by docx.
func Render(notes *entities.LectureNotes, format Format, tempDir string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(notes, "", "  ")
	case FormatYAML:
		return yaml.Marshal(notes)
	case FormatMarkdown:
		return []byte(Markdown(notes)), nil
	case FormatDocx:
		path := filepath.Join(tempDir, fmt.Sprintf("notes_%s.docx", uuid.NewString()))
		defer os.Remove(path)
		if err := WriteDocx(notes, path); err != nil {
			return nil, err
		}
		return os.ReadFile(path)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteFile renders notes into path
func WriteFile(notes *entities.LectureNotes, format Format, path string) error {
	if format == FormatDocx {
		return WriteDocx(notes, path)
	}
	data, err := Render(notes, format, "")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
