package notes

import (
	"strings"

	"github.com/johnquangdev/lecture-notes/internal/domain/entities"
)

// CreateFromURLRequest asks for notes from a YouTube or direct media URL
type CreateFromURLRequest struct {
	URL         string   `json:"url" validate:"required,media_url"`
	Language    string   `json:"language,omitempty" validate:"omitempty,oneof=english indonesian"`
	DetailLevel string   `json:"detail_level,omitempty" validate:"omitempty,oneof=concise detailed comprehensive"`
	FocusAreas  []string `json:"focus_areas,omitempty"`
	Format      string   `json:"format,omitempty" validate:"omitempty,oneof=json yaml markdown docx"`
	Archive     bool     `json:"archive,omitempty"`
}

// UploadForm holds the non-file fields of the multipart upload
type UploadForm struct {
	Language    string   `form:"language" validate:"omitempty,oneof=english indonesian"`
	DetailLevel string   `form:"detail_level" validate:"omitempty,oneof=concise detailed comprehensive"`
	FocusAreas  []string `form:"focus_areas"`
	Format      string   `form:"format" validate:"omitempty,oneof=json yaml markdown docx"`
	Archive     bool     `form:"archive"`
}

// ValidateFileRequest checks a file before upload
type ValidateFileRequest struct {
	MimeType string `json:"mime_type" validate:"required"`
	Size     int64  `json:"size" validate:"gte=0"`
	Filename string `json:"filename,omitempty"`
}

// ProcessOptions converts the request into pipeline options
func (r CreateFromURLRequest) ProcessOptions(defaultLanguage string) entities.ProcessOptions {
	return processOptions(r.Language, r.DetailLevel, r.FocusAreas, defaultLanguage)
}

// ProcessOptions converts the form into pipeline options
func (f UploadForm) ProcessOptions(defaultLanguage string) entities.ProcessOptions {
	return processOptions(f.Language, f.DetailLevel, f.FocusAreas, defaultLanguage)
}

func processOptions(language, detail string, focus []string, defaultLanguage string) entities.ProcessOptions {
	if language == "" {
		language = defaultLanguage
	}
	return entities.ProcessOptions{
		Language:     language,
		DetailLevel:  detail,
		FocusAreas:   splitFocusAreas(focus),
		DeleteSource: true,
	}.WithDefaults()
}

// splitFocusAreas accepts repeated fields as well as one comma separated value
func splitFocusAreas(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
