package notes

import "github.com/johnquangdev/lecture-notes/internal/domain/entities"

// NotesResponse carries generated notes and, when archived, their download link
type NotesResponse struct {
	Notes      *entities.LectureNotes `json:"notes"`
	Format     string                 `json:"format"`
	ArchiveURL string                 `json:"archive_url,omitempty"`
}

// ValidateFileResponse reports whether a file would be accepted
type ValidateFileResponse struct {
	Valid    bool   `json:"valid"`
	FileType string `json:"file_type,omitempty"`
	Error    string `json:"error,omitempty"`
}
