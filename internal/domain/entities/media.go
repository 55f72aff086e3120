package entities

import (
	"path/filepath"
	"strings"
)

// MediaKind classifies an accepted media file
type MediaKind string

const (
	MediaKindAudio MediaKind = "audio"
	MediaKindVideo MediaKind = "video"
)

// MediaAsset is a media file on local disk together with what its producer declared about it
type MediaAsset struct {
	Path              string    `json:"path"`
	OriginalFilename  string    `json:"original_filename"`
	DeclaredMimeType  string    `json:"mime_type"`
	DeclaredExtension string    `json:"extension"`
	SizeBytes         int64     `json:"size_bytes"`
	Kind              MediaKind `json:"kind,omitempty"`
	Title             string    `json:"title,omitempty"`
}

// NewMediaAsset creates an asset, deriving the declared extension from the original filename
func NewMediaAsset(path, originalFilename, mimeType string, sizeBytes int64) *MediaAsset {
	return &MediaAsset{
		Path:              path,
		OriginalFilename:  originalFilename,
		DeclaredMimeType:  mimeType,
		DeclaredExtension: strings.ToLower(strings.TrimPrefix(filepath.Ext(originalFilename), ".")),
		SizeBytes:         sizeBytes,
	}
}

// DisplayName returns the title when known, otherwise the original filename
func (m *MediaAsset) DisplayName() string {
	if m.Title != "" {
		return m.Title
	}
	return m.OriginalFilename
}
