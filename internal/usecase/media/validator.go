package media

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/johnquangdev/lecture-notes/errors"
	"github.com/johnquangdev/lecture-notes/internal/domain/entities"
	"github.com/johnquangdev/lecture-notes/pkg/config"
)

const bytesPerMB = 1024 * 1024

var (
	audioMimeTypes = []string{
		"audio/mpeg",
		"audio/mp3",
		"audio/wav",
		"audio/wave",
		"audio/x-wav",
		"audio/x-m4a",
		"audio/m4a",
		"audio/aac",
		"audio/ogg",
		"audio/flac",
	}

	videoMimeTypes = []string{
		"video/mp4",
		"video/x-matroska",
		"video/quicktime",
		"video/x-msvideo",
		"video/webm",
	}
)

// ValidationResult is the outcome of a format/size check
type ValidationResult struct {
	Valid    bool               `json:"valid"`
	FileType entities.MediaKind `json:"file_type,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// Validator gates uploads by size, extension and MIME type.
// It has no side effects.
type Validator struct {
	maxFileBytes  int64
	maxAudioBytes int64
	maxVideoBytes int64
	audioFormats  []string
	videoFormats  []string
	audioMimes    map[string]bool
	videoMimes    map[string]bool
}

// NewValidator creates a validator from the media configuration
func NewValidator(cfg config.MediaConfig) *Validator {
	return &Validator{
		maxFileBytes:  cfg.MaxFileSizeMB * bytesPerMB,
		maxAudioBytes: cfg.MaxAudioSizeMB * bytesPerMB,
		maxVideoBytes: cfg.MaxVideoSizeMB * bytesPerMB,
		audioFormats:  cfg.AllowedAudioFormats,
		videoFormats:  cfg.AllowedVideoFormats,
		audioMimes:    toSet(audioMimeTypes),
		videoMimes:    toSet(videoMimeTypes),
	}
}

// Validate classifies a file as audio or video. Both the extension and the
// MIME type must belong to the same kind; a straddling pair is rejected.
// Kind ceilings are checked before the global cap so an oversized file is
// told which limit it broke.
func (v *Validator) Validate(mimeType string, sizeBytes int64, filename string) ValidationResult {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return v.checkGlobal(sizeBytes, invalid("File must have a valid extension"))
	}

	mt := normalizeMime(mimeType)
	isAudio := contains(v.audioFormats, ext) && v.audioMimes[mt]
	isVideo := contains(v.videoFormats, ext) && v.videoMimes[mt]

	switch {
	case isAudio:
		if sizeBytes > v.maxAudioBytes {
			return invalid(fmt.Sprintf(
				"Audio file is %s, which exceeds the %dMB transcription limit. Please compress the audio (e.g. to mono 64kbps MP3) before uploading.",
				FormatMB(sizeBytes), v.maxAudioBytes/bytesPerMB))
		}
		return v.checkGlobal(sizeBytes, ValidationResult{Valid: true, FileType: entities.MediaKindAudio})
	case isVideo:
		if sizeBytes > v.maxVideoBytes {
			return invalid(fmt.Sprintf("Video file is %s, which exceeds the %dMB limit.",
				FormatMB(sizeBytes), v.maxVideoBytes/bytesPerMB))
		}
		return v.checkGlobal(sizeBytes, ValidationResult{Valid: true, FileType: entities.MediaKindVideo})
	default:
		allowed := append(append([]string{}, v.audioFormats...), v.videoFormats...)
		return v.checkGlobal(sizeBytes, invalid(fmt.Sprintf("Invalid file format. Allowed formats: %s", strings.Join(allowed, ", "))))
	}
}

// checkGlobal applies MAX_FILE_SIZE_MB, which wins over any other outcome
func (v *Validator) checkGlobal(sizeBytes int64, res ValidationResult) ValidationResult {
	if sizeBytes > v.maxFileBytes {
		return invalid(fmt.Sprintf("File size exceeds maximum allowed size of %dMB", v.maxFileBytes/bytesPerMB))
	}
	return res
}

// Check validates asset and records the decided kind on it.
// A failed check is returned as a validation AppError.
func (v *Validator) Check(asset *entities.MediaAsset) error {
	name := asset.OriginalFilename
	if name == "" {
		name = filepath.Base(asset.Path)
	}

	res := v.Validate(asset.DeclaredMimeType, asset.SizeBytes, name)
	if !res.Valid {
		return errors.ErrValidation(res.Error).WithDetail("filename", name)
	}
	asset.Kind = res.FileType
	return nil
}

// MimeTypeForExtension returns the canonical MIME type for an allowed extension
func MimeTypeForExtension(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "mp3":
		return "audio/mpeg"
	case "wav":
		return "audio/wav"
	case "m4a":
		return "audio/x-m4a"
	case "aac":
		return "audio/aac"
	case "ogg":
		return "audio/ogg"
	case "flac":
		return "audio/flac"
	case "mp4":
		return "video/mp4"
	case "mkv":
		return "video/x-matroska"
	case "mov":
		return "video/quicktime"
	case "avi":
		return "video/x-msvideo"
	case "webm":
		return "video/webm"
	}
	return ""
}

func invalid(msg string) ValidationResult {
	return ValidationResult{Valid: false, Error: msg}
}

func normalizeMime(mimeType string) string {
	if mt, _, err := mime.ParseMediaType(mimeType); err == nil {
		return mt
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
