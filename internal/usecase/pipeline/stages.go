package pipeline

import (
	"context"

	"github.com/johnquangdev/lecture-notes/internal/domain/entities"
	"github.com/johnquangdev/lecture-notes/internal/usecase/media"
	"github.com/johnquangdev/lecture-notes/internal/usecase/transcription"
)

// MediaValidator decides whether an asset is accepted and records its kind
type MediaValidator interface {
	Check(asset *entities.MediaAsset) error
}

// AudioExtractor pulls the audio track out of a video
type AudioExtractor interface {
	Extract(ctx context.Context, videoPath string) (*media.ExtractionResult, error)
}

// AudioCompressor shrinks audio to a target size
type AudioCompressor interface {
	CompressIfNeeded(ctx context.Context, audioPath string, targetSizeMB float64) (string, error)
}

// Transcriber turns audio into text
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, opts transcription.Options) (*entities.TranscriptionResult, error)
	Model() string
}

// Translator renders a transcript in the notes language
type Translator interface {
	Translate(ctx context.Context, transcript, target string) string
}

// Formatter makes a transcript readable
type Formatter interface {
	Format(ctx context.Context, transcript, language string) string
}

// Summarizer produces lecture notes from a transcript
type Summarizer interface {
	Summarize(ctx context.Context, transcript, filename string, opts entities.SummarizationOptions) (*entities.LectureNotes, error)
	Model() string
}

// NotesCache stores finished notes. Get returns nil, nil on a miss.
type NotesCache interface {
	Get(ctx context.Context, key string) (*entities.LectureNotes, error)
	Set(ctx context.Context, key string, notes *entities.LectureNotes) error
}

// Stages are the components a run chains together
type Stages struct {
	Validator   MediaValidator
	Extractor   AudioExtractor
	Compressor  AudioCompressor
	Transcriber Transcriber
	Translator  Translator
	Formatter   Formatter
	Summarizer  Summarizer
}
