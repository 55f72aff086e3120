package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/johnquangdev/lecture-notes/pkg/ffmpeg"
)

// Transcoder encodes audio and probes media files
type Transcoder interface {
	Encode(ctx context.Context, p ffmpeg.EncodeParams) error
	Probe(ctx context.Context, path string) (*ffmpeg.Metadata, error)
}

const (
	outputFormat     = "mp3"
	outputCodec      = "libmp3lame"
	outputChannels   = 1
	outputSampleRate = 16000
)

// speechParams are the encode settings shared by extraction and compression
func speechParams(input, output string, bitrate int) ffmpeg.EncodeParams {
	return ffmpeg.EncodeParams{
		Input:       input,
		Output:      output,
		Format:      outputFormat,
		Codec:       outputCodec,
		BitrateKbps: bitrate,
		Channels:    outputChannels,
		SampleRate:  outputSampleRate,
	}
}

// tempOutputPath returns a collision-resistant path in dir ending with suffix
func tempOutputPath(dir, suffix string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	name := fmt.Sprintf("%d_%s_%s", time.Now().UnixMilli(), uuid.NewString(), suffix)
	return filepath.Join(dir, name), nil
}
