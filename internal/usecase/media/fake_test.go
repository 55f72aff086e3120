package media

import (
	"context"
	"os"

	"github.com/johnquangdev/lecture-notes/pkg/ffmpeg"
)

// fakeTranscoder writes a sparse output file of outputSize bytes
type fakeTranscoder struct {
	outputSize int64
	duration   float64
	encodeErr  error
	probeErr   error

	encoded []ffmpeg.EncodeParams
}

func (f *fakeTranscoder) Encode(_ context.Context, p ffmpeg.EncodeParams) error {
	f.encoded = append(f.encoded, p)
	out, err := os.Create(p.Output)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := out.Truncate(f.outputSize); err != nil {
		return err
	}
	return f.encodeErr
}

func (f *fakeTranscoder) Probe(_ context.Context, _ string) (*ffmpeg.Metadata, error) {
	if f.probeErr != nil {
		return nil, f.probeErr
	}
	return &ffmpeg.Metadata{DurationSeconds: f.duration, SampleRate: 16000, Channels: 1}, nil
}

func sparseFile(path string, size int64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Truncate(size)
}
