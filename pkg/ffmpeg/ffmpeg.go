package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/johnquangdev/lecture-notes/pkg/executor"
)

// EncodeParams describes one audio re-encode
type EncodeParams struct {
	Input       string
	Output      string
	Format      string // container, e.g. "mp3"
	Codec       string // e.g. "libmp3lame"
	BitrateKbps int
	Channels    int
	SampleRate  int
}

// Metadata is the subset of ffprobe output the pipeline needs
type Metadata struct {
	DurationSeconds float64
	BitRate         int64
	SampleRate      int
	Channels        int
}

// Transcoder wraps the ffmpeg and ffprobe binaries
type Transcoder struct {
	exec        executor.Executor
	ffmpegPath  string
	ffprobePath string
}

// New creates a Transcoder. Empty paths default to the binaries on PATH.
func New(exec executor.Executor, ffmpegPath, ffprobePath string) *Transcoder {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Transcoder{exec: exec, ffmpegPath: ffmpegPath, ffprobePath: ffprobePath}
}

// Encode writes p.Output from p.Input, dropping any video stream
func (t *Transcoder) Encode(ctx context.Context, p EncodeParams) error {
	if _, err := t.exec.Execute(ctx, t.ffmpegPath, EncodeArgs(p)...); err != nil {
		return fmt.Errorf("ffmpeg encode: %w", err)
	}
	return nil
}

// EncodeArgs builds the ffmpeg argument list for p
func EncodeArgs(p EncodeParams) []string {
	args := []string{
		"-hide_banner",
		"-nostdin",
		"-i", p.Input,
		"-vn",
	}
	if p.Codec != "" {
		args = append(args, "-c:a", p.Codec)
	}
	if p.BitrateKbps > 0 {
		args = append(args, "-b:a", fmt.Sprintf("%dk", p.BitrateKbps))
	}
	if p.Channels > 0 {
		args = append(args, "-ac", strconv.Itoa(p.Channels))
	}
	if p.SampleRate > 0 {
		args = append(args, "-ar", strconv.Itoa(p.SampleRate))
	}
	if p.Format != "" {
		args = append(args, "-f", p.Format)
	}
	return append(args, "-y", p.Output)
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
		BitRate  string `json:"bit_rate"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		SampleRate string `json:"sample_rate"`
		Channels   int    `json:"channels"`
	} `json:"streams"`
}

// Probe reads container and first-audio-stream metadata for path
func (t *Transcoder) Probe(ctx context.Context, path string) (*Metadata, error) {
	out, err := t.exec.Execute(ctx, t.ffprobePath,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to probe audio file: %w", err)
	}
	return ParseProbe([]byte(out))
}

// ParseProbe decodes `ffprobe -print_format json` output
func ParseProbe(data []byte) (*Metadata, error) {
	var po probeOutput
	if err := json.Unmarshal(data, &po); err != nil {
		return nil, fmt.Errorf("decode ffprobe output: %w", err)
	}

	md := &Metadata{}
	if po.Format.Duration != "" {
		d, err := strconv.ParseFloat(po.Format.Duration, 64)
		if err != nil {
			return nil, fmt.Errorf("parse duration %q: %w", po.Format.Duration, err)
		}
		md.DurationSeconds = d
	}
	if po.Format.BitRate != "" {
		if br, err := strconv.ParseInt(po.Format.BitRate, 10, 64); err == nil {
			md.BitRate = br
		}
	}
	for _, s := range po.Streams {
		if s.CodecType != "audio" {
			continue
		}
		if sr, err := strconv.Atoi(s.SampleRate); err == nil {
			md.SampleRate = sr
		}
		md.Channels = s.Channels
		break
	}
	return md, nil
}
