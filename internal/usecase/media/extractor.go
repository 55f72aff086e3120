package media

import (
	"context"
	"fmt"
	"os"

	"github.com/johnquangdev/lecture-notes/errors"
	"go.uber.org/zap"
)

const (
	extractBitrateDefault = 48
	extractBitrateSmall   = 64
	smallVideoBytes       = 100 * bytesPerMB
	extractWarnBytes      = 10 * bytesPerMB
)

// ExtractionResult describes an audio track pulled out of a video
type ExtractionResult struct {
	AudioPath       string
	DurationSeconds float64
	Format          string
}

// Extractor pulls a mono low-bitrate mp3 track out of video files
type Extractor struct {
	transcoder    Transcoder
	tempDir       string
	maxAudioBytes int64
	logger        *zap.Logger
}

// NewExtractor creates an extractor writing into tempDir
func NewExtractor(transcoder Transcoder, tempDir string, maxAudioMB int64, logger *zap.Logger) *Extractor {
	return &Extractor{
		transcoder:    transcoder,
		tempDir:       tempDir,
		maxAudioBytes: maxAudioMB * bytesPerMB,
		logger:        logger,
	}
}

// ExtractBitrate picks 64kbps for videos under 100MB and 48kbps otherwise
func ExtractBitrate(videoSizeBytes int64) int {
	if videoSizeBytes < smallVideoBytes {
		return extractBitrateSmall
	}
	return extractBitrateDefault
}

// Extract writes the audio track of videoPath to a new temp file. The source is
// never modified; on any failure the partial output is removed.
func (e *Extractor) Extract(ctx context.Context, videoPath string) (*ExtractionResult, error) {
	info, err := os.Stat(videoPath)
	if err != nil {
		return nil, errors.ErrExtractionFailed(fmt.Errorf("stat video: %w", err))
	}

	outputPath, err := tempOutputPath(e.tempDir, "extracted_audio.mp3")
	if err != nil {
		return nil, errors.ErrExtractionFailed(err)
	}

	bitrate := ExtractBitrate(info.Size())
	if e.logger != nil {
		e.logger.Info("🎬 Extracting audio from video",
			zap.String("video", videoPath),
			zap.String("video_size", FormatMB(info.Size())),
			zap.Int("bitrate_kbps", bitrate),
		)
	}

	if err := e.transcoder.Encode(ctx, speechParams(videoPath, outputPath, bitrate)); err != nil {
		removeQuietly(outputPath)
		return nil, errors.ErrExtractionFailed(fmt.Errorf("FFmpeg extraction failed: %w", err))
	}

	md, err := e.transcoder.Probe(ctx, outputPath)
	if err != nil {
		removeQuietly(outputPath)
		return nil, errors.ErrExtractionFailed(err)
	}

	out, err := os.Stat(outputPath)
	if err != nil {
		removeQuietly(outputPath)
		return nil, errors.ErrExtractionFailed(fmt.Errorf("stat extracted audio: %w", err))
	}

	if out.Size() > e.maxAudioBytes {
		removeQuietly(outputPath)
		return nil, errors.ErrExtractionFailed(fmt.Errorf(
			"Extracted audio is %.2fMB, exceeds %dMB limit. Please use a shorter video.",
			float64(out.Size())/bytesPerMB, e.maxAudioBytes/bytesPerMB))
	}

	if out.Size() > extractWarnBytes && e.logger != nil {
		e.logger.Warn("⚠️ Extracted audio is large, upload may be unreliable",
			zap.String("size", FormatMB(out.Size())),
		)
	}

	if e.logger != nil {
		e.logger.Info("✅ Audio extracted",
			zap.String("audio", outputPath),
			zap.String("size", FormatMB(out.Size())),
			zap.Float64("duration_seconds", md.DurationSeconds),
		)
	}

	return &ExtractionResult{
		AudioPath:       outputPath,
		DurationSeconds: md.DurationSeconds,
		Format:          outputFormat,
	}, nil
}

func removeQuietly(path string) {
	if path != "" {
		_ = os.Remove(path)
	}
}
