package media

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/johnquangdev/lecture-notes/errors"
	"go.uber.org/zap"
)

const (
	minCompressBitrate = 32
	maxCompressBitrate = 64
)

// Compressor re-encodes audio at a bitrate chosen to hit a target size
type Compressor struct {
	transcoder Transcoder
	tempDir    string
	logger     *zap.Logger
}

// NewCompressor creates a compressor writing into tempDir
func NewCompressor(transcoder Transcoder, tempDir string, logger *zap.Logger) *Compressor {
	return &Compressor{transcoder: transcoder, tempDir: tempDir, logger: logger}
}

// ComputeBitrate returns floor(targetMB*8192/duration) clamped to [32, 64] kbps.
// A non-positive duration yields the lowest bitrate.
func ComputeBitrate(targetSizeMB, durationSeconds float64) int {
	if durationSeconds <= 0 {
		return minCompressBitrate
	}
	bitrate := math.Floor(targetSizeMB * 8192 / durationSeconds)
	if bitrate < minCompressBitrate {
		return minCompressBitrate
	}
	if bitrate > maxCompressBitrate {
		return maxCompressBitrate
	}
	return int(bitrate)
}

// CompressIfNeeded returns audioPath unchanged when it is already within
// targetSizeMB, otherwise the path of a new re-encoded file
func (c *Compressor) CompressIfNeeded(ctx context.Context, audioPath string, targetSizeMB float64) (string, error) {
	info, err := os.Stat(audioPath)
	if err != nil {
		return "", errors.ErrCompressionFailed(fmt.Errorf("stat audio: %w", err))
	}

	if float64(info.Size()) <= targetSizeMB*bytesPerMB {
		if c.logger != nil {
			c.logger.Debug("Audio already within target size",
				zap.String("size", FormatMB(info.Size())),
				zap.Float64("target_mb", targetSizeMB),
			)
		}
		return audioPath, nil
	}

	md, err := c.transcoder.Probe(ctx, audioPath)
	if err != nil {
		return "", errors.ErrCompressionFailed(err)
	}
	bitrate := ComputeBitrate(targetSizeMB, md.DurationSeconds)

	outputPath, err := tempOutputPath(c.tempDir, "compressed.mp3")
	if err != nil {
		return "", errors.ErrCompressionFailed(err)
	}

	if c.logger != nil {
		c.logger.Info("🗜️ Compressing audio",
			zap.String("size", FormatMB(info.Size())),
			zap.Float64("target_mb", targetSizeMB),
			zap.Int("bitrate_kbps", bitrate),
			zap.Float64("duration_seconds", md.DurationSeconds),
		)
	}

	if err := c.transcoder.Encode(ctx, speechParams(audioPath, outputPath, bitrate)); err != nil {
		removeQuietly(outputPath)
		return "", errors.ErrCompressionFailed(fmt.Errorf("Audio compression failed: %w", err))
	}

	if c.logger != nil {
		if out, err := os.Stat(outputPath); err == nil {
			c.logger.Info("✅ Audio compressed", zap.String("size", FormatMB(out.Size())))
		}
	}

	return outputPath, nil
}
