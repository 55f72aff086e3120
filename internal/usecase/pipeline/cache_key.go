package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/johnquangdev/lecture-notes/internal/domain/entities"
)

// CacheKey identifies notes by the media bytes, the run options and the models used
func CacheKey(path string, opts entities.ProcessOptions, transcriptionModel, summarizationModel string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash media: %w", err)
	}
	fmt.Fprintf(h, "\x00%s\x00%s\x00%s\x00%s\x00%s",
		opts.Language, opts.DetailLevel, strings.Join(opts.FocusAreas, ","), transcriptionModel, summarizationModel)

	return "notes:" + hex.EncodeToString(h.Sum(nil)), nil
}
