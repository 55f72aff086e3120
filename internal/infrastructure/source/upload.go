package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/johnquangdev/lecture-notes/internal/domain/entities"
)

// SaveUpload writes r into dir under a collision-resistant name and returns
// the asset with the client's declared filename and MIME type
func SaveUpload(dir, filename, mimeType string, r io.Reader) (*entities.MediaAsset, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	path := filepath.Join(dir, fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), uuid.NewString(), ext))

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}
	size, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write upload: %w", err)
	}

	return entities.NewMediaAsset(path, filepath.Base(filename), mimeType, size), nil
}
