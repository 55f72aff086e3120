package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/johnquangdev/lecture-notes/internal/domain/entities"
	"github.com/johnquangdev/lecture-notes/internal/usecase/media"
	"go.uber.org/zap"
)

const (
	userAgent    = "Mozilla/5.0 (compatible; Talk2Notes/1.0)"
	maxRedirects = 10
	bytesPerMB   = 1024 * 1024
)

// HTTPDownloader fetches a media file from a plain http(s) URL
type HTTPDownloader struct {
	client   *http.Client
	dir      string
	maxBytes int64
	logger   *zap.Logger
}

// NewHTTPDownloader creates a downloader writing into dir
func NewHTTPDownloader(dir string, maxSizeMB int64, timeout time.Duration, logger *zap.Logger) *HTTPDownloader {
	return &HTTPDownloader{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		dir:      dir,
		maxBytes: maxSizeMB * bytesPerMB,
		logger:   logger,
	}
}

// Download saves the body of rawURL to a new file and describes it as an asset
func (d *HTTPDownloader) Download(ctx context.Context, rawURL string) (*entities.MediaAsset, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(path.Ext(u.Path))
	if ext == "" {
		ext = ".mp3"
	}
	now := time.Now().UnixMilli()

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create download dir: %w", err)
	}
	outputPath := filepath.Join(d.dir, fmt.Sprintf("media_%d_%s%s", now, uuid.NewString(), ext))

	if d.logger != nil {
		d.logger.Info("⬇️ Downloading media", zap.String("url", rawURL), zap.String("output", outputPath))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	size, err := d.save(outputPath, resp.Body)
	if err != nil {
		os.Remove(outputPath)
		return nil, err
	}

	base := path.Base(u.Path)
	title := strings.TrimSuffix(base, path.Ext(base))
	if title == "" || title == "/" || title == "." {
		title = fmt.Sprintf("Media_%d", now)
	}

	mimeType := media.MimeTypeForExtension(ext)
	if ct, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type")); err == nil &&
		(strings.HasPrefix(ct, "audio/") || strings.HasPrefix(ct, "video/")) {
		mimeType = ct
	}

	if d.logger != nil {
		d.logger.Info("✅ Media downloaded",
			zap.String("title", title),
			zap.String("size", media.FormatMB(size)),
			zap.String("mime_type", mimeType),
		)
	}

	asset := entities.NewMediaAsset(outputPath, title+ext, mimeType, size)
	asset.Title = title
	return asset, nil
}

func (d *HTTPDownloader) save(outputPath string, body io.Reader) (int64, error) {
	f, err := os.Create(outputPath)
	if err != nil {
		return 0, err
	}
	return d.copyTo(f, body)
}

// copyTo streams body into w under the size cap and closes w; a failed
// close fails the download
func (d *HTTPDownloader) copyTo(w io.WriteCloser, body io.Reader) (int64, error) {
	reader := body
	if d.maxBytes > 0 {
		reader = io.LimitReader(body, d.maxBytes+1)
	}
	size, err := io.Copy(w, reader)
	if err != nil {
		w.Close()
		return 0, fmt.Errorf("write download: %w", err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("close download: %w", err)
	}
	if d.maxBytes > 0 && size > d.maxBytes {
		return 0, fmt.Errorf("file exceeds the %dMB download limit", d.maxBytes/bytesPerMB)
	}
	if size == 0 {
		return 0, errors.New("Downloaded file is empty")
	}
	return size, nil
}
