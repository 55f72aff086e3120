package source

import (
	"context"
	"net/url"

	"github.com/johnquangdev/lecture-notes/errors"
	"github.com/johnquangdev/lecture-notes/internal/domain/entities"
	"github.com/johnquangdev/lecture-notes/pkg/config"
	"github.com/johnquangdev/lecture-notes/pkg/executor"
	"go.uber.org/zap"
)

// Downloader materializes a remote URL as a local media asset
type Downloader interface {
	Download(ctx context.Context, rawURL string) (*entities.MediaAsset, error)
}

// Fetcher routes YouTube links to yt-dlp and everything else to plain HTTP
type Fetcher struct {
	youtube Downloader
	http    Downloader
}

// NewFetcher wires both downloaders from the media configuration
func NewFetcher(cfg config.MediaConfig, exec executor.Executor, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		youtube: NewYouTubeDownloader(exec, cfg.YtDlpPath, cfg.UploadDir, cfg.DownloadTimeout, logger),
		http:    NewHTTPDownloader(cfg.UploadDir, cfg.MaxDownloadSizeMB, cfg.DownloadTimeout, logger),
	}
}

// IsValidMediaURL reports whether rawURL is an absolute http(s) URL
func IsValidMediaURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Fetch downloads rawURL. The returned asset is owned by the caller.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*entities.MediaAsset, error) {
	if !IsValidMediaURL(rawURL) {
		return nil, errors.ErrInvalidArgument("Invalid URL. Only http and https links are supported")
	}

	d := f.http
	if IsValidYouTubeURL(rawURL) {
		d = f.youtube
	}

	asset, err := d.Download(ctx, rawURL)
	if err != nil {
		return nil, errors.ErrMediaFetchFailed(rawURL, err)
	}
	return asset, nil
}
