package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/johnquangdev/lecture-notes/internal/domain/entities"
	"github.com/johnquangdev/lecture-notes/internal/usecase/media"
	"github.com/johnquangdev/lecture-notes/pkg/executor"
	"go.uber.org/zap"
)

const defaultYouTubeTitle = "YouTube Video"

// downloadedExtensions are the containers yt-dlp may leave behind, in preference order
var downloadedExtensions = []string{".mp3", ".webm", ".m4a", ".opus", ".ogg", ".aac"}

// IsValidYouTubeURL reports whether rawURL points at youtube.com or youtu.be
func IsValidYouTubeURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Hostname()) {
	case "www.youtube.com", "youtube.com", "youtu.be", "m.youtube.com":
		return true
	}
	return false
}

// YouTubeVideoID returns the video ID of a YouTube URL, or "" when there is none
func YouTubeVideoID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	if host == "youtu.be" {
		return strings.TrimPrefix(u.Path, "/")
	}
	if strings.Contains(host, "youtube.com") {
		return u.Query().Get("v")
	}
	return ""
}

// YouTubeDownloader extracts the audio of a YouTube video with yt-dlp
type YouTubeDownloader struct {
	exec    executor.Executor
	binary  string
	dir     string
	timeout time.Duration
	logger  *zap.Logger
}

// NewYouTubeDownloader creates a downloader writing into dir
func NewYouTubeDownloader(exec executor.Executor, binary, dir string, timeout time.Duration, logger *zap.Logger) *YouTubeDownloader {
	if binary == "" {
		binary = "yt-dlp"
	}
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &YouTubeDownloader{
		exec:    exec,
		binary:  binary,
		dir:     dir,
		timeout: timeout,
		logger:  logger,
	}
}

// DownloadArgs are the yt-dlp arguments for an audio-only mp3 download
func DownloadArgs(outputTemplate, rawURL string) []string {
	return []string{
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", "0",
		"--max-filesize", "500M",
		"--no-playlist",
		"--newline",
		"--no-simulate",
		"-o", outputTemplate + ".%(ext)s",
		"--print", "title",
		"--print", "duration",
		rawURL,
	}
}

// Download fetches the audio track of rawURL
func (d *YouTubeDownloader) Download(ctx context.Context, rawURL string) (*entities.MediaAsset, error) {
	if _, err := d.exec.Execute(ctx, d.binary, "--version"); err != nil {
		return nil, fmt.Errorf("yt-dlp is not installed. Please install it (e.g. pip install yt-dlp): %w", err)
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create download dir: %w", err)
	}
	base := fmt.Sprintf("youtube_%d_%s", time.Now().UnixMilli(), uuid.NewString())
	outputTemplate := filepath.Join(d.dir, base)

	if d.logger != nil {
		d.logger.Info("📺 Downloading YouTube audio", zap.String("url", rawURL))
	}

	runCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	stdout, err := d.exec.Execute(runCtx, d.binary, DownloadArgs(outputTemplate, rawURL)...)
	if err != nil {
		removeByPrefix(d.dir, base)
		return nil, classifyYtDlpError(err)
	}

	title, duration := parsePrintOutput(stdout)

	audioPath := findDownloaded(d.dir, base)
	if audioPath == "" {
		return nil, fmt.Errorf("audio file not found with pattern %s.*", base)
	}
	info, err := os.Stat(audioPath)
	if err != nil {
		return nil, err
	}

	ext := filepath.Ext(audioPath)
	filename := media.SanitizeFilename(title)
	if filename == "" || filename == "_" {
		filename = base
	}

	if d.logger != nil {
		d.logger.Info("✅ YouTube audio downloaded",
			zap.String("title", title),
			zap.String("size", media.FormatMB(info.Size())),
			zap.String("duration", media.FormatDuration(duration)),
		)
	}

	asset := entities.NewMediaAsset(audioPath, filename+ext, media.MimeTypeForExtension(ext), info.Size())
	asset.Title = title
	return asset, nil
}

// classifyYtDlpError turns a failed yt-dlp run into an actionable message
func classifyYtDlpError(err error) error {
	msg := err.Error()
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return errors.New("Download timeout (video too long). Try a shorter video.")
	case strings.Contains(msg, "max-filesize") || strings.Contains(msg, "larger than max-filesize"):
		return errors.New("Video is too large (>500MB). Try a shorter video.")
	case strings.Contains(msg, "Private video") || strings.Contains(msg, "unavailable"):
		return errors.New("Video is private or unavailable")
	}
	return fmt.Errorf("yt-dlp error: %w", err)
}

// parsePrintOutput reads the title and duration lines printed by --print
func parsePrintOutput(stdout string) (string, float64) {
	var lines []string
	for _, line := range strings.Split(stdout, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	title := defaultYouTubeTitle
	if len(lines) > 0 {
		title = lines[0]
	}
	var duration float64
	if len(lines) > 1 {
		duration, _ = strconv.ParseFloat(lines[1], 64)
	}
	return title, duration
}

func findDownloaded(dir, base string) string {
	for _, ext := range downloadedExtensions {
		p := filepath.Join(dir, base+ext)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	matches, _ := filepath.Glob(filepath.Join(dir, base+".*"))
	if len(matches) > 0 {
		return matches[0]
	}
	return ""
}

func removeByPrefix(dir, base string) {
	matches, _ := filepath.Glob(filepath.Join(dir, base+"*"))
	for _, m := range matches {
		os.Remove(m)
	}
}
