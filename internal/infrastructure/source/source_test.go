package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/johnquangdev/lecture-notes/errors"
	"github.com/johnquangdev/lecture-notes/internal/domain/entities"
	"go.uber.org/zap/zaptest"
)

func TestIsValidYouTubeURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.youtube.com/watch?v=abc123", true},
		{"https://youtube.com/watch?v=abc123", true},
		{"https://m.youtube.com/watch?v=abc123", true},
		{"https://youtu.be/abc123", true},
		{"https://vimeo.com/123", false},
		{"https://notyoutube.com/watch?v=x", false},
		{"::not a url", false},
	}
	for _, tt := range tests {
		if got := IsValidYouTubeURL(tt.url); got != tt.want {
			t.Errorf("IsValidYouTubeURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestYouTubeVideoID(t *testing.T) {
	tests := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10": "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ":                      "dQw4w9WgXcQ",
		"https://www.youtube.com/":                          "",
		"https://example.com/watch?v=abc":                   "",
	}
	for in, want := range tests {
		if got := YouTubeVideoID(in); got != want {
			t.Errorf("YouTubeVideoID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHTTPDownloader_Download(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/old/lecture.mp3":
			http.Redirect(w, r, "/files/lecture.mp3", http.StatusFound)
		case "/files/lecture.mp3":
			gotUA = r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "audio/mpeg")
			w.Write([]byte(strings.Repeat("a", 2048)))
		case "/empty.mp3":
			w.WriteHeader(http.StatusOK)
		case "/big.mp4":
			w.Header().Set("Content-Type", "video/mp4")
			w.Write(make([]byte, 2*bytesPerMB))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	d := NewHTTPDownloader(dir, 1, 5*time.Second, zaptest.NewLogger(t))

	asset, err := d.Download(context.Background(), srv.URL+"/old/lecture.mp3")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if gotUA != userAgent {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if asset.SizeBytes != 2048 || asset.Title != "lecture" || asset.OriginalFilename != "lecture.mp3" || asset.DeclaredMimeType != "audio/mpeg" {
		t.Errorf("unexpected asset %+v", asset)
	}
	if !strings.HasPrefix(filepath.Base(asset.Path), "media_") || filepath.Ext(asset.Path) != ".mp3" {
		t.Errorf("path = %q", asset.Path)
	}

	for _, p := range []string{"/missing.mp3", "/empty.mp3", "/big.mp4"} {
		if _, err := d.Download(context.Background(), srv.URL+p); err == nil {
			t.Errorf("%s: expected error", p)
		}
	}

	// only the successful download remains
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("files in download dir = %d, want 1", len(entries))
	}
}

// scriptedExecutor fakes yt-dlp: it creates the output file named by -o
type failingCloser struct {
	strings.Builder
	closeErr error
	closed   int
}

func (f *failingCloser) Close() error {
	f.closed++
	return f.closeErr
}

func TestHTTPDownloader_CopyToReportsCloseError(t *testing.T) {
	d := NewHTTPDownloader(t.TempDir(), 1, time.Second, zaptest.NewLogger(t))
	flushErr := errors.New("disk full")

	w := &failingCloser{closeErr: flushErr}
	if _, err := d.copyTo(w, strings.NewReader("audio bytes")); !errors.Is(err, flushErr) {
		t.Errorf("err = %v, want close error", err)
	}
	if w.closed != 1 {
		t.Errorf("closed %d times, want 1", w.closed)
	}

	ok := &failingCloser{}
	size, err := d.copyTo(ok, strings.NewReader("audio bytes"))
	if err != nil || size != int64(len("audio bytes")) || ok.String() != "audio bytes" {
		t.Errorf("copyTo() = %d, %v, wrote %q", size, err, ok.String())
	}
	if ok.closed != 1 {
		t.Errorf("closed %d times, want 1", ok.closed)
	}
}

type scriptedExecutor struct {
	stdout   string
	err      error
	ext      string
	versions int
	args     []string
}

func (s *scriptedExecutor) Execute(_ context.Context, _ string, args ...string) (string, error) {
	if len(args) == 1 && args[0] == "--version" {
		s.versions++
		return "2025.01.15\n", nil
	}
	s.args = args
	if s.err != nil {
		return "", s.err
	}
	for i, a := range args {
		if a == "-o" {
			out := strings.Replace(args[i+1], ".%(ext)s", s.ext, 1)
			if err := os.WriteFile(out, []byte("mp3data"), 0o644); err != nil {
				return "", err
			}
		}
	}
	return s.stdout, nil
}

func TestYouTubeDownloader_Download(t *testing.T) {
	exec := &scriptedExecutor{stdout: "Tafsir Al-Fatihah: Part 1\n2712.5\n", ext: ".mp3"}
	d := NewYouTubeDownloader(exec, "", t.TempDir(), time.Minute, zaptest.NewLogger(t))

	asset, err := d.Download(context.Background(), "https://youtu.be/abc123")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if asset.Title != "Tafsir Al-Fatihah: Part 1" || asset.DeclaredMimeType != "audio/mpeg" || asset.SizeBytes != 7 {
		t.Errorf("unexpected asset %+v", asset)
	}
	if asset.OriginalFilename != "tafsir_al-fatihah_part_1.mp3" {
		t.Errorf("filename = %q", asset.OriginalFilename)
	}

	joined := strings.Join(exec.args, " ")
	for _, want := range []string{"-x", "--audio-format mp3", "--max-filesize 500M", "--no-playlist", "--print title", "--print duration"} {
		if !strings.Contains(joined, want) {
			t.Errorf("args %q missing %q", joined, want)
		}
	}
	if exec.args[len(exec.args)-1] != "https://youtu.be/abc123" {
		t.Error("URL must be the last argument")
	}
}

func TestYouTubeDownloader_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"timeout", context.DeadlineExceeded, "Download timeout"},
		{"too large", errors.New("ERROR: File is larger than max-filesize"), "too large"},
		{"private", errors.New("ERROR: Private video. Sign in"), "private or unavailable"},
		{"other", errors.New("ERROR: boom"), "yt-dlp error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewYouTubeDownloader(&scriptedExecutor{err: tt.err}, "", t.TempDir(), time.Minute, nil)
			_, err := d.Download(context.Background(), "https://youtu.be/x")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

type stubDownloader struct {
	called bool
}

func (s *stubDownloader) Download(context.Context, string) (*entities.MediaAsset, error) {
	s.called = true
	return nil, errors.New("unreachable")
}

func TestFetcher_Routes(t *testing.T) {
	yt, web := &stubDownloader{}, &stubDownloader{}
	f := &Fetcher{youtube: yt, http: web}

	_, err := f.Fetch(context.Background(), "https://www.youtube.com/watch?v=x")
	if !yt.called || web.called {
		t.Error("YouTube links must use yt-dlp")
	}
	if !apperrors.HasCode(err, apperrors.ErrorCode_MEDIA_FETCH_FAILED) {
		t.Errorf("err = %v", err)
	}

	_, _ = f.Fetch(context.Background(), "https://cdn.example.com/a.mp3")
	if !web.called {
		t.Error("plain links must use HTTP")
	}

	if _, err := f.Fetch(context.Background(), "ftp://example.com/a.mp3"); !apperrors.HasCode(err, apperrors.ErrorCode_INVALID_ARGUMENT) {
		t.Errorf("err = %v", err)
	}
}

func TestSaveUpload(t *testing.T) {
	dir := t.TempDir()
	asset, err := SaveUpload(dir, "../Week 3 Lecture.MP4", "video/mp4", strings.NewReader("video-bytes"))
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(asset.Path) != dir || filepath.Ext(asset.Path) != ".mp4" {
		t.Errorf("path = %q", asset.Path)
	}
	if asset.OriginalFilename != "Week 3 Lecture.MP4" || asset.DeclaredExtension != "mp4" || asset.SizeBytes != 11 {
		t.Errorf("unexpected asset %+v", asset)
	}
}
