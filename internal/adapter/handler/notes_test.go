package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap/zaptest"

	"github.com/johnquangdev/lecture-notes/errors"
	"github.com/johnquangdev/lecture-notes/internal/domain/entities"
	"github.com/johnquangdev/lecture-notes/internal/usecase/media"
	"github.com/johnquangdev/lecture-notes/pkg/config"
	"github.com/johnquangdev/lecture-notes/pkg/jwt"
	"github.com/johnquangdev/lecture-notes/pkg/validator"
)

type fakeProcessor struct {
	calls     int
	asset     *entities.MediaAsset
	opts      entities.ProcessOptions
	sourceLen int64
	err       error
}

func (p *fakeProcessor) ProcessMedia(_ context.Context, asset *entities.MediaAsset, opts entities.ProcessOptions) (*entities.LectureNotes, error) {
	p.calls++
	p.asset = asset
	p.opts = opts
	if info, err := os.Stat(asset.Path); err == nil {
		p.sourceLen = info.Size()
	}
	if p.err != nil {
		return nil, p.err
	}
	notes := &entities.LectureNotes{
		Title:   "Thermodynamics",
		Summary: "Energy is conserved.",
		Metadata: entities.NotesMetadata{
			OriginalFilename: asset.OriginalFilename,
			WordCount:        3,
		},
	}
	notes.EnsureSlices()
	return notes, nil
}

type fakeFetcher struct {
	url   string
	asset *entities.MediaAsset
	err   error
}

func (f *fakeFetcher) Fetch(_ context.Context, rawURL string) (*entities.MediaAsset, error) {
	f.url = rawURL
	return f.asset, f.err
}

type fakeArchiver struct {
	objectName  string
	contentType string
	data        []byte
}

func (a *fakeArchiver) Archive(_ context.Context, objectName string, data []byte, contentType string) (string, error) {
	a.objectName = objectName
	a.contentType = contentType
	a.data = data
	return "https://files.example.com/" + objectName + "?sig=1", nil
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Info    string          `json:"info"`
}

type testServer struct {
	e         *echo.Echo
	processor *fakeProcessor
	fetcher   *fakeFetcher
	uploadDir string
}

func newTestServer(t *testing.T, archiver Archiver, jwtManager *jwt.Manager) *testServer {
	t.Helper()

	uploadDir := t.TempDir()
	mediaCfg := config.MediaConfig{
		MaxFileSizeMB:       100,
		MaxAudioSizeMB:      25,
		MaxVideoSizeMB:      500,
		AllowedAudioFormats: []string{"mp3", "wav"},
		AllowedVideoFormats: []string{"mp4"},
	}

	processor := &fakeProcessor{}
	fetcher := &fakeFetcher{}
	notesHandler := NewNotes(processor, fetcher, media.NewValidator(mediaCfg), archiver, NotesConfig{
		UploadDir: uploadDir,
		TempDir:   t.TempDir(),
	}, zaptest.NewLogger(t))
	notesHandler.now = func() time.Time { return time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC) }

	e := echo.New()
	e.Validator = validator.New()
	NewRouter(&config.Config{}, notesHandler, jwtManager).Setup(e)

	return &testServer{e: e, processor: processor, fetcher: fetcher, uploadDir: uploadDir}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func uploadRequest(t *testing.T, filename, contentType string, content []byte, fields map[string]string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(content)
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/notes", body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func jsonRequest(path string, v interface{}) *http.Request {
	data, _ := json.Marshal(v)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return env
}

func TestNotes_Create_JSON(t *testing.T) {
	s := newTestServer(t, nil, nil)

	req := uploadRequest(t, "lecture.mp3", "audio/mpeg", []byte("ID3 fake audio"), map[string]string{
		"detail_level": "concise",
		"focus_areas":  "entropy, heat engines",
	})
	rec := s.do(req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Code != 200 || env.Message != "success" {
		t.Errorf("envelope = %+v", env)
	}

	var data struct {
		Notes  entities.LectureNotes `json:"notes"`
		Format string                `json:"format"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if data.Notes.Title != "Thermodynamics" || data.Format != "json" {
		t.Errorf("data = %+v", data)
	}

	p := s.processor
	if p.calls != 1 {
		t.Fatalf("processor called %d times", p.calls)
	}
	if p.asset.OriginalFilename != "lecture.mp3" || p.asset.DeclaredMimeType != "audio/mpeg" {
		t.Errorf("asset = %+v", p.asset)
	}
	if p.sourceLen != int64(len("ID3 fake audio")) {
		t.Errorf("saved upload has %d bytes", p.sourceLen)
	}
	if !strings.HasPrefix(p.asset.Path, s.uploadDir) {
		t.Errorf("upload saved outside upload dir: %s", p.asset.Path)
	}
	want := entities.ProcessOptions{
		Language:     entities.LanguageEnglish,
		DetailLevel:  entities.DetailConcise,
		FocusAreas:   []string{"entropy", "heat engines"},
		DeleteSource: true,
	}
	if fmt.Sprint(p.opts) != fmt.Sprint(want) {
		t.Errorf("opts = %+v, want %+v", p.opts, want)
	}
}

func TestNotes_Create_MarkdownDownload(t *testing.T) {
	s := newTestServer(t, nil, nil)

	rec := s.do(uploadRequest(t, "Week 1.mp4", "video/mp4", []byte("video"), map[string]string{"format": "markdown"}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get(echo.HeaderContentDisposition); got != `attachment; filename="week_1_notes.md"` {
		t.Errorf("Content-Disposition = %q", got)
	}
	if !strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), "text/markdown") {
		t.Errorf("Content-Type = %q", rec.Header().Get(echo.HeaderContentType))
	}
	if !strings.HasPrefix(rec.Body.String(), "# Thermodynamics") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestNotes_Create_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		mimeType string
		fields   map[string]string
		wantCode errors.ErrorCode
	}{
		{"unsupported format", "notes.txt", "text/plain", nil, errors.ErrorCode_VALIDATION_FAILED},
		{"straddling mime", "lecture.mp3", "video/mp4", nil, errors.ErrorCode_VALIDATION_FAILED},
		{"bad language", "lecture.mp3", "audio/mpeg", map[string]string{"language": "french"}, errors.ErrorCode_INVALID_ARGUMENT},
		{"bad output format", "lecture.mp3", "audio/mpeg", map[string]string{"format": "pdf"}, errors.ErrorCode_INVALID_ARGUMENT},
		{"archive without storage", "lecture.mp3", "audio/mpeg", map[string]string{"archive": "true"}, errors.ErrorCode_INVALID_ARGUMENT},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil, nil)
			rec := s.do(uploadRequest(t, tt.filename, tt.mimeType, []byte("x"), tt.fields))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			if env := decodeEnvelope(t, rec); env.Code != int(tt.wantCode) {
				t.Errorf("code = %d, want %d", env.Code, tt.wantCode)
			}
			if s.processor.calls != 0 {
				t.Error("processor must not run")
			}
			entries, _ := os.ReadDir(s.uploadDir)
			if len(entries) != 0 {
				t.Errorf("rejected upload left %d files", len(entries))
			}
		})
	}
}

func TestNotes_Create_Archive(t *testing.T) {
	archiver := &fakeArchiver{}
	s := newTestServer(t, archiver, nil)

	rec := s.do(uploadRequest(t, "lecture.wav", "audio/wav", []byte("RIFF"), map[string]string{"archive": "true", "format": "yaml"}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var data struct {
		ArchiveURL string `json:"archive_url"`
		Format     string `json:"format"`
	}
	json.Unmarshal(decodeEnvelope(t, rec).Data, &data)

	if !strings.HasPrefix(archiver.objectName, "notes/2026/10/18/") || !strings.HasSuffix(archiver.objectName, "_lecture.yaml") {
		t.Errorf("object name = %q", archiver.objectName)
	}
	if archiver.contentType != "application/yaml" || !bytes.Contains(archiver.data, []byte("title: Thermodynamics")) {
		t.Errorf("archived %q as %q", archiver.data, archiver.contentType)
	}
	if data.Format != "yaml" || data.ArchiveURL != "https://files.example.com/"+archiver.objectName+"?sig=1" {
		t.Errorf("data = %+v", data)
	}
}

func TestNotes_CreateFromURL(t *testing.T) {
	t.Run("invalid url", func(t *testing.T) {
		s := newTestServer(t, nil, nil)
		rec := s.do(jsonRequest("/v1/notes/url", map[string]string{"url": "ftp://example.com/a.mp3"}))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
		if env := decodeEnvelope(t, rec); env.Message != "url must be an http or https URL" && !strings.Contains(env.Message, "http or https") {
			t.Errorf("message = %q", env.Message)
		}
		if s.fetcher.url != "" {
			t.Error("fetcher must not run")
		}
	})

	t.Run("fetch and process", func(t *testing.T) {
		s := newTestServer(t, nil, nil)
		path := s.uploadDir + "/media.mp3"
		os.WriteFile(path, []byte("abc"), 0o644)
		s.fetcher.asset = entities.NewMediaAsset(path, "media.mp3", "audio/mpeg", 3)

		rec := s.do(jsonRequest("/v1/notes/url", map[string]interface{}{
			"url":      " https://youtu.be/dQw4w9WgXcQ",
			"language": "indonesian",
		}))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if s.fetcher.url != "https://youtu.be/dQw4w9WgXcQ" {
			t.Errorf("fetched %q", s.fetcher.url)
		}
		if s.processor.opts.Language != entities.LanguageIndonesian || !s.processor.opts.DeleteSource {
			t.Errorf("opts = %+v", s.processor.opts)
		}
	})

	t.Run("fetch failure", func(t *testing.T) {
		s := newTestServer(t, nil, nil)
		s.fetcher.err = errors.ErrMediaFetchFailed("youtube", fmt.Errorf("Video is private or unavailable"))

		rec := s.do(jsonRequest("/v1/notes/url", map[string]string{"url": "https://youtu.be/dQw4w9WgXcQ"}))
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d", rec.Code)
		}
		env := decodeEnvelope(t, rec)
		if env.Code != int(errors.ErrorCode_MEDIA_FETCH_FAILED) || env.Info != "Video is private or unavailable" {
			t.Errorf("envelope = %+v", env)
		}
		if s.processor.calls != 0 {
			t.Error("processor must not run")
		}
	})

	t.Run("pipeline failure", func(t *testing.T) {
		s := newTestServer(t, nil, nil)
		s.fetcher.asset = entities.NewMediaAsset(s.uploadDir+"/a.mp3", "a.mp3", "audio/mpeg", 3)
		s.processor.err = errors.ErrTranscriptionFailed(fmt.Errorf("Failed to transcribe after 3 attempts"))

		rec := s.do(jsonRequest("/v1/notes/url", map[string]string{"url": "https://example.com/a.mp3"}))
		if rec.Code != http.StatusBadGateway {
			t.Fatalf("status = %d", rec.Code)
		}
		env := decodeEnvelope(t, rec)
		if env.Message != "Audio transcription failed" || env.Info != "Failed to transcribe after 3 attempts" {
			t.Errorf("envelope = %+v", env)
		}
	})
}

func TestNotes_ValidateFile(t *testing.T) {
	s := newTestServer(t, nil, nil)

	tests := []struct {
		name      string
		body      map[string]interface{}
		wantValid bool
		wantType  string
	}{
		{"video", map[string]interface{}{"mime_type": "video/mp4", "size": 5 << 20, "filename": "a.mp4"}, true, "video"},
		{"audio too large", map[string]interface{}{"mime_type": "audio/mpeg", "size": 30 << 20, "filename": "a.mp3"}, false, ""},
		{"no extension", map[string]interface{}{"mime_type": "audio/mpeg", "size": 10, "filename": "a"}, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(jsonRequest("/v1/files/validate", tt.body))
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			var data struct {
				Valid    bool   `json:"valid"`
				FileType string `json:"file_type"`
				Error    string `json:"error"`
			}
			json.Unmarshal(decodeEnvelope(t, rec).Data, &data)
			if data.Valid != tt.wantValid || data.FileType != tt.wantType {
				t.Errorf("data = %+v", data)
			}
			if !tt.wantValid && data.Error == "" {
				t.Error("invalid result must carry a message")
			}
		})
	}

	rec := s.do(jsonRequest("/v1/files/validate", map[string]interface{}{"size": 10}))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing mime_type: status = %d", rec.Code)
	}
}

func TestRouter_AuthAndHealth(t *testing.T) {
	manager := jwt.NewManager("secret")
	s := newTestServer(t, nil, manager)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("health = %d %s", rec.Code, rec.Body.String())
	}

	rec = s.do(jsonRequest("/v1/files/validate", map[string]interface{}{"mime_type": "audio/mpeg", "size": 10, "filename": "a.mp3"}))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("without token: status = %d", rec.Code)
	}

	token, err := manager.GenerateToken("ci", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	req := jsonRequest("/v1/files/validate", map[string]interface{}{"mime_type": "audio/mpeg", "size": 10, "filename": "a.mp3"})
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	if rec := s.do(req); rec.Code != http.StatusOK {
		t.Errorf("with token: status = %d", rec.Code)
	}
}
