package handler

import (
	"context"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/lecture-notes/errors"
	"github.com/johnquangdev/lecture-notes/internal/adapter/dto/notes"
	"github.com/johnquangdev/lecture-notes/internal/domain/entities"
	"github.com/johnquangdev/lecture-notes/internal/infrastructure/export"
	"github.com/johnquangdev/lecture-notes/internal/infrastructure/source"
	"github.com/johnquangdev/lecture-notes/internal/infrastructure/storage"
	"github.com/johnquangdev/lecture-notes/internal/usecase/media"
	"github.com/johnquangdev/lecture-notes/internal/usecase/pipeline"
)

// MediaFetcher downloads remote media to local disk
type MediaFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*entities.MediaAsset, error)
}

// Archiver uploads a rendered document and returns a download URL
type Archiver interface {
	Archive(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
}

// NotesConfig holds the paths and defaults the notes handler needs
type NotesConfig struct {
	UploadDir       string
	TempDir         string
	DefaultLanguage string
}

// Notes handles lecture notes generation endpoints
type Notes struct {
	processor pipeline.Processor
	fetcher   MediaFetcher
	validator *media.Validator
	archiver  Archiver // nil when storage is disabled
	cfg       NotesConfig
	logger    *zap.Logger
	now       func() time.Time
}

// NewNotes creates a new notes handler
func NewNotes(processor pipeline.Processor, fetcher MediaFetcher, v *media.Validator, archiver Archiver, cfg NotesConfig, logger *zap.Logger) *Notes {
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = entities.LanguageEnglish
	}
	return &Notes{
		processor: processor,
		fetcher:   fetcher,
		validator: v,
		archiver:  archiver,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Create generates notes from an uploaded audio or video file
// @Summary      Generate notes from an upload
// @Description  Uploads an audio or video recording and returns structured lecture notes
// @Tags         Notes
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file          formData  file    true   "Audio or video file"
// @Param        language      formData  string  false  "english or indonesian"
// @Param        detail_level  formData  string  false  "concise, detailed or comprehensive"
// @Param        focus_areas   formData  string  false  "Comma separated focus areas"
// @Param        format        formData  string  false  "json, yaml, markdown or docx"
// @Param        archive       formData  bool    false  "Store the document in object storage"
// @Success      200  {object}  common.SuccessResponse{data=notes.NotesResponse}
// @Failure      400  {object}  common.ErrorResponse  "Invalid file or options"
// @Failure      422  {object}  common.ErrorResponse  "Media could not be processed"
// @Failure      502  {object}  common.ErrorResponse  "Transcription or summarization failed"
// @Router       /v1/notes [post]
func (h *Notes) Create(c echo.Context) error {
	var form notes.UploadForm
	if err := bindAndValidate(c, &form); err != nil {
		return HandleError(h.logger, c, err)
	}

	format, err := h.resolveOutput(form.Format, form.Archive)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("file is required"))
	}

	mimeType := fh.Header.Get(echo.HeaderContentType)
	if res := h.validator.Validate(mimeType, fh.Size, fh.Filename); !res.Valid {
		return HandleError(h.logger, c, errors.ErrValidation(res.Error))
	}

	src, err := fh.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	defer src.Close()

	asset, err := source.SaveUpload(h.cfg.UploadDir, fh.Filename, mimeType, src)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	h.logger.Info("📤 Upload received",
		zap.String("filename", fh.Filename),
		zap.String("size", media.FormatFileSize(fh.Size)),
	)

	return h.process(c, asset, form.ProcessOptions(h.cfg.DefaultLanguage), format, form.Archive)
}

// CreateFromURL generates notes from a YouTube or direct media URL
// @Summary      Generate notes from a URL
// @Description  Downloads a YouTube video or a direct audio/video link and returns structured lecture notes
// @Tags         Notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      notes.CreateFromURLRequest  true  "Media URL and options"
// @Success      200      {object}  common.SuccessResponse{data=notes.NotesResponse}
// @Failure      400      {object}  common.ErrorResponse  "Invalid URL or options"
// @Failure      422      {object}  common.ErrorResponse  "Media could not be fetched or processed"
// @Failure      502      {object}  common.ErrorResponse  "Transcription or summarization failed"
// @Router       /v1/notes/url [post]
func (h *Notes) CreateFromURL(c echo.Context) error {
	var req notes.CreateFromURLRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	format, err := h.resolveOutput(req.Format, req.Archive)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	asset, err := h.fetcher.Fetch(c.Request().Context(), strings.TrimSpace(req.URL))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return h.process(c, asset, req.ProcessOptions(h.cfg.DefaultLanguage), format, req.Archive)
}

// ValidateFile reports whether a file would be accepted before uploading it
// @Summary      Validate a media file
// @Description  Checks MIME type, extension and size against the configured limits
// @Tags         Notes
// @Accept       json
// @Produce      json
// @Param        request  body      notes.ValidateFileRequest  true  "File description"
// @Success      200      {object}  common.SuccessResponse{data=notes.ValidateFileResponse}
// @Failure      400      {object}  common.ErrorResponse  "Invalid payload"
// @Router       /v1/files/validate [post]
func (h *Notes) ValidateFile(c echo.Context) error {
	var req notes.ValidateFileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	res := h.validator.Validate(req.MimeType, req.Size, req.Filename)
	return HandleSuccess(h.logger, c, notes.ValidateFileResponse{
		Valid:    res.Valid,
		FileType: string(res.FileType),
		Error:    res.Error,
	})
}

func (h *Notes) resolveOutput(rawFormat string, archive bool) (export.Format, error) {
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		return "", errors.ErrInvalidArgument(err.Error())
	}
	if archive && h.archiver == nil {
		return "", errors.ErrInvalidArgument("archive requested but object storage is not enabled")
	}
	return format, nil
}

func (h *Notes) process(c echo.Context, asset *entities.MediaAsset, opts entities.ProcessOptions, format export.Format, archive bool) error {
	ctx := c.Request().Context()

	result, err := h.processor.ProcessMedia(ctx, asset, opts)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	resp := notes.NotesResponse{Notes: result, Format: string(format)}

	if !archive && format == export.FormatJSON {
		return HandleSuccess(h.logger, c, resp)
	}

	data, err := export.Render(result, format, h.cfg.TempDir)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	if !archive {
		name := documentName(asset.DisplayName(), format)
		return HandleDocument(h.logger, c, name, format.ContentType(), data)
	}

	objectName := storage.ObjectName(asset.DisplayName(), format.Extension(), h.now())
	url, err := h.archiver.Archive(ctx, objectName, data, format.ContentType())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	resp.ArchiveURL = url

	return HandleSuccess(h.logger, c, resp)
}

func documentName(displayName string, format export.Format) string {
	base := displayName
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	base = media.SanitizeFilename(base)
	if base == "" {
		base = "lecture_notes"
	}
	return base + "_notes." + format.Extension()
}
