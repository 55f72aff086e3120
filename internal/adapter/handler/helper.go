package handler

import (
	stdErrors "errors"
	"fmt"
	"net/http"

	"github.com/johnquangdev/lecture-notes/errors"
	"github.com/johnquangdev/lecture-notes/internal/adapter/dto/common"
	"github.com/johnquangdev/lecture-notes/internal/usecase/pipeline"
	"github.com/johnquangdev/lecture-notes/pkg/validator"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// getRequestID tries to read X-Request-ID from the request or response
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	resp := common.SuccessResponse{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleDocument sends a rendered notes document as a download
func HandleDocument(logger *zap.Logger, c echo.Context, filename, contentType string, data []byte) error {
	if logger != nil {
		logger.Info("http.response.document",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.String("filename", filename),
			zap.Int("bytes", len(data)),
		)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, contentType, data)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.String("app_code", appErr.Code.String()),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = pipeline.ErrorMessage(appErr.Raw)
		}

		body := common.ErrorResponse{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := common.ErrorResponse{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
	}

	return c.JSON(http.StatusInternalServerError, body)
}

// bindAndValidate binds the request into req and runs struct validation
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	if err := c.Validate(req); err != nil {
		msgs := validator.Messages(err)
		appErr := errors.ErrInvalidArgument(msgs[0])
		for i, m := range msgs[1:] {
			appErr = appErr.WithDetail(fmt.Sprintf("field_%d", i+2), m)
		}
		return appErr
	}
	return nil
}
