package errors

import (
	"fmt"
	"net/http"
	"time"
)

// AppError là custom error type cho application
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// HasCode reports whether err is an AppError with the given code
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		if appErr, ok := err.(AppError); ok && appErr.Code == code {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func newError(httpCode int, code ErrorCode, message string, raw error) AppError {
	return AppError{
		Raw:       raw,
		HTTPCode:  httpCode,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// General Errors
func ErrInternal(err error) AppError {
	return newError(http.StatusInternalServerError, ErrorCode_INTERNAL, "Internal server error", err)
}

func ErrInvalidArgument(message string) AppError {
	return newError(http.StatusBadRequest, ErrorCode_INVALID_ARGUMENT, message, nil)
}

func ErrInvalidPayload() AppError {
	return newError(http.StatusBadRequest, ErrorCode_INVALID_PAYLOAD, "Invalid payload", nil)
}

func ErrUnauthenticated() AppError {
	return newError(http.StatusUnauthorized, ErrorCode_UNAUTHENTICATED, "Authentication required", nil)
}

// Pipeline Errors

// ErrValidation is surfaced verbatim to the caller and never retried.
func ErrValidation(message string) AppError {
	return newError(http.StatusBadRequest, ErrorCode_VALIDATION_FAILED, message, nil)
}

func ErrExtractionFailed(err error) AppError {
	return newError(http.StatusUnprocessableEntity, ErrorCode_EXTRACTION_FAILED, "Audio extraction failed", err)
}

func ErrCompressionFailed(err error) AppError {
	return newError(http.StatusUnprocessableEntity, ErrorCode_COMPRESSION_FAILED, "Audio compression failed", err)
}

func ErrTranscriptionFailed(err error) AppError {
	return newError(http.StatusBadGateway, ErrorCode_TRANSCRIPTION_FAILED, "Audio transcription failed", err)
}

// ErrTranslationFailed and ErrFormattingFailed are only logged; both stages degrade.
func ErrTranslationFailed(err error) AppError {
	return newError(http.StatusBadGateway, ErrorCode_TRANSLATION_FAILED, "Transcript translation failed", err)
}

func ErrFormattingFailed(err error) AppError {
	return newError(http.StatusBadGateway, ErrorCode_FORMATTING_FAILED, "Transcript formatting failed", err)
}

func ErrSummarizationFailed(err error) AppError {
	return newError(http.StatusBadGateway, ErrorCode_SUMMARIZATION_FAILED, "Failed to generate lecture notes", err)
}

func ErrParseFailed(err error) AppError {
	return newError(http.StatusBadGateway, ErrorCode_PARSE_FAILED, "Summarization response is not valid JSON", err)
}

func ErrMediaFetchFailed(source string, err error) AppError {
	return newError(http.StatusUnprocessableEntity, ErrorCode_MEDIA_FETCH_FAILED, "Failed to fetch media", err).
		WithDetail("source", source)
}

func ErrProviderUnconfigured(provider string) AppError {
	return newError(http.StatusServiceUnavailable, ErrorCode_PROVIDER_UNCONFIGURED,
		fmt.Sprintf("API key not configured for provider: %s", provider), nil).
		WithDetail("provider", provider)
}

// Integration Errors
func ErrStorageFailed(operation string, err error) AppError {
	return newError(http.StatusInternalServerError, ErrorCode_INTEGRATION_STORAGE_FAILED,
		fmt.Sprintf("Storage operation failed: %s", operation), err)
}

func ErrCacheFailed(operation string, err error) AppError {
	return newError(http.StatusInternalServerError, ErrorCode_INTEGRATION_CACHE_FAILED,
		fmt.Sprintf("Cache operation failed: %s", operation), err)
}

func ErrExternalAPIFailed(service string, err error) AppError {
	return newError(http.StatusBadGateway, ErrorCode_INTEGRATION_EXTERNAL_API_FAILED,
		fmt.Sprintf("External API call failed: %s", service), err)
}
