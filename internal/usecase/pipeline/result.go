package pipeline

import (
	"context"
	stdErrors "errors"
	"fmt"

	"github.com/johnquangdev/lecture-notes/errors"
	"github.com/johnquangdev/lecture-notes/internal/domain/entities"
)

// Processor is anything that can run the pipeline
type Processor interface {
	ProcessMedia(ctx context.Context, asset *entities.MediaAsset, opts entities.ProcessOptions) (*entities.LectureNotes, error)
}

// Result is the success-or-error outcome handed to callers
type Result struct {
	Success bool                   `json:"success"`
	Data    *entities.LectureNotes `json:"data,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Code    string                 `json:"code,omitempty"`
}

// Run processes asset and folds the outcome into a Result
func Run(ctx context.Context, p Processor, asset *entities.MediaAsset, opts entities.ProcessOptions) Result {
	notes, err := p.ProcessMedia(ctx, asset, opts)
	if err != nil {
		res := Result{Error: ErrorMessage(err)}
		var appErr errors.AppError
		if stdErrors.As(err, &appErr) {
			res.Code = appErr.Code.String()
		}
		return res
	}
	return Result{Success: true, Data: notes}
}

// ErrorMessage renders err for end users, without the error code prefix
func ErrorMessage(err error) string {
	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) {
		return err.Error()
	}
	if appErr.Raw == nil {
		return appErr.Message
	}
	return fmt.Sprintf("%s: %s", appErr.Message, ErrorMessage(appErr.Raw))
}
