package jobcontext

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type KeyContext string

var (
	keyRunID     KeyContext = "run_id"
	keySource    KeyContext = "source"
	keyStage     KeyContext = "stage"
	keyStartTime KeyContext = "run_start_time"
)

// RunMetadata holds metadata for one pipeline run
type RunMetadata struct {
	RunID     uuid.UUID
	Source    string
	Stage     string
	StartTime time.Time
}

// Begin initializes a run context with metadata and an overall deadline.
// A zero timeout leaves the parent deadline untouched.
func Begin(parentCtx context.Context, runID uuid.UUID, source string, timeout time.Duration) (context.Context, context.CancelFunc) {
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(parentCtx, timeout)
	} else {
		ctx, cancel = context.WithCancel(parentCtx)
	}

	ctx = context.WithValue(ctx, keyRunID, runID)
	ctx = context.WithValue(ctx, keySource, source)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())

	return ctx, cancel
}

// Stage runs fn with the stage name recorded in ctx. A panic inside fn is
// recovered and returned as an error so one bad stage cannot take the process down.
func Stage(ctx context.Context, name string, fn func(context.Context) error) (err error) {
	ctx = context.WithValue(ctx, keyStage, name)

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic recovered in stage %s: %v", name, p)
		}
	}()

	// Check if context was cancelled before execution
	if ctx.Err() != nil {
		return fmt.Errorf("context cancelled before stage %s: %w", name, ctx.Err())
	}

	return fn(ctx)
}

// GetRunID extracts run ID from context
func GetRunID(ctx context.Context) (uuid.UUID, bool) {
	runID, ok := ctx.Value(keyRunID).(uuid.UUID)
	return runID, ok
}

// GetSource extracts the media source description from context
func GetSource(ctx context.Context) (string, bool) {
	source, ok := ctx.Value(keySource).(string)
	return source, ok
}

// GetStage extracts the current stage name from context
func GetStage(ctx context.Context) string {
	stage, _ := ctx.Value(keyStage).(string)
	return stage
}

// GetStartTime extracts run start time from context
func GetStartTime(ctx context.Context) (time.Time, bool) {
	startTime, ok := ctx.Value(keyStartTime).(time.Time)
	return startTime, ok
}

// GetRunMetadata extracts all run metadata from context
func GetRunMetadata(ctx context.Context) *RunMetadata {
	runID, _ := GetRunID(ctx)
	source, _ := GetSource(ctx)
	startTime, _ := GetStartTime(ctx)

	return &RunMetadata{
		RunID:     runID,
		Source:    source,
		Stage:     GetStage(ctx),
		StartTime: startTime,
	}
}

// Fields returns zap fields describing the run in ctx
func Fields(ctx context.Context) []zap.Field {
	md := GetRunMetadata(ctx)
	fields := make([]zap.Field, 0, 4)
	if md.RunID != uuid.Nil {
		fields = append(fields, zap.String("run_id", md.RunID.String()))
	}
	if md.Source != "" {
		fields = append(fields, zap.String("source", md.Source))
	}
	if md.Stage != "" {
		fields = append(fields, zap.String("stage", md.Stage))
	}
	if !md.StartTime.IsZero() {
		fields = append(fields, zap.Duration("elapsed", time.Since(md.StartTime)))
	}
	return fields
}
