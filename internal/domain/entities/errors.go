package entities

import "errors"

// Domain errors
var (
	ErrEmptyPath        = errors.New("media path is empty")
	ErrUnknownMediaKind = errors.New("unknown media kind")
	ErrEmptyTranscript  = errors.New("transcript is empty")

	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrUnsupportedDetail   = errors.New("unsupported detail level")
)
