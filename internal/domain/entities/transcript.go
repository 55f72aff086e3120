package entities

// TranscriptionSegment is a timed piece of a transcript
type TranscriptionSegment struct {
	ID    int     `json:"id" yaml:"id"`
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
	Text  string  `json:"text" yaml:"text"`
}

// TranscriptionResult is the normalized output of any speech-to-text backend.
// It is never mutated after the provider returns it.
type TranscriptionResult struct {
	Text            string                 `json:"text"`
	DurationSeconds *float64               `json:"duration,omitempty"`
	Language        string                 `json:"language,omitempty"`
	Segments        []TranscriptionSegment `json:"segments,omitempty"`
}

// Duration returns the reported duration or 0 when unknown
func (t *TranscriptionResult) Duration() float64 {
	if t == nil || t.DurationSeconds == nil {
		return 0
	}
	return *t.DurationSeconds
}
