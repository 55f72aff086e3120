package entities

import "fmt"

// Notes languages
const (
	LanguageEnglish    = "english"
	LanguageIndonesian = "indonesian"
)

// Detail levels
const (
	DetailConcise       = "concise"
	DetailDetailed      = "detailed"
	DetailComprehensive = "comprehensive"
)

// SummarizationOptions steer the summarization prompt
type SummarizationOptions struct {
	DetailLevel string   `json:"detail_level,omitempty"`
	FocusAreas  []string `json:"focus_areas,omitempty"`
	Language    string   `json:"language,omitempty"`
}

// ProcessOptions are the caller's choices for one pipeline run
type ProcessOptions struct {
	Language     string   `json:"language,omitempty"`
	DetailLevel  string   `json:"detail_level,omitempty"`
	FocusAreas   []string `json:"focus_areas,omitempty"`
	DeleteSource bool     `json:"delete_source,omitempty"`
}

// WithDefaults fills empty fields: english, detailed
func (o ProcessOptions) WithDefaults() ProcessOptions {
	if o.Language == "" {
		o.Language = LanguageEnglish
	}
	if o.DetailLevel == "" {
		o.DetailLevel = DetailDetailed
	}
	return o
}

// Validate rejects languages and detail levels the prompts do not support
func (o ProcessOptions) Validate() error {
	switch o.Language {
	case LanguageEnglish, LanguageIndonesian:
	default:
		return fmt.Errorf("%w: %q (allowed: %s, %s)", ErrUnsupportedLanguage, o.Language, LanguageEnglish, LanguageIndonesian)
	}
	switch o.DetailLevel {
	case DetailConcise, DetailDetailed, DetailComprehensive:
	default:
		return fmt.Errorf("%w: %q (allowed: %s, %s, %s)", ErrUnsupportedDetail, o.DetailLevel, DetailConcise, DetailDetailed, DetailComprehensive)
	}
	return nil
}

// Summarization returns the summarization options for this run
func (o ProcessOptions) Summarization() SummarizationOptions {
	return SummarizationOptions{
		DetailLevel: o.DetailLevel,
		FocusAreas:  o.FocusAreas,
		Language:    o.Language,
	}
}
