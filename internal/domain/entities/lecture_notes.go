package entities

import "time"

// Importance levels for key concepts
const (
	ImportanceHigh   = "high"
	ImportanceMedium = "medium"
	ImportanceLow    = "low"
)

// DefaultNotesTitle is used when the model returns no title
const DefaultNotesTitle = "Untitled Lecture Notes"

// CroppedNote marks notes generated from a cropped transcript
const CroppedNote = "Transcript was cropped due to API token limits"

// LectureNotes is the structured document produced by a pipeline run
type LectureNotes struct {
	Title           string           `json:"title" yaml:"title"`
	Summary         string           `json:"summary" yaml:"summary"`
	Paragraphs      []string         `json:"paragraphs" yaml:"paragraphs"`
	BulletPoints    []string         `json:"bulletPoints" yaml:"bulletPoints"`
	KeyConcepts     []KeyConcept     `json:"keyConcepts" yaml:"keyConcepts"`
	Definitions     []Definition     `json:"definitions" yaml:"definitions"`
	ExampleProblems []ExampleProblem `json:"exampleProblems" yaml:"exampleProblems"`
	ActionItems     []string         `json:"actionItems" yaml:"actionItems"`
	Transcript      string           `json:"transcript,omitempty" yaml:"transcript,omitempty"`
	Metadata        NotesMetadata    `json:"metadata" yaml:"metadata"`
}

// KeyConcept is an idea the lecture spends time on
type KeyConcept struct {
	Concept     string `json:"concept" yaml:"concept"`
	Explanation string `json:"explanation" yaml:"explanation"`
	Importance  string `json:"importance" yaml:"importance"` // high, medium, low
}

// Definition is a term defined in the lecture
type Definition struct {
	Term       string `json:"term" yaml:"term"`
	Definition string `json:"definition" yaml:"definition"`
	Context    string `json:"context,omitempty" yaml:"context,omitempty"`
}

// ExampleProblem is a worked example from the lecture
type ExampleProblem struct {
	Problem     string `json:"problem" yaml:"problem"`
	Solution    string `json:"solution,omitempty" yaml:"solution,omitempty"`
	Explanation string `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// NotesMetadata describes how the notes were generated
type NotesMetadata struct {
	GeneratedAt        time.Time `json:"generatedAt" yaml:"generatedAt"`
	TranscriptionModel string    `json:"transcriptionModel" yaml:"transcriptionModel"`
	SummarizationModel string    `json:"summarizationModel" yaml:"summarizationModel"`
	OriginalFilename   string    `json:"originalFilename" yaml:"originalFilename"`
	DurationSeconds    *float64  `json:"duration,omitempty" yaml:"duration,omitempty"`
	WordCount          int       `json:"wordCount" yaml:"wordCount"`
	Cropped            bool      `json:"cropped,omitempty" yaml:"cropped,omitempty"`
	Note               string    `json:"note,omitempty" yaml:"note,omitempty"`
	ChunkCount         int       `json:"chunkCount,omitempty" yaml:"chunkCount,omitempty"`
}

// NormalizeImportance maps any model output onto high, medium or low
func NormalizeImportance(v string) string {
	switch v {
	case ImportanceHigh, ImportanceMedium, ImportanceLow:
		return v
	case "High", "HIGH":
		return ImportanceHigh
	case "Low", "LOW":
		return ImportanceLow
	default:
		return ImportanceMedium
	}
}

// EnsureSlices replaces nil collections with empty ones so the document
// always serializes every list
func (n *LectureNotes) EnsureSlices() {
	if n.Paragraphs == nil {
		n.Paragraphs = []string{}
	}
	if n.BulletPoints == nil {
		n.BulletPoints = []string{}
	}
	if n.KeyConcepts == nil {
		n.KeyConcepts = []KeyConcept{}
	}
	if n.Definitions == nil {
		n.Definitions = []Definition{}
	}
	if n.ExampleProblems == nil {
		n.ExampleProblems = []ExampleProblem{}
	}
	if n.ActionItems == nil {
		n.ActionItems = []string{}
	}
}
