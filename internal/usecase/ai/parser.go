package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/johnquangdev/lecture-notes/internal/domain/entities"
)

// Parser turns a summarization reply into LectureNotes
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// notesResponse mirrors the JSON the model is asked for; every field is optional
type notesResponse struct {
	Title           string                    `json:"title"`
	Summary         string                    `json:"summary"`
	Paragraphs      []string                  `json:"paragraphs"`
	BulletPoints    []string                  `json:"bulletPoints"`
	KeyConcepts     []entities.KeyConcept     `json:"keyConcepts"`
	Definitions     []entities.Definition     `json:"definitions"`
	ExampleProblems []entities.ExampleProblem `json:"exampleProblems"`
	ActionItems     []string                  `json:"actionItems"`
}

// ParseNotesResponse parses the model's JSON reply. Missing fields get
// defaults: "Untitled Lecture Notes", an empty summary and empty lists.
func (p *Parser) ParseNotesResponse(content string) (*entities.LectureNotes, error) {
	content = extractJSON(content)
	if content == "" {
		return nil, fmt.Errorf("empty response")
	}

	var resp *notesResponse
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	if resp == nil {
		return nil, fmt.Errorf("response is null, expected a JSON object")
	}

	notes := &entities.LectureNotes{
		Title:           strings.TrimSpace(resp.Title),
		Summary:         resp.Summary,
		Paragraphs:      resp.Paragraphs,
		BulletPoints:    resp.BulletPoints,
		KeyConcepts:     resp.KeyConcepts,
		Definitions:     resp.Definitions,
		ExampleProblems: resp.ExampleProblems,
		ActionItems:     resp.ActionItems,
	}
	if notes.Title == "" {
		notes.Title = entities.DefaultNotesTitle
	}
	for i := range notes.KeyConcepts {
		notes.KeyConcepts[i].Importance = entities.NormalizeImportance(notes.KeyConcepts[i].Importance)
	}
	notes.EnsureSlices()

	return notes, nil
}

// extractJSON extracts JSON content from markdown code blocks or surrounding prose
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}
	content = strings.TrimSpace(content)

	// Anthropic has no JSON mode and sometimes adds a sentence around the object
	if !strings.HasPrefix(content, "{") {
		start := strings.Index(content, "{")
		end := strings.LastIndex(content, "}")
		if start != -1 && end > start {
			content = content[start : end+1]
		}
	}

	return content
}
