package ai

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// TokenEstimator approximates how many model tokens a text costs
type TokenEstimator interface {
	Estimate(text string) int
	// MaxChars is the number of characters that fit in the given token budget
	MaxChars(tokens int) int
}

// CharRatioEstimator assumes a fixed number of characters per token
type CharRatioEstimator struct {
	CharsPerToken int
}

// DefaultEstimator is the 4-characters-per-token heuristic
func DefaultEstimator() CharRatioEstimator {
	return CharRatioEstimator{CharsPerToken: 4}
}

func (e CharRatioEstimator) ratio() int {
	if e.CharsPerToken <= 0 {
		return 4
	}
	return e.CharsPerToken
}

// Estimate returns ceil(runes / CharsPerToken)
func (e CharRatioEstimator) Estimate(text string) int {
	n := utf8.RuneCountInString(text)
	r := e.ratio()
	return (n + r - 1) / r
}

func (e CharRatioEstimator) MaxChars(tokens int) int {
	return tokens * e.ratio()
}

var sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)

// prefixRunes returns the first n runes of s
func prefixRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// CropToTokenBudget keeps the longest prefix of text that fits the budget and
// ends on a sentence boundary. rest is everything after the kept prefix.
// Text without any boundary in range is cut at the character limit.
func CropToTokenBudget(text string, ceiling int, est TokenEstimator) (kept, rest string, cropped bool) {
	if ceiling <= 0 || est.Estimate(text) <= ceiling {
		return text, "", false
	}

	window := prefixRunes(text, est.MaxChars(ceiling))
	cut := len(window)
	if matches := sentenceBoundary.FindAllStringIndex(window, -1); len(matches) > 0 {
		// keep the punctuation mark, drop the trailing whitespace
		cut = matches[len(matches)-1][0] + 1
	}

	return strings.TrimSpace(text[:cut]), strings.TrimSpace(text[cut:]), true
}

// ChunkTranscript splits text into sentence-bounded chunks that each fit the
// budget. A single sentence longer than the budget is split on the character limit.
func ChunkTranscript(text string, ceiling int, est TokenEstimator) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if ceiling <= 0 || est.Estimate(text) <= ceiling {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			chunks = append(chunks, s)
		}
		current.Reset()
	}

	for _, sentence := range splitSentences(text) {
		if est.Estimate(current.String()+sentence) <= ceiling {
			current.WriteString(sentence)
			continue
		}
		flush()
		for est.Estimate(sentence) > ceiling {
			head := prefixRunes(sentence, est.MaxChars(ceiling))
			chunks = append(chunks, strings.TrimSpace(head))
			sentence = sentence[len(head):]
		}
		current.WriteString(sentence)
	}
	flush()

	return chunks
}

// splitSentences splits text after every sentence boundary; each piece keeps
// its trailing punctuation and whitespace so the pieces concatenate back to text
func splitSentences(text string) []string {
	var out []string
	pos := 0
	for _, m := range sentenceBoundary.FindAllStringIndex(text, -1) {
		out = append(out, text[pos:m[1]])
		pos = m[1]
	}
	if pos < len(text) {
		out = append(out, text[pos:])
	}
	return out
}

// WordCount counts whitespace-separated tokens
func WordCount(text string) int {
	return len(strings.Fields(text))
}
