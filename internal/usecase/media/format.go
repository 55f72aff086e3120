package media

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// FormatMB renders a byte count as megabytes with two decimals, e.g. "12.34MB"
func FormatMB(bytes int64) string {
	return fmt.Sprintf("%.2fMB", float64(bytes)/bytesPerMB)
}

// FormatFileSize renders a byte count with a binary unit, e.g. "1.5 MB"
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	sizes := []string{"Bytes", "KB", "MB", "GB"}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizes) {
		i = len(sizes) - 1
	}
	v := float64(bytes) / math.Pow(1024, float64(i))
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64) + " " + sizes[i]
}

// FormatDuration renders seconds as m:ss or h:mm:ss
func FormatDuration(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)
	repeatedUnderscores = regexp.MustCompile(`_{2,}`)
)

// SanitizeFilename replaces everything but letters, digits, dots and dashes
// with underscores and lowercases the result
func SanitizeFilename(filename string) string {
	out := unsafeFilenameChars.ReplaceAllString(filename, "_")
	out = repeatedUnderscores.ReplaceAllString(out, "_")
	return strings.ToLower(out)
}
