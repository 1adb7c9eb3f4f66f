package render

import (
	"strings"
	"unicode/utf8"
)

// Transport size limits, in characters.
const (
	CaptionLimit = 1024
	MessageLimit = 4096
)

// SplitMessage splits text into ordered segments of at most limit characters.
// The split is greedy and line-atomic: lines are accumulated in order while
// they fit and are never broken mid-content. Rejoining the segments with a
// newline reproduces the input exactly. A single line longer than limit
// becomes its own over-long segment.
func SplitMessage(text string, limit int) []string {
	lines := strings.Split(text, "\n")

	var segments []string
	var current strings.Builder
	currentLen := 0

	for _, line := range lines {
		lineLen := utf8.RuneCountInString(line)
		if currentLen > 0 && currentLen+lineLen+1 > limit {
			segments = append(segments, current.String())
			current.Reset()
			currentLen = 0
		}
		if currentLen > 0 {
			current.WriteByte('\n')
			currentLen++
		}
		current.WriteString(line)
		currentLen += lineLen
	}

	return append(segments, current.String())
}
