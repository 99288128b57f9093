package report

import (
	"strings"
)

const MaxCommentLines = 6

// WrapText packs words greedily into lines no wider than maxWidth, as
// measured by measure. A word wider than maxWidth is broken between runes.
func WrapText(text string, maxWidth float64, measure func(string) float64) []string {
	var (
		lines []string
		line  string
	)
	for _, word := range strings.Fields(text) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if measure(candidate) <= maxWidth {
			line = candidate
			continue
		}
		if line != "" {
			lines = append(lines, line)
		}
		if measure(word) <= maxWidth {
			line = word
			continue
		}
		chunks := breakWord(word, maxWidth, measure)
		lines = append(lines, chunks[:len(chunks)-1]...)
		line = chunks[len(chunks)-1]
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// breakWord splits word into chunks that fit maxWidth. Every chunk holds at
// least one rune, so a single glyph wider than the line still makes progress.
func breakWord(word string, maxWidth float64, measure func(string) float64) []string {
	var (
		chunks []string
		chunk  []rune
	)
	for _, r := range word {
		if len(chunk) > 0 && measure(string(append(chunk, r))) > maxWidth {
			chunks = append(chunks, string(chunk))
			chunk = chunk[:0]
		}
		chunk = append(chunk, r)
	}
	return append(chunks, string(chunk))
}

// TruncateLines keeps the first max lines, the rest is dropped without ellipsis.
func TruncateLines(lines []string, max int) []string {
	if max < 0 {
		max = 0
	}
	if len(lines) > max {
		return lines[:max]
	}
	return lines
}
