// Package chunker splits extracted text into overlapping, boundary-aware
// segments. It is a pure function of its inputs: no I/O, no state.
package chunker

import (
	"regexp"
	"strings"
)

const (
	DefaultMaxSize = 1000
	DefaultOverlap = 200
)

var (
	spaceRuns   = regexp.MustCompile(`[ \t]+`)
	newlineRuns = regexp.MustCompile(`\n+`)
)

// Normalize collapses runs of spaces and tabs to one space and runs of
// newlines to one newline, then trims the result.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = spaceRuns.ReplaceAllString(text, " ")
	text = newlineRuns.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// Split cuts text into chunks of at most maxSize characters, preferring to
// cut at a sentence terminator past the window midpoint, then at a paragraph
// break, then at the raw boundary. Consecutive chunks share an overlap-sized
// trailing/leading span so a cut that falls mid-argument keeps its context.
func Split(text string, maxSize, overlap int) []string {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxSize {
		overlap = maxSize / 2
	}

	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}

	runes := []rune(normalized)
	if len(runes) <= maxSize {
		return []string{normalized}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + maxSize
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = findCut(runes, start, end)
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end == len(runes) {
			break
		}

		next := end - overlap
		if next <= start {
			// Guarantee forward progress for degenerate overlap/boundary combinations.
			next = end
		}
		start = next
	}

	return chunks
}

// findCut searches backward from end for the nearest sentence terminator; a
// hit past the window midpoint wins. Failing that, the nearest paragraph
// break under the same midpoint rule. Failing both, the raw boundary.
func findCut(runes []rune, start, end int) int {
	mid := start + (end-start)/2

	for i := end - 1; i > mid; i-- {
		switch runes[i] {
		case '.', '!', '?':
			return i + 1
		}
	}

	for i := end - 1; i > mid; i-- {
		if runes[i] == '\n' {
			return i + 1
		}
	}

	return end
}
