package utils

import (
	"regexp"
	"strings"
)

var whitespace = regexp.MustCompile(`\s+`)

// CleanText collapses all whitespace (including non-breaking spaces) to single spaces.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\u00a0", " ")
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}

// SplitText splits cleaned text into chunks of at most chunkSize runes, each starting
// overlap runes before the end of the previous one. Empty text yields no chunks.
func SplitText(text string, chunkSize int, overlap int) []string {
	text = CleanText(text)
	if text == "" {
		return nil
	}
	runes := []rune(text)
	totalLen := len(runes)
	if chunkSize <= 0 || totalLen <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	var chunks []string
	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		}
		chunks = append(chunks, string(runes[i:end]))
		if end == totalLen {
			break
		}
	}
	return chunks
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// SafeFilename replaces anything outside [a-zA-Z0-9._-] with underscores.
func SafeFilename(name string) string {
	cleaned := unsafeName.ReplaceAllString(name, "_")
	if cleaned == "" {
		return "file"
	}
	return cleaned
}
