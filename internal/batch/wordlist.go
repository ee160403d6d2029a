package batch

import (
	"fmt"
	"os"
	"strings"
)

// ReadWordList reads vocabulary words from a file, one word per line.
// Surrounding whitespace is trimmed and blank lines are ignored; the order
// of the file is preserved.
func ReadWordList(filename string) ([]string, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}

	return ParseWordList(string(content)), nil
}

// ParseWordList splits line-oriented text into words
func ParseWordList(s string) []string {
	var words []string
	for _, line := range splitLines(s) {
		if word := strings.TrimSpace(line); word != "" {
			words = append(words, word)
		}
	}
	return words
}

// splitLines splits a string by newlines, dropping carriage returns
func splitLines(s string) []string {
	var lines []string
	var current strings.Builder
	for _, r := range s {
		if r == '\n' {
			lines = append(lines, current.String())
			current.Reset()
		} else if r != '\r' {
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
