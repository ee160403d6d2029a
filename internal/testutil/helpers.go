package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CreateContentDirectory creates a temporary content root with the media
// directory layout
func CreateContentDirectory(t *testing.T) string {
	t.Helper()

	root := filepath.Join(t.TempDir(), "content")
	dirs := []string{
		"images/creator",
		"images/ai",
		"audio/pronounce",
		"audio/story",
	}

	for _, dir := range dirs {
		path := filepath.Join(root, filepath.FromSlash(dir))
		if err := os.MkdirAll(path, 0755); err != nil {
			t.Fatalf("Failed to create test directory %s: %v", path, err)
		}
	}

	return root
}

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// CreateWordList writes one word per line and returns the file path
func CreateWordList(t *testing.T, dir string, words ...string) string {
	t.Helper()

	path := filepath.Join(dir, "wordlist.txt")
	CreateTestFile(t, path, []byte(strings.Join(words, "\n")+"\n"))
	return path
}

// CreateCreatorAssets writes a creator image and mnemonics.json entry for
// every word in mnemonics
func CreateCreatorAssets(t *testing.T, root string, mnemonics map[string]string) {
	t.Helper()

	upper := make(map[string]string, len(mnemonics))
	for word, text := range mnemonics {
		upper[strings.ToUpper(word)] = text
		image := filepath.Join(root, "images", "creator", strings.ToLower(word)+".png")
		CreateTestFile(t, image, ImageData)
	}

	data, err := json.MarshalIndent(upper, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal mnemonics: %v", err)
	}
	CreateTestFile(t, filepath.Join(root, "mnemonics.json"), data)
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}

// AssertFileContent checks if a file has expected content
func AssertFileContent(t *testing.T, path string, expected []byte) {
	t.Helper()

	actual, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	if string(actual) != string(expected) {
		t.Errorf("File content mismatch in %s\nExpected: %q\nActual: %q", path, expected, actual)
	}
}

// AssertFileContains checks if a file contains a substring
func AssertFileContains(t *testing.T, path string, substring string) {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	if !strings.Contains(string(content), substring) {
		t.Errorf("File %s does not contain expected substring: %q", path, substring)
	}
}

// ListFiles returns every regular file below root as a slash separated
// relative path
func ListFiles(t *testing.T, root string) []string {
	t.Helper()

	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to list %s: %v", root, err)
	}

	return files
}
