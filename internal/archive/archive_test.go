package archive

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/snonux/indelible/internal/content"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
}

func TestArchiveContent(t *testing.T) {
	tmpDir := t.TempDir()
	root := filepath.Join(tmpDir, "content")
	layout := content.NewLayout(root)

	writeFile(t, layout.ManifestPath(), "[]")
	writeFile(t, layout.Abs("images/ai/reticent.png"), "ai")
	writeFile(t, layout.Abs("audio/story/story_1.mp3"), "story")
	writeFile(t, layout.Abs("images/creator/pugnacious.png"), "creator")
	writeFile(t, layout.MnemonicsPath(), `{"PUGNACIOUS": "PUG + ACE + SHUSH"}`)

	archivePath, err := ArchiveContent(layout)
	if err != nil {
		t.Fatalf("ArchiveContent failed: %v", err)
	}

	if filepath.Dir(archivePath) != filepath.Join(tmpDir, "archive") {
		t.Errorf("Archive created in wrong place: %s", archivePath)
	}
	if !strings.HasPrefix(filepath.Base(archivePath), "content-") {
		t.Errorf("Archive name should start with 'content-', got %s", filepath.Base(archivePath))
	}

	// Generated content moved away
	for _, rel := range []string{content.ManifestFile, "images/ai/reticent.png", "audio/story/story_1.mp3"} {
		if _, err := os.Stat(layout.Abs(rel)); !os.IsNotExist(err) {
			t.Errorf("%s still present after archiving", rel)
		}
		if _, err := os.Stat(content.NewLayout(archivePath).Abs(rel)); err != nil {
			t.Errorf("%s missing from archive: %v", rel, err)
		}
	}

	// Creator assets copied back
	data, err := os.ReadFile(layout.Abs("images/creator/pugnacious.png"))
	if err != nil || string(data) != "creator" {
		t.Errorf("Creator image not restored: %q, %v", data, err)
	}
	data, err = os.ReadFile(layout.MnemonicsPath())
	if err != nil || !strings.Contains(string(data), "PUGNACIOUS") {
		t.Errorf("Mnemonics not restored: %q, %v", data, err)
	}
}

func TestArchiveContent_NoCreatorAssets(t *testing.T) {
	root := filepath.Join(t.TempDir(), "content")
	layout := content.NewLayout(root)
	writeFile(t, layout.ManifestPath(), "[]")

	if _, err := ArchiveContent(layout); err != nil {
		t.Fatalf("ArchiveContent failed: %v", err)
	}

	if _, err := os.Stat(layout.MnemonicsPath()); !os.IsNotExist(err) {
		t.Error("mnemonics.json should not be created when none existed")
	}
	if info, err := os.Stat(layout.Abs(content.CreatorImagesDir)); err != nil || !info.IsDir() {
		t.Error("creator image directory should be recreated")
	}
}

func TestArchiveContent_Missing(t *testing.T) {
	layout := content.NewLayout(filepath.Join(t.TempDir(), "missing"))

	archivePath, err := ArchiveContent(layout)
	if err != nil {
		t.Fatalf("ArchiveContent failed: %v", err)
	}
	if archivePath != "" {
		t.Errorf("Expected no archive for a missing directory, got %s", archivePath)
	}
}

func TestArchiveContent_Twice(t *testing.T) {
	tmpDir := t.TempDir()
	layout := content.NewLayout(filepath.Join(tmpDir, "content"))

	writeFile(t, layout.ManifestPath(), "[1]")
	first, err := ArchiveContent(layout)
	if err != nil {
		t.Fatalf("first ArchiveContent failed: %v", err)
	}

	writeFile(t, layout.ManifestPath(), "[2]")
	second, err := ArchiveContent(layout)
	if err != nil {
		t.Fatalf("second ArchiveContent failed: %v", err)
	}

	if first == second {
		t.Errorf("Archives must not collide: %s", first)
	}
	entries, err := os.ReadDir(filepath.Join(tmpDir, "archive"))
	if err != nil {
		t.Fatalf("Failed to read archive directory: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 archives, got %d", len(entries))
	}
}
