package content

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Relative directories below the content root. Manifest paths always use
// forward slashes so the manifest is portable.
const (
	CreatorImagesDir = "images/creator"
	AIImagesDir      = "images/ai"
	PronounceDir     = "audio/pronounce"
	StoryAudioDir    = "audio/story"

	ManifestFile  = "content.json"
	MnemonicsFile = "mnemonics.json"
	ReportFile    = "report.yaml"
)

// ValidateWord rejects words that cannot be turned into a safe file name
func ValidateWord(word string) error {
	w := strings.TrimSpace(word)
	if w == "" {
		return fmt.Errorf("word cannot be empty")
	}
	if strings.ContainsAny(w, `/\`) || strings.Contains(w, "..") {
		return fmt.Errorf("word %q cannot be used as a file name", word)
	}
	return nil
}

// FileStem is the lowercased word used in every per-word file name
func FileStem(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// PronunciationPath returns audio/pronounce/<word>.mp3
func PronunciationPath(word string) string {
	return path.Join(PronounceDir, FileStem(word)+".mp3")
}

// AIImagePath returns images/ai/<word>.png
func AIImagePath(word string) string {
	return path.Join(AIImagesDir, FileStem(word)+".png")
}

// CreatorImagePath returns images/creator/<word>.png
func CreatorImagePath(word string) string {
	return path.Join(CreatorImagesDir, FileStem(word)+".png")
}

// StoryAudioPath returns audio/story/story_<index>.mp3
func StoryAudioPath(batchIndex int) string {
	return path.Join(StoryAudioDir, fmt.Sprintf("story_%d.mp3", batchIndex))
}

// Layout resolves manifest-relative paths against a content root
type Layout struct {
	Root string
}

// NewLayout creates a layout for the given content root
func NewLayout(root string) Layout {
	return Layout{Root: root}
}

// Abs converts a manifest-relative path to a file system path
func (l Layout) Abs(rel string) string {
	return filepath.Join(l.Root, filepath.FromSlash(rel))
}

// ManifestPath is the location of content.json
func (l Layout) ManifestPath() string {
	return l.Abs(ManifestFile)
}

// MnemonicsPath is the location of the creator mnemonic map
func (l Layout) MnemonicsPath() string {
	return l.Abs(MnemonicsFile)
}

// ReportPath is the location of the run report
func (l Layout) ReportPath() string {
	return l.Abs(ReportFile)
}

// Dirs lists every directory the pipeline writes into
func (l Layout) Dirs() []string {
	return []string{
		l.Root,
		l.Abs(CreatorImagesDir),
		l.Abs(AIImagesDir),
		l.Abs(PronounceDir),
		l.Abs(StoryAudioDir),
	}
}
