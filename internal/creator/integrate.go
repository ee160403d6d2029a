package creator

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"codeberg.org/snonux/indelible/internal/content"
)

var (
	sectionSeparator = regexp.MustCompile(`={40,}`)
	imageFilename    = regexp.MustCompile(`^\d+-(.+)\.png$`)
)

// IntegrateResult summarizes an asset import
type IntegrateResult struct {
	ImagesCopied    int
	MnemonicsLoaded int
	MnemonicsPath   string
}

// WordFromFilename extracts the word from an exported image name such as
// "1738756799450-reticent.png"
func WordFromFilename(name string) (string, bool) {
	m := imageFilename.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ParseNotes reads a notes file made of sections separated by a line of at
// least 40 '=' characters. The first line of a section is the word and the
// first line starting with '?' after a "Mnemonics:" line is its mnemonic.
func ParseNotes(r io.Reader) (Mnemonics, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}

	m := Mnemonics{}
	for _, section := range sectionSeparator.Split(string(data), -1) {
		lines := strings.Split(strings.TrimSpace(section), "\n")
		if len(lines) < 2 {
			continue
		}

		word := strings.ToUpper(strings.TrimSpace(lines[0]))
		if word == "" {
			continue
		}
		if text := firstMnemonic(lines[1:]); text != "" {
			m[word] = text
		}
	}
	return m, nil
}

func firstMnemonic(lines []string) string {
	inMnemonics := false
	for _, line := range lines {
		if strings.Contains(line, "Mnemonics:") {
			inMnemonics = true
			continue
		}

		line = strings.TrimSpace(line)
		if inMnemonics && strings.HasPrefix(line, "?") {
			if text := strings.TrimSpace(strings.TrimPrefix(line, "?")); text != "" {
				return text
			}
		}
	}
	return ""
}

// Integrate copies exported creator images from sourceDir into the content
// root under their lowercased word and merges the mnemonics parsed from
// notesPath into the content root's mnemonics.json. notesPath may be empty.
func Integrate(sourceDir, notesPath string, layout content.Layout, log *zap.Logger) (*IntegrateResult, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(layout.Abs(content.CreatorImagesDir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create creator image directory: %w", err)
	}

	mnemonics, err := LoadMnemonics(layout.MnemonicsPath())
	if err != nil {
		return nil, err
	}

	loaded := 0
	if notesPath != "" {
		f, err := os.Open(notesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open notes: %w", err)
		}
		notes, err := ParseNotes(bufio.NewReader(f))
		f.Close()
		if err != nil {
			return nil, err
		}
		for word, text := range notes {
			mnemonics[word] = text
		}
		loaded = len(notes)
		log.Info("Loaded creator notes", zap.String("path", notesPath), zap.Int("mnemonics", loaded))
	}

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	copied := 0
	for _, name := range names {
		word, ok := WordFromFilename(name)
		if !ok {
			continue
		}
		if err := content.ValidateWord(word); err != nil {
			log.Warn("Skipping creator image", zap.String("file", name), zap.Error(err))
			continue
		}

		target := layout.Abs(content.CreatorImagePath(word))
		if err := copyFile(filepath.Join(sourceDir, name), target); err != nil {
			return nil, err
		}
		copied++
		log.Debug("Copied creator image", zap.String("from", name), zap.String("to", filepath.Base(target)))
	}

	if err := mnemonics.Save(layout.MnemonicsPath()); err != nil {
		return nil, err
	}

	return &IntegrateResult{
		ImagesCopied:    copied,
		MnemonicsLoaded: loaded,
		MnemonicsPath:   layout.MnemonicsPath(),
	}, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}
