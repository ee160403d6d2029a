package archive

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/snonux/indelible/internal/content"
)

// ArchiveContent moves the content root to <parent>/archive/<name>-<timestamp>
// and copies the creator assets back so the next run can reuse them. It
// returns the archive path, or "" when there was nothing to archive.
func ArchiveContent(layout content.Layout) (string, error) {
	root := filepath.Clean(layout.Root)
	if _, err := os.Stat(root); errors.Is(err, os.ErrNotExist) {
		return "", nil
	}

	archiveDir := filepath.Join(filepath.Dir(root), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	name := filepath.Base(root)
	archivePath := filepath.Join(archiveDir, fmt.Sprintf("%s-%s", name, time.Now().Format("20060102-150405")))

	// Add microseconds to make it unique
	if _, err := os.Stat(archivePath); err == nil {
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%s", name, time.Now().Format("20060102-150405.000000")))
	}

	if err := os.Rename(root, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive content directory: %w", err)
	}

	if err := restoreCreatorAssets(content.NewLayout(archivePath), layout); err != nil {
		return archivePath, err
	}
	return archivePath, nil
}

// restoreCreatorAssets copies images/creator and mnemonics.json from the
// archived tree into a fresh content root
func restoreCreatorAssets(from, to content.Layout) error {
	if err := os.MkdirAll(to.Abs(content.CreatorImagesDir), 0755); err != nil {
		return fmt.Errorf("failed to recreate creator directory: %w", err)
	}

	if err := copyFile(from.MnemonicsPath(), to.MnemonicsPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	srcDir := from.Abs(content.CreatorImagesDir)
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		target := filepath.Join(to.Abs(content.CreatorImagesDir), rel)
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		return copyFile(path, target)
	})
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to restore creator images: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
