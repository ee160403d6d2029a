package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDirs creates the content root and all media directories
func (l Layout) EnsureDirs() error {
	for _, dir := range l.Dirs() {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// WriteMedia writes generated media below the content root
func (l Layout) WriteMedia(m Media) error {
	if len(m.Data) == 0 {
		return fmt.Errorf("no data to write for %s", m.Path)
	}

	target := l.Abs(m.Path)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := os.WriteFile(target, m.Data, 0644); err != nil {
		return fmt.Errorf("failed to write media file %s: %w", m.Path, err)
	}
	return nil
}

// SaveManifest writes the manifest as indented JSON
func (l Layout) SaveManifest(m Manifest) error {
	if m == nil {
		m = Manifest{}
	}
	for i := range m {
		if m[i].Options == nil {
			m[i].Options = []MnemonicOption{}
		}
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	if err := os.WriteFile(l.ManifestPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// LoadManifest reads a previously written manifest
func (l Layout) LoadManifest() (Manifest, error) {
	data, err := os.ReadFile(l.ManifestPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return m, nil
}
