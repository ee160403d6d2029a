package creator

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/indelible/internal/content"
)

// Mnemonics maps an uppercased word to its hand-authored mnemonic
type Mnemonics map[string]string

// LoadMnemonics reads the creator mnemonic map. A missing file yields an
// empty map; a malformed file is an error.
func LoadMnemonics(path string) (Mnemonics, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Mnemonics{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read creator mnemonics: %w", err)
	}

	var m Mnemonics
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse creator mnemonics %s: %w", path, err)
	}
	if m == nil {
		m = Mnemonics{}
	}
	return m, nil
}

// Save writes the map as indented JSON
func (m Mnemonics) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal creator mnemonics: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write creator mnemonics: %w", err)
	}
	return nil
}

// Library answers whether a word has a complete pair of creator assets.
// It is read-only after construction.
type Library struct {
	layout    content.Layout
	mnemonics Mnemonics
}

// NewLibrary creates a library over the content root and mnemonic map
func NewLibrary(layout content.Layout, mnemonics Mnemonics) *Library {
	if mnemonics == nil {
		mnemonics = Mnemonics{}
	}
	return &Library{layout: layout, mnemonics: mnemonics}
}

// Lookup returns the creator option for word when both the creator image
// exists and the map has a mnemonic for it. It has no side effects.
func (l *Library) Lookup(word string) (content.MnemonicOption, bool) {
	text, ok := l.mnemonics[strings.ToUpper(strings.TrimSpace(word))]
	if !ok || text == "" {
		return content.MnemonicOption{}, false
	}

	imagePath := content.CreatorImagePath(word)
	info, err := os.Stat(l.layout.Abs(imagePath))
	if err != nil || info.IsDir() {
		return content.MnemonicOption{}, false
	}

	return content.MnemonicOption{
		Type:         content.OptionCreator,
		MnemonicText: text,
		ImagePath:    imagePath,
	}, true
}

// Len returns the number of mnemonics loaded
func (l *Library) Len() int {
	return len(l.mnemonics)
}
