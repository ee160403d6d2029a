package anki

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"codeberg.org/snonux/indelible/internal/content"
)

// GeneratorOptions configures the CSV export
type GeneratorOptions struct {
	OutputPath     string // Output CSV file path
	MediaFolder    string // Copy referenced media here when set
	IncludeHeaders bool   // Include CSV headers
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		OutputPath:     "anki_import.csv",
		IncludeHeaders: true,
	}
}

// Generator creates Anki-compatible CSV import files
type Generator struct {
	options *GeneratorOptions
	layout  content.Layout
	cards   []Card
}

// NewGenerator creates a CSV generator reading media from layout
func NewGenerator(layout content.Layout, options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{
		options: options,
		layout:  layout,
	}
}

// AddCard adds a card to the collection
func (g *Generator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// GenerateCSV writes one row per card. Media fields reference the flattened
// media names; with MediaFolder set the files are copied there under those
// names so they can be dropped into collection.media.
func (g *Generator) GenerateCSV() error {
	file, err := os.Create(g.options.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if g.options.IncludeHeaders {
		if err := writer.Write(FieldNames); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, card := range g.cards {
		if err := writer.Write(card.Fields()); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}

	if g.options.MediaFolder != "" {
		return g.copyMedia(g.options.MediaFolder)
	}
	return nil
}

func (g *Generator) copyMedia(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create media directory: %w", err)
	}

	seen := make(map[string]bool)
	for _, card := range g.cards {
		for _, rel := range card.MediaFiles() {
			if seen[rel] {
				continue
			}
			seen[rel] = true

			src := g.layout.Abs(rel)
			if !fileExists(src) {
				continue
			}
			if err := copyFile(src, filepath.Join(dir, MediaName(rel))); err != nil {
				return fmt.Errorf("failed to copy media file %s: %w", rel, err)
			}
		}
	}
	return nil
}

// Stats returns statistics about the card collection
func (g *Generator) Stats() (totalCards, withCreator, withStory int) {
	totalCards = len(g.cards)

	for _, card := range g.cards {
		if card.CreatorMnemonic != "" {
			withCreator++
		}
		if card.Story != "" {
			withStory++
		}
	}

	return
}
