package anki

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"codeberg.org/snonux/indelible/internal/content"
)

// Export formats
const (
	FormatAPKG = "apkg"
	FormatCSV  = "csv"
)

// ExportOptions selects the export format and deck name
type ExportOptions struct {
	Format   string // FormatAPKG or FormatCSV
	DeckName string
}

var unsafeDeckChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Export writes the manifest as an Anki deck into the content root and
// returns the written path
func Export(manifest content.Manifest, layout content.Layout, opts ExportOptions) (string, error) {
	cards := make([]Card, 0, len(manifest))
	for _, r := range manifest {
		cards = append(cards, CardFromRecord(r))
	}

	switch opts.Format {
	case FormatCSV:
		outputPath := filepath.Join(layout.Root, "anki_import.csv")
		gen := NewGenerator(layout, &GeneratorOptions{
			OutputPath:     outputPath,
			MediaFolder:    filepath.Join(layout.Root, "anki_media"),
			IncludeHeaders: true,
		})
		for _, card := range cards {
			gen.AddCard(card)
		}
		if err := gen.GenerateCSV(); err != nil {
			return "", err
		}
		return outputPath, nil

	case FormatAPKG, "":
		deckName := opts.DeckName
		if deckName == "" {
			deckName = "Indelible Vocabulary"
		}
		fileName := strings.Trim(unsafeDeckChars.ReplaceAllString(strings.ToLower(deckName), "_"), "_")
		if fileName == "" {
			fileName = "deck"
		}
		outputPath := filepath.Join(layout.Root, fileName+".apkg")

		gen := NewAPKGGenerator(deckName, layout)
		for _, card := range cards {
			gen.AddCard(card)
		}
		if err := gen.GenerateAPKG(outputPath); err != nil {
			return "", err
		}
		return outputPath, nil

	default:
		return "", fmt.Errorf("unknown Anki export format: %s", opts.Format)
	}
}
