package processor

import (
	"time"

	"codeberg.org/snonux/indelible/internal/retry"
)

// Options configures a pipeline run. It is built once before the run and
// never changed afterwards.
type Options struct {
	ContentDir   string
	WordListPath string

	BatchSize int           // words per story
	Retry     retry.Policy  // applied to every stage call
	WordDelay time.Duration // pause between consecutive words

	Archive    bool   // archive an existing content directory first
	AnkiFormat string // "apkg", "csv" or "" for no export
	DeckName   string
}

// DefaultOptions returns the default run configuration
func DefaultOptions() Options {
	return Options{
		ContentDir:   "./content",
		WordListPath: "./wordlist.txt",
		BatchSize:    5,
		Retry:        retry.DefaultPolicy(),
		WordDelay:    500 * time.Millisecond,
		DeckName:     "Indelible Vocabulary",
	}
}
