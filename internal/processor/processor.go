package processor

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"codeberg.org/snonux/indelible/internal/anki"
	"codeberg.org/snonux/indelible/internal/archive"
	"codeberg.org/snonux/indelible/internal/batch"
	"codeberg.org/snonux/indelible/internal/content"
	"codeberg.org/snonux/indelible/internal/creator"
	"codeberg.org/snonux/indelible/internal/gateway"
	"codeberg.org/snonux/indelible/internal/retry"
	"codeberg.org/snonux/indelible/internal/stages"
)

// WordFailure records why a word was left out of the manifest
type WordFailure struct {
	Index  int    `yaml:"index"`
	Word   string `yaml:"word"`
	Stage  string `yaml:"stage"`
	Reason string `yaml:"reason"`
}

// BatchFailure records a story batch whose records kept empty story fields
type BatchFailure struct {
	BatchIndex int      `yaml:"batch_index"`
	Words      []string `yaml:"words"`
	Stage      string   `yaml:"stage"`
	Reason     string   `yaml:"reason"`
}

// Summary describes a finished run
type Summary struct {
	RunID    string
	Provider string
	Started  time.Time
	Finished time.Time

	Words         int
	Records       content.Manifest
	Failures      []WordFailure
	Batches       []content.StoryBatch
	BatchFailures []BatchFailure

	ManifestPath string
	ReportPath   string
	ArchivePath  string
	AnkiPath     string
}

// Processor runs the content pipeline
type Processor struct {
	opts     Options
	layout   content.Layout
	stages   *stages.Stages
	provider string
	log      *zap.Logger
}

// New creates a processor that generates content through gw
func New(opts Options, gw gateway.Gateway, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{
		opts:     opts,
		layout:   content.NewLayout(opts.ContentDir),
		stages:   stages.New(gw),
		provider: gw.Name(),
		log:      log,
	}
}

// Run executes the whole pipeline once. Failed words and story batches are
// logged and skipped; an error is only returned when the run is cancelled,
// the word list cannot be read or the content directory or manifest cannot be
// written.
func (p *Processor) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{
		RunID:    uuid.NewString(),
		Provider: p.provider,
		Started:  time.Now(),
	}
	log := p.log.With(zap.String("run_id", summary.RunID))

	if p.opts.Archive {
		archivePath, err := archive.ArchiveContent(p.layout)
		if err != nil {
			return nil, fmt.Errorf("failed to archive content directory: %w", err)
		}
		summary.ArchivePath = archivePath
		if archivePath != "" {
			log.Info("Archived content directory", zap.String("path", archivePath))
		}
	}

	words, err := batch.ReadWordList(p.opts.WordListPath)
	if err != nil {
		return nil, err
	}
	summary.Words = len(words)
	log.Info("Loaded word list", zap.String("path", p.opts.WordListPath), zap.Int("words", len(words)))

	mnemonics, err := creator.LoadMnemonics(p.layout.MnemonicsPath())
	if err != nil {
		log.Warn("Ignoring creator mnemonics", zap.Error(err))
		mnemonics = creator.Mnemonics{}
	}
	library := creator.NewLibrary(p.layout, mnemonics)
	log.Info("Loaded creator mnemonics", zap.Int("mnemonics", library.Len()))

	if err := p.layout.EnsureDirs(); err != nil {
		return nil, err
	}

	records := make(content.Manifest, 0, len(words))
	for i, word := range words {
		if i > 0 {
			if err := retry.Sleep(ctx, p.opts.WordDelay); err != nil {
				return nil, err
			}
		}

		record, failure := p.processWord(ctx, log, i, word, library)
		if failure != nil {
			summary.Failures = append(summary.Failures, *failure)
			continue
		}
		records = append(records, *record)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary.Batches, summary.BatchFailures = p.processStories(ctx, log, records)
	summary.Records = records
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := p.layout.SaveManifest(records); err != nil {
		return nil, err
	}
	summary.ManifestPath = p.layout.ManifestPath()
	summary.Finished = time.Now()
	log.Info("Saved manifest",
		zap.String("path", summary.ManifestPath),
		zap.Int("records", len(records)),
		zap.Int("failed", len(summary.Failures)))

	if err := WriteReport(p.layout.ReportPath(), summary); err != nil {
		log.Warn("Failed to write run report", zap.Error(err))
	} else {
		summary.ReportPath = p.layout.ReportPath()
	}

	if p.opts.AnkiFormat != "" {
		ankiPath, err := anki.Export(records, p.layout, anki.ExportOptions{
			Format:   p.opts.AnkiFormat,
			DeckName: p.opts.DeckName,
		})
		if err != nil {
			log.Warn("Failed to export Anki deck", zap.Error(err))
		} else {
			summary.AnkiPath = ankiPath
		}
	}

	return summary, nil
}

// Print writes a human readable summary
func (s *Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "\n=== Content Generation Summary ===\n")
	fmt.Fprintf(w, "Run: %s (%s)\n", s.RunID, s.Provider)
	fmt.Fprintf(w, "Total words: %d\n", s.Words)
	fmt.Fprintf(w, "Processed: %d\n", len(s.Records))
	if len(s.Failures) > 0 {
		fmt.Fprintf(w, "Errors: %d\n", len(s.Failures))
		for _, f := range s.Failures {
			fmt.Fprintf(w, "  %s (%s): %s\n", f.Word, f.Stage, f.Reason)
		}
	}
	fmt.Fprintf(w, "Stories: %d", len(s.Batches))
	if len(s.BatchFailures) > 0 {
		fmt.Fprintf(w, " (%d failed)", len(s.BatchFailures))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Manifest: %s\n", s.ManifestPath)
	if s.AnkiPath != "" {
		fmt.Fprintf(w, "Anki deck: %s\n", s.AnkiPath)
	}
	fmt.Fprintf(w, "==================================\n")
}
