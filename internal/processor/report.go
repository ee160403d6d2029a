package processor

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"codeberg.org/snonux/indelible/internal/content"
)

// Report is the YAML run report written next to the manifest
type Report struct {
	RunID         string               `yaml:"run_id"`
	Provider      string               `yaml:"provider"`
	Started       time.Time            `yaml:"started"`
	Finished      time.Time            `yaml:"finished"`
	Words         int                  `yaml:"words"`
	Succeeded     int                  `yaml:"succeeded"`
	Failed        []WordFailure        `yaml:"failed,omitempty"`
	Stories       []content.StoryBatch `yaml:"stories,omitempty"`
	FailedStories []BatchFailure       `yaml:"failed_stories,omitempty"`
}

// NewReport builds the report for a finished run
func NewReport(s *Summary) *Report {
	return &Report{
		RunID:         s.RunID,
		Provider:      s.Provider,
		Started:       s.Started,
		Finished:      s.Finished,
		Words:         s.Words,
		Succeeded:     len(s.Records),
		Failed:        s.Failures,
		Stories:       s.Batches,
		FailedStories: s.BatchFailures,
	}
}

// WriteReport writes the run report for s to path
func WriteReport(path string, s *Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(NewReport(s)); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

// LoadReport reads a run report
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &r, nil
}
