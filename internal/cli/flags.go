package cli

import (
	"fmt"
	"time"

	"codeberg.org/snonux/indelible/internal/anki"
	"codeberg.org/snonux/indelible/internal/gateway"
	"codeberg.org/snonux/indelible/internal/processor"
	"codeberg.org/snonux/indelible/internal/retry"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	Verbose    bool
	ContentDir string
	WordList   string
	Archive    bool
	ListModels bool

	// Pipeline flags
	BatchSize   int
	MaxAttempts int
	RetryDelay  time.Duration
	WordDelay   time.Duration

	// Provider flags
	Provider         string
	Fallback         string
	BreakerThreshold uint32
	BreakerTimeout   time.Duration

	// Gemini flags
	GeminiTextModel  string
	GeminiImageModel string
	GeminiTTSModel   string
	GeminiVoice      string

	// OpenAI flags
	OpenAITextModel  string
	OpenAIImageModel string
	OpenAITTSModel   string
	OpenAIVoice      string
	OpenAIImageSize  string

	// Anki flags
	GenerateAnki bool
	AnkiCSV      bool
	DeckName     string

	// Integrate flags
	SourceDir string
	NotesFile string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	opts := processor.DefaultOptions()
	gw := gateway.DefaultConfig()

	return &Flags{
		ContentDir:       opts.ContentDir,
		WordList:         opts.WordListPath,
		BatchSize:        opts.BatchSize,
		MaxAttempts:      opts.Retry.MaxAttempts,
		RetryDelay:       opts.Retry.Delay,
		WordDelay:        opts.WordDelay,
		Provider:         gw.Provider,
		BreakerThreshold: gw.BreakerThreshold,
		BreakerTimeout:   gw.BreakerTimeout,
		GeminiTextModel:  gw.GeminiText,
		GeminiImageModel: gw.GeminiImage,
		GeminiTTSModel:   gw.GeminiTTS,
		GeminiVoice:      gw.GeminiVoice,
		OpenAITextModel:  gw.OpenAIText,
		OpenAIImageModel: gw.OpenAIImage,
		OpenAITTSModel:   gw.OpenAITTS,
		OpenAIVoice:      gw.OpenAIVoice,
		OpenAIImageSize:  gw.OpenAISize,
		DeckName:         opts.DeckName,
	}
}

// Validate checks flag values that the pipeline cannot work with
func (f *Flags) Validate() error {
	if f.BatchSize < 1 {
		return fmt.Errorf("batch size must be at least 1, got %d", f.BatchSize)
	}
	if f.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1, got %d", f.MaxAttempts)
	}
	if f.RetryDelay < 0 || f.WordDelay < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	switch f.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("unknown provider: %s", f.Provider)
	}
	return nil
}

// AnkiFormat returns the export format selected by --anki and --anki-csv
func (f *Flags) AnkiFormat() string {
	if !f.GenerateAnki {
		return ""
	}
	if f.AnkiCSV {
		return anki.FormatCSV
	}
	return anki.FormatAPKG
}

// Options builds the pipeline options for a run
func (f *Flags) Options() processor.Options {
	return processor.Options{
		ContentDir:   f.ContentDir,
		WordListPath: f.WordList,
		BatchSize:    f.BatchSize,
		Retry: retry.Policy{
			MaxAttempts: f.MaxAttempts,
			Delay:       f.RetryDelay,
		},
		WordDelay:  f.WordDelay,
		Archive:    f.Archive,
		AnkiFormat: f.AnkiFormat(),
		DeckName:   f.DeckName,
	}
}

// GatewayConfig builds the provider configuration, reading API keys from
// the environment or config file
func (f *Flags) GatewayConfig() *gateway.Config {
	return &gateway.Config{
		Provider:         f.Provider,
		Fallback:         f.Fallback,
		GeminiKey:        GetGeminiKey(),
		GeminiText:       f.GeminiTextModel,
		GeminiImage:      f.GeminiImageModel,
		GeminiTTS:        f.GeminiTTSModel,
		GeminiVoice:      f.GeminiVoice,
		OpenAIKey:        GetOpenAIKey(),
		OpenAIText:       f.OpenAITextModel,
		OpenAIImage:      f.OpenAIImageModel,
		OpenAITTS:        f.OpenAITTSModel,
		OpenAIVoice:      f.OpenAIVoice,
		OpenAISize:       f.OpenAIImageSize,
		BreakerThreshold: f.BreakerThreshold,
		BreakerTimeout:   f.BreakerTimeout,
	}
}
