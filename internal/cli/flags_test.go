package cli

import (
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"

	"codeberg.org/snonux/indelible/internal/anki"
	"codeberg.org/snonux/indelible/internal/retry"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	// Test default values
	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"ContentDir", flags.ContentDir, "./content"},
		{"WordList", flags.WordList, "./wordlist.txt"},
		{"BatchSize", flags.BatchSize, 5},
		{"MaxAttempts", flags.MaxAttempts, 3},
		{"RetryDelay", flags.RetryDelay, time.Second},
		{"WordDelay", flags.WordDelay, 500 * time.Millisecond},
		{"Provider", flags.Provider, "gemini"},
		{"BreakerThreshold", flags.BreakerThreshold, uint32(0)},
		{"GeminiTextModel", flags.GeminiTextModel, "gemini-2.5-flash"},
		{"GeminiImageModel", flags.GeminiImageModel, "gemini-2.5-flash-image-preview"},
		{"GeminiTTSModel", flags.GeminiTTSModel, "gemini-2.5-flash-preview-tts"},
		{"GeminiVoice", flags.GeminiVoice, "Kore"},
		{"OpenAITTSModel", flags.OpenAITTSModel, "gpt-4o-mini-tts"},
		{"OpenAIImageModel", flags.OpenAIImageModel, "dall-e-3"},
		{"OpenAIImageSize", flags.OpenAIImageSize, "1024x1024"},
		{"DeckName", flags.DeckName, "Indelible Vocabulary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	// Test boolean defaults (should be false)
	boolTests := []struct {
		name  string
		value bool
	}{
		{"Verbose", flags.Verbose},
		{"Archive", flags.Archive},
		{"ListModels", flags.ListModels},
		{"GenerateAnki", flags.GenerateAnki},
		{"AnkiCSV", flags.AnkiCSV},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value {
				t.Errorf("%s = %v, want false", tt.name, tt.value)
			}
		})
	}

	// Test string defaults (should be empty)
	stringTests := []struct {
		name  string
		value string
	}{
		{"CfgFile", flags.CfgFile},
		{"Fallback", flags.Fallback},
		{"SourceDir", flags.SourceDir},
		{"NotesFile", flags.NotesFile},
	}

	for _, tt := range stringTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Errorf("%s = %v, want empty string", tt.name, tt.value)
			}
		})
	}
}

func TestFlagsValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Flags)
		wantErr bool
	}{
		{"defaults", func(f *Flags) {}, false},
		{"openai provider", func(f *Flags) { f.Provider = "openai" }, false},
		{"batch size one", func(f *Flags) { f.BatchSize = 1 }, false},
		{"zero batch size", func(f *Flags) { f.BatchSize = 0 }, true},
		{"zero attempts", func(f *Flags) { f.MaxAttempts = 0 }, true},
		{"negative retry delay", func(f *Flags) { f.RetryDelay = -time.Second }, true},
		{"negative word delay", func(f *Flags) { f.WordDelay = -time.Second }, true},
		{"unknown provider", func(f *Flags) { f.Provider = "espeak" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := NewFlags()
			tt.modify(flags)
			err := flags.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAnkiFormat(t *testing.T) {
	tests := []struct {
		anki, csv bool
		expected  string
	}{
		{false, false, ""},
		{false, true, ""},
		{true, false, anki.FormatAPKG},
		{true, true, anki.FormatCSV},
	}

	for _, tt := range tests {
		flags := NewFlags()
		flags.GenerateAnki = tt.anki
		flags.AnkiCSV = tt.csv
		if got := flags.AnkiFormat(); got != tt.expected {
			t.Errorf("AnkiFormat(anki=%v, csv=%v) = %q, want %q", tt.anki, tt.csv, got, tt.expected)
		}
	}
}

func TestFlagsOptions(t *testing.T) {
	flags := NewFlags()
	flags.ContentDir = "/tmp/content"
	flags.WordList = "/tmp/words.txt"
	flags.BatchSize = 4
	flags.MaxAttempts = 2
	flags.RetryDelay = 10 * time.Millisecond
	flags.WordDelay = 0
	flags.Archive = true
	flags.GenerateAnki = true
	flags.DeckName = "GRE"

	opts := flags.Options()

	if opts.ContentDir != "/tmp/content" || opts.WordListPath != "/tmp/words.txt" {
		t.Errorf("Unexpected paths: %+v", opts)
	}
	if opts.BatchSize != 4 {
		t.Errorf("BatchSize = %d, want 4", opts.BatchSize)
	}
	if want := (retry.Policy{MaxAttempts: 2, Delay: 10 * time.Millisecond}); opts.Retry != want {
		t.Errorf("Retry = %+v, want %+v", opts.Retry, want)
	}
	if opts.WordDelay != 0 {
		t.Errorf("WordDelay = %v, want 0", opts.WordDelay)
	}
	if !opts.Archive {
		t.Error("Archive should be set")
	}
	if opts.AnkiFormat != anki.FormatAPKG || opts.DeckName != "GRE" {
		t.Errorf("Unexpected Anki options: %q %q", opts.AnkiFormat, opts.DeckName)
	}
}

func TestFlagsGatewayConfig(t *testing.T) {
	resetViper(t)
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("OPENAI_API_KEY", "openai-key")

	flags := NewFlags()
	flags.Fallback = "openai"
	flags.GeminiVoice = "Puck"
	flags.OpenAIImageSize = "512x512"
	flags.BreakerThreshold = 4

	cfg := flags.GatewayConfig()

	if cfg.Provider != "gemini" || cfg.Fallback != "openai" {
		t.Errorf("Unexpected providers: %q %q", cfg.Provider, cfg.Fallback)
	}
	if cfg.GeminiKey != "gemini-key" || cfg.OpenAIKey != "openai-key" {
		t.Errorf("API keys not read from environment: %q %q", cfg.GeminiKey, cfg.OpenAIKey)
	}
	if cfg.GeminiVoice != "Puck" || cfg.OpenAISize != "512x512" {
		t.Errorf("Model settings not copied: %+v", cfg)
	}
	if cfg.BreakerThreshold != 4 {
		t.Errorf("BreakerThreshold = %d, want 4", cfg.BreakerThreshold)
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		verbose bool
		debug   bool
	}{
		{false, false},
		{true, true},
	}

	for _, tt := range tests {
		logger, err := NewLogger(tt.verbose)
		if err != nil {
			t.Fatalf("NewLogger(%v) failed: %v", tt.verbose, err)
		}
		if got := logger.Core().Enabled(zapcore.DebugLevel); got != tt.debug {
			t.Errorf("NewLogger(%v) debug enabled = %v, want %v", tt.verbose, got, tt.debug)
		}
		if !logger.Core().Enabled(zapcore.InfoLevel) {
			t.Errorf("NewLogger(%v) should log info", tt.verbose)
		}
	}
}
