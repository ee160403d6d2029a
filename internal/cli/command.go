package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/indelible/internal"
	"codeberg.org/snonux/indelible/internal/content"
	"codeberg.org/snonux/indelible/internal/creator"
)

// configKeys maps flag names to their keys in the config file
var configKeys = map[string]string{
	"content-dir":        "content.directory",
	"wordlist":           "content.wordlist",
	"batch-size":         "pipeline.batch_size",
	"max-attempts":       "pipeline.max_attempts",
	"retry-delay":        "pipeline.retry_delay",
	"word-delay":         "pipeline.word_delay",
	"provider":           "provider.name",
	"fallback":           "provider.fallback",
	"breaker-threshold":  "provider.breaker_threshold",
	"breaker-timeout":    "provider.breaker_timeout",
	"gemini-text-model":  "gemini.text_model",
	"gemini-image-model": "gemini.image_model",
	"gemini-tts-model":   "gemini.tts_model",
	"gemini-voice":       "gemini.voice",
	"openai-text-model":  "openai.text_model",
	"openai-image-model": "openai.image_model",
	"openai-tts-model":   "openai.tts_model",
	"openai-voice":       "openai.voice",
	"openai-image-size":  "openai.image_size",
	"deck-name":          "anki.deck_name",
}

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "indelible",
		Short: "Mnemonic vocabulary content generator",
		Long: `indelible turns a word list into study material for vocabulary learning.

For every word it generates a definition and example sentence, a spoken
pronunciation, a mnemonic with an illustration, and for every batch of words
a short story with narration. The results are written to a content directory
together with a content.json manifest describing them.

Examples:
  indelible                                   # Process ./wordlist.txt into ./content
  indelible -w words.txt -d out --batch-size 4
  indelible --anki --deck-name "GRE Words"    # Also export an Anki package
  indelible integrate --source exports --notes notes.txt`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	rootCmd.AddCommand(createIntegrateCommand(flags))

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.indelible.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVarP(&flags.ContentDir, "content-dir", "d", flags.ContentDir, "Content directory")

	// Local flags
	cmd.Flags().StringVarP(&flags.WordList, "wordlist", "w", flags.WordList, "Word list file (one word per line)")
	cmd.Flags().IntVarP(&flags.BatchSize, "batch-size", "b", flags.BatchSize, "Words per story batch")
	cmd.Flags().IntVar(&flags.MaxAttempts, "max-attempts", flags.MaxAttempts, "Attempts per generation stage")
	cmd.Flags().DurationVar(&flags.RetryDelay, "retry-delay", flags.RetryDelay, "Delay between attempts")
	cmd.Flags().DurationVar(&flags.WordDelay, "word-delay", flags.WordDelay, "Delay between words")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Archive an existing content directory before the run")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available models for the configured provider")

	// Provider flags
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Generation provider: gemini or openai")
	cmd.Flags().StringVar(&flags.Fallback, "fallback", "", "Fallback provider used when the primary fails")
	cmd.Flags().Uint32Var(&flags.BreakerThreshold, "breaker-threshold", flags.BreakerThreshold, "Consecutive failures that open the circuit breaker (0 disables it)")
	cmd.Flags().DurationVar(&flags.BreakerTimeout, "breaker-timeout", flags.BreakerTimeout, "How long an open circuit breaker rejects requests")

	// Gemini flags
	cmd.Flags().StringVar(&flags.GeminiTextModel, "gemini-text-model", flags.GeminiTextModel, "Gemini model for text and JSON")
	cmd.Flags().StringVar(&flags.GeminiImageModel, "gemini-image-model", flags.GeminiImageModel, "Gemini model for images")
	cmd.Flags().StringVar(&flags.GeminiTTSModel, "gemini-tts-model", flags.GeminiTTSModel, "Gemini model for speech")
	cmd.Flags().StringVar(&flags.GeminiVoice, "gemini-voice", flags.GeminiVoice, "Gemini prebuilt voice")

	// OpenAI flags
	cmd.Flags().StringVar(&flags.OpenAITextModel, "openai-text-model", flags.OpenAITextModel, "OpenAI chat model")
	cmd.Flags().StringVar(&flags.OpenAIImageModel, "openai-image-model", flags.OpenAIImageModel, "OpenAI image model: dall-e-2 or dall-e-3")
	cmd.Flags().StringVar(&flags.OpenAITTSModel, "openai-tts-model", flags.OpenAITTSModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, coral, echo, fable, onyx, nova, sage, shimmer")
	cmd.Flags().StringVar(&flags.OpenAIImageSize, "openai-image-size", flags.OpenAIImageSize, "Image size: 256x256, 512x512, 1024x1024 (dall-e-3: also 1024x1792, 1792x1024)")

	// Anki flags
	cmd.Flags().BoolVar(&flags.GenerateAnki, "anki", false, "Generate Anki import file (APKG format by default, use --anki-csv for legacy CSV)")
	cmd.Flags().BoolVar(&flags.AnkiCSV, "anki-csv", false, "Generate legacy CSV format instead of APKG when using --anki")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Deck name for APKG export")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	for name, key := range configKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			flag = cmd.PersistentFlags().Lookup(name)
		}
		viper.BindPFlag(key, flag)
	}
}

// ApplyConfig copies config file and environment values into every flag the
// user did not set on the command line
func ApplyConfig(cmd *cobra.Command) error {
	var errs []error
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		key, ok := configKeys[flag.Name]
		if !ok || flag.Changed || !viper.IsSet(key) {
			return
		}
		if err := flag.Value.Set(viper.GetString(key)); err != nil {
			errs = append(errs, fmt.Errorf("invalid value for %s: %w", key, err))
		}
	})
	return errors.Join(errs...)
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".indelible" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".indelible")
	}

	// Environment variables
	viper.SetEnvPrefix("INDELIBLE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	for _, env := range []string{"GEMINI_API_KEY", "GOOGLE_AI_API_KEY"} {
		if key := os.Getenv(env); key != "" {
			return key
		}
	}
	return viper.GetString("gemini.api_key")
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("openai.api_key")
}

func createIntegrateCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "integrate",
		Short: "Import creator mnemonic images and notes",
		Long: `integrate copies exported creator images named <digits>-<word>.png into
the content directory and merges the mnemonics found in a notes file into
mnemonics.json. The next run offers them as creator options.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIntegrate(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.SourceDir, "source", "s", "", "Directory with exported creator images")
	cmd.Flags().StringVarP(&flags.NotesFile, "notes", "n", "", "Notes file with creator mnemonics")
	cmd.MarkFlagRequired("source")

	return cmd
}

func runIntegrate(cmd *cobra.Command, flags *Flags) error {
	log, err := NewLogger(flags.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	layout := content.NewLayout(flags.ContentDir)
	result, err := creator.Integrate(flags.SourceDir, flags.NotesFile, layout, log)
	if err != nil {
		return fmt.Errorf("failed to integrate creator assets: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Copied %d creator images\n", result.ImagesCopied)
	fmt.Fprintf(out, "Loaded %d mnemonics into %s\n", result.MnemonicsLoaded, result.MnemonicsPath)
	return nil
}
