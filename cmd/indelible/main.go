package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"codeberg.org/snonux/indelible/internal/cli"
	"codeberg.org/snonux/indelible/internal/gateway"
	"codeberg.org/snonux/indelible/internal/models"
	"codeberg.org/snonux/indelible/internal/processor"
)

var logger *zap.Logger

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := cli.ApplyConfig(cmd); err != nil {
			return err
		}

		var err error
		logger, err = cli.NewLogger(flags.Verbose)
		return err
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	}

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, flags)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, flags *cli.Flags) error {
	ctx := cmd.Context()

	if err := flags.Validate(); err != nil {
		return err
	}

	// Handle --list-models flag
	if flags.ListModels {
		return listModels(ctx, flags)
	}

	gw, err := gateway.New(ctx, flags.GatewayConfig(), logger)
	if err != nil {
		return fmt.Errorf("failed to create %s gateway: %w", flags.Provider, err)
	}

	proc := processor.New(flags.Options(), gw, logger)
	summary, err := proc.Run(ctx)
	if err != nil {
		return err
	}

	summary.Print(cmd.OutOrStdout())
	if summary.ArchivePath != "" {
		fmt.Printf("Previous content archived to: %s\n", summary.ArchivePath)
	}
	if summary.ReportPath != "" {
		fmt.Printf("Run report: %s\n", summary.ReportPath)
	}
	fmt.Printf("\nDone! Content saved to: %s\n", flags.ContentDir)
	return nil
}

func listModels(ctx context.Context, flags *cli.Flags) error {
	key := cli.GetGeminiKey()
	if flags.Provider == "openai" {
		key = cli.GetOpenAIKey()
	}

	lister, err := models.NewLister(flags.Provider, key)
	if err != nil {
		return err
	}
	return lister.ListAvailableModels(ctx, os.Stdout)
}
