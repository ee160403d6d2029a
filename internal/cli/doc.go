// Package cli provides command-line interface setup and configuration
// for the indelible application. It handles flag parsing, command
// creation, logger setup and configuration management using cobra,
// viper and zap.
package cli
