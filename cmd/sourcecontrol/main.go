// Command grit is a thin dispatcher over pkg/repo: each subcommand
// parses flags, calls one pkg/repo method, and renders the result.
package main

import (
	"fmt"
	"os"

	"github.com/go-grit/grit/pkg/common/logger"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	verbose  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "grit",
		Short: "A minimal, git-compatible local version-control engine",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newCommitCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging() {
	level := logger.LevelInfo
	switch {
	case verbose:
		level = logger.LevelDebug
	case logLevel == "debug":
		level = logger.LevelDebug
	case logLevel == "warn":
		level = logger.LevelWarn
	case logLevel == "error":
		level = logger.LevelError
	}

	logger.Default = logger.New(logger.Config{
		Level:  level,
		Format: logger.FormatText,
		Output: os.Stderr,
	})
}
