// Package main provides the infomarc CLI entry point.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	verbose     bool

	logger = zap.NewNop()
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logger.Sync()
	if err != nil {
		os.Exit(reportError(err))
	}
}

var rootCmd = &cobra.Command{
	Use:   "infomarc",
	Short: "Export Zotero items as MARCXML for Infoscience",
	Long: `infomarc converts a Zotero export into a MARCXML collection ready for
ingestion into the Infoscience repository.

The export must contain one configuration item (type "bill", title
"Infoscience") naming the lab in its section field and the creator email in
its rights field. Lab and author registries are fetched from the Infoscience
server, read from local files, or taken from the local cache.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogger,
}

func init() {
	// Load .env file if present (for INFOMARC_* overrides)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug details to stderr")
	rootCmd.Version = Version
}

func setupLogger(cmd *cobra.Command, args []string) error {
	l, err := newLogger(verbose)
	if err != nil {
		return withCode(ExitError, err)
	}
	logger = l
	return nil
}
