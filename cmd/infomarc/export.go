package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/epfl-sisb/infomarc/internal/config"
	"github.com/epfl-sisb/infomarc/internal/export"
	"github.com/epfl-sisb/infomarc/internal/importer"
)

var (
	exportOutput          string
	exportIncludeAbstract bool
	exportBatchID         bool
	exportValidated       bool
	exportNotes           bool
	exportExclude         []string
	exportRegistry        registryFlags
)

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write MARCXML to a file instead of stdout")
	exportCmd.Flags().BoolVar(&exportIncludeAbstract, "include-abstract", true, "Export abstracts (520__)")
	exportCmd.Flags().BoolVar(&exportBatchID, "batch-id", true, "Export the import batch identifier (970__)")
	exportCmd.Flags().BoolVar(&exportValidated, "validated", false, "Mark records as validated (981__, 961__)")
	exportCmd.Flags().BoolVar(&exportNotes, "export-notes", true, "Accepted for compatibility; notes are not exported")
	exportCmd.Flags().StringSliceVar(&exportExclude, "exclude", nil, "Item types never exported (default from config)")
	exportCmd.Flags().BoolVar(&exportRegistry.offline, "offline", false, "Use the cached registries")
	exportRegistry.register(exportCmd)
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Convert a Zotero export to MARCXML",
	Long: `Convert a Zotero JSON export (array or one item per line) to a MARCXML
collection. Reads stdin when no file or "-" is given.

Examples:
  infomarc export items.json > lpi.xml
  infomarc export items.json -o lpi.xml --validated
  infomarc export --offline --include-abstract=false < items.jsonl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		return withCode(ExitConfigError, err)
	}
	opts := exportOptions(cmd, cfg)

	reg, err := loadRegistries(cmd.Context(), cfg, &exportRegistry)
	if err != nil {
		return err
	}

	src, err := openExport(args)
	if err != nil {
		return withCode(ExitDataError, err)
	}
	defer src.Close()

	builder := export.NewBuilder(reg, export.WithOptions(opts), export.WithLogger(logger))
	doc, err := builder.Build(src)
	if err != nil {
		return withCode(ExitDataError, err)
	}

	if err := writeDocument(doc, exportOutput); err != nil {
		return withCode(ExitError, err)
	}

	stats := builder.Stats()
	logger.Info("export finished",
		zap.Int("read", stats.Read),
		zap.Int("emitted", stats.Emitted),
		zap.Int("excluded", stats.Excluded),
		zap.Bool("config_found", stats.ConfigFound))

	// The summary only goes to stdout when stdout is not carrying the XML.
	if exportOutput == "" {
		return nil
	}
	resp := ExportResponse{
		Output:      exportOutput,
		Read:        stats.Read,
		Emitted:     stats.Emitted,
		Excluded:    stats.Excluded,
		ConfigFound: stats.ConfigFound,
		LabKnown:    stats.LabKnown,
	}
	if humanOutput {
		outputHuman("Wrote %d records to %s (%d excluded)\n", resp.Emitted, resp.Output, resp.Excluded)
		return nil
	}
	return outputJSON(resp)
}

// exportOptions starts from the configured defaults; flags given on the
// command line win.
func exportOptions(cmd *cobra.Command, cfg *config.GlobalConfig) export.Options {
	opts := cfg.ExportOptions()
	flags := cmd.Flags()
	if flags.Changed("include-abstract") {
		opts.IncludeAbstract = exportIncludeAbstract
	}
	if flags.Changed("batch-id") {
		opts.BatchID = exportBatchID
	}
	if flags.Changed("validated") {
		opts.Validated = exportValidated
	}
	if flags.Changed("export-notes") {
		opts.ExportNotes = exportNotes
	}
	if flags.Changed("exclude") {
		opts.ExcludedTypes = exportExclude
	}
	return opts
}

func openExport(args []string) (*importer.Reader, error) {
	if len(args) == 0 || args[0] == "-" {
		return importer.NewReader(os.Stdin)
	}
	return importer.Open(args[0])
}

// writeDocument writes to path through a temporary file so a failed run
// never leaves a truncated collection behind.
func writeDocument(doc io.WriterTo, path string) error {
	if path == "" {
		_, err := doc.WriteTo(stdout)
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".infomarc-*.xml")
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := doc.WriteTo(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
