package main

import (
	"github.com/spf13/cobra"

	"github.com/epfl-sisb/infomarc/internal/config"
)

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration: defaults, overlaid by the config file,
overlaid by INFOMARC_* environment variables (a .env file in the working
directory is read too).

Keys:
  labs_url          Lab registry URL or file
  authors_url       Author registry URL or file
  user_agent        User-Agent sent to the registry server
  cache_path        SQLite registry cache
  include_abstract  Export abstracts by default
  batch_id          Export the batch identifier by default
  validated         Mark records validated by default
  excluded_types    Item types never exported`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		return withCode(ExitConfigError, err)
	}

	if !humanOutput {
		return outputJSON(struct {
			Path   string               `json:"path"`
			Config *config.GlobalConfig `json:"config"`
		}{config.GlobalConfigPath(), cfg})
	}

	data, err := cfg.Marshal()
	if err != nil {
		return withCode(ExitError, err)
	}
	outputHuman("# %s\n%s", config.GlobalConfigPath(), data)
	return nil
}
