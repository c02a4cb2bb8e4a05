package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/epfl-sisb/infomarc/internal/config"
	"github.com/epfl-sisb/infomarc/internal/registry"
)

// registryFlags select where registries are read from. They are shared by
// export and registry fetch.
type registryFlags struct {
	labs    string
	authors string
	offline bool
}

func (f *registryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.labs, "labs", "", "Lab registry URL or JSON file (overrides labs_url)")
	cmd.Flags().StringVar(&f.authors, "authors", "", "Author registry URL or JSON file (overrides authors_url)")
}

func (f *registryFlags) sources(cfg *config.GlobalConfig) registry.Sources {
	src := cfg.RegistrySources()
	if f.labs != "" {
		src.Labs = f.labs
	}
	if f.authors != "" {
		src.Authors = f.authors
	}
	return src
}

// loadRegistries runs the two-step registry load, or reads the cache when
// offline. A successful fetch refreshes the cache.
func loadRegistries(ctx context.Context, cfg *config.GlobalConfig, f *registryFlags) (*registry.Registries, error) {
	if f.offline {
		return loadCachedRegistries(cfg)
	}

	client := registry.NewClient(
		registry.WithUserAgent(cfg.UserAgent),
		registry.WithLogger(logger),
	)
	reg, err := client.Load(ctx, f.sources(cfg))
	if err != nil {
		return nil, withCode(ExitRegistryError, err)
	}

	if cfg.CachePath != "" {
		if err := saveRegistries(cfg.CachePath, reg); err != nil {
			logger.Warn("registry cache not updated", zap.String("path", cfg.CachePath), zap.Error(err))
		}
	}
	return reg, nil
}

func loadCachedRegistries(cfg *config.GlobalConfig) (*registry.Registries, error) {
	if cfg.CachePath == "" {
		return nil, withCodef(ExitConfigError, "offline mode needs cache_path")
	}
	cache, err := registry.OpenCache(cfg.CachePath)
	if err != nil {
		return nil, withCode(ExitRegistryError, err)
	}
	defer cache.Close()

	reg, err := cache.Load()
	if errors.Is(err, registry.ErrEmptyCache) {
		return nil, withCodef(ExitRegistryError, "%v: run 'infomarc registry fetch' first", err)
	}
	if err != nil {
		return nil, withCode(ExitRegistryError, err)
	}
	if at, ok, _ := cache.FetchedAt(); ok {
		logger.Info("using cached registries", zap.Time("fetched_at", at), zap.Int("labs", len(reg.Labs)))
	}
	return reg, nil
}

func saveRegistries(path string, reg *registry.Registries) error {
	cache, err := registry.OpenCache(path)
	if err != nil {
		return err
	}
	defer cache.Close()
	return cache.Save(reg)
}

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Fetch and inspect the lab and author registries",
}

var (
	fetchFlags registryFlags
	showOnline bool
)

func init() {
	fetchFlags.register(registryFetchCmd)
	registryShowCmd.Flags().BoolVar(&showOnline, "online", false, "Fetch the registries instead of reading the cache")

	registryCmd.AddCommand(registryFetchCmd)
	registryCmd.AddCommand(registryShowCmd)
	rootCmd.AddCommand(registryCmd)
}

var registryFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the registries into the local cache",
	Long: `Download the lab registry, then the author registry, and store both in
the local SQLite cache for 'infomarc export --offline'.

Examples:
  infomarc registry fetch
  infomarc registry fetch --labs ./labs.json --authors ./authors.json`,
	Args: cobra.NoArgs,
	RunE: runRegistryFetch,
}

func runRegistryFetch(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		return withCode(ExitConfigError, err)
	}
	if cfg.CachePath == "" {
		return withCodef(ExitConfigError, "cache_path is not configured")
	}

	src := fetchFlags.sources(cfg)
	client := registry.NewClient(
		registry.WithUserAgent(cfg.UserAgent),
		registry.WithLogger(logger),
	)
	reg, err := client.Load(cmd.Context(), src)
	if err != nil {
		return withCode(ExitRegistryError, err)
	}
	if err := saveRegistries(cfg.CachePath, reg); err != nil {
		return withCode(ExitError, err)
	}

	resp := RegistryResponse{
		Source:    src.Labs + " " + src.Authors,
		Labs:      len(reg.Labs),
		Authors:   len(reg.Authors),
		CachePath: cfg.CachePath,
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if humanOutput {
		outputHuman("Cached %d labs and %d author names in %s\n", resp.Labs, resp.Authors, resp.CachePath)
		return nil
	}
	return outputJSON(resp)
}

var registryShowCmd = &cobra.Command{
	Use:   "show [acronym]",
	Short: "Show registry totals, or one lab entry",
	Long: `Show registry totals, or the lab registry entry for an acronym with the
number of registered authors affiliated with it.

Examples:
  infomarc registry show
  infomarc registry show LPI --human`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRegistryShow,
}

func runRegistryShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		return withCode(ExitConfigError, err)
	}

	flags := &registryFlags{offline: !showOnline}
	reg, err := loadRegistries(cmd.Context(), cfg, flags)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		resp := RegistryResponse{Labs: len(reg.Labs), Authors: len(reg.Authors), Source: "cache", CachePath: cfg.CachePath}
		if showOnline {
			resp.Source = "network"
		}
		if humanOutput {
			outputHuman("%d labs, %d author names (%s)\n", resp.Labs, resp.Authors, resp.Source)
			return nil
		}
		return outputJSON(resp)
	}

	acronym := args[0]
	lab, ok := reg.Labs[acronym]
	if !ok {
		return withCodef(ExitDataError, "unknown lab: %s", acronym)
	}
	resp := LabResponse{
		Acronym: acronym,
		RecID:   lab.RecID.String(),
		Manager: lab.Manager,
		UID:     lab.UID.String(),
		Liaison: lab.Liaison,
		Authors: countAffiliated(reg.Authors, acronym),
	}
	if humanOutput {
		outputHuman("%s\n  recid:   %s\n  uid:     %s\n  manager: %s\n  liaison: %s\n  authors: %d\n",
			resp.Acronym, resp.RecID, resp.UID, resp.Manager, resp.Liaison, resp.Authors)
		return nil
	}
	return outputJSON(resp)
}

// countAffiliated counts author names with at least one entry in lab.
func countAffiliated(authors registry.Authors, lab string) int {
	n := 0
	for _, entries := range authors {
		for _, e := range entries {
			if e.InLab(lab) {
				n++
				break
			}
		}
	}
	return n
}
