package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/config"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/cards"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/cards/scryfall"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/storage"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/version"
)

// app is the state shared by every subcommand.
type app struct {
	configPath string
	envFile    string
	setCode    string
	debug      bool

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "draft-sim",
		Short: "Sealed draft simulator and deck analyzer",
		Long: "draft-sim opens simulated sealed pools for a set, builds a 40-card deck\n" +
			"from each pool for an archetype and reports what those decks contain.",
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", config.DefaultPath, "Configuration file (TOML)")
	pf.StringVar(&a.envFile, "env-file", ".env", "Environment file with DRAFT_SIM_* overrides")
	pf.StringVarP(&a.setCode, "set", "s", "", "Set code (overrides catalog.set_code)")
	pf.BoolVar(&a.debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		newFetchCmd(a),
		newSimulateCmd(a),
		newReportCmd(a),
		newServeCmd(a),
		newArchetypesCmd(a),
		newBatchesCmd(a),
	)

	return root
}

// setup loads the configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.LoadEnv(a.envFile); err != nil {
		return err
	}
	if a.setCode != "" {
		cfg.Catalog.SetCode = a.setCode
	}
	if a.debug {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)
	return nil
}

// openStore opens the SQLite store, or returns nil when storage is disabled.
func (a *app) openStore() (*storage.Service, error) {
	if !a.cfg.Storage.Enabled {
		return nil, nil
	}

	path := a.cfg.Storage.Path
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	dbConfig := storage.DefaultConfig(path)
	dbConfig.AutoMigrate = true
	db, err := storage.Open(dbConfig)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("storage opened", "path", path)
	return storage.NewService(db), nil
}

// requireStore opens the store for commands that cannot run without it.
func (a *app) requireStore() (*storage.Service, error) {
	if !a.cfg.Storage.Enabled {
		return nil, fmt.Errorf("storage is disabled; set storage.enabled = true")
	}
	return a.openStore()
}

func (a *app) closeStore(store *storage.Service) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		a.logger.Warn("close storage", "error", err)
	}
}

// catalog builds the card catalog for the configured source, cached in
// store when one is given and the cache TTL is not zero.
func (a *app) catalog(store *storage.Service, refresh bool) (cards.Catalog, error) {
	var source cards.Catalog
	switch a.cfg.Catalog.Source {
	case config.SourceFile:
		source = cards.NewFileCatalog(a.cfg.Catalog.FilePath)
	default:
		rateLimit, err := a.cfg.GetRateLimit()
		if err != nil {
			return nil, err
		}
		opts := []scryfall.Option{scryfall.WithRateLimit(rateLimit)}
		if a.cfg.Catalog.UserAgent != "" {
			opts = append(opts, scryfall.WithUserAgent(a.cfg.Catalog.UserAgent))
		}
		source = scryfall.NewClient(opts...)
	}

	ttl, err := a.cfg.GetCacheTTL()
	if err != nil {
		return nil, err
	}

	var cache cards.CatalogCache
	if store != nil && ttl > 0 {
		cache = store
	}

	return cards.NewService(source, cache, &cards.ServiceConfig{
		CacheTTL: ttl,
		Refresh:  refresh,
		Logger:   a.logger,
	}), nil
}
