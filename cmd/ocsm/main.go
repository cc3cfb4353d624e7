// Package main provides the ocsm command-line character sheet editor.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/ocsm/internal/config"
	"github.com/cory-johannsen/ocsm/internal/game/dice"
	"github.com/cory-johannsen/ocsm/internal/metadata"
	"github.com/cory-johannsen/ocsm/internal/observability"
	"github.com/cory-johannsen/ocsm/internal/sheet"
	"github.com/cory-johannsen/ocsm/internal/storage/filestore"
	"github.com/cory-johannsen/ocsm/internal/storage/postgres"
)

// app holds the services every subcommand works against.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	meta   *metadata.Manager
	sheets *sheet.Manager
	store  sheetStore
	roller *dice.Roller
	// watcher is non-nil when watch.enabled is set with the file backend.
	watcher *metadata.Watcher
	close   func()
}

// newApp builds the service graph for cfg.
//
// Postcondition: Returns a ready app whose close func releases every resource, or a non-nil error.
func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	a := &app{
		cfg:    cfg,
		logger: logger,
		roller: dice.NewLoggedRoller(dice.NewCryptoSource(), logger),
		close:  func() { _ = logger.Sync() },
	}

	var metaStore metadata.Store
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		if err := pool.CheckSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		metaStore = postgres.NewMetadataStore(pool.DB())
		a.store = &postgresSheets{repo: postgres.NewSheetRepository(pool.DB())}
		a.close = func() {
			pool.Close()
			_ = logger.Sync()
		}
	default:
		metaStore = filestore.NewMetadataStore(cfg.Storage.MetadataDir)
		a.store = &fileSheets{store: filestore.NewSheetStore(cfg.Storage.SheetDir)}
	}

	a.meta = metadata.NewManager(metaStore, logger)
	a.sheets = sheet.NewManager(a.meta, logger)

	if cfg.Watch.Enabled && cfg.Storage.Backend == config.BackendFile {
		w, err := metadata.NewWatcher(cfg.Storage.MetadataDir, a.meta, cfg.Watch.Debounce, logger)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("creating metadata watcher: %w", err)
		}
		if err := w.Start(ctx); err != nil {
			w.Stop()
			a.close()
			return nil, fmt.Errorf("starting metadata watcher: %w", err)
		}
		a.watcher = w
		closeStores := a.close
		a.close = func() {
			w.Stop()
			closeStores()
		}
	}
	logger.Debug("services initialized", zap.String("backend", cfg.Storage.Backend))
	return a, nil
}

// newRootCmd assembles the command tree. Services are built lazily before each
// subcommand runs.
func newRootCmd() *cobra.Command {
	var (
		configPath string
		a          *app
	)
	getApp := func() *app { return a }

	root := &cobra.Command{
		Use:           "ocsm",
		Short:         "Open character sheet manager",
		Long:          `ocsm creates, inspects, and edits tabletop RPG character sheets and the per-system metadata catalogs they draw from.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			a, err = newApp(cmd.Context(), cfg)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a != nil {
				a.close()
			}
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file (default: built-in defaults and OCSM_ environment)")

	root.AddCommand(newNewCmd(getApp))
	root.AddCommand(newShowCmd(getApp))
	root.AddCommand(newEditCmd(getApp))
	root.AddCommand(newMetadataCmd(getApp))
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "ocsm: %v\n", err)
		os.Exit(1)
	}
}
