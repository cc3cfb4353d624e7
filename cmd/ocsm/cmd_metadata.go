package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/ocsm/internal/config"
	"github.com/cory-johannsen/ocsm/internal/metadata"
)

func newMetadataCmd(getApp func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Inspect and maintain per-system metadata catalogs",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Install the default catalogs for systems that have none",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := getApp().meta.InitializeGameSystems(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "metadata initialized")
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <system>",
			Short: "Print the entry count of every collection in a system's catalog",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				st, err := selectSystem(cmd, getApp(), args[0])
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "%s\n", st.System)
				for _, c := range st.Container.Collections() {
					fmt.Fprintf(w, "  %-14s %d\n", c, len(st.Container.Names(c)))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "list <system> <collection> [name]",
			Short: "List a collection's entry names, or print one entry",
			Args:  cobra.RangeArgs(2, 3),
			RunE: func(cmd *cobra.Command, args []string) error {
				st, err := selectSystem(cmd, getApp(), args[0])
				if err != nil {
					return err
				}
				col := metadata.Collection(args[1])
				if !slices.Contains(st.Container.Collections(), col) {
					return fmt.Errorf("%w: %s has no %q collection (known: %v)",
						metadata.ErrUnknownCollection, st.System, col, st.Container.Collections())
				}
				w := cmd.OutOrStdout()
				if len(args) == 3 {
					e, ok := st.Container.Lookup(col, args[2])
					if !ok {
						return fmt.Errorf("%w: %s %q", metadata.ErrNotFound, col, args[2])
					}
					out, err := json.MarshalIndent(e, "", "  ")
					if err != nil {
						return err
					}
					fmt.Fprintln(w, string(out))
					return nil
				}
				for _, n := range st.Container.Names(col) {
					fmt.Fprintln(w, n)
				}
				return nil
			},
		},
		newMetadataWatchCmd(getApp),
	)
	return cmd
}

func selectSystem(cmd *cobra.Command, a *app, s string) (metadata.State, error) {
	id, err := parseSystem(s)
	if err != nil {
		return metadata.State{}, err
	}
	if err := a.meta.Select(cmd.Context(), id); err != nil {
		return metadata.State{}, err
	}
	return a.meta.Current(), nil
}

func newMetadataWatchCmd(getApp func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <system>",
		Short: "Select a system and reload its catalog whenever the metadata file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp()
			if a.cfg.Storage.Backend != config.BackendFile {
				return errors.New("metadata watch requires the file storage backend")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if _, err := selectSystem(cmd, a, args[0]); err != nil {
				return err
			}
			w := a.watcher
			if w == nil {
				var err error
				if w, err = metadata.NewWatcher(a.cfg.Storage.MetadataDir, a.meta, a.cfg.Watch.Debounce, a.logger); err != nil {
					return err
				}
				if err := w.Start(ctx); err != nil {
					w.Stop()
					return err
				}
				defer w.Stop()
			}
			unsubscribe := a.meta.Subscribe(func() {
				st := a.meta.Current()
				a.logger.Info("metadata reloaded", zap.String("system", string(st.System)))
			})
			defer unsubscribe()

			fmt.Fprintf(cmd.OutOrStdout(), "watching %s\n", a.cfg.Storage.MetadataDir)
			<-ctx.Done()
			a.logger.Info("watch stopped", zap.Int("reloads", w.Reloads()))
			return nil
		},
	}
}
