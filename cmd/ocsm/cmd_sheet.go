package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/ocsm/internal/game/dnd5e"
	"github.com/cory-johannsen/ocsm/internal/game/gamesystem"
	"github.com/cory-johannsen/ocsm/internal/sheet"
)

func parseSystem(s string) (gamesystem.ID, error) {
	id, ok := gamesystem.Parse(s)
	if !ok {
		return gamesystem.None, fmt.Errorf("%w: %q (known: %v)", sheet.ErrUnknownGameSystem, s, gamesystem.Known())
	}
	return id, nil
}

func printTraits(w io.Writer, name string, t sheet.Traits) error {
	out, err := json.MarshalIndent(struct {
		Name   string       `json:"name"`
		Traits sheet.Traits `json:"traits"`
	}{name, t}, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func newNewCmd(getApp func() *app) *cobra.Command {
	var (
		name string
		roll bool
		out  string
	)
	cmd := &cobra.Command{
		Use:   "new <system>",
		Short: "Create a blank character sheet",
		Long: `Creates a blank sheet for one of the known game systems (CoD.Changeling, CoD.Mortal,
DnD.Fifth) and saves it. --roll generates DnD.Fifth ability scores with 4d6 keep highest 3.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp()
			ctx := cmd.Context()
			id, err := parseSystem(args[0])
			if err != nil {
				return err
			}
			if roll && id != gamesystem.Fifth {
				return fmt.Errorf("--roll is only supported for %s", gamesystem.Fifth)
			}
			if err := a.meta.Select(ctx, id); err != nil {
				return fmt.Errorf("selecting %s metadata: %w", id, err)
			}
			ch, err := sheet.New(id)
			if err != nil {
				return err
			}
			open, err := a.sheets.Open(ch)
			if err != nil {
				return err
			}

			var edits []sheet.Edit
			if name != "" {
				edits = append(edits, sheet.Edit{Field: sheet.FieldName, Value: name})
			}
			if roll {
				scores := a.roller.RollAbilityScores()
				for i, ability := range dnd5e.AbilityNames() {
					edits = append(edits, sheet.Edit{Field: sheet.FieldAbility, Key: string(ability), Value: strconv.Itoa(scores[i])})
				}
			}
			for _, e := range edits {
				if _, err := open.Session.ApplyEdit(e); err != nil {
					return err
				}
			}

			ref, err := a.store.Save(ctx, out, open.Session)
			if err != nil {
				return fmt.Errorf("saving sheet: %w", err)
			}
			a.logger.Info("sheet created", zap.String("system", string(id)), zap.String("ref", ref))
			fmt.Fprintln(cmd.OutOrStdout(), ref)
			return printTraits(cmd.OutOrStdout(), open.Session.DisplayName(), open.Session.Traits())
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "character name")
	cmd.Flags().BoolVar(&roll, "roll", false, "roll ability scores (DnD.Fifth only)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "sheet file or id to write (default: NewSheet.ocs in the sheet directory)")
	return cmd
}

func newShowCmd(getApp func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <sheet>",
		Short: "Print a sheet's derived traits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp()
			data, err := a.store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			open, err := a.sheets.LoadDocument(cmd.Context(), data)
			if err != nil {
				return err
			}
			return printTraits(cmd.OutOrStdout(), open.Session.DisplayName(), open.Session.Traits())
		},
	}
}

func newEditCmd(getApp func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <sheet> <field> [key] <value>",
		Short: "Apply one edit to a sheet and print the recalculated traits",
		Long: `Applies a single field edit, saves the sheet, and prints the recalculated traits.
Keyed fields (ability, skill, class, coins, attribute, merit, ...) take a key before the value.`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp()
			ctx := cmd.Context()
			e := sheet.Edit{Field: args[1], Value: args[len(args)-1]}
			if len(args) == 4 {
				e.Key = args[2]
			}

			data, err := a.store.Load(ctx, args[0])
			if err != nil {
				return err
			}
			open, err := a.sheets.LoadDocument(ctx, data)
			if err != nil {
				return err
			}
			traits, err := open.Session.ApplyEdit(e)
			if err != nil {
				return err
			}
			if _, err := a.store.Save(ctx, args[0], open.Session); err != nil {
				return fmt.Errorf("saving sheet: %w", err)
			}
			a.logger.Debug("sheet edited", zap.Stringer("edit", e))
			return printTraits(cmd.OutOrStdout(), open.Session.DisplayName(), traits)
		},
	}
}
