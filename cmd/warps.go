package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/postwarps/postwarps/internal/store"
)

var warpPublic bool

var warpsCmd = &cobra.Command{
	Use:   "warps",
	Short: "Manage the warp database",
}

var warpsListCmd = &cobra.Command{
	Use:   "list [owner]",
	Short: "List public warps, or one owner's warps",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, st store.Store) error {
			var (
				warps []store.Warp
				err   error
			)
			if len(args) == 1 {
				warps, err = st.ListByOwner(ctx, args[0])
			} else {
				warps, err = st.ListPublic(ctx)
			}
			if err != nil {
				return err
			}
			for _, w := range warps {
				visibility := "private"
				if w.Public {
					visibility = "public"
				}
				fmt.Printf("%-20s %-12s %-10s (%.1f, %.1f, %.1f) %s\n",
					w.Name, w.Owner, w.World, w.X, w.Y, w.Z, visibility)
			}
			return nil
		})
	},
}

var warpsAddCmd = &cobra.Command{
	Use:   "add <owner> <name> <world> <x> <y> <z>",
	Short: "Create a warp",
	Args:  cobra.ExactArgs(6),
	RunE: func(cmd *cobra.Command, args []string) error {
		coords := make([]float64, 3)
		for i, a := range args[3:] {
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return fmt.Errorf("coordinate %q: %w", a, err)
			}
			coords[i] = v
		}
		return withStore(func(ctx context.Context, st store.Store) error {
			w := &store.Warp{
				Owner: args[0], Name: args[1], World: args[2],
				X: coords[0], Y: coords[1], Z: coords[2],
				Public: warpPublic,
			}
			if err := st.Create(ctx, w); err != nil {
				return err
			}
			fmt.Printf("created warp %s (#%d)\n", w.Name, w.ID)
			return nil
		})
	},
}

var warpsRemoveCmd = &cobra.Command{
	Use:   "remove <owner> <name>",
	Short: "Delete a warp",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, st store.Store) error {
			if err := st.DeleteByName(ctx, args[1], args[0]); err != nil {
				return err
			}
			fmt.Printf("removed warp %s\n", args[1])
			return nil
		})
	},
}

func withStore(fn func(context.Context, store.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := store.OpenSQLite(cfg.Database)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(context.Background(), st)
}

func init() {
	warpsAddCmd.Flags().BoolVar(&warpPublic, "public", false, "Make the warp visible to everyone")
	warpsCmd.AddCommand(warpsListCmd, warpsAddCmd, warpsRemoveCmd)
	rootCmd.AddCommand(warpsCmd)
}
