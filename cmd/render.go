package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/postwarps/postwarps/internal/menu"
	"github.com/postwarps/postwarps/internal/provider"
)

var renderPage int

var renderCmd = &cobra.Command{
	Use:   "render <menu> [player]",
	Short: "Resolve a menu offline for a simulated actor and print the grid",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, cleanup, err := buildEngine()
		if err != nil {
			return err
		}
		defer cleanup()
		if _, err := engine.LoadAll(); err != nil {
			return err
		}

		actor := provider.Actor{ID: "cli", Name: "Console"}
		if len(args) > 1 {
			actor = provider.Actor{ID: args[1], Name: args[1]}
		}
		sess := &menu.SessionState{Menu: args[0], Page: renderPage}

		surface, err := engine.OpenSurface(context.Background(), actor, args[0], sess)
		if err != nil {
			return err
		}
		printSurface(surface)
		return nil
	},
}

func init() {
	renderCmd.Flags().IntVar(&renderPage, "page", 0, "Page to render for paged menus")
	rootCmd.AddCommand(renderCmd)
}

func printSurface(s *menu.Surface) {
	fmt.Printf("%s  (page %d/%d)\n", s.Title, s.Page+1, s.PageCount)
	for slot, item := range s.Slots {
		if slot%s.Width == 0 {
			fmt.Println(strings.Repeat("-", 40))
		}
		if item.Empty() {
			fmt.Printf("[%2d]\n", slot)
			continue
		}
		fmt.Printf("[%2d] %-28s %s\n", slot, item.Material, item.Name)
		for _, line := range item.Lore {
			fmt.Printf("     | %s\n", line)
		}
	}
}
