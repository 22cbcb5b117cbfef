package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Load all menus and print cache statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, cleanup, err := buildEngine()
		if err != nil {
			return err
		}
		defer cleanup()
		if _, err := engine.LoadAll(); err != nil {
			return err
		}

		st := engine.CacheStats()
		fmt.Printf("definitions: %d [%s]\n", st.Definitions.Count, strings.Join(st.Definitions.Keys, ", "))
		fmt.Printf("derived:     %d [%s]\n", st.Derived.Count, strings.Join(st.Derived.Keys, ", "))
		loads, reloads := engine.Loader().Counts()
		fmt.Printf("loads: %d, reloads: %d\n", loads, reloads)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
