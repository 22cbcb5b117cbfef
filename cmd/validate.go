package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Parse every menu file and report what loads",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, cfg, cleanup, err := buildEngine()
		if err != nil {
			return err
		}
		defer cleanup()

		count, err := engine.LoadAll()
		if err != nil {
			return err
		}
		for _, name := range engine.Loader().Names() {
			fmt.Printf("  ok  %s\n", name)
		}
		fmt.Printf("%d menu(s) loaded from %s\n", count, cfg.MenuDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
