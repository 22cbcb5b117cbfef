package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/postwarps/postwarps/internal/appcfg"
	"github.com/postwarps/postwarps/internal/menu"
	"github.com/postwarps/postwarps/internal/provider"
	"github.com/postwarps/postwarps/internal/store"
)

var (
	configPath string
	debugFlag  bool
	capFlags   []string
	dataFlags  []string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "postwarps.hcl", "Path to the addon config file")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringSliceVar(&capFlags, "cap", nil, "Capability granted to the simulated actor (repeatable)")
	rootCmd.PersistentFlags().StringSliceVar(&dataFlags, "data", nil, "JSON data source for a menu, as <menu>=<file>:<jsonpath> (repeatable)")
}

var rootCmd = &cobra.Command{
	Use:   "postwarps",
	Short: "PostWarps: configuration-driven warp menus",
	Long: `PostWarps resolves declarative menu files plus live player facts into
concrete menu surfaces. The CLI validates menu directories, renders menus
offline for a simulated actor and manages the warp database.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (appcfg.Config, error) {
	cfg, err := appcfg.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if debugFlag {
		cfg.Debug = true
	}
	return cfg, nil
}

// cliAuthorizer grants exactly the capabilities passed via --cap.
func cliAuthorizer() provider.Authorizer {
	auth := provider.StaticAuthorizer{Capabilities: make(map[string]bool, len(capFlags))}
	for _, c := range capFlags {
		auth.Capabilities[c] = true
	}
	return auth
}

// cliProviders assembles the data providers: JSON sources from --data flags
// first, so they can back any menu, then the warp store. Each --data value is
// <menu>=<file>:<jsonpath>.
func cliProviders(st store.Store) ([]provider.DataProvider, error) {
	providers := []provider.DataProvider{provider.NewWarpProvider(st)}
	if len(dataFlags) == 0 {
		return providers, nil
	}
	jsonProv := provider.NewJSONProvider()
	for _, arg := range dataFlags {
		menuName, rest, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("--data %q: want <menu>=<file>:<jsonpath>", arg)
		}
		file, selector, ok := strings.Cut(rest, ":")
		if !ok {
			return nil, fmt.Errorf("--data %q: want <menu>=<file>:<jsonpath>", arg)
		}
		doc, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("--data %s: %w", menuName, err)
		}
		if err := jsonProv.Add(menuName, doc, selector); err != nil {
			return nil, err
		}
	}
	return append([]provider.DataProvider{jsonProv}, providers...), nil
}

// buildEngine wires the full stack: config, warp store, data providers and
// the menu engine over the real filesystem. The returned cleanup closes the
// store.
func buildEngine() (*menu.Engine, appcfg.Config, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, nil, err
	}
	st, err := store.OpenSQLite(cfg.Database)
	if err != nil {
		return nil, cfg, nil, fmt.Errorf("open warp store: %w", err)
	}
	providers, err := cliProviders(st)
	if err != nil {
		st.Close()
		return nil, cfg, nil, err
	}
	engine := menu.NewEngine(osfs.New("."), cfg.MenuDir, menu.Options{
		Auth:         cliAuthorizer(),
		Providers:    providers,
		FetchTimeout: cfg.FetchTimeout(),
		DerivedTTL:   cfg.DerivedTTL(),
		Log:          cfg.Logger(),
	})
	return engine, cfg, func() { st.Close() }, nil
}
