/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// config.go implements the "hgrep config" command for persisted defaults.
//
// Design: config follows a cascade model similar to git: local config
// (.hgrep/config.yaml) takes precedence over global (~/.hgrep/config.yaml)
// when both are present. --local forces local even if it doesn't exist
// yet, so it can be created on first write.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/hgrep/internal/config"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "config [key] [value]",
		Short: "View or set persisted default options",
		Long: `View or set persisted default options.

  hgrep config             # show all configured values
  hgrep config theme       # show the configured theme
  hgrep config theme github # set the configured theme

Configuration locations:
  Global: ~/.hgrep/config.yaml
  Local:  .hgrep/config.yaml

Uses local config if it exists, otherwise global. Writes go to the
same place reads come from. Use --local to force local.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runConfig,
	})
}

func runConfig(_ *cobra.Command, args []string) error {
	var cfg *config.Config
	var err error
	if localConfig {
		cfg, err = config.LoadScope(config.ScopeLocal)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	scopeName := "global"
	if cfg.Scope() == config.ScopeLocal {
		scopeName = "local"
	}

	switch len(args) {
	case 0:
		for k, v := range cfg.All() {
			fmt.Fprintf(Out(), "%s: %s\n", k, v)
		}

	case 1:
		v, err := cfg.Get(args[0])
		if err != nil {
			return fmt.Errorf("config get %q: %w", args[0], err)
		}
		fmt.Fprintln(Out(), v)

	case 2:
		if err := cfg.Set(args[0], args[1]); err != nil {
			return fmt.Errorf("config set %q: %w", args[0], err)
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("config save: %w", err)
		}
		fmt.Fprintf(Out(), "%s = %s (%s)\n", args[0], args[1], scopeName)
	}
	return nil
}
