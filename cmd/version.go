/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// version.go implements the version command.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/hgrep/internal/version"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build time, git commit, Go version, and platform.`,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprint(Out(), version.Get().String())
		},
	})
}
