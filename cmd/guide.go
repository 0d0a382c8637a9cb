/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// guide.go implements the "hgrep guide" command for documentation access.
//
// Design: guides are embedded in the binary via the guide package so
// documentation is always available with no external files. Terminal
// output gets glamour rendering for readability; a pipe/redirect gets
// raw markdown so piping "hgrep guide | llm ..." stays useful.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jpl-au/hgrep/guide"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "guide [page]",
		Short: "Show the hgrep usage guide",
		Long: `Outputs the hgrep guide.

  hgrep guide         # main guide
  hgrep guide themes  # theme selection guide`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			content, err := guide.Get(name)
			if err != nil {
				available, listErr := guide.List()
				if listErr != nil {
					return listErr
				}
				return fmt.Errorf("guide %q not found. Available: %s", name, strings.Join(available, ", "))
			}

			if term.IsTerminal(int(os.Stdout.Fd())) {
				rendered, err := glamour.Render(content, "dark")
				if err == nil {
					fmt.Fprint(Out(), rendered)
					return nil
				}
			}

			fmt.Fprint(Out(), content)
			return nil
		},
	})
}
