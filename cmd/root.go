/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command, the stdin-to-stdout render pipeline
// it drives, and the CLI execution entry point.
//
// Design: unlike a typical cobra tool that maps one error to exit code 1,
// hgrep's exit code is three-way (matched/no-matches/error), so the root
// command's RunE never returns an error for the caller to translate --
// it resolves its own exit code via internal/errchain and stashes it in
// exitCode for Execute to pass to os.Exit.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jpl-au/hgrep/internal/chunkset"
	"github.com/jpl-au/hgrep/internal/config"
	"github.com/jpl-au/hgrep/internal/errchain"
	"github.com/jpl-au/hgrep/internal/pipeline"
	"github.com/jpl-au/hgrep/internal/printer"
	"github.com/jpl-au/hgrep/internal/reader"
)

// exitCode is the code Execute passes to os.Exit once rootCmd.Execute
// returns. Set by rootCmd's RunE (on success and on config, option or
// render failures), or by Execute when cobra itself returns an error.
var exitCode = errchain.ExitNoMatches

var rootCmd = &cobra.Command{
	Use:   "hgrep",
	Short: "Syntax-highlighted, context-aware rendering of grep-style match streams",
	Long: `hgrep reads grep-style "path:lineno:content" match lines (and
"path-lineno-content" context lines) from stdin, merges overlapping
context windows into chunks, and renders each chunk with syntax
highlighting, line numbers, and a bordered gutter.

Typical usage:

  grep -n -C 3 TODO **/*.go | hgrep
  rg -n -C 5 "func Test" . | hgrep --theme=github`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var cfg *config.Config
		var err error
		if localConfig {
			cfg, err = config.LoadScope(config.ScopeLocal)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			exitCode = errchain.Print(os.Stderr, err)
			return nil
		}

		opts := resolveOptions(cmd, cfg)
		if err := opts.Validate(); err != nil {
			exitCode = errchain.Print(os.Stderr, err)
			return nil
		}

		r := reader.New(os.Stdin)
		asm := chunkset.NewAssembler(opts.MinContext, opts.MaxContext)
		p := printer.NewSyntectPrinter(Out(), &opts)

		onParseError := func(pe *reader.ParseError) {
			fmt.Fprintf(os.Stderr, "hgrep: skipping malformed line: %v\n", pe)
		}

		files, errc := pipeline.Feed(r, asm, onParseError)
		found, runErr := pipeline.Run(files, p, 0)
		if feedErr := <-errc; feedErr != nil && runErr == nil {
			runErr = feedErr
		}

		if runErr != nil {
			exitCode = errchain.Print(os.Stderr, fmt.Errorf("rendering match stream: %w", runErr))
			return nil
		}

		exitCode = errchain.ExitCode(found)
		return nil
	},
}

// Execute runs the root command and exits the process with the code the
// run determined: 0 (matched), 1 (no matches), or 2 (fatal error).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitCode = errchain.Print(os.Stderr, err)
	}
	os.Exit(exitCode)
}

// RootCmd returns the root command, for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
