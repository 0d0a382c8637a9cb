/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines global CLI flags and accessors for shared state.
//
// Separated from root.go to isolate flag definitions from command logic,
// following the teacher's own flags.go/root.go split.
//
// Design: flags are package-level variables bound to the root command.
// resolveOptions() folds them, the loaded config file, and terminal
// auto-detection into one options.Options for the render pipeline, with
// flags only overriding a config-file value when the user actually
// passed them (cmd.Flags().Changed), so `hgrep config set theme ...`
// isn't silently clobbered by an unpassed flag's zero/default value.

package cmd

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jpl-au/hgrep/internal/config"
	"github.com/jpl-au/hgrep/internal/options"
)

var (
	minContext   int
	maxContext   int
	tabWidth     int
	theme        string
	grid         bool
	noGrid       bool
	background   bool
	asciiLines   bool
	firstOnly    bool
	termWidth    int
	wrap         string
	colorSupport string
	localConfig  bool
)

// out is the output writer. Tests can replace this to capture output.
var out io.Writer = os.Stdout

// Out returns the output writer.
func Out() io.Writer { return out }

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

func init() {
	rootCmd.Flags().IntVarP(&minContext, "min-context", "c", 3, "Minimum number of context lines around a match")
	rootCmd.Flags().IntVarP(&maxContext, "max-context", "C", 6, "Maximum number of context lines before two matches merge into one chunk")
	rootCmd.Flags().IntVar(&tabWidth, "tab", 4, "Tab stop width; 0 passes tabs through unexpanded")
	rootCmd.Flags().StringVar(&theme, "theme", os.Getenv("BAT_THEME"), "Theme name (defaults to $BAT_THEME, then a built-in default)")
	rootCmd.Flags().BoolVar(&grid, "grid", false, "Force the gutter/separator grid on")
	rootCmd.Flags().BoolVar(&noGrid, "no-grid", false, "Force the gutter/separator grid off")
	rootCmd.Flags().BoolVar(&background, "background", false, "Paint the full line background, not just the gutter")
	rootCmd.Flags().BoolVar(&asciiLines, "ascii-lines", false, "Draw the grid with plain ASCII instead of box-drawing characters")
	rootCmd.Flags().BoolVar(&firstOnly, "first-only", false, "Render only the first chunk of each file")
	rootCmd.Flags().IntVar(&termWidth, "term-width", 0, "Terminal width in columns; 0 auto-detects, falling back to 80")
	rootCmd.Flags().StringVar(&wrap, "wrap", "char", `Long line handling: "char" or "never"`)
	rootCmd.Flags().StringVar(&colorSupport, "color-support", "", `Color depth: "ansi16", "ansi256", or "true" (default: auto-detected)`)
	rootCmd.PersistentFlags().BoolVar(&localConfig, "local", false, "Read/write .hgrep/config.yaml instead of ~/.hgrep/config.yaml")
}

// gridOverride reports whether --grid/--no-grid was set on the command
// line and, if so, its value; ok is false when neither flag was passed
// so the config file / BAT_STYLE / default can take over.
func gridOverride() (value bool, ok bool) {
	switch {
	case grid:
		return true, true
	case noGrid:
		return false, true
	default:
		return false, false
	}
}

// batStyleGridOverride mirrors the original CLI's BAT_STYLE handling: when
// set to exactly "plain", "header", or "numbers" it implies grid=false,
// unless --grid/--no-grid was passed (checked by the caller first).
func batStyleGridOverride() (value bool, ok bool) {
	switch os.Getenv("BAT_STYLE") {
	case "plain", "header", "numbers":
		return false, true
	default:
		return false, false
	}
}

// resolveColorSupport maps a --color-support value to options.ColorSupport.
func resolveColorSupport(s string) (options.ColorSupport, bool) {
	switch s {
	case "ansi16":
		return options.Ansi16, true
	case "ansi256":
		return options.Ansi256, true
	case "true":
		return options.TrueColor, true
	default:
		return 0, false
	}
}

// autoDetectColorSupport inspects the real terminal when neither a flag
// nor the config file picked a color depth, the same way the guide
// command defaults glamour rendering on term.IsTerminal.
func autoDetectColorSupport() options.ColorSupport {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return options.TrueColor
	}
	switch termenv.NewOutput(os.Stdout).Profile {
	case termenv.TrueColor:
		return options.TrueColor
	case termenv.ANSI256:
		return options.Ansi256
	default:
		return options.Ansi16
	}
}

// resolveTermWidth returns --term-width, falling back to the detected
// terminal width, then 80 when detection fails (piped output).
func resolveTermWidth() int {
	if termWidth > 0 {
		return termWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// resolveOptions builds the render options for this run: built-in
// defaults, overlaid by the config file, overlaid by explicit flags.
// A flag only overrides the config file when the user actually passed
// it (cmd.Flags().Changed) -- otherwise its unpassed zero/default value
// would silently clobber a persisted config setting on every run. The
// exception is --theme, whose default is $BAT_THEME: a non-empty
// $BAT_THEME overrides the config file's theme even when --theme is not
// passed.
func resolveOptions(cmd *cobra.Command, cfg *config.Config) options.Options {
	opts := options.Default()
	cfg.ApplyTo(&opts)

	flags := cmd.Flags()

	if flags.Changed("min-context") {
		opts.MinContext = minContext
	}
	if flags.Changed("max-context") {
		opts.MaxContext = maxContext
	}
	if flags.Changed("tab") {
		opts.TabWidth = tabWidth
	}
	if flags.Changed("theme") || theme != "" {
		opts.Theme = theme
	}
	if flags.Changed("background") {
		opts.BackgroundColor = background
	}
	if flags.Changed("ascii-lines") {
		opts.AsciiLines = asciiLines
	}
	if flags.Changed("wrap") {
		if wrap == "never" {
			opts.TextWrap = options.WrapNever
		} else {
			opts.TextWrap = options.WrapChar
		}
	}

	opts.FirstOnly = firstOnly
	opts.TermWidth = resolveTermWidth()

	if v, ok := resolveColorSupport(colorSupport); ok {
		opts.ColorSupport = v
	} else if cfg.ColorSupport == nil {
		opts.ColorSupport = autoDetectColorSupport()
	}

	if v, ok := gridOverride(); ok {
		opts.Grid = v
	} else if v, ok := batStyleGridOverride(); ok {
		opts.Grid = v
	}

	return opts
}

// configScope returns which scope --local selects for config.Load/Save.
func configScope() config.Scope {
	if localConfig {
		return config.ScopeLocal
	}
	return config.ScopeGlobal
}
