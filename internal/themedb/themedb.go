// Package themedb resolves a color theme by name, the Go stand-in for
// spec.md §4.4's ThemeDB over curated + default theme sets.
//
// Grounded on chroma's style registry (github.com/alecthomas/chroma/v2/
// styles), which plays the role of both the "embedded compressed blob of
// curated themes" and the "default set" in one registry — there is no
// separately-loaded fallback set the way bat/syntect have one, so both
// tiers of spec.md §4.4's resolution collapse onto styles.Registry here.
// The built-in 16-color "ansi" theme has no chroma equivalent (chroma
// styles are all 24-bit) and is synthesized directly.
package themedb

import (
	"errors"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/jpl-au/hgrep/internal/canvas"
	"github.com/jpl-au/hgrep/internal/options"
)

// ErrUnknownTheme is returned when a requested theme name is not found in
// any tier of the theme database. Fatal, before rendering (spec.md §7).
var ErrUnknownTheme = errors.New("unknown theme")

const (
	defaultTrueColorTheme = "monokai"
	ansiThemeName         = "ansi"
)

// Theme carries the colors the Drawer/Canvas need: the chroma style for
// per-token lookups, plus the derived semantic colors spec.md §4.6/§4.7
// call out individually (gutter, match background, region colors).
type Theme struct {
	Style *chroma.Style

	Background       canvas.Color
	Foreground       canvas.Color
	GutterForeground canvas.Color
	MatchBackground  canvas.Color // "line_highlight", falls back to Background
	RegionForeground canvas.Color // the style's Error token color, falls back to Foreground
	RegionBackground canvas.Color // chroma-derived themes: same as MatchBackground; the "ansi" theme uses yellow
}

// DB resolves themes by name.
type DB struct{}

// New returns a ready-to-use theme database.
func New() *DB { return &DB{} }

// Resolve picks a theme per spec.md §4.4: if name is given and known, use
// it; if it is given but unknown, fail with ErrUnknownTheme; if it is
// empty, the default depends on color support (the 16-color "ansi"
// theme for Ansi16 terminals, "Monokai Extended"'s closest chroma
// equivalent otherwise).
func (db *DB) Resolve(name string, support options.ColorSupport) (*Theme, error) {
	if name == "" {
		if support == options.Ansi16 {
			name = ansiThemeName
		} else {
			name = defaultTrueColorTheme
		}
	}

	if name == ansiThemeName {
		return ansiTheme(), nil
	}

	style, ok := styles.Registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (run with --theme to pick one of the registered chroma styles)", ErrUnknownTheme, name)
	}
	return fromChromaStyle(style), nil
}

func fromChromaStyle(style *chroma.Style) *Theme {
	base := style.Get(chroma.Background)
	lineHi := style.Get(chroma.LineHighlight)
	gutter := style.Get(chroma.LineNumbers)
	errEntry := style.Get(chroma.Error)

	bg := colorFromChroma(base.Background)
	fg := colorFromChroma(base.Colour)

	matchBg := colorFromChroma(lineHi.Background)
	if !matchBg.Set {
		matchBg = bg
	}

	gutterFg := colorFromChroma(gutter.Colour)
	if !gutterFg.Set {
		gutterFg = canvas.RGB(128, 128, 128)
	}

	regionFg := colorFromChroma(errEntry.Colour)
	if !regionFg.Set {
		regionFg = fg
	}
	regionBg := matchBg

	return &Theme{
		Style:            style,
		Background:       bg,
		Foreground:       fg,
		GutterForeground: gutterFg,
		MatchBackground:  matchBg,
		RegionForeground: regionFg,
		RegionBackground: regionBg,
	}
}

// ansiTheme is the 16-color default for Ansi16 terminals. Token lookups
// still go through a real chroma.Style (there is no 16-color style in
// chroma's registry to borrow instead), but it doesn't matter which one:
// every color this package hands out passes through Canvas's termenv
// downgrade before it ever reaches a Ansi16 terminal, so the synthesized
// semantic colors below are chosen to downgrade to sane ANSI slots rather
// than to look right at 24-bit fidelity.
func ansiTheme() *Theme {
	return &Theme{
		Style:            styles.Get(defaultTrueColorTheme),
		Background:       canvas.Unset,
		Foreground:       canvas.RGB(192, 192, 192),
		GutterForeground: canvas.RGB(128, 128, 128),
		MatchBackground:  canvas.Unset,
		RegionForeground: canvas.RGB(0, 0, 0),
		RegionBackground: canvas.RGB(192, 192, 0),
	}
}

func colorFromChroma(c chroma.Colour) canvas.Color {
	if !c.IsSet() {
		return canvas.Unset
	}
	return canvas.RGB(c.Red(), c.Green(), c.Blue())
}
