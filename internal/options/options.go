// Package options defines the printer configuration shared by the chunk
// assembler and the renderer.
package options

import (
	"errors"
	"fmt"
)

// ColorSupport is the level of ANSI color the target terminal understands.
type ColorSupport int

const (
	Ansi16 ColorSupport = iota
	Ansi256
	TrueColor
)

// TextWrap selects how long lines are handled.
type TextWrap int

const (
	WrapChar TextWrap = iota
	WrapNever
)

// Options configures chunk assembly and rendering for one run.
//
// Mirrors the PrinterOptions data model: theme, tab width, grid, background
// painting, line-drawing character set, first-chunk-only mode, terminal
// width, wrap mode and color support.
type Options struct {
	Theme           string // empty means "let the theme database pick a default"
	TabWidth        int    // 0 = pass tabs through literally
	Grid            bool
	BackgroundColor bool
	AsciiLines      bool
	FirstOnly       bool
	TermWidth       int
	TextWrap        TextWrap
	ColorSupport    ColorSupport

	MinContext int
	MaxContext int
}

// Default returns the baseline options matching the original tool's
// command-line defaults (min-context=3, max-context=6, tab=4, grid=on).
func Default() Options {
	return Options{
		TabWidth:   4,
		Grid:       true,
		TermWidth:  80,
		TextWrap:   WrapChar,
		MinContext: 3,
		MaxContext: 6,
	}
}

// Validate checks invariants that must hold before any rendering begins.
// A violation is an InvalidOption error (spec §7): fatal, before rendering.
func (o Options) Validate() error {
	if o.TermWidth < 10 {
		return fmt.Errorf("%w: term width must be >= 10, got %d", ErrInvalidOption, o.TermWidth)
	}
	if o.MinContext < 0 {
		return fmt.Errorf("%w: min-context must be >= 0, got %d", ErrInvalidOption, o.MinContext)
	}
	if o.MaxContext < o.MinContext {
		return fmt.Errorf("%w: max-context (%d) must be >= min-context (%d)", ErrInvalidOption, o.MaxContext, o.MinContext)
	}
	return nil
}

// ErrInvalidOption marks a fatal, pre-render option validation failure.
var ErrInvalidOption = errors.New("invalid option")
