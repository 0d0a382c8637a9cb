// Package printer exposes the Printer capability (render one assembled
// File) and its in-process chroma-backed implementation.
//
// Grounded on spec.md §9's "Printer polymorphism" design note and
// original_source/src/syntect.rs's `SyntectPrinter`: two backends ("an
// in-process renderer" and "an external process wrapper") satisfy the
// same print(File) capability. SyntectPrinter here plays the first role;
// this package has no implementation of the second (no bat-process
// printer exists), only the Printer interface it would satisfy — see
// DESIGN.md.
package printer

import (
	"bytes"
	"io"
	"sync"

	"github.com/jpl-au/hgrep/internal/chunkset"
	"github.com/jpl-au/hgrep/internal/drawer"
	"github.com/jpl-au/hgrep/internal/highlight"
	"github.com/jpl-au/hgrep/internal/options"
	"github.com/jpl-au/hgrep/internal/syntaxdb"
	"github.com/jpl-au/hgrep/internal/themedb"
)

// Printer renders one assembled File to the printer's underlying writer.
// Implementations that wrap an external process must serialize their own
// writes; SyntectPrinter is safe to call concurrently from a worker pool
// because each call only ever touches its own drawing buffer until the
// very last, mutex-guarded write.
type Printer interface {
	Print(file *chunkset.File) error
}

// SyntectPrinter renders files in-process via chroma, writing fully
// composed per-file buffers to a shared writer serialized behind a mutex
// (so concurrent workers never interleave one file's output with
// another's).
type SyntectPrinter struct {
	out      io.Writer
	mu       sync.Mutex
	opts     *options.Options
	syntaxes *syntaxdb.DB
	themes   *themedb.DB
}

// NewSyntectPrinter builds a printer writing to out under opts.
func NewSyntectPrinter(out io.Writer, opts *options.Options) *SyntectPrinter {
	return &SyntectPrinter{
		out:      out,
		opts:     opts,
		syntaxes: syntaxdb.New(),
		themes:   themedb.New(),
	}
}

// Print renders file's header/body/footer into a private buffer, then
// takes the output lock just long enough to flush it whole.
func (p *SyntectPrinter) Print(file *chunkset.File) error {
	if len(file.Chunks) == 0 || len(file.LineMatches) == 0 {
		return nil
	}

	theme, err := p.themes.Resolve(p.opts.Theme, p.opts.ColorSupport)
	if err != nil {
		return err
	}
	lexer := p.syntaxes.FindSyntax(file.Path)

	var buf bytes.Buffer
	d := drawer.New(&buf, p.opts, theme, file.Chunks)

	if err := d.DrawHeader(file.Path); err != nil {
		return err
	}

	hl, err := highlight.New(lexer, theme.Style, string(file.Contents))
	if err != nil {
		return err
	}
	if err := d.DrawBody(file, hl); err != nil {
		return err
	}
	if err := d.DrawFooter(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	_, err = p.out.Write(buf.Bytes())
	return err
}
