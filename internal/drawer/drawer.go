// Package drawer composes a file's header, gutter, highlighted body, and
// footer into one ANSI-rendered block.
//
// Grounded on the Drawer type in original_source/src/syntect.rs: gutter
// width sizing, the header/separator/footer box-drawing, and the
// wrap-continuation gutter row are all ported line for line. The one
// structural change is draw_body: the original walks every line of the
// file via `LinesInclusive`, calling `hl.skip_line` on lines outside the
// current chunk purely to keep syntect's incremental parser state
// advanced. Since internal/highlight tokenizes the whole file once up
// front, Drawer.DrawBody instead iterates only the chunk line ranges
// directly; there is no parser state to keep in sync.
package drawer

import (
	"fmt"
	"io"

	"github.com/jpl-au/hgrep/internal/canvas"
	"github.com/jpl-au/hgrep/internal/chunkset"
	"github.com/jpl-au/hgrep/internal/highlight"
	"github.com/jpl-au/hgrep/internal/options"
	"github.com/jpl-au/hgrep/internal/themedb"
)

func numDigits(n uint64) int {
	if n == 0 {
		return 1
	}
	d := 0
	for n > 0 {
		d++
		n /= 10
	}
	return d
}

// Drawer renders one file's matched chunks to an io.Writer.
type Drawer struct {
	theme      *themedb.Theme
	grid       bool
	termWidth  int
	lnumWidth  int
	background bool
	firstOnly  bool
	gutterColor canvas.Color
	chars      lineChars
	canvas     *canvas.Canvas
}

// New builds a Drawer for one file's chunks. lnum_width is sized from the
// largest line number across all chunks, widened to fit the "..." chunk
// separator when there's more than one chunk.
func New(out io.Writer, opts *options.Options, theme *themedb.Theme, chunks []chunkset.Chunk) *Drawer {
	var lastLnum uint64
	if len(chunks) > 0 {
		lastLnum = chunks[len(chunks)-1].End
	}
	lnumWidth := numDigits(lastLnum)
	if len(chunks) > 1 && lnumWidth < 3 {
		lnumWidth = 3
	}

	gutterColor := theme.GutterForeground
	if !gutterColor.Set {
		gutterColor = canvas.RGB(128, 128, 128)
	}

	chars := unicodeLineChars
	if opts.AsciiLines {
		chars = asciiLineChars
	}

	cv := canvas.New(out, canvas.Config{
		TabWidth:      opts.TabWidth,
		Wrap:          opts.TextWrap == options.WrapChar,
		ColorSupport:  opts.ColorSupport,
		HasBackground: opts.BackgroundColor,
		DefaultBg:     theme.Background,
		MatchBg:       theme.MatchBackground,
		RegionFg:      theme.RegionForeground,
		RegionBg:      theme.RegionBackground,
	})

	return &Drawer{
		theme:       theme,
		grid:        opts.Grid,
		termWidth:   opts.TermWidth,
		lnumWidth:   lnumWidth,
		background:  opts.BackgroundColor,
		firstOnly:   opts.FirstOnly,
		gutterColor: gutterColor,
		chars:       chars,
		canvas:      cv,
	}
}

func (d *Drawer) gutterWidth() int {
	if d.grid {
		return d.lnumWidth + 4
	}
	return d.lnumWidth + 2
}

func (d *Drawer) drawHorizontalLine(sep string) error {
	if err := d.canvas.SetFG(d.gutterColor); err != nil {
		return err
	}
	if err := d.canvas.SetDefaultBG(); err != nil {
		return err
	}
	gw := d.gutterWidth()
	for i := 0; i < gw-2; i++ {
		if _, err := io.WriteString(d.canvas, d.chars.horizontal); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(d.canvas, sep); err != nil {
		return err
	}
	for i := 0; i < d.termWidth-gw+1; i++ {
		if _, err := io.WriteString(d.canvas, d.chars.horizontal); err != nil {
			return err
		}
	}
	return d.canvas.DrawNewline()
}

func (d *Drawer) drawLineNumber(lnum uint64, matched bool) error {
	fg := d.gutterColor
	if matched && d.theme.Foreground.Set {
		fg = d.theme.Foreground
	}
	if err := d.canvas.SetFG(fg); err != nil {
		return err
	}
	if err := d.canvas.SetDefaultBG(); err != nil {
		return err
	}
	width := numDigits(lnum)
	if err := d.canvas.DrawSpaces(d.lnumWidth - width); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(d.canvas, " %d", lnum); err != nil {
		return err
	}
	if d.grid {
		if matched {
			if err := d.canvas.SetFG(d.gutterColor); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(d.canvas, " %s", d.chars.vertical); err != nil {
			return err
		}
	}
	if err := d.canvas.SetDefaultBG(); err != nil {
		return err
	}
	_, err := io.WriteString(d.canvas, " ")
	return err
}

func (d *Drawer) drawWrappingGutter() error {
	if err := d.canvas.SetFG(d.gutterColor); err != nil {
		return err
	}
	if err := d.canvas.SetDefaultBG(); err != nil {
		return err
	}
	if err := d.canvas.DrawSpaces(d.lnumWidth + 2); err != nil {
		return err
	}
	if d.grid {
		_, err := fmt.Fprintf(d.canvas, "%s ", d.chars.vertical)
		return err
	}
	return nil
}

func (d *Drawer) drawSeparatorLine() error {
	if err := d.canvas.SetFG(d.gutterColor); err != nil {
		return err
	}
	if err := d.canvas.SetDefaultBG(); err != nil {
		return err
	}
	leftMargin := d.lnumWidth + 1 - 3
	if err := d.canvas.DrawSpaces(leftMargin); err != nil {
		return err
	}
	w := 3
	if d.grid {
		if _, err := fmt.Fprintf(d.canvas, "... %s", d.chars.verticalAndRight); err != nil {
			return err
		}
		w = 5
	} else if _, err := io.WriteString(d.canvas, "..."); err != nil {
		return err
	}
	if err := d.canvas.SetDefaultBG(); err != nil {
		return err
	}
	bodyWidth := d.termWidth - leftMargin - w
	for i := 0; i < bodyWidth; i++ {
		if _, err := io.WriteString(d.canvas, d.chars.dashedHorizontal); err != nil {
			return err
		}
	}
	return d.canvas.DrawNewline()
}

func (d *Drawer) drawLine(tokens []canvas.Token, lnum uint64, region *canvas.Region) error {
	if len(tokens) > 0 {
		tokens[len(tokens)-1].Chomp()
	}

	bodyWidth := d.termWidth - d.gutterWidth()
	if err := d.drawLineNumber(lnum, region != nil); err != nil {
		return err
	}

	for {
		wrapping, err := d.canvas.Draw(tokens, region, bodyWidth)
		if err != nil {
			return err
		}
		if wrapping == nil {
			break
		}
		if region != nil {
			wrapping.SlideRegion(region)
		}
		if err := d.canvas.DrawNewline(); err != nil {
			return err
		}
		if err := d.drawWrappingGutter(); err != nil {
			return err
		}
		tokens = wrapping.EatWrittenTokens(tokens)
	}

	return d.canvas.DrawNewline()
}

// DrawBody renders every chunk of file, separated by a "..." separator
// line between chunks (matching the original, skipped entirely in
// --first-only mode after the first chunk).
func (d *Drawer) DrawBody(file *chunkset.File, hl *highlight.LineHighlighter) error {
	matched := file.LineMatches

	for ci, chunk := range file.Chunks {
		for lnum := chunk.Start; lnum <= chunk.End; lnum++ {
			var region *canvas.Region
			if len(matched) > 0 && matched[0].LineNumber == lnum {
				m := matched[0]
				matched = matched[1:]
				if m.Range != nil {
					region = canvas.NewRegionRange(m.Range.Start, m.Range.End)
				} else {
					region = canvas.NewMatchedRegion()
				}
			}

			if err := d.drawLine(hl.Line(lnum), lnum, region); err != nil {
				return err
			}
		}

		if d.firstOnly {
			break
		}
		if ci < len(file.Chunks)-1 {
			if err := d.drawSeparatorLine(); err != nil {
				return err
			}
		}
	}
	return nil
}

// DrawHeader renders the file path banner above the body.
func (d *Drawer) DrawHeader(path string) error {
	if err := d.drawHorizontalLine(d.chars.horizontal); err != nil {
		return err
	}
	if err := d.canvas.SetDefaultBG(); err != nil {
		return err
	}
	if err := d.canvas.SetBold(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(d.canvas, " %s", path); err != nil {
		return err
	}
	if d.background {
		if err := d.canvas.FillSpaces(canvas.StringWidth(path)+1, d.termWidth); err != nil {
			return err
		}
	}
	if err := d.canvas.DrawNewline(); err != nil {
		return err
	}
	if d.grid {
		return d.drawHorizontalLine(d.chars.downAndHorizontal)
	}
	return nil
}

// DrawFooter renders the closing grid line, when grid drawing is enabled.
func (d *Drawer) DrawFooter() error {
	if d.grid {
		return d.drawHorizontalLine(d.chars.upAndHorizontal)
	}
	return nil
}
