// Package highlight tokenizes a whole file's content with chroma and
// hands back per-line token runs styled for Canvas.
//
// Grounded on LineHighlighter in original_source/src/syntect.rs, which
// wraps syntect's incremental per-line `ParseState`/`HighlightIterator`
// pair behind `skip_line`/`highlight` so the Drawer can discard lines
// outside the current chunk without losing highlighter state. chroma has
// no equivalent incremental API: Lexer.Tokenise consumes the whole input
// at once and has no notion of "advance state without emitting." Rather
// than fake incrementality, this package tokenizes the full file exactly
// once up front and splits the resulting token stream into per-line runs
// by walking embedded newlines, so lookups by line number are simple
// slice indexing with no parse state to skip forward through at all.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"

	"github.com/jpl-au/hgrep/internal/canvas"
)

// LineHighlighter answers "what are the styled tokens for line N" for one
// file, having fully tokenized it once at construction time.
type LineHighlighter struct {
	lines [][]canvas.Token
}

// New tokenizes content with lexer and resolves each token's color/font
// style from style, splitting the result into one token slice per line.
func New(lexer chroma.Lexer, style *chroma.Style, content string) (*LineHighlighter, error) {
	iter, err := lexer.Tokenise(nil, content)
	if err != nil {
		return nil, err
	}

	var lines [][]canvas.Token
	var current []canvas.Token

	for _, tok := range iter.Tokens() {
		ts := tokenStyle(style, tok.Type)
		text := tok.Value
		for {
			idx := strings.IndexByte(text, '\n')
			if idx < 0 {
				if text != "" {
					current = append(current, canvas.Token{Style: ts, Text: text})
				}
				break
			}
			// Keep the newline attached to the line it terminates, like
			// the original's LinesInclusive; Drawer.drawLine chomps it
			// off the last token before drawing.
			current = append(current, canvas.Token{Style: ts, Text: text[:idx+1]})
			lines = append(lines, current)
			current = nil
			text = text[idx+1:]
		}
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}

	return &LineHighlighter{lines: lines}, nil
}

// Line returns the styled tokens for 1-indexed line n, or nil if the file
// has fewer lines than n (e.g. a file with no trailing newline whose last
// recorded line was never actually emitted by the lexer).
func (h *LineHighlighter) Line(n uint64) []canvas.Token {
	if n < 1 || n > uint64(len(h.lines)) {
		return nil
	}
	return h.lines[n-1]
}

func tokenStyle(style *chroma.Style, tt chroma.TokenType) canvas.TokenStyle {
	entry := style.Get(tt)
	return canvas.TokenStyle{
		Foreground: colorFromChroma(entry.Colour),
		Background: colorFromChroma(entry.Background),
		Bold:       entry.Bold == chroma.Yes,
		Underline:  entry.Underline == chroma.Yes,
	}
}

func colorFromChroma(c chroma.Colour) canvas.Color {
	if !c.IsSet() {
		return canvas.Unset
	}
	return canvas.RGB(c.Red(), c.Green(), c.Blue())
}
