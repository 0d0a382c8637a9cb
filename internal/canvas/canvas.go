// Package canvas draws highlighted lines to an io.Writer as ANSI escape
// sequences: tab expansion, CJK/ZWJ-aware character widths, wrap-aware
// text breaking, match-region coloring, and True/256/16 color downgrading.
//
// Grounded on the Canvas/Wrapping/Region/LineDrawState machinery in
// original_source/src/syntect.rs, adapted from syntect's `Style`/`Color`
// (which smuggles literal ANSI color indices through bat's `a == 0`/
// `a == 1` alpha-channel encoding) onto termenv's profile-aware Color
// conversion instead: a Color here is always a plain 24-bit RGB value (or
// unset), and the True→256→16 downgrade happens uniformly in setColor via
// the chosen termenv.Profile rather than by hand-rolled bit twiddling.
package canvas

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/jpl-au/hgrep/internal/options"
)

const zeroWidthJoiner = '‍'

var cjkWidth = runewidth.NewCondition()

func init() {
	cjkWidth.EastAsianWidth = true
}

// DrawState is what drawText returns: either the width written when the
// text fit, or the unwritten remainder after a wrap break.
type DrawState struct {
	wrapped bool
	width   int
	rest    string
}

// Continuing reports whether the line finished on this row (no wrap).
func (s DrawState) Continuing() (width int, ok bool) {
	if s.wrapped {
		return 0, false
	}
	return s.width, true
}

// Wrapping carries the state needed to resume drawing a line on the next
// row after a wrap break.
type Wrapping struct {
	ConsumedBytes int
	RemainingText string
	LastTokenIdx  int
}

// SlideRegion shifts region left by the bytes already drawn on the
// finished row.
func (w *Wrapping) SlideRegion(region *Region) {
	region.SlideLeft(w.ConsumedBytes)
}

// EatWrittenTokens returns the slice of tokens still to be drawn,
// splicing the partially-drawn token's remaining text back in as its new
// head element.
func (w *Wrapping) EatWrittenTokens(tokens []Token) []Token {
	if w.RemainingText == "" {
		return tokens[w.LastTokenIdx+1:]
	}
	rest := tokens[w.LastTokenIdx:]
	rest[0].Text = w.RemainingText
	return rest
}

// Canvas is a single-pass ANSI text writer for one file's output.
type Canvas struct {
	out      io.Writer
	profile  termenv.Profile
	tabWidth int
	wrap     bool

	hasBackground bool
	defaultBg     Color
	matchBg       Color
	regionFg      Color
	regionBg      Color

	haveFg bool
	curFg  Color
	haveBg bool
	curBg  Color
}

// Config bundles the per-file construction parameters for a Canvas.
type Config struct {
	TabWidth      int
	Wrap          bool
	ColorSupport  options.ColorSupport
	HasBackground bool
	DefaultBg     Color
	MatchBg       Color
	RegionFg      Color
	RegionBg      Color
}

// New builds a Canvas writing to out.
func New(out io.Writer, cfg Config) *Canvas {
	return &Canvas{
		out:           out,
		profile:       profileFor(cfg.ColorSupport),
		tabWidth:      cfg.TabWidth,
		wrap:          cfg.Wrap,
		hasBackground: cfg.HasBackground,
		defaultBg:     cfg.DefaultBg,
		matchBg:       cfg.MatchBg,
		regionFg:      cfg.RegionFg,
		regionBg:      cfg.RegionBg,
	}
}

func profileFor(support options.ColorSupport) termenv.Profile {
	switch support {
	case options.TrueColor:
		return termenv.TrueColor
	case options.Ansi256:
		return termenv.ANSI256
	default:
		return termenv.ANSI
	}
}

// StringWidth returns the CJK-aware display width of s, ignoring tabs and
// ZWJ sequences (used for sizing plain strings like the header path,
// never tokenized line content).
func StringWidth(s string) int { return cjkWidth.StringWidth(s) }

func (c Color) hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Write implements io.Writer so Canvas can be handed to fmt.Fprintf etc,
// matching the original's `Deref<Target = W>` convenience.
func (cv *Canvas) Write(p []byte) (int, error) { return cv.out.Write(p) }

// DrawSpaces writes num literal space characters.
func (cv *Canvas) DrawSpaces(num int) error {
	if num <= 0 {
		return nil
	}
	buf := make([]byte, num)
	for i := range buf {
		buf[i] = ' '
	}
	_, err := cv.out.Write(buf)
	return err
}

// DrawNewline resets all color state and writes a newline. Colors are
// reset here (rather than left to bleed into the next line) to guarantee
// every line starts from a clean terminal state.
func (cv *Canvas) DrawNewline() error {
	if _, err := io.WriteString(cv.out, "\x1b[0m\n"); err != nil {
		return err
	}
	cv.haveFg, cv.haveBg = false, false
	return nil
}

func (cv *Canvas) setColor(bg bool, c Color) error {
	if !c.Set {
		return nil
	}
	seq := cv.profile.Color(c.hex()).Sequence(bg)
	if seq == "" {
		return nil
	}
	_, err := fmt.Fprintf(cv.out, "\x1b[%sm", seq)
	return err
}

// SetFG sets the foreground color, skipping the escape sequence entirely
// when it already matches the current one.
func (cv *Canvas) SetFG(c Color) error {
	if cv.haveFg && cv.curFg == c {
		return nil
	}
	if err := cv.setColor(false, c); err != nil {
		return err
	}
	cv.haveFg, cv.curFg = true, c
	return nil
}

// SetBG sets the background color, with the same memoization as SetFG.
func (cv *Canvas) SetBG(c Color) error {
	if cv.haveBg && cv.curBg == c {
		return nil
	}
	if err := cv.setColor(true, c); err != nil {
		return err
	}
	cv.haveBg, cv.curBg = true, c
	return nil
}

// SetDefaultBG applies the theme's background color, when background
// coloring is enabled at all.
func (cv *Canvas) SetDefaultBG() error {
	if cv.hasBackground && cv.defaultBg.Set {
		return cv.SetBG(cv.defaultBg)
	}
	return nil
}

// SetBold writes the bold SGR sequence directly, for callers (like the
// header path) that want bold text outside of a token's own font style.
func (cv *Canvas) SetBold() error {
	_, err := io.WriteString(cv.out, "\x1b[1m")
	return err
}

func (cv *Canvas) setUnderline() error {
	_, err := io.WriteString(cv.out, "\x1b[4m")
	return err
}

func (cv *Canvas) setFontStyle(style TokenStyle) error {
	if style.Bold {
		if err := cv.SetBold(); err != nil {
			return err
		}
	}
	if style.Underline {
		if err := cv.setUnderline(); err != nil {
			return err
		}
	}
	return nil
}

func (cv *Canvas) unsetFontStyle(style TokenStyle) error {
	if style.Bold {
		if _, err := io.WriteString(cv.out, "\x1b[22m"); err != nil {
			return err
		}
	}
	if style.Underline {
		if _, err := io.WriteString(cv.out, "\x1b[24m"); err != nil {
			return err
		}
	}
	return nil
}

// SetMatchBGColor applies the matched-line background, when the theme
// defines one.
func (cv *Canvas) SetMatchBGColor() error {
	if cv.matchBg.Set {
		return cv.SetBG(cv.matchBg)
	}
	return nil
}

func (cv *Canvas) setRegionColor() error {
	if cv.regionFg.Set {
		if err := cv.SetFG(cv.regionFg); err != nil {
			return err
		}
	}
	if cv.regionBg.Set {
		if err := cv.SetBG(cv.regionBg); err != nil {
			return err
		}
	}
	return nil
}

func (cv *Canvas) setBoundaryColor(boundary RegionBoundary, restoreFg Color) error {
	switch boundary {
	case BoundaryStart:
		return cv.setRegionColor()
	case BoundaryEnd:
		if err := cv.SetFG(restoreFg); err != nil {
			return err
		}
		return cv.SetMatchBGColor()
	default:
		return nil
	}
}

// drawText writes text up to limit display columns, honoring tabs, CJK
// widths, and zero-width joiners. It stops and returns the unwritten
// remainder the moment the next character (or a tab's expansion) would
// exceed limit, padding the row out to limit with spaces first.
func (cv *Canvas) drawText(text string, limit int, boundaries *RegionBoundaries) (DrawState, error) {
	width := 0
	sawZWJ := false

	for i, r := range text {
		if boundaries != nil {
			boundary, restoreFg := boundaries.BoundaryAt(i)
			if err := cv.setBoundaryColor(boundary, restoreFg); err != nil {
				return DrawState{}, err
			}
		}

		if r == '\t' && cv.tabWidth > 0 {
			w := cv.tabWidth
			if width+w > limit {
				if err := cv.DrawSpaces(limit - width); err != nil {
					return DrawState{}, err
				}
				return DrawState{wrapped: true, rest: text[i+1:]}, nil
			}
			if err := cv.DrawSpaces(cv.tabWidth); err != nil {
				return DrawState{}, err
			}
			width += w
			continue
		}

		var w int
		switch {
		case r == zeroWidthJoiner:
			sawZWJ = true
			w = 0
		case sawZWJ:
			sawZWJ = false
			w = 0
		case r == '\t':
			// Reached only when tabWidth <= 0: tabs aren't expanded, and
			// are not column-accounted either (callers wanting expansion
			// set a positive tab width instead).
			w = 0
		default:
			w = cjkWidth.RuneWidth(r)
		}

		if width+w > limit {
			if err := cv.DrawSpaces(limit - width); err != nil {
				return DrawState{}, err
			}
			return DrawState{wrapped: true, rest: text[i:]}, nil
		}
		if _, err := io.WriteString(cv.out, string(r)); err != nil {
			return DrawState{}, err
		}
		width += w
	}
	return DrawState{width: width}, nil
}

func (cv *Canvas) drawTextNoWrap(text string) (int, error) {
	if cv.tabWidth == 0 {
		if _, err := io.WriteString(cv.out, text); err != nil {
			return 0, err
		}
		return cjkWidth.StringWidth(text), nil
	}

	width := 0
	for _, r := range text {
		if r == '\t' {
			if err := cv.DrawSpaces(cv.tabWidth); err != nil {
				return 0, err
			}
			width += cv.tabWidth
			continue
		}
		if _, err := io.WriteString(cv.out, string(r)); err != nil {
			return 0, err
		}
		width += cjkWidth.RuneWidth(r)
	}
	return width, nil
}

func (cv *Canvas) drawTextNoWrapWithRegion(text string, boundaries *RegionBoundaries) (int, error) {
	width := 0
	for i, r := range text {
		boundary, restoreFg := boundaries.BoundaryAt(i)
		if err := cv.setBoundaryColor(boundary, restoreFg); err != nil {
			return 0, err
		}
		if r == '\t' && cv.tabWidth > 0 {
			if err := cv.DrawSpaces(cv.tabWidth); err != nil {
				return 0, err
			}
			width += cv.tabWidth
			continue
		}
		if _, err := io.WriteString(cv.out, string(r)); err != nil {
			return 0, err
		}
		width += cjkWidth.RuneWidth(r)
	}
	return width, nil
}

// FillSpaces pads with spaces from writtenWidth out to maxWidth.
func (cv *Canvas) FillSpaces(writtenWidth, maxWidth int) error {
	if writtenWidth < maxWidth {
		return cv.DrawSpaces(maxWidth - writtenWidth)
	}
	return nil
}

// DrawMatched draws one matched line's tokens, region-aware. The whole
// row is painted with the match background; within the region the token's
// own foreground is suppressed so the region's highlight color shows
// through uninterrupted, while its bold/underline font style still applies.
func (cv *Canvas) DrawMatched(region *Region, tokens []Token, maxWidth int) (*Wrapping, error) {
	if err := cv.SetMatchBGColor(); err != nil {
		return nil, err
	}

	startOffset := 0
	width := 0
	for idx, tok := range tokens {
		length := len(tok.Text)
		endOffset := startOffset + length

		// Bold/underline still apply inside the region (spec: only the
		// token's own foreground is suppressed there), so setFontStyle
		// always runs; SetFG is gated to keep the region highlight color
		// showing through uninterrupted.
		if !region.Contains(startOffset) {
			if err := cv.SetFG(tok.Style.Foreground); err != nil {
				return nil, err
			}
		}
		if err := cv.setFontStyle(tok.Style); err != nil {
			return nil, err
		}

		boundaries := region.Boundaries(startOffset, endOffset, tok.Style.Foreground)

		if cv.wrap {
			state, err := cv.drawText(tok.Text, maxWidth-width, boundaries)
			if err != nil {
				return nil, err
			}
			if w, ok := state.Continuing(); ok {
				width += w
			} else {
				bytes := endOffset - len(state.rest)
				return &Wrapping{ConsumedBytes: bytes, RemainingText: state.rest, LastTokenIdx: idx}, nil
			}
		} else if boundaries != nil {
			w, err := cv.drawTextNoWrapWithRegion(tok.Text, boundaries)
			if err != nil {
				return nil, err
			}
			width += w
		} else {
			w, err := cv.drawTextNoWrap(tok.Text)
			if err != nil {
				return nil, err
			}
			width += w
		}

		if err := cv.unsetFontStyle(tok.Style); err != nil {
			return nil, err
		}
		startOffset += length
	}

	// Reset to the match background in case a region ran to the end of
	// the line, leaving region colors active.
	if err := cv.SetMatchBGColor(); err != nil {
		return nil, err
	}
	if err := cv.FillSpaces(width, maxWidth); err != nil {
		return nil, err
	}
	return nil, nil
}

// Draw draws one line's tokens (matched or not) into at most maxWidth
// display columns, returning a non-nil Wrapping if wrap mode broke the
// line before exhausting its tokens.
func (cv *Canvas) Draw(tokens []Token, region *Region, maxWidth int) (*Wrapping, error) {
	if region != nil {
		return cv.DrawMatched(region, tokens, maxWidth)
	}

	byteOffset := 0
	width := 0
	for idx, tok := range tokens {
		if cv.hasBackground {
			if err := cv.SetBG(tok.Style.Background); err != nil {
				return nil, err
			}
		}
		if err := cv.SetFG(tok.Style.Foreground); err != nil {
			return nil, err
		}
		if err := cv.setFontStyle(tok.Style); err != nil {
			return nil, err
		}

		if cv.wrap {
			state, err := cv.drawText(tok.Text, maxWidth-width, nil)
			if err != nil {
				return nil, err
			}
			if w, ok := state.Continuing(); ok {
				width += w
			} else {
				bytes := byteOffset + len(tok.Text) - len(state.rest)
				return &Wrapping{ConsumedBytes: bytes, RemainingText: state.rest, LastTokenIdx: idx}, nil
			}
		} else {
			w, err := cv.drawTextNoWrap(tok.Text)
			if err != nil {
				return nil, err
			}
			width += w
		}

		if err := cv.unsetFontStyle(tok.Style); err != nil {
			return nil, err
		}
		byteOffset += len(tok.Text)
	}

	if width == 0 {
		if err := cv.SetDefaultBG(); err != nil {
			return nil, err
		}
	}
	if cv.hasBackground {
		if err := cv.FillSpaces(width, maxWidth); err != nil {
			return nil, err
		}
	}
	return nil, nil
}
