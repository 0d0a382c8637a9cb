package canvas

// TokenStyle is the subset of a highlighter's per-token style Canvas needs
// to draw it: foreground/background color plus bold/underline. Decoupled
// from any particular highlighting library so Canvas stays a plain
// ANSI text grid, grounded on how Canvas in original_source/src/syntect.rs
// only ever touches `Style{foreground, background, font_style}` and never
// reaches into syntect internals.
type TokenStyle struct {
	Foreground Color
	Background Color
	Bold       bool
	Underline  bool
}

// Token is one highlighted run of text within a line.
type Token struct {
	Style TokenStyle
	Text  string
}

// Chomp strips a single trailing "\n" (and a preceding "\r") from the
// token's text, mirroring Token::chomp in the original: the highlighter
// requires a trailing newline on its input, but the drawer doesn't want to
// draw it (it needs to fill the rest of the line with spaces and reset
// colors before emitting its own newline).
func (t *Token) Chomp() {
	if n := len(t.Text); n > 0 && t.Text[n-1] == '\n' {
		t.Text = t.Text[:n-1]
		if n := len(t.Text); n > 0 && t.Text[n-1] == '\r' {
			t.Text = t.Text[:n-1]
		}
	}
}
