package drawer

// lineChars is the box-drawing character set the gutter and separators
// are built from, grounded on LineChars in
// original_source/src/syntect.rs: a Unicode set by default, an ASCII set
// under --ascii-lines for terminals/fonts without box-drawing glyphs.
type lineChars struct {
	horizontal       string
	vertical         string
	verticalAndRight string
	downAndHorizontal string
	upAndHorizontal   string
	dashedHorizontal  string
}

var unicodeLineChars = lineChars{
	horizontal:        "─",
	vertical:          "│",
	verticalAndRight:  "├",
	downAndHorizontal: "┬",
	upAndHorizontal:   "┴",
	dashedHorizontal:  "╶",
}

var asciiLineChars = lineChars{
	horizontal:        "-",
	vertical:          "|",
	verticalAndRight:  "|",
	downAndHorizontal: "-",
	upAndHorizontal:   "-",
	dashedHorizontal:  "-",
}
