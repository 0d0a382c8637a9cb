package drawer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/hgrep/internal/chunkset"
	"github.com/jpl-au/hgrep/internal/highlight"
	"github.com/jpl-au/hgrep/internal/options"
	"github.com/jpl-au/hgrep/internal/themedb"
)

func testHighlighter(t *testing.T, content string) *highlight.LineHighlighter {
	t.Helper()
	theme, err := themedb.New().Resolve("", options.TrueColor)
	require.NoError(t, err)
	hl, err := highlight.New(lexers.Fallback, theme.Style, content)
	require.NoError(t, err)
	return hl
}

func TestNew_GutterWidthNotWidenedWhenAlreadyWideEnough(t *testing.T) {
	theme, err := themedb.New().Resolve("", options.TrueColor)
	require.NoError(t, err)

	opts := options.Default()
	chunks := []chunkset.Chunk{{Start: 1, End: 2}, {Start: 9998, End: 9999}}
	d := New(&bytes.Buffer{}, &opts, theme, chunks)

	// lnumWidth sized from the last chunk's End (9999 -> 4 digits), widened
	// to fit the "..." separator only when narrower than 3. Default() has
	// the grid on, which adds 4 gutter columns.
	assert.Equal(t, 4+4, d.gutterWidth())
}

func TestNew_GutterWidthWidenedToFitSeparator(t *testing.T) {
	theme, err := themedb.New().Resolve("", options.TrueColor)
	require.NoError(t, err)

	opts := options.Default()
	chunks := []chunkset.Chunk{{Start: 1, End: 1}, {Start: 5, End: 5}}
	d := New(&bytes.Buffer{}, &opts, theme, chunks)

	// 1 digit widened to 3, plus 4 columns for the default grid.
	assert.Equal(t, 3+4, d.gutterWidth())
}

func TestNew_GridAddsTwoMoreGutterColumns(t *testing.T) {
	theme, err := themedb.New().Resolve("", options.TrueColor)
	require.NoError(t, err)

	opts := options.Default()
	opts.Grid = true
	chunks := []chunkset.Chunk{{Start: 1, End: 1}}
	d := New(&bytes.Buffer{}, &opts, theme, chunks)

	assert.Equal(t, d.lnumWidth+4, d.gutterWidth())
}

func TestDrawHeader_WritesBoldPathBanner(t *testing.T) {
	theme, err := themedb.New().Resolve("", options.TrueColor)
	require.NoError(t, err)

	var buf bytes.Buffer
	opts := options.Default()
	opts.Grid = false
	d := New(&buf, &opts, theme, nil)

	require.NoError(t, d.DrawHeader("path/to/file.go"))
	assert.Contains(t, buf.String(), "path/to/file.go")
}

func TestDrawHeader_GridDrawsTrailingJunctionLine(t *testing.T) {
	theme, err := themedb.New().Resolve("", options.TrueColor)
	require.NoError(t, err)

	var buf bytes.Buffer
	opts := options.Default()
	opts.Grid = true
	d := New(&buf, &opts, theme, nil)

	require.NoError(t, d.DrawHeader("f.go"))
	// Two horizontal-line rows, each TermWidth cells wide: the top border
	// is all horizontals, and the grid row beneath the path banner has one
	// down-and-horizontal junction in place of a horizontal.
	assert.Equal(t, 2*opts.TermWidth-1, strings.Count(buf.String(), unicodeLineChars.horizontal))
}

func TestDrawFooter_NoopWithoutGrid(t *testing.T) {
	theme, err := themedb.New().Resolve("", options.TrueColor)
	require.NoError(t, err)

	var buf bytes.Buffer
	opts := options.Default()
	opts.Grid = false
	d := New(&buf, &opts, theme, nil)

	require.NoError(t, d.DrawFooter())
	assert.Empty(t, buf.String())
}

func TestDrawFooter_DrawsLineWhenGridEnabled(t *testing.T) {
	theme, err := themedb.New().Resolve("", options.TrueColor)
	require.NoError(t, err)

	var buf bytes.Buffer
	opts := options.Default()
	opts.Grid = true
	d := New(&buf, &opts, theme, nil)

	require.NoError(t, d.DrawFooter())
	assert.NotEmpty(t, buf.String())
}

func TestDrawBody_RendersEveryLineOfEveryChunk(t *testing.T) {
	content := "package main\n\nfunc main() {}\n"
	hl := testHighlighter(t, content)

	theme, err := themedb.New().Resolve("", options.TrueColor)
	require.NoError(t, err)

	var buf bytes.Buffer
	opts := options.Default()
	chunks := []chunkset.Chunk{{Start: 1, End: 3}}
	d := New(&buf, &opts, theme, chunks)

	file := &chunkset.File{
		Path:     "main.go",
		Contents: []byte(content),
		Chunks:   chunks,
		LineMatches: []chunkset.LineMatch{
			{LineNumber: 3},
		},
	}

	require.NoError(t, d.DrawBody(file, hl))
	out := buf.String()
	assert.Contains(t, out, "package main")
	assert.Contains(t, out, "func main")
}

func TestDrawBody_DrawsSeparatorBetweenChunksButNotAfterLast(t *testing.T) {
	content := strings.Repeat("x\n", 20)
	hl := testHighlighter(t, content)

	theme, err := themedb.New().Resolve("", options.TrueColor)
	require.NoError(t, err)

	var buf bytes.Buffer
	opts := options.Default()
	opts.Grid = false
	chunks := []chunkset.Chunk{{Start: 1, End: 2}, {Start: 10, End: 11}}
	d := New(&buf, &opts, theme, chunks)

	file := &chunkset.File{Path: "f", Contents: []byte(content), Chunks: chunks}
	require.NoError(t, d.DrawBody(file, hl))

	assert.Equal(t, 1, strings.Count(buf.String(), "..."))
}

func TestDrawBody_FirstOnlyStopsAfterFirstChunk(t *testing.T) {
	content := strings.Repeat("x\n", 20)
	hl := testHighlighter(t, content)

	theme, err := themedb.New().Resolve("", options.TrueColor)
	require.NoError(t, err)

	var buf bytes.Buffer
	opts := options.Default()
	opts.FirstOnly = true
	chunks := []chunkset.Chunk{{Start: 1, End: 2}, {Start: 10, End: 11}}
	d := New(&buf, &opts, theme, chunks)

	file := &chunkset.File{Path: "f", Contents: []byte(content), Chunks: chunks}
	require.NoError(t, d.DrawBody(file, hl))

	assert.NotContains(t, buf.String(), "...")
}

func TestNumDigits(t *testing.T) {
	assert.Equal(t, 1, numDigits(0))
	assert.Equal(t, 1, numDigits(9))
	assert.Equal(t, 2, numDigits(10))
	assert.Equal(t, 4, numDigits(9999))
	assert.Equal(t, 5, numDigits(10000))
}
