package printer

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/hgrep/internal/chunkset"
	"github.com/jpl-au/hgrep/internal/options"
)

func TestPrint_EmptyChunksIsNoop(t *testing.T) {
	var buf bytes.Buffer
	opts := options.Default()
	p := NewSyntectPrinter(&buf, &opts)

	file := &chunkset.File{
		Path:        "main.go",
		Contents:    []byte("package main\n"),
		LineMatches: []chunkset.LineMatch{{LineNumber: 1}},
	}
	require.NoError(t, p.Print(file))
	assert.Empty(t, buf.String())
}

func TestPrint_EmptyMatchesIsNoop(t *testing.T) {
	var buf bytes.Buffer
	opts := options.Default()
	p := NewSyntectPrinter(&buf, &opts)

	file := &chunkset.File{
		Path:     "main.go",
		Contents: []byte("package main\n"),
		Chunks:   []chunkset.Chunk{{Start: 1, End: 1}},
	}
	require.NoError(t, p.Print(file))
	assert.Empty(t, buf.String())
}

func TestPrint_RendersHeaderAndBody(t *testing.T) {
	var buf bytes.Buffer
	opts := options.Default()
	p := NewSyntectPrinter(&buf, &opts)

	content := "package main\n\nfunc main() {}\n"
	file := &chunkset.File{
		Path:        "main.go",
		Contents:    []byte(content),
		Chunks:      []chunkset.Chunk{{Start: 1, End: 3}},
		LineMatches: []chunkset.LineMatch{{LineNumber: 3}},
	}
	require.NoError(t, p.Print(file))

	out := buf.String()
	assert.Contains(t, out, "main.go")
	// Differently styled tokens are separated by SGR color escapes, so the
	// body text is checked with the escapes stripped.
	plain := regexp.MustCompile("\x1b\\[[0-9;]*m").ReplaceAllString(out, "")
	assert.Contains(t, plain, "func main")
}

func TestPrint_UnknownThemeFails(t *testing.T) {
	var buf bytes.Buffer
	opts := options.Default()
	opts.Theme = "not-a-real-theme"
	p := NewSyntectPrinter(&buf, &opts)

	file := &chunkset.File{
		Path:        "main.go",
		Contents:    []byte("package main\n"),
		Chunks:      []chunkset.Chunk{{Start: 1, End: 1}},
		LineMatches: []chunkset.LineMatch{{LineNumber: 1}},
	}
	assert.Error(t, p.Print(file))
}
