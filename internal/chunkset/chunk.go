// Package chunkset groups grep matches by file and merges their
// surrounding context windows into non-overlapping line-range chunks.
//
// Grounded on original_source's chunk model (referenced from syntect.rs's
// `File`/`Line`/`LineMatch` usage) and on the teacher's internal/grep
// package, which builds the same match+context line groups for its own
// `-C` output format.
package chunkset

import "fmt"

// LineMatch records that a given line number was a match, optionally with
// a byte-range highlight within that line.
type LineMatch struct {
	LineNumber uint64
	Range      *ByteRange // nil when no highlight position is known
}

// ByteRange is a half-open byte interval [Start, End) within a line's bytes.
type ByteRange struct {
	Start int
	End   int
}

// Chunk is an inclusive, 1-indexed line range.
type Chunk struct {
	Start uint64
	End   uint64
}

// File is one grouped, assembled search result: all matches for a single
// path plus the byte content needed to render them.
type File struct {
	Path        string
	Contents    []byte
	LineMatches []LineMatch
	Chunks      []Chunk
}

// Validate checks the invariants every assembled File must uphold:
// line matches ascending, chunks ascending/non-overlapping/non-adjacent,
// and every match line falling within some chunk.
func (f *File) Validate() error {
	for i := 1; i < len(f.LineMatches); i++ {
		if f.LineMatches[i-1].LineNumber > f.LineMatches[i].LineNumber {
			return fmt.Errorf("line matches out of order at index %d", i)
		}
	}
	for i, c := range f.Chunks {
		if c.Start > c.End {
			return fmt.Errorf("chunk %d has start > end (%d > %d)", i, c.Start, c.End)
		}
		if i > 0 {
			prev := f.Chunks[i-1]
			if prev.End+1 >= c.Start {
				return fmt.Errorf("chunks %d and %d are overlapping or adjacent", i-1, i)
			}
		}
	}
	for _, m := range f.LineMatches {
		if !inAnyChunk(f.Chunks, m.LineNumber) {
			return fmt.Errorf("match at line %d falls outside every chunk", m.LineNumber)
		}
	}
	return nil
}

func inAnyChunk(chunks []Chunk, line uint64) bool {
	for _, c := range chunks {
		if c.Start <= line && line <= c.End {
			return true
		}
	}
	return false
}
