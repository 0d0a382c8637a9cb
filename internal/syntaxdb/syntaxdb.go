// Package syntaxdb resolves a chroma lexer for a file path, the Go
// stand-in for spec.md §4.3's SyntaxDB over a pre-built syntax database.
//
// Grounded on the teacher's glamour-via-chroma markdown pipeline
// (extension/document/cat.go) for the general idea of handing a file's
// content to a chroma-backed highlighter; the override table and
// fallback-to-plain-text behavior are lifted directly from
// original_source/src/syntect.rs's `find_syntax`.
package syntaxdb

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// extensionOverrides take priority over chroma's filename-glob matching,
// verbatim from the original tool. FindSyntax does no first-line content
// detection.
var extensionOverrides = map[string]string{
	".fs":  "F#",
	".h":   "C++",
	".pac": "JavaScript (Babel)",
}

// DB resolves syntaxes by path. It wraps chroma's lexer registry; there is
// no separate "load once from a blob" step because chroma's lexers are
// compiled into the binary already (the opaque compressed blob of
// spec.md §4.3 is, in this Go rendition, chroma's own embedded lexer
// table).
type DB struct{}

// New returns a ready-to-use syntax database.
func New() *DB { return &DB{} }

// FindSyntax resolves a lexer for path. Overrides are checked first; then
// chroma's filename-glob matching; finally the plain-text lexer, which
// this never fails to return.
func (db *DB) FindSyntax(path string) chroma.Lexer {
	ext := strings.ToLower(filepath.Ext(path))
	if name, ok := extensionOverrides[ext]; ok {
		if l := lexers.Get(name); l != nil {
			return chroma.Coalesce(l)
		}
	}

	if l := lexers.Match(path); l != nil {
		return chroma.Coalesce(l)
	}

	return chroma.Coalesce(lexers.Fallback)
}
