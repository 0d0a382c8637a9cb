package canvas

// Region is the single highlighted match span within a matched line, given
// as a half-open byte interval. A Region with no range set still marks the
// line as matched (drawn with the match background) but paints no
// character-level region color, for a matched line whose exact match
// position wasn't reported upstream.
type Region struct {
	hasRange bool
	start    int
	end      int
}

// NewMatchedRegion builds a Region with no particular byte range: the line
// is matched, but nothing within it gets region coloring.
func NewMatchedRegion() *Region { return &Region{} }

// NewRegionRange builds a Region covering the half-open [start, end) byte
// range.
func NewRegionRange(start, end int) *Region {
	return &Region{hasRange: true, start: start, end: end}
}

// SlideLeft shifts the region left by bytes, used after a wrapped line
// break consumes that many bytes of the line. A region entirely consumed
// collapses to an empty range and stops matching anything further.
func (r *Region) SlideLeft(bytes int) {
	if r == nil || !r.hasRange {
		return
	}
	s := r.start - bytes
	if s < 0 {
		s = 0
	}
	e := r.end - bytes
	if e < 0 {
		e = 0
	}
	if s == e {
		r.hasRange = false
	}
	r.start, r.end = s, e
}

// Contains reports whether byteOffset falls within the region's half-open
// range.
func (r *Region) Contains(byteOffset int) bool {
	if r == nil || !r.hasRange {
		return false
	}
	return r.start <= byteOffset && byteOffset < r.end
}

// RegionBoundary describes what happens to the drawn color at one byte
// offset within a token.
type RegionBoundary int

const (
	BoundaryNone RegionBoundary = iota
	BoundaryStart
	BoundaryEnd
)

// RegionBoundaries is a region reduced to token-local coordinates, so the
// per-rune draw loop can ask "does the region start or end at this byte
// offset" without re-deriving token_start/token_end each time.
type RegionBoundaries struct {
	tokenStart int
	start, end int
	restoreFg  Color
}

// Boundaries reports the region's boundaries relative to a token spanning
// the half-open byte range [tokenStart, tokenEnd), or nil if neither the
// region's start nor its end falls inside that span. restoreFg is the color to restore to
// when the End boundary is crossed (the token's own foreground).
func (r *Region) Boundaries(tokenStart, tokenEnd int, restoreFg Color) *RegionBoundaries {
	if r == nil || !r.hasRange {
		return nil
	}
	includeStart := tokenStart <= r.start && r.start < tokenEnd
	includeEnd := tokenStart <= r.end && r.end < tokenEnd
	if !includeStart && !includeEnd {
		return nil
	}
	return &RegionBoundaries{tokenStart: tokenStart, start: r.start, end: r.end, restoreFg: restoreFg}
}

// BoundaryAt reports which boundary (if any) falls at byte offset
// tokenStart+idxInToken.
func (b *RegionBoundaries) BoundaryAt(idxInToken int) (RegionBoundary, Color) {
	offset := b.tokenStart + idxInToken
	switch offset {
	case b.start:
		return BoundaryStart, Color{}
	case b.end:
		return BoundaryEnd, b.restoreFg
	default:
		return BoundaryNone, Color{}
	}
}
