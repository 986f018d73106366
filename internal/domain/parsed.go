package domain

// PageSpan maps a contiguous byte range of extracted text back to its source
// page. Spans are sorted by Start and non-overlapping; pages start at 1.
type PageSpan struct {
	Start int
	End   int
	Page  int
}

// ParsedContent is the parser output: plain text plus an optional page map
// aligned to byte offsets of Text.
type ParsedContent struct {
	Text  string
	Pages []PageSpan
}
