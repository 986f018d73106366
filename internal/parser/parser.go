// Package parser turns raw document bytes into plain text with an
// optional page map.
package parser

import (
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/docdex/internal/domain"
)

// Parser extracts plain text from raw document bytes. Failures are wrapped
// with domain.ErrParseFailure.
type Parser interface {
	Parse(data []byte) (domain.ParsedContent, error)
}

// ForName picks a parser from the document name's extension. Unknown
// extensions are treated as PDF, the dominant source format.
func ForName(name string) Parser {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md", ".text":
		return Text{}
	default:
		return PDF{}
	}
}
