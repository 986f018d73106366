package parser

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/docdex/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Text passes plain-text documents through unchanged. No page map.
type Text struct{}

// Parse implements Parser.
func (Text) Parse(data []byte) (domain.ParsedContent, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return domain.ParsedContent{}, fmt.Errorf("%w: not valid UTF-8", domain.ErrParseFailure)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return domain.ParsedContent{}, fmt.Errorf("%w: empty document", domain.ErrParseFailure)
	}

	return domain.ParsedContent{Text: text}, nil
}
