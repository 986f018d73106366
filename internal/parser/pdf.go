package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/kailas-cloud/docdex/internal/domain"
)

// PDF extracts text page by page, recording a span per page so chunk
// positions can be mapped back to page numbers.
type PDF struct{}

// Parse implements Parser. Pages that yield no text are skipped; a document
// with no extractable text at all is a parse failure.
func (PDF) Parse(data []byte) (content domain.ParsedContent, err error) {
	// The pdf library panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			content = domain.ParsedContent{}
			err = fmt.Errorf("%w: pdf reader panic: %v", domain.ErrParseFailure, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return domain.ParsedContent{}, fmt.Errorf("%w: open pdf: %w", domain.ErrParseFailure, err)
	}

	var b strings.Builder
	var spans []domain.PageSpan

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		start := b.Len()
		b.WriteString(text)
		spans = append(spans, domain.PageSpan{Start: start, End: b.Len(), Page: i})
	}

	if b.Len() == 0 {
		return domain.ParsedContent{}, fmt.Errorf("%w: no extractable text", domain.ErrParseFailure)
	}

	return domain.ParsedContent{Text: b.String(), Pages: spans}, nil
}
