package resume

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrExtraction wraps any failure of the text extractor. It is fatal for
// the document being parsed.
var ErrExtraction = errors.New("text extraction failed")

// PageExtractor turns a stored document into per-page text.
type PageExtractor interface {
	ExtractPages(ctx context.Context, data []byte, mimeType, fileName string) ([]string, error)
}

// Parse joins pages with a line break, normalizes the result and extracts
// sections and contact details from the normalized text. RawText keeps the
// joined text as extracted.
func Parse(pages []string) Document {
	return (&Parser{Segmenter: defaultSegmenter}).ParsePages(pages)
}

// Parser parses binary documents through a PageExtractor.
type Parser struct {
	Extractor PageExtractor
	Segmenter *Segmenter
}

// NewParser builds a Parser using the default header vocabulary.
func NewParser(extractor PageExtractor) *Parser {
	return &Parser{Extractor: extractor, Segmenter: defaultSegmenter}
}

// ParseFile extracts pages from data and parses them. Extraction errors are
// returned wrapped in ErrExtraction.
func (p *Parser) ParseFile(ctx context.Context, data []byte, mimeType, fileName string) (Document, error) {
	pages, err := p.Extractor.ExtractPages(ctx, data, mimeType, fileName)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrExtraction, err)
	}
	return p.ParsePages(pages), nil
}

// ParsePages is Parse with the parser's segmenter.
func (p *Parser) ParsePages(pages []string) Document {
	seg := p.Segmenter
	if seg == nil {
		seg = defaultSegmenter
	}
	raw := strings.Join(pages, "\n")
	clean := Normalize(raw)
	return Document{
		RawText:  raw,
		Sections: seg.Segment(clean),
		Contact:  ExtractContact(clean),
	}
}
