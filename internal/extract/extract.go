package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"resume-reviewer/internal/resume"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"
)

var (
	// ErrUnsupportedType is returned for formats other than PDF, DOCX and plain text.
	ErrUnsupportedType = errors.New("unsupported document type")
	// ErrEmptyDocument is returned when no page yields any text.
	ErrEmptyDocument = errors.New("document contains no extractable text")
)

// Extractor pulls per-page text out of uploaded documents.
// Libraries used: github.com/ledongthuc/pdf (PDF) and github.com/nguyenthenguyen/docx (DOCX).
type Extractor struct{}

func New() *Extractor { return &Extractor{} }

// ExtractPages returns the text of each page. DOCX and plain text have no
// page model; form feeds split plain text, DOCX is a single page.
func (e *Extractor) ExtractPages(ctx context.Context, data []byte, mimeType, fileName string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		pages []string
		err   error
	)
	switch kind := NormalizeMimeType(mimeType, fileName); kind {
	case MimePDF:
		pages, err = extractPDF(data)
	case MimeDOCX:
		pages, err = extractDOCX(data)
	case MimeText:
		pages, err = extractPlain(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, kind)
	}
	if err != nil {
		return nil, err
	}

	for _, p := range pages {
		if strings.TrimSpace(p) != "" {
			return pages, nil
		}
	}
	return nil, ErrEmptyDocument
}

func extractPDF(data []byte) (pages []string, err error) {
	// The PDF reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	n := reader.NumPage()
	pages = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("read pdf page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

func extractDOCX(data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, errors.New("empty docx data")
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()

	return []string{stripDocxXML(doc.Editable().GetContent())}, nil
}

func extractPlain(data []byte) ([]string, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: text is not valid UTF-8", ErrUnsupportedType)
	}
	return strings.Split(string(data), "\f"), nil
}

// stripDocxXML keeps character data and turns paragraph and break ends
// into line breaks.
func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if (t.Name.Local == "p" || t.Name.Local == "br") && buf.Len() > 0 {
				buf.WriteString("\n")
			}
		case xml.StartElement:
			if t.Name.Local == "tab" {
				buf.WriteString("\t")
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// NormalizeMimeType maps a declared or sniffed content type, falling back
// to the file extension for generic types.
func NormalizeMimeType(mimeType, fileName string) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	switch clean {
	case MimePDF, MimeDOCX, MimeText:
		return clean
	case "", "application/octet-stream", "application/zip", "application/x-zip-compressed":
		switch strings.ToLower(filepath.Ext(fileName)) {
		case ".pdf":
			return MimePDF
		case ".docx":
			return MimeDOCX
		case ".txt", ".text", ".md":
			return MimeText
		}
	}
	return clean
}

var _ resume.PageExtractor = (*Extractor)(nil)
