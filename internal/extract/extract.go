package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrDocumentRead indicates the upload is not a readable PDF.
	ErrDocumentRead = errors.New("could not read resume PDF")

	// ErrExtraction indicates an unexpected failure while scanning pages.
	ErrExtraction = errors.New("error processing resume PDF")
)

// Extractor pulls plain text out of an uploaded document.
type Extractor interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}

// PDFExtractor implements Extractor with github.com/ledongthuc/pdf.
type PDFExtractor struct{}

// ExtractText delegates to PDFText.
func (PDFExtractor) ExtractText(ctx context.Context, data []byte) (string, error) {
	return PDFText(ctx, data)
}

// PDFText returns the text of every page, each followed by a newline.
// Pages without extractable text contribute an empty line.
func PDFText(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	reader, err := openPDF(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentRead, err)
	}

	text, err := pagesText(ctx, reader)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	return text, nil
}

func openPDF(data []byte) (r *pdf.Reader, err error) {
	if len(data) == 0 {
		return nil, errors.New("empty document")
	}
	defer func() {
		if rec := recover(); rec != nil {
			r = nil
			err = fmt.Errorf("malformed document: %v", rec)
		}
	}()
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}

func pagesText(ctx context.Context, reader *pdf.Reader) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("page scan: %v", rec)
		}
	}()

	var b strings.Builder
	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		pageText, err := pageText(reader.Page(i))
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// pageText returns the page's plain text without the line breaks the
// library emits at text positioning operators on the page edges.
func pageText(p pdf.Page) (string, error) {
	if p.V.IsNull() || p.V.Key("Contents").IsNull() {
		return "", nil
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		return "", err
	}
	return strings.Trim(text, "\r\n"), nil
}
