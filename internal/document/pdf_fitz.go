//go:build cgo

package document

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// pdfExtractors tries MuPDF before the pure-Go reader.
func pdfExtractors() []Extractor {
	return []Extractor{FitzExtractor{}, PlainPDFExtractor{}}
}

// FitzExtractor reads PDFs through MuPDF.
type FitzExtractor struct{}

func (FitzExtractor) Name() string { return "fitz" }

func (FitzExtractor) Extract(ctx context.Context, path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	pages := make([]string, 0, doc.NumPage())
	for n := 0; n < doc.NumPage(); n++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		text, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", n+1, err)
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n"), nil
}
