package document

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PlainPDFExtractor is the pure-Go fallback for files MuPDF rejects.
type PlainPDFExtractor struct{}

func (PlainPDFExtractor) Name() string { return "ledongthuc" }

func (PlainPDFExtractor) Extract(ctx context.Context, path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	rd, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("plain text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(rd); err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return buf.String(), nil
}
