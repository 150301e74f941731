// Package document turns catalog files into plain text.
//
// PDFs go through an ordered list of extractors: the first one that returns
// non-empty text wins. Plain text files are read as-is.
package document

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/logger"
)

var (
	// ErrNoText is returned when a document yields no usable text.
	ErrNoText = errors.New("document: no text recovered")
	// ErrUnsupported is returned for file types no extractor handles.
	ErrUnsupported = errors.New("document: unsupported file type")
)

// Extractor pulls the text out of one PDF file.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, path string) (string, error)
}

// DefaultExtractors returns the PDF fallback chain: MuPDF first when the
// binary is built with cgo, then the pure-Go reader.
func DefaultExtractors() []Extractor {
	return pdfExtractors()
}

// Document is the text recovered from the catalog and the optional
// supplementary knowledge file.
type Document struct {
	Text       string
	Supplement string
	// Source lists the files that contributed text.
	Source []string
}

// Loader reads the configured catalog files.
type Loader struct {
	Path           string
	SupplementPath string
	Extractors     []Extractor
	Log            logger.Logger
}

// NewLoader builds a loader with the default PDF extractor chain.
func NewLoader(path, supplementPath string, log logger.Logger) *Loader {
	if log == nil {
		log = logger.NewNop()
	}
	return &Loader{
		Path:           path,
		SupplementPath: supplementPath,
		Extractors:     DefaultExtractors(),
		Log:            log,
	}
}

// Load reads the catalog and the supplement. A missing catalog is tolerated
// when the supplement alone has text.
func (l *Loader) Load(ctx context.Context) (Document, error) {
	var (
		doc     Document
		mainErr error
	)

	if l.Path != "" {
		text, err := l.ReadFile(ctx, l.Path)
		if err != nil {
			mainErr = fmt.Errorf("read catalog %s: %w", l.Path, err)
			l.Log.WithError(err).Warn("catalog document unreadable", map[string]interface{}{"path": l.Path})
		} else {
			doc.Text = text
			doc.Source = append(doc.Source, l.Path)
		}
	}

	if l.SupplementPath != "" {
		text, err := readText(l.SupplementPath)
		switch {
		case err == nil:
			doc.Supplement = text
			doc.Source = append(doc.Source, l.SupplementPath)
		case errors.Is(err, os.ErrNotExist):
			l.Log.Debug("no supplementary knowledge file", map[string]interface{}{"path": l.SupplementPath})
		default:
			l.Log.WithError(err).Warn("supplementary knowledge unreadable", map[string]interface{}{"path": l.SupplementPath})
		}
	}

	if strings.TrimSpace(doc.Text) == "" && strings.TrimSpace(doc.Supplement) == "" {
		if mainErr != nil {
			return Document{}, mainErr
		}
		return Document{}, ErrNoText
	}
	return doc, nil
}

// ReadFile returns the text of a single file, choosing the reader by
// extension.
func (l *Loader) ReadFile(ctx context.Context, path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return l.readPDF(ctx, path)
	case ".txt", ".md", "":
		text, err := readText(path)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) == "" {
			return "", ErrNoText
		}
		return text, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
	}
}

func (l *Loader) readPDF(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", err
	}

	var errs []error
	for _, ex := range l.Extractors {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := ex.Extract(ctx, path)
		if err == nil && strings.TrimSpace(text) == "" {
			err = ErrNoText
		}
		if err != nil {
			l.Log.WithError(err).Warn("pdf extractor failed", map[string]interface{}{
				"extractor": ex.Name(),
				"path":      path,
			})
			errs = append(errs, fmt.Errorf("%s: %w", ex.Name(), err))
			continue
		}
		l.Log.Debug("pdf text extracted", map[string]interface{}{
			"extractor": ex.Name(),
			"chars":     len(text),
		})
		return text, nil
	}
	if len(errs) == 0 {
		return "", ErrNoText
	}
	return "", errors.Join(errs...)
}

func readText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Exists reports whether path names a regular file.
func Exists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
