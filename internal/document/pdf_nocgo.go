//go:build !cgo

package document

// go-fitz loads libmupdf in its package init when cgo is off and panics if
// the library is missing, so non-cgo builds only get the pure-Go reader.
func pdfExtractors() []Extractor {
	return []Extractor{PlainPDFExtractor{}}
}
