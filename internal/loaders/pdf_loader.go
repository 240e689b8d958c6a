package loaders

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/chuimeng/vecdex/internal/schema"
)

var pdfWhitespace = regexp.MustCompile(`\s+`)

// PdfLoader implements the Loader interface for PDF files. It extracts the
// plain text of every page and joins the pages with explicit page markers so
// page boundaries survive chunking.
type PdfLoader struct{}

// NewPdfLoader creates a new PdfLoader.
func NewPdfLoader() *PdfLoader {
	return &PdfLoader{}
}

// Load reads a PDF file and returns its text as a single Document.
// Pages without extractable text are skipped; a document where every page is
// empty fails with ErrNoExtractableText.
func (l *PdfLoader) Load(ctx context.Context, path string) (*schema.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	reader, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to parse PDF %s: %w", path, err)
	}

	var pages []string
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		raw, err := page.GetPlainText(nil)
		if err != nil {
			// A single broken page should not sink the whole document.
			continue
		}

		text := strings.TrimSpace(pdfWhitespace.ReplaceAllString(raw, " "))
		if text == "" {
			continue
		}
		pages = append(pages, fmt.Sprintf("\n\n--- PAGE %d ---\n%s", i, text))
	}

	fullText := strings.TrimSpace(strings.Join(pages, "\n"))
	if fullText == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoExtractableText, path)
	}

	return &schema.Document{
		Text: fullText,
		Metadata: map[string]interface{}{
			"source":    "pdf",
			"file_name": filepath.Base(path),
			"num_pages": numPages,
		},
	}, nil
}

// compile-time check to ensure PdfLoader implements the Loader interface
var _ Loader = (*PdfLoader)(nil)
