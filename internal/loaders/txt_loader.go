package loaders

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/chuimeng/vecdex/internal/schema"
)

// TxtLoader implements the Loader interface for plain text files.
type TxtLoader struct{}

// NewTxtLoader creates a new TxtLoader.
func NewTxtLoader() *TxtLoader {
	return &TxtLoader{}
}

// Load reads a text file and returns it as a single Document. Files that are
// not valid UTF-8 are decoded with invalid bytes replaced rather than
// rejected, so legacy single-byte encodings still yield usable text.
func (l *TxtLoader) Load(ctx context.Context, path string) (*schema.Document, error) {
	if err := statFile(path); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	text := string(content)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "�")
	}

	return &schema.Document{
		Text: text,
		Metadata: map[string]interface{}{
			"source":    "txt",
			"file_name": filepath.Base(path),
		},
	}, nil
}

// compile-time check to ensure TxtLoader implements the Loader interface
var _ Loader = (*TxtLoader)(nil)
