package loaders

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chuimeng/vecdex/internal/schema"
)

var (
	// ErrNotFound is returned when the source file does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrUnsupportedFileType is returned when no loader handles the file extension.
	ErrUnsupportedFileType = errors.New("unsupported file type")
	// ErrNoExtractableText is returned when a file parses but yields no text.
	ErrNoExtractableText = errors.New("no extractable text found")
)

// Loader reads a source file and converts it into a Document.
type Loader interface {
	Load(ctx context.Context, path string) (*schema.Document, error)
}

// SelectLoader picks a Loader by file extension.
func SelectLoader(path string) (Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return NewPdfLoader(), nil
	case ".txt":
		return NewTxtLoader(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, filepath.Ext(path))
	}
}

// FileSHA256 computes the hex-encoded SHA-256 hash of the file's raw bytes.
// The hash keys deduplication in the vector store payload.
func FileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func statFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return err
	}
	return nil
}
