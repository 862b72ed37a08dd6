package driven

import (
	"context"

	"github.com/custodia-labs/resumechat/internal/core/domain"
)

// DocumentReader loads the full text of a document file.
// Implementations fail with domain.ErrUnsupportedFormat for unknown
// extensions and domain.ErrIO for missing or unreadable files.
type DocumentReader interface {
	Read(ctx context.Context, path string) (*domain.Document, error)
}

// Normaliser extracts text from one family of file formats.
type Normaliser interface {
	// SupportedExtensions returns the lower-case extensions handled, including the dot.
	SupportedExtensions() []string

	// Normalise reads the file at path and returns its text.
	Normalise(ctx context.Context, path string) (string, error)
}
