package normalisers

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
	"github.com/custodia-labs/resumechat/internal/logger"
	"github.com/custodia-labs/resumechat/internal/normalisers/pdf"
	"github.com/custodia-labs/resumechat/internal/normalisers/plaintext"
)

// Ensure Reader implements the interface.
var _ driven.DocumentReader = (*Reader)(nil)

// Reader selects a normaliser by file extension.
type Reader struct {
	byExt map[string]driven.Normaliser
}

// NewReader creates a reader from the given normalisers. A later normaliser
// claiming an extension replaces an earlier one.
func NewReader(normalisers ...driven.Normaliser) *Reader {
	r := &Reader{byExt: make(map[string]driven.Normaliser)}
	for _, n := range normalisers {
		for _, ext := range n.SupportedExtensions() {
			r.byExt[strings.ToLower(ext)] = n
		}
	}
	return r
}

// NewDefaultReader returns a reader for .txt and .pdf files.
func NewDefaultReader() *Reader {
	return NewReader(plaintext.New(), pdf.New())
}

// Extensions returns the supported extensions, sorted.
func (r *Reader) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Read loads the full text of the document at path.
func (r *Reader) Read(ctx context.Context, path string) (*domain.Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	n, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)",
			domain.ErrUnsupportedFormat, ext, strings.Join(r.Extensions(), ", "))
	}

	content, err := n.Normalise(ctx, path)
	if err != nil {
		return nil, err
	}

	logger.Debug("reader: %s -> %d bytes", path, len(content))
	return &domain.Document{Path: path, Content: content}, nil
}
