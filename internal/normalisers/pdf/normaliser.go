// Package pdf extracts text from .pdf documents using github.com/ledongthuc/pdf.
package pdf

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
	"github.com/custodia-labs/resumechat/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// PageSource exposes the pages of an opened PDF.
// Page numbers are 1-based.
type PageSource interface {
	NumPage() int
	PageText(num int) (string, error)
}

// Opener opens the PDF at path. The returned closer releases the file.
type Opener func(path string) (PageSource, io.Closer, error)

// Normaliser handles PDF documents.
type Normaliser struct {
	open Opener
}

// Option configures the normaliser.
type Option func(*Normaliser)

// WithOpener replaces the PDF opener. Used by tests.
func WithOpener(open Opener) Option {
	return func(n *Normaliser) {
		n.open = open
	}
}

// New creates a new PDF normaliser.
func New(opts ...Option) *Normaliser {
	n := &Normaliser{open: openFile}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Normalise concatenates the extracted text of every page in order.
// Pages that yield no text contribute the empty string; pages are joined
// with no separator.
func (n *Normaliser) Normalise(ctx context.Context, path string) (string, error) {
	src, closer, err := n.open(path)
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %w", domain.ErrIO, path, err)
	}
	defer closer.Close()

	var b strings.Builder
	total := src.NumPage()
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		b.WriteString(pageText(src, i))
	}

	logger.Debug("pdf: extracted %d bytes from %d pages of %s", b.Len(), total, path)
	return b.String(), nil
}

// pageText extracts one page, treating failures as an empty page.
// The PDF library panics on some malformed content streams.
func pageText(src PageSource, num int) (text string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("pdf: page %d could not be parsed: %v", num, r)
			text = ""
		}
	}()

	text, err := src.PageText(num)
	if err != nil {
		logger.Warn("pdf: page %d: %v", num, err)
		return ""
	}
	return text
}

// fileSource adapts *pdf.Reader to PageSource.
type fileSource struct {
	r *pdf.Reader
}

func (s fileSource) NumPage() int {
	return s.r.NumPage()
}

func (s fileSource) PageText(num int) (string, error) {
	page := s.r.Page(num)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

func openFile(path string) (PageSource, io.Closer, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return fileSource{r: r}, f, nil
}
