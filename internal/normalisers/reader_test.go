package normalisers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/resumechat/internal/core/domain"
)

// stubNormaliser returns fixed text for its extensions.
type stubNormaliser struct {
	exts []string
	text string
	err  error
	seen []string
}

func (s *stubNormaliser) SupportedExtensions() []string {
	return s.exts
}

func (s *stubNormaliser) Normalise(_ context.Context, path string) (string, error) {
	s.seen = append(s.seen, path)
	return s.text, s.err
}

func TestNewDefaultReader_Extensions(t *testing.T) {
	assert.Equal(t, []string{".pdf", ".txt"}, NewDefaultReader().Extensions())
}

func TestRead_DispatchesByExtension(t *testing.T) {
	txt := &stubNormaliser{exts: []string{".txt"}, text: "text body"}
	pdf := &stubNormaliser{exts: []string{".pdf"}, text: "pdf body"}
	r := NewReader(txt, pdf)

	doc, err := r.Read(context.Background(), "/data/Resume.PDF")
	require.NoError(t, err)
	assert.Equal(t, "pdf body", doc.Content)
	assert.Equal(t, "/data/Resume.PDF", doc.Path)
	assert.Equal(t, []string{"/data/Resume.PDF"}, pdf.seen)
	assert.Empty(t, txt.seen)
}

func TestRead_UnsupportedFormat(t *testing.T) {
	r := NewDefaultReader()

	for _, path := range []string{"resume.docx", "resume", "notes.md"} {
		t.Run(path, func(t *testing.T) {
			_, err := r.Read(context.Background(), path)
			assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
		})
	}
}

func TestRead_NormaliserError(t *testing.T) {
	r := NewReader(&stubNormaliser{exts: []string{".txt"}, err: domain.ErrIO})

	_, err := r.Read(context.Background(), "resume.txt")
	assert.ErrorIs(t, err, domain.ErrIO)
}

func TestRead_PlainTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.TXT")
	require.NoError(t, os.WriteFile(path, []byte("hello resume"), 0o600))

	doc, err := NewDefaultReader().Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "hello resume", doc.Content)
}

func TestRead_MissingFile(t *testing.T) {
	_, err := NewDefaultReader().Read(context.Background(), filepath.Join(t.TempDir(), "gone.txt"))
	assert.ErrorIs(t, err, domain.ErrIO)
}
