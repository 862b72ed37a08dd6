package pdf

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
)

// mockPages is a test double for PageSource.
type mockPages struct {
	pages  []string
	errs   map[int]error
	panics map[int]bool
}

func (m *mockPages) NumPage() int {
	return len(m.pages)
}

func (m *mockPages) PageText(num int) (string, error) {
	if m.panics[num] {
		panic("malformed content stream")
	}
	if err := m.errs[num]; err != nil {
		return "", err
	}
	return m.pages[num-1], nil
}

type nopCloser struct {
	closed bool
}

func (c *nopCloser) Close() error {
	c.closed = true
	return nil
}

func openerFor(src PageSource, closer *nopCloser) Opener {
	return func(string) (PageSource, io.Closer, error) {
		return src, closer, nil
	}
}

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.NotNil(t, normaliser.open)
}

func TestSupportedExtensions(t *testing.T) {
	assert.Equal(t, []string{".pdf"}, New().SupportedExtensions())
}

func TestNormalise_ConcatenatesPages(t *testing.T) {
	closer := &nopCloser{}
	src := &mockPages{pages: []string{"Jane Doe ", "Staff Engineer", ""}}

	text, err := New(WithOpener(openerFor(src, closer))).Normalise(context.Background(), "resume.pdf")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe Staff Engineer", text)
	assert.True(t, closer.closed)
}

func TestNormalise_FailedPagesAreEmpty(t *testing.T) {
	src := &mockPages{
		pages:  []string{"one", "two", "three"},
		errs:   map[int]error{2: errors.New("bad font")},
		panics: map[int]bool{3: true},
	}

	text, err := New(WithOpener(openerFor(src, &nopCloser{}))).Normalise(context.Background(), "resume.pdf")
	require.NoError(t, err)
	assert.Equal(t, "one", text)
}

func TestNormalise_NoPages(t *testing.T) {
	text, err := New(WithOpener(openerFor(&mockPages{}, &nopCloser{}))).Normalise(context.Background(), "resume.pdf")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestNormalise_OpenError(t *testing.T) {
	opener := func(string) (PageSource, io.Closer, error) {
		return nil, nil, errors.New("not a pdf")
	}

	_, err := New(WithOpener(opener)).Normalise(context.Background(), "resume.pdf")
	assert.ErrorIs(t, err, domain.ErrIO)
	assert.Contains(t, err.Error(), "not a pdf")
}

func TestNormalise_MissingFile(t *testing.T) {
	_, err := New().Normalise(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	assert.ErrorIs(t, err, domain.ErrIO)
}

func TestNormalise_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain text, not a pdf"), 0o600))

	_, err := New().Normalise(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrIO)
}

func TestNormalise_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &mockPages{pages: []string{"a"}}
	_, err := New(WithOpener(openerFor(src, &nopCloser{}))).Normalise(ctx, "resume.pdf")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Normaliser = (*Normaliser)(nil)
}
