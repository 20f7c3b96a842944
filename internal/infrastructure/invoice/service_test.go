package invoice

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	pdf []byte
	err error
}

func (s *stubRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &RenderResult{PDFData: s.pdf}, nil
}

func (s *stubRenderer) Close() error { return nil }

func newTestGenerator(t *testing.T, renderer PDFRenderer, fallback bool) *Generator {
	t.Helper()
	engine, err := NewTemplateEngine()
	require.NoError(t, err)
	storage, err := NewStorage(t.TempDir(), "/api/v1/invoices", nil)
	require.NoError(t, err)
	return NewGenerator(renderer, engine, storage, fallback, nil)
}

func TestGenerator_PDFSuccess(t *testing.T) {
	order, counter := testOrderAndCounter(t)
	gen := newTestGenerator(t, &stubRenderer{pdf: []byte("%PDF-1.4")}, true)

	result, err := gen.Generate(context.Background(), order, counter)
	require.NoError(t, err)
	assert.False(t, result.UsedFallback)
	assert.True(t, strings.HasSuffix(result.FileName, ".pdf"))
	assert.Equal(t, "/api/v1/invoices/"+result.FileName, result.URL)
}

func TestGenerator_FallsBackToHTML(t *testing.T) {
	order, counter := testOrderAndCounter(t)
	gen := newTestGenerator(t, &stubRenderer{err: errors.New("browser crashed")}, true)

	result, err := gen.Generate(context.Background(), order, counter)
	require.NoError(t, err)
	assert.True(t, result.UsedFallback)
	assert.True(t, strings.HasSuffix(result.FileName, ".html"))
}

func TestGenerator_RenderFailureWithoutFallback(t *testing.T) {
	order, counter := testOrderAndCounter(t)
	gen := newTestGenerator(t, &stubRenderer{err: errors.New("browser crashed")}, false)

	_, err := gen.Generate(context.Background(), order, counter)
	assert.Error(t, err)
}

func TestGenerator_RenderFailureWritesDebugCopy(t *testing.T) {
	order, counter := testOrderAndCounter(t)
	dir := t.TempDir()
	engine, err := NewTemplateEngine()
	require.NoError(t, err)
	storage, err := NewStorage(dir, "/api/v1/invoices", nil)
	require.NoError(t, err)
	gen := NewGenerator(&stubRenderer{err: errors.New("browser crashed")}, engine, storage, false, nil)

	_, err = gen.Generate(context.Background(), order, counter)
	require.Error(t, err)

	// the error still comes back, but the HTML lands on disk for debugging
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".html"))
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "TAX INVOICE")
}

func TestGenerator_NoRendererUsesFallback(t *testing.T) {
	order, counter := testOrderAndCounter(t)
	gen := newTestGenerator(t, nil, true)

	result, err := gen.Generate(context.Background(), order, counter)
	require.NoError(t, err)
	assert.True(t, result.UsedFallback)

	genNoFallback := newTestGenerator(t, nil, false)
	_, err = genNoFallback.Generate(context.Background(), order, counter)
	assert.Error(t, err)
}
