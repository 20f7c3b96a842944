package invoice

import (
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_SaveOpenDelete(t *testing.T) {
	storage, err := NewStorage(t.TempDir(), "/api/v1/invoices", nil)
	require.NoError(t, err)

	name := FileName(uuid.New(), "pdf")
	stored, err := storage.Save(name, []byte("%PDF-1.4 test"))
	require.NoError(t, err)
	assert.Equal(t, name, stored)

	reader, err := storage.Open(name)
	require.NoError(t, err)
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.NoError(t, reader.Close())
	assert.Equal(t, "%PDF-1.4 test", string(data))

	assert.Equal(t, "/api/v1/invoices/"+name, storage.URL(name))

	require.NoError(t, storage.Delete(name))
	require.NoError(t, storage.Delete(name), "deleting a missing file is not an error")

	_, err = storage.Open(name)
	assert.Error(t, err)
}

func TestStorage_RejectsUnsafeNames(t *testing.T) {
	storage, err := NewStorage(t.TempDir(), "/api/v1/invoices", nil)
	require.NoError(t, err)

	unsafe := []string{
		"../../etc/passwd",
		"..%2Fsecret.pdf",
		"/etc/passwd.pdf",
		"sub/dir.pdf",
		"invoice.exe",
		".hidden.pdf",
		"",
	}
	for _, name := range unsafe {
		_, err := storage.Save(name, []byte("x"))
		assert.Error(t, err, "save %q", name)
		_, err = storage.Open(name)
		assert.Error(t, err, "open %q", name)
	}
}

func TestFileName_Pattern(t *testing.T) {
	name := FileName(uuid.New(), "pdf")
	assert.Regexp(t, `^invoice-[0-9a-f-]{36}-\d+\.pdf$`, name)
	assert.True(t, safeFileName.MatchString(name))

	htmlName := FileName(uuid.New(), "html")
	assert.True(t, safeFileName.MatchString(htmlName))
}
