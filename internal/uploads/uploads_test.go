package uploads

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retroboard/internal/model"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func fileHeader(t *testing.T, field, filename string, data []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, r.ParseMultipartForm(1<<20))
	return r.MultipartForm.File[field][0]
}

func TestSaveSniffsAndRenames(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "avatars")
	fh := fileHeader(t, "avatar", "me.exe", pngHeader)

	name, err := Save(dir, fh, AvatarTypes)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".png"))

	got, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, got)
}

func TestSaveRejectsUnsupportedType(t *testing.T) {
	dir := t.TempDir()
	fh := fileHeader(t, "avatar", "notes.png", []byte("just some text"))

	_, err := Save(dir, fh, AvatarTypes)
	assert.ErrorIs(t, err, model.ErrBadRequest)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
