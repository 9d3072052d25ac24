package utils

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["image"][0]
}

func TestValidateImageFile(t *testing.T) {
	tests := []struct {
		name    string
		file    multipart.FileHeader
		wantErr bool
	}{
		{"jpeg", multipart.FileHeader{Filename: "a.jpeg", Size: 1024}, false},
		{"upper case png", multipart.FileHeader{Filename: "a.PNG", Size: 1024}, false},
		{"webp at limit", multipart.FileHeader{Filename: "a.webp", Size: MaxImageSize}, false},
		{"too large", multipart.FileHeader{Filename: "a.jpg", Size: MaxImageSize + 1}, true},
		{"gif", multipart.FileHeader{Filename: "a.gif", Size: 10}, true},
		{"no extension", multipart.FileHeader{Filename: "image", Size: 10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImageFile(&tt.file)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveImage(t *testing.T) {
	root := t.TempDir()
	content := []byte("\x89PNG\r\n\x1a\nimage bytes")

	path, err := SaveImage(formFile(t, "Cover.PNG", content), root, "trips")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "/uploads/trips/"), path)
	assert.Equal(t, ".png", filepath.Ext(path))

	stored, err := os.ReadFile(filepath.Join(root, "trips", filepath.Base(path)))
	require.NoError(t, err)
	assert.Equal(t, content, stored)
}

func TestSaveImageRejectsInvalidFiles(t *testing.T) {
	root := t.TempDir()

	_, err := SaveImage(formFile(t, "script.svg", []byte("<svg/>")), root, "avatars")
	require.Error(t, err)
	appErr := GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)

	_, statErr := os.Stat(filepath.Join(root, "avatars"))
	assert.True(t, os.IsNotExist(statErr))
}
