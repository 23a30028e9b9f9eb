package controller

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// multipartImage builds a multipart body with an explicit part Content-Type,
// which mime/multipart's CreateFormFile cannot set.
func multipartImage(t *testing.T, filename, contentType string, size int) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{0xab}, size))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func (e *testEnv) doUpload(t *testing.T, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestUploadRejectsMissingFile(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.Close())

	rec := env.doUpload(t, &buf, writer.FormDataContentType())
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "No image file provided", decodeBody(t, rec)["error"])
}

func TestUploadRejectsInvalidMIMEType(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := multipartImage(t, "notes.txt", "text/plain", 128)
	rec := env.doUpload(t, body, contentType)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, decodeBody(t, rec)["error"], "Invalid file type")
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := multipartImage(t, "big.jpg", "image/jpeg", 6*1024*1024)
	rec := env.doUpload(t, body, contentType)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, decodeBody(t, rec)["error"], "File too large")
}

func TestUploadStoresImageUnderUploadsPath(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := multipartImage(t, "photo.png", "image/png", 2*1024*1024)
	rec := env.doUpload(t, body, contentType)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody(t, rec)
	require.Equal(t, true, resp["success"])
	imageURL, ok := resp["imageUrl"].(string)
	require.True(t, ok)
	require.True(t, strings.HasPrefix(imageURL, "/uploads/"))
	require.True(t, strings.HasSuffix(imageURL, ".png"))

	stored := filepath.Join(env.uploadDir, strings.TrimPrefix(imageURL, "/uploads/"))
	info, err := os.Stat(stored)
	require.NoError(t, err)
	require.EqualValues(t, 2*1024*1024, info.Size())
}
