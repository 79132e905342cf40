package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRoundTrip(t *testing.T) {
	s := newTestServer(t)
	png := []byte("\x89PNG\r\n\x1a\nnot really an image")

	w := s.upload("/api/v1/files/upload", "file", "team_photo.png", png, map[string]string{"bucket": "venue_images", "prefix": "v1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "File uploaded successfully", body["message"])
	p := body["file_path"].(string)
	assert.True(t, strings.HasPrefix(p, "venue_images/v1_"), p)
	assert.Equal(t, "/api/v1/files/"+p, body["file_url"])
	assert.EqualValues(t, len(png), body["size_bytes"])

	w = s.do(http.MethodGet, "/api/v1/files/"+p, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, png, w.Body.Bytes())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	w = s.do(http.MethodDelete, "/api/v1/files/"+p, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, p, decode(t, w)["file_path"])

	w = s.do(http.MethodDelete, "/api/v1/files/"+p, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "File not found or already deleted", decode(t, w)["detail"])

	w = s.do(http.MethodGet, "/api/v1/files/"+p, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "File not found", decode(t, w)["detail"])
}

func TestFileSniffsContentTypeWithoutExtension(t *testing.T) {
	s := newTestServer(t)

	w := s.upload("/api/v1/files/upload", "file", "README", []byte("plain words"), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	p := decode(t, w)["file_path"].(string)
	assert.True(t, strings.HasPrefix(p, "documents/"), p)

	w = s.do(http.MethodGet, "/api/v1/files/"+p, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestFileUploadErrors(t *testing.T) {
	s := newTestServer(t)

	w := s.upload("/api/v1/files/upload?bucket=secrets", "file", "a.txt", []byte("x"), nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["detail"], "Invalid bucket")

	big := make([]byte, 4096)
	w = s.upload("/api/v1/files/upload", "file", "me.jpg", big, map[string]string{"bucket": "profile_images"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["detail"], "exceeds maximum allowed size")

	w = s.upload("/api/v1/files/upload", "", "", nil, map[string]string{"bucket": "documents"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodGet, "/api/v1/files/documents/../../secret.txt", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
