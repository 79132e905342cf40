package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"OwlTurf/internal/config"
	"OwlTurf/internal/dbtest"
	"OwlTurf/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{
			Mode:        gin.TestMode,
			APIPrefix:   "/api/v1",
			Environment: "test",
			CORSOrigins: []string{"*"},
		},
		Storage: config.StorageConfig{
			MaxSizeMB:        map[string]float64{"profile_images": 0.001},
			DefaultMaxSizeMB: 5,
		},
	}
	store, err := storage.NewLocalStorage(t.TempDir(), "/api/v1/files", nil)
	require.NoError(t, err)

	r := NewRouter(Deps{
		Config: cfg,
		DB:     dbtest.New(t),
		Store:  store,
		Logger: dbtest.Logger(),
	})
	return &testServer{t: t, router: r}
}

func (s *testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) upload(path, field, filename string, content []byte, form map[string]string) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range form {
		require.NoError(s.t, mw.WriteField(k, v))
	}
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(s.t, err)
		_, err = fw.Write(content)
		require.NoError(s.t, err)
	}
	require.NoError(s.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// decode reads the JSON body into a generic map.
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (s *testServer) createUser(uid string) {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/users", gin.H{"uid": uid, "email": uid + "@example.com"})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
}

func (s *testServer) createVenue() string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/venues", gin.H{
		"name":             "Riverside Arena",
		"address":          "12 River Rd",
		"city":             "Pune",
		"state":            "MH",
		"pincode":          "411001",
		"sports_available": []string{"football"},
		"price_per_hour":   1200,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode(s.t, w)["id"].(string)
}
