package storage

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igspyglass/pkg/config"
	"igspyglass/pkg/logger"
)

func newTestPipeline(t *testing.T) (*Pipeline, *logger.TestLogger) {
	t.Helper()
	cfg := config.DefaultConfig()
	log := logger.NewTestLogger()
	return NewPipeline(cfg, log), log
}

func TestDownloadSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "image bytes")
	}))
	defer server.Close()

	pipeline, _ := newTestPipeline(t)
	dest := filepath.Join(t.TempDir(), "sub", "photo.jpg")

	require.True(t, pipeline.Download(server.URL+"/photo.jpg", dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(data))

	_, err = os.Stat(dest + ".tmp")
	assert.True(t, os.IsNotExist(err), "no temp file left behind")
}

func TestDownloadServerErrorLeavesNoFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	pipeline, log := newTestPipeline(t)
	dest := filepath.Join(t.TempDir(), "photo.jpg")

	assert.False(t, pipeline.Download(server.URL+"/photo.jpg", dest))

	_, err := os.Stat(dest)
	assert.True(t, os.IsNotExist(err), "failed downloads must not leave files")
	assert.True(t, log.HasMessage("WARN", "non-200"))
}

func TestDownloadConnectionFailure(t *testing.T) {
	pipeline, log := newTestPipeline(t)
	dest := filepath.Join(t.TempDir(), "photo.jpg")

	assert.False(t, pipeline.Download("http://127.0.0.1:1/photo.jpg", dest))

	_, err := os.Stat(dest)
	assert.True(t, os.IsNotExist(err))
	assert.True(t, log.HasMessage("WARN", "media request failed"))
}

func TestDownloadRejectsOversizedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 64))
	}))
	defer server.Close()

	cfg := config.DefaultConfig()
	cfg.Download.MaxFileSize = 16
	pipeline := NewPipeline(cfg, logger.NewTestLogger())
	dest := filepath.Join(t.TempDir(), "big.jpg")

	assert.False(t, pipeline.Download(server.URL+"/big.jpg", dest))

	_, err := os.Stat(dest)
	assert.True(t, os.IsNotExist(err))
}

func TestFileSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.bin")
	require.NoError(t, os.WriteFile(path, []byte("12345"), 0644))

	assert.Equal(t, int64(5), FileSize(path))
	assert.Equal(t, int64(0), FileSize(path+".missing"))
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg")

	assert.Equal(t, path, UniquePath(path))

	require.NoError(t, os.WriteFile(path, nil, 0644))
	assert.Equal(t, filepath.Join(dir, "photo_1.jpg"), UniquePath(path))
}
