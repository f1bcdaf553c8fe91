package storage

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"igspyglass/pkg/config"
	"igspyglass/pkg/logger"
)

// Pipeline streams media bytes from a source URL to a destination path. It
// reports plain success or failure; the failure detail lives in the log, not
// in the return value, so callers never have an error to mishandle.
type Pipeline struct {
	client    *http.Client
	chunkSize int
	maxBytes  int64
	logger    logger.Logger
}

// NewPipeline creates a media download pipeline. The HTTP client uses the
// media timeout, which is longer than the content timeout because media
// bodies are streamed rather than read at once.
func NewPipeline(cfg *config.Config, log logger.Logger) *Pipeline {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Pipeline{
		client:    &http.Client{Timeout: cfg.Platform.MediaTimeout},
		chunkSize: cfg.Download.ChunkSize,
		maxBytes:  cfg.Download.MaxFileSize,
		logger:    log,
	}
}

// SetHTTPClient swaps the underlying HTTP client. Used by tests.
func (p *Pipeline) SetHTTPClient(client *http.Client) {
	p.client = client
}

// Download fetches sourceURL into destPath. On any failure no file exists at
// destPath afterwards: bytes stream into a temporary sibling first and only
// a fully written file is renamed into place.
func (p *Pipeline) Download(sourceURL, destPath string) bool {
	log := p.logger.WithFields(map[string]interface{}{
		"url":  sourceURL,
		"dest": destPath,
	})

	resp, err := p.client.Get(sourceURL)
	if err != nil {
		log.WithError(err).Warn("media request failed")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.WithField("status", resp.StatusCode).Warn("media request returned non-200")
		return false
	}
	if p.maxBytes > 0 && resp.ContentLength > p.maxBytes {
		log.WithField("content_length", resp.ContentLength).Warn("media exceeds size limit")
		return false
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		log.WithError(err).Warn("failed to create destination directory")
		return false
	}

	tempPath := destPath + ".tmp"
	out, err := os.Create(tempPath)
	if err != nil {
		log.WithError(err).Warn("failed to create temporary file")
		return false
	}

	body := io.Reader(resp.Body)
	if p.maxBytes > 0 {
		body = io.LimitReader(resp.Body, p.maxBytes+1)
	}

	buf := make([]byte, p.chunkSize)
	written, err := io.CopyBuffer(out, body, buf)
	closeErr := out.Close()

	switch {
	case err != nil:
		os.Remove(tempPath)
		log.WithError(err).Warn("media stream interrupted")
		return false
	case closeErr != nil:
		os.Remove(tempPath)
		log.WithError(closeErr).Warn("failed to close media file")
		return false
	case p.maxBytes > 0 && written > p.maxBytes:
		os.Remove(tempPath)
		log.WithField("written", written).Warn("media exceeds size limit")
		return false
	}

	if err := os.Rename(tempPath, destPath); err != nil {
		os.Remove(tempPath)
		log.WithError(err).Warn("failed to finalize media file")
		return false
	}

	log.WithField("bytes", written).Debug("media downloaded")
	return true
}

// FileSize returns the size of a downloaded file, or 0 when unknown.
func FileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// UniquePath appends a numeric suffix until the path does not exist yet.
func UniquePath(path string) string {
	if _, err := os.Stat(path); err != nil {
		return path
	}
	ext := filepath.Ext(path)
	stem := path[:len(path)-len(ext)]
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if _, err := os.Stat(candidate); err != nil {
			return candidate
		}
	}
}
