package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Record is one completed download.
type Record struct {
	Type         string    `json:"type"`
	Username     string    `json:"username"`
	MediaURL     string    `json:"media_url"`
	FilePath     string    `json:"file_path"`
	FileSize     int64     `json:"file_size"`
	DownloadedAt time.Time `json:"downloaded_at"`
	Status       string    `json:"status"`
}

// Stats aggregates the download history.
type Stats struct {
	TotalDownloads int            `json:"total_downloads"`
	TotalBytes     int64          `json:"total_bytes"`
	ByType         map[string]int `json:"by_type"`
	ByUsername     map[string]int `json:"by_username"`
}

// Recorder persists download records.
type Recorder interface {
	LogDownload(rec Record) error
	History(limit int) ([]Record, error)
	Stats() (*Stats, error)
}

// FileRecorder appends records to a JSON-lines file. Append-only writes keep
// the history crash-safe without a database.
type FileRecorder struct {
	path string
	mu   sync.Mutex
}

// NewFileRecorder creates a recorder writing to path.
func NewFileRecorder(path string) (*FileRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return &FileRecorder{path: path}, nil
}

// LogDownload appends one record.
func (r *FileRecorder) LogDownload(rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.DownloadedAt.IsZero() {
		rec.DownloadedAt = time.Now().UTC()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal download record: %w", err)
	}

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append download record: %w", err)
	}
	return nil
}

// History returns the most recent records, newest first. limit <= 0 returns
// everything.
func (r *FileRecorder) History(limit int) ([]Record, error) {
	records, err := r.readAll()
	if err != nil {
		return nil, err
	}

	// Reverse into newest-first order.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Stats aggregates the full history.
func (r *FileRecorder) Stats() (*Stats, error) {
	records, err := r.readAll()
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		ByType:     make(map[string]int),
		ByUsername: make(map[string]int),
	}
	for _, rec := range records {
		stats.TotalDownloads++
		stats.TotalBytes += rec.FileSize
		stats.ByType[rec.Type]++
		stats.ByUsername[rec.Username]++
	}
	return stats, nil
}

func (r *FileRecorder) readAll() ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.Open(r.path)
	if os.IsNotExist(err) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			// Skip torn lines from interrupted writes.
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}
