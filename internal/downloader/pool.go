// Package downloader runs bulk media downloads over a bounded worker pool.
package downloader

import (
	"fmt"
	"sync"
	"time"

	"igspyglass/pkg/instagram"
	"igspyglass/pkg/logger"
)

// Job is one media item to download for a user.
type Job struct {
	Username string
	Item     instagram.ContentItem
	Kind     string // "post" or "story"
}

// Result is the outcome of one job.
type Result struct {
	Job      Job
	Path     string
	Success  bool
	Duration time.Duration
}

// MediaDownloader downloads a single content item and returns the stored
// path, or "" on failure.
type MediaDownloader interface {
	DownloadPost(username string, item instagram.ContentItem) string
	DownloadStory(username string, item instagram.ContentItem) string
}

// Pool fans jobs out over a fixed number of workers. Resolution itself stays
// single threaded; only the byte transfers run concurrently.
type Pool struct {
	workers int
	jobs    chan Job
	results chan Result
	wg      sync.WaitGroup
	service MediaDownloader
	logger  logger.Logger

	startOnce sync.Once
	stopOnce  sync.Once
}

// NewPool creates a pool with the given worker count.
func NewPool(workers int, service MediaDownloader, log logger.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = logger.GetLogger()
	}
	return &Pool{
		workers: workers,
		jobs:    make(chan Job, workers*2),
		results: make(chan Result, workers*2),
		service: service,
		logger:  log,
	}
}

// Start launches the workers.
func (p *Pool) Start() {
	p.startOnce.Do(func() {
		p.logger.InfoWithFields("starting download pool", map[string]interface{}{
			"workers": p.workers,
		})
		for i := 0; i < p.workers; i++ {
			p.wg.Add(1)
			go p.worker(i)
		}
	})
}

// Stop signals that no more jobs are coming and waits for the workers to
// drain the queue. The results channel is closed afterwards.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.jobs)
		p.wg.Wait()
		close(p.results)
		p.logger.Info("download pool stopped")
	})
}

// Submit queues a job. Blocks when the queue is full.
func (p *Pool) Submit(job Job) {
	p.jobs <- job
}

// Results returns the channel results arrive on.
func (p *Pool) Results() <-chan Result {
	return p.results
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for job := range p.jobs {
		start := time.Now()
		var path string
		switch job.Kind {
		case "story":
			path = p.service.DownloadStory(job.Username, job.Item)
		default:
			path = p.service.DownloadPost(job.Username, job.Item)
		}

		result := Result{
			Job:      job,
			Path:     path,
			Success:  path != "",
			Duration: time.Since(start),
		}
		p.logger.DebugWithFields("job finished", map[string]interface{}{
			"worker_id": id,
			"username":  job.Username,
			"item":      job.Item.ID,
			"success":   result.Success,
		})
		p.results <- result
	}
}

// DownloadAll is a convenience wrapper: it runs every item through the pool
// and returns how many succeeded.
func DownloadAll(service MediaDownloader, username, kind string, items []instagram.ContentItem, workers int, log logger.Logger) (int, int) {
	pool := NewPool(workers, service, log)
	pool.Start()

	go func() {
		for _, item := range items {
			pool.Submit(Job{Username: username, Item: item, Kind: kind})
		}
		pool.Stop()
	}()

	succeeded := 0
	for result := range pool.Results() {
		if result.Success {
			succeeded++
		}
	}
	failed := len(items) - succeeded
	if failed > 0 {
		log.WarnWithFields("some downloads failed", map[string]interface{}{
			"username": username,
			"failed":   fmt.Sprintf("%d/%d", failed, len(items)),
		})
	}
	return succeeded, failed
}
