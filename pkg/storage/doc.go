// Package storage handles media downloads and their history.
//
// It has three layers:
//   - Pipeline streams media bytes to disk with atomic temp-file writes,
//     chunked copies, and a size ceiling
//   - FileRecorder keeps an append-only JSON-lines history of completed
//     downloads with aggregation helpers
//   - DownloadService ties the two together per content item, choosing file
//     names that cannot collide across repeated runs
//
// Usage:
//
//	pipeline := storage.NewPipeline(cfg, log)
//	recorder, err := storage.NewFileRecorder("downloads/history.jsonl")
//	if err != nil {
//	    log.Fatal(err.Error())
//	}
//	service := storage.NewDownloadService(pipeline, recorder, cfg, log)
//
//	path := service.DownloadPost("username", item)
//	if path == "" {
//	    // failed, detail is in the log
//	}
package storage
