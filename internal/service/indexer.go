package service

import (
	"context"
	"log/slog"

	"github.com/vy1216/v4learnease/internal/domain/material"
	"github.com/vy1216/v4learnease/internal/extract"
	"github.com/vy1216/v4learnease/internal/store"
	"github.com/vy1216/v4learnease/internal/worker"
)

type indexOutcome struct {
	upload material.Upload
	err    error
}

// Indexer extracts text from uploaded files on a bounded worker pool and
// persists it to the upload index. Extraction failures are logged and never
// surface to the uploading request.
type Indexer struct {
	store  store.Store
	pool   *worker.Pool[indexOutcome]
	logger *slog.Logger
	done   chan struct{}
}

func NewIndexer(s store.Store, workers, buffer int, logger *slog.Logger) *Indexer {
	return &Indexer{
		store:  s,
		pool:   worker.NewPool[indexOutcome](workers, buffer),
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Run consumes extraction results and writes them to the store. Call once,
// in its own goroutine; returns after Close once the queue is drained.
func (ix *Indexer) Run() {
	defer close(ix.done)
	for res := range ix.pool.Results() {
		out := res.Output
		if out.err != nil {
			ix.logger.Error("failed to index upload", "upload_id", out.upload.ID, "error", out.err)
			continue
		}
		// Index runs async, so the originating request context is gone.
		if err := ix.store.SaveUpload(context.Background(), &out.upload); err != nil {
			ix.logger.Error("failed to save upload index", "upload_id", out.upload.ID, "error", err)
		}
	}
}

// Submit queues text extraction for an uploaded file.
func (ix *Indexer) Submit(upload material.Upload, path, mimeType string) {
	ix.pool.Submit(upload.ID, func() indexOutcome {
		text, err := extract.Text(path, mimeType)
		if err != nil {
			return indexOutcome{upload: upload, err: err}
		}
		upload.Text = material.ClampText(text)
		return indexOutcome{upload: upload}
	})
}

// Close drains the pool and waits for Run to persist everything queued.
func (ix *Indexer) Close() {
	ix.pool.Close()
	<-ix.done
}
