package download

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/tiktoksage/tiksage/internal/errs"
	"github.com/tiktoksage/tiksage/internal/model"
	"github.com/tiktoksage/tiksage/internal/platform"
	"github.com/tiktoksage/tiksage/internal/ytdlp"
)

// jobRunner is the engine surface the coordinator drives
type jobRunner interface {
	Run(ctx context.Context, job *model.DownloadJob) error
	Cancel()
}

// Item is one queued video. Title and thumbnail are optional hints carried
// over from enumeration so the UI has something to show before resolution.
type Item struct {
	URL          string
	Title        string
	ThumbnailURL string
}

// Options applies to every item of one enqueued batch
type Options struct {
	GroupLabel      string // subdirectory label, typically the channel name
	AudioOnly       bool
	SaveDescription bool
	ProxyURL        string
}

// Summary reports the outcome of a finished batch. LastError is set only
// when the final item failed; earlier failures are skipped and counted.
type Summary struct {
	Completed int
	Skipped   int
	LastError error
}

// Coordinator feeds the engine one job at a time. Enqueueing a new batch
// replaces any batch in flight: the active job is cancelled and the old
// queue is abandoned.
type Coordinator struct {
	engine  jobRunner
	history historyRecorder
	fs      afero.Afero
	baseDir func() string

	onDone func(Summary)

	mu         sync.Mutex
	generation int
	draining   chan struct{} // closed when the current worker exits
}

// NewCoordinator creates a coordinator. baseDir is consulted at enqueue time
// so settings changes apply to the next batch.
func NewCoordinator(engine jobRunner, history historyRecorder, fs afero.Fs, baseDir func() string) *Coordinator {
	return &Coordinator{
		engine:  engine,
		history: history,
		fs:      afero.Afero{Fs: fs},
		baseDir: baseDir,
	}
}

// SetDoneCallback registers the batch completion listener. Per-job snapshots
// come from the engine's own update callback.
func (c *Coordinator) SetDoneCallback(callback func(Summary)) {
	c.onDone = callback
}

// Enqueue replaces the current batch with items and starts working through
// them sequentially. An empty batch just cancels whatever is running.
func (c *Coordinator) Enqueue(items []Item, opts Options) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	prev := c.draining
	var done chan struct{}
	if len(items) > 0 {
		done = make(chan struct{})
		c.draining = done
	}
	c.mu.Unlock()

	c.engine.Cancel()

	if len(items) == 0 {
		return
	}

	dir := c.destinationDir(opts.GroupLabel)
	go func() {
		// Join the abandoned worker first so the engine never sees two
		// overlapping Run calls.
		if prev != nil {
			<-prev
		}
		defer close(done)
		c.work(gen, items, dir, opts)
	}()
}

// Cancel aborts the active job and abandons the remaining queue
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	c.generation++
	c.mu.Unlock()
	c.engine.Cancel()
}

// current reports whether gen is still the live batch
func (c *Coordinator) current(gen int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation == gen
}

// work runs one batch to completion or replacement
func (c *Coordinator) work(gen int, items []Item, dir string, opts Options) {
	summary := Summary{}

	for i, item := range items {
		if !c.current(gen) {
			return
		}

		job := &model.DownloadJob{
			ID:              uuid.NewString(),
			URL:             item.URL,
			Title:           item.Title,
			ThumbnailURL:    item.ThumbnailURL,
			DestinationDir:  dir,
			AudioOnly:       opts.AudioOnly,
			ProxyURL:        opts.ProxyURL,
			SaveDescription: opts.SaveDescription,
		}

		err := c.engine.Run(context.Background(), job)
		switch {
		case err == nil:
			summary.Completed++
			c.recordHistory(job)
		case errors.Is(err, errs.ErrCancelled):
			// User cancellation or batch replacement ends the whole run.
			return
		default:
			logrus.Warnf("Download failed for %s, continuing with queue: %v", item.URL, err)
			summary.Skipped++
			if i == len(items)-1 {
				summary.LastError = err
			}
		}
	}

	if c.current(gen) && c.onDone != nil {
		c.onDone(summary)
	}
}

// destinationDir resolves the batch target directory. Group batches get a
// sanitized subdirectory; if it cannot be created the base directory is used
// so the batch still runs.
func (c *Coordinator) destinationDir(groupLabel string) string {
	base := c.baseDir()
	if groupLabel == "" {
		return base
	}

	sub := filepath.Join(base, platform.SanitizeFilename(groupLabel))
	if err := platform.CreateDirectoryIfNotExists(c.fs, sub); err != nil {
		logrus.Warnf("Could not create group directory %s, using %s: %v", sub, base, err)
		return base
	}
	return sub
}

// recordHistory writes the durable record for one completed job
func (c *Coordinator) recordHistory(job *model.DownloadJob) {
	format := ytdlp.FormatVideo
	if job.AudioOnly {
		format = ytdlp.FormatAudio
	}

	c.history.AddEntry(model.HistoryEntry{
		Title:        job.DisplayTitle(),
		URL:          job.URL,
		ThumbnailURL: job.ThumbnailURL,
		FilePath:     job.OutputPath,
		FormatID:     format,
		IsAudioOnly:  job.AudioOnly,
	})
}
