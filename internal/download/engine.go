package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/tiktoksage/tiksage/internal/errs"
	"github.com/tiktoksage/tiksage/internal/model"
	"github.com/tiktoksage/tiksage/internal/platform"
	"github.com/tiktoksage/tiksage/internal/ytdlp"
)

// Transfer tuning for the direct HTTP path
const (
	chunkSize       = 8 * 1024
	fetchUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	fetchReferer    = "https://www.tiktok.com/"
	videoExtension  = ".mp4"
	descriptionName = "_description.txt"
)

// Engine executes one download job at a time from Preparing to a terminal
// state. The active job is controllable through Pause, Resume and Cancel;
// those are no-ops or errors when nothing is running.
type Engine struct {
	fs       afero.Afero
	resolver mediaResolver
	starter  toolStarter
	httpc    *http.Client
	onUpdate func(model.DownloadJob)

	mu        sync.Mutex
	job       *model.DownloadJob
	proc      toolProcess
	cancelled bool
	httpRun   bool
}

// NewEngine creates an engine over the extraction tool and resolver
func NewEngine(fs afero.Fs, runner *ytdlp.Runner, resolver mediaResolver) *Engine {
	return &Engine{
		fs:       afero.Afero{Fs: fs},
		resolver: resolver,
		starter:  runnerStarter{runner: runner},
		httpc:    &http.Client{},
	}
}

// SetUpdateCallback registers the listener for job snapshots. Snapshots are
// value copies; the listener may read them from any goroutine.
func (e *Engine) SetUpdateCallback(callback func(model.DownloadJob)) {
	e.onUpdate = callback
}

// Run executes job to completion. It blocks until the job reaches a terminal
// state and returns errs.ErrCancelled when the user cancelled, or the failure
// that ended the job. There is no automatic retry.
func (e *Engine) Run(ctx context.Context, job *model.DownloadJob) error {
	e.mu.Lock()
	e.job = job
	e.proc = nil
	e.cancelled = false
	e.httpRun = false
	job.State = model.StatePreparing
	job.StartedAt = time.Now()
	e.mu.Unlock()
	e.notify()

	err := e.run(ctx, job)

	e.mu.Lock()
	switch {
	case err == nil:
		job.State = model.StateCompleted
		job.AdvanceProgress(100)
	case errors.Is(err, errs.ErrCancelled):
		job.State = model.StateCancelled
	default:
		job.State = model.StateFailed
		job.LastError = err.Error()
	}
	job.FinishedAt = time.Now()
	// A replacement Run may already have installed its own job; only release
	// the slot if it still belongs to this run.
	if e.job == job {
		e.job = nil
		e.proc = nil
	}
	snapshot := *job
	e.mu.Unlock()
	e.notifyFinished(snapshot)

	return err
}

// run drives resolution and the transfer, leaving terminal bookkeeping to Run
func (e *Engine) run(ctx context.Context, job *model.DownloadJob) error {
	media, err := e.resolver.ResolveInfo(ctx, job.URL, job.ProxyURL)
	if e.isCancelled() {
		return errs.ErrCancelled
	}
	if err != nil {
		return err
	}

	e.mu.Lock()
	if media.Title != "" {
		job.Title = media.Title
	}
	job.ThumbnailURL = media.ThumbnailURL
	e.mu.Unlock()

	if err := platform.CreateDirectoryIfNotExists(e.fs, job.DestinationDir); err != nil {
		return fmt.Errorf("create destination %s: %w: %v", job.DestinationDir, errs.ErrFilesystem, err)
	}

	e.setState(model.StateDownloading)

	if media.Delegated {
		err = e.runDelegated(ctx, job)
	} else {
		err = e.runDirect(ctx, job, media)
	}
	if err != nil {
		return err
	}

	if job.SaveDescription && media.Description != "" {
		e.writeDescription(job, media.Description)
	}
	return nil
}

// runDelegated hands the transfer to the extraction tool. Progress is a
// single jump on success; the exit code is the outcome.
func (e *Engine) runDelegated(ctx context.Context, job *model.DownloadJob) error {
	// Pin the output name through the tool's template; the format selector
	// fixes the extension, so the final path is known up front.
	stem := platform.SanitizeFilename(job.DisplayTitle())
	ext := videoExtension
	if job.AudioOnly {
		ext = ".m4a"
	}

	proc, err := e.starter.StartDownload(ctx, job.URL, job.DestinationDir, ytdlp.Options{
		UserAgent:  fetchUserAgent,
		Proxy:      job.ProxyURL,
		AudioOnly:  job.AudioOnly,
		OutputStem: stem,
	})
	if err != nil {
		return err
	}

	e.mu.Lock()
	if e.cancelled {
		e.mu.Unlock()
		proc.Kill()
		_ = proc.Wait()
		return errs.ErrCancelled
	}
	e.proc = proc
	e.mu.Unlock()

	waitErr := proc.Wait()
	if e.isCancelled() {
		return errs.ErrCancelled
	}
	if waitErr != nil {
		return waitErr
	}

	e.mu.Lock()
	job.OutputPath = filepath.Join(job.DestinationDir, stem+ext)
	e.mu.Unlock()
	return nil
}

// runDirect streams the media over HTTP in fixed-size chunks, checking the
// cancel flag between chunks. The partial file is removed on cancel or
// failure.
func (e *Engine) runDirect(ctx context.Context, job *model.DownloadJob, media *model.ResolvedMedia) error {
	e.mu.Lock()
	e.httpRun = true
	e.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, media.DirectMediaURL, nil)
	if err != nil {
		return fmt.Errorf("build media request: %w", err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)
	req.Header.Set("Referer", fetchReferer)

	resp, err := e.clientFor(job).Do(req)
	if err != nil {
		return fmt.Errorf("fetch media: %w: %v", errs.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch media: %w: status %d", errs.ErrNetwork, resp.StatusCode)
	}

	stem := platform.SanitizeFilename(job.DisplayTitle())
	path := platform.UniquePath(e.fs, job.DestinationDir, stem, videoExtension)

	out, err := e.fs.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w: %v", path, errs.ErrFilesystem, err)
	}

	total := resp.ContentLength
	var written int64
	lastPercent := -1
	buf := make([]byte, chunkSize)

	for {
		if e.isCancelled() {
			out.Close()
			e.removePartial(path)
			return errs.ErrCancelled
		}

		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				out.Close()
				e.removePartial(path)
				return fmt.Errorf("write %s: %w: %v", path, errs.ErrFilesystem, writeErr)
			}
			written += int64(n)

			if total > 0 {
				pct := float64(written) / float64(total) * 100
				if int(pct) != lastPercent {
					lastPercent = int(pct)
					e.mu.Lock()
					job.AdvanceProgress(pct)
					e.mu.Unlock()
					e.notify()
				}
			}
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			out.Close()
			e.removePartial(path)
			return fmt.Errorf("read media stream: %w: %v", errs.ErrNetwork, readErr)
		}
	}

	if err := out.Close(); err != nil {
		e.removePartial(path)
		return fmt.Errorf("close %s: %w: %v", path, errs.ErrFilesystem, err)
	}

	e.mu.Lock()
	job.OutputPath = path
	e.mu.Unlock()
	return nil
}

// Pause suspends the active job. Only delegated downloads can pause; the
// direct HTTP path has no resumable process to suspend.
func (e *Engine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.job == nil || e.job.State != model.StateDownloading {
		return errors.New("no active download to pause")
	}
	if e.httpRun || e.proc == nil {
		return errors.New("pause is not supported for direct downloads")
	}
	if err := e.proc.Suspend(); err != nil {
		return fmt.Errorf("suspend download: %w", err)
	}
	e.job.State = model.StatePaused
	e.notifyLocked()
	return nil
}

// Resume continues a paused job
func (e *Engine) Resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.job == nil || e.job.State != model.StatePaused {
		return errors.New("no paused download to resume")
	}
	if err := e.proc.Resume(); err != nil {
		return fmt.Errorf("resume download: %w", err)
	}
	e.job.State = model.StateDownloading
	e.notifyLocked()
	return nil
}

// Cancel aborts the active job. A paused delegated download is killed
// directly; the HTTP path notices the flag at the next chunk boundary. Safe
// to call when nothing is running.
func (e *Engine) Cancel() {
	e.mu.Lock()
	e.cancelled = true
	proc := e.proc
	e.mu.Unlock()

	if proc != nil {
		proc.Kill()
	}
}

// clientFor returns the HTTP client honoring the job's proxy, if any
func (e *Engine) clientFor(job *model.DownloadJob) *http.Client {
	if job.ProxyURL == "" {
		return e.httpc
	}
	proxy, err := url.Parse(job.ProxyURL)
	if err != nil {
		logrus.Warnf("Ignoring invalid proxy URL: %v", err)
		return e.httpc
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = http.ProxyURL(proxy)
	return &http.Client{Transport: transport, Timeout: e.httpc.Timeout}
}

// writeDescription drops the sidecar text file next to the media file.
// Failures are logged, not fatal: the download itself succeeded.
func (e *Engine) writeDescription(job *model.DownloadJob, description string) {
	stem := platform.SanitizeFilename(job.DisplayTitle())
	path := filepath.Join(job.DestinationDir, stem+descriptionName)
	if err := e.fs.WriteFile(path, []byte(description), 0644); err != nil {
		logrus.Warnf("Could not write description sidecar %s: %v", path, err)
	}
}

// removePartial deletes a partially written file, logging on failure
func (e *Engine) removePartial(path string) {
	if err := e.fs.Remove(path); err != nil {
		logrus.Warnf("Could not remove partial file %s: %v", path, err)
	}
}

func (e *Engine) setState(state model.JobState) {
	e.mu.Lock()
	e.job.State = state
	e.mu.Unlock()
	e.notify()
}

func (e *Engine) isCancelled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cancelled
}

// notify delivers a snapshot of the active job
func (e *Engine) notify() {
	e.mu.Lock()
	if e.job == nil || e.onUpdate == nil {
		e.mu.Unlock()
		return
	}
	snapshot := *e.job
	e.mu.Unlock()
	e.onUpdate(snapshot)
}

// notifyLocked delivers a snapshot while the caller holds the mutex. The
// callback runs on a fresh goroutine so listeners can call back into the
// engine without deadlocking.
func (e *Engine) notifyLocked() {
	if e.job == nil || e.onUpdate == nil {
		return
	}
	snapshot := *e.job
	go e.onUpdate(snapshot)
}

// notifyFinished delivers the terminal snapshot after the engine released
// the job.
func (e *Engine) notifyFinished(snapshot model.DownloadJob) {
	if e.onUpdate != nil {
		e.onUpdate(snapshot)
	}
}
