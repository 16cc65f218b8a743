// Package channel enumerates the videos of a channel page. Extraction runs
// through the external tool in streaming mode, trying a ladder of client
// identity strategies until one yields results.
package channel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tiktoksage/tiksage/internal/errs"
	"github.com/tiktoksage/tiksage/internal/model"
	"github.com/tiktoksage/tiksage/internal/platform"
	"github.com/tiktoksage/tiksage/internal/ytdlp"
)

// waitTimeout bounds how long the enumerator waits for the subprocess to
// exit after its output stream ends.
const waitTimeout = 5 * time.Minute

// MetadataStream is the subprocess-backed record stream the enumerator
// consumes, separated from the concrete tool for tests.
type MetadataStream interface {
	Lines() <-chan []byte
	Kill()
	Wait(timeout time.Duration) error
}

type streamFunc func(ctx context.Context, url string, opts ytdlp.Options) (MetadataStream, error)

// Request describes one enumeration run. MaxVideos of 0 means unbounded.
type Request struct {
	ChannelURL string
	MaxVideos  int
	Proxy      string
}

// Progress reports enumeration state after each discovered video. Total is
// the requested cap, 0 when unbounded.
type Progress struct {
	Strategy string
	Found    int
	Total    int
}

// Enumerator discovers a channel's videos. Safe for sequential reuse; each
// Enumerate call is one independent run.
type Enumerator struct {
	stream streamFunc
}

// NewEnumerator creates an enumerator backed by the extraction tool runner
func NewEnumerator(runner *ytdlp.Runner) *Enumerator {
	return &Enumerator{
		stream: func(ctx context.Context, url string, opts ytdlp.Options) (MetadataStream, error) {
			st, err := runner.StreamMetadata(ctx, url, opts)
			if err != nil {
				return nil, err
			}
			return st, nil
		},
	}
}

// Enumerate walks the strategy ladder for req.ChannelURL, delivering each
// discovered video to onFound and per-video state to onProgress. The first
// strategy producing any videos ends the run; if every strategy comes up
// empty the result is errs.ErrNoResults. Either callback may be nil.
func (e *Enumerator) Enumerate(ctx context.Context, req Request, onFound func(model.VideoDescriptor), onProgress func(Progress)) (int, error) {
	if !platform.IsChannelURL(req.ChannelURL) {
		return 0, fmt.Errorf("not a channel URL: %s", req.ChannelURL)
	}
	channelName := platform.ChannelName(req.ChannelURL)

	for _, strat := range strategies {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}

		logrus.Infof("Enumerating %s with strategy %q", req.ChannelURL, strat.name)
		found, err := e.runStrategy(ctx, req, strat, channelName, onFound, onProgress)
		if err != nil {
			if errors.Is(err, errs.ErrToolUnavailable) {
				return 0, err
			}
			logrus.Warnf("Strategy %q failed: %v", strat.name, err)
			continue
		}
		if found > 0 {
			logrus.Infof("Strategy %q found %d videos", strat.name, found)
			return found, nil
		}
		logrus.Debugf("Strategy %q found nothing, trying next", strat.name)
	}

	return 0, fmt.Errorf("no videos found for %s: %w", req.ChannelURL, errs.ErrNoResults)
}

// runStrategy executes one strategy to completion or the video cap
func (e *Enumerator) runStrategy(ctx context.Context, req Request, strat enumStrategy, channelName string, onFound func(model.VideoDescriptor), onProgress func(Progress)) (int, error) {
	opts := strat.opts
	opts.MaxItems = req.MaxVideos
	opts.Proxy = req.Proxy

	st, err := e.stream(ctx, req.ChannelURL, opts)
	if err != nil {
		return 0, err
	}

	found := 0
	capped := false
	for line := range st.Lines() {
		var info ytdlp.Info
		if err := json.Unmarshal(line, &info); err != nil {
			// Tolerate noise between records; the tool interleaves
			// diagnostics on some channel layouts.
			logrus.Debugf("Skipping malformed metadata line: %v", err)
			continue
		}

		desc := toDescriptor(info, channelName)
		found++
		if onFound != nil {
			onFound(desc)
		}
		if onProgress != nil {
			onProgress(Progress{Strategy: strat.name, Found: found, Total: req.MaxVideos})
		}

		if req.MaxVideos > 0 && found >= req.MaxVideos {
			capped = true
			st.Kill()
			break
		}
	}

	if capped {
		// Drain the remaining lines so the scanner goroutine can finish.
		for range st.Lines() {
		}
		_ = st.Wait(waitTimeout)
		return found, nil
	}

	if err := st.Wait(waitTimeout); err != nil && found == 0 {
		return 0, err
	}
	return found, nil
}

// Collect runs Enumerate and gathers the results into a slice, for callers
// that do not need incremental delivery.
func (e *Enumerator) Collect(ctx context.Context, req Request) ([]model.VideoDescriptor, error) {
	var videos []model.VideoDescriptor
	_, err := e.Enumerate(ctx, req, func(v model.VideoDescriptor) {
		videos = append(videos, v)
	}, nil)
	if err != nil {
		return nil, err
	}
	return videos, nil
}

// toDescriptor maps a raw metadata record onto the shared descriptor model.
// Flat extraction records often omit the page URL, so it is reconstructed
// from the channel name and video ID when missing.
func toDescriptor(info ytdlp.Info, channelName string) model.VideoDescriptor {
	url := info.WebpageURL
	if url == "" {
		url = info.URL
	}
	if url == "" && info.ID != "" {
		url = fmt.Sprintf("https://www.tiktok.com/@%s/video/%s", channelName, info.ID)
	}

	return model.VideoDescriptor{
		ID:              info.ID,
		URL:             url,
		Title:           info.Title,
		DurationSeconds: int(info.Duration),
		ThumbnailURL:    info.Thumbnail,
		ViewCount:       info.ViewCount,
		UploadDate:      info.UploadDate,
	}
}
