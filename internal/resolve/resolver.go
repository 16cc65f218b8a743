// Package resolve turns a single video URL into downloadable media: the
// extraction tool is the primary tier, the platform web API the fallback.
package resolve

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tiktoksage/tiksage/internal/errs"
	"github.com/tiktoksage/tiksage/internal/model"
	"github.com/tiktoksage/tiksage/internal/platform"
	"github.com/tiktoksage/tiksage/internal/ytdlp"
)

// resolveUserAgent is the client identity presented during metadata probes
const resolveUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// prober is the extraction tool surface the resolver needs
type prober interface {
	Available() bool
	Probe(ctx context.Context, url string, opts ytdlp.Options) (*ytdlp.Info, error)
}

// apiClient is the fallback metadata tier
type apiClient interface {
	Video(ctx context.Context, url string) (*model.ResolvedMedia, error)
}

// Resolver resolves single videos through two tiers. It carries no per-call
// state and is safe to share across goroutines.
type Resolver struct {
	runner prober
	api    apiClient
}

// NewResolver creates a resolver over both metadata tiers
func NewResolver(runner prober, api apiClient) *Resolver {
	return &Resolver{runner: runner, api: api}
}

// ResolveInfo produces media metadata for one video URL. The extraction tool is
// tried first; any tool failure other than a bad URL falls through to the
// platform API. When the tool succeeds, the result is marked Delegated so
// the download engine lets the tool fetch the media itself. An empty proxy
// means a direct connection; it applies to the primary tier's tool
// invocation (the fallback client carries its own proxy configuration).
func (r *Resolver) ResolveInfo(ctx context.Context, url, proxy string) (*model.ResolvedMedia, error) {
	if !platform.IsTikTokURL(url) {
		return nil, fmt.Errorf("not a recognized video URL: %s", url)
	}

	info, primaryErr := r.probe(ctx, url, proxy)
	if primaryErr == nil {
		return fromInfo(info), nil
	}
	logrus.Warnf("Primary resolution failed for %s: %v", url, primaryErr)

	media, fallbackErr := r.api.Video(ctx, url)
	if fallbackErr == nil {
		return media, nil
	}
	logrus.Warnf("Fallback resolution failed for %s: %v", url, fallbackErr)

	// Both tiers failed; pick the error that best explains the situation.
	if errors.Is(primaryErr, errs.ErrToolUnavailable) && errors.Is(fallbackErr, errs.ErrNetwork) {
		return nil, fmt.Errorf("resolve %s: %w (and fallback: %v)", url, primaryErr, fallbackErr)
	}
	if errors.Is(fallbackErr, errs.ErrNetwork) {
		return nil, fmt.Errorf("resolve %s: %w", url, fallbackErr)
	}
	return nil, fmt.Errorf("resolve %s: both tiers failed: %v; %v", url, primaryErr, fallbackErr)
}

// probe runs the primary tier
func (r *Resolver) probe(ctx context.Context, url, proxy string) (*ytdlp.Info, error) {
	if !r.runner.Available() {
		return nil, fmt.Errorf("primary tier: %w", errs.ErrToolUnavailable)
	}
	return r.runner.Probe(ctx, url, ytdlp.Options{
		UserAgent: resolveUserAgent,
		Proxy:     proxy,
	})
}

// fromInfo maps a probe record onto the shared media model. Delegated is set
// because a tool that can probe the URL can also download it.
func fromInfo(info *ytdlp.Info) *model.ResolvedMedia {
	return &model.ResolvedMedia{
		Title:           info.Title,
		Author:          info.Uploader,
		Description:     info.Description,
		DurationSeconds: int(info.Duration),
		LikeCount:       info.LikeCount,
		CommentCount:    info.CommentCount,
		ShareCount:      info.RepostCount,
		ThumbnailURL:    info.Thumbnail,
		Delegated:       true,
	}
}
