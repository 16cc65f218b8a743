package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/tiktoksage/tiksage/internal/errs"
	"github.com/tiktoksage/tiksage/internal/model"
	"github.com/tiktoksage/tiksage/internal/ytdlp"
)

const videoURL = "https://www.tiktok.com/@user/video/7123456789"

type fakeProber struct {
	available bool
	info      *ytdlp.Info
	err       error
	calls     int
	opts      ytdlp.Options
}

func (f *fakeProber) Available() bool { return f.available }

func (f *fakeProber) Probe(ctx context.Context, url string, opts ytdlp.Options) (*ytdlp.Info, error) {
	f.calls++
	f.opts = opts
	return f.info, f.err
}

type fakeAPI struct {
	media *model.ResolvedMedia
	err   error
	calls int
}

func (f *fakeAPI) Video(ctx context.Context, url string) (*model.ResolvedMedia, error) {
	f.calls++
	return f.media, f.err
}

func TestResolvePrimaryTierWins(t *testing.T) {
	prober := &fakeProber{
		available: true,
		info:      &ytdlp.Info{Title: "a clip", Uploader: "someone", Duration: 21.5},
	}
	api := &fakeAPI{}
	r := NewResolver(prober, api)

	media, err := r.ResolveInfo(context.Background(), videoURL, "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if !media.Delegated {
		t.Error("Primary tier result should be marked delegated")
	}
	if media.Title != "a clip" || media.DurationSeconds != 21 {
		t.Errorf("Unexpected media: %+v", media)
	}
	if api.calls != 0 {
		t.Errorf("Fallback should not run when primary succeeds, got %d calls", api.calls)
	}
}

func TestResolveFallsBackWhenToolMissing(t *testing.T) {
	prober := &fakeProber{available: false}
	api := &fakeAPI{media: &model.ResolvedMedia{Title: "fallback clip", DirectMediaURL: "https://cdn.example/v.mp4"}}
	r := NewResolver(prober, api)

	media, err := r.ResolveInfo(context.Background(), videoURL, "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if media.Delegated {
		t.Error("Fallback result must not be delegated")
	}
	if media.DirectMediaURL == "" {
		t.Error("Fallback result should carry a direct media URL")
	}
	if prober.calls != 0 {
		t.Errorf("Probe should not run when tool is missing, got %d calls", prober.calls)
	}
}

func TestResolveFallsBackOnProbeFailure(t *testing.T) {
	prober := &fakeProber{available: true, err: errors.New("extractor exploded")}
	api := &fakeAPI{media: &model.ResolvedMedia{Title: "fallback clip", DirectMediaURL: "https://cdn.example/v.mp4"}}
	r := NewResolver(prober, api)

	media, err := r.ResolveInfo(context.Background(), videoURL, "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if media.Title != "fallback clip" {
		t.Errorf("Expected fallback media, got %+v", media)
	}
}

func TestResolveBothTiersFail(t *testing.T) {
	prober := &fakeProber{available: false}
	api := &fakeAPI{err: errs.ErrNetwork}
	r := NewResolver(prober, api)

	_, err := r.ResolveInfo(context.Background(), videoURL, "")
	if err == nil {
		t.Fatal("Expected error when both tiers fail")
	}
	if !errors.Is(err, errs.ErrToolUnavailable) {
		t.Errorf("Missing tool should be reported, got %v", err)
	}
}

func TestResolveNetworkErrorSurfaced(t *testing.T) {
	prober := &fakeProber{available: true, err: errors.New("probe failed")}
	api := &fakeAPI{err: errs.ErrNetwork}
	r := NewResolver(prober, api)

	_, err := r.ResolveInfo(context.Background(), videoURL, "")
	if !errors.Is(err, errs.ErrNetwork) {
		t.Fatalf("Expected ErrNetwork, got %v", err)
	}
}

func TestResolveRejectsForeignURL(t *testing.T) {
	r := NewResolver(&fakeProber{available: true}, &fakeAPI{})
	if _, err := r.ResolveInfo(context.Background(), "https://example.com/watch?v=1", ""); err == nil {
		t.Fatal("Expected error for a foreign URL")
	}
}

func TestResolveForwardsProxy(t *testing.T) {
	prober := &fakeProber{available: true, info: &ytdlp.Info{Title: "a clip"}}
	r := NewResolver(prober, &fakeAPI{})

	if _, err := r.ResolveInfo(context.Background(), videoURL, "socks5://127.0.0.1:9050"); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if prober.opts.Proxy != "socks5://127.0.0.1:9050" {
		t.Errorf("Probe did not receive the caller proxy, got %q", prober.opts.Proxy)
	}
}
