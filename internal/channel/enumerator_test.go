package channel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tiktoksage/tiksage/internal/errs"
	"github.com/tiktoksage/tiksage/internal/model"
	"github.com/tiktoksage/tiksage/internal/ytdlp"
)

// fakeStream replays canned lines and records lifecycle calls
type fakeStream struct {
	records []string
	kills   int
	waits   int
	ch      chan []byte
}

func (f *fakeStream) Lines() <-chan []byte {
	if f.ch == nil {
		f.ch = make(chan []byte, len(f.records))
		for _, r := range f.records {
			f.ch <- []byte(r)
		}
		close(f.ch)
	}
	return f.ch
}

func (f *fakeStream) Kill() { f.kills++ }

func (f *fakeStream) Wait(time.Duration) error {
	f.waits++
	return nil
}

// scriptedEnumerator serves one fake stream per strategy attempt
func scriptedEnumerator(t *testing.T, streams []*fakeStream) (*Enumerator, *int) {
	t.Helper()
	attempt := 0
	e := &Enumerator{
		stream: func(ctx context.Context, url string, opts ytdlp.Options) (MetadataStream, error) {
			if attempt >= len(streams) {
				t.Fatalf("Unexpected strategy attempt %d", attempt+1)
			}
			st := streams[attempt]
			attempt++
			return st, nil
		},
	}
	return e, &attempt
}

func TestEnumerateFirstNonEmptyStrategyWins(t *testing.T) {
	empty := &fakeStream{}
	full := &fakeStream{records: []string{
		`{"id": "1", "title": "first", "url": "https://www.tiktok.com/@user/video/1"}`,
		`{"id": "2", "title": "second", "url": "https://www.tiktok.com/@user/video/2"}`,
		`{"id": "3", "title": "third", "url": "https://www.tiktok.com/@user/video/3"}`,
	}}
	e, attempts := scriptedEnumerator(t, []*fakeStream{empty, full})

	var got []model.VideoDescriptor
	count, err := e.Enumerate(context.Background(), Request{ChannelURL: "https://www.tiktok.com/@user"}, func(v model.VideoDescriptor) {
		got = append(got, v)
	}, nil)
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}

	if count != 3 || len(got) != 3 {
		t.Fatalf("Expected 3 videos, got count=%d delivered=%d", count, len(got))
	}
	if *attempts != 2 {
		t.Errorf("Expected exactly 2 strategy attempts, got %d", *attempts)
	}
	if got[0].Title != "first" || got[2].Title != "third" {
		t.Errorf("Videos out of order: %+v", got)
	}
}

func TestEnumerateToleratesMalformedLines(t *testing.T) {
	st := &fakeStream{records: []string{
		`{"id": "1", "title": "good one"}`,
		`[youtube] extracting page 2`,
		`{"id": "2", "title": "good two"}`,
	}}
	e, _ := scriptedEnumerator(t, []*fakeStream{st})

	var got []model.VideoDescriptor
	count, err := e.Enumerate(context.Background(), Request{ChannelURL: "https://www.tiktok.com/@user"}, func(v model.VideoDescriptor) {
		got = append(got, v)
	}, nil)
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}

	if count != 2 {
		t.Fatalf("Expected malformed line skipped, got count=%d", count)
	}
	if got[0].ID != "1" || got[1].ID != "2" {
		t.Errorf("Descriptor order broken: %+v", got)
	}
}

func TestEnumerateVideoCapKillsStream(t *testing.T) {
	st := &fakeStream{records: []string{
		`{"id": "1"}`,
		`{"id": "2"}`,
		`{"id": "3"}`,
		`{"id": "4"}`,
	}}
	e, _ := scriptedEnumerator(t, []*fakeStream{st})

	count, err := e.Enumerate(context.Background(), Request{
		ChannelURL: "https://www.tiktok.com/@user",
		MaxVideos:  2,
	}, nil, nil)
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}

	if count != 2 {
		t.Errorf("Expected enumeration capped at 2, got %d", count)
	}
	if st.kills != 1 {
		t.Errorf("Expected stream killed at cap, got %d kills", st.kills)
	}
}

func TestEnumerateAllStrategiesEmpty(t *testing.T) {
	streams := make([]*fakeStream, len(strategies))
	for i := range streams {
		streams[i] = &fakeStream{}
	}
	e, attempts := scriptedEnumerator(t, streams)

	_, err := e.Enumerate(context.Background(), Request{ChannelURL: "https://www.tiktok.com/@user"}, nil, nil)
	if !errors.Is(err, errs.ErrNoResults) {
		t.Fatalf("Expected ErrNoResults, got %v", err)
	}
	if *attempts != len(strategies) {
		t.Errorf("Expected all %d strategies tried, got %d", len(strategies), *attempts)
	}
}

func TestEnumerateMissingToolAbortsLadder(t *testing.T) {
	e := &Enumerator{
		stream: func(ctx context.Context, url string, opts ytdlp.Options) (MetadataStream, error) {
			return nil, errs.ErrToolUnavailable
		},
	}

	_, err := e.Enumerate(context.Background(), Request{ChannelURL: "https://www.tiktok.com/@user"}, nil, nil)
	if !errors.Is(err, errs.ErrToolUnavailable) {
		t.Fatalf("Expected ErrToolUnavailable, got %v", err)
	}
}

func TestEnumerateRejectsVideoURL(t *testing.T) {
	e, _ := scriptedEnumerator(t, nil)
	if _, err := e.Enumerate(context.Background(), Request{ChannelURL: "https://www.tiktok.com/@user/video/7123"}, nil, nil); err == nil {
		t.Fatal("Expected error for a non-channel URL")
	}
}

func TestEnumerateProgressCallback(t *testing.T) {
	st := &fakeStream{records: []string{`{"id": "1"}`, `{"id": "2"}`}}
	e, _ := scriptedEnumerator(t, []*fakeStream{st})

	var progress []Progress
	_, err := e.Enumerate(context.Background(), Request{ChannelURL: "https://www.tiktok.com/@user", MaxVideos: 5}, nil, func(p Progress) {
		progress = append(progress, p)
	})
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}

	if len(progress) != 2 || progress[1].Found != 2 {
		t.Fatalf("Unexpected progress sequence: %+v", progress)
	}
	if progress[0].Strategy == "" {
		t.Error("Progress should name the active strategy")
	}
	if progress[0].Total != 5 {
		t.Errorf("Progress should carry the requested cap, got %d", progress[0].Total)
	}
}

func TestCollect(t *testing.T) {
	st := &fakeStream{records: []string{`{"id": "1"}`, `{"id": "2"}`}}
	e, _ := scriptedEnumerator(t, []*fakeStream{st})

	videos, err := e.Collect(context.Background(), Request{ChannelURL: "https://www.tiktok.com/@user"})
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("Expected 2 collected videos, got %d", len(videos))
	}
}

func TestToDescriptorReconstructsURL(t *testing.T) {
	desc := toDescriptor(ytdlp.Info{ID: "7123"}, "user")
	if desc.URL != "https://www.tiktok.com/@user/video/7123" {
		t.Errorf("Reconstructed URL = %q", desc.URL)
	}

	desc = toDescriptor(ytdlp.Info{ID: "7123", WebpageURL: "https://example.com/x"}, "user")
	if desc.URL != "https://example.com/x" {
		t.Errorf("Explicit page URL should win, got %q", desc.URL)
	}
}
