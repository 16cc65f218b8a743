package download

import (
	"context"

	"github.com/tiktoksage/tiksage/internal/model"
	"github.com/tiktoksage/tiksage/internal/ytdlp"
)

// mediaResolver produces downloadable media metadata for one video URL
type mediaResolver interface {
	ResolveInfo(ctx context.Context, url, proxy string) (*model.ResolvedMedia, error)
}

// toolProcess is one running delegated download, pausable and killable
type toolProcess interface {
	Wait() error
	Suspend() error
	Resume() error
	Kill()
}

// toolStarter launches delegated downloads. Separated from the concrete
// runner so the engine is testable without subprocesses.
type toolStarter interface {
	StartDownload(ctx context.Context, url, dir string, opts ytdlp.Options) (toolProcess, error)
}

// historyRecorder receives one entry per completed job
type historyRecorder interface {
	AddEntry(entry model.HistoryEntry) string
}

// runnerStarter adapts the concrete tool runner to the toolStarter seam
type runnerStarter struct {
	runner *ytdlp.Runner
}

func (rs runnerStarter) StartDownload(ctx context.Context, url, dir string, opts ytdlp.Options) (toolProcess, error) {
	proc, err := rs.runner.StartDownload(ctx, url, dir, opts)
	if err != nil {
		return nil, err
	}
	return proc, nil
}
