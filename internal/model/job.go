package model

import (
	"strings"
	"time"
)

// DownloadJob is the mutable state for one in-flight download. A job is owned
// by the queue coordinator entry that created it; the engine operates on a job
// handed to it and never retains it past completion.
type DownloadJob struct {
	ID              string
	URL             string
	DestinationDir  string
	AudioOnly       bool
	ProxyURL        string
	SaveDescription bool

	State           JobState
	ProgressPercent float64 // 0-100, non-decreasing while Downloading
	LastError       string
	OutputPath      string
	Title           string
	ThumbnailURL    string
	StartedAt       time.Time
	FinishedAt      time.Time
}

// AdvanceProgress raises ProgressPercent to pct, never lowering it. Values
// outside 0-100 are clamped.
func (j *DownloadJob) AdvanceProgress(pct float64) {
	if pct > 100 {
		pct = 100
	}
	if pct > j.ProgressPercent {
		j.ProgressPercent = pct
	}
}

// DisplayTitle returns the title, the output filename, or the URL, in order
// of preference.
func (j *DownloadJob) DisplayTitle() string {
	if j.Title != "" && !strings.HasPrefix(j.Title, "http") {
		return j.Title
	}
	if j.OutputPath != "" {
		parts := strings.FieldsFunc(j.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			name := parts[len(parts)-1]
			if idx := strings.LastIndex(name, "."); idx > 0 {
				name = name[:idx]
			}
			return name
		}
	}
	return j.URL
}
