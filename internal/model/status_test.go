package model

import "testing"

func TestJobStateIsActive(t *testing.T) {
	tests := []struct {
		state    JobState
		expected bool
	}{
		{StatePreparing, true},
		{StateDownloading, true},
		{StatePaused, true},
		{StateCancelled, false},
		{StateCompleted, false},
		{StateFailed, false},
	}

	for _, tt := range tests {
		if got := tt.state.IsActive(); got != tt.expected {
			t.Errorf("%s.IsActive() = %v, want %v", tt.state, got, tt.expected)
		}
	}
}

func TestJobStateIsTerminal(t *testing.T) {
	tests := []struct {
		state    JobState
		expected bool
	}{
		{StatePreparing, false},
		{StateDownloading, false},
		{StatePaused, false},
		{StateCancelled, true},
		{StateCompleted, true},
		{StateFailed, true},
	}

	for _, tt := range tests {
		if got := tt.state.IsTerminal(); got != tt.expected {
			t.Errorf("%s.IsTerminal() = %v, want %v", tt.state, got, tt.expected)
		}
	}
}

func TestAdvanceProgressMonotonic(t *testing.T) {
	job := &DownloadJob{State: StateDownloading}

	job.AdvanceProgress(40)
	if job.ProgressPercent != 40 {
		t.Errorf("Expected progress 40, got %f", job.ProgressPercent)
	}

	// Lower values must not regress the reported progress
	job.AdvanceProgress(25)
	if job.ProgressPercent != 40 {
		t.Errorf("Progress regressed to %f", job.ProgressPercent)
	}

	job.AdvanceProgress(150)
	if job.ProgressPercent != 100 {
		t.Errorf("Expected progress clamped to 100, got %f", job.ProgressPercent)
	}
}

func TestDisplayTitle(t *testing.T) {
	tests := []struct {
		name     string
		job      DownloadJob
		expected string
	}{
		{
			name:     "title preferred",
			job:      DownloadJob{Title: "Dance video", URL: "https://tiktok.com/x", OutputPath: "/d/a.mp4"},
			expected: "Dance video",
		},
		{
			name:     "url-like title skipped",
			job:      DownloadJob{Title: "https://tiktok.com/x", OutputPath: "/downloads/clip.mp4"},
			expected: "clip",
		},
		{
			name:     "falls back to url",
			job:      DownloadJob{URL: "https://tiktok.com/@u/video/1"},
			expected: "https://tiktok.com/@u/video/1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.job.DisplayTitle(); got != tt.expected {
				t.Errorf("DisplayTitle() = %q, want %q", got, tt.expected)
			}
		})
	}
}
