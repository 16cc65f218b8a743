package model

// JobState represents the lifecycle state of a download job
type JobState string

const (
	// StatePreparing means the job is setting up its destination
	StatePreparing JobState = "Preparing"

	// StateDownloading means bytes are being transferred
	StateDownloading JobState = "Downloading"

	// StatePaused means the underlying subprocess is suspended
	StatePaused JobState = "Paused"

	// StateCancelled means the job was cancelled by the user
	StateCancelled JobState = "Cancelled"

	// StateCompleted means the job finished successfully
	StateCompleted JobState = "Completed"

	// StateFailed means the job failed with an error
	StateFailed JobState = "Failed"
)

// String returns the string representation of JobState
func (s JobState) String() string {
	return string(s)
}

// IsActive returns true if the job is still running or suspended
func (s JobState) IsActive() bool {
	return s == StatePreparing || s == StateDownloading || s == StatePaused
}

// IsTerminal returns true if the job reached a final state
func (s JobState) IsTerminal() bool {
	return s == StateCancelled || s == StateCompleted || s == StateFailed
}
