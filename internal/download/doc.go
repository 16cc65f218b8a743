package download

// Package download runs the download pipeline: a single-job engine with two
// transfer paths (delegated to the extraction tool, or direct HTTP from a
// resolved media URL) and a sequential queue coordinator that feeds it,
// propagates job snapshots to the UI, and records completions in history.
