package errs

// Package errs defines the error taxonomy shared by the resolver, enumerator
// and download engine, plus the mapping from raw errors to the user-visible
// message shown by the UI.

import (
	"errors"
	"strings"
)

// Sentinel errors. Components wrap these with %w so callers can classify
// outcomes with errors.Is.
var (
	// ErrToolUnavailable means the extraction tool or API client is not installed
	ErrToolUnavailable = errors.New("extraction tool unavailable")

	// ErrNetwork covers timeouts, refused connections and non-200 responses
	ErrNetwork = errors.New("network failure")

	// ErrParse means metadata could not be decoded. Tolerated inline for
	// streaming records; fatal only when an entire response is unparseable.
	ErrParse = errors.New("metadata parse failure")

	// ErrNoResults means every extraction strategy was exhausted with zero output
	ErrNoResults = errors.New("no results found")

	// ErrCancelled means the user cancelled the operation
	ErrCancelled = errors.New("cancelled by user")

	// ErrFilesystem covers directory and file write failures
	ErrFilesystem = errors.New("filesystem failure")
)

// causePatterns maps substrings of extractor/API error output to friendlier
// explanations, checked in order.
var causePatterns = []struct {
	needle  string
	message string
}{
	{"rate limit", "Rate limit reached. Wait a few minutes and try again."},
	{"unauthorized", "Access denied. The video may require a logged-in session."},
	{"forbidden", "Access to this video is forbidden."},
	{"not found", "Video not found. It may have been deleted."},
	{"private", "This video is private."},
	{"age restricted", "This video is age restricted."},
	{"removed", "This video has been removed."},
}

// UserMessage maps any error to a human-readable string suitable for the UI.
// Classification by sentinel takes precedence; otherwise the raw text is
// scanned for known causes.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrToolUnavailable):
		return "yt-dlp is not installed. Install it and try again."
	case errors.Is(err, ErrNoResults):
		return "No videos could be fetched. The channel may be private or empty."
	case errors.Is(err, ErrCancelled):
		return "Download cancelled."
	case errors.Is(err, ErrNetwork):
		return "Network error. Check your internet connection or proxy settings."
	case errors.Is(err, ErrFilesystem):
		return "Could not write to the download folder."
	case errors.Is(err, ErrParse):
		return "Could not read the video metadata."
	}

	lower := strings.ToLower(err.Error())
	for _, p := range causePatterns {
		if strings.Contains(lower, p.needle) {
			return p.message
		}
	}
	return err.Error()
}
