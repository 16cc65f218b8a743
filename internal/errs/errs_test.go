package errs

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestUserMessageSentinels(t *testing.T) {
	tests := []struct {
		err      error
		contains string
	}{
		{fmt.Errorf("probe: %w", ErrToolUnavailable), "yt-dlp is not installed"},
		{fmt.Errorf("enumerate: %w", ErrNoResults), "No videos"},
		{ErrCancelled, "cancelled"},
		{fmt.Errorf("fetch: %w", ErrNetwork), "Network error"},
		{fmt.Errorf("mkdir: %w", ErrFilesystem), "download folder"},
	}

	for _, tt := range tests {
		msg := UserMessage(tt.err)
		if !strings.Contains(strings.ToLower(msg), strings.ToLower(tt.contains)) {
			t.Errorf("UserMessage(%v) = %q, want substring %q", tt.err, msg, tt.contains)
		}
	}
}

func TestUserMessageCausePatterns(t *testing.T) {
	err := errors.New("HTTP Error 429: Rate Limit exceeded")
	if got := UserMessage(err); got != "Rate limit reached. Wait a few minutes and try again." {
		t.Errorf("unexpected message for rate limit error: %q", got)
	}

	err = errors.New("ERROR: This video is Private")
	if got := UserMessage(err); got != "This video is private." {
		t.Errorf("unexpected message for private video error: %q", got)
	}
}

func TestUserMessagePassthrough(t *testing.T) {
	err := errors.New("something nobody anticipated")
	if got := UserMessage(err); got != err.Error() {
		t.Errorf("unknown errors should pass through, got %q", got)
	}

	if got := UserMessage(nil); got != "" {
		t.Errorf("UserMessage(nil) = %q, want empty", got)
	}
}
