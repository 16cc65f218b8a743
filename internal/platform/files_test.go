package platform

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"spaces and slashes", "my cool / video", "my_cool_video"},
		{"collapses underscores", "a  b   c", "a_b_c"},
		{"trims edges", "__hello__", "hello"},
		{"empty falls back", "###", "video"},
		{"plain name untouched", "clip42", "clip42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.expected {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitizeFilenameTruncates(t *testing.T) {
	long := strings.Repeat("a", 200)
	got := SanitizeFilename(long)
	if len(got) != MaxStemLength {
		t.Errorf("Expected stem truncated to %d runes, got %d", MaxStemLength, len(got))
	}
}

func TestUniquePath(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := "/downloads"

	first := UniquePath(fs, dir, "title", ".mp4")
	if first != filepath.Join(dir, "title.mp4") {
		t.Errorf("Expected title.mp4, got %s", first)
	}

	if err := afero.WriteFile(fs, first, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	second := UniquePath(fs, dir, "title", ".mp4")
	if second != filepath.Join(dir, "title_1.mp4") {
		t.Errorf("Expected title_1.mp4, got %s", second)
	}

	if err := afero.WriteFile(fs, second, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	third := UniquePath(fs, dir, "title", ".mp4")
	if third != filepath.Join(dir, "title_2.mp4") {
		t.Errorf("Expected title_2.mp4, got %s", third)
	}
}

func TestCreateDirectoryIfNotExists(t *testing.T) {
	fs := afero.NewMemMapFs()

	if err := CreateDirectoryIfNotExists(fs, "/a/b/c"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	exists, err := afero.DirExists(fs, "/a/b/c")
	if err != nil || !exists {
		t.Errorf("Directory should exist after creation (exists=%v, err=%v)", exists, err)
	}

	// Idempotent on an existing directory
	if err := CreateDirectoryIfNotExists(fs, "/a/b/c"); err != nil {
		t.Errorf("Expected no error on existing directory, got %v", err)
	}
}
