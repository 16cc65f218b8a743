package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"

	"github.com/spf13/afero"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Filename sanitization patterns
var (
	invalidChars        = regexp.MustCompile(`[\\/<>:;"'|?!*{}#%&^+,~\s]`)
	repeatedUnderscores = regexp.MustCompile(`__+`)
	edgeSeparators      = regexp.MustCompile(`^[_\-.]+|[_\-.]+$`)
)

// Maximum filename stem length kept from a video title
const MaxStemLength = 50

// CreateDirectoryIfNotExists creates the directory if it doesn't exist
func CreateDirectoryIfNotExists(fs afero.Fs, dirPath string) error {
	if _, err := fs.Stat(dirPath); os.IsNotExist(err) {
		return fs.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// SanitizeFilename normalizes a string into a safe, cross-platform filename
// stem. Long titles are truncated to MaxStemLength runes.
func SanitizeFilename(name string) string {
	runes := []rune(name)
	if len(runes) > MaxStemLength {
		name = string(runes[:MaxStemLength])
	}

	name = invalidChars.ReplaceAllString(name, "_")
	name = repeatedUnderscores.ReplaceAllString(name, "_")
	name = edgeSeparators.ReplaceAllString(name, "")

	if name == "" {
		return "video"
	}
	return name
}

// UniquePath returns a path in dir built from stem+ext that does not collide
// with an existing file, appending _1, _2, ... to the stem as needed.
func UniquePath(fs afero.Fs, dir, stem, ext string) string {
	candidate := filepath.Join(dir, stem+ext)
	for counter := 1; ; counter++ {
		if _, err := fs.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, counter, ext))
	}
}

// HasFFmpeg reports whether ffmpeg is available on PATH. Audio extraction
// needs it; the settings dialog warns when it is missing.
func HasFFmpeg() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}
