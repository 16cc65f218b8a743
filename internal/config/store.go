// Package config manages application configuration: a thread-safe settings
// document persisted as JSON, addressed by dot-separated key paths, with
// typed accessors for the settings the UI and download pipeline consume.
package config

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Store is a thread-safe configuration store backed by a single JSON file.
// The in-memory document is authoritative for the process lifetime:
// persistence failures are logged and swallowed, never propagated.
//
// Construct one Store at startup and inject it; there is no package-level
// instance.
type Store struct {
	mu       sync.Mutex
	fs       afero.Afero
	path     string
	settings map[string]any
	loaded   bool
}

// New creates a configuration store persisted at path. The file is read
// lazily on first access.
func New(fs afero.Fs, path string) *Store {
	return &Store{
		fs:   afero.Afero{Fs: fs},
		path: path,
	}
}

// load reads the config file, merging loaded keys over defaults at the top
// level. A missing file is created with defaults; a corrupt file or
// non-object root falls back to defaults in memory, leaving the file as-is
// until the next mutation rewrites it. Callers must hold mu.
func (s *Store) load() {
	if s.loaded {
		return
	}

	exists, err := s.fs.Exists(s.path)
	if err == nil && exists {
		data, rerr := s.fs.ReadFile(s.path)
		var doc map[string]any
		if rerr == nil {
			rerr = json.Unmarshal(data, &doc)
		}
		if rerr != nil || doc == nil {
			logrus.Warnf("Corrupt config file %s, using defaults", s.path)
			s.settings = defaultConfig()
		} else {
			// Merge with defaults at the top level only: loaded keys win,
			// defaults fill gaps. Nested default subtrees are not deep-merged.
			s.settings = defaultConfig()
			for k, v := range doc {
				s.settings[k] = v
			}
		}
	} else {
		logrus.Info("Config file not found, creating with defaults")
		s.settings = defaultConfig()
		s.persist()
	}

	s.loaded = true
	logrus.Debugf("Configuration loaded from %s", s.path)
}

// persist writes the current document to disk. Failures are logged and
// swallowed. Callers must hold mu.
func (s *Store) persist() {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		logrus.Errorf("Error creating config directory: %v", err)
		return
	}

	data, err := json.MarshalIndent(s.settings, "", "  ")
	if err != nil {
		logrus.Errorf("Error encoding config: %v", err)
		return
	}

	if err := s.fs.WriteFile(s.path, data, 0644); err != nil {
		logrus.Errorf("Error saving config: %v", err)
	}
}

// Get returns the value at the dot-separated key path, or fallback when the
// path does not resolve. Missing keys are never an error.
func (s *Store) Get(key string, fallback any) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	var value any = s.settings
	for _, k := range strings.Split(key, ".") {
		m, ok := value.(map[string]any)
		if !ok {
			return fallback
		}
		value, ok = m[k]
		if !ok {
			return fallback
		}
	}

	if value == nil {
		return fallback
	}
	return copyValue(value)
}

// copyValue deep-copies a JSON-shaped value so callers never hold references
// into the store's live document.
func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = copyValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = copyValue(val)
		}
		return out
	default:
		return v
	}
}

// Set stores value at the dot-separated key path, creating intermediate
// objects as needed. An intermediate that exists but is not an object is
// silently overwritten with one. The document is persisted synchronously.
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	keys := strings.Split(key, ".")
	current := s.settings
	for _, k := range keys[:len(keys)-1] {
		next, ok := current[k].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[k] = next
		}
		current = next
	}

	current[keys[len(keys)-1]] = value
	s.persist()
	logrus.Debugf("Configuration updated: %s", key)
}

// Delete removes the value at the dot-separated key path. Deleting a path
// that does not resolve is a no-op.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	keys := strings.Split(key, ".")
	current := s.settings
	for _, k := range keys[:len(keys)-1] {
		next, ok := current[k].(map[string]any)
		if !ok {
			return
		}
		current = next
	}

	last := keys[len(keys)-1]
	if _, ok := current[last]; ok {
		delete(current, last)
		s.persist()
		logrus.Debugf("Configuration key deleted: %s", key)
	}
}

// GetAll returns a deep copy of the settings document.
func (s *Store) GetAll() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	return copyValue(s.settings).(map[string]any)
}

// ResetToDefaults replaces all settings with factory defaults and persists.
func (s *Store) ResetToDefaults() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = defaultConfig()
	s.loaded = true
	s.persist()
	logrus.Info("Configuration reset to defaults")
}
