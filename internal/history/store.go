// Package history provides the durable, queryable record of completed
// downloads: a most-recent-first list mirrored 1:1 to a JSON file.
package history

import (
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/tiktoksage/tiksage/internal/model"
)

// Store is a thread-safe download history store backed by a single JSON
// file. It follows the same discipline as the config store: lazy load,
// corrupt-file fallback, synchronous persist with swallowed errors, and a
// lock wrapping every logical operation including persistence.
type Store struct {
	mu      sync.Mutex
	fs      afero.Afero
	path    string
	entries []model.HistoryEntry
	loaded  bool

	// now is swappable for tests
	now func() time.Time
}

// New creates a history store persisted at path
func New(fs afero.Fs, path string) *Store {
	return &Store{
		fs:   afero.Afero{Fs: fs},
		path: path,
		now:  time.Now,
	}
}

// load reads the history file. Missing, corrupt, or non-list content yields
// an empty history. Callers must hold mu.
func (s *Store) load() {
	if s.loaded {
		return
	}
	s.loaded = true

	exists, err := s.fs.Exists(s.path)
	if err != nil || !exists {
		logrus.Debug("History file not found, initializing empty history")
		return
	}

	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		logrus.Errorf("Error loading history: %v", err)
		return
	}

	var entries []model.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		logrus.Warnf("Corrupt history file %s, using empty history", s.path)
		return
	}
	s.entries = entries
	logrus.Debugf("History loaded from %s", s.path)
}

// persist writes the current list to disk. Failures are logged and
// swallowed. Callers must hold mu.
func (s *Store) persist() {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		logrus.Errorf("Error creating history directory: %v", err)
		return
	}

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		logrus.Errorf("Error encoding history: %v", err)
		return
	}

	if err := s.fs.WriteFile(s.path, data, 0644); err != nil {
		logrus.Errorf("Error saving history: %v", err)
	}
}

// AddEntry records a completed download at the head of the list and returns
// the generated entry ID (creation time in milliseconds). When an insert
// lands on the same millisecond as the current head entry the ID is nudged
// forward by one, preserving uniqueness and insertion order.
func (s *Store) AddEntry(entry model.HistoryEntry) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	id := s.now().UnixMilli()
	if len(s.entries) > 0 {
		if head, err := strconv.ParseInt(s.entries[0].ID, 10, 64); err == nil && id <= head {
			id = head + 1
		}
	}
	entry.ID = strconv.FormatInt(id, 10)
	entry.Timestamp = s.now().Format(time.RFC3339)
	if entry.DownloadOptions == nil {
		entry.DownloadOptions = map[string]string{}
	}

	s.entries = append([]model.HistoryEntry{entry}, s.entries...)
	s.persist()
	logrus.Infof("Added history entry: %s", entry.Title)
	return entry.ID
}

// GetAllEntries returns all entries, most recent first
func (s *Store) GetAllEntries() []model.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	out := make([]model.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// GetEntry returns the entry with the given ID, and whether it exists
func (s *Store) GetEntry(id string) (model.HistoryEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return model.HistoryEntry{}, false
}

// RemoveEntry deletes the entry with the given ID, reporting whether it was
// found. A miss has no side effect.
func (s *Store) RemoveEntry(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			s.persist()
			logrus.Infof("Removed history entry: %s", id)
			return true
		}
	}
	return false
}

// ClearHistory deletes all entries
func (s *Store) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	s.loaded = true
	s.persist()
	logrus.Info("History cleared")
}

// SearchEntries returns the entries whose title or URL contains query,
// case-insensitively, in stored order.
func (s *Store) SearchEntries(query string) []model.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	q := strings.ToLower(query)
	return lo.Filter(s.entries, func(e model.HistoryEntry, _ int) bool {
		return strings.Contains(strings.ToLower(e.Title), q) ||
			strings.Contains(strings.ToLower(e.URL), q)
	})
}
