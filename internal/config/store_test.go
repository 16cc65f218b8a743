package config

import (
	"testing"

	"github.com/spf13/afero"
)

const testPath = "/data/config.json"

func newTestStore() (*Store, afero.Fs) {
	fs := afero.NewMemMapFs()
	return New(fs, testPath), fs
}

func TestGetReturnsDefaults(t *testing.T) {
	store, _ := newTestStore()

	if got := store.Language(); got != DefaultLanguage {
		t.Errorf("Expected default language %q, got %q", DefaultLanguage, got)
	}

	if got := store.Get("nonexistent.path", "fallback"); got != "fallback" {
		t.Errorf("Missing key should return caller fallback, got %v", got)
	}
}

func TestFirstLoadWritesDefaults(t *testing.T) {
	store, fs := newTestStore()

	store.Get(KeyLanguage, nil)

	exists, err := afero.Exists(fs, testPath)
	if err != nil || !exists {
		t.Errorf("Config file should be created on first access (exists=%v, err=%v)", exists, err)
	}
}

func TestSetGetNestedRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := New(fs, testPath)

	store.Set("a.b.c", 5)
	if got := store.Get("a.b.c", nil); got != 5 {
		t.Errorf("Expected 5, got %v", got)
	}

	// A fresh store over the same file must see the persisted value.
	// JSON round-trips numbers as float64.
	reloaded := New(fs, testPath)
	if got := reloaded.Get("a.b.c", nil); got != float64(5) {
		t.Errorf("Expected 5 after reload, got %v (%T)", got, got)
	}
}

func TestSetOverwritesNonMappingIntermediate(t *testing.T) {
	store, _ := newTestStore()

	store.Set("x", "scalar")
	store.Set("x.y", 1)

	if got := store.Get("x.y", nil); got != 1 {
		t.Errorf("Expected intermediate scalar to be replaced, got %v", got)
	}
}

func TestDelete(t *testing.T) {
	store, _ := newTestStore()

	store.Set("cached_versions.ytdlp.version", "2025.01.01")
	store.Delete("cached_versions.ytdlp.version")

	if got := store.Get("cached_versions.ytdlp.version", nil); got != nil {
		t.Errorf("Expected deleted key to resolve to fallback, got %v", got)
	}

	// Deleting a missing path is a no-op
	store.Delete("no.such.key")
}

func TestCorruptFileFallsBackToDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, testPath, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	store := New(fs, testPath)
	if got := store.Language(); got != DefaultLanguage {
		t.Errorf("Corrupt file should fall back to defaults, got language %q", got)
	}
}

func TestNonMappingRootFallsBackToDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, testPath, []byte(`[1,2,3]`), 0644); err != nil {
		t.Fatal(err)
	}

	store := New(fs, testPath)
	if got := store.Language(); got != DefaultLanguage {
		t.Errorf("Array root should fall back to defaults, got language %q", got)
	}
}

func TestTopLevelMergeWithDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, testPath, []byte(`{"language":"es"}`), 0644); err != nil {
		t.Fatal(err)
	}

	store := New(fs, testPath)

	if got := store.Language(); got != "es" {
		t.Errorf("Loaded key should override default, got %q", got)
	}
	if got := store.getString(KeyOutputFormat, ""); got != DefaultOutputFormat {
		t.Errorf("Defaults should fill gaps, got output format %q", got)
	}
}

func TestResetToDefaults(t *testing.T) {
	store, _ := newTestStore()

	store.SetLanguage("pt")
	store.ResetToDefaults()

	if got := store.Language(); got != DefaultLanguage {
		t.Errorf("Expected language reset to %q, got %q", DefaultLanguage, got)
	}
}

func TestTypedAccessors(t *testing.T) {
	store, _ := newTestStore()

	store.SetProxyURL("socks5://127.0.0.1:9050")
	if got := store.ProxyURL(); got != "socks5://127.0.0.1:9050" {
		t.Errorf("ProxyURL = %q", got)
	}

	store.SetProxyURL("")
	if got := store.ProxyURL(); got != "" {
		t.Errorf("Cleared proxy should read empty, got %q", got)
	}

	store.SetMaxChannelVideos(-3)
	if got := store.MaxChannelVideos(); got != 0 {
		t.Errorf("Negative cap should clamp to 0, got %d", got)
	}

	store.SetSaveDescription(true)
	if !store.SaveDescription() {
		t.Error("SaveDescription should be true after set")
	}
}

func TestGetReturnsDetachedCopies(t *testing.T) {
	store, _ := newTestStore()
	store.Set("cached_versions.ytdlp.version", "2025.01.01")

	doc, ok := store.Get("cached_versions", nil).(map[string]any)
	if !ok {
		t.Fatal("Expected a document under cached_versions")
	}
	doc["ytdlp"].(map[string]any)["version"] = "tampered"

	if got := store.Get("cached_versions.ytdlp.version", nil); got != "2025.01.01" {
		t.Errorf("Mutating a returned document must not affect the store, got %v", got)
	}

	all := store.GetAll()
	all["cached_versions"].(map[string]any)["ytdlp"] = nil
	if got := store.Get("cached_versions.ytdlp.version", nil); got != "2025.01.01" {
		t.Errorf("Mutating a GetAll result must not affect the store, got %v", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	store, _ := newTestStore()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				store.Set("counter", n)
				store.Get("counter", 0)
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
