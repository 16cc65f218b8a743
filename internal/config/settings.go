package config

// Typed accessors over the raw document, in the shape the UI and download
// pipeline consume. JSON numbers decode as float64; the int accessor
// tolerates both.

// DownloadPath returns the configured download directory
func (s *Store) DownloadPath() string {
	return s.getString(KeyDownloadPath, "")
}

// SetDownloadPath sets the download directory
func (s *Store) SetDownloadPath(dir string) {
	s.Set(KeyDownloadPath, dir)
}

// ProxyURL returns the configured proxy URL, empty when unset
func (s *Store) ProxyURL() string {
	return s.getString(KeyProxyURL, "")
}

// SetProxyURL sets the proxy URL; an empty string clears it
func (s *Store) SetProxyURL(url string) {
	if url == "" {
		s.Set(KeyProxyURL, nil)
		return
	}
	s.Set(KeyProxyURL, url)
}

// Language returns the configured UI language code
func (s *Store) Language() string {
	return s.getString(KeyLanguage, DefaultLanguage)
}

// SetLanguage sets the UI language code
func (s *Store) SetLanguage(lang string) {
	s.Set(KeyLanguage, lang)
}

// SaveDescription reports whether a description sidecar file is requested
func (s *Store) SaveDescription() bool {
	return s.getBool(KeySaveDescription, false)
}

// SetSaveDescription toggles description sidecar writing
func (s *Store) SetSaveDescription(v bool) {
	s.Set(KeySaveDescription, v)
}

// AudioOnly reports whether downloads default to audio-only
func (s *Store) AudioOnly() bool {
	return s.getBool(KeyAudioOnly, false)
}

// SetAudioOnly toggles the audio-only default
func (s *Store) SetAudioOnly(v bool) {
	s.Set(KeyAudioOnly, v)
}

// MaxChannelVideos returns the channel enumeration cap, 0 meaning unbounded
func (s *Store) MaxChannelVideos() int {
	return s.getInt(KeyMaxChannelVideos, DefaultMaxChannelVideos)
}

// SetMaxChannelVideos sets the channel enumeration cap
func (s *Store) SetMaxChannelVideos(n int) {
	if n < 0 {
		n = 0
	}
	s.Set(KeyMaxChannelVideos, n)
}

// LogLevel returns the configured logrus severity level name
func (s *Store) LogLevel() string {
	return s.getString(KeyLogLevel, DefaultLogLevel)
}

func (s *Store) getString(key, fallback string) string {
	if v, ok := s.Get(key, fallback).(string); ok {
		return v
	}
	return fallback
}

func (s *Store) getBool(key string, fallback bool) bool {
	if v, ok := s.Get(key, fallback).(bool); ok {
		return v
	}
	return fallback
}

func (s *Store) getInt(key string, fallback int) int {
	switch v := s.Get(key, fallback).(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return fallback
	}
}
