package config

import "github.com/tiktoksage/tiksage/internal/platform"

// Settings keys
const (
	KeyDownloadPath     = "download_path"
	KeyProxyURL         = "proxy_url"
	KeyGeoProxyURL      = "geo_proxy_url"
	KeyLanguage         = "language"
	KeySaveDescription  = "save_description"
	KeyAudioOnly        = "audio_only"
	KeyAutoUpdateCheck  = "auto_update_check"
	KeyOutputFormat     = "preferred_output_format"
	KeyAudioFormat      = "preferred_audio_format"
	KeyMaxChannelVideos = "max_channel_videos"
	KeyLogLevel         = "logging.level"
)

// Default values
const (
	DefaultLanguage         = "en"
	DefaultOutputFormat     = "mp4"
	DefaultAudioFormat      = "m4a"
	DefaultMaxChannelVideos = 0 // unbounded
	DefaultLogLevel         = "info"
)

// defaultConfig returns a fresh copy of the factory settings document.
// Returned maps are never shared between stores.
func defaultConfig() map[string]any {
	return map[string]any{
		"download_path":           platform.DefaultDownloadDir(),
		"proxy_url":               nil,
		"geo_proxy_url":           nil,
		"language":                DefaultLanguage,
		"save_description":        false,
		"audio_only":              false,
		"auto_update_check":       true,
		"preferred_output_format": DefaultOutputFormat,
		"preferred_audio_format":  DefaultAudioFormat,
		"max_channel_videos":      DefaultMaxChannelVideos,
		"logging": map[string]any{
			"level": DefaultLogLevel,
		},
		"cached_versions": map[string]any{
			"ytdlp": map[string]any{
				"version":    nil,
				"last_check": 0,
			},
		},
	}
}
