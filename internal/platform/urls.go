package platform

import "regexp"

// TikTok URL shapes. A profile URL without a /video/ segment is a channel.
var (
	videoURLPattern   = regexp.MustCompile(`^(?:https?://)?(?:www\.)?tiktok\.com/@[\w.-]+/video/\d+`)
	channelURLPattern = regexp.MustCompile(`^(?:https?://)?(?:www\.)?tiktok\.com/@([\w.-]+)/?$`)
	shortURLPattern   = regexp.MustCompile(`^(?:https?://)?(?:vt|vm)\.tiktok\.com/[\w]+`)
)

// IsTikTokURL reports whether the URL points at TikTok content this app can
// handle: a single video, a channel/profile, or a short link.
func IsTikTokURL(url string) bool {
	return videoURLPattern.MatchString(url) ||
		channelURLPattern.MatchString(url) ||
		shortURLPattern.MatchString(url)
}

// IsChannelURL reports whether the URL is a channel/profile page rather than
// a single video.
func IsChannelURL(url string) bool {
	return channelURLPattern.MatchString(url)
}

// ChannelName extracts the handle from a channel URL, without the leading @.
// Returns "" when the URL is not a channel.
func ChannelName(url string) string {
	m := channelURLPattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}
