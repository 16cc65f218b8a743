package platform

import "testing"

func TestIsTikTokURL(t *testing.T) {
	tests := []struct {
		url      string
		expected bool
	}{
		{"https://www.tiktok.com/@someuser/video/7301234567890123456", true},
		{"https://tiktok.com/@someuser", true},
		{"tiktok.com/@some.user_name", true},
		{"https://vt.tiktok.com/ZS8abcdef", true},
		{"https://vm.tiktok.com/ZS8abcdef", true},
		{"https://youtube.com/watch?v=abc", false},
		{"not a url", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsTikTokURL(tt.url); got != tt.expected {
			t.Errorf("IsTikTokURL(%q) = %v, want %v", tt.url, got, tt.expected)
		}
	}
}

func TestIsChannelURL(t *testing.T) {
	tests := []struct {
		url      string
		expected bool
	}{
		{"https://www.tiktok.com/@someuser", true},
		{"https://www.tiktok.com/@someuser/", true},
		{"https://www.tiktok.com/@someuser/video/7301234567890123456", false},
		{"https://vt.tiktok.com/ZS8abcdef", false},
	}

	for _, tt := range tests {
		if got := IsChannelURL(tt.url); got != tt.expected {
			t.Errorf("IsChannelURL(%q) = %v, want %v", tt.url, got, tt.expected)
		}
	}
}

func TestChannelName(t *testing.T) {
	if got := ChannelName("https://www.tiktok.com/@dance.queen"); got != "dance.queen" {
		t.Errorf("ChannelName = %q, want dance.queen", got)
	}
	if got := ChannelName("https://www.tiktok.com/@u/video/1"); got != "" {
		t.Errorf("ChannelName on video URL = %q, want empty", got)
	}
}
