package model

// HistoryEntry is one durable record of a completed download. Entries are
// never mutated after creation; they are only deleted individually or in
// bulk by user action.
//
// ID is the creation time in milliseconds rendered as a string. IDs are
// unique and insertion-ordered under real-world call spacing; sub-millisecond
// concurrent inserts are a documented limitation of the format, not a bug.
type HistoryEntry struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	URL             string            `json:"url"`
	ThumbnailURL    string            `json:"thumbnail_url,omitempty"`
	FilePath        string            `json:"file_path,omitempty"`
	FormatID        string            `json:"format_id,omitempty"`
	IsAudioOnly     bool              `json:"is_audio_only"`
	Resolution      string            `json:"resolution,omitempty"`
	DownloadOptions map[string]string `json:"download_options,omitempty"`
	Timestamp       string            `json:"timestamp"`
}
