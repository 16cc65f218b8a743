package model

// VideoDescriptor identifies one discovered video before full resolution.
// Instances are immutable once produced by the channel enumerator or the
// single-video resolver.
type VideoDescriptor struct {
	ID              string
	URL             string
	Title           string
	DurationSeconds int
	ThumbnailURL    string
	ViewCount       int64
	UploadDate      string
}

// ResolvedMedia is the full metadata plus a fetchable media location for one
// specific video. Exactly one of DirectMediaURL or Delegated is meaningful:
// when Delegated is true the extraction tool performs the download itself.
type ResolvedMedia struct {
	Title           string
	Author          string
	Description     string
	DurationSeconds int
	LikeCount       int64
	CommentCount    int64
	ShareCount      int64
	ThumbnailURL    string
	DirectMediaURL  string
	Delegated       bool
}
