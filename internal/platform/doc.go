package platform

// Package platform contains OS/platform integration glue: application data
// paths, filesystem helpers, filename sanitization with collision handling,
// and TikTok URL classification.
