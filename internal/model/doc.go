package model

// Package model defines domain data structures used across the app: video
// descriptors discovered during channel enumeration, resolved media metadata,
// download jobs with explicit state transitions, and durable history entries.
