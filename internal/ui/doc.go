package ui

// Package ui contains the Fyne-based desktop user interface for the
// application. It wires user interactions to the resolver, channel enumerator
// and download queue, and renders progress, history, and settings. All UI
// strings are localized via Localization; worker goroutines deliver updates
// to widgets through fyne.Do.
