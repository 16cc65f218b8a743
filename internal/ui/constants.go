package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconHistory  = "🕘"
	IconFolder   = "📁"
	IconDelete   = "🗑"
)

// Text fragments
const (
	ProgressLabelFormat = "%s — %d%%"
)

// Window and dialog sizing
const (
	WindowWidth  float32 = 560
	WindowHeight float32 = 360

	SettingsDialogWidth  float32 = 480
	SettingsDialogHeight float32 = 380

	HistoryDialogWidth  float32 = 520
	HistoryDialogHeight float32 = 420
)
