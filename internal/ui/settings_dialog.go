package ui

import (
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/tiktoksage/tiksage/internal/config"
	"github.com/tiktoksage/tiksage/internal/platform"
)

// SettingsDialog edits the persisted application settings
type SettingsDialog struct {
	cfg    *config.Store
	loc    *Localization
	window fyne.Window
	dialog *dialog.ConfirmDialog

	downloadDirEntry *widget.Entry
	proxyEntry       *widget.Entry
	languageSelect   *widget.Select
	maxVideosEntry   *widget.Entry
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(cfg *config.Store, loc *Localization, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		cfg:    cfg,
		loc:    loc,
		window: window,
	}
	sd.createUI()
	return sd
}

// Show displays the settings dialog with current values loaded
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	sd.downloadDirEntry = widget.NewEntry()
	browseBtn := widget.NewButton(IconFolder+" "+sd.loc.Text(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseBtn, sd.downloadDirEntry)

	sd.proxyEntry = widget.NewEntry()
	sd.proxyEntry.SetPlaceHolder("socks5://127.0.0.1:9050")

	languages := sd.loc.AvailableLanguages()
	codes := make([]string, 0, len(languages))
	for code := range languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	sd.languageSelect = widget.NewSelect(codes, nil)

	sd.maxVideosEntry = widget.NewEntry()
	sd.maxVideosEntry.SetPlaceHolder("0")

	items := []fyne.CanvasObject{
		widget.NewLabel(sd.loc.Text(KeyDownloadDir)),
		downloadDirRow,
		widget.NewLabel(sd.loc.Text(KeyProxyURL)),
		sd.proxyEntry,
		widget.NewLabel(sd.loc.Text(KeyLanguage)),
		sd.languageSelect,
		widget.NewLabel(sd.loc.Text(KeyMaxChannelVideos)),
		sd.maxVideosEntry,
	}

	if !platform.HasFFmpeg() {
		warning := widget.NewLabel(sd.loc.Text(KeyNoFFmpeg))
		warning.Importance = widget.WarningImportance
		items = append(items, widget.NewSeparator(), warning)
	}

	sd.dialog = dialog.NewCustomConfirm(
		sd.loc.Text(KeySettings),
		sd.loc.Text(KeySave),
		sd.loc.Text(KeyCancel),
		container.NewVBox(items...),
		sd.onSave,
		sd.window,
	)
	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.cfg.DownloadPath())
	sd.proxyEntry.SetText(sd.cfg.ProxyURL())
	sd.languageSelect.SetSelected(sd.cfg.Language())
	sd.maxVideosEntry.SetText(strconv.Itoa(sd.cfg.MaxChannelVideos()))
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave persists the edited settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if dir := sd.downloadDirEntry.Text; dir != "" {
		sd.cfg.SetDownloadPath(dir)
	}

	sd.cfg.SetProxyURL(sd.proxyEntry.Text)

	if lang := sd.languageSelect.Selected; lang != "" {
		sd.cfg.SetLanguage(lang)
		sd.loc.SetLanguage(lang)
	}

	if text := sd.maxVideosEntry.Text; text != "" {
		if n, err := strconv.Atoi(text); err == nil {
			sd.cfg.SetMaxChannelVideos(n)
		}
	}
}
