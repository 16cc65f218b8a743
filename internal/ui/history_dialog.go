package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/tiktoksage/tiksage/internal/history"
	"github.com/tiktoksage/tiksage/internal/model"
)

// HistoryDialog shows past downloads with search, per-entry delete, and
// clear-all.
type HistoryDialog struct {
	store  *history.Store
	loc    *Localization
	window fyne.Window
	dialog dialog.Dialog

	searchEntry *widget.Entry
	list        *widget.List
	entries     []model.HistoryEntry
}

// NewHistoryDialog creates a history dialog over the store
func NewHistoryDialog(store *history.Store, loc *Localization, window fyne.Window) *HistoryDialog {
	hd := &HistoryDialog{
		store:  store,
		loc:    loc,
		window: window,
	}
	hd.createUI()
	return hd
}

// Show displays the dialog with the current history loaded
func (hd *HistoryDialog) Show() {
	hd.reload()
	hd.dialog.Show()
}

// createUI creates the history dialog UI
func (hd *HistoryDialog) createUI() {
	hd.searchEntry = widget.NewEntry()
	hd.searchEntry.SetPlaceHolder(hd.loc.Text(KeySearch))
	hd.searchEntry.OnChanged = func(string) { hd.reload() }

	hd.list = widget.NewList(
		func() int { return len(hd.entries) },
		func() fyne.CanvasObject {
			title := widget.NewLabel("")
			title.Truncation = fyne.TextTruncateEllipsis
			deleteBtn := widget.NewButton(IconDelete, nil)
			deleteBtn.Importance = widget.LowImportance
			return container.NewBorder(nil, nil, nil, deleteBtn, title)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) { hd.updateRow(id, obj) },
	)

	clearBtn := widget.NewButton(hd.loc.Text(KeyClearHistory), hd.onClearAll)

	content := container.NewBorder(
		hd.searchEntry,
		clearBtn,
		nil, nil,
		hd.list,
	)

	hd.dialog = dialog.NewCustom(hd.loc.Text(KeyHistory), hd.loc.Text(KeyCancel), content, hd.window)
	hd.dialog.Resize(fyne.NewSize(HistoryDialogWidth, HistoryDialogHeight))
}

// updateRow binds one history entry to a list row
func (hd *HistoryDialog) updateRow(id widget.ListItemID, obj fyne.CanvasObject) {
	if id >= len(hd.entries) {
		return
	}
	entry := hd.entries[id]

	row := obj.(*fyne.Container)
	title := row.Objects[0].(*widget.Label)
	deleteBtn := row.Objects[1].(*widget.Button)

	label := entry.Title
	if label == "" {
		label = entry.URL
	}
	title.SetText(label)

	entryID := entry.ID
	deleteBtn.OnTapped = func() {
		hd.store.RemoveEntry(entryID)
		hd.reload()
	}
}

// onClearAll wipes the history after confirmation
func (hd *HistoryDialog) onClearAll() {
	dialog.ShowConfirm(hd.loc.Text(KeyClearHistory), hd.loc.Text(KeyClearHistory)+"?", func(confirmed bool) {
		if !confirmed {
			return
		}
		hd.store.ClearHistory()
		hd.reload()
	}, hd.window)
}

// reload refreshes the visible entries from the store and search query
func (hd *HistoryDialog) reload() {
	query := hd.searchEntry.Text
	if query == "" {
		hd.entries = hd.store.GetAllEntries()
	} else {
		hd.entries = hd.store.SearchEntries(query)
	}
	hd.list.Refresh()
}
