package ui

import (
	"context"
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/tiktoksage/tiksage/internal/channel"
	"github.com/tiktoksage/tiksage/internal/config"
	"github.com/tiktoksage/tiksage/internal/download"
	"github.com/tiktoksage/tiksage/internal/errs"
	"github.com/tiktoksage/tiksage/internal/history"
	"github.com/tiktoksage/tiksage/internal/model"
	"github.com/tiktoksage/tiksage/internal/platform"
	"github.com/tiktoksage/tiksage/internal/resolve"
)

// RootUI is the main window: URL input, analysis and download controls, one
// progress row for the active job, and entry points to settings and history.
type RootUI struct {
	window fyne.Window

	cfg        *config.Store
	hist       *history.Store
	resolver   *resolve.Resolver
	enumerator *channel.Enumerator
	engine     *download.Engine
	queue      *download.Coordinator
	loc        *Localization

	urlEntry    *widget.Entry
	analyzeBtn  *widget.Button
	downloadBtn *widget.Button
	audioCheck  *widget.Check
	descCheck   *widget.Check
	progressBar *widget.ProgressBar
	statusLabel *widget.Label
	pauseBtn    *widget.Button
	resumeBtn   *widget.Button
	cancelBtn   *widget.Button
}

// NewRootUI creates and initializes the main UI. All collaborators are
// injected; the UI owns no background state of its own.
func NewRootUI(window fyne.Window, cfg *config.Store, hist *history.Store, resolver *resolve.Resolver, enumerator *channel.Enumerator, engine *download.Engine, queue *download.Coordinator) *RootUI {
	loc := NewLocalization(cfg.Language())

	ui := &RootUI{
		window:     window,
		cfg:        cfg,
		hist:       hist,
		resolver:   resolver,
		enumerator: enumerator,
		engine:     engine,
		queue:      queue,
		loc:        loc,
	}

	window.SetTitle(loc.Text(KeyAppTitle))

	engine.SetUpdateCallback(ui.onJobUpdate)
	queue.SetDoneCallback(ui.onBatchDone)

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(ui.loc.Text(KeyEnterURL))
	ui.urlEntry.OnSubmitted = func(string) { ui.onDownloadClick() }

	ui.analyzeBtn = widget.NewButton(ui.loc.Text(KeyAnalyze), ui.onAnalyzeClick)
	ui.downloadBtn = widget.NewButton(ui.loc.Text(KeyDownload), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance
	historyBtn := widget.NewButton(IconHistory, ui.onShowHistory)
	historyBtn.Importance = widget.LowImportance

	topPanel := container.NewBorder(nil, nil,
		container.NewHBox(settingsBtn, historyBtn),
		container.NewHBox(ui.analyzeBtn, ui.downloadBtn),
		ui.urlEntry,
	)

	ui.audioCheck = widget.NewCheck(ui.loc.Text(KeyAudioOnly), nil)
	ui.audioCheck.SetChecked(ui.cfg.AudioOnly())
	ui.descCheck = widget.NewCheck(ui.loc.Text(KeySaveDescription), nil)
	ui.descCheck.SetChecked(ui.cfg.SaveDescription())
	optionsRow := container.NewHBox(ui.audioCheck, ui.descCheck)

	ui.progressBar = widget.NewProgressBar()
	ui.statusLabel = widget.NewLabel(ui.loc.Text(KeyReady))

	ui.pauseBtn = widget.NewButton(ui.loc.Text(KeyPause), ui.onPauseClick)
	ui.resumeBtn = widget.NewButton(ui.loc.Text(KeyResume), ui.onResumeClick)
	ui.cancelBtn = widget.NewButton(ui.loc.Text(KeyCancel), ui.onCancelClick)
	ui.setControlsRunning(false)
	controlRow := container.NewHBox(ui.pauseBtn, ui.resumeBtn, ui.cancelBtn)

	content := container.NewVBox(
		topPanel,
		optionsRow,
		widget.NewSeparator(),
		ui.progressBar,
		ui.statusLabel,
		controlRow,
	)

	ui.window.SetContent(container.NewPadded(content))
}

// onAnalyzeClick previews a URL without downloading: metadata for a single
// video, or a video count for a channel.
func (ui *RootUI) onAnalyzeClick() {
	url, ok := ui.takeURL()
	if !ok {
		return
	}

	ui.setStatus(ui.loc.Text(KeyAnalyzing))
	if platform.IsChannelURL(url) {
		go ui.analyzeChannel(url)
		return
	}
	go ui.analyzeVideo(url)
}

func (ui *RootUI) analyzeVideo(url string) {
	media, err := ui.resolver.ResolveInfo(context.Background(), url, ui.cfg.ProxyURL())
	fyne.Do(func() {
		if err != nil {
			ui.setStatus(ui.loc.Text(KeyFailed))
			dialog.ShowError(errors.New(errs.UserMessage(err)), ui.window)
			return
		}
		ui.setStatus(fmt.Sprintf(ui.loc.Text(KeyVideoBy), media.Title, media.Author, media.DurationSeconds))
	})
}

func (ui *RootUI) analyzeChannel(url string) {
	ui.setStatusAsync(ui.loc.Text(KeyEnumerating))
	videos, err := ui.collectChannel(url)
	fyne.Do(func() {
		if err != nil {
			ui.setStatus(ui.loc.Text(KeyFailed))
			dialog.ShowError(errors.New(errs.UserMessage(err)), ui.window)
			return
		}
		ui.setStatus(fmt.Sprintf(ui.loc.Text(KeyFoundVideos), len(videos)))
	})
}

// onDownloadClick starts a download for the entered URL: a single job for a
// video URL, or enumerate-then-enqueue for a channel URL.
func (ui *RootUI) onDownloadClick() {
	url, ok := ui.takeURL()
	if !ok {
		return
	}

	if platform.IsChannelURL(url) {
		ui.setStatus(ui.loc.Text(KeyEnumerating))
		go ui.downloadChannel(url)
		return
	}

	ui.setControlsRunning(true)
	ui.queue.Enqueue([]download.Item{{URL: url}}, ui.batchOptions(""))
}

// downloadChannel enumerates the channel, asks for confirmation, then
// enqueues everything under the channel's subdirectory.
func (ui *RootUI) downloadChannel(url string) {
	videos, err := ui.collectChannel(url)
	name := platform.ChannelName(url)

	fyne.Do(func() {
		if err != nil {
			ui.setStatus(ui.loc.Text(KeyFailed))
			dialog.ShowError(errors.New(errs.UserMessage(err)), ui.window)
			return
		}
		ui.setStatus(fmt.Sprintf(ui.loc.Text(KeyFoundVideos), len(videos)))

		message := fmt.Sprintf(ui.loc.Text(KeyConfirmChannel), len(videos), name)
		dialog.ShowConfirm(ui.loc.Text(KeyDownload), message, func(confirmed bool) {
			if !confirmed {
				return
			}
			items := make([]download.Item, 0, len(videos))
			for _, v := range videos {
				items = append(items, download.Item{URL: v.URL, Title: v.Title, ThumbnailURL: v.ThumbnailURL})
			}
			ui.setControlsRunning(true)
			ui.queue.Enqueue(items, ui.batchOptions(name))
		}, ui.window)
	})
}

// collectChannel runs enumeration with the configured cap and proxy
func (ui *RootUI) collectChannel(url string) ([]model.VideoDescriptor, error) {
	return ui.enumerator.Collect(context.Background(), channel.Request{
		ChannelURL: url,
		MaxVideos:  ui.cfg.MaxChannelVideos(),
		Proxy:      ui.cfg.ProxyURL(),
	})
}

// batchOptions snapshots the per-batch options from the checkboxes and config
func (ui *RootUI) batchOptions(groupLabel string) download.Options {
	return download.Options{
		GroupLabel:      groupLabel,
		AudioOnly:       ui.audioCheck.Checked,
		SaveDescription: ui.descCheck.Checked,
		ProxyURL:        ui.cfg.ProxyURL(),
	}
}

// onJobUpdate receives job snapshots from the engine on worker goroutines
func (ui *RootUI) onJobUpdate(job model.DownloadJob) {
	fyne.Do(func() {
		ui.progressBar.SetValue(job.ProgressPercent / 100)

		switch job.State {
		case model.StatePreparing:
			ui.setStatus(fmt.Sprintf("%s: %s", ui.loc.Text(KeyPreparing), job.DisplayTitle()))
		case model.StateDownloading:
			ui.setStatus(fmt.Sprintf(ProgressLabelFormat, job.DisplayTitle(), int(job.ProgressPercent)))
		case model.StatePaused:
			ui.setStatus(fmt.Sprintf("%s: %s", ui.loc.Text(KeyPaused), job.DisplayTitle()))
		case model.StateCompleted:
			ui.setStatus(fmt.Sprintf("%s: %s", ui.loc.Text(KeyCompleted), job.DisplayTitle()))
		case model.StateCancelled:
			ui.setStatus(ui.loc.Text(KeyCancelled))
			ui.setControlsRunning(false)
		case model.StateFailed:
			ui.setStatus(fmt.Sprintf("%s: %s", ui.loc.Text(KeyFailed), job.DisplayTitle()))
		}

		ui.resumeBtn.Disable()
		if job.State == model.StatePaused {
			ui.resumeBtn.Enable()
			ui.pauseBtn.Disable()
		} else if job.State == model.StateDownloading {
			ui.pauseBtn.Enable()
		}
	})
}

// onBatchDone receives the batch summary once the queue drains
func (ui *RootUI) onBatchDone(summary download.Summary) {
	fyne.Do(func() {
		ui.setControlsRunning(false)
		ui.setStatus(fmt.Sprintf(ui.loc.Text(KeyBatchDone), summary.Completed, summary.Skipped))
		if summary.LastError != nil {
			dialog.ShowError(errors.New(errs.UserMessage(summary.LastError)), ui.window)
		}
	})
}

func (ui *RootUI) onPauseClick() {
	if err := ui.engine.Pause(); err != nil {
		dialog.ShowError(err, ui.window)
	}
}

func (ui *RootUI) onResumeClick() {
	if err := ui.engine.Resume(); err != nil {
		dialog.ShowError(err, ui.window)
	}
}

func (ui *RootUI) onCancelClick() {
	ui.queue.Cancel()
	ui.setControlsRunning(false)
	ui.setStatus(ui.loc.Text(KeyCancelled))
}

func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.cfg, ui.loc, ui.window).Show()
}

func (ui *RootUI) onShowHistory() {
	NewHistoryDialog(ui.hist, ui.loc, ui.window).Show()
}

// takeURL validates and returns the entered URL
func (ui *RootUI) takeURL() (string, bool) {
	url := ui.urlEntry.Text
	if url == "" {
		ui.setStatus(ui.loc.Text(KeyPleaseEnterURL))
		return "", false
	}
	if !platform.IsTikTokURL(url) {
		ui.setStatus(ui.loc.Text(KeyInvalidURL))
		return "", false
	}
	return url, true
}

// setControlsRunning toggles the job control buttons for an active batch
func (ui *RootUI) setControlsRunning(running bool) {
	if running {
		ui.pauseBtn.Enable()
		ui.cancelBtn.Enable()
		ui.resumeBtn.Disable()
		ui.progressBar.SetValue(0)
	} else {
		ui.pauseBtn.Disable()
		ui.resumeBtn.Disable()
		ui.cancelBtn.Disable()
	}
}

// setStatus updates the status label; must run on the UI goroutine
func (ui *RootUI) setStatus(text string) {
	ui.statusLabel.SetText(text)
}

// setStatusAsync updates the status label from a worker goroutine
func (ui *RootUI) setStatusAsync(text string) {
	fyne.Do(func() { ui.setStatus(text) })
}
