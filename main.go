package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/tiktoksage/tiksage/internal/channel"
	"github.com/tiktoksage/tiksage/internal/config"
	"github.com/tiktoksage/tiksage/internal/download"
	"github.com/tiktoksage/tiksage/internal/history"
	"github.com/tiktoksage/tiksage/internal/logging"
	"github.com/tiktoksage/tiksage/internal/platform"
	"github.com/tiktoksage/tiksage/internal/resolve"
	"github.com/tiktoksage/tiksage/internal/tiktokapi"
	"github.com/tiktoksage/tiksage/internal/ui"
	"github.com/tiktoksage/tiksage/internal/ytdlp"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.tiktoksage.tiksage"
	AppName = "TikSage"
)

func main() {
	fs := afero.NewOsFs()

	cfg := config.New(fs, platform.ConfigFile())
	if err := logging.Setup(fs, platform.LogsDir(), cfg.LogLevel()); err != nil {
		fmt.Printf("failed to set up logging: %v\n", err)
	}
	logrus.Infof("%s v%s starting", AppName, version)

	hist := history.New(fs, platform.HistoryFile())
	runner := ytdlp.NewRunner()
	if !runner.Available() {
		logrus.Warn("yt-dlp not found on PATH; only the API fallback will work")
	}

	api := tiktokapi.NewClient(cfg.ProxyURL())
	resolver := resolve.NewResolver(runner, api)
	enumerator := channel.NewEnumerator(runner)

	engine := download.NewEngine(fs, runner, resolver)
	queue := download.NewCoordinator(engine, hist, fs, func() string {
		if dir := cfg.DownloadPath(); dir != "" {
			return dir
		}
		return platform.DefaultDownloadDir()
	})

	if err := platform.CreateDirectoryIfNotExists(fs, cfg.DownloadPath()); err != nil {
		logrus.Warnf("Could not create download directory: %v", err)
	}

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	window := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	window.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	ui.NewRootUI(window, cfg, hist, resolver, enumerator, engine, queue)

	window.ShowAndRun()
}
