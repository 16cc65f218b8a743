package platform

import (
	"os"
	"path/filepath"
)

// Application directory name under the user config dir
const appDirName = "tiksage"

// EnvConfigPath overrides the default application data directory
const EnvConfigPath = "TIKSAGE_CONFIG_PATH"

// AppDataDir returns the directory holding the config file, history file and
// logs. Resolution order: TIKSAGE_CONFIG_PATH, then the platform user config
// dir, then a dotfile directory in the user's home.
func AppDataDir() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok && custom != "" {
		return custom
	}

	base, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "." + appDirName
		}
		return filepath.Join(home, "."+appDirName)
	}
	return filepath.Join(base, appDirName)
}

// ConfigFile returns the path of the persisted settings document
func ConfigFile() string {
	return filepath.Join(AppDataDir(), "config.json")
}

// HistoryFile returns the path of the persisted download history document
func HistoryFile() string {
	return filepath.Join(AppDataDir(), "history.json")
}

// LogsDir returns the directory for application log files
func LogsDir() string {
	return filepath.Join(AppDataDir(), "logs")
}

// DefaultDownloadDir returns the standard Downloads directory for the user
func DefaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "downloads"
	}
	return filepath.Join(home, "Downloads")
}
