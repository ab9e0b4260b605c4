package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings holds all user-configurable application settings organized by category.
type Settings struct {
	General  GeneralSettings  `json:"general"`
	Download DownloadSettings `json:"download"`
}

// GeneralSettings contains application behavior settings.
type GeneralSettings struct {
	Theme             int  `json:"theme"`
	LogRetentionCount int  `json:"log_retention_count"`
	ClipboardPaste    bool `json:"clipboard_paste"`
}

const (
	ThemeAdaptive = 0
	ThemeLight    = 1
	ThemeDark     = 2
)

// DownloadSettings contains the defaults applied to new download requests.
type DownloadSettings struct {
	DefaultDir    string `json:"default_dir"`
	Mode          string `json:"mode"` // "video" or "audio"
	CookieBrowser string `json:"cookie_browser"`
	Quality       string `json:"quality"` // vertical resolution cap, empty for best
}

// DefaultSettings returns a new Settings instance with sensible defaults.
func DefaultSettings() *Settings {
	return &Settings{
		General: GeneralSettings{
			Theme:             ThemeAdaptive,
			LogRetentionCount: 5,
			ClipboardPaste:    true,
		},
		Download: DownloadSettings{
			DefaultDir: DefaultDownloadDir(),
			Mode:       "video",
		},
	}
}

// DefaultDownloadDir returns the platform download directory, falling back
// to the working directory when no home is available.
func DefaultDownloadDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "Downloads")
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// GetAppDir returns the directory holding settings, logs and bundled binaries.
func GetAppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tubeget"
	}
	return filepath.Join(home, ".tubeget")
}

// GetLogsDir returns the directory for debug logs.
func GetLogsDir() string {
	return filepath.Join(GetAppDir(), "logs")
}

// GetBinDir returns the directory for bundled yt-dlp/ffmpeg binaries.
func GetBinDir() string {
	return filepath.Join(GetAppDir(), "bin")
}

// GetSettingsPath returns the path to the settings JSON file.
func GetSettingsPath() string {
	return filepath.Join(GetAppDir(), "settings.json")
}

// LoadSettings loads settings from disk. Returns defaults if file doesn't exist.
func LoadSettings() (*Settings, error) {
	path := GetSettingsPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings() // Start with defaults to fill any missing fields
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// SaveSettings saves settings to disk atomically.
func SaveSettings(s *Settings) error {
	path := GetSettingsPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	// Atomic write: write to temp file, then rename
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return err
	}

	return os.Rename(tempPath, path)
}
