package ui

// Config contains TUI-specific configuration.
type Config struct {
	// ServerURL is the Voice Studio server base URL.
	ServerURL string `env:"VOICESTUDIO_SERVER"`

	// DownloadDir is where saved artifacts are written. Empty means the
	// current working directory.
	DownloadDir string `env:"VOICESTUDIO_DOWNLOAD_DIR"`

	// Initial selections; the server's defaults apply when empty.
	Voice string
	Speed float64
	Mode  string

	// PreviewDelayMS is the hover debounce window for voice previews.
	PreviewDelayMS int `env:"VOICESTUDIO_PREVIEW_DELAY" envDefault:"300"`

	// MockAudio replaces device playback with a recording no-op player.
	// Used in CI and on machines without an audio device.
	MockAudio bool `env:"VOICESTUDIO_MOCK_AUDIO"`

	// Logfile enables debug logging to the given path.
	Logfile string `env:"VOICESTUDIO_LOGFILE"`
}
