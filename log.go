package main

import (
	"fmt"
	"io"

	"github.com/caarlos0/env/v11"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/locallab/voicestudio/ui"
)

// setupLog sends log output to a file when VOICESTUDIO_LOGFILE is set and
// discards it otherwise. The returned closer must be called on exit.
func setupLog() (func() error, error) {
	cfg, err := env.ParseAs[ui.Config]()
	if err != nil {
		return nil, fmt.Errorf("error parsing config: %v", err)
	}
	if cfg.Logfile != "" {
		f, err := tea.LogToFile(cfg.Logfile, "voicestudio")
		if err != nil {
			return nil, fmt.Errorf("error setting up logging: %w", err)
		}
		log.SetOutput(f)
		log.SetLevel(log.DebugLevel)
		return f.Close, nil
	}
	log.SetOutput(io.Discard)
	return func() error { return nil }, nil
}
