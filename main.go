// Package main provides the entry point for the Voice Studio CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/locallab/voicestudio/studio"
	"github.com/locallab/voicestudio/ui"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile  string
	serverURL   string
	voice       string
	speed       float64
	mode        string
	downloadDir string

	rootCmd = &cobra.Command{
		Use:   "voicestudio",
		Short: "Turn text into speech from your terminal",
		Long: paragraph(
			fmt.Sprintf("\nTurn text into %s from your terminal, powered by a local Voice Studio server.", keyword("natural speech")),
		),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateOptions(cmd)
		},
		RunE: func(*cobra.Command, []string) error {
			return runTUI()
		},
	}
)

func validateOptions(cmd *cobra.Command) error {
	// grab config values from Viper
	serverURL = viper.GetString("server")
	voice = viper.GetString("voice")
	speed = viper.GetFloat64("speed")
	downloadDir = viper.GetString("download_dir")
	mode = viper.GetString("mode")

	if speed != 0 && (speed < studio.MinSpeed || speed > studio.MaxSpeed) {
		return fmt.Errorf("speed must be between %.1f and %.1f, got %.2f", studio.MinSpeed, studio.MaxSpeed, speed)
	}

	switch mode {
	case "", string(studio.ModeStandard), string(studio.ModePremium):
	default:
		return fmt.Errorf("unknown mode %q: use %q or %q", mode, studio.ModeStandard, studio.ModePremium)
	}

	if downloadDir != "" && !cmd.Flags().Changed("download-dir") {
		downloadDir = expandPath(downloadDir)
	}
	return nil
}

// expandPath expands a leading tilde to the user's home directory.
func expandPath(p string) string {
	if len(p) >= 2 && p[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return p
}

func runTUI() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("voicestudio requires an interactive terminal")
	}

	// Read environment to get debugging stuff
	cfg, err := env.ParseAs[ui.Config]()
	if err != nil {
		return fmt.Errorf("error parsing config: %v", err)
	}

	if cfg.ServerURL == "" {
		cfg.ServerURL = serverURL
	}
	cfg.Voice = voice
	cfg.Speed = speed
	cfg.Mode = mode
	if downloadDir != "" {
		cfg.DownloadDir = downloadDir
	}

	// Run Bubble Tea program
	p, err := ui.NewProgram(cfg)
	if err != nil {
		return fmt.Errorf("unable to build tui program: %w", err)
	}
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("unable to run tui program: %w", err)
	}
	return nil
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.Flags().StringVarP(&serverURL, "server", "u", "", "Voice Studio server URL")
	rootCmd.Flags().StringVarP(&voice, "voice", "v", "", "initial voice ID")
	rootCmd.Flags().Float64VarP(&speed, "speed", "s", 0, "playback speed (0.5 to 2.0)")
	rootCmd.Flags().StringVarP(&mode, "mode", "m", "", "synthesis mode (standard or premium)")
	rootCmd.Flags().StringVarP(&downloadDir, "download-dir", "d", "", "directory for saved audio files")

	// Config bindings
	_ = viper.BindPFlag("server", rootCmd.Flags().Lookup("server"))
	_ = viper.BindPFlag("voice", rootCmd.Flags().Lookup("voice"))
	_ = viper.BindPFlag("speed", rootCmd.Flags().Lookup("speed"))
	_ = viper.BindPFlag("mode", rootCmd.Flags().Lookup("mode"))
	_ = viper.BindPFlag("download_dir", rootCmd.Flags().Lookup("download-dir"))

	viper.SetDefault("server", "http://127.0.0.1:8000")
	viper.SetDefault("speed", 0)
	viper.SetDefault("mode", "")

	rootCmd.AddCommand(configCmd, manCmd, healthCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "voicestudio")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not load find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "voicestudio")}, dirs...)
	}

	if c := os.Getenv("VOICESTUDIO_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("voicestudio")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("voicestudio")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "voicestudio.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
