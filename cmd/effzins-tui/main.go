package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/codecrafters/effzins/internal/logging"
	"github.com/codecrafters/effzins/internal/rateclient"
	"github.com/codecrafters/effzins/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var endpoint string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/effzins/config.yml)")
	flag.StringVar(&endpoint, "endpoint", "", "override rate service endpoint")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("effzins-tui - Effektivzinssatz Rechner\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	_ = godotenv.Load(".env")

	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if endpoint != "" {
		cfg.Endpoint = endpoint
	}

	if err := runTUI(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg cliConfig) error {
	logger, err := logging.New(cfg.Logging, "")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := tui.InitializeSkin(cfg.Skin, cfg.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load skin '%s': %v (using default)\n", cfg.Skin, err)
	}

	client := rateclient.New(cfg.Endpoint,
		rateclient.WithTimeout(cfg.RequestTimeout),
		rateclient.WithLogger(logger.Named("rateclient")),
	)

	form := tui.NewFormModel(client, tui.FormOptions{
		NotificationTTL: cfg.NotificationTTL,
		Logger:          logger.Named("form"),
	})
	app := tui.NewApp(tui.NewFormPage(form), tui.NewHelpPage())
	defer app.Close()

	logger.Info("tui started",
		zap.String("op", "tui.start"),
		zap.String("endpoint", client.Endpoint()))

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

func defaultLogFile(home string) string {
	return filepath.Join(home, ".local", "state", "effzins", "effzins-tui.log")
}
