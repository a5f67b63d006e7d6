package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/codecrafters/effzins/internal/model"
)

func TestLoadCLIConfig_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := loadCLIConfig("")
	if err != nil {
		t.Fatalf("loadCLIConfig: %v", err)
	}
	if cfg.Endpoint != model.DefaultEndpoint {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.NotificationTTL != 10*time.Second {
		t.Errorf("NotificationTTL = %v, want 10s", cfg.NotificationTTL)
	}
	if cfg.RequestTimeout != 0 {
		t.Errorf("RequestTimeout = %v, want none", cfg.RequestTimeout)
	}
	if cfg.Logging.OutputFile != defaultLogFile(home) {
		t.Errorf("log file = %q", cfg.Logging.OutputFile)
	}
	if cfg.ConfigDir != filepath.Join(home, ".config", "effzins") {
		t.Errorf("ConfigDir = %q", cfg.ConfigDir)
	}
}

func TestLoadCLIConfig_FileAndEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("EFFZINS_ENDPOINT", "http://rates.internal:9000/rate/effZins")

	dir := t.TempDir()
	path := filepath.Join(dir, "tui.yml")
	data := "notification-ttl: 3s\nrequest-timeout: 15s\nskin: mono\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadCLIConfig(path)
	if err != nil {
		t.Fatalf("loadCLIConfig: %v", err)
	}
	if cfg.Endpoint != "http://rates.internal:9000/rate/effZins" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.NotificationTTL != 3*time.Second || cfg.RequestTimeout != 15*time.Second {
		t.Errorf("durations = %v / %v", cfg.NotificationTTL, cfg.RequestTimeout)
	}
	if cfg.Skin != "mono" {
		t.Errorf("Skin = %q", cfg.Skin)
	}
	if cfg.ConfigDir != dir {
		t.Errorf("ConfigDir = %q, want %q", cfg.ConfigDir, dir)
	}
}

func TestLoadCLIConfig_InvalidTTL(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("EFFZINS_NOTIFICATION_TTL", "0s")

	if _, err := loadCLIConfig(""); err == nil {
		t.Fatal("expected error for zero notification-ttl")
	}
}
