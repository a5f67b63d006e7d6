package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/codecrafters/effzins/internal/logging"
	"github.com/codecrafters/effzins/internal/model"
	"github.com/spf13/viper"
)

const (
	defaultEndpoint        = model.DefaultEndpoint
	defaultNotificationTTL = model.DefaultNotificationTTL
	defaultSkin            = model.DefaultSkin
)

// cliConfig holds only TUI-relevant configuration.
type cliConfig struct {
	Endpoint        string         `mapstructure:"endpoint"`
	NotificationTTL time.Duration  `mapstructure:"notification-ttl"`
	RequestTimeout  time.Duration  `mapstructure:"request-timeout"`
	Skin            string         `mapstructure:"skin"`
	Logging         logging.Config `mapstructure:"logging"`
	ConfigDir       string         `mapstructure:"-"`
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("EFFZINS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("endpoint", defaultEndpoint)
	v.SetDefault("notification-ttl", defaultNotificationTTL)
	v.SetDefault("request-timeout", time.Duration(0))
	v.SetDefault("skin", defaultSkin)
	// The terminal belongs to the UI, so logs always go to a file.
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output-file", defaultLogFile(home))

	configDir := filepath.Join(home, ".config", "effzins")
	if configPath != "" {
		v.SetConfigFile(configPath)
		configDir = filepath.Dir(configPath)
	} else {
		v.SetConfigFile(filepath.Join(configDir, "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigDir = configDir
	if cfg.Logging.OutputFile == "" {
		cfg.Logging.OutputFile = defaultLogFile(home)
	}
	if cfg.NotificationTTL <= 0 {
		return cfg, fmt.Errorf("invalid notification-ttl: %s", cfg.NotificationTTL)
	}
	if cfg.RequestTimeout < 0 {
		return cfg, fmt.Errorf("invalid request-timeout: %s", cfg.RequestTimeout)
	}

	return cfg, nil
}
