package main

import (
	"time"

	"github.com/codecrafters/effzins/internal/logging"
)

const (
	defaultBindHost             = "127.0.0.1"
	defaultAPIPort              = 8080
	defaultQueryTimeout         = 30 * time.Second
	defaultHistoryBatchSize     = 100
	defaultHistoryFlushInterval = 500 * time.Millisecond
	defaultHistoryFlushQueue    = 16
	defaultHistoryRetention     = 90 // days, 0 = disabled
	defaultCacheTTL             = time.Hour
	defaultBackupInterval       = 6 * time.Hour
	defaultBackupKeepLast       = 7
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	BindHost             string         `mapstructure:"bind-host"`
	APIPort              int            `mapstructure:"api-port"`
	APIAddr              string         `mapstructure:"api-addr"`
	DBPath               string         `mapstructure:"db-path"`
	QueryTimeout         time.Duration  `mapstructure:"query-timeout"`
	HistoryBatchSize     int            `mapstructure:"history-batch-size"`
	HistoryFlushInterval time.Duration  `mapstructure:"history-flush-interval"`
	HistoryFlushQueue    int            `mapstructure:"history-flush-queue-size"`
	HistoryRetention     int            `mapstructure:"history-retention"`
	RedisAddr            string         `mapstructure:"redis-addr"`
	CacheTTL             time.Duration  `mapstructure:"cache-ttl"`
	BackupEnabled        bool           `mapstructure:"backup-enabled"`
	BackupInterval       time.Duration  `mapstructure:"backup-interval"`
	BackupLocalDir       string         `mapstructure:"backup-local-dir"`
	BackupKeepLast       int            `mapstructure:"backup-keep-last"`
	Logging              logging.Config `mapstructure:"logging"`
	ConfigPath           string         `mapstructure:"-"` // not from config file
}
