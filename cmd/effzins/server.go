package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/codecrafters/effzins/internal/backup"
	"github.com/codecrafters/effzins/internal/cache"
	"github.com/codecrafters/effzins/internal/duckdb"
	"github.com/codecrafters/effzins/internal/httpserver"
	"github.com/codecrafters/effzins/internal/logging"
	"github.com/codecrafters/effzins/internal/metrics"
	"github.com/codecrafters/effzins/internal/ratecalc"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// runServer starts the rate service with its history store and HTTP API.
func runServer(cfg appConfig, logLevel string) error {
	logger, err := logging.New(cfg.Logging, logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	// Initialize DuckDB store
	store, err := duckdb.NewStore(cfg.DBPath, duckdb.StoreConfig{
		QueryTimeout: cfg.QueryTimeout,
		Logger:       logger.Named("duckdb"),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize DuckDB: %w", err)
	}
	defer store.Close()

	// Buffer history writes so requests never wait on DuckDB
	history := duckdb.NewHistoryBuffer(store, duckdb.HistoryBufferConfig{
		BatchSize:      cfg.HistoryBatchSize,
		FlushInterval:  cfg.HistoryFlushInterval,
		FlushQueueSize: cfg.HistoryFlushQueue,
		Logger:         logger.Named("history"),
		OnFlushError: func(n int, _ error) {
			metrics.HistoryWriteErrors.Add(float64(n))
		},
	})
	defer history.Stop()

	// Start retention cleaner for automatic history expiry
	retentionCleaner := duckdb.NewRetentionCleaner(store, duckdb.RetentionConfig{
		RetentionDays: cfg.HistoryRetention,
		Logger:        logger.Named("retention"),
	})
	if retentionCleaner != nil {
		defer retentionCleaner.Stop()
	}

	// Start periodic backups when enabled.
	backupManager, err := backup.NewManager(store, backup.Config{
		Enabled:  cfg.BackupEnabled,
		Interval: cfg.BackupInterval,
		LocalDir: cfg.BackupLocalDir,
		KeepLast: cfg.BackupKeepLast,
		Logger:   logger.Named("backup"),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize backups: %w", err)
	}
	if backupManager != nil {
		defer backupManager.Stop()
	}

	resultCache, cacheName, closeCache := buildCache(cfg, logger)
	defer closeCache()

	apiServer := httpserver.NewServer(cfg.APIAddr, httpserver.Deps{
		Calculator: ratecalc.New(),
		History:    store,
		Recorder:   history,
		Cache:      resultCache,
		Logger:     logger.Named("http"),
	})
	if err := apiServer.Start(); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}
	defer apiServer.Stop()

	// Set up context and signal handling before errgroup
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nShutting down gracefully... (press Ctrl+C again to force)")
		cancel()

		deadline := time.NewTimer(10 * time.Second)
		defer deadline.Stop()

		select {
		case <-sigCh:
			fmt.Println("\nForce shutdown.")
		case <-deadline.C:
			fmt.Println("Shutdown timed out, forcing exit.")
		}
		os.Exit(1)
	}()

	printStartupBanner(cfg, apiServer.Addr(), cacheName)
	logger.Info("rate service started",
		zap.String("op", "server.start"),
		zap.String("addr", apiServer.Addr()),
		zap.String("db", cfg.DBPath),
		zap.String("cache", cacheName))

	g, gctx := errgroup.WithContext(ctx)

	// Wait for context cancellation (from signal handler) in the errgroup
	g.Go(func() error {
		<-gctx.Done()
		return apiServer.Stop()
	})

	if err := g.Wait(); err != nil {
		logger.Error("shutdown error", zap.String("op", "server.stop"), zap.Error(err))
	}

	logger.Info("rate service stopped", zap.String("op", "server.stop"))
	signal.Stop(sigCh)
	return nil
}

// buildCache prefers Redis when configured and reachable, otherwise an
// in-process cache.
func buildCache(cfg appConfig, logger *zap.Logger) (cache.Cache, string, func()) {
	if cfg.RedisAddr != "" {
		rc := cache.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		err := rc.Ping(ctx)
		if err == nil {
			return rc, "redis " + cfg.RedisAddr, func() { _ = rc.Close() }
		}
		logger.Warn("redis unavailable, using in-memory cache",
			zap.String("op", "server.cache"),
			zap.String("addr", cfg.RedisAddr),
			zap.Error(err))
		_ = rc.Close()
	}
	return cache.NewMemoryCache(cfg.CacheTTL), "memory", func() {}
}

func printStartupBanner(cfg appConfig, addr, cacheName string) {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	bold := lipgloss.NewStyle().Bold(true)

	check := green.Render("●")
	dot := dim.Render("●")

	var lines []string
	lines = append(lines, "")
	lines = append(lines, cyan.Bold(true).Render("    effzins")+"  "+dim.Render("v"+version))
	lines = append(lines, "")

	separator := dim.Render("    ─────────────────────────────────")
	lines = append(lines, separator, "")

	lines = append(lines, bold.Render("    Gateway"), "")
	lines = append(lines, fmt.Sprintf("    %s  HTTP API       %s", check, cyan.Render("http://"+addr+"/rate/effZins")))
	lines = append(lines, fmt.Sprintf("    %s  Metrics        %s", check, cyan.Render("http://"+addr+"/metrics")))
	lines = append(lines, "")

	lines = append(lines, bold.Render("    Storage"), "")
	dbLabel := shortenPath(cfg.DBPath)
	if dbLabel == "" {
		dbLabel = "in-memory"
	}
	lines = append(lines, fmt.Sprintf("    %s  History        %s", check, dim.Render(dbLabel)))
	lines = append(lines, fmt.Sprintf("    %s  Result Cache   %s", check, dim.Render(cacheName)))
	if cfg.BackupEnabled {
		lines = append(lines, fmt.Sprintf("    %s  Snapshots      %s", check, dim.Render(shortenPath(cfg.BackupLocalDir))))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Snapshots      %s", dot, dim.Render("disabled")))
	}
	lines = append(lines, "")

	lines = append(lines, bold.Render("    Config"), "")
	if cfg.ConfigPath != "" {
		lines = append(lines, fmt.Sprintf("    %s  Config File    %s", check, dim.Render(shortenPath(cfg.ConfigPath))))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Config File    %s", dot, dim.Render("default (no file)")))
	}

	lines = append(lines, "", separator, "")
	lines = append(lines, "    "+dim.Render("Press ")+yellow.Render("Ctrl+C")+dim.Render(" to stop"))
	lines = append(lines, "")

	fmt.Println(strings.Join(lines, "\n"))
}

func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
