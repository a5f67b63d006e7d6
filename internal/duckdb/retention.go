package duckdb

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// RetentionConfig holds configuration for the retention cleaner.
type RetentionConfig struct {
	RetentionDays int
	Interval      time.Duration
	Logger        *zap.Logger
}

type retentionTarget interface {
	DeleteBefore(cutoff time.Time) (int64, error)
}

// RetentionCleaner periodically deletes calculations older than the
// configured retention period.
type RetentionCleaner struct {
	store         retentionTarget
	retentionDays int
	interval      time.Duration
	logger        *zap.Logger
	now           func() time.Time
	done          chan struct{}
	wg            sync.WaitGroup
	stopOnce      sync.Once
}

// NewRetentionCleaner creates and starts a retention cleaner.
// Returns nil when retention is 0 (disabled).
func NewRetentionCleaner(store retentionTarget, conf ...RetentionConfig) *RetentionCleaner {
	days := 90
	interval := time.Hour
	logger := zap.NewNop()
	if len(conf) > 0 {
		days = conf[0].RetentionDays
		if conf[0].Interval > 0 {
			interval = conf[0].Interval
		}
		if conf[0].Logger != nil {
			logger = conf[0].Logger
		}
	}
	if days <= 0 {
		return nil
	}

	rc := &RetentionCleaner{
		store:         store,
		retentionDays: days,
		interval:      interval,
		logger:        logger,
		now:           time.Now,
		done:          make(chan struct{}),
	}

	// Catch up after downtime.
	rc.cleanup()

	rc.wg.Add(1)
	go rc.tickLoop()

	return rc
}

func (rc *RetentionCleaner) tickLoop() {
	defer rc.wg.Done()
	ticker := time.NewTicker(rc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rc.cleanup()
		case <-rc.done:
			return
		}
	}
}

func (rc *RetentionCleaner) cleanup() {
	cutoff := rc.now().Add(-time.Duration(rc.retentionDays) * 24 * time.Hour)

	rows, err := rc.store.DeleteBefore(cutoff)
	if err != nil {
		rc.logger.Error("retention cleanup failed", zap.String("op", "duckdb.retention"), zap.Error(err))
		return
	}
	if rows > 0 {
		rc.logger.Info("retention cleanup deleted expired calculations",
			zap.String("op", "duckdb.retention"),
			zap.Int64("rows", rows),
			zap.Int("retention_days", rc.retentionDays))
	}
}

// Stop signals the cleaner to stop and waits for it to finish.
func (rc *RetentionCleaner) Stop() {
	rc.stopOnce.Do(func() {
		close(rc.done)
		rc.wg.Wait()
	})
}
