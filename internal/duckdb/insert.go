package duckdb

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/codecrafters/effzins/internal/model"
	"go.uber.org/zap"
)

// DefaultFlushQueueSize is the number of batches that can be queued for async flushing.
const DefaultFlushQueueSize = 16

// HistoryBuffer batches calculation records and flushes them to DuckDB
// asynchronously, so request handlers never wait on a write.
type HistoryBuffer struct {
	writer        batchWriter
	logger        *zap.Logger
	mu            sync.Mutex
	pending       []*model.CalculationRecord
	flushChan     chan []*model.CalculationRecord
	maxBatch      int
	flushInterval time.Duration
	done          chan struct{}
	stopMu        sync.RWMutex
	stopped       bool
	stopOnce      sync.Once
	wg            sync.WaitGroup
	tickWg        sync.WaitGroup
	onFlushError  func(n int, err error)

	backpressureCount atomic.Int64
	lastBPLog         atomic.Int64 // unix seconds
}

// HistoryBufferConfig holds tunable parameters for the history buffer.
type HistoryBufferConfig struct {
	BatchSize      int
	FlushInterval  time.Duration
	FlushQueueSize int
	Logger         *zap.Logger

	// OnFlushError is called once per batch that could not be written.
	OnFlushError func(n int, err error)
}

// NewHistoryBuffer creates a buffer that flushes into writer.
func NewHistoryBuffer(writer batchWriter, conf ...HistoryBufferConfig) *HistoryBuffer {
	batchSize := 100
	flushInterval := 500 * time.Millisecond
	flushQueueSize := DefaultFlushQueueSize
	logger := zap.NewNop()
	var onFlushError func(int, error)
	if len(conf) > 0 {
		onFlushError = conf[0].OnFlushError
		if conf[0].BatchSize > 0 {
			batchSize = conf[0].BatchSize
		}
		if conf[0].FlushInterval > 0 {
			flushInterval = conf[0].FlushInterval
		}
		if conf[0].FlushQueueSize > 0 {
			flushQueueSize = conf[0].FlushQueueSize
		}
		if conf[0].Logger != nil {
			logger = conf[0].Logger
		}
	}

	b := &HistoryBuffer{
		writer:        writer,
		logger:        logger,
		pending:       make([]*model.CalculationRecord, 0, batchSize),
		flushChan:     make(chan []*model.CalculationRecord, flushQueueSize),
		maxBatch:      batchSize,
		flushInterval: flushInterval,
		done:          make(chan struct{}),
		onFlushError:  onFlushError,
	}

	b.wg.Add(1)
	go b.flushWorker()

	b.wg.Add(1)
	b.tickWg.Add(1)
	go b.tickLoop()

	return b
}

func (b *HistoryBuffer) tickLoop() {
	defer b.wg.Done()
	defer b.tickWg.Done()
	ticker := time.NewTicker(b.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.drainPending()
		case <-b.done:
			b.drainPending()
			return
		}
	}
}

// logBackpressure warns at most once per 10 seconds.
func (b *HistoryBuffer) logBackpressure() {
	count := b.backpressureCount.Add(1)
	now := time.Now().Unix()
	last := b.lastBPLog.Load()
	if now-last >= 10 && b.lastBPLog.CompareAndSwap(last, now) {
		b.logger.Warn("history flush queue full, writing inline",
			zap.String("op", "duckdb.history"),
			zap.Int64("inline_flushes", count))
	}
}

func (b *HistoryBuffer) takePending() []*model.CalculationRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.pending) == 0 {
		return nil
	}
	batch := b.pending
	b.pending = make([]*model.CalculationRecord, 0, b.maxBatch)
	return batch
}

func (b *HistoryBuffer) drainPending() {
	batch := b.takePending()
	if batch == nil {
		return
	}
	b.enqueue(batch)
}

func (b *HistoryBuffer) enqueue(batch []*model.CalculationRecord) {
	select {
	case b.flushChan <- batch:
	default:
		b.logBackpressure()
		b.flushBatch(batch)
	}
}

func (b *HistoryBuffer) flushWorker() {
	defer b.wg.Done()
	for batch := range b.flushChan {
		b.flushBatch(batch)
	}
}

func (b *HistoryBuffer) flushBatch(batch []*model.CalculationRecord) {
	if len(batch) == 0 {
		return
	}
	if err := b.writer.InsertCalculations(batch); err != nil {
		b.logger.Error("history flush failed",
			zap.String("op", "duckdb.history"),
			zap.Int("records", len(batch)),
			zap.Error(err))
		if b.onFlushError != nil {
			b.onFlushError(len(batch), err)
		}
	}
}

// InsertCalculation queues a record. It never blocks on DuckDB IO. Records
// added after Stop are dropped.
func (b *HistoryBuffer) InsertCalculation(rec *model.CalculationRecord) error {
	b.stopMu.RLock()
	defer b.stopMu.RUnlock()
	if b.stopped {
		b.logger.Warn("history buffer stopped, dropping record", zap.String("op", "duckdb.history"))
		return nil
	}

	b.mu.Lock()
	b.pending = append(b.pending, rec)
	var batch []*model.CalculationRecord
	if len(b.pending) >= b.maxBatch {
		batch = b.pending
		b.pending = make([]*model.CalculationRecord, 0, b.maxBatch)
	}
	b.mu.Unlock()

	if batch != nil {
		b.enqueue(batch)
	}
	return nil
}

// Stop flushes remaining records and waits for all writes to complete.
func (b *HistoryBuffer) Stop() {
	b.stopOnce.Do(func() {
		b.stopMu.Lock()
		b.stopped = true
		b.stopMu.Unlock()

		close(b.done)
		// tickLoop does the final drain; flushChan must stay open until then.
		b.tickWg.Wait()
		close(b.flushChan)
		b.wg.Wait()
	})
}
