package duckdb

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/codecrafters/effzins/internal/duckdb/migrate"
	_ "github.com/duckdb/duckdb-go/v2"
	"go.uber.org/zap"
)

// Store manages the DuckDB database connection and provides query methods.
type Store struct {
	db           *sql.DB
	mu           sync.RWMutex
	dbPath       string
	logger       *zap.Logger
	QueryTimeout time.Duration
}

// StoreConfig holds optional settings for NewStore.
type StoreConfig struct {
	QueryTimeout time.Duration
	Logger       *zap.Logger
}

// NewStore opens or creates a DuckDB database and migrates it to the
// latest schema. If dbPath is empty, an in-memory database is used.
func NewStore(dbPath string, conf ...StoreConfig) (*Store, error) {
	qt := 30 * time.Second
	logger := zap.NewNop()
	if len(conf) > 0 {
		if conf[0].QueryTimeout > 0 {
			qt = conf[0].QueryTimeout
		}
		if conf[0].Logger != nil {
			logger = conf[0].Logger
		}
	}

	dsn := ""
	if dbPath != "" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, err
		}
		dsn = dbPath
	}

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), qt)
	defer cancel()
	if _, err := migrate.NewRunner(db, logger).Run(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:           db,
		dbPath:       dbPath,
		logger:       logger,
		QueryTimeout: qt,
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// queryCtx returns a context with the store's configured query timeout.
func (s *Store) queryCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.QueryTimeout)
}
