package duckdb

import "github.com/codecrafters/effzins/internal/model"

// batchWriter is the write side the HistoryBuffer flushes into.
type batchWriter interface {
	InsertCalculations(records []*model.CalculationRecord) error
}

var (
	_ model.CalculationStore  = (*Store)(nil)
	_ model.CalculationWriter = (*HistoryBuffer)(nil)
	_ batchWriter             = (*Store)(nil)
)
