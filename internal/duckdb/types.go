package duckdb

import "github.com/codecrafters/effzins/internal/model"

// Type aliases re-export model types so callers that only talk to the
// store need not import model.
type CalculationRecord = model.CalculationRecord
type DailyStat = model.DailyStat
