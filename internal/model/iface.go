package model

import "context"

// CalculationWriter persists computed rates.
type CalculationWriter interface {
	InsertCalculation(rec *CalculationRecord) error
}

// CalculationReader provides read-only queries on the calculation history.
type CalculationReader interface {
	RecentCalculations(limit int) ([]CalculationRecord, error)
	CalculationCount() (int64, error)
	DailyStats(days int) ([]DailyStat, error)
}

// CalculationStore is the unified history contract used by the HTTP API.
type CalculationStore interface {
	CalculationWriter
	CalculationReader
}

// RateCalculator resolves a request into interest factors.
// The form uses it to reach the remote service.
type RateCalculator interface {
	Calculate(ctx context.Context, req RateRequest) (RateResponse, error)
}
