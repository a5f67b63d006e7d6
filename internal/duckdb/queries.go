package duckdb

import (
	"context"
	"fmt"
	"time"

	"github.com/codecrafters/effzins/internal/model"
	"go.uber.org/zap"
)

// InsertCalculation stores a single calculation.
func (s *Store) InsertCalculation(rec *CalculationRecord) error {
	return s.InsertCalculations([]*CalculationRecord{rec})
}

// InsertCalculations appends records in a single transaction. If the batch
// fails it is retried record by record so one bad row does not drop the rest.
func (s *Store) InsertCalculations(records []*CalculationRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.insertWithTimeout(records)
	if err == nil {
		return nil
	}

	var failed int
	for _, r := range records {
		if rerr := s.insertWithTimeout([]*CalculationRecord{r}); rerr != nil {
			failed++
			s.logger.Warn("dropping calculation record",
				zap.String("op", "duckdb.insert"),
				zap.Time("timestamp", r.Timestamp),
				zap.Error(rerr))
		}
	}
	if failed == len(records) {
		return fmt.Errorf("insert calculations: %w", err)
	}
	if failed > 0 {
		s.logger.Warn("calculation batch partially failed",
			zap.String("op", "duckdb.insert"),
			zap.Int("dropped", failed),
			zap.Int("total", len(records)))
	}
	return nil
}

// insertWithTimeout runs one insert transaction under its own query timeout.
func (s *Store) insertWithTimeout(records []*CalculationRecord) error {
	ctx, cancel := s.queryCtx()
	defer cancel()
	return s.insertBatchTx(ctx, records)
}

func (s *Store) insertBatchTx(ctx context.Context, records []*CalculationRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO calculations (
		timestamp, laufzeit, einzahlungs_dauer, zahlungen_pro_jahr, einzahlungs_hoehe, end_betrag,
		zinssatz, perioden_zinssatz, aktueller_zinssatz, cached, duration_us
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		ts := r.Timestamp
		if ts.IsZero() {
			ts = time.Now()
		}
		if _, err := stmt.ExecContext(ctx,
			ts.UTC(),
			r.Request.Laufzeit, r.Request.EinzahlungsDauer, r.Request.ZahlungenProJahr,
			r.Request.EinzahlungsHoehe, r.Request.EndBetrag,
			r.Response.Zinssatz, r.Response.PeriodenZinssatz, r.Response.AktuellerZinssatz,
			r.Cached, r.Duration.Microseconds(),
		); err != nil {
			return fmt.Errorf("record insert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// RecentCalculations returns up to limit records, newest first.
func (s *Store) RecentCalculations(limit int) ([]CalculationRecord, error) {
	if limit <= 0 {
		limit = model.DefaultHistoryLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT
		id, timestamp, laufzeit, einzahlungs_dauer, zahlungen_pro_jahr, einzahlungs_hoehe, end_betrag,
		zinssatz, perioden_zinssatz, aktueller_zinssatz, cached, duration_us
	FROM calculations
	ORDER BY timestamp DESC, id DESC
	LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []CalculationRecord
	for rows.Next() {
		var r CalculationRecord
		var durationUS int64
		if err := rows.Scan(
			&r.ID, &r.Timestamp,
			&r.Request.Laufzeit, &r.Request.EinzahlungsDauer, &r.Request.ZahlungenProJahr,
			&r.Request.EinzahlungsHoehe, &r.Request.EndBetrag,
			&r.Response.Zinssatz, &r.Response.PeriodenZinssatz, &r.Response.AktuellerZinssatz,
			&r.Cached, &durationUS,
		); err != nil {
			return nil, err
		}
		r.Duration = time.Duration(durationUS) * time.Microsecond
		results = append(results, r)
	}
	return results, rows.Err()
}

// CalculationCount returns the number of stored calculations.
func (s *Store) CalculationCount() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM calculations`).Scan(&count)
	return count, err
}

// DailyStats returns per-day aggregates for the UTC calendar window of the
// given number of days ending today, newest first. Days without
// calculations are absent.
func (s *Store) DailyStats(days int) ([]DailyStat, error) {
	if days <= 0 {
		days = 30
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(days - 1)).Format("2006-01-02")

	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT CAST(day AS VARCHAR), calculations, avg_zinssatz, cached
	FROM calculation_daily
	WHERE day >= CAST(? AS DATE)
	ORDER BY day DESC`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []DailyStat
	for rows.Next() {
		var d DailyStat
		if err := rows.Scan(&d.Day, &d.Calculations, &d.AvgZinssatz, &d.Cached); err != nil {
			return nil, err
		}
		results = append(results, d)
	}
	return results, rows.Err()
}

// DeleteBefore removes calculations older than cutoff and returns how many
// rows were deleted.
func (s *Store) DeleteBefore(cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	res, err := s.db.ExecContext(ctx, `DELETE FROM calculations WHERE timestamp < ?`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
