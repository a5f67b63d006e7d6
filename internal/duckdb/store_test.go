package duckdb

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/codecrafters/effzins/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore("")
	if err != nil {
		t.Fatalf("NewStore(\"\") failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRecord(ts time.Time, endBetrag float64) *CalculationRecord {
	return &CalculationRecord{
		Timestamp: ts,
		Request: model.RateRequest{
			Laufzeit:         10,
			EinzahlungsDauer: 5,
			ZahlungenProJahr: 12,
			EinzahlungsHoehe: 100,
			EndBetrag:        endBetrag,
		},
		Response: model.RateResponse{
			AktuellerZinssatz: 1.2965,
			PeriodenZinssatz:  1.00427,
			Zinssatz:          1.05241,
		},
		Duration: 1500 * time.Microsecond,
	}
}

func insertTestRecords(t *testing.T, store *Store, records []*CalculationRecord) {
	t.Helper()
	if err := store.InsertCalculations(records); err != nil {
		t.Fatalf("InsertCalculations failed: %v", err)
	}
}

func TestNewStoreOnDisk(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "effzins.duckdb")
	store, err := NewStore(dbPath, StoreConfig{QueryTimeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if store.QueryTimeout != 5*time.Second {
		t.Errorf("QueryTimeout = %v, want 5s", store.QueryTimeout)
	}
	insertTestRecords(t, store, []*CalculationRecord{sampleRecord(time.Now(), 20000)})
	store.Close()

	reopened, err := NewStore(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	count, err := reopened.CalculationCount()
	if err != nil {
		t.Fatalf("CalculationCount: %v", err)
	}
	if count != 1 {
		t.Errorf("CalculationCount after reopen = %d, want 1", count)
	}
}

func TestInsertAndRecentCalculations(t *testing.T) {
	store := newTestStore(t)
	base := time.Now().Add(-time.Minute).Truncate(time.Microsecond)

	insertTestRecords(t, store, []*CalculationRecord{
		sampleRecord(base, 20000),
		sampleRecord(base.Add(time.Second), 30000),
		sampleRecord(base.Add(2*time.Second), 40000),
	})

	got, err := store.RecentCalculations(2)
	if err != nil {
		t.Fatalf("RecentCalculations: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Request.EndBetrag != 40000 || got[1].Request.EndBetrag != 30000 {
		t.Errorf("order = %v, %v; want newest first", got[0].Request.EndBetrag, got[1].Request.EndBetrag)
	}
	if got[0].Response.Zinssatz != 1.05241 {
		t.Errorf("Zinssatz = %v, want 1.05241", got[0].Response.Zinssatz)
	}
	if got[0].Duration != 1500*time.Microsecond {
		t.Errorf("Duration = %v, want 1.5ms", got[0].Duration)
	}
	if !got[0].Timestamp.Equal(base.Add(2 * time.Second)) {
		t.Errorf("Timestamp = %v, want %v", got[0].Timestamp, base.Add(2*time.Second))
	}
	if got[0].ID == 0 || got[0].ID == got[1].ID {
		t.Errorf("ids = %d, %d; want distinct non-zero", got[0].ID, got[1].ID)
	}
}

func TestInsertCalculationSingle(t *testing.T) {
	store := newTestStore(t)
	rec := sampleRecord(time.Time{}, 20000)
	rec.Cached = true
	if err := store.InsertCalculation(rec); err != nil {
		t.Fatalf("InsertCalculation: %v", err)
	}

	got, err := store.RecentCalculations(0)
	if err != nil {
		t.Fatalf("RecentCalculations: %v", err)
	}
	if len(got) != 1 || !got[0].Cached {
		t.Fatalf("got %+v, want one cached record", got)
	}
	if got[0].Timestamp.IsZero() {
		t.Error("zero timestamp should be replaced by insert time")
	}
}

func TestDeleteBefore(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()
	insertTestRecords(t, store, []*CalculationRecord{
		sampleRecord(now.Add(-48*time.Hour), 1),
		sampleRecord(now.Add(-47*time.Hour), 2),
		sampleRecord(now, 3),
	})

	deleted, err := store.DeleteBefore(now.Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("DeleteBefore: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}
	count, _ := store.CalculationCount()
	if count != 1 {
		t.Errorf("remaining = %d, want 1", count)
	}
}

func TestDailyStats(t *testing.T) {
	store := newTestStore(t)
	today := time.Now().UTC()
	yesterday := today.AddDate(0, 0, -1)
	cached := sampleRecord(today, 20000)
	cached.Cached = true
	insertTestRecords(t, store, []*CalculationRecord{
		sampleRecord(yesterday, 20000),
		sampleRecord(today, 20000),
		cached,
	})

	stats, err := store.DailyStats(7)
	if err != nil {
		t.Fatalf("DailyStats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("len = %d, want 2", len(stats))
	}
	if stats[0].Day != today.Format("2006-01-02") || stats[0].Calculations != 2 || stats[0].Cached != 1 {
		t.Errorf("stats[0] = %+v", stats[0])
	}
	if stats[1].Day != yesterday.Format("2006-01-02") || stats[1].Calculations != 1 {
		t.Errorf("stats[1] = %+v", stats[1])
	}
}

func TestDailyStats_WindowExcludesOlderDays(t *testing.T) {
	store := newTestStore(t)
	today := time.Now().UTC()
	insertTestRecords(t, store, []*CalculationRecord{
		sampleRecord(today, 20000),
		sampleRecord(today.AddDate(0, 0, -10), 20000),
		sampleRecord(today.AddDate(0, 0, -40), 20000),
	})

	stats, err := store.DailyStats(7)
	if err != nil {
		t.Fatalf("DailyStats: %v", err)
	}
	if len(stats) != 1 || stats[0].Day != today.Format("2006-01-02") {
		t.Errorf("stats = %+v, want only today within a 7 day window", stats)
	}

	stats, err = store.DailyStats(30)
	if err != nil {
		t.Fatalf("DailyStats: %v", err)
	}
	if len(stats) != 2 {
		t.Errorf("len = %d, want 2 within a 30 day window", len(stats))
	}
}
