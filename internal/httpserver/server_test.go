package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/codecrafters/effzins/internal/cache"
	"github.com/codecrafters/effzins/internal/duckdb"
	"github.com/codecrafters/effzins/internal/model"
	"github.com/codecrafters/effzins/internal/ratecalc"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type countingCalculator struct {
	inner model.RateCalculator
	calls atomic.Int32
}

func (c *countingCalculator) Calculate(ctx context.Context, req model.RateRequest) (model.RateResponse, error) {
	c.calls.Add(1)
	return c.inner.Calculate(ctx, req)
}

type brokenCalculator struct{}

func (brokenCalculator) Calculate(context.Context, model.RateRequest) (model.RateResponse, error) {
	return model.RateResponse{}, errors.New("boom")
}

func newTestServer(t *testing.T, deps Deps) (*Server, *duckdb.Store, http.Handler) {
	t.Helper()
	store, err := duckdb.NewStore("")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if deps.Calculator == nil {
		deps.Calculator = ratecalc.New()
	}
	deps.History = store
	if deps.Recorder == nil {
		deps.Recorder = store
	}

	srv := NewServer("", deps)
	return srv, store, srv.Handler()
}

func postJSON(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/rate/effZins", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

const validBody = `{"laufzeit":10,"einzahlungsDauer":5,"zahlungenProJahr":12,"einzahlungsHoehe":100,"endBetrag":20000}`

func TestCalculateEndpoint_OK(t *testing.T) {
	_, store, h := newTestServer(t, Deps{})

	w := postJSON(t, h, validBody)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body=%s", w.Code, w.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"zinssatz", "periodenZinssatz", "aktuellerZinssatz"} {
		if body[key] == nil {
			t.Errorf("%s missing from response %v", key, body)
		}
	}
	if body["zinssatz"] != 1.05241 {
		t.Errorf("zinssatz = %v, want 1.05241", body["zinssatz"])
	}

	count, err := store.CalculationCount()
	if err != nil {
		t.Fatalf("CalculationCount: %v", err)
	}
	if count != 1 {
		t.Errorf("stored calculations = %d, want 1", count)
	}
}

func TestCalculateEndpoint_ZeroDeposit(t *testing.T) {
	_, _, h := newTestServer(t, Deps{})

	w := postJSON(t, h, `{"laufzeit":10,"einzahlungsDauer":5,"zahlungenProJahr":12,"einzahlungsHoehe":0,"endBetrag":20000}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Einzahlungshöhe muss größer als null sein") {
		t.Errorf("body = %s, want deposit message", w.Body.String())
	}
}

func TestCalculateEndpoint_ServiceFailure(t *testing.T) {
	_, store, h := newTestServer(t, Deps{Calculator: brokenCalculator{}})

	w := postJSON(t, h, validBody)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), UnexpectedErrorMessage) {
		t.Errorf("body = %s, want generic message", w.Body.String())
	}
	if n, _ := store.CalculationCount(); n != 0 {
		t.Errorf("failed calculation was stored")
	}
}

func TestCalculateEndpoint_SchemaViolations(t *testing.T) {
	_, _, h := newTestServer(t, Deps{})

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"laufzeit":`},
		{"missing field", `{"laufzeit":10,"einzahlungsDauer":5,"zahlungenProJahr":12,"einzahlungsHoehe":100}`},
		{"string number", `{"laufzeit":"10","einzahlungsDauer":5,"zahlungenProJahr":12,"einzahlungsHoehe":100,"endBetrag":20000}`},
		{"not an object", `[1,2,3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, h, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body=%s", w.Code, w.Body.String())
			}
		})
	}
}

func TestCalculateEndpoint_CacheHit(t *testing.T) {
	calc := &countingCalculator{inner: ratecalc.New()}
	_, store, h := newTestServer(t, Deps{Calculator: calc, Cache: cache.NewMemoryCache(0)})

	first := postJSON(t, h, validBody)
	second := postJSON(t, h, validBody)
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("status = %d/%d, want 200/200", first.Code, second.Code)
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Errorf("cached body %s differs from %s", second.Body.String(), first.Body.String())
	}
	if calc.calls.Load() != 1 {
		t.Errorf("calculator calls = %d, want 1", calc.calls.Load())
	}

	records, err := store.RecentCalculations(10)
	if err != nil {
		t.Fatalf("RecentCalculations: %v", err)
	}
	if len(records) != 2 || !records[0].Cached {
		t.Errorf("records = %+v, want newest marked cached", records)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	_, _, h := newTestServer(t, Deps{})
	for i := 0; i < 3; i++ {
		postJSON(t, h, validBody)
	}

	req := httptest.NewRequest(http.MethodGet, "/rate/history?limit=2", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Calculations []model.CalculationRecord `json:"calculations"`
		Count        int                       `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Count != 2 || len(body.Calculations) != 2 {
		t.Errorf("count = %d, len = %d, want 2", body.Count, len(body.Calculations))
	}
	if body.Calculations[0].Request.EndBetrag != 20000 {
		t.Errorf("request not round-tripped: %+v", body.Calculations[0])
	}
}

func TestHistoryEndpoint_BadLimit(t *testing.T) {
	_, _, h := newTestServer(t, Deps{})

	for _, q := range []string{"0", "-3", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/rate/history?limit="+q, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("limit=%s status = %d, want 400", q, w.Code)
		}
	}
}

func TestStatsEndpoint(t *testing.T) {
	_, _, h := newTestServer(t, Deps{})
	postJSON(t, h, validBody)

	req := httptest.NewRequest(http.MethodGet, "/rate/stats", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		Days []model.DailyStat `json:"days"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body.Days) != 1 || body.Days[0].Calculations != 1 {
		t.Errorf("days = %+v, want one day with one calculation", body.Days)
	}
}

func TestHealthEndpoint(t *testing.T) {
	_, _, h := newTestServer(t, Deps{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("health status = %d, want %d", w.Code, http.StatusOK)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal health: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("health status = %v, want ok", body["status"])
	}
	if body["calculation_count"] != float64(0) {
		t.Errorf("calculation_count = %v, want 0", body["calculation_count"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	_, _, h := newTestServer(t, Deps{})
	postJSON(t, h, validBody)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "effzins_calculations_total") {
		t.Error("metrics output missing effzins_calculations_total")
	}
}

func TestRequestIDHeader(t *testing.T) {
	_, _, h := newTestServer(t, Deps{})

	w := postJSON(t, h, validBody)
	if got := w.Header().Get("X-Request-ID"); len(got) != 36 {
		t.Errorf("generated request id = %q, want uuid", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("request id = %q, want propagated abc-123", got)
	}
}

func TestStartStop(t *testing.T) {
	store, err := duckdb.NewStore("")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer store.Close()

	srv := NewServer("127.0.0.1:0", Deps{Calculator: ratecalc.New(), History: store, Recorder: store})
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer srv.Stop()

	resp, err := http.Post("http://"+srv.Addr()+"/rate/effZins", "application/json", strings.NewReader(validBody))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	if err := srv.Stop(); err != nil {
		t.Errorf("Stop: %v", err)
	}
}
