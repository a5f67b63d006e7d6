package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/codecrafters/effzins/internal/cache"
	"github.com/codecrafters/effzins/internal/metrics"
	"github.com/codecrafters/effzins/internal/model"
	"github.com/codecrafters/effzins/internal/ratecalc"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UnexpectedErrorMessage is returned with every 500 response.
const UnexpectedErrorMessage = "Ein unerwarteter Fehler ist aufgetreten"

func (s *Server) handleCalculate(c *gin.Context) {
	start := time.Now()
	ctx := c.Request.Context()

	var doc interface{}
	if err := c.ShouldBindBodyWithJSON(&doc); err != nil {
		metrics.ObserveCalculation(metrics.OutcomeInvalid, time.Since(start))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	violations, err := validateRateRequest(doc)
	if err != nil {
		s.fail(c, start, "schema validation failed", err)
		return
	}
	if len(violations) > 0 {
		metrics.ObserveCalculation(metrics.OutcomeInvalid, time.Since(start))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": violations})
		return
	}

	var req model.RateRequest
	if err := c.ShouldBindBodyWithJSON(&req); err != nil {
		metrics.ObserveCalculation(metrics.OutcomeInvalid, time.Since(start))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	s.logger.Info("calculating rate",
		zap.String("op", "rate.calculate"),
		zap.Any("request", req))

	if resp, ok := s.lookupCache(c, req); ok {
		s.finish(c, start, req, resp, true)
		return
	}

	resp, err := s.calc.Calculate(ctx, req)
	if errors.Is(err, ratecalc.ErrInvalidInput) {
		metrics.ObserveCalculation(metrics.OutcomeInvalid, time.Since(start))
		c.JSON(http.StatusBadRequest, gin.H{"error": ratecalc.Message(err)})
		return
	}
	if err != nil {
		s.fail(c, start, "rate calculation failed", err)
		return
	}

	if s.cache != nil {
		if err := cache.Store(ctx, s.cache, req, resp); err != nil {
			s.logger.Warn("cache write failed", zap.String("op", "rate.cache"), zap.Error(err))
		}
	}
	s.finish(c, start, req, resp, false)
}

func (s *Server) lookupCache(c *gin.Context, req model.RateRequest) (model.RateResponse, bool) {
	if s.cache == nil {
		return model.RateResponse{}, false
	}
	resp, ok, err := cache.Lookup(c.Request.Context(), s.cache, req)
	switch {
	case err != nil:
		metrics.ObserveCacheLookup(metrics.CacheError)
		s.logger.Warn("cache lookup failed", zap.String("op", "rate.cache"), zap.Error(err))
		return model.RateResponse{}, false
	case ok:
		metrics.ObserveCacheLookup(metrics.CacheHit)
		return resp, true
	default:
		metrics.ObserveCacheLookup(metrics.CacheMiss)
		return model.RateResponse{}, false
	}
}

func (s *Server) finish(c *gin.Context, start time.Time, req model.RateRequest, resp model.RateResponse, cached bool) {
	elapsed := time.Since(start)
	metrics.ObserveCalculation(metrics.OutcomeOK, elapsed)

	s.logger.Info("rate calculated",
		zap.String("op", "rate.calculate"),
		zap.Any("response", resp),
		zap.Bool("cached", cached),
		zap.Duration("elapsed", elapsed))

	if s.recorder != nil {
		rec := &model.CalculationRecord{
			Timestamp: start,
			Request:   req,
			Response:  resp,
			Cached:    cached,
			Duration:  elapsed,
		}
		if err := s.recorder.InsertCalculation(rec); err != nil {
			metrics.HistoryWriteErrors.Inc()
			s.logger.Warn("recording calculation failed", zap.String("op", "rate.history"), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) fail(c *gin.Context, start time.Time, msg string, err error) {
	metrics.ObserveCalculation(metrics.OutcomeError, time.Since(start))
	s.logger.Error(msg, zap.String("op", "rate.calculate"), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": UnexpectedErrorMessage})
}

// intQuery parses a positive integer query parameter, applying def when
// absent and capping at ceiling.
func intQuery(c *gin.Context, name string, def, ceiling int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	if n > ceiling {
		n = ceiling
	}
	return n, true
}

func (s *Server) handleHistory(c *gin.Context) {
	limit, ok := intQuery(c, "limit", model.DefaultHistoryLimit, model.MaxHistoryLimit)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	records, err := s.history.RecentCalculations(limit)
	if err != nil {
		s.logger.Error("reading history failed", zap.String("op", "rate.history"), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read calculation history"})
		return
	}
	if records == nil {
		records = []model.CalculationRecord{}
	}

	c.JSON(http.StatusOK, gin.H{
		"calculations": records,
		"count":        len(records),
	})
}

func (s *Server) handleStats(c *gin.Context) {
	days, ok := intQuery(c, "days", 30, 366)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
		return
	}

	stats, err := s.history.DailyStats(days)
	if err != nil {
		s.logger.Error("reading stats failed", zap.String("op", "rate.stats"), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read calculation stats"})
		return
	}
	if stats == nil {
		stats = []model.DailyStat{}
	}

	c.JSON(http.StatusOK, gin.H{"days": stats})
}

func (s *Server) handleHealth(c *gin.Context) {
	count, err := s.history.CalculationCount()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read health metrics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":            "ok",
		"uptime":            time.Since(s.startTime).String(),
		"calculation_count": count,
	})
}
