package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveCalculation(t *testing.T) {
	before := testutil.ToFloat64(CalculationsTotal.WithLabelValues(OutcomeInvalid))
	ObserveCalculation(OutcomeInvalid, 3*time.Millisecond)
	after := testutil.ToFloat64(CalculationsTotal.WithLabelValues(OutcomeInvalid))
	assert.Equal(t, before+1, after)
}

func TestObserveCacheLookup(t *testing.T) {
	before := testutil.ToFloat64(CacheLookupsTotal.WithLabelValues(CacheHit))
	ObserveCacheLookup(CacheHit)
	ObserveCacheLookup(CacheHit)
	assert.Equal(t, before+2, testutil.ToFloat64(CacheLookupsTotal.WithLabelValues(CacheHit)))
}
