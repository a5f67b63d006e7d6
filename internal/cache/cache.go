// Package cache stores computed rate responses keyed by request.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/codecrafters/effzins/internal/model"
)

// KeyPrefix namespaces every entry written by this package.
const KeyPrefix = "effzins:rate:v1:"

// Cache is a string key/value store with implementation-defined expiry.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Key fingerprints a request.
func Key(req model.RateRequest) string {
	parts := []float64{req.Laufzeit, req.EinzahlungsDauer, req.ZahlungenProJahr, req.EinzahlungsHoehe, req.EndBetrag}
	fields := make([]string, len(parts))
	for i, p := range parts {
		fields[i] = strconv.FormatFloat(p, 'g', -1, 64)
	}
	return KeyPrefix + strings.Join(fields, ":")
}

// Lookup returns the cached response for req, if any.
func Lookup(ctx context.Context, c Cache, req model.RateRequest) (model.RateResponse, bool, error) {
	raw, ok, err := c.Get(ctx, Key(req))
	if err != nil || !ok {
		return model.RateResponse{}, false, err
	}
	var resp model.RateResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return model.RateResponse{}, false, fmt.Errorf("decoding cached response: %w", err)
	}
	return resp, true, nil
}

// Store writes resp as the cached answer for req.
func Store(ctx context.Context, c Cache, req model.RateRequest, resp model.RateResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}
	return c.Set(ctx, Key(req), string(data))
}
