// Package ratecalc derives effective interest factors from a savings plan.
package ratecalc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/codecrafters/effzins/internal/model"
)

// Scale is the number of decimal places every factor is rounded to.
const Scale = 5

var (
	// ErrInvalidInput marks requests the caller must fix.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoRealRoot is returned when the ratio under the root is negative.
	ErrNoRealRoot = errors.New("negative values cannot have real roots")
)

// Input is a savings plan with whole-year durations.
type Input struct {
	Laufzeit         int
	EinzahlungsDauer int
	ZahlungenProJahr int
	EinzahlungsHoehe float64
	EndBetrag        float64
}

// FromRequest converts a wire request. Fractional durations are truncated.
func FromRequest(req model.RateRequest) Input {
	return Input{
		Laufzeit:         int(req.Laufzeit),
		EinzahlungsDauer: int(req.EinzahlungsDauer),
		ZahlungenProJahr: int(req.ZahlungenProJahr),
		EinzahlungsHoehe: req.EinzahlungsHoehe,
		EndBetrag:        req.EndBetrag,
	}
}

// Validate checks the preconditions of the formulas.
func (in Input) Validate() error {
	if in.EinzahlungsHoehe <= 0 {
		return fmt.Errorf("%w: Einzahlungshöhe muss größer als null sein", ErrInvalidInput)
	}
	if in.EndBetrag <= 0 {
		return fmt.Errorf("%w: Endbetrag muss größer als null sein", ErrInvalidInput)
	}
	if in.Laufzeit < 1 {
		return fmt.Errorf("%w: Laufzeit muss größer als 0 sein", ErrInvalidInput)
	}
	return nil
}

// Message returns the user-facing part of a validation error.
func Message(err error) string {
	return strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": ")
}

func root(x float64, n int) (float64, error) {
	if x < 0 {
		return 0, ErrNoRealRoot
	}
	return math.Pow(x, 1.0/float64(n)), nil
}

// round rounds half away from zero to Scale places.
func round(x float64) float64 {
	p := math.Pow10(Scale)
	return math.Round(x*p) / p
}

// AnnualFactor is the yearly growth factor over the whole duration. A
// payment rhythm of zero means a single deposit.
func AnnualFactor(laufzeit, zpj int, einzahlung, endBetrag float64) (float64, error) {
	total := einzahlung
	if zpj != 0 {
		total = float64(laufzeit) * float64(zpj) * einzahlung
	}
	r, err := root(endBetrag/total, laufzeit)
	if err != nil {
		return 0, err
	}
	return round(r), nil
}

func periodFactor(laufzeit, zpj int, einzahlung, endBetrag float64) (float64, error) {
	total := float64(laufzeit) * float64(zpj) * einzahlung
	return root(endBetrag/total, laufzeit*zpj)
}

// PeriodFactor is the growth factor per payment period.
func PeriodFactor(laufzeit, zpj int, einzahlung, endBetrag float64) (float64, error) {
	p, err := periodFactor(laufzeit, zpj, einzahlung, endBetrag)
	if err != nil {
		return 0, err
	}
	return round(p), nil
}

// CurrentFactor compounds the period factor over the periods left after
// deposits stop, plus one.
func CurrentFactor(laufzeit, dauer, zpj int, einzahlung, endBetrag float64) (float64, error) {
	p, err := periodFactor(laufzeit, zpj, einzahlung, endBetrag)
	if err != nil {
		return 0, err
	}
	open := laufzeit*zpj - dauer*zpj
	return round(math.Pow(p, float64(open+1))), nil
}

// Calculator computes all three factors for a request.
type Calculator struct{}

// New returns a Calculator.
func New() *Calculator { return &Calculator{} }

// Calculate validates the request and computes its factors. For a single
// deposit all three factors equal the annual one.
func (c *Calculator) Calculate(_ context.Context, req model.RateRequest) (model.RateResponse, error) {
	in := FromRequest(req)
	if err := in.Validate(); err != nil {
		return model.RateResponse{}, err
	}

	zinssatz, err := AnnualFactor(in.Laufzeit, in.ZahlungenProJahr, in.EinzahlungsHoehe, in.EndBetrag)
	if err != nil {
		return model.RateResponse{}, fmt.Errorf("annual factor: %w", err)
	}
	resp := model.RateResponse{
		AktuellerZinssatz: zinssatz,
		PeriodenZinssatz:  zinssatz,
		Zinssatz:          zinssatz,
	}

	if in.ZahlungenProJahr != 0 {
		resp.PeriodenZinssatz, err = PeriodFactor(in.Laufzeit, in.ZahlungenProJahr, in.EinzahlungsHoehe, in.EndBetrag)
		if err != nil {
			return model.RateResponse{}, fmt.Errorf("period factor: %w", err)
		}
		resp.AktuellerZinssatz, err = CurrentFactor(in.Laufzeit, in.EinzahlungsDauer, in.ZahlungenProJahr, in.EinzahlungsHoehe, in.EndBetrag)
		if err != nil {
			return model.RateResponse{}, fmt.Errorf("current factor: %w", err)
		}
	}

	for _, v := range []float64{resp.Zinssatz, resp.PeriodenZinssatz, resp.AktuellerZinssatz} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return model.RateResponse{}, fmt.Errorf("non-finite factor for %+v", in)
		}
	}
	return resp, nil
}
