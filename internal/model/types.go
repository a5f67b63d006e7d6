package model

import "time"

// Rhythm is a payment frequency offered by the form's selector.
type Rhythm string

const (
	RhythmJaehrlich     Rhythm = "Jährlich"
	RhythmHalbjaehrlich Rhythm = "Halbjährlich"
	RhythmQuartalsweise Rhythm = "Quartalsweise"
	RhythmMonatlich     Rhythm = "Monatlich"
	RhythmEinmalig      Rhythm = "Einmalig"
)

// Rhythms lists the selectable frequencies in display order.
var Rhythms = []Rhythm{
	RhythmJaehrlich,
	RhythmHalbjaehrlich,
	RhythmQuartalsweise,
	RhythmMonatlich,
	RhythmEinmalig,
}

// PaymentsPerYear maps the rhythm to the number of deposits per year.
// Unknown values fall back to monthly.
func (r Rhythm) PaymentsPerYear() int {
	switch r {
	case RhythmJaehrlich:
		return 1
	case RhythmHalbjaehrlich:
		return 2
	case RhythmQuartalsweise:
		return 4
	case RhythmMonatlich:
		return 12
	case RhythmEinmalig:
		return 0
	default:
		return 12
	}
}

// Next returns the following rhythm in display order, wrapping around.
func (r Rhythm) Next() Rhythm {
	return Rhythms[(r.index()+1)%len(Rhythms)]
}

// Prev returns the preceding rhythm in display order, wrapping around.
func (r Rhythm) Prev() Rhythm {
	return Rhythms[(r.index()+len(Rhythms)-1)%len(Rhythms)]
}

func (r Rhythm) index() int {
	for i, v := range Rhythms {
		if v == r {
			return i
		}
	}
	return 0
}

// RateRequest is the JSON body sent to POST /rate/effZins.
// All fields are plain JSON numbers on the wire.
type RateRequest struct {
	Laufzeit         float64 `json:"laufzeit"`
	EinzahlungsDauer float64 `json:"einzahlungsDauer"`
	ZahlungenProJahr float64 `json:"zahlungenProJahr"`
	EinzahlungsHoehe float64 `json:"einzahlungsHoehe"`
	EndBetrag        float64 `json:"endBetrag"`
}

// RateResponse carries the three interest factors computed by the service.
// A factor of 1.05 means 5% interest.
type RateResponse struct {
	AktuellerZinssatz float64 `json:"aktuellerZinssatz"`
	PeriodenZinssatz  float64 `json:"periodenZinssatz"`
	Zinssatz          float64 `json:"zinssatz"`
}

// CalculationRecord is one stored rate calculation.
type CalculationRecord struct {
	ID        int64         `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Request   RateRequest   `json:"request"`
	Response  RateResponse  `json:"response"`
	Cached    bool          `json:"cached"`
	Duration  time.Duration `json:"duration_ns"`
}

// DailyStat aggregates one day of calculations.
type DailyStat struct {
	Day          string  `json:"day"`
	Calculations int64   `json:"calculations"`
	AvgZinssatz  float64 `json:"avg_zinssatz"`
	Cached       int64   `json:"cached"`
}
