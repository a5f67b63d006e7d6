// Package form holds the savings form state and its local sanity checks.
// It has no knowledge of rendering or transport.
package form

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/codecrafters/effzins/internal/model"
)

// Field identifies one of the four numeric inputs.
type Field int

const (
	FieldLaufzeit Field = iota
	FieldEinzahlungsdauer
	FieldEinzahlungHoehe
	FieldEndBetrag
)

// Fields lists the numeric inputs in display order.
var Fields = []Field{FieldLaufzeit, FieldEinzahlungsdauer, FieldEinzahlungHoehe, FieldEndBetrag}

// Label returns the German label shown next to the input.
func (f Field) Label() string {
	switch f {
	case FieldLaufzeit:
		return "Gesamte Sparlaufzeit in Jahren"
	case FieldEinzahlungsdauer:
		return "Einzahlungsdauer in Jahren"
	case FieldEinzahlungHoehe:
		return "Einzahlungshöhe in Euro"
	case FieldEndBetrag:
		return "End-Betrag nach gesamter Sparlaufzeit in Euro"
	default:
		return ""
	}
}

// Step is the increment applied when the user nudges the value.
func (f Field) Step() float64 {
	switch f {
	case FieldEinzahlungHoehe:
		return 50
	case FieldEndBetrag:
		return 500
	default:
		return 1
	}
}

// Amount is a numeric input value. The zero Amount is empty, which is
// distinct from a set value of 0.
type Amount struct {
	Value float64
	Set   bool
}

// Value returns a set Amount.
func Value(v float64) Amount { return Amount{Value: v, Set: true} }

// ParseAmount converts raw text into an Amount. Blank or unparseable text
// yields the empty Amount, mirroring a browser number input.
func ParseAmount(raw string) Amount {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Amount{}
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Amount{}
	}
	return Value(v)
}

// String renders the amount for an input box; empty renders as "".
func (a Amount) String() string {
	if !a.Set {
		return ""
	}
	return strconv.FormatFloat(a.Value, 'f', -1, 64)
}

// Input is the full form state.
type Input struct {
	Laufzeit         Amount
	Einzahlungsdauer Amount
	EinzahlungHoehe  Amount
	EndBetrag        Amount
	Rhythm           model.Rhythm
}

// New returns the initial form: every number set to 0, yearly rhythm.
func New() Input {
	return Input{
		Laufzeit:         Value(0),
		Einzahlungsdauer: Value(0),
		EinzahlungHoehe:  Value(0),
		EndBetrag:        Value(0),
		Rhythm:           model.RhythmJaehrlich,
	}
}

// UpdateField parses raw text into the given field.
func (in *Input) UpdateField(f Field, raw string) {
	in.set(f, ParseAmount(raw))
}

// SelectRhythm sets the payment frequency.
func (in *Input) SelectRhythm(r model.Rhythm) {
	in.Rhythm = r
}

// PaymentsPerYear is derived from the rhythm on every call.
func (in Input) PaymentsPerYear() int {
	return in.Rhythm.PaymentsPerYear()
}

// Get returns the current value of a numeric field.
func (in Input) Get(f Field) Amount {
	switch f {
	case FieldLaufzeit:
		return in.Laufzeit
	case FieldEinzahlungsdauer:
		return in.Einzahlungsdauer
	case FieldEinzahlungHoehe:
		return in.EinzahlungHoehe
	case FieldEndBetrag:
		return in.EndBetrag
	default:
		return Amount{}
	}
}

func (in *Input) set(f Field, a Amount) {
	switch f {
	case FieldLaufzeit:
		in.Laufzeit = a
	case FieldEinzahlungsdauer:
		in.Einzahlungsdauer = a
	case FieldEinzahlungHoehe:
		in.EinzahlungHoehe = a
	case FieldEndBetrag:
		in.EndBetrag = a
	}
}

// Validate runs the local checks in order and returns the first failure.
func (in Input) Validate() error {
	for _, f := range Fields {
		if !in.Get(f).Set {
			return ErrNotSet
		}
	}
	for _, f := range Fields {
		if in.Get(f).Value < 0 {
			return ErrNegative
		}
	}
	deposits := in.EinzahlungHoehe.Value * in.Laufzeit.Value * float64(in.PaymentsPerYear())
	if deposits > in.EndBetrag.Value {
		return ErrDepositsExceedEnd
	}
	if in.Laufzeit.Value < in.Einzahlungsdauer.Value {
		return ErrDurationTooShort
	}
	return nil
}

// Request validates the form and builds the outbound request body.
func (in Input) Request() (model.RateRequest, error) {
	if err := in.Validate(); err != nil {
		return model.RateRequest{}, err
	}
	return model.RateRequest{
		Laufzeit:         in.Laufzeit.Value,
		EinzahlungsDauer: in.Einzahlungsdauer.Value,
		ZahlungenProJahr: float64(in.PaymentsPerYear()),
		EinzahlungsHoehe: in.EinzahlungHoehe.Value,
		EndBetrag:        in.EndBetrag.Value,
	}, nil
}

// DepositTotal is the sum paid in over the whole duration. A one-time
// deposit counts once.
func (in Input) DepositTotal() float64 {
	zpj := in.PaymentsPerYear()
	if zpj == 0 {
		return in.EinzahlungHoehe.Value
	}
	return in.EinzahlungHoehe.Value * in.Laufzeit.Value * float64(zpj)
}

// FormatRate renders an interest factor as a percentage with two decimals.
func FormatRate(zinssatz float64) string {
	return fmt.Sprintf("%.2f%%", (zinssatz-1)*100)
}
