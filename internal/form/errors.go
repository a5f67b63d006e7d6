package form

// ValidationError is a local check failure. Its text is shown to the user
// verbatim.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

var (
	ErrNotSet = &ValidationError{"Ein oder mehrere Werte sind nicht gesetzt."}

	ErrNegative = &ValidationError{"Ein oder mehrere Werte sind kleiner 0."}

	ErrDepositsExceedEnd = &ValidationError{"Die Summe der Einzahlungen über die Laufzeit ist größer als der gewünschte Endbetrag. Bitte überprüfen Sie die Eingabewerte."}

	ErrDurationTooShort = &ValidationError{"Die gesamte Sparlaufzeit darf nicht kleiner sein als die Einzahlungsdauer."}
)

// NetworkErrorMessage is shown when the rate service cannot be reached or
// answers with something unusable.
const NetworkErrorMessage = "Ein Fehler ist aufgetreten. Bitte versuche es später erneut."
