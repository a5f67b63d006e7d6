package httpserver

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

var rateRequestFields = []string{"laufzeit", "einzahlungsDauer", "zahlungenProJahr", "einzahlungsHoehe", "endBetrag"}

func rateRequestSchema() map[string]interface{} {
	props := make(map[string]interface{}, len(rateRequestFields))
	for _, f := range rateRequestFields {
		props[f] = map[string]interface{}{"type": "number"}
	}
	return map[string]interface{}{
		"type":       "object",
		"required":   rateRequestFields,
		"properties": props,
	}
}

var rateRequestSchemaLoader = gojsonschema.NewGoLoader(rateRequestSchema())

// validateRateRequest checks a decoded JSON body against the request schema
// and returns one message per violation.
func validateRateRequest(doc interface{}) ([]string, error) {
	result, err := gojsonschema.Validate(rateRequestSchemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return msgs, nil
}
