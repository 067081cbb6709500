package llm

import (
	"github.com/joseph-ayodele/tripdocs/constants"
)

// BuildDraftJSONSchema returns the JSON-Schema (draft 2020-12 subset) of a weak
// draft. Nothing is required: the model may leave out whatever it cannot see.
func BuildDraftJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"tipo":             map[string]any{"type": "string", "enum": constants.ReservationTypesAsStrings()},
			"escopo":           map[string]any{"type": "string", "enum": []string{string(constants.ScopeTripRelated), string(constants.ScopeOutsideScope)}},
			"confianca":        map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
			"campos_faltantes": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			constants.Flight.BagKey(): bagSchema(map[string]any{
				"numero":    textProp(),
				"companhia": textProp(),
				"origem":    textProp(),
				"destino":   textProp(),
				"data":      dateProp(),
				"status":    textProp(),
				"valor":     amountProp(),
				"moeda":     currencyProp(),
			}),
			constants.Lodging.BagKey(): bagSchema(map[string]any{
				"nome":        textProp(),
				"localizacao": textProp(),
				"check_in":    dateProp(),
				"check_out":   dateProp(),
				"status":      textProp(),
				"valor":       amountProp(),
				"moeda":       currencyProp(),
			}),
			constants.Transport.BagKey(): bagSchema(map[string]any{
				"tipo":      textProp(),
				"operadora": textProp(),
				"origem":    textProp(),
				"destino":   textProp(),
				"data":      dateProp(),
				"status":    textProp(),
				"valor":     amountProp(),
				"moeda":     currencyProp(),
			}),
			constants.Restaurant.BagKey(): bagSchema(map[string]any{
				"nome":           textProp(),
				"cidade":         textProp(),
				"tipo_culinaria": textProp(),
				"avaliacao":      map[string]any{"type": "number", "minimum": 0.0, "maximum": 10.0},
			}),
		},
	}
}

func bagSchema(props map[string]any) map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
}

func textProp() map[string]any {
	return map[string]any{"type": "string", "minLength": 1}
}

func dateProp() map[string]any {
	return map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`}
}

func amountProp() map[string]any {
	return map[string]any{"type": "number"}
}

func currencyProp() map[string]any {
	return map[string]any{"type": "string", "pattern": `^[A-Z]{3}$`}
}
