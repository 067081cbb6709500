package llm

import (
	"strings"

	"github.com/joseph-ayodele/tripdocs/constants"
)

// DefaultMaxTextRunes bounds the document text handed to the model.
const DefaultMaxTextRunes = 6000

// BuildSystemPrompt composes the system message: the wire keys, the per-type
// bags, and formatting rules.
func BuildSystemPrompt(req ExtractRequest) string {
	defCur := strings.TrimSpace(req.DefaultCurrency)
	if defCur == "" {
		defCur = constants.DefaultCurrency
	}

	parts := []string{
		"You read travel documents (flight tickets, hotel bookings, bus or transfer vouchers, restaurant reservations) and return ONLY a JSON object that matches the provided JSON Schema.",
		"Top-level keys: 'tipo' (one of " + strings.Join(constants.ReservationTypesAsStrings(), ", ") + "), 'escopo' (trip_related or outside_scope), 'confianca' (0 to 1), 'campos_faltantes' (list of missing field paths such as 'voo.numero').",
		"Put fields in the bag of the document type: 'voo' (numero, companhia, origem, destino, data, status, valor, moeda), " +
			"'hospedagem' (nome, localizacao, check_in, check_out, status, valor, moeda), " +
			"'transporte' (tipo, operadora, origem, destino, data, status, valor, moeda), " +
			"'restaurante' (nome, cidade, tipo_culinaria, avaliacao).",
		"Fill only the bag that matches the document. Leave other bags out.",
		"Use ISO-8601 dates (YYYY-MM-DD). Amounts are plain numbers with a dot as decimal separator.",
		"Currency must be a 3-letter ISO 4217 code; default to " + defCur + " if only a bare amount is printed.",
		"Never invent values. Never output null. If a field is not present, omit it.",
	}
	if dest := strings.TrimSpace(req.TripDestination); dest != "" {
		parts = append(parts, "The traveler is going to "+dest+". Documents unrelated to that trip get escopo 'outside_scope'.")
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt packages the filename hint and the (truncated) document text.
func BuildUserPrompt(req ExtractRequest) string {
	limit := req.MaxTextRunes
	if limit <= 0 {
		limit = DefaultMaxTextRunes
	}

	var b strings.Builder
	if name := strings.TrimSpace(req.FileName); name != "" {
		b.WriteString("Filename: ")
		b.WriteString(name)
		b.WriteString("\n")
	}
	text := []rune(strings.TrimSpace(req.Text))
	b.WriteString("\nDocument text:\n")
	if len(text) > limit {
		b.WriteString(string(text[:limit]))
		b.WriteString("\n…(truncated)")
	} else {
		b.WriteString(string(text))
	}
	return b.String()
}
