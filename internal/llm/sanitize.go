package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/tripdocs/constants"
	"github.com/joseph-ayodele/tripdocs/internal/heuristics"
)

type fieldKind int

const (
	kindText fieldKind = iota
	kindDate
	kindAmount
	kindCurrency
)

var bagFields = map[string]map[string]fieldKind{
	constants.Flight.BagKey(): {
		"numero": kindText, "companhia": kindText, "origem": kindText, "destino": kindText,
		"data": kindDate, "status": kindText, "valor": kindAmount, "moeda": kindCurrency,
	},
	constants.Lodging.BagKey(): {
		"nome": kindText, "localizacao": kindText, "check_in": kindDate, "check_out": kindDate,
		"status": kindText, "valor": kindAmount, "moeda": kindCurrency,
	},
	constants.Transport.BagKey(): {
		"tipo": kindText, "operadora": kindText, "origem": kindText, "destino": kindText,
		"data": kindDate, "status": kindText, "valor": kindAmount, "moeda": kindCurrency,
	},
	constants.Restaurant.BagKey(): {
		"nome": kindText, "cidade": kindText, "tipo_culinaria": kindText, "avaliacao": kindAmount,
	},
}

// top-level synonyms models tend to produce when they drift into English
var topRenames = map[string]string{
	"type":           "tipo",
	"scope":          "escopo",
	"confidence":     "confianca",
	"missing_fields": "campos_faltantes",
	"flight":         constants.Flight.BagKey(),
	"lodging":        constants.Lodging.BagKey(),
	"hotel":          constants.Lodging.BagKey(),
	"transport":      constants.Transport.BagKey(),
	"restaurant":     constants.Restaurant.BagKey(),
}

var fieldRenames = map[string]string{
	"number":        "numero",
	"flight_number": "numero",
	"carrier":       "companhia",
	"airline":       "companhia",
	"origin":        "origem",
	"destination":   "destino",
	"date":          "data",
	"amount":        "valor",
	"price":         "valor",
	"total":         "valor",
	"currency":      "moeda",
	"name":          "nome",
	"location":      "localizacao",
	"address":       "localizacao",
	"checkin":       "check_in",
	"checkIn":       "check_in",
	"checkout":      "check_out",
	"checkOut":      "check_out",
	"kind":          "tipo",
	"type":          "tipo",
	"operator":      "operadora",
	"city":          "cidade",
	"cuisine":       "tipo_culinaria",
	"rating":        "avaliacao",
}

var currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)

// NormalizeDraftJSON repairs common model mistakes before schema validation:
// English keys, localized dates and amounts, currency symbols, percent
// confidences. Unknown keys, unusable values and empty bags are dropped.
// It returns the cleaned JSON and the dotted paths that were dropped.
func NormalizeDraftJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var in map[string]any
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, nil, fmt.Errorf("decode draft json: %w", err)
	}

	var dropped []string
	out := map[string]any{}
	for k, v := range in {
		key := k
		if r, ok := topRenames[k]; ok {
			if _, clash := in[r]; clash {
				dropped = append(dropped, k)
				continue
			}
			key = r
		}
		switch key {
		case "tipo":
			s, _ := v.(string)
			if t, ok := constants.ParseReservationType(s); ok {
				out[key] = string(t)
			} else {
				dropped = append(dropped, k)
			}
		case "escopo":
			s, _ := v.(string)
			if sc := constants.ParseScope(s); sc != constants.ScopeUnknown {
				out[key] = string(sc)
			} else {
				dropped = append(dropped, k)
			}
		case "confianca":
			if c, ok := toConfidence(v); ok {
				out[key] = c
			} else {
				dropped = append(dropped, k)
			}
		case "campos_faltantes":
			if list := toStringList(v); len(list) > 0 {
				out[key] = list
			} else if v != nil {
				dropped = append(dropped, k)
			}
		default:
			fields, isBag := bagFields[key]
			if !isBag {
				dropped = append(dropped, k)
				continue
			}
			bag, ok := v.(map[string]any)
			if !ok {
				if v != nil {
					dropped = append(dropped, k)
				}
				continue
			}
			clean, lost := normalizeBag(key, bag, fields)
			dropped = append(dropped, lost...)
			if len(clean) > 0 {
				out[key] = clean
			}
		}
	}

	if len(dropped) > 0 {
		logger.Debug("llm.sanitize.dropped", "keys", dropped)
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, dropped, fmt.Errorf("encode draft json: %w", err)
	}
	return b, dropped, nil
}

func normalizeBag(bagKey string, bag map[string]any, fields map[string]fieldKind) (map[string]any, []string) {
	var dropped []string
	out := map[string]any{}
	for k, v := range bag {
		key := k
		if _, known := fields[k]; !known {
			if r, ok := fieldRenames[k]; ok {
				if _, clash := bag[r]; !clash {
					key = r
				}
			}
		}
		kind, known := fields[key]
		if !known {
			dropped = append(dropped, bagKey+"."+k)
			continue
		}
		if v == nil {
			continue
		}
		var (
			val any
			ok  bool
		)
		switch kind {
		case kindText:
			val, ok = toText(v)
		case kindDate:
			val, ok = toDate(v)
		case kindAmount:
			var f float64
			f, ok = toAmount(v)
			if key == "avaliacao" && (f < 0 || f > 10) {
				ok = false
			}
			val = f
		case kindCurrency:
			val, ok = toCurrency(v)
		}
		if !ok {
			dropped = append(dropped, bagKey+"."+k)
			continue
		}
		out[key] = val
	}
	return out, dropped
}

func toText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case float64:
		return fmt.Sprintf("%v", t), true
	default:
		return "", false
	}
}

func toDate(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return heuristics.NormalizeDate(s)
}

func toAmount(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		return heuristics.ParseAmount(t)
	default:
		return 0, false
	}
}

func toCurrency(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.ToUpper(strings.TrimSpace(s))
	switch s {
	case "R$":
		s = "BRL"
	case "US$", "$":
		s = "USD"
	case "€":
		s = "EUR"
	}
	return s, currencyRe.MatchString(s)
}

// toConfidence accepts 0..1 or a 0..100 percentage.
func toConfidence(v any) (float64, bool) {
	var c float64
	switch t := v.(type) {
	case float64:
		c = t
	case string:
		p, ok := heuristics.ParseAmount(strings.TrimSuffix(strings.TrimSpace(t), "%"))
		if !ok {
			return 0, false
		}
		c = p
	default:
		return 0, false
	}
	if c > 1 && c <= 100 {
		c /= 100
	}
	if c < 0 || c > 1 {
		return 0, false
	}
	return c, true
}

func toStringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, it := range items {
		if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}
