package heuristics

import (
	"regexp"
	"strings"
)

// Route is an origin/destination pair and the rule that supplied the origin.
type Route struct {
	Origin      string
	Destination string
	Rule        string
}

const (
	cityWord = `\p{Lu}[\p{L}'.\-]*`
	cityName = cityWord + `(?:[ \t]+(?:(?:de|do|da|dos|das|del)[ \t]+)?` + cityWord + `)*`
)

var (
	reAirportPair     = regexp.MustCompile(`\b([A-Z]{3})\s*(?:->|→|-|/)\s*([A-Z]{3})\b`)
	reLabeledAirports = regexp.MustCompile(`\b(?i:origem|from)\b\s*:?\s*([A-Z]{3})\b[\s\S]*?\b(?i:destino|to)\b\s*:?\s*([A-Z]{3})\b`)
	reAirportToken    = regexp.MustCompile(`\b[A-Z]{3}\b`)
	reCityPhrase      = regexp.MustCompile(`\b(?:[Dd]e|[Ff]rom)[ \t]+(` + cityName + `)[ \t]+(?:para|to)[ \t]+(` + cityName + `)`)
	reCityArrow       = regexp.MustCompile(`(` + cityName + `)[ \t]*(?:->|→)[ \t]*(` + cityName + `)`)
	reLabeledOrigin   = regexp.MustCompile(`(?im)\b(?:origem|from)[ \t]*:[ \t]*([^\n]+?)(?:[ \t]+\p{L}+[ \t]*:|[ \t]*$)`)
	reLabeledDest     = regexp.MustCompile(`(?im)\b(?:destino|to)[ \t]*:[ \t]*([^\n]+?)(?:[ \t]+\p{L}+[ \t]*:|[ \t]*$)`)
)

// notAirports holds three-letter uppercase tokens that are never airport codes.
var notAirports = map[string]struct{}{
	"BRL": {}, "USD": {}, "EUR": {}, "GBP": {}, "CHF": {}, "ARS": {}, "CLP": {},
	"PNR": {}, "CPF": {}, "CEP": {}, "PIX": {}, "NFE": {}, "NFC": {},
	"GOL": {}, "VOO": {}, "DIA": {}, "MES": {}, "ANO": {}, "SEU": {}, "SUA": {}, "COM": {},
	"THE": {}, "AND": {}, "FOR": {}, "LTD": {}, "INC": {}, "REF": {}, "NUM": {}, "QTD": {}, "OBS": {},
	"RUA": {}, "AVE": {}, "TEL": {}, "UTC": {}, "GMT": {}, "BRT": {}, "ETA": {}, "ETD": {}, "VIA": {},
}

func isAirportCandidate(code string) bool {
	_, stop := notAirports[code]
	return !stop
}

type routeRule struct {
	name  string
	match func(text string) (string, string)
}

// routeRules run in priority order; the first non-empty hit per field wins.
var routeRules = []routeRule{
	{name: "airport_pair", match: airportPair},
	{name: "labeled_airports", match: pairFrom(reLabeledAirports)},
	{name: "free_airport_tokens", match: freeAirportTokens},
	{name: "city_phrase", match: pairFrom(reCityPhrase)},
	{name: "city_arrow", match: cityArrow},
	{name: "labeled_city", match: labeledCity},
}

// ExtractRoute pulls an origin/destination pair out of raw text.
func ExtractRoute(text string) Route {
	var r Route
	for _, rule := range routeRules {
		o, d := rule.match(text)
		if r.Origin == "" && o != "" {
			r.Origin = o
			r.Rule = rule.name
		}
		if r.Destination == "" && d != "" {
			r.Destination = d
			if r.Rule == "" {
				r.Rule = rule.name
			}
		}
		if r.Origin != "" && r.Destination != "" {
			break
		}
	}
	return r
}

func airportPair(text string) (string, string) {
	for _, m := range reAirportPair.FindAllStringSubmatch(text, -1) {
		if isAirportCandidate(m[1]) && isAirportCandidate(m[2]) {
			return m[1], m[2]
		}
	}
	return "", ""
}

func pairFrom(re *regexp.Regexp) func(string) (string, string) {
	return func(text string) (string, string) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return "", ""
		}
		return CleanToken(m[1]), CleanToken(m[2])
	}
}

// routeLeadWords head a route line ("Trem Lisboa → Porto") without being part
// of the city. Matched on folded text.
var routeLeadWords = map[string]struct{}{
	"trem": {}, "train": {}, "onibus": {}, "bus": {}, "voo": {}, "flight": {},
	"balsa": {}, "ferry": {}, "transfer": {}, "translado": {}, "traslado": {},
	"trecho": {}, "rota": {}, "route": {}, "viagem": {}, "trip": {},
	"partida": {}, "saida": {}, "departure": {}, "bilhete": {}, "passagem": {}, "ticket": {},
}

func cityArrow(text string) (string, string) {
	o, d := pairFrom(reCityArrow)(text)
	words := strings.Fields(o)
	for len(words) > 1 {
		if _, lead := routeLeadWords[fold(words[0])]; !lead {
			break
		}
		words = words[1:]
	}
	return strings.Join(words, " "), d
}

func freeAirportTokens(text string) (string, string) {
	var codes []string
	for _, tok := range reAirportToken.FindAllString(text, -1) {
		if !isAirportCandidate(tok) {
			continue
		}
		if len(codes) == 1 && codes[0] == tok {
			continue
		}
		codes = append(codes, tok)
		if len(codes) == 2 {
			return codes[0], codes[1]
		}
	}
	return "", ""
}

func labeledCity(text string) (string, string) {
	var o, d string
	if m := reLabeledOrigin.FindStringSubmatch(text); m != nil {
		o = CleanToken(m[1])
	}
	if m := reLabeledDest.FindStringSubmatch(text); m != nil {
		d = CleanToken(m[1])
	}
	return o, d
}
