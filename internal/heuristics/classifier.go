package heuristics

import (
	"regexp"

	"github.com/joseph-ayodele/tripdocs/constants"
)

// The *Words tables run over folded text; the rest over the original case.
var (
	reFlightWords     = regexp.MustCompile(`\b(latam|lufthansa|air france|american airlines|gol linhas|voegol|azul linhas|voeazul|flight|voo|boarding|embarque|aeroporto|airport|check-in online|bagagem|baggage)\b`)
	reRestaurantWords = regexp.MustCompile(`\b(restaurant|restaurante|mesa|reservation at|opentable|tripadvisor|thefork|churrascaria|pizzaria|trattoria)\b`)
	reLodgingWords    = regexp.MustCompile(`\b(airbnb|hotel|pousada|hostel|resort|hospedagem|check-in|check in|checkin|check-out|check out|checkout|booking|diaria|diarias)\b`)

	reCarrierCaps    = regexp.MustCompile(`\b(?:GOL|AZUL|LATAM)\b`)
	reFlightNumberly = regexp.MustCompile(`\b[A-Z]{2}\d{3,}\b`)
)

// ClassifyFromText guesses a type from keywords alone. It never returns "";
// transport is the coarse default when nothing else fires.
func ClassifyFromText(text, fileName string) constants.ReservationType {
	raw := haystack(text, fileName)
	s := fold(raw)
	switch {
	case reFlightWords.MatchString(s), reCarrierCaps.MatchString(raw), hasAirportPair(raw), reFlightNumberly.MatchString(raw):
		return constants.Flight
	case reRestaurantWords.MatchString(s):
		return constants.Restaurant
	case reLodgingWords.MatchString(s):
		return constants.Lodging
	default:
		return constants.Transport
	}
}

func hasAirportPair(raw string) bool {
	o, d := airportPair(raw)
	return o != "" && d != ""
}
