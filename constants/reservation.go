package constants

import (
	"strings"
)

// ReservationType is the resolved kind of a travel document.
type ReservationType string

const (
	Flight     ReservationType = "flight"
	Lodging    ReservationType = "lodging"
	Transport  ReservationType = "transport"
	Restaurant ReservationType = "restaurant"
)

// ReservationTypes is the enumeration order used for tie-breaks.
var ReservationTypes = []ReservationType{Flight, Lodging, Transport, Restaurant}

var bagKeys = map[ReservationType]string{
	Flight:     "voo",
	Lodging:    "hospedagem",
	Transport:  "transporte",
	Restaurant: "restaurante",
}

// BagKey returns the wire key of the type's field bag, also used as the missing-field prefix.
func (t ReservationType) BagKey() string {
	return bagKeys[t]
}

func (t ReservationType) Valid() bool {
	_, ok := bagKeys[t]
	return ok
}

// BagKeys returns the bag keys in enumeration order.
func BagKeys() []string {
	out := make([]string, len(ReservationTypes))
	for i, t := range ReservationTypes {
		out[i] = t.BagKey()
	}
	return out
}

func ReservationTypesAsStrings() []string {
	out := make([]string, len(ReservationTypes))
	for i, t := range ReservationTypes {
		out[i] = string(t)
	}
	return out
}

// ParseReservationType maps English names, bag keys and a few synonyms to a type.
func ParseReservationType(input string) (ReservationType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return "", false
	}

	synonyms := map[string]ReservationType{
		"voo":         Flight,
		"aereo":       Flight,
		"airfare":     Flight,
		"hospedagem":  Lodging,
		"hotel":       Lodging,
		"stay":        Lodging,
		"transporte":  Transport,
		"ground":      Transport,
		"restaurante": Restaurant,
		"dining":      Restaurant,
	}
	if t, ok := synonyms[normalized]; ok {
		return t, true
	}
	for _, t := range ReservationTypes {
		if normalized == string(t) {
			return t, true
		}
	}
	return "", false
}

// Scope says whether a document belongs to trip planning. The zero value means unknown.
type Scope string

const (
	ScopeUnknown      Scope = ""
	ScopeTripRelated  Scope = "trip_related"
	ScopeOutsideScope Scope = "outside_scope"
)

func ParseScope(input string) Scope {
	switch Scope(strings.ToLower(strings.TrimSpace(input))) {
	case ScopeTripRelated:
		return ScopeTripRelated
	case ScopeOutsideScope:
		return ScopeOutsideScope
	default:
		return ScopeUnknown
	}
}

// ReviewMarker is the transient missing-field entry attached to fallback records.
const ReviewMarker = "review_manual_requerida"

// DefaultCurrency is applied by callers when no currency marker precedes an amount.
const DefaultCurrency = "BRL"
