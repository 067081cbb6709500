package heuristics

import (
	"regexp"

	"github.com/joseph-ayodele/tripdocs/constants"
	"github.com/joseph-ayodele/tripdocs/internal/entity"
)

// ScopeSource names the evidence behind a scope decision.
type ScopeSource string

const (
	ScopeFromDraft     ScopeSource = "draft"
	ScopeTravelKeyword ScopeSource = "travel_keyword"
	ScopeNonTravelClue ScopeSource = "non_travel_signal"
	ScopeNoSignal      ScopeSource = "no_signal"
)

// ScopeDecision is a resolved scope plus where it came from.
type ScopeDecision struct {
	Scope  constants.Scope
	Source ScopeSource
}

// Ambiguous reports a decision reached without any positive evidence.
func (d ScopeDecision) Ambiguous() bool {
	return d.Source == ScopeNoSignal
}

var (
	reTravelWords  = regexp.MustCompile(`\b(voo|flight|aeroporto|airport|pnr|iata|itinerario|itinerary|airbnb|hotel|pousada|hostel|booking|check-in|check-out|checkin|checkout|transporte|trem|train|bus|onibus|restaurante|restaurant|trip|viagem|travel|passagem|embarque|boarding|reserva de mesa)\b`)
	reTravelBrands = regexp.MustCompile(`\b(latam|gol|azul|lufthansa|air france|american airlines|expedia|decolar|hoteis\.com|hotels\.com|kayak|skyscanner|trivago|tripadvisor|opentable|123milhas|maxmilhas|smiles|livelo)\b`)
	reNonTravel    = regexp.MustCompile(`\b(mercado|supermercado|farmacia|drogaria|pharmacy|grocery|groceries|condominio|conta de luz|energia eletrica|agua e esgoto|mensalidade|escola|salario|holerite|payroll|imposto de renda|iptu|ipva)\b`)
)

// HasTravelSignal reports whether text or file name carries a travel keyword or brand.
func HasTravelSignal(text, fileName string) bool {
	s := fold(haystack(text, fileName))
	return reTravelWords.MatchString(s) || reTravelBrands.MatchString(s)
}

// ResolveScope trusts an explicit draft scope verbatim; otherwise a travel
// keyword makes the document trip related and its absence puts it out of scope.
func ResolveScope(draft *entity.WeakDraft, text, fileName string) constants.Scope {
	return DecideScope(draft, text, fileName).Scope
}

// DecideScope is ResolveScope with the evidence attached.
func DecideScope(draft *entity.WeakDraft, text, fileName string) ScopeDecision {
	if draft != nil && (draft.Scope == constants.ScopeTripRelated || draft.Scope == constants.ScopeOutsideScope) {
		return ScopeDecision{Scope: draft.Scope, Source: ScopeFromDraft}
	}
	if HasTravelSignal(text, fileName) {
		return ScopeDecision{Scope: constants.ScopeTripRelated, Source: ScopeTravelKeyword}
	}
	if reNonTravel.MatchString(fold(haystack(text, fileName))) {
		return ScopeDecision{Scope: constants.ScopeOutsideScope, Source: ScopeNonTravelClue}
	}
	return ScopeDecision{Scope: constants.ScopeOutsideScope, Source: ScopeNoSignal}
}
