package ocr

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/tripdocs/internal/heuristics"
)

var (
	reCurr    = regexp.MustCompile(`(?i)\b(brl|usd|eur|gbp|chf)\b|r\$|[$£€]`)
	reAmount  = regexp.MustCompile(`\b\d{1,3}([.,]\d{3})*[.,]\d{2}\b`)
	reBooking = regexp.MustCompile(`(?i)\b(reserva|booking|localizador|confirma|check-?in|voo|flight|pnr)`)
)

// heuristicConfidence scores decoded text by travel-document artifacts.
func heuristicConfidence(txt string) float32 {
	score := float32(0.2)
	if len(heuristics.FindDates(txt)) > 0 {
		score += 0.2
	}
	if reCurr.MatchString(txt) {
		score += 0.15
	}
	if reAmount.MatchString(txt) {
		score += 0.15
	}
	if reBooking.MatchString(txt) {
		score += 0.1
	}
	if len(strings.TrimSpace(txt)) > 120 {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
