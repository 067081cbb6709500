package heuristics

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	reFlightNumber    = regexp.MustCompile(`\b([A-Z]{2}\d{3,}[A-Z0-9]*)\b`)
	reReservationCode = regexp.MustCompile(`(?i)\b(?:código de reserva|codigo de reserva|booking code|pnr|localizador)\s*[:#-]?\s*([A-Z0-9]{5,8})\b`)
	reTime            = regexp.MustCompile(`\b([01]?\d|2[0-3])\s?[:h]\s?([0-5]\d)\b`)
	reTravelerName    = regexp.MustCompile(`(?im)^[ \t]*(?:nome do passageiro|passageiro|passenger name|passenger|h[óo]spede|guest name|guest|viajante|traveler|titular)[ \t]*:[ \t]*(.+?)[ \t]*$`)
	rePoints          = regexp.MustCompile(`(?i)\b(\d[\d.,]*)\s*(?:pontos|milhas|points|miles)\b`)
	reDigitsOnly      = regexp.MustCompile(`\D`)
)

// knownCarriers is matched case-insensitively on a word boundary.
var knownCarriers = []string{"LATAM", "GOL", "AZUL", "Lufthansa", "Air France", "American Airlines"}

var reCarriers = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(knownCarriers))
	for i, c := range knownCarriers {
		out[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(c) + `\b`)
	}
	return out
}()

// ExtractFlightNumber tries the raw text first, then the file name.
func ExtractFlightNumber(text, fileName string) string {
	if m := reFlightNumber.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := reFlightNumber.FindStringSubmatch(fileName); m != nil {
		return m[1]
	}
	return ""
}

// ExtractReservationCode reads a label-anchored booking code, upper-cased.
func ExtractReservationCode(text string) string {
	if m := reReservationCode.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1])
	}
	return ""
}

// ExtractCarrier returns a known airline named in text or file name. It never guesses.
func ExtractCarrier(text, fileName string) string {
	for _, src := range []string{text, fileName} {
		for i, re := range reCarriers {
			if re.MatchString(src) {
				return knownCarriers[i]
			}
		}
	}
	return ""
}

// FindTimes returns every HH:MM (or HHhMM) time in document order.
func FindTimes(text string) []string {
	var out []string
	for _, m := range reTime.FindAllStringSubmatch(text, -1) {
		h, _ := strconv.Atoi(m[1])
		out = append(out, fmt.Sprintf("%02d:%s", h, m[2]))
	}
	return out
}

func ExtractTravelerName(text string) string {
	if m := reTravelerName.FindStringSubmatch(text); m != nil {
		return CleanToken(m[1])
	}
	return ""
}

// ExtractPoints reads a loyalty points or miles amount.
func ExtractPoints(text string) *int64 {
	m := rePoints.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.ParseInt(reDigitsOnly.ReplaceAllString(m[1], ""), 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

type keywordRule struct {
	re    *regexp.Regexp
	value string
}

// keyword rules run over folded text, first match wins.
func matchKeyword(rules []keywordRule, text string) string {
	s := fold(text)
	for _, r := range rules {
		if r.re.MatchString(s) {
			return r.value
		}
	}
	return ""
}

var paymentRules = []keywordRule{
	{regexp.MustCompile(`\bpix\b`), "PIX"},
	{regexp.MustCompile(`\bboleto\b`), "BOLETO"},
	{regexp.MustCompile(`\b(cartao de debito|debit card|debito)\b`), "DEBIT_CARD"},
	{regexp.MustCompile(`\b(cartao de credito|credit card|credito|visa|mastercard|amex|elo)\b`), "CREDIT_CARD"},
	{regexp.MustCompile(`\b(dinheiro|cash|especie)\b`), "CASH"},
}

// ExtractPaymentMethod maps payment wording to CREDIT_CARD, DEBIT_CARD, PIX, BOLETO or CASH.
func ExtractPaymentMethod(text string) string {
	return matchKeyword(paymentRules, text)
}

var statusRules = []keywordRule{
	{regexp.MustCompile(`\b(cancelad[oa]|cancell?ed)\b`), "cancelled"},
	{regexp.MustCompile(`\b(pendente|pending|aguardando pagamento)\b`), "pending"},
	{regexp.MustCompile(`\b(confirmad[oa]|confirmed|emitid[oa]|issued)\b`), "confirmed"},
}

func ExtractStatus(text string) string {
	return matchKeyword(statusRules, text)
}

var transportKindRules = []keywordRule{
	{regexp.MustCompile(`\b(trem|train|rail)\b`), "train"},
	{regexp.MustCompile(`\b(onibus|bus|rodoviaria|coach)\b`), "bus"},
	{regexp.MustCompile(`\b(aluguel de carro|locacao de veiculo|locadora|car rental|rental car)\b`), "car_rental"},
	{regexp.MustCompile(`\b(balsa|ferry|barco)\b`), "ferry"},
	{regexp.MustCompile(`\b(transfer|translado|traslado)\b`), "transfer"},
	{regexp.MustCompile(`\b(uber|taxi|99pop|cabify)\b`), "ride"},
}

func ExtractTransportKind(text string) string {
	return matchKeyword(transportKindRules, text)
}

var knownOperators = []string{
	"Uber", "99", "Cabify", "Localiza", "Movida", "Unidas", "Hertz", "Avis",
	"FlixBus", "Buser", "Cometa", "Catarinense", "Trenitalia", "Renfe", "SNCF", "Eurostar",
}

var reOperators = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(knownOperators))
	for i, o := range knownOperators {
		out[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(o) + `\b`)
	}
	return out
}()

func ExtractOperator(text, fileName string) string {
	for _, src := range []string{text, fileName} {
		for i, re := range reOperators {
			if re.MatchString(src) {
				return knownOperators[i]
			}
		}
	}
	return ""
}
