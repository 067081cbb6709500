package heuristics

import (
	"regexp"
)

var (
	reLodgingLabel  = regexp.MustCompile(`(?im)^[ \t]*(?:hotel|pousada|hospedagem|acomoda[cç][aã]o|propriedade|property|accommodation)[ \t]*:[ \t]*(.+?)[ \t]*$`)
	reLodgingPhrase = regexp.MustCompile(`\b((?:Hotel|Pousada|Hostel|Resort|Inn|Apart Hotel)(?:[ \t]+(?:de|do|da|das|dos|&)?[ \t]*\p{Lu}[\p{L}'&.\-]*)+)`)
	reAddressLabel  = regexp.MustCompile(`(?im)^[ \t]*(?:endere[cç]o|address|localiza[cç][aã]o|location)[ \t]*:[ \t]*(.+?)[ \t]*$`)
	reCityLabel     = regexp.MustCompile(`(?im)^[ \t]*(?:cidade|city)[ \t]*:[ \t]*(.+?)[ \t]*$`)

	reRestaurantLabel  = regexp.MustCompile(`(?im)^[ \t]*(?:restaurante|restaurant)[ \t]*:[ \t]*(.+?)[ \t]*$`)
	reRestaurantAt     = regexp.MustCompile(`\b(?i:reservation at|reserva (?:no|na|em|para o|para a))[ \t]+(` + cityName + `)`)
	reRestaurantPhrase = regexp.MustCompile(`\b(?:Restaurante|Restaurant|Churrascaria|Pizzaria|Trattoria|Bistr[oô])[ \t]+(` + cityName + `)`)
	reRating           = regexp.MustCompile(`(?i)\b(?:nota|rating|avalia[cç][aã]o)[ \t]*:?[ \t]*(\d{1,2}(?:[.,]\d)?)\b`)
)

var lodgingProviderRules = []keywordRule{
	{regexp.MustCompile(`\bairbnb\b`), "Airbnb"},
	{regexp.MustCompile(`\bbooking(\.com)?\b`), "Booking.com"},
	{regexp.MustCompile(`\bexpedia\b`), "Expedia"},
	{regexp.MustCompile(`\bdecolar\b`), "Decolar"},
	{regexp.MustCompile(`\b(hoteis|hotels)\.com\b`), "Hotels.com"},
}

var cuisineRules = []keywordRule{
	{regexp.MustCompile(`\b(japones[a]?|japanese|sushi)\b`), "japanese"},
	{regexp.MustCompile(`\b(italian[oa]?|italian|trattoria|pizzaria|pizza)\b`), "italian"},
	{regexp.MustCompile(`\b(churrascaria|steakhouse|parrilla)\b`), "steakhouse"},
	{regexp.MustCompile(`\b(frutos do mar|seafood|peixaria)\b`), "seafood"},
	{regexp.MustCompile(`\b(frances[a]?|french|bistro)\b`), "french"},
	{regexp.MustCompile(`\b(vegetarian[oa]?|vegan[oa]?|vegetarian)\b`), "vegetarian"},
	{regexp.MustCompile(`\b(brasileir[oa]|brazilian|mineira|baiana)\b`), "brazilian"},
}

// ExtractLodgingName prefers a labeled property name, then a "Hotel X" style phrase.
func ExtractLodgingName(text string) string {
	if m := reLodgingLabel.FindStringSubmatch(text); m != nil {
		return CleanToken(m[1])
	}
	if m := reLodgingPhrase.FindStringSubmatch(text); m != nil {
		return CleanToken(m[1])
	}
	return ""
}

func ExtractLodgingProvider(text, fileName string) string {
	return matchKeyword(lodgingProviderRules, haystack(text, fileName))
}

func ExtractAddress(text string) string {
	if m := reAddressLabel.FindStringSubmatch(text); m != nil {
		return CleanToken(m[1])
	}
	return ""
}

func ExtractCity(text string) string {
	if m := reCityLabel.FindStringSubmatch(text); m != nil {
		return CleanToken(m[1])
	}
	return ""
}

// ExtractRestaurantName tries a label, then "reservation at X", then "Restaurante X".
func ExtractRestaurantName(text string) string {
	for _, re := range []*regexp.Regexp{reRestaurantLabel, reRestaurantAt, reRestaurantPhrase} {
		if m := re.FindStringSubmatch(text); m != nil {
			if name := CleanToken(m[1]); name != "" {
				return name
			}
		}
	}
	return ""
}

func ExtractCuisine(text string) string {
	return matchKeyword(cuisineRules, text)
}

func ExtractRating(text string) *float64 {
	m := reRating.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v, ok := ParseAmount(m[1])
	if !ok {
		return nil
	}
	return &v
}
