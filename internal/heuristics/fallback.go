package heuristics

import (
	"fmt"
	"unicode/utf8"

	"github.com/joseph-ayodele/tripdocs/constants"
	"github.com/joseph-ayodele/tripdocs/internal/entity"
)

// Fixed markers of a record assembled from raw text. They signal
// "review manually", not a calibrated probability.
const (
	FallbackConfidence     = 0.4
	FallbackTypeConfidence = 0.45
	mediumQualityMinRunes  = 80
	defaultDestinationText = "seu destino"
)

var transportLabels = map[string]string{
	"train":      "Trem",
	"bus":        "Ônibus",
	"car_rental": "Aluguel de carro",
	"ferry":      "Balsa",
	"transfer":   "Transfer",
	"ride":       "Corrida",
}

// BuildFallback resolves the type from text alone and assembles a record from raw text.
func BuildFallback(text, fileName, tripDestination string) *entity.Record {
	return BuildFallbackFor(ResolveType(nil, text, fileName), text, fileName, tripDestination)
}

// BuildFallbackFor assembles a record of a caller-decided type. Fields that
// cannot be found stay empty; it never fails.
func BuildFallbackFor(typ constants.ReservationType, text, fileName, tripDestination string) *entity.Record {
	rec := &entity.Record{
		Type:           typ,
		Confidence:     FallbackConfidence,
		TypeConfidence: FallbackTypeConfidence,
		Quality:        constants.QualityLow,
		Scope:          ResolveScope(nil, text, fileName),
		Source:         constants.SourceFallback,
		NeedsReview:    true,
		MissingFields:  []string{constants.ReviewMarker},
	}
	if utf8.RuneCountInString(text) > mediumQualityMinRunes {
		rec.Quality = constants.QualityMedium
	}

	amount, currency := ExtractMoney(text)
	if currency == "" {
		currency = constants.DefaultCurrency
	}
	rec.TotalAmount = amount
	rec.Currency = currency
	rec.ReservationCode = ExtractReservationCode(text)
	rec.TravelerName = ExtractTravelerName(text)
	rec.PaymentMethod = ExtractPaymentMethod(text)
	rec.PointsUsed = ExtractPoints(text)
	rec.Status = ExtractStatus(text)

	dates := FindDates(text)
	times := FindTimes(text)
	rec.StartDate = at(dates, 0)
	rec.StartTime = at(times, 0)

	switch typ {
	case constants.Flight:
		route := ExtractRoute(text)
		f := &entity.FlightFields{
			Number:      ExtractFlightNumber(text, fileName),
			Carrier:     ExtractCarrier(text, fileName),
			Origin:      route.Origin,
			Destination: route.Destination,
			Date:        rec.StartDate,
			Status:      rec.Status,
			Amount:      copyFloat(amount),
			Currency:    currency,
		}
		rec.Details = f
	case constants.Lodging:
		location := firstNonEmpty(ExtractAddress(text), ExtractCity(text), tripDestination)
		l := &entity.LodgingFields{
			Name:     ExtractLodgingName(text),
			Location: location,
			CheckIn:  at(dates, 0),
			CheckOut: at(dates, 1),
			Status:   rec.Status,
			Amount:   copyFloat(amount),
			Currency: currency,
		}
		rec.Provider = ExtractLodgingProvider(text, fileName)
		rec.EndTime = at(times, 1)
		rec.Details = l
	case constants.Transport:
		route := ExtractRoute(text)
		t := &entity.TransportFields{
			Kind:        ExtractTransportKind(haystack(text, fileName)),
			Operator:    ExtractOperator(text, fileName),
			Origin:      route.Origin,
			Destination: route.Destination,
			Date:        rec.StartDate,
			Status:      rec.Status,
			Amount:      copyFloat(amount),
			Currency:    currency,
		}
		rec.Details = t
	case constants.Restaurant:
		r := &entity.RestaurantFields{
			Name:        ExtractRestaurantName(text),
			City:        ExtractCity(text),
			CuisineType: ExtractCuisine(text),
			Rating:      ExtractRating(text),
		}
		rec.Details = r
	}

	applyDetails(rec)
	enrich(rec, tripDestination)
	return rec
}

// applyDetails projects the type variant onto the principal fields, keeping
// values that are already set.
func applyDetails(rec *entity.Record) {
	switch d := rec.Details.(type) {
	case *entity.FlightFields:
		rec.Provider = firstNonEmpty(rec.Provider, d.Carrier)
		rec.Origin = firstNonEmpty(rec.Origin, d.Origin)
		rec.Destination = firstNonEmpty(rec.Destination, d.Destination)
		rec.StartDate = firstNonEmpty(rec.StartDate, d.Date)
		rec.DisplayName = firstNonEmpty(rec.DisplayName, flightName(d))
		applyMoney(rec, d.Amount, d.Currency)
		rec.Status = firstNonEmpty(rec.Status, d.Status)
	case *entity.LodgingFields:
		rec.DisplayName = firstNonEmpty(rec.DisplayName, d.Name)
		rec.Destination = firstNonEmpty(rec.Destination, d.Location)
		rec.StartDate = firstNonEmpty(rec.StartDate, d.CheckIn)
		rec.EndDate = firstNonEmpty(rec.EndDate, d.CheckOut)
		applyMoney(rec, d.Amount, d.Currency)
		rec.Status = firstNonEmpty(rec.Status, d.Status)
	case *entity.TransportFields:
		rec.Provider = firstNonEmpty(rec.Provider, d.Operator)
		rec.Origin = firstNonEmpty(rec.Origin, d.Origin)
		rec.Destination = firstNonEmpty(rec.Destination, d.Destination)
		rec.StartDate = firstNonEmpty(rec.StartDate, d.Date)
		rec.DisplayName = firstNonEmpty(rec.DisplayName, transportName(d))
		applyMoney(rec, d.Amount, d.Currency)
		rec.Status = firstNonEmpty(rec.Status, d.Status)
	case *entity.RestaurantFields:
		rec.DisplayName = firstNonEmpty(rec.DisplayName, d.Name)
		rec.Destination = firstNonEmpty(rec.Destination, d.City)
	}
}

func applyMoney(rec *entity.Record, amount *float64, currency string) {
	if !entity.IsFinite(rec.TotalAmount) && entity.IsFinite(amount) {
		v := *amount
		rec.TotalAmount = &v
	}
	rec.Currency = firstNonEmpty(rec.Currency, currency)
}

// flightName is built from the flight number only, since a display name counts
// as a flight identifier.
func flightName(f *entity.FlightFields) string {
	if f.Number == "" {
		return ""
	}
	return "Voo " + f.Number
}

func transportName(t *entity.TransportFields) string {
	label := transportLabels[t.Kind]
	if t.Origin != "" && t.Destination != "" {
		if label == "" {
			label = "Transporte"
		}
		return label + " " + t.Origin + " → " + t.Destination
	}
	return label
}

// enrich fills the generic suggestion texts. They name the destination and nothing else.
func enrich(rec *entity.Record, tripDestination string) {
	dest := firstNonEmpty(tripDestination, rec.Destination, defaultDestinationText)
	rec.Tips = firstNonEmpty(rec.Tips, fmt.Sprintf("Revise os dados da reserva e os documentos de viagem para %s.", dest))
	rec.Directions = firstNonEmpty(rec.Directions, fmt.Sprintf("Planeje o deslocamento até %s com antecedência.", dest))
	rec.NearbyAttractions = firstNonEmpty(rec.NearbyAttractions, fmt.Sprintf("Pesquise atrações próximas em %s.", dest))
	rec.NearbyRestaurants = firstNonEmpty(rec.NearbyRestaurants, fmt.Sprintf("Pesquise restaurantes bem avaliados em %s.", dest))
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}
