package heuristics

import (
	"strings"

	"github.com/joseph-ayodele/tripdocs/constants"
	"github.com/joseph-ayodele/tripdocs/internal/entity"
)

const (
	// ReviewThreshold is the confidence under which a promoted draft needs review.
	ReviewThreshold        = 0.6
	defaultDraftConfidence = 0.5
)

// QualityFor maps a confidence to the coarse extraction quality label.
func QualityFor(confidence float64) constants.ExtractionQuality {
	switch {
	case confidence >= 0.8:
		return constants.QualityHigh
	case confidence >= 0.5:
		return constants.QualityMedium
	default:
		return constants.QualityLow
	}
}

// IsSparse reports whether a draft is too thin to promote for typ.
func IsSparse(draft *entity.WeakDraft, typ constants.ReservationType, minFields int) bool {
	return draft.Empty() || draft.IdentityScore(typ) < minFields
}

// PromoteDraft builds the canonical record from a draft bag. Gaps are filled
// from the raw text without changing the draft's confidence.
func PromoteDraft(draft *entity.WeakDraft, typ constants.ReservationType, doc entity.RawDocument, tripDestination string) *entity.Record {
	if draft == nil {
		draft = &entity.WeakDraft{}
	}
	conf := clamp01(draft.Confidence)
	if conf == 0 {
		conf = defaultDraftConfidence
	}
	typeConf := conf
	if draft.Type != typ {
		typeConf = FallbackTypeConfidence
	}

	rec := &entity.Record{
		Type:           typ,
		Confidence:     conf,
		TypeConfidence: typeConf,
		Quality:        QualityFor(conf),
		Scope:          draft.Scope,
		Source:         constants.SourceDraft,
		NeedsReview:    conf < ReviewThreshold,
		MissingFields:  append([]string{}, draft.MissingFields...),
	}
	details := draft.Details(typ)
	if details == nil {
		details = emptyDetails(typ)
	}
	normalizeDetails(details)
	rec.Details = details
	applyDetails(rec)

	fillGaps(rec, BuildFallbackFor(typ, doc.Text, doc.FileName, tripDestination))
	return rec
}

// Retype moves a record to a user-selected type, rebuilding the variant from
// the principal fields. The input is not modified.
func Retype(rec *entity.Record, typ constants.ReservationType) *entity.Record {
	out := rec.Clone()
	if out == nil || out.Type == typ {
		return out
	}
	out.Type = typ
	out.TypeConfidence = 1
	out.Details = detailsFromPrincipal(out, typ, out.Details)
	return out
}

func emptyDetails(typ constants.ReservationType) entity.Details {
	switch typ {
	case constants.Flight:
		return &entity.FlightFields{}
	case constants.Lodging:
		return &entity.LodgingFields{}
	case constants.Transport:
		return &entity.TransportFields{}
	default:
		return &entity.RestaurantFields{}
	}
}

// detailsFromPrincipal carries shared values across variants; a previous
// variant contributes its name when the display name is blank.
func detailsFromPrincipal(rec *entity.Record, typ constants.ReservationType, prev entity.Details) entity.Details {
	name := rec.DisplayName
	if name == "" {
		switch p := prev.(type) {
		case *entity.LodgingFields:
			name = p.Name
		case *entity.RestaurantFields:
			name = p.Name
		}
	}
	switch typ {
	case constants.Flight:
		f := &entity.FlightFields{
			Carrier:     rec.Provider,
			Origin:      rec.Origin,
			Destination: rec.Destination,
			Date:        rec.StartDate,
			Status:      rec.Status,
			Amount:      copyFloat(rec.TotalAmount),
			Currency:    rec.Currency,
		}
		if p, ok := prev.(*entity.FlightFields); ok {
			f.Number = p.Number
		}
		return f
	case constants.Lodging:
		return &entity.LodgingFields{
			Name:     name,
			Location: rec.Destination,
			CheckIn:  rec.StartDate,
			CheckOut: rec.EndDate,
			Status:   rec.Status,
			Amount:   copyFloat(rec.TotalAmount),
			Currency: rec.Currency,
		}
	case constants.Transport:
		t := &entity.TransportFields{
			Operator:    rec.Provider,
			Origin:      rec.Origin,
			Destination: rec.Destination,
			Date:        rec.StartDate,
			Status:      rec.Status,
			Amount:      copyFloat(rec.TotalAmount),
			Currency:    rec.Currency,
		}
		if p, ok := prev.(*entity.TransportFields); ok {
			t.Kind = p.Kind
		}
		return t
	default:
		return &entity.RestaurantFields{
			Name: name,
			City: rec.Destination,
		}
	}
}

// normalizeDetails trims strings and rewrites dates to YYYY-MM-DD, dropping
// the ones that cannot be read.
func normalizeDetails(d entity.Details) {
	switch v := d.(type) {
	case *entity.FlightFields:
		trimAll(&v.Number, &v.Carrier, &v.Origin, &v.Destination, &v.Status, &v.Currency)
		v.Date = normalizeOrDrop(v.Date)
		v.Currency = strings.ToUpper(v.Currency)
	case *entity.LodgingFields:
		trimAll(&v.Name, &v.Location, &v.Status, &v.Currency)
		v.CheckIn = normalizeOrDrop(v.CheckIn)
		v.CheckOut = normalizeOrDrop(v.CheckOut)
		v.Currency = strings.ToUpper(v.Currency)
	case *entity.TransportFields:
		trimAll(&v.Kind, &v.Operator, &v.Origin, &v.Destination, &v.Status, &v.Currency)
		v.Date = normalizeOrDrop(v.Date)
		v.Currency = strings.ToUpper(v.Currency)
	case *entity.RestaurantFields:
		trimAll(&v.Name, &v.City, &v.CuisineType)
	}
}

func normalizeOrDrop(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	iso, ok := NormalizeDate(s)
	if !ok {
		return ""
	}
	return iso
}

func trimAll(values ...*string) {
	for _, v := range values {
		*v = strings.TrimSpace(*v)
	}
}

// fillGaps copies text-derived values into fields the draft left blank.
func fillGaps(rec, fb *entity.Record) {
	rec.DisplayName = firstNonEmpty(rec.DisplayName, fb.DisplayName)
	rec.Provider = firstNonEmpty(rec.Provider, fb.Provider)
	rec.ReservationCode = firstNonEmpty(rec.ReservationCode, fb.ReservationCode)
	rec.TravelerName = firstNonEmpty(rec.TravelerName, fb.TravelerName)
	rec.StartDate = firstNonEmpty(rec.StartDate, fb.StartDate)
	rec.StartTime = firstNonEmpty(rec.StartTime, fb.StartTime)
	rec.EndDate = firstNonEmpty(rec.EndDate, fb.EndDate)
	rec.EndTime = firstNonEmpty(rec.EndTime, fb.EndTime)
	rec.Origin = firstNonEmpty(rec.Origin, fb.Origin)
	rec.Destination = firstNonEmpty(rec.Destination, fb.Destination)
	rec.Status = firstNonEmpty(rec.Status, fb.Status)
	applyMoney(rec, fb.TotalAmount, fb.Currency)
	rec.PaymentMethod = firstNonEmpty(rec.PaymentMethod, fb.PaymentMethod)
	if rec.PointsUsed == nil && fb.PointsUsed != nil {
		v := *fb.PointsUsed
		rec.PointsUsed = &v
	}
	rec.Tips = firstNonEmpty(rec.Tips, fb.Tips)
	rec.Directions = firstNonEmpty(rec.Directions, fb.Directions)
	rec.NearbyAttractions = firstNonEmpty(rec.NearbyAttractions, fb.NearbyAttractions)
	rec.NearbyRestaurants = firstNonEmpty(rec.NearbyRestaurants, fb.NearbyRestaurants)
	if rec.Scope == constants.ScopeUnknown {
		rec.Scope = fb.Scope
	}
	fillDetailGaps(rec.Details, fb.Details)
}

func fillDetailGaps(dst, src entity.Details) {
	switch d := dst.(type) {
	case *entity.FlightFields:
		s, ok := src.(*entity.FlightFields)
		if !ok {
			return
		}
		d.Number = firstNonEmpty(d.Number, s.Number)
		d.Carrier = firstNonEmpty(d.Carrier, s.Carrier)
		d.Origin = firstNonEmpty(d.Origin, s.Origin)
		d.Destination = firstNonEmpty(d.Destination, s.Destination)
		d.Date = firstNonEmpty(d.Date, s.Date)
		d.Status = firstNonEmpty(d.Status, s.Status)
		if !entity.IsFinite(d.Amount) {
			d.Amount = copyFloat(s.Amount)
		}
		d.Currency = firstNonEmpty(d.Currency, s.Currency)
	case *entity.LodgingFields:
		s, ok := src.(*entity.LodgingFields)
		if !ok {
			return
		}
		d.Name = firstNonEmpty(d.Name, s.Name)
		d.Location = firstNonEmpty(d.Location, s.Location)
		d.CheckIn = firstNonEmpty(d.CheckIn, s.CheckIn)
		d.CheckOut = firstNonEmpty(d.CheckOut, s.CheckOut)
		d.Status = firstNonEmpty(d.Status, s.Status)
		if !entity.IsFinite(d.Amount) {
			d.Amount = copyFloat(s.Amount)
		}
		d.Currency = firstNonEmpty(d.Currency, s.Currency)
	case *entity.TransportFields:
		s, ok := src.(*entity.TransportFields)
		if !ok {
			return
		}
		d.Kind = firstNonEmpty(d.Kind, s.Kind)
		d.Operator = firstNonEmpty(d.Operator, s.Operator)
		d.Origin = firstNonEmpty(d.Origin, s.Origin)
		d.Destination = firstNonEmpty(d.Destination, s.Destination)
		d.Date = firstNonEmpty(d.Date, s.Date)
		d.Status = firstNonEmpty(d.Status, s.Status)
		if !entity.IsFinite(d.Amount) {
			d.Amount = copyFloat(s.Amount)
		}
		d.Currency = firstNonEmpty(d.Currency, s.Currency)
	case *entity.RestaurantFields:
		s, ok := src.(*entity.RestaurantFields)
		if !ok {
			return
		}
		d.Name = firstNonEmpty(d.Name, s.Name)
		d.City = firstNonEmpty(d.City, s.City)
		d.CuisineType = firstNonEmpty(d.CuisineType, s.CuisineType)
		if !entity.IsFinite(d.Rating) {
			d.Rating = copyFloat(s.Rating)
		}
	}
}

func clamp01(v float64) float64 {
	switch {
	case v != v, v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
