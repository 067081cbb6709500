package entity

import (
	"encoding/json"
	"fmt"

	"github.com/joseph-ayodele/tripdocs/constants"
)

// Details is the type-specific part of a record. Exactly one variant exists per
// reservation type: *FlightFields, *LodgingFields, *TransportFields, *RestaurantFields.
type Details interface {
	ReservationType() constants.ReservationType
	details()
}

func (*FlightFields) ReservationType() constants.ReservationType     { return constants.Flight }
func (*LodgingFields) ReservationType() constants.ReservationType    { return constants.Lodging }
func (*TransportFields) ReservationType() constants.ReservationType  { return constants.Transport }
func (*RestaurantFields) ReservationType() constants.ReservationType { return constants.Restaurant }

func (*FlightFields) details()     {}
func (*LodgingFields) details()    {}
func (*TransportFields) details()  {}
func (*RestaurantFields) details() {}

// Record is the canonical reservation surfaced for human review, built either by
// promoting a weak draft or by the fallback builder.
type Record struct {
	// metadata
	Type           constants.ReservationType   `json:"type"`
	Confidence     float64                     `json:"confidence"`      // 0..1
	TypeConfidence float64                     `json:"type_confidence"` // 0..1
	Quality        constants.ExtractionQuality `json:"extraction_quality"`
	Status         string                      `json:"status,omitempty"` // reservation status as printed on the document
	Scope          constants.Scope             `json:"scope"`
	Source         constants.RecordSource      `json:"source"`
	NeedsReview    bool                        `json:"needs_review"`

	// principal
	DisplayName     string `json:"display_name,omitempty"`
	Provider        string `json:"provider,omitempty"`
	ReservationCode string `json:"reservation_code,omitempty"`
	TravelerName    string `json:"traveler_name,omitempty"`
	StartDate       string `json:"start_date,omitempty"` // YYYY-MM-DD
	StartTime       string `json:"start_time,omitempty"` // HH:MM
	EndDate         string `json:"end_date,omitempty"`
	EndTime         string `json:"end_time,omitempty"`
	Origin          string `json:"origin,omitempty"`
	Destination     string `json:"destination,omitempty"`

	// financial
	TotalAmount   *float64 `json:"total_amount,omitempty"`
	Currency      string   `json:"currency,omitempty"`
	PaymentMethod string   `json:"payment_method,omitempty"`
	PointsUsed    *int64   `json:"points_used,omitempty"`

	// enrichment
	Tips              string `json:"tips,omitempty"`
	Directions        string `json:"directions,omitempty"`
	NearbyAttractions string `json:"nearby_attractions,omitempty"`
	NearbyRestaurants string `json:"nearby_restaurants,omitempty"`

	Details       Details  `json:"details,omitempty"`
	MissingFields []string `json:"missing_fields"`
}

// Clone returns a deep copy so callers can edit without touching shared state.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := *r
	if r.TotalAmount != nil {
		v := *r.TotalAmount
		c.TotalAmount = &v
	}
	if r.PointsUsed != nil {
		v := *r.PointsUsed
		c.PointsUsed = &v
	}
	c.MissingFields = append([]string(nil), r.MissingFields...)
	c.Details = cloneDetails(r.Details)
	return &c
}

func cloneDetails(d Details) Details {
	switch v := d.(type) {
	case *FlightFields:
		c := *v
		c.Amount = cloneFloat(v.Amount)
		return &c
	case *LodgingFields:
		c := *v
		c.Amount = cloneFloat(v.Amount)
		return &c
	case *TransportFields:
		c := *v
		c.Amount = cloneFloat(v.Amount)
		return &c
	case *RestaurantFields:
		c := *v
		c.Rating = cloneFloat(v.Rating)
		return &c
	default:
		return nil
	}
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Flight returns the flight variant, or nil.
func (r *Record) Flight() *FlightFields {
	v, _ := r.Details.(*FlightFields)
	return v
}

func (r *Record) Lodging() *LodgingFields {
	v, _ := r.Details.(*LodgingFields)
	return v
}

func (r *Record) Transport() *TransportFields {
	v, _ := r.Details.(*TransportFields)
	return v
}

func (r *Record) Restaurant() *RestaurantFields {
	v, _ := r.Details.(*RestaurantFields)
	return v
}

// EncodeDetails marshals a variant; nil encodes as nil.
func EncodeDetails(d Details) ([]byte, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

// DecodeDetails rebuilds the variant for kind from raw JSON.
func DecodeDetails(kind constants.ReservationType, raw []byte) (Details, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var d Details
	switch kind {
	case constants.Flight:
		d = &FlightFields{}
	case constants.Lodging:
		d = &LodgingFields{}
	case constants.Transport:
		d = &TransportFields{}
	case constants.Restaurant:
		d = &RestaurantFields{}
	default:
		return nil, fmt.Errorf("unknown reservation type %q", kind)
	}
	if err := json.Unmarshal(raw, d); err != nil {
		return nil, fmt.Errorf("decode %s details: %w", kind, err)
	}
	return d, nil
}

// UnmarshalJSON resolves the details variant from the record type.
func (r *Record) UnmarshalJSON(b []byte) error {
	type plain Record
	var aux struct {
		plain
		Details json.RawMessage `json:"details,omitempty"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	d, err := DecodeDetails(aux.Type, aux.Details)
	if err != nil {
		return err
	}
	*r = Record(aux.plain)
	r.Details = d
	return nil
}
