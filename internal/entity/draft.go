package entity

import (
	"math"
	"strings"

	"github.com/joseph-ayodele/tripdocs/constants"
)

// WeakDraft is the optional, possibly incomplete guess of the AI extraction step.
// JSON keys follow the wire contract of the extraction prompt.
type WeakDraft struct {
	Type          constants.ReservationType `json:"tipo,omitempty"`
	Scope         constants.Scope           `json:"escopo,omitempty"`
	Confidence    float64                   `json:"confianca,omitempty"`
	MissingFields []string                  `json:"campos_faltantes,omitempty"`

	Flight     *FlightFields     `json:"voo,omitempty"`
	Lodging    *LodgingFields    `json:"hospedagem,omitempty"`
	Transport  *TransportFields  `json:"transporte,omitempty"`
	Restaurant *RestaurantFields `json:"restaurante,omitempty"`
}

type FlightFields struct {
	Number      string   `json:"numero,omitempty"`
	Carrier     string   `json:"companhia,omitempty"`
	Origin      string   `json:"origem,omitempty"`
	Destination string   `json:"destino,omitempty"`
	Date        string   `json:"data,omitempty"`
	Status      string   `json:"status,omitempty"`
	Amount      *float64 `json:"valor,omitempty"`
	Currency    string   `json:"moeda,omitempty"`
}

type LodgingFields struct {
	Name     string   `json:"nome,omitempty"`
	Location string   `json:"localizacao,omitempty"`
	CheckIn  string   `json:"check_in,omitempty"`
	CheckOut string   `json:"check_out,omitempty"`
	Status   string   `json:"status,omitempty"`
	Amount   *float64 `json:"valor,omitempty"`
	Currency string   `json:"moeda,omitempty"`
}

type TransportFields struct {
	Kind        string   `json:"tipo,omitempty"`
	Operator    string   `json:"operadora,omitempty"`
	Origin      string   `json:"origem,omitempty"`
	Destination string   `json:"destino,omitempty"`
	Date        string   `json:"data,omitempty"`
	Status      string   `json:"status,omitempty"`
	Amount      *float64 `json:"valor,omitempty"`
	Currency    string   `json:"moeda,omitempty"`
}

type RestaurantFields struct {
	Name        string   `json:"nome,omitempty"`
	City        string   `json:"cidade,omitempty"`
	CuisineType string   `json:"tipo_culinaria,omitempty"`
	Rating      *float64 `json:"avaliacao,omitempty"`
}

// IdentityScore counts populated identity fields: number, carrier, origin, destination, date, amount.
func (f *FlightFields) IdentityScore() int {
	if f == nil {
		return 0
	}
	return countSet(f.Number, f.Carrier, f.Origin, f.Destination, f.Date) + countFinite(f.Amount)
}

// IdentityScore counts populated identity fields: name, location, check-in, check-out, amount.
func (f *LodgingFields) IdentityScore() int {
	if f == nil {
		return 0
	}
	return countSet(f.Name, f.Location, f.CheckIn, f.CheckOut) + countFinite(f.Amount)
}

// IdentityScore counts populated identity fields: kind, operator, origin, destination, date, amount.
func (f *TransportFields) IdentityScore() int {
	if f == nil {
		return 0
	}
	return countSet(f.Kind, f.Operator, f.Origin, f.Destination, f.Date) + countFinite(f.Amount)
}

// IdentityScore counts populated identity fields: name, city, cuisine type, rating.
func (f *RestaurantFields) IdentityScore() int {
	if f == nil {
		return 0
	}
	return countSet(f.Name, f.City, f.CuisineType) + countFinite(f.Rating)
}

// IdentityScore returns the identity score of the bag for t.
func (d *WeakDraft) IdentityScore(t constants.ReservationType) int {
	if d == nil {
		return 0
	}
	switch t {
	case constants.Flight:
		return d.Flight.IdentityScore()
	case constants.Lodging:
		return d.Lodging.IdentityScore()
	case constants.Transport:
		return d.Transport.IdentityScore()
	case constants.Restaurant:
		return d.Restaurant.IdentityScore()
	default:
		return 0
	}
}

// Empty reports whether no bag carries a single identity field.
// An empty draft is treated as absent.
func (d *WeakDraft) Empty() bool {
	if d == nil {
		return true
	}
	for _, t := range constants.ReservationTypes {
		if d.IdentityScore(t) > 0 {
			return false
		}
	}
	return true
}

// Details returns the bag for t as a record variant, or nil when the bag is absent.
func (d *WeakDraft) Details(t constants.ReservationType) Details {
	if d == nil {
		return nil
	}
	switch t {
	case constants.Flight:
		if d.Flight != nil {
			v := *d.Flight
			return &v
		}
	case constants.Lodging:
		if d.Lodging != nil {
			v := *d.Lodging
			return &v
		}
	case constants.Transport:
		if d.Transport != nil {
			v := *d.Transport
			return &v
		}
	case constants.Restaurant:
		if d.Restaurant != nil {
			v := *d.Restaurant
			return &v
		}
	}
	return nil
}

func countSet(values ...string) int {
	n := 0
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}

func countFinite(values ...*float64) int {
	n := 0
	for _, v := range values {
		if IsFinite(v) {
			n++
		}
	}
	return n
}

// IsFinite reports whether p holds a usable number.
func IsFinite(p *float64) bool {
	return p != nil && !math.IsNaN(*p) && !math.IsInf(*p, 0)
}
