package heuristics

import (
	"strings"

	"github.com/joseph-ayodele/tripdocs/constants"
	"github.com/joseph-ayodele/tripdocs/internal/entity"
)

type fieldCheck struct {
	field   string
	present func(r *entity.Record) bool
}

// requiredFields is the checklist per type, in reporting order.
var requiredFields = map[constants.ReservationType][]fieldCheck{
	constants.Flight: {
		{"origem", func(r *entity.Record) bool {
			return set(r.Origin) || set(flight(r).Origin)
		}},
		{"destino", func(r *entity.Record) bool {
			return set(r.Destination) || set(flight(r).Destination)
		}},
		{"data", func(r *entity.Record) bool {
			return set(r.StartDate) || set(flight(r).Date)
		}},
		// any one identifier is enough
		{"identificador", func(r *entity.Record) bool {
			return set(r.ReservationCode) || set(flight(r).Number) || set(r.DisplayName)
		}},
	},
	constants.Lodging: {
		{"nome", func(r *entity.Record) bool {
			return set(r.DisplayName) || set(lodging(r).Name)
		}},
		{"check_in", func(r *entity.Record) bool {
			return set(r.StartDate) || set(lodging(r).CheckIn)
		}},
		{"check_out", func(r *entity.Record) bool {
			return set(r.EndDate) || set(lodging(r).CheckOut)
		}},
		{"valor", func(r *entity.Record) bool {
			return entity.IsFinite(r.TotalAmount) || entity.IsFinite(lodging(r).Amount)
		}},
	},
	constants.Transport: {
		{"origem", func(r *entity.Record) bool {
			return set(r.Origin) || set(transport(r).Origin)
		}},
		{"destino", func(r *entity.Record) bool {
			return set(r.Destination) || set(transport(r).Destination)
		}},
		{"data", func(r *entity.Record) bool {
			return set(r.StartDate) || set(transport(r).Date)
		}},
	},
	constants.Restaurant: {
		{"nome", func(r *entity.Record) bool {
			return set(r.DisplayName) || set(restaurant(r).Name)
		}},
		{"cidade", func(r *entity.Record) bool {
			return set(restaurant(r).City) || set(r.Destination)
		}},
	},
}

// ComputeMissing lists required fields absent for typ as "<bag>.<field>" keys.
// Out-of-scope documents never have missing fields.
func ComputeMissing(typ constants.ReservationType, rec *entity.Record, scope constants.Scope) []string {
	out := []string{}
	if scope == constants.ScopeOutsideScope || rec == nil || !typ.Valid() {
		return out
	}
	for _, check := range requiredFields[typ] {
		if !check.present(rec) {
			out = append(out, typ.BagKey()+"."+check.field)
		}
	}
	return out
}

// MergeMissing keeps existing entries that are neither type-prefixed nor the
// review marker, unions them with computed and drops duplicates. Computed
// entries come first.
func MergeMissing(existing, computed []string) []string {
	out := make([]string, 0, len(existing)+len(computed))
	seen := make(map[string]struct{}, len(existing)+len(computed))
	add := func(k string) {
		if _, ok := seen[k]; ok || k == "" {
			return
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	for _, k := range computed {
		add(strings.TrimSpace(k))
	}
	for _, k := range existing {
		k = strings.TrimSpace(k)
		if k == constants.ReviewMarker || isTypePrefixed(k) {
			continue
		}
		add(k)
	}
	return out
}

func isTypePrefixed(key string) bool {
	for _, bag := range constants.BagKeys() {
		if strings.HasPrefix(key, bag+".") {
			return true
		}
	}
	return false
}

func set(s string) bool { return strings.TrimSpace(s) != "" }

// The accessors return a zero variant so checks can read fields unconditionally.
func flight(r *entity.Record) *entity.FlightFields {
	if f := r.Flight(); f != nil {
		return f
	}
	return &entity.FlightFields{}
}

func lodging(r *entity.Record) *entity.LodgingFields {
	if l := r.Lodging(); l != nil {
		return l
	}
	return &entity.LodgingFields{}
}

func transport(r *entity.Record) *entity.TransportFields {
	if t := r.Transport(); t != nil {
		return t
	}
	return &entity.TransportFields{}
}

func restaurant(r *entity.Record) *entity.RestaurantFields {
	if x := r.Restaurant(); x != nil {
		return x
	}
	return &entity.RestaurantFields{}
}
