package heuristics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/tripdocs/constants"
	"github.com/joseph-ayodele/tripdocs/internal/entity"
	"github.com/joseph-ayodele/tripdocs/internal/heuristics"
)

func TestComputeMissing(t *testing.T) {
	tests := []struct {
		name  string
		typ   constants.ReservationType
		rec   *entity.Record
		scope constants.Scope
		want  []string
	}{
		{
			name:  "outside scope is always empty",
			typ:   constants.Flight,
			rec:   &entity.Record{},
			scope: constants.ScopeOutsideScope,
			want:  []string{},
		},
		{
			name:  "nil record",
			typ:   constants.Flight,
			scope: constants.ScopeTripRelated,
			want:  []string{},
		},
		{
			name:  "empty flight",
			typ:   constants.Flight,
			rec:   &entity.Record{},
			scope: constants.ScopeTripRelated,
			want:  []string{"voo.origem", "voo.destino", "voo.data", "voo.identificador"},
		},
		{
			name: "reservation code is an identifier",
			typ:  constants.Flight,
			rec: &entity.Record{
				ReservationCode: "ABC123",
				Details:         &entity.FlightFields{Origin: "FLN", Destination: "GRU", Date: "2026-04-02"},
			},
			scope: constants.ScopeTripRelated,
			want:  []string{},
		},
		{
			name:  "lodging partially filled",
			typ:   constants.Lodging,
			rec:   &entity.Record{StartDate: "2026-05-10"},
			scope: constants.ScopeUnknown,
			want:  []string{"hospedagem.nome", "hospedagem.check_out", "hospedagem.valor"},
		},
		{
			name:  "transport from principal fields",
			typ:   constants.Transport,
			rec:   &entity.Record{Origin: "Curitiba", StartDate: "2026-07-15"},
			scope: constants.ScopeTripRelated,
			want:  []string{"transporte.destino"},
		},
		{
			name:  "restaurant city from destination",
			typ:   constants.Restaurant,
			rec:   &entity.Record{Destination: "São Paulo"},
			scope: constants.ScopeTripRelated,
			want:  []string{"restaurante.nome"},
		},
		{
			name:  "restaurant without city",
			typ:   constants.Restaurant,
			rec:   &entity.Record{DisplayName: "Fasano", Details: &entity.RestaurantFields{Name: "Fasano"}},
			scope: constants.ScopeTripRelated,
			want:  []string{"restaurante.cidade"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, heuristics.ComputeMissing(tt.typ, tt.rec, tt.scope))
		})
	}
}

func TestMergeMissing(t *testing.T) {
	got := heuristics.MergeMissing(
		[]string{"hospedagem.nome", constants.ReviewMarker, "documento.legivel", " "},
		[]string{"voo.origem", "voo.origem", "voo.data"},
	)
	assert.Equal(t, []string{"voo.origem", "voo.data", "documento.legivel"}, got)

	assert.Equal(t, []string{"observacao"}, heuristics.MergeMissing([]string{"observacao", "observacao"}, nil))
	assert.Empty(t, heuristics.MergeMissing(nil, nil))
}
