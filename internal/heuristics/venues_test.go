package heuristics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/tripdocs/internal/heuristics"
)

func TestVenues(t *testing.T) {
	t.Run("lodging name from label", func(t *testing.T) {
		assert.Equal(t, "Pousada do Sol", heuristics.ExtractLodgingName("Hotel: Pousada do Sol\nCheck-in 12/03"))
	})
	t.Run("lodging name from phrase", func(t *testing.T) {
		assert.Equal(t, "Hotel Copacabana Palace", heuristics.ExtractLodgingName("Sua reserva no Hotel Copacabana Palace está confirmada"))
	})
	t.Run("no lodging name", func(t *testing.T) {
		assert.Empty(t, heuristics.ExtractLodgingName("nada aqui"))
	})
	t.Run("lodging provider", func(t *testing.T) {
		assert.Equal(t, "Airbnb", heuristics.ExtractLodgingProvider("Reserva confirmada", "airbnb-recibo.pdf"))
	})
	t.Run("address and city labels", func(t *testing.T) {
		text := "Endereço: Rua das Flores, 100\nCidade: Gramado\n"
		assert.Equal(t, "Rua das Flores, 100", heuristics.ExtractAddress(text))
		assert.Equal(t, "Gramado", heuristics.ExtractCity(text))
	})
	t.Run("restaurant name from label", func(t *testing.T) {
		assert.Equal(t, "Fasano", heuristics.ExtractRestaurantName("Restaurante: Fasano\n"))
		assert.Empty(t, heuristics.ExtractRestaurantName("sem nome"))
	})
	t.Run("cuisine", func(t *testing.T) {
		assert.Equal(t, "steakhouse", heuristics.ExtractCuisine("Churrascaria Fogo de Chão"))
		assert.Empty(t, heuristics.ExtractCuisine("jantar"))
	})
	t.Run("rating", func(t *testing.T) {
		got := heuristics.ExtractRating("Nota: 9,5")
		if assert.NotNil(t, got) {
			assert.InDelta(t, 9.5, *got, 1e-9)
		}
		assert.Nil(t, heuristics.ExtractRating("sem nota"))
	})
}

func TestKeywordRules(t *testing.T) {
	assert.Equal(t, "bus", heuristics.ExtractTransportKind("Bilhete de ônibus Cometa"))
	assert.Equal(t, "train", heuristics.ExtractTransportKind("Train ticket"))
	assert.Empty(t, heuristics.ExtractTransportKind("nada"))

	assert.Equal(t, "Cometa", heuristics.ExtractOperator("Bilhete de ônibus Cometa", ""))
	assert.Equal(t, "Localiza", heuristics.ExtractOperator("", "localiza-contrato.pdf"))

	assert.Equal(t, "confirmed", heuristics.ExtractStatus("Reserva confirmada"))
	assert.Equal(t, "cancelled", heuristics.ExtractStatus("Pedido cancelado, reserva confirmada"))
	assert.Empty(t, heuristics.ExtractStatus("recibo"))
}
