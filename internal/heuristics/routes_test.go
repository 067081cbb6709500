package heuristics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/tripdocs/internal/heuristics"
)

func TestExtractRoute(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantFrom string
		wantTo   string
		wantRule string
	}{
		{name: "airport pair with dash", text: "Trecho GRU-LIS 22h", wantFrom: "GRU", wantTo: "LIS", wantRule: "airport_pair"},
		{name: "airport pair with arrow", text: "Voo GRU → LIS", wantFrom: "GRU", wantTo: "LIS", wantRule: "airport_pair"},
		{name: "currency pair ignored", text: "Câmbio BRL/USD", wantFrom: "", wantTo: "", wantRule: ""},
		{name: "labeled airports without colon", text: "origem FLN destino GRU", wantFrom: "FLN", wantTo: "GRU", wantRule: "labeled_airports"},
		{name: "labeled airports english", text: "From: JFK\nTo: MIA", wantFrom: "JFK", wantTo: "MIA", wantRule: "labeled_airports"},
		{name: "free tokens", text: "Itinerário POA CNF confirmado", wantFrom: "POA", wantTo: "CNF", wantRule: "free_airport_tokens"},
		{name: "free tokens skip stop words", text: "PNR BRL POA e CNF", wantFrom: "POA", wantTo: "CNF", wantRule: "free_airport_tokens"},
		{name: "city phrase", text: "Viagem de São Paulo para Rio de Janeiro", wantFrom: "São Paulo", wantTo: "Rio de Janeiro", wantRule: "city_phrase"},
		{name: "city phrase english", text: "Train from Milano to Roma", wantFrom: "Milano", wantTo: "Roma", wantRule: "city_phrase"},
		{name: "city arrow", text: "Curitiba -> Florianópolis", wantFrom: "Curitiba", wantTo: "Florianópolis", wantRule: "city_arrow"},
		{name: "city arrow drops leading transport word", text: "Trem Lisboa → Porto", wantFrom: "Lisboa", wantTo: "Porto", wantRule: "city_arrow"},
		{name: "city arrow keeps multi word city", text: "Ônibus Porto Alegre -> Gramado", wantFrom: "Porto Alegre", wantTo: "Gramado", wantRule: "city_arrow"},
		{name: "labeled cities", text: "Origem: Porto Alegre\nDestino: Gramado.", wantFrom: "Porto Alegre", wantTo: "Gramado", wantRule: "labeled_city"},
		{name: "nothing", text: "recibo simples", wantRule: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := heuristics.ExtractRoute(tt.text)
			assert.Equal(t, tt.wantFrom, got.Origin)
			assert.Equal(t, tt.wantTo, got.Destination)
			assert.Equal(t, tt.wantRule, got.Rule)
		})
	}
}

func TestCleanToken(t *testing.T) {
	assert.Equal(t, "São Paulo", heuristics.CleanToken("  ,São   Paulo. "))
	assert.Equal(t, "GRU", heuristics.CleanToken("(GRU)"))
	assert.Empty(t, heuristics.CleanToken(" -- "))
}

func TestIdentifiers(t *testing.T) {
	t.Run("flight number from text", func(t *testing.T) {
		assert.Equal(t, "LA3301", heuristics.ExtractFlightNumber("LATAM LA3301 FLN", "x.pdf"))
	})
	t.Run("flight number from file name", func(t *testing.T) {
		assert.Equal(t, "AD4521", heuristics.ExtractFlightNumber("sem numero", "bilhete-AD4521.pdf"))
	})
	t.Run("no flight number", func(t *testing.T) {
		assert.Empty(t, heuristics.ExtractFlightNumber("nada", "nada.pdf"))
	})
	t.Run("reservation code upper-cased", func(t *testing.T) {
		assert.Equal(t, "XK7P2Q", heuristics.ExtractReservationCode("Código de reserva: xk7p2q"))
		assert.Equal(t, "ABC12", heuristics.ExtractReservationCode("PNR ABC12"))
		assert.Equal(t, "QWERTY", heuristics.ExtractReservationCode("Booking code #QWERTY"))
		assert.Empty(t, heuristics.ExtractReservationCode("sem código"))
	})
	t.Run("carrier membership", func(t *testing.T) {
		assert.Equal(t, "AZUL", heuristics.ExtractCarrier("voando com a azul", ""))
		assert.Equal(t, "Air France", heuristics.ExtractCarrier("", "AIR FRANCE eticket.pdf"))
		assert.Empty(t, heuristics.ExtractCarrier("Companhia Desconhecida", "x.pdf"))
	})
	t.Run("times", func(t *testing.T) {
		assert.Equal(t, []string{"07:45", "09:30"}, heuristics.FindTimes("Partida 07:45 chegada 9h30"))
	})
	t.Run("traveler name", func(t *testing.T) {
		assert.Equal(t, "MARIA SILVA", heuristics.ExtractTravelerName("Passageiro: MARIA SILVA\nVoo LA3301"))
	})
	t.Run("payment method", func(t *testing.T) {
		assert.Equal(t, "PIX", heuristics.ExtractPaymentMethod("Pago via Pix"))
		assert.Equal(t, "CREDIT_CARD", heuristics.ExtractPaymentMethod("Cartão de crédito final 1234"))
		assert.Empty(t, heuristics.ExtractPaymentMethod("nada"))
	})
	t.Run("points", func(t *testing.T) {
		got := heuristics.ExtractPoints("Resgate de 12.500 milhas")
		if assert.NotNil(t, got) {
			assert.Equal(t, int64(12500), *got)
		}
		assert.Nil(t, heuristics.ExtractPoints("sem pontos"))
	})
}
