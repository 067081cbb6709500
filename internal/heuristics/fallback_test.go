package heuristics_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/tripdocs/constants"
	"github.com/joseph-ayodele/tripdocs/internal/heuristics"
)

func TestBuildFallback_Flight(t *testing.T) {
	text := "LATAM LA3301 origem FLN destino GRU data 2026-04-02 total R$ 1299,90"
	rec := heuristics.BuildFallback(text, "Comprovante-LATAM-LA3301.pdf", "")

	require.NotNil(t, rec)
	assert.Equal(t, constants.Flight, rec.Type)
	assert.Equal(t, constants.ScopeTripRelated, rec.Scope)
	assert.Equal(t, constants.SourceFallback, rec.Source)
	assert.Equal(t, heuristics.FallbackConfidence, rec.Confidence)
	assert.Equal(t, heuristics.FallbackTypeConfidence, rec.TypeConfidence)
	assert.Equal(t, constants.QualityLow, rec.Quality)
	assert.True(t, rec.NeedsReview)
	assert.Equal(t, []string{constants.ReviewMarker}, rec.MissingFields)

	f := rec.Flight()
	require.NotNil(t, f)
	assert.Equal(t, "LA3301", f.Number)
	assert.Equal(t, "LATAM", f.Carrier)
	assert.Equal(t, "FLN", f.Origin)
	assert.Equal(t, "GRU", f.Destination)
	assert.Equal(t, "2026-04-02", f.Date)
	require.NotNil(t, f.Amount)
	assert.InDelta(t, 1299.90, *f.Amount, 0.0001)
	assert.Equal(t, "BRL", f.Currency)

	assert.Equal(t, "Voo LA3301", rec.DisplayName)
	assert.Equal(t, "LATAM", rec.Provider)
	assert.Equal(t, "FLN", rec.Origin)
	assert.Equal(t, "GRU", rec.Destination)
	assert.Equal(t, "2026-04-02", rec.StartDate)
	require.NotNil(t, rec.TotalAmount)
	assert.InDelta(t, 1299.90, *rec.TotalAmount, 0.0001)
	assert.NotSame(t, rec.TotalAmount, f.Amount)
	assert.Contains(t, rec.Tips, "GRU")
}

func TestBuildFallback_LodgingUsesTripDestination(t *testing.T) {
	text := "Pousada Vila Bela\nCheck-in 10/05/2026 Check-out 12/05/2026\nTotal R$ 800,00"
	rec := heuristics.BuildFallback(text, "reserva.pdf", "Paraty")

	require.NotNil(t, rec)
	assert.Equal(t, constants.Lodging, rec.Type)
	l := rec.Lodging()
	require.NotNil(t, l)
	assert.Equal(t, "Pousada Vila Bela", l.Name)
	assert.Equal(t, "Paraty", l.Location)
	assert.Equal(t, "2026-05-10", l.CheckIn)
	assert.Equal(t, "2026-05-12", l.CheckOut)
	require.NotNil(t, l.Amount)
	assert.InDelta(t, 800.0, *l.Amount, 0.0001)

	assert.Equal(t, "Pousada Vila Bela", rec.DisplayName)
	assert.Equal(t, "2026-05-10", rec.StartDate)
	assert.Equal(t, "2026-05-12", rec.EndDate)
	assert.Contains(t, rec.Tips, "Paraty")
	assert.Contains(t, rec.NearbyRestaurants, "Paraty")
}

func TestBuildFallback_Restaurant(t *testing.T) {
	text := "Reserva de mesa\nRestaurante: Fasano\nCidade: São Paulo\nData 20/06/2026 às 20:30"
	rec := heuristics.BuildFallback(text, "", "")

	require.NotNil(t, rec)
	assert.Equal(t, constants.Restaurant, rec.Type)
	r := rec.Restaurant()
	require.NotNil(t, r)
	assert.Equal(t, "Fasano", r.Name)
	assert.Equal(t, "São Paulo", r.City)
	assert.Equal(t, "Fasano", rec.DisplayName)
	assert.Equal(t, "2026-06-20", rec.StartDate)
	assert.Equal(t, "20:30", rec.StartTime)
	assert.Equal(t, "BRL", rec.Currency)
	assert.Nil(t, rec.TotalAmount)
}

func TestBuildFallback_RestaurantCityNotBorrowedFromTrip(t *testing.T) {
	text := "Reserva de mesa no restaurante\nData 20/06/2026 às 20:00"
	rec := heuristics.BuildFallbackFor(constants.Restaurant, text, "mesa.txt", "Lisboa")

	require.NotNil(t, rec)
	r := rec.Restaurant()
	require.NotNil(t, r)
	assert.Empty(t, r.City)
	assert.Empty(t, rec.Destination)
	assert.Contains(t, heuristics.ComputeMissing(rec.Type, rec, constants.ScopeTripRelated), "restaurante.cidade")
	assert.Contains(t, rec.Tips, "Lisboa")
}

func TestBuildFallback_FlightRouteIsNotAnIdentifier(t *testing.T) {
	rec := heuristics.BuildFallbackFor(constants.Flight, "Voo de FLN para GRU em 2026-04-02", "x.pdf", "")

	require.NotNil(t, rec)
	f := rec.Flight()
	require.NotNil(t, f)
	assert.Equal(t, "FLN", f.Origin)
	assert.Equal(t, "GRU", f.Destination)
	assert.Empty(t, f.Number)
	assert.Empty(t, rec.DisplayName)
	assert.Equal(t, []string{"voo.identificador"}, heuristics.ComputeMissing(rec.Type, rec, constants.ScopeTripRelated))
}

func TestBuildFallback_Transport(t *testing.T) {
	text := "Bilhete de ônibus\nde Curitiba para Florianópolis\n15/07/2026 08:00\nBuser"
	rec := heuristics.BuildFallback(text, "", "")

	require.NotNil(t, rec)
	assert.Equal(t, constants.Transport, rec.Type)
	tr := rec.Transport()
	require.NotNil(t, tr)
	assert.Equal(t, "bus", tr.Kind)
	assert.Equal(t, "Buser", tr.Operator)
	assert.Equal(t, "Curitiba", tr.Origin)
	assert.Equal(t, "Florianópolis", tr.Destination)
	assert.Equal(t, "2026-07-15", tr.Date)
	assert.Equal(t, "Ônibus Curitiba → Florianópolis", rec.DisplayName)
	assert.Equal(t, "08:00", rec.StartTime)
}

func TestBuildFallback_QualityByLength(t *testing.T) {
	short := heuristics.BuildFallbackFor(constants.Flight, "voo", "", "")
	assert.Equal(t, constants.QualityLow, short.Quality)

	long := heuristics.BuildFallbackFor(constants.Flight, "voo "+strings.Repeat("x", 90), "", "")
	assert.Equal(t, constants.QualityMedium, long.Quality)
}

func TestBuildFallback_EmptyTextNeverFails(t *testing.T) {
	rec := heuristics.BuildFallbackFor(constants.Lodging, "", "", "")
	require.NotNil(t, rec)
	assert.Equal(t, constants.Lodging, rec.Type)
	assert.NotNil(t, rec.Lodging())
	assert.Contains(t, rec.Tips, "seu destino")
}
