package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripflow/internal/models/trip_models"
	"tripflow/pkg/utils"
)

func pdfFixtureItinerary() *trip_models.Itinerary {
	it := &trip_models.Itinerary{
		Title:          "A Week in Sabah",
		Description:    "Wildlife and beaches with the kids",
		Travelers:      4,
		BudgetEstimate: "$4000",
		PackingList:    []string{"Leech socks", "Rain jacket"},
		GeneralTips: []trip_models.TravelTip{
			{Title: "Malaria", Content: "Check prophylaxis guidance", Category: "health"},
		},
		EmergencyContacts: map[string]string{"Police": "999"},
	}
	it.AddDay(trip_models.DayPlan{
		DayNumber: 1,
		Title:     "Arrival in Kota Kinabalu",
		Location:  "Kota Kinabalu",
		Summary:   "Settle in and explore the waterfront",
		Activities: []trip_models.Activity{
			{
				Name:         "Night market dinner",
				Description:  "Grilled fish at the Filipino market",
				Location:     "KK Waterfront",
				ActivityType: trip_models.ActivityDining,
				StartTime:    trip_models.ParseFlexTime("18:30"),
				EndTime:      trip_models.ParseFlexTime("20:00"),
				CostEstimate: "$20",
			},
		},
	})
	it.AddDay(trip_models.DayPlan{DayNumber: 2, Title: "Orangutans", Location: "Sepilok"})
	return it
}

func TestRenderItinerary(t *testing.T) {
	svc := NewPDFService(zap.NewNop())

	for _, style := range []PDFStyle{PDFStyleClassic, PDFStyleCompact} {
		data, err := svc.RenderItinerary(pdfFixtureItinerary(), style)
		require.NoError(t, err, style)
		require.NotEmpty(t, data, style)
		assert.Equal(t, "%PDF", string(data[:4]), "output starts with the PDF magic bytes")
	}
}

func TestRenderItineraryUnknownStyleFallsBack(t *testing.T) {
	svc := NewPDFService(zap.NewNop())
	data, err := svc.RenderItinerary(pdfFixtureItinerary(), PDFStyle("fancy"))
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestRenderItineraryRejectsEmpty(t *testing.T) {
	svc := NewPDFService(zap.NewNop())

	_, err := svc.RenderItinerary(nil, PDFStyleClassic)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = svc.RenderItinerary(&trip_models.Itinerary{Title: "Empty"}, PDFStyleClassic)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestSanitizePDFText(t *testing.T) {
	assert.Equal(t, "Café tips", sanitizePDFText("Café tips"), "latin-1 text passes through")
	assert.Equal(t, "?? Tower", sanitizePDFText("東京 Tower"), "wide characters replaced")
}
