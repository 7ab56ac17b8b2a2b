package skyscanner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyfare/flight-offer-aggregator/internal/domain"
)

const searchFixture = `{
	"itineraries": [
		{
			"id": "itin-1",
			"duration": 1180,
			"deepLink": "https://example.com/deeplink/itin-1",
			"price": {"amount": 890.50, "currency": "USD"},
			"legs": [
				{
					"departure": {"airport": {"code": "CDG", "name": "Paris Charles de Gaulle"}, "time": "2026-03-15T10:00:00"},
					"arrival": {"airport": {"code": "AUS", "name": "Austin-Bergstrom"}, "time": "2026-03-15T13:45:00"},
					"durationInMinutes": 525,
					"carriers": [{"name": "Lufthansa"}],
					"flightNumber": "LH 440",
					"stopCount": 0
				},
				{
					"departure": {"airport": {"code": "AUS", "name": "Austin-Bergstrom"}, "time": "2026-03-22T09:00:00"},
					"arrival": {"airport": {"code": "CDG", "name": "Paris Charles de Gaulle"}, "time": "2026-03-23T01:55:00"},
					"durationInMinutes": 655,
					"carriers": [{"name": "Lufthansa"}],
					"flightNumber": "LH 441",
					"stopCount": 1
				}
			]
		},
		{
			"id": "itin-empty",
			"price": {"amount": 1, "currency": "USD"},
			"legs": []
		}
	]
}`

func testAdapter(baseURL string) *Adapter {
	return NewAdapter(Config{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Host:    "gateway.test",
	}, nil, zerolog.Nop())
}

func testRequest() domain.SearchRequest {
	req := domain.SearchRequest{
		Origin:        "CDG",
		Destination:   "AUS",
		DepartureDate: "2026-03-15",
		ReturnDate:    "2026-03-22",
		Passengers:    domain.PassengerCounts{Adults: 1},
	}
	req.SetDefaults()
	return req
}

func TestSearch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-rapidapi-key"))
		assert.Equal(t, "gateway.test", r.Header.Get("x-rapidapi-host"))

		q := r.URL.Query()
		assert.Equal(t, "CDG", q.Get("originSkyId"))
		assert.Equal(t, "AUS", q.Get("destinationSkyId"))
		assert.Equal(t, "20260315", q.Get("date"), "dates are compacted")
		assert.Equal(t, "20260322", q.Get("returnDate"))

		fmt.Fprint(w, searchFixture)
	}))
	defer server.Close()

	adapter := testAdapter(server.URL)

	offers, err := adapter.Search(context.Background(), testRequest())

	require.NoError(t, err)
	require.Len(t, offers, 1, "leg-less itineraries are dropped")

	offer := offers[0]
	assert.Equal(t, domain.TripTypeRoundTrip, offer.TripType)
	assert.Equal(t, 890.50, offer.LowestPrice)
	assert.Equal(t, 1180, offer.TotalDurationMinutes)
	assert.Equal(t, "https://example.com/deeplink/itin-1", offer.PriceOptions[0].BookingURL)

	require.Len(t, offer.Segments, 2)
	assert.Equal(t, "Lufthansa", offer.Segments[0].CarrierName)
	assert.Equal(t, 1, offer.Segments[1].StopCount)
}

func TestSearch_FailuresAreSwallowed(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			"gateway error",
			func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"message": "quota exceeded"}`, http.StatusForbidden)
			},
		},
		{
			"malformed payload",
			func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `<html>bad gateway</html>`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			adapter := testAdapter(server.URL)

			offers, err := adapter.Search(context.Background(), testRequest())

			require.NoError(t, err, "best-effort adapter never surfaces an error")
			assert.NotNil(t, offers)
			assert.Empty(t, offers)
		})
	}
}

func TestSearch_MissingAPIKeySwallowed(t *testing.T) {
	adapter := NewAdapter(Config{BaseURL: "http://unused"}, nil, zerolog.Nop())

	offers, err := adapter.Search(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Empty(t, offers)
}

func TestSearch_UnreachableHostSwallowed(t *testing.T) {
	adapter := testAdapter("http://127.0.0.1:1")

	offers, err := adapter.Search(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Empty(t, offers)
}

func TestNormalize_SingleLegReportedAsRoundTrip(t *testing.T) {
	payload := searchResponse{Itineraries: []json.RawMessage{
		json.RawMessage(`{
			"id": "itin-2",
			"price": {"amount": 480, "currency": "USD"},
			"legs": [
				{
					"departure": {"airport": {"code": "CDG"}, "time": "2026-03-15T10:00:00"},
					"arrival": {"airport": {"code": "AUS"}, "time": "2026-03-15T13:45:00"},
					"durationInMinutes": 525
				}
			]
		}`),
	}}

	offers, err := normalize(payload)

	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, domain.TripTypeRoundTrip, offers[0].TripType,
		"trip type is reported, never derived from the leg count")
	assert.Equal(t, 525, offers[0].TotalDurationMinutes, "missing itinerary duration falls back to leg sum")
	assert.Empty(t, offers[0].Segments[0].CarrierName)
}
