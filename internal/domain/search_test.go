package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() SearchRequest {
	return SearchRequest{
		Origin:        "CDG",
		Destination:   "AUS",
		DepartureDate: "2026-03-15",
		Passengers:    PassengerCounts{Adults: 1},
	}
}

func TestSearchRequest_Validate_Valid(t *testing.T) {
	req := validRequest()
	assert.NoError(t, req.Validate())
}

func TestSearchRequest_Validate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SearchRequest)
		errMsg string
	}{
		{"missing origin", func(r *SearchRequest) { r.Origin = "" }, "origin is required"},
		{"malformed origin", func(r *SearchRequest) { r.Origin = "Paris" }, "origin must be a valid 3-letter IATA code"},
		{"missing destination", func(r *SearchRequest) { r.Destination = "" }, "destination is required"},
		{"malformed destination", func(r *SearchRequest) { r.Destination = "12" }, "destination must be a valid"},
		{"same endpoints", func(r *SearchRequest) { r.Destination = "cdg" }, "must be different"},
		{"missing departure date", func(r *SearchRequest) { r.DepartureDate = "" }, "departureDate is required"},
		{"malformed departure date", func(r *SearchRequest) { r.DepartureDate = "15-03-2026" }, "must be in YYYY-MM-DD format"},
		{"impossible departure date", func(r *SearchRequest) { r.DepartureDate = "2026-02-30" }, "not a valid date"},
		{"malformed return date", func(r *SearchRequest) { r.ReturnDate = "march 20" }, "must be in YYYY-MM-DD format"},
		{"negative adults", func(r *SearchRequest) { r.Passengers.Adults = -1 }, "adults must not be negative"},
		{"negative children", func(r *SearchRequest) { r.Passengers.Children = -1 }, "children must not be negative"},
		{"negative infants", func(r *SearchRequest) { r.Passengers.Infants = -2 }, "infants must not be negative"},
		{"bad cabin class", func(r *SearchRequest) { r.Cabin = "coach" }, "cabinClass must be one of"},
		{"negative stops", func(r *SearchRequest) { r.Stops = -1 }, "stops must not be negative"},
		{"negative result cap", func(r *SearchRequest) { r.ResultCap = -5 }, "resultCap must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := req.Validate()

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRequest)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSearchRequest_SetDefaults(t *testing.T) {
	req := SearchRequest{
		Origin:        "cdg",
		Destination:   "aus",
		DepartureDate: "2026-03-15",
	}

	req.SetDefaults()

	assert.Equal(t, "CDG", req.Origin)
	assert.Equal(t, "AUS", req.Destination)
	assert.Equal(t, 1, req.Passengers.Adults)
	assert.Equal(t, CabinEconomy, req.Cabin)
	assert.Equal(t, DefaultResultCap, req.ResultCap)
	assert.Equal(t, DefaultCurrency, req.Currency)
	assert.Equal(t, TripTypeOneWay, req.TripTypeHint)
}

func TestSearchRequest_SetDefaults_KeepsExplicitValues(t *testing.T) {
	req := SearchRequest{
		Origin:        "CDG",
		Destination:   "AUS",
		DepartureDate: "2026-03-15",
		Passengers:    PassengerCounts{Children: 2},
		Cabin:         CabinBusiness,
		ResultCap:     10,
		Currency:      "EUR",
	}

	req.SetDefaults()

	// A children-only booking does not get a default adult added
	assert.Equal(t, 0, req.Passengers.Adults)
	assert.Equal(t, 2, req.Passengers.Children)
	assert.Equal(t, CabinBusiness, req.Cabin)
	assert.Equal(t, 10, req.ResultCap)
	assert.Equal(t, "EUR", req.Currency)
}

func TestSearchRequest_SetDefaults_RoundTripHintFromReturnDate(t *testing.T) {
	req := validRequest()
	req.ReturnDate = "2026-03-22"

	req.SetDefaults()

	assert.Equal(t, TripTypeRoundTrip, req.TripTypeHint)
}

func TestSearchRequest_RoundTrip(t *testing.T) {
	req := validRequest()
	assert.False(t, req.RoundTrip())

	withDate := validRequest()
	withDate.ReturnDate = "2026-03-22"
	assert.True(t, withDate.RoundTrip())

	withHint := validRequest()
	withHint.TripTypeHint = TripTypeRoundTrip
	assert.True(t, withHint.RoundTrip())
}
