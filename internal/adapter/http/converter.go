package http

import (
	"strings"

	"github.com/skyfare/flight-offer-aggregator/internal/domain"
)

// toSearchRequest converts a validated query into a domain search request.
// Defaults for counts, cabin, cap and currency are applied by the use case.
func toSearchRequest(q *SearchFlightsQuery) domain.SearchRequest {
	req := domain.SearchRequest{
		Origin:        strings.ToUpper(q.Origin),
		Destination:   strings.ToUpper(q.Destination),
		DepartureDate: q.DepartureDate,
		ReturnDate:    q.ReturnDate,
		Cabin:         domain.CabinClass(strings.ToLower(q.CabinClass)),
		TripTypeHint:  domain.ParseTripType(q.TripType),
		Currency:      strings.ToUpper(q.Currency),
	}

	if q.Adults != nil {
		req.Passengers.Adults = *q.Adults
	}
	if q.Children != nil {
		req.Passengers.Children = *q.Children
	}
	if q.Infants != nil {
		req.Passengers.Infants = *q.Infants
	}
	if q.Stops != nil {
		req.Stops = *q.Stops
	}
	if q.Max != nil {
		req.ResultCap = *q.Max
	}

	return req
}
