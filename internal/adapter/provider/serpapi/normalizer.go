package serpapi

import (
	"encoding/json"
	"strings"

	"github.com/skyfare/flight-offer-aggregator/internal/domain"
)

// normalize converts the engine payload to domain offers. Each engine flight
// is a single-leg offer; missing flight numbers are tolerated.
func (a *Adapter) normalize(payload searchResponse, req domain.SearchRequest) ([]domain.FlightOffer, error) {
	offers := make([]domain.FlightOffer, 0, len(payload.Flights))

	for _, raw := range payload.Flights {
		var flight flightPayload
		if err := json.Unmarshal(raw, &flight); err != nil {
			return nil, domain.NewParseError(ProviderName, err)
		}
		offers = append(offers, normalizeFlight(raw, flight, req))
	}
	return offers, nil
}

// normalizeFlight maps one engine flight to the shared offer shape.
func normalizeFlight(raw json.RawMessage, flight flightPayload, req domain.SearchRequest) domain.FlightOffer {
	segment := domain.FlightSegment{
		Departure: domain.SegmentPoint{
			AirportCode: flight.DepartureAirport.ID,
			DisplayName: flight.DepartureAirport.Name,
			LocalTime:   flight.DepartureAirport.Time,
		},
		Arrival: domain.SegmentPoint{
			AirportCode: flight.ArrivalAirport.ID,
			DisplayName: flight.ArrivalAirport.Name,
			LocalTime:   flight.ArrivalAirport.Time,
		},
		Duration:     domain.NewMinutesDuration(flight.Duration),
		CarrierName:  flight.Airline,
		FlightNumber: flight.FlightNumber,
		CabinClass:   strings.ToUpper(string(req.Cabin)),
		AircraftName: "Unknown",
		StopCount:    stopCount(flight),
	}

	segments := []domain.FlightSegment{segment}
	offer := domain.FlightOffer{
		ID:                   domain.BuildOfferID(segments),
		Segments:             segments,
		TotalDurationMinutes: flight.Duration,
		PriceOptions: []domain.PriceOption{{
			Provider:   ProviderName,
			Price:      flight.Price,
			Currency:   req.Currency,
			BookingURL: flight.BookingURL,
		}},
		TripType: domain.ParseTripType(flight.Type),
		Raw:      raw,
	}
	offer.RecomputeLowestPrice()
	return offer
}

// stopCount prefers the explicit layover list length, falling back to the
// provider-reported layover count.
func stopCount(flight flightPayload) int {
	if len(flight.Stops) > 0 {
		return len(flight.Stops)
	}
	return flight.Layovers
}
