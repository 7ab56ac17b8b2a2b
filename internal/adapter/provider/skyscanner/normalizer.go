package skyscanner

import (
	"encoding/json"
	"errors"

	"github.com/skyfare/flight-offer-aggregator/internal/domain"
)

var (
	errMissingAPIKey = errors.New("api key not configured")
	errSearchFailed  = errors.New("live search failed")
)

// normalize converts the gateway payload to domain offers.
func normalize(payload searchResponse) ([]domain.FlightOffer, error) {
	offers := make([]domain.FlightOffer, 0, len(payload.Itineraries))

	for _, raw := range payload.Itineraries {
		var itin itineraryPayload
		if err := json.Unmarshal(raw, &itin); err != nil {
			return nil, domain.NewParseError(ProviderName, err)
		}
		if len(itin.Legs) == 0 {
			continue
		}
		offers = append(offers, normalizeItinerary(raw, itin))
	}
	return offers, nil
}

// normalizeItinerary maps one priced itinerary to the shared offer shape.
// The gateway prices complete journeys and does not label them, so every
// itinerary is reported as a round trip regardless of how many legs it
// carries. Leg count is never used to classify the trip.
func normalizeItinerary(raw json.RawMessage, itin itineraryPayload) domain.FlightOffer {
	segments := make([]domain.FlightSegment, 0, len(itin.Legs))
	for _, leg := range itin.Legs {
		segments = append(segments, normalizeLeg(leg))
	}

	offer := domain.FlightOffer{
		ID:                   domain.BuildOfferID(segments),
		Segments:             segments,
		TotalDurationMinutes: totalDuration(itin),
		PriceOptions: []domain.PriceOption{{
			Provider:   ProviderName,
			Price:      itin.Price.Amount,
			Currency:   itin.Price.Currency,
			BookingURL: itin.DeepLink,
		}},
		TripType: domain.TripTypeRoundTrip,
		Raw:      raw,
	}
	offer.RecomputeLowestPrice()
	return offer
}

// normalizeLeg maps one leg. Flight numbers may be missing and carriers may
// be empty; both degrade to empty strings.
func normalizeLeg(leg legPayload) domain.FlightSegment {
	carrier := ""
	if len(leg.Carriers) > 0 {
		carrier = leg.Carriers[0].Name
	}

	return domain.FlightSegment{
		Departure: domain.SegmentPoint{
			AirportCode: leg.Departure.Airport.Code,
			DisplayName: leg.Departure.Airport.Name,
			LocalTime:   leg.Departure.Time,
		},
		Arrival: domain.SegmentPoint{
			AirportCode: leg.Arrival.Airport.Code,
			DisplayName: leg.Arrival.Airport.Name,
			LocalTime:   leg.Arrival.Time,
		},
		Duration:     domain.NewMinutesDuration(leg.DurationInMinutes),
		CarrierName:  carrier,
		FlightNumber: leg.FlightNumber,
		CabinClass:   "",
		AircraftName: "Unknown",
		StopCount:    leg.StopCount,
	}
}

// totalDuration prefers the itinerary-level duration, summing leg durations
// when it is absent.
func totalDuration(itin itineraryPayload) int {
	if itin.Duration > 0 {
		return itin.Duration
	}
	total := 0
	for _, leg := range itin.Legs {
		total += leg.DurationInMinutes
	}
	return total
}
