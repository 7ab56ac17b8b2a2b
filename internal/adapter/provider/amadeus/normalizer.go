package amadeus

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/skyfare/flight-offer-aggregator/internal/domain"
)

// unknownAircraft is used when the aircraft dictionary lookup misses and no
// raw code is available either.
const unknownAircraft = "Unknown"

// normalize converts the provider search payload to domain offers. Offers
// that cannot be decoded are skipped; a fully undecodable payload surfaces
// as a parse error from the caller's Unmarshal instead.
func normalize(payload searchResponse, log zerolog.Logger) ([]domain.FlightOffer, error) {
	offers := make([]domain.FlightOffer, 0, len(payload.Data))

	for _, raw := range payload.Data {
		var offer offerPayload
		if err := json.Unmarshal(raw, &offer); err != nil {
			return nil, domain.NewParseError(ProviderName, err)
		}

		normalized, err := normalizeOffer(raw, offer, payload.Dictionaries)
		if err != nil {
			log.Warn().Err(err).Str("provider", ProviderName).Msg("Skipping offer")
			continue
		}
		offers = append(offers, normalized)
	}

	return offers, nil
}

// normalizeOffer maps one provider offer to the shared offer shape.
func normalizeOffer(raw json.RawMessage, offer offerPayload, dicts dictionaries) (domain.FlightOffer, error) {
	price, err := strconv.ParseFloat(offer.Price.Total, 64)
	if err != nil {
		return domain.FlightOffer{}, domain.NewParseError(ProviderName, err)
	}

	// Flatten the nested itinerary/segment structure, preserving order,
	// and sum the per-itinerary ISO durations for the offer total.
	var segments []domain.FlightSegment
	totalMinutes := 0
	for _, itin := range offer.Itineraries {
		minutes, err := domain.ParseISODuration(itin.Duration)
		if err != nil {
			return domain.FlightOffer{}, domain.NewParseError(ProviderName, err)
		}
		totalMinutes += minutes

		for _, seg := range itin.Segments {
			segments = append(segments, normalizeSegment(seg, dicts))
		}
	}
	if len(segments) == 0 {
		return domain.FlightOffer{}, domain.NewParseError(ProviderName,
			errNoSegments)
	}

	// Trip type comes from the explicit one-way flag, never from the
	// itinerary count.
	tripType := domain.TripTypeRoundTrip
	if offer.OneWay {
		tripType = domain.TripTypeOneWay
	}

	result := domain.FlightOffer{
		ID:                   domain.BuildOfferID(segments),
		Segments:             segments,
		TotalDurationMinutes: totalMinutes,
		PriceOptions: []domain.PriceOption{{
			Provider: ProviderName,
			Price:    price,
			Currency: offer.Price.Currency,
		}},
		TripType: tripType,
		Raw:      raw,
	}
	if offer.NumberOfBookableSeats > 0 {
		seats := offer.NumberOfBookableSeats
		result.BookableSeats = &seats
	}
	result.RecomputeLowestPrice()
	return result, nil
}

// normalizeSegment maps one leg, resolving carrier and aircraft codes via
// the response-embedded dictionaries with raw-code fallback. The segment
// duration keeps its native ISO encoding.
func normalizeSegment(seg segmentPayload, dicts dictionaries) domain.FlightSegment {
	carrier := seg.CarrierCode
	if name, ok := dicts.Carriers[seg.CarrierCode]; ok && name != "" {
		carrier = name
	}

	aircraft := seg.Aircraft.Code
	if name, ok := dicts.Aircraft[seg.Aircraft.Code]; ok && name != "" {
		aircraft = name
	}
	if aircraft == "" {
		aircraft = unknownAircraft
	}

	return domain.FlightSegment{
		Departure: domain.SegmentPoint{
			AirportCode: seg.Departure.IataCode,
			DisplayName: seg.Departure.IataCode,
			LocalTime:   seg.Departure.At,
		},
		Arrival: domain.SegmentPoint{
			AirportCode: seg.Arrival.IataCode,
			DisplayName: seg.Arrival.IataCode,
			LocalTime:   seg.Arrival.At,
		},
		Duration:     domain.NewEncodedDuration(seg.Duration),
		CarrierName:  carrier,
		FlightNumber: seg.CarrierCode + seg.Number,
		CabinClass:   seg.Cabin,
		AircraftName: aircraft,
		StopCount:    seg.NumberOfStops,
	}
}

// errNoSegments marks an offer with no flyable legs.
var errNoSegments = errors.New("offer has no segments")
