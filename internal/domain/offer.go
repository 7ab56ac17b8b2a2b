// Package domain contains the core business entities and rules for the flight
// offer aggregation system. These entities are provider-agnostic and form the
// foundation upon which all other components are built.
package domain

import (
	"encoding/json"
	"strings"
)

// TripType classifies an offer as one-way or round-trip, as reported by the
// provider. It is never inferred from the segment count.
type TripType string

// Known trip types.
const (
	TripTypeOneWay    TripType = "oneway"
	TripTypeRoundTrip TripType = "roundtrip"
	TripTypeUnknown   TripType = "unknown"
)

// ParseTripType normalizes a provider-reported trip type string. The numeric
// aliases match the search UI's trip codes. Unrecognized values map to
// TripTypeUnknown.
func ParseTripType(s string) TripType {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, " ", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.ReplaceAll(normalized, "_", "")

	switch normalized {
	case "oneway", "one", "1":
		return TripTypeOneWay
	case "roundtrip", "round", "return", "2":
		return TripTypeRoundTrip
	default:
		return TripTypeUnknown
	}
}

// FlightOffer is one bookable itinerary, possibly priced by several providers.
type FlightOffer struct {
	// ID is the identity key derived from the segment route and times.
	// Offers with identical routes and times share an ID regardless of
	// which provider produced them; it is the deduplication key.
	ID string `json:"id"`

	// Segments is the ordered, non-empty list of flown legs.
	Segments []FlightSegment `json:"segments"`

	// TotalDurationMinutes is the summed itinerary duration in minutes.
	TotalDurationMinutes int `json:"totalDurationMinutes"`

	// PriceOptions holds one price per contributing provider.
	PriceOptions []PriceOption `json:"priceOptions"`

	// LowestPrice always equals the minimum of PriceOptions prices.
	LowestPrice float64 `json:"lowestPrice"`

	// TripType is the provider-reported trip classification.
	TripType TripType `json:"tripType"`

	// BookableSeats is the provider-reported seat capacity, when known.
	BookableSeats *int `json:"bookableSeats,omitempty"`

	// Raw is the unmodified provider payload, retained for detail views.
	Raw json.RawMessage `json:"rawProviderPayload,omitempty"`
}

// FlightSegment is a single flown leg between two airports.
type FlightSegment struct {
	// Departure describes the origin airport and local departure time.
	Departure SegmentPoint `json:"departure"`

	// Arrival describes the destination airport and local arrival time.
	Arrival SegmentPoint `json:"arrival"`

	// Duration is the provider-native segment duration. It is stored in
	// its original encoding and normalized only on read.
	Duration Duration `json:"duration"`

	// CarrierName is the airline display name, or the raw carrier code
	// when the provider dictionary lookup misses.
	CarrierName string `json:"carrierName"`

	// FlightNumber is the carrier flight number, empty when not supplied.
	FlightNumber string `json:"flightNumber"`

	// CabinClass is the travel class display string for this leg.
	CabinClass string `json:"cabinClass"`

	// AircraftName is the aircraft display name, "Unknown" when missing.
	AircraftName string `json:"aircraftName"`

	// StopCount is the number of intermediate stops on this leg.
	StopCount int `json:"stopCount"`
}

// SegmentPoint is one end of a segment.
type SegmentPoint struct {
	// AirportCode is the IATA airport code (e.g., "CDG").
	AirportCode string `json:"airportCode"`

	// DisplayName is a human-readable airport name.
	DisplayName string `json:"displayName"`

	// LocalTime is the provider-reported local timestamp, kept verbatim.
	LocalTime string `json:"localTimestamp"`
}

// PriceOption records one provider's quote for an offer.
type PriceOption struct {
	// Provider is the quoting provider's name.
	Provider string `json:"providerName"`

	// Price is the quoted total, non-negative, in the request currency.
	Price float64 `json:"price"`

	// Currency is the ISO 4217 currency code of the quote.
	Currency string `json:"currency,omitempty"`

	// BookingURL is a provider deep link, empty when not supplied.
	BookingURL string `json:"bookingUrl,omitempty"`
}

// offerIDDelimiter joins the per-segment identity triples.
const offerIDDelimiter = "|"

// BuildOfferID derives the deterministic identity key for an itinerary from
// its ordered (departure airport, arrival airport, departure time) triples.
func BuildOfferID(segments []FlightSegment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, s.Departure.AirportCode+"-"+s.Arrival.AirportCode+"-"+s.Departure.LocalTime)
	}
	return strings.Join(parts, offerIDDelimiter)
}

// TotalStops sums the per-segment stop counts.
func (o *FlightOffer) TotalStops() int {
	total := 0
	for _, s := range o.Segments {
		total += s.StopCount
	}
	return total
}

// HasCabinClass reports whether any segment matches the given cabin class,
// compared case-insensitively.
func (o *FlightOffer) HasCabinClass(class string) bool {
	for _, s := range o.Segments {
		if strings.EqualFold(s.CabinClass, class) {
			return true
		}
	}
	return false
}

// RecomputeLowestPrice resets LowestPrice to the minimum PriceOptions price.
// Offers with no price options keep a zero LowestPrice.
func (o *FlightOffer) RecomputeLowestPrice() {
	if len(o.PriceOptions) == 0 {
		o.LowestPrice = 0
		return
	}
	min := o.PriceOptions[0].Price
	for _, p := range o.PriceOptions[1:] {
		if p.Price < min {
			min = p.Price
		}
	}
	o.LowestPrice = min
}

// MergeOffer folds an incoming offer into an existing one sharing the same ID.
// It appends the incoming price options and recomputes the lowest price; the
// existing segment and route data is kept untouched since offers with equal
// IDs describe the same physical itinerary. The inputs are not mutated.
func MergeOffer(existing, incoming FlightOffer) FlightOffer {
	merged := existing
	merged.PriceOptions = make([]PriceOption, 0, len(existing.PriceOptions)+len(incoming.PriceOptions))
	merged.PriceOptions = append(merged.PriceOptions, existing.PriceOptions...)
	merged.PriceOptions = append(merged.PriceOptions, incoming.PriceOptions...)
	merged.RecomputeLowestPrice()

	if merged.BookableSeats == nil && incoming.BookableSeats != nil {
		merged.BookableSeats = incoming.BookableSeats
	}
	return merged
}

// ReferencedAirports collects the unique airports appearing in the offers'
// segments, in first-seen order.
func ReferencedAirports(offers []FlightOffer) []AirportRef {
	seen := make(map[string]struct{})
	var refs []AirportRef

	add := func(p SegmentPoint) {
		if p.AirportCode == "" {
			return
		}
		if _, ok := seen[p.AirportCode]; ok {
			return
		}
		seen[p.AirportCode] = struct{}{}
		refs = append(refs, AirportRef{Code: p.AirportCode, DisplayName: p.DisplayName})
	}

	for _, o := range offers {
		for _, s := range o.Segments {
			add(s.Departure)
			add(s.Arrival)
		}
	}
	return refs
}

// AirportRef is a minimal airport reference attached to search responses.
type AirportRef struct {
	Code        string `json:"code"`
	DisplayName string `json:"displayName"`
}
