package usecase

import (
	"github.com/skyfare/flight-offer-aggregator/internal/domain"
)

// WarningOnlyOneWay is attached when a round-trip search yields only
// one-way offers.
const WarningOnlyOneWay = "Note: Only one-way flights returned for round-trip search."

// ApplyFilters runs the post-aggregation filter pipeline in its fixed order:
// dedup, trip type, cabin class, stop count, seat capacity, result cap.
//
// Every business filter is non-destructive: if applying it would eliminate
// all remaining offers, the filter is skipped and the pre-filter list kept.
// This stops one overly strict criterion from zeroing out the results.
//
// The returned warnings are non-fatal notices (currently only the
// round-trip/one-way mismatch). The input slice is not mutated.
func ApplyFilters(offers []domain.FlightOffer, req *domain.SearchRequest) ([]domain.FlightOffer, []string) {
	result := dedupeByID(offers)

	if req.RoundTrip() {
		result = keepUnlessEmpty(result, func(o domain.FlightOffer) bool {
			return o.TripType == domain.TripTypeRoundTrip
		})
	}

	if req.Cabin != "" {
		class := string(req.Cabin)
		result = keepUnlessEmpty(result, func(o domain.FlightOffer) bool {
			return o.HasCabinClass(class)
		})
	}

	// Zero means unconstrained here, not nonstop-only. A nonzero value
	// requires the total stop count to match exactly.
	if req.Stops > 0 {
		result = keepUnlessEmpty(result, func(o domain.FlightOffer) bool {
			return o.TotalStops() == req.Stops
		})
	}

	// Offers that do not report seat capacity are never excluded.
	if req.Passengers.Adults > 0 {
		adults := req.Passengers.Adults
		result = keepUnlessEmpty(result, func(o domain.FlightOffer) bool {
			return o.BookableSeats == nil || *o.BookableSeats >= adults
		})
	}

	if req.ResultCap > 0 && len(result) > req.ResultCap {
		result = result[:req.ResultCap]
	}

	var warnings []string
	if req.RoundTrip() && len(result) > 0 && allOneWay(result) {
		warnings = append(warnings, WarningOnlyOneWay)
	}

	return result, warnings
}

// dedupeByID keeps the first offer seen for each identity key. Aggregation
// already merges by ID; this is the safety net for pre-merged input from a
// cache or fixture.
func dedupeByID(offers []domain.FlightOffer) []domain.FlightOffer {
	seen := make(map[string]struct{}, len(offers))
	result := make([]domain.FlightOffer, 0, len(offers))
	for _, o := range offers {
		if _, dup := seen[o.ID]; dup {
			continue
		}
		seen[o.ID] = struct{}{}
		result = append(result, o)
	}
	return result
}

// keepUnlessEmpty filters by the predicate, but returns the input unchanged
// when nothing would survive.
func keepUnlessEmpty(offers []domain.FlightOffer, keep func(domain.FlightOffer) bool) []domain.FlightOffer {
	filtered := make([]domain.FlightOffer, 0, len(offers))
	for _, o := range offers {
		if keep(o) {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return offers
	}
	return filtered
}

// allOneWay reports whether every offer is one-way.
func allOneWay(offers []domain.FlightOffer) bool {
	for _, o := range offers {
		if o.TripType != domain.TripTypeOneWay {
			return false
		}
	}
	return true
}
