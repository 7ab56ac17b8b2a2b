package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DefaultResultCap is the maximum number of offers returned when the caller
// does not specify one.
const DefaultResultCap = 50

// DefaultCurrency is applied when the caller does not specify a currency.
const DefaultCurrency = "USD"

// CabinClass is a requested travel class.
type CabinClass string

// Supported cabin classes.
const (
	CabinEconomy        CabinClass = "economy"
	CabinPremiumEconomy CabinClass = "premium_economy"
	CabinBusiness       CabinClass = "business"
	CabinFirst          CabinClass = "first"
)

// validCabinClasses defines the allowed travel classes.
var validCabinClasses = map[CabinClass]bool{
	CabinEconomy:        true,
	CabinPremiumEconomy: true,
	CabinBusiness:       true,
	CabinFirst:          true,
}

// airportCodeRegex matches valid IATA airport codes (3 letters).
var airportCodeRegex = regexp.MustCompile(`^[A-Za-z]{3}$`)

// dateRegex matches dates in YYYY-MM-DD format.
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// PassengerCounts holds the traveler breakdown for a search.
type PassengerCounts struct {
	// Adults is the number of adult travelers (default 1).
	Adults int `json:"adults"`

	// Children is the number of child travelers.
	Children int `json:"children"`

	// Infants is the number of infant travelers.
	Infants int `json:"infants"`
}

// SearchRequest defines the validated parameters for a flight search.
// It is constructed per HTTP call and never persisted.
type SearchRequest struct {
	// Origin is the IATA code of the departure airport.
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival airport.
	Destination string `json:"destination"`

	// DepartureDate is the outbound date in YYYY-MM-DD format.
	DepartureDate string `json:"departureDate"`

	// ReturnDate is the optional inbound date; presence implies
	// round-trip intent.
	ReturnDate string `json:"returnDate,omitempty"`

	// Passengers is the traveler breakdown.
	Passengers PassengerCounts `json:"passengerCounts"`

	// Cabin is the requested travel class (default economy).
	Cabin CabinClass `json:"cabinClass"`

	// TripTypeHint is an optional caller hint; only a round-trip hint
	// affects filtering.
	TripTypeHint TripType `json:"tripType,omitempty"`

	// Stops is the requested exact total stop count. Zero means
	// unconstrained, not nonstop-only.
	Stops int `json:"stops,omitempty"`

	// ResultCap truncates the response (default 50).
	ResultCap int `json:"resultCap"`

	// Currency is the quote currency forwarded to providers verbatim.
	Currency string `json:"currency"`
}

// RoundTrip reports whether the request carries round-trip intent, either
// via an explicit return date or the trip-type hint.
func (r *SearchRequest) RoundTrip() bool {
	return r.ReturnDate != "" || r.TripTypeHint == TripTypeRoundTrip
}

// Validate checks the search request. It returns a wrapped ErrInvalidRequest
// with a distinct message for missing versus malformed parameters.
func (r *SearchRequest) Validate() error {
	if r.Origin == "" {
		return fmt.Errorf("%w: origin is required", ErrInvalidRequest)
	}
	if !airportCodeRegex.MatchString(r.Origin) {
		return fmt.Errorf("%w: origin must be a valid 3-letter IATA code, got %q", ErrInvalidRequest, r.Origin)
	}

	if r.Destination == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidRequest)
	}
	if !airportCodeRegex.MatchString(r.Destination) {
		return fmt.Errorf("%w: destination must be a valid 3-letter IATA code, got %q", ErrInvalidRequest, r.Destination)
	}

	if strings.EqualFold(r.Origin, r.Destination) {
		return fmt.Errorf("%w: origin and destination must be different", ErrInvalidRequest)
	}

	if r.DepartureDate == "" {
		return fmt.Errorf("%w: departureDate is required", ErrInvalidRequest)
	}
	if err := validateDate("departureDate", r.DepartureDate); err != nil {
		return err
	}

	if r.ReturnDate != "" {
		if err := validateDate("returnDate", r.ReturnDate); err != nil {
			return err
		}
	}

	if r.Passengers.Adults < 0 {
		return fmt.Errorf("%w: adults must not be negative", ErrInvalidRequest)
	}
	if r.Passengers.Children < 0 {
		return fmt.Errorf("%w: children must not be negative", ErrInvalidRequest)
	}
	if r.Passengers.Infants < 0 {
		return fmt.Errorf("%w: infants must not be negative", ErrInvalidRequest)
	}

	if r.Cabin != "" && !validCabinClasses[r.Cabin] {
		return fmt.Errorf("%w: cabinClass must be one of: economy, premium_economy, business, first; got %q",
			ErrInvalidRequest, r.Cabin)
	}

	if r.Stops < 0 {
		return fmt.Errorf("%w: stops must not be negative", ErrInvalidRequest)
	}
	if r.ResultCap < 0 {
		return fmt.Errorf("%w: resultCap must be positive", ErrInvalidRequest)
	}

	return nil
}

// validateDate checks a YYYY-MM-DD date parameter.
func validateDate(field, value string) error {
	if !dateRegex.MatchString(value) {
		return fmt.Errorf("%w: %s must be in YYYY-MM-DD format, got %q", ErrInvalidRequest, field, value)
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return fmt.Errorf("%w: %s is not a valid date: %s", ErrInvalidRequest, field, value)
	}
	return nil
}

// SetDefaults applies default values to empty optional fields and uppercases
// the airport codes.
func (r *SearchRequest) SetDefaults() {
	r.Origin = strings.ToUpper(r.Origin)
	r.Destination = strings.ToUpper(r.Destination)

	if r.Passengers.Adults == 0 && r.Passengers.Children == 0 && r.Passengers.Infants == 0 {
		r.Passengers.Adults = 1
	}
	if r.Cabin == "" {
		r.Cabin = CabinEconomy
	}
	if r.ResultCap == 0 {
		r.ResultCap = DefaultResultCap
	}
	if r.Currency == "" {
		r.Currency = DefaultCurrency
	}
	if r.TripTypeHint == "" {
		if r.ReturnDate != "" {
			r.TripTypeHint = TripTypeRoundTrip
		} else {
			r.TripTypeHint = TripTypeOneWay
		}
	}
}
