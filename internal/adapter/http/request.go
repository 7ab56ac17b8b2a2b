// Package http provides the HTTP handler layer for the flight search API.
// It handles request parsing, validation, response formatting, and error
// mapping.
package http

import (
	"regexp"
	"strings"
	"time"
)

// SearchFlightsQuery carries the raw query parameters of a search request.
type SearchFlightsQuery struct {
	// Origin is the IATA code of the departure airport.
	Origin string `query:"origin"`

	// Destination is the IATA code of the arrival airport.
	Destination string `query:"destination"`

	// DepartureDate is the outbound date in YYYY-MM-DD format.
	DepartureDate string `query:"departureDate"`

	// ReturnDate is the optional inbound date.
	ReturnDate string `query:"returnDate"`

	// Adults, Children, Infants are the traveler counts (default 1/0/0).
	Adults   *int `query:"adults"`
	Children *int `query:"children"`
	Infants  *int `query:"infants"`

	// CabinClass is the travel class (default economy).
	CabinClass string `query:"cabinClass"`

	// TripType is a hint: oneway/roundtrip, or the numeric aliases 1/2.
	TripType string `query:"tripType"`

	// Stops requests an exact total stop count; 0 or absent means
	// unconstrained.
	Stops *int `query:"stops"`

	// Max caps the result count (default 50).
	Max *int `query:"max"`

	// Currency is the quote currency (default USD).
	Currency string `query:"currency"`
}

// Validation regex patterns.
var (
	airportCodePattern = regexp.MustCompile(`^[A-Za-z]{3}$`)
	datePattern        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// validCabinClasses defines the allowed travel classes. Empty defaults to
// economy.
var validCabinClasses = map[string]bool{
	"economy":         true,
	"premium_economy": true,
	"business":        true,
	"first":           true,
	"":                true,
}

// validTripTypes defines the accepted trip type hints, including the
// numeric aliases used by the search UI.
var validTripTypes = map[string]bool{
	"oneway":    true,
	"roundtrip": true,
	"1":         true,
	"2":         true,
	"":          true,
}

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API responses.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// Validate checks the query and returns any validation errors. A missing
// required parameter and a malformed one produce distinct messages.
func (q *SearchFlightsQuery) Validate() error {
	errs := &ValidationErrors{}

	q.validateAirport(errs, "origin", &q.Origin)
	q.validateAirport(errs, "destination", &q.Destination)

	if q.Origin != "" && q.Destination != "" && strings.EqualFold(q.Origin, q.Destination) {
		errs.Add("destination", "origin and destination must be different")
	}

	if q.DepartureDate == "" {
		errs.Add("departureDate", "departureDate is required")
	} else {
		validateDateField(errs, "departureDate", q.DepartureDate)
	}

	if q.ReturnDate != "" {
		validateDateField(errs, "returnDate", q.ReturnDate)
	}

	validateCount(errs, "adults", q.Adults)
	validateCount(errs, "children", q.Children)
	validateCount(errs, "infants", q.Infants)

	if !validCabinClasses[strings.ToLower(q.CabinClass)] {
		errs.Add("cabinClass", "cabinClass must be one of: economy, premium_economy, business, first")
	}

	if !validTripTypes[strings.ToLower(q.TripType)] {
		errs.Add("tripType", "tripType must be oneway or roundtrip")
	}

	if q.Stops != nil && *q.Stops < 0 {
		errs.Add("stops", "stops must be a non-negative number")
	}
	if q.Max != nil && *q.Max < 1 {
		errs.Add("max", "max must be a positive number")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// validateAirport checks a required IATA code field and normalizes it.
func (q *SearchFlightsQuery) validateAirport(errs *ValidationErrors, field string, value *string) {
	if *value == "" {
		errs.Add(field, field+" is required")
		return
	}
	if !airportCodePattern.MatchString(*value) {
		errs.Add(field, field+" must be a valid 3-letter IATA airport code")
		return
	}
	*value = strings.ToUpper(*value)
}

// validateDateField checks a YYYY-MM-DD date parameter.
func validateDateField(errs *ValidationErrors, field, value string) {
	if !datePattern.MatchString(value) {
		errs.Add(field, field+" must be in YYYY-MM-DD format")
		return
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		errs.Add(field, field+" is not a valid date")
	}
}

// validateCount checks an optional traveler count parameter.
func validateCount(errs *ValidationErrors, field string, value *int) {
	if value != nil && *value < 0 {
		errs.Add(field, field+" must be a non-negative number")
	}
}
