package skyscanner

import "encoding/json"

// searchResponse is the live-search envelope. Itineraries are kept raw so
// each offer can carry its unmodified payload.
type searchResponse struct {
	Itineraries []json.RawMessage `json:"itineraries"`
}

// itineraryPayload is one priced itinerary in the provider's shape.
type itineraryPayload struct {
	ID       string       `json:"id"`
	Legs     []legPayload `json:"legs"`
	Price    pricePayload `json:"price"`
	DeepLink string       `json:"deepLink"`
	Duration int          `json:"duration"`
}

// legPayload is one flown leg.
type legPayload struct {
	Departure         pointPayload     `json:"departure"`
	Arrival           pointPayload     `json:"arrival"`
	DurationInMinutes int              `json:"durationInMinutes"`
	Carriers          []carrierPayload `json:"carriers"`
	FlightNumber      string           `json:"flightNumber"`
	StopCount         int              `json:"stopCount"`
}

// pointPayload is a departure or arrival point.
type pointPayload struct {
	Airport airportPayload `json:"airport"`
	Time    string         `json:"time"`
}

// airportPayload identifies an airport.
type airportPayload struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// carrierPayload identifies an operating carrier.
type carrierPayload struct {
	Name string `json:"name"`
}

// pricePayload carries the itinerary total.
type pricePayload struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}
