package serpapi

import "encoding/json"

// searchResponse is the google_flights engine envelope. Flights are kept as
// raw messages so each offer's unmodified payload can be attached.
type searchResponse struct {
	Flights        []json.RawMessage `json:"flights"`
	SearchMetadata searchMetadata    `json:"search_metadata"`
}

// searchMetadata describes the engine run.
type searchMetadata struct {
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	ProcessedAt string `json:"processed_at"`
}

// flightPayload is one flight result in the provider's shape.
type flightPayload struct {
	Type     string `json:"type"`
	Layovers int    `json:"layovers"`
	// Duration is a plain integer minute count.
	Duration         int             `json:"duration"`
	DepartureAirport airportPayload  `json:"departure_airport"`
	ArrivalAirport   airportPayload  `json:"arrival_airport"`
	Airline          string          `json:"airline"`
	AirlineLogo      string          `json:"airline_logo"`
	FlightNumber     string          `json:"flight_number"`
	Price            float64         `json:"price"`
	BookingURL       string          `json:"booking_url"`
	Stops            []layoverDetail `json:"stops"`
}

// airportPayload is a departure or arrival airport reference.
type airportPayload struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	Time string `json:"time"`
}

// layoverDetail is one intermediate stop.
type layoverDetail struct {
	AirportID string `json:"airport_id"`
	Name      string `json:"name"`
	Duration  int    `json:"duration"`
}
