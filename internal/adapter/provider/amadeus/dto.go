package amadeus

import "encoding/json"

// tokenResponse is the OAuth client-credentials exchange response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// searchResponse is the flight-offers search envelope. Data is kept as raw
// messages so each offer's unmodified payload can be attached to its
// normalized form.
type searchResponse struct {
	Data         []json.RawMessage `json:"data"`
	Dictionaries dictionaries      `json:"dictionaries"`
}

// dictionaries resolves carrier and aircraft codes to display names.
// Missing entries fall back to the raw code.
type dictionaries struct {
	Carriers map[string]string `json:"carriers"`
	Aircraft map[string]string `json:"aircraft"`
}

// offerPayload is one flight offer as returned by the provider.
type offerPayload struct {
	ID                    string      `json:"id"`
	OneWay                bool        `json:"oneWay"`
	NumberOfBookableSeats int         `json:"numberOfBookableSeats"`
	Itineraries           []itinerary `json:"itineraries"`
	Price                 offerPrice  `json:"price"`
}

// itinerary groups the segments of one direction of travel.
type itinerary struct {
	// Duration is an ISO-8601 duration string such as "PT11H30M".
	Duration string           `json:"duration"`
	Segments []segmentPayload `json:"segments"`
}

// segmentPayload is one flown leg in the provider's shape.
type segmentPayload struct {
	Departure     endpointPayload `json:"departure"`
	Arrival       endpointPayload `json:"arrival"`
	CarrierCode   string          `json:"carrierCode"`
	Number        string          `json:"number"`
	Aircraft      aircraftRef     `json:"aircraft"`
	Cabin         string          `json:"cabin"`
	Duration      string          `json:"duration"`
	NumberOfStops int             `json:"numberOfStops"`
}

// endpointPayload is a departure or arrival point.
type endpointPayload struct {
	IataCode string `json:"iataCode"`
	Terminal string `json:"terminal"`
	At       string `json:"at"`
}

// aircraftRef carries the aircraft type code.
type aircraftRef struct {
	Code string `json:"code"`
}

// offerPrice carries the priced total as decimal strings.
type offerPrice struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	Base       string `json:"base"`
	GrandTotal string `json:"grandTotal"`
}

// locationsResponse is the reference-data locations envelope.
type locationsResponse struct {
	Data []locationPayload `json:"data"`
}

// locationPayload is one airport or city entry.
type locationPayload struct {
	IataCode string `json:"iataCode"`
	IcaoCode string `json:"icaoCode"`
	Name     string `json:"name"`
	SubType  string `json:"subType"`
	Address  struct {
		CityName    string `json:"cityName"`
		CountryName string `json:"countryName"`
	} `json:"address"`
}
