package domain

// SearchResponse is the aggregated, filtered result of a flight search.
type SearchResponse struct {
	// Offers is the merged, filtered, price-sorted offer list.
	Offers []FlightOffer `json:"offers"`

	// Metadata describes how the result set was produced.
	Metadata SearchMetadata `json:"metadata"`

	// AirportsReferenced lists the unique airports appearing in Offers.
	AirportsReferenced []AirportRef `json:"airportsReferenced"`
}

// SearchMetadata carries diagnostics about the aggregation run.
type SearchMetadata struct {
	// ContributingProviders names the providers whose offers are present.
	ContributingProviders []string `json:"contributingProviders"`

	// TotalBeforeFilter is the merged offer count before filtering.
	TotalBeforeFilter int `json:"totalBeforeFilter"`

	// PerProviderErrors maps failed providers to their error strings.
	// Partial failure is non-fatal; the map lets callers see why a
	// provider contributed nothing.
	PerProviderErrors map[string]string `json:"perProviderErrors"`

	// Warnings holds non-fatal notices about the result set.
	Warnings []string `json:"warnings"`

	// SearchTimeMs is the total aggregation wall time in milliseconds.
	SearchTimeMs int64 `json:"searchTimeMs"`

	// CacheHit indicates the merged offers came from the result cache.
	CacheHit bool `json:"cacheHit"`
}

// NewSearchResponse assembles a response, normalizing nil slices and maps so
// the serialized form always carries empty collections instead of null.
func NewSearchResponse(offers []FlightOffer, metadata SearchMetadata) *SearchResponse {
	if offers == nil {
		offers = []FlightOffer{}
	}
	if metadata.ContributingProviders == nil {
		metadata.ContributingProviders = []string{}
	}
	if metadata.PerProviderErrors == nil {
		metadata.PerProviderErrors = map[string]string{}
	}
	if metadata.Warnings == nil {
		metadata.Warnings = []string{}
	}

	airports := ReferencedAirports(offers)
	if airports == nil {
		airports = []AirportRef{}
	}

	return &SearchResponse{
		Offers:             offers,
		Metadata:           metadata,
		AirportsReferenced: airports,
	}
}

// Airport is a directory entry returned by the airport lookup endpoint.
type Airport struct {
	IATA    string `json:"iata"`
	ICAO    string `json:"icao"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
	Type    string `json:"type"`
}
