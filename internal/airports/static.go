// Package airports provides a static fallback airport directory for the
// lookup endpoint when the live provider directory is unavailable.
package airports

import (
	"strings"

	"github.com/skyfare/flight-offer-aggregator/internal/domain"
)

// fallback is the built-in directory of common airports.
var fallback = []domain.Airport{
	{IATA: "LHR", ICAO: "EGLL", Name: "London Heathrow", City: "London", Country: "United Kingdom", Type: "AIRPORT"},
	{IATA: "JFK", ICAO: "KJFK", Name: "John F Kennedy International", City: "New York", Country: "United States", Type: "AIRPORT"},
	{IATA: "CDG", ICAO: "LFPG", Name: "Charles de Gaulle", City: "Paris", Country: "France", Type: "AIRPORT"},
	{IATA: "AUS", ICAO: "KAUS", Name: "Austin-Bergstrom International", City: "Austin", Country: "United States", Type: "AIRPORT"},
	{IATA: "CMB", ICAO: "VCBI", Name: "Colombo Bandaranaike International", City: "Colombo", Country: "Sri Lanka", Type: "AIRPORT"},
	{IATA: "DXB", ICAO: "OMDB", Name: "Dubai International", City: "Dubai", Country: "United Arab Emirates", Type: "AIRPORT"},
	{IATA: "LAX", ICAO: "KLAX", Name: "Los Angeles International", City: "Los Angeles", Country: "United States", Type: "AIRPORT"},
	{IATA: "SIN", ICAO: "WSSS", Name: "Singapore Changi", City: "Singapore", Country: "Singapore", Type: "AIRPORT"},
	{IATA: "NRT", ICAO: "RJAA", Name: "Tokyo Narita International", City: "Tokyo", Country: "Japan", Type: "AIRPORT"},
	{IATA: "SYD", ICAO: "YSSY", Name: "Sydney Kingsford Smith", City: "Sydney", Country: "Australia", Type: "AIRPORT"},
}

// Search filters the fallback directory by a free-text keyword, matching on
// IATA, ICAO, name, city, and country, case-insensitively.
func Search(keyword string) []domain.Airport {
	needle := strings.ToLower(keyword)

	matches := make([]domain.Airport, 0)
	for _, a := range fallback {
		if strings.Contains(strings.ToLower(a.Name), needle) ||
			strings.Contains(strings.ToLower(a.City), needle) ||
			strings.Contains(strings.ToLower(a.Country), needle) ||
			strings.Contains(strings.ToLower(a.IATA), needle) ||
			strings.Contains(strings.ToLower(a.ICAO), needle) {
			matches = append(matches, a)
		}
	}
	return matches
}

// All returns the full fallback directory.
func All() []domain.Airport {
	out := make([]domain.Airport, len(fallback))
	copy(out, fallback)
	return out
}
