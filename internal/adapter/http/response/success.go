package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Health writes a health check response.
func Health(c echo.Context, service string) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status:  "ok",
		Service: service,
	})
}

// SearchResults writes a 200 OK response with search results.
func SearchResults(c echo.Context, results interface{}) error {
	return c.JSON(http.StatusOK, results)
}

// AirportsResponse wraps an airport lookup result.
type AirportsResponse struct {
	Airports interface{} `json:"airports"`
	Source   string      `json:"source"`
}

// Airports writes a 200 OK response with airport lookup results. Source
// indicates whether the data came from the live directory or the static
// fallback list.
func Airports(c echo.Context, airports interface{}, source string) error {
	return c.JSON(http.StatusOK, &AirportsResponse{
		Airports: airports,
		Source:   source,
	})
}
