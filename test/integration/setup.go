// Package integration provides helpers and integration tests for the flight
// offer aggregator. Integration tests verify that components work together
// correctly, including HTTP handlers, use cases, and mock providers.
package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	httpAdapter "github.com/skyfare/flight-offer-aggregator/internal/adapter/http"
	"github.com/skyfare/flight-offer-aggregator/internal/domain"
	"github.com/skyfare/flight-offer-aggregator/internal/infrastructure/logger"
	"github.com/skyfare/flight-offer-aggregator/internal/usecase"
)

// TestServer wraps an Echo instance and provides helper methods for integration testing.
type TestServer struct {
	Echo    *echo.Echo
	Handler *httpAdapter.FlightHandler
}

// NewTestServer creates a new test server with the given use case.
func NewTestServer(uc usecase.FlightSearchUseCase) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	handler := httpAdapter.NewFlightHandler(uc, nil, logger.Nop(), "flight-offer-aggregator-test")
	httpAdapter.RegisterRoutes(e, handler)

	return &TestServer{
		Echo:    e,
		Handler: handler,
	}
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Get executes a GET request against the test server.
func (ts *TestServer) Get(path string, params url.Values) Response {
	target := path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	httpReq := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// SearchRequest executes a flight search with the given query parameters.
func (ts *TestServer) SearchRequest(params url.Values) Response {
	return ts.Get("/api/v1/flights/search", params)
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Get("/health", nil)
}

// ParseSearchResponse parses the response body as a SearchResponse.
func (r *Response) ParseSearchResponse() (*domain.SearchResponse, error) {
	var resp domain.SearchResponse
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseError parses the response body to extract error information.
func (r *Response) ParseError() (map[string]interface{}, error) {
	var errResp map[string]interface{}
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return nil, err
	}
	return errResp, nil
}

// DefaultSearchParams returns valid search query parameters for testing.
// Uses a date 30 days in the future to keep the request realistic.
func DefaultSearchParams() url.Values {
	params := url.Values{}
	params.Set("origin", "CDG")
	params.Set("destination", "AUS")
	params.Set("departureDate", FutureDate())
	params.Set("adults", "1")
	return params
}

// CreateRegistry builds a provider registry from the given providers,
// preserving order.
func CreateRegistry(providers ...domain.FlightProvider) *domain.ProviderRegistry {
	registry := domain.NewProviderRegistry()
	for _, p := range providers {
		registry.Register(p)
	}
	return registry
}

// CreateUseCase creates a use case with the given providers and default configuration.
func CreateUseCase(providers ...domain.FlightProvider) usecase.FlightSearchUseCase {
	return usecase.NewFlightSearchUseCase(CreateRegistry(providers...), nil)
}

// CreateUseCaseWithConfig creates a use case with custom configuration.
func CreateUseCaseWithConfig(config *usecase.Config, providers ...domain.FlightProvider) usecase.FlightSearchUseCase {
	return usecase.NewFlightSearchUseCase(CreateRegistry(providers...), config)
}

// FutureDate returns a date string 30 days in the future in YYYY-MM-DD format.
func FutureDate() string {
	return time.Now().AddDate(0, 0, 30).Format("2006-01-02")
}

// DefaultSearchRequest returns a valid domain request for exercising the use case directly.
func DefaultSearchRequest() domain.SearchRequest {
	return domain.SearchRequest{
		Origin:        "CDG",
		Destination:   "AUS",
		DepartureDate: FutureDate(),
		Passengers:    domain.PassengerCounts{Adults: 1},
	}
}
