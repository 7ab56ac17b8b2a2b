package http

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/skyfare/flight-offer-aggregator/internal/adapter/http/response"
	"github.com/skyfare/flight-offer-aggregator/internal/airports"
	"github.com/skyfare/flight-offer-aggregator/internal/domain"
	"github.com/skyfare/flight-offer-aggregator/internal/infrastructure/logger"
	"github.com/skyfare/flight-offer-aggregator/internal/usecase"
)

// AirportDirectory looks up airports by keyword against a live reference
// data source.
type AirportDirectory interface {
	Locations(ctx context.Context, keyword string) ([]domain.Airport, error)
}

// FlightHandler handles HTTP requests for flight-related endpoints.
type FlightHandler struct {
	useCase     usecase.FlightSearchUseCase
	directory   AirportDirectory
	log         *logger.Logger
	serviceName string
}

// NewFlightHandler creates a new FlightHandler. The directory may be nil,
// in which case airport lookups are served from the static fallback list.
func NewFlightHandler(uc usecase.FlightSearchUseCase, directory AirportDirectory, log *logger.Logger, serviceName string) *FlightHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &FlightHandler{
		useCase:     uc,
		directory:   directory,
		log:         log,
		serviceName: serviceName,
	}
}

// SearchFlights handles GET /api/v1/flights/search
//
// @Summary Search for flights
// @Description Search for available flight offers across multiple providers
// @Tags flights
// @Produce json
// @Param origin query string true "Origin IATA code"
// @Param destination query string true "Destination IATA code"
// @Param departureDate query string true "Departure date (YYYY-MM-DD)"
// @Param returnDate query string false "Return date (YYYY-MM-DD)"
// @Param adults query int false "Number of adult travelers" default(1)
// @Param children query int false "Number of child travelers"
// @Param infants query int false "Number of infant travelers"
// @Param cabinClass query string false "Cabin class" Enums(economy, premium_economy, business, first)
// @Param tripType query string false "Trip type hint" Enums(oneway, roundtrip)
// @Param stops query int false "Exact total stop count (0 = any)"
// @Param max query int false "Maximum number of results" default(50)
// @Param currency query string false "Quote currency" default(USD)
// @Success 200 {object} domain.SearchResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 503 {object} response.ErrorDetail "All providers failed"
// @Failure 504 {object} response.ErrorDetail "Gateway timeout"
// @Router /api/v1/flights/search [get]
func (h *FlightHandler) SearchFlights(c echo.Context) error {
	var query SearchFlightsQuery

	if err := c.Bind(&query); err != nil {
		return response.BadRequest(c, "failed to parse query parameters")
	}

	if err := query.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	req := toSearchRequest(&query)

	result, err := h.useCase.Search(c.Request().Context(), req)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.SearchResults(c, result)
}

// Airports handles GET /api/v1/airports
//
// @Summary Look up airports
// @Description Search airports by keyword, with a static fallback when the reference data source is unavailable
// @Tags airports
// @Produce json
// @Param keyword query string true "Search keyword (IATA code, city, or airport name)"
// @Success 200 {object} response.AirportsResponse
// @Failure 400 {object} response.ErrorDetail "Missing keyword"
// @Router /api/v1/airports [get]
func (h *FlightHandler) Airports(c echo.Context) error {
	keyword := c.QueryParam("keyword")
	if keyword == "" {
		return response.BadRequest(c, "keyword is required")
	}

	if h.directory != nil {
		result, err := h.directory.Locations(c.Request().Context(), keyword)
		if err == nil {
			return response.Airports(c, result, "directory")
		}
		h.log.Warn().Err(err).Str("keyword", keyword).Msg("airport directory lookup failed, using fallback")
	}

	return response.Airports(c, airports.Search(keyword), "fallback")
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *FlightHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	return response.BadRequest(c, err.Error())
}

// handleError maps domain errors to appropriate HTTP responses.
func (h *FlightHandler) handleError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrAllProvidersFailed) {
		return response.ProvidersExhausted(c)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return response.GatewayTimeout(c)
	}

	if errors.Is(err, context.Canceled) {
		return response.RequestCancelled(c)
	}

	if errors.Is(err, domain.ErrInvalidRequest) {
		return response.BadRequest(c, err.Error())
	}

	return response.InternalServerError(c)
}

// Health handles GET /health
// Simple health check endpoint.
func (h *FlightHandler) Health(c echo.Context) error {
	return response.Health(c, h.serviceName)
}
