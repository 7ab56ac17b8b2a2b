package http

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes registers all flight offer API routes.
// It creates a versioned API group and attaches the handler methods.
func RegisterRoutes(e *echo.Echo, h *FlightHandler) {
	// Health check endpoint (no version prefix)
	e.GET("/health", h.Health)

	// Swagger UI
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	api := e.Group("/api/v1")

	flights := api.Group("/flights")
	flights.GET("/search", h.SearchFlights)

	api.GET("/airports", h.Airports)
}

// RegisterRoutesWithMiddleware registers routes with custom middleware.
// This allows for endpoint-specific middleware configuration.
func RegisterRoutesWithMiddleware(e *echo.Echo, h *FlightHandler, middleware ...echo.MiddlewareFunc) {
	// Health check endpoint (no version prefix, no middleware)
	e.GET("/health", h.Health)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group with middleware
	api := e.Group("/api/v1", middleware...)

	flights := api.Group("/flights")
	flights.GET("/search", h.SearchFlights)

	api.GET("/airports", h.Airports)
}
