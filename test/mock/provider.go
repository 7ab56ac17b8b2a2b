// Package mock provides test doubles for the flight offer aggregator.
// These mocks are designed for integration testing where we need
// configurable behavior (delays, errors, specific responses).
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/skyfare/flight-offer-aggregator/internal/domain"
)

// Provider is a configurable mock implementation of domain.FlightProvider.
// It supports configurable delays, errors, and responses for testing
// various scenarios including timeouts and partial failures.
type Provider struct {
	name      string
	offers    []domain.FlightOffer
	err       error
	delay     time.Duration
	panicMsg  string
	callCount int
	mu        sync.Mutex
}

// NewProvider creates a new mock provider with the given name.
// The provider is configured using the builder pattern methods.
func NewProvider(name string) *Provider {
	return &Provider{name: name}
}

// WithOffers configures the provider to return the given offers.
func (p *Provider) WithOffers(offers []domain.FlightOffer) *Provider {
	p.offers = offers
	return p
}

// WithError configures the provider to return the given error.
func (p *Provider) WithError(err error) *Provider {
	p.err = err
	return p
}

// WithDelay configures the provider to wait the given duration before responding.
// This is useful for testing timeout behavior.
func (p *Provider) WithDelay(d time.Duration) *Provider {
	p.delay = d
	return p
}

// WithPanic configures the provider to panic with the given message.
func (p *Provider) WithPanic(msg string) *Provider {
	p.panicMsg = msg
	return p
}

// Name returns the provider's unique identifier.
func (p *Provider) Name() string {
	return p.name
}

// Search implements domain.FlightProvider.Search.
// It respects context cancellation, applies configured delay,
// and returns configured offers or error.
func (p *Provider) Search(ctx context.Context, req domain.SearchRequest) ([]domain.FlightOffer, error) {
	p.mu.Lock()
	p.callCount++
	p.mu.Unlock()

	if p.panicMsg != "" {
		panic(p.panicMsg)
	}

	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.delay):
		}
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if p.err != nil {
		return nil, p.err
	}

	return p.offers, nil
}

// CallCount returns the number of times Search was called.
// This is useful for verifying provider interactions.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.callCount
}

// Reset resets the call count to zero.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callCount = 0
}

// Ensure Provider implements domain.FlightProvider at compile time.
var _ domain.FlightProvider = (*Provider)(nil)

// Offer builds a single one-way offer between the given airports with one
// price option from the given provider. The departure time fixes the offer
// identity, so two providers quoting the same time produce mergeable offers.
func Offer(provider, origin, destination, departure string, price float64) domain.FlightOffer {
	segment := domain.FlightSegment{
		Departure: domain.SegmentPoint{
			AirportCode: origin,
			LocalTime:   departure,
		},
		Arrival: domain.SegmentPoint{
			AirportCode: destination,
			LocalTime:   "2026-03-15T18:45:00",
		},
		Duration:     domain.NewMinutesDuration(525),
		CarrierName:  providerToCarrier(provider),
		FlightNumber: providerToCarrierCode(provider) + " 101",
		CabinClass:   "ECONOMY",
	}

	offer := domain.FlightOffer{
		Segments:             []domain.FlightSegment{segment},
		TotalDurationMinutes: 525,
		TripType:             domain.TripTypeOneWay,
		PriceOptions: []domain.PriceOption{
			{Provider: provider, Price: price, Currency: "USD"},
		},
	}
	offer.ID = domain.BuildOfferID(offer.Segments)
	offer.RecomputeLowestPrice()
	return offer
}

// SampleOffers returns count distinct one-way offers from the given
// provider, with increasing departure times and prices.
func SampleOffers(provider string, count int) []domain.FlightOffer {
	offers := make([]domain.FlightOffer, count)

	base := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		departure := base.Add(time.Duration(i*2) * time.Hour).Format("2006-01-02T15:04:05")
		offers[i] = Offer(provider, "CDG", "AUS", departure, 500+float64(i*25))
	}

	return offers
}

// providerToCarrier maps provider names to a carrier display name.
func providerToCarrier(provider string) string {
	names := map[string]string{
		"amadeus":    "Air France",
		"serpapi":    "British Airways",
		"skyscanner": "Lufthansa",
	}
	if name, ok := names[provider]; ok {
		return name
	}
	return fmt.Sprintf("%s Airlines", provider)
}

// providerToCarrierCode maps provider names to an IATA carrier code.
func providerToCarrierCode(provider string) string {
	codes := map[string]string{
		"amadeus":    "AF",
		"serpapi":    "BA",
		"skyscanner": "LH",
	}
	if code, ok := codes[provider]; ok {
		return code
	}
	return "XX"
}
