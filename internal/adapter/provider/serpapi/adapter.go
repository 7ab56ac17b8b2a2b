// Package serpapi adapts a web-search flight engine (Google Flights data via
// SerpAPI) to the domain.FlightProvider port. Provider-reported errors keep
// their original status code and body inside the returned transport error so
// callers can tell them apart from transport-level failures.
package serpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/skyfare/flight-offer-aggregator/internal/domain"
	"github.com/skyfare/flight-offer-aggregator/internal/ratelimit"
)

// ProviderName is the unique identifier for this provider.
const ProviderName = "serpapi"

// DefaultTimeout bounds each outbound call. The engine crawls live fare
// data, so it gets a slightly longer budget than a plain API.
const DefaultTimeout = 15 * time.Second

// Trip type codes used by the engine's "type" request parameter.
const (
	tripCodeRoundTrip = "2"
	tripCodeOneWay    = "1"
)

// errMissingAPIKey marks an unconfigured API key, fatal for this adapter.
var errMissingAPIKey = errors.New("api key not configured")

// Config holds the adapter settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Adapter implements domain.FlightProvider for the web-search engine.
type Adapter struct {
	cfg     Config
	client  *http.Client
	limiter *ratelimit.ProviderLimiter
	log     zerolog.Logger
}

// NewAdapter creates the adapter. A nil limiter disables throttling.
func NewAdapter(cfg Config, limiter *ratelimit.ProviderLimiter, log zerolog.Logger) *Adapter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Adapter{
		cfg:     cfg,
		client:  &http.Client{Timeout: timeout},
		limiter: limiter,
		log:     log,
	}
}

// Name returns the provider identifier.
func (a *Adapter) Name() string {
	return ProviderName
}

// Search implements domain.FlightProvider.
func (a *Adapter) Search(ctx context.Context, req domain.SearchRequest) ([]domain.FlightOffer, error) {
	if a.cfg.APIKey == "" {
		return nil, domain.NewAuthError(ProviderName, errMissingAPIKey)
	}

	if a.limiter != nil {
		if err := a.limiter.Wait(ctx, ProviderName); err != nil {
			return nil, domain.NewTransportError(ProviderName, 0, "", err)
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		a.cfg.BaseURL+"/search?"+a.buildQuery(req).Encode(), nil)
	if err != nil {
		return nil, domain.NewTransportError(ProviderName, 0, "", err)
	}

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, domain.NewTransportError(ProviderName, 0, "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewTransportError(ProviderName, resp.StatusCode, "", err)
	}

	// Non-success responses propagate the engine's own error payload and
	// status code unchanged.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.NewTransportError(ProviderName, resp.StatusCode, string(body),
			fmt.Errorf("flight search returned %s", resp.Status))
	}

	var payload searchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, domain.NewParseError(ProviderName, err)
	}

	return a.normalize(payload, req)
}

// buildQuery maps the canonical request to the engine's parameters.
func (a *Adapter) buildQuery(req domain.SearchRequest) url.Values {
	q := url.Values{}
	q.Set("api_key", a.cfg.APIKey)
	q.Set("engine", "google_flights")
	q.Set("departure_airport", req.Origin)
	q.Set("arrival_airport", req.Destination)
	q.Set("outbound_date", req.DepartureDate)
	q.Set("adults", strconv.Itoa(req.Passengers.Adults))
	q.Set("currency", req.Currency)
	q.Set("class", string(req.Cabin))

	if req.Passengers.Children > 0 {
		q.Set("children", strconv.Itoa(req.Passengers.Children))
	}
	if req.Passengers.Infants > 0 {
		q.Set("infants", strconv.Itoa(req.Passengers.Infants))
	}

	if req.ReturnDate != "" {
		q.Set("return_date", req.ReturnDate)
		q.Set("type", tripCodeRoundTrip)
	} else {
		q.Set("type", tripCodeOneWay)
	}
	return q
}

// Ensure Adapter implements the provider port at compile time.
var _ domain.FlightProvider = (*Adapter)(nil)
