// Package skyscanner adapts a regional fare aggregator (Skyscanner via a
// RapidAPI gateway) to the domain.FlightProvider port. The integration is
// best-effort: every failure is swallowed locally and reported as an empty
// result list, so this adapter's absence never fails the aggregate search.
package skyscanner

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/skyfare/flight-offer-aggregator/internal/domain"
	"github.com/skyfare/flight-offer-aggregator/internal/ratelimit"
)

// ProviderName is the unique identifier for this provider.
const ProviderName = "skyscanner"

// searchPath is the live flight search endpoint on the gateway.
const searchPath = "/v3/flights/search-live"

// DefaultTimeout bounds each outbound call.
const DefaultTimeout = 10 * time.Second

// Config holds the adapter settings.
type Config struct {
	BaseURL string
	APIKey  string
	// Host is the gateway host header value.
	Host    string
	Timeout time.Duration
}

// Adapter implements domain.FlightProvider for the regional aggregator.
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

// Search implements domain.FlightProvider. It never returns an error: any
// failure is logged and reported as an empty contribution.
func (a *Adapter) Search(ctx context.Context, req domain.SearchRequest) ([]domain.FlightOffer, error) {
	offers, err := a.search(ctx, req)
	if err != nil {
		a.log.Warn().Str("provider", ProviderName).Err(err).Msg("Best-effort search failed")
		return []domain.FlightOffer{}, nil
	}
	return offers, nil
}

// search performs the actual lookup; Search decides what to do with its
// failures.
func (a *Adapter) search(ctx context.Context, req domain.SearchRequest) ([]domain.FlightOffer, error) {
	if a.cfg.APIKey == "" {
		return nil, domain.NewAuthError(ProviderName, errMissingAPIKey)
	}

	if a.limiter != nil {
		if err := a.limiter.Wait(ctx, ProviderName); err != nil {
			return nil, domain.NewTransportError(ProviderName, 0, "", err)
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		a.cfg.BaseURL+searchPath+"?"+a.buildQuery(req).Encode(), nil)
	if err != nil {
		return nil, domain.NewTransportError(ProviderName, 0, "", err)
	}
	httpReq.Header.Set("x-rapidapi-key", a.cfg.APIKey)
	httpReq.Header.Set("x-rapidapi-host", a.cfg.Host)

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, domain.NewTransportError(ProviderName, 0, "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, domain.NewTransportError(ProviderName, resp.StatusCode, string(body), errSearchFailed)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, domain.NewParseError(ProviderName, err)
	}

	return normalize(payload)
}

// buildQuery maps the canonical request to the gateway's parameters. Dates
// are compacted to YYYYMMDD as the gateway expects.
func (a *Adapter) buildQuery(req domain.SearchRequest) url.Values {
	q := url.Values{}
	q.Set("originSkyId", req.Origin)
	q.Set("destinationSkyId", req.Destination)
	q.Set("date", compactDate(req.DepartureDate))
	q.Set("adults", strconv.Itoa(req.Passengers.Adults))
	q.Set("cabinClass", string(req.Cabin))
	q.Set("currency", req.Currency)

	if req.ReturnDate != "" {
		q.Set("returnDate", compactDate(req.ReturnDate))
	}
	return q
}

// compactDate strips the dashes from a YYYY-MM-DD date.
func compactDate(date string) string {
	return strings.ReplaceAll(date, "-", "")
}

// Ensure Adapter implements the provider port at compile time.
var _ domain.FlightProvider = (*Adapter)(nil)
