// Package amadeus adapts the Amadeus GDS flight-offers API to the
// domain.FlightProvider port. Every search performs an OAuth
// client-credentials exchange; tokens are held in a short-lived in-memory
// cache bounded by the provider-reported expiry.
package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/skyfare/flight-offer-aggregator/internal/domain"
	"github.com/skyfare/flight-offer-aggregator/internal/ratelimit"
)

// ProviderName is the unique identifier for the Amadeus provider.
const ProviderName = "amadeus"

// API paths on the Amadeus base URL.
const (
	tokenPath     = "/v1/security/oauth2/token"
	searchPath    = "/v2/shopping/flight-offers"
	locationsPath = "/v1/reference-data/locations"
)

// tokenExpirySkew is subtracted from the reported token lifetime so a token
// is never used right at its expiry boundary.
const tokenExpirySkew = 30 * time.Second

// errMissingCredentials marks an unconfigured client id or secret.
var errMissingCredentials = errors.New("client credentials not configured")

// DefaultTimeout bounds each outbound call.
const DefaultTimeout = 10 * time.Second

// Config holds the adapter settings.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
	// MaxOffers caps the provider-side result count (its "max" param).
	MaxOffers int
}

// Adapter implements domain.FlightProvider for Amadeus.
type Adapter struct {
	cfg     Config
	client  *http.Client
	limiter *ratelimit.ProviderLimiter
	log     zerolog.Logger

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
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

// Search implements domain.FlightProvider. Authentication failures,
// non-success statuses, and malformed payloads are all surfaced as typed
// adapter failures; nothing is retried here.
func (a *Adapter) Search(ctx context.Context, req domain.SearchRequest) ([]domain.FlightOffer, error) {
	if a.cfg.ClientID == "" || a.cfg.ClientSecret == "" {
		return nil, domain.NewAuthError(ProviderName, errMissingCredentials)
	}

	if err := a.wait(ctx); err != nil {
		return nil, domain.NewTransportError(ProviderName, 0, "", err)
	}

	token, err := a.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	query := a.buildSearchQuery(req)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.BaseURL+searchPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, domain.NewTransportError(ProviderName, 0, "", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, domain.NewTransportError(ProviderName, 0, "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewTransportError(ProviderName, resp.StatusCode, "", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.NewTransportError(ProviderName, resp.StatusCode, string(body),
			fmt.Errorf("flight-offers search returned %s", resp.Status))
	}

	var payload searchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, domain.NewParseError(ProviderName, err)
	}

	return normalize(payload, a.log)
}

// buildSearchQuery maps the canonical request to the provider's parameters.
// Zero-valued optional traveler counts are omitted, and round-trip fields
// are only sent when a return date is present.
func (a *Adapter) buildSearchQuery(req domain.SearchRequest) url.Values {
	q := url.Values{}
	q.Set("originLocationCode", req.Origin)
	q.Set("destinationLocationCode", req.Destination)
	q.Set("departureDate", req.DepartureDate)
	q.Set("adults", strconv.Itoa(req.Passengers.Adults))
	q.Set("currencyCode", req.Currency)

	if req.Passengers.Children > 0 {
		q.Set("children", strconv.Itoa(req.Passengers.Children))
	}
	if req.Passengers.Infants > 0 {
		q.Set("infants", strconv.Itoa(req.Passengers.Infants))
	}
	if req.Cabin != "" {
		q.Set("travelClass", strings.ToUpper(string(req.Cabin)))
	}
	if req.ReturnDate != "" {
		q.Set("returnDate", req.ReturnDate)
	}
	if a.cfg.MaxOffers > 0 {
		q.Set("max", strconv.Itoa(a.cfg.MaxOffers))
	}
	return q
}

// accessToken returns a bearer token, reusing the cached one while it is
// still comfortably inside its reported lifetime.
func (a *Adapter) accessToken(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.token != "" && time.Now().Before(a.tokenExpiry) {
		return a.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", a.cfg.ClientID)
	form.Set("client_secret", a.cfg.ClientSecret)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.BaseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", domain.NewAuthError(ProviderName, err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return "", domain.NewAuthError(ProviderName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", domain.NewAuthError(ProviderName,
			fmt.Errorf("token exchange returned %s: %s", resp.Status, string(body)))
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", domain.NewAuthError(ProviderName, err)
	}
	if tok.AccessToken == "" {
		return "", domain.NewAuthError(ProviderName, errors.New("token exchange returned an empty token"))
	}

	a.token = tok.AccessToken
	a.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenExpirySkew)
	return a.token, nil
}

// wait blocks on the outbound rate limiter when one is configured.
func (a *Adapter) wait(ctx context.Context) error {
	if a.limiter == nil {
		return nil
	}
	return a.limiter.Wait(ctx, ProviderName)
}

// Ensure Adapter implements the provider port at compile time.
var _ domain.FlightProvider = (*Adapter)(nil)
