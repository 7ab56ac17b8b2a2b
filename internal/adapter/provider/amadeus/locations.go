package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/skyfare/flight-offer-aggregator/internal/domain"
	"github.com/skyfare/flight-offer-aggregator/internal/infrastructure/retry"
)

// Locations searches the provider's airport/city directory by free-text
// keyword. Transient failures are retried; auth failures are not.
func (a *Adapter) Locations(ctx context.Context, keyword string) ([]domain.Airport, error) {
	if a.cfg.ClientID == "" || a.cfg.ClientSecret == "" {
		return nil, domain.NewAuthError(ProviderName, errMissingCredentials)
	}

	cfg := retry.ProviderConfig.WithRetryIf(retry.SkipPermanent)
	return retry.DoWithResult(ctx, func() ([]domain.Airport, error) {
		return a.fetchLocations(ctx, keyword)
	}, cfg)
}

// fetchLocations performs one directory lookup.
func (a *Adapter) fetchLocations(ctx context.Context, keyword string) ([]domain.Airport, error) {
	token, err := a.accessToken(ctx)
	if err != nil {
		// Credential problems will not heal between attempts.
		return nil, retry.NewPermanent(err)
	}

	q := url.Values{}
	q.Set("subType", "AIRPORT,CITY")
	q.Set("keyword", keyword)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.BaseURL+locationsPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, retry.NewPermanent(domain.NewTransportError(ProviderName, 0, "", err))
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, domain.NewTransportError(ProviderName, 0, "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		transportErr := domain.NewTransportError(ProviderName, resp.StatusCode, string(body),
			fmt.Errorf("locations lookup returned %s", resp.Status))
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, retry.NewPermanent(transportErr)
		}
		return nil, transportErr
	}

	var payload locationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, retry.NewPermanent(domain.NewParseError(ProviderName, err))
	}

	airports := make([]domain.Airport, 0, len(payload.Data))
	for _, loc := range payload.Data {
		airports = append(airports, domain.Airport{
			IATA:    loc.IataCode,
			ICAO:    loc.IcaoCode,
			Name:    loc.Name,
			City:    loc.Address.CityName,
			Country: loc.Address.CountryName,
			Type:    loc.SubType,
		})
	}
	return airports, nil
}
