package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyfare/flight-offer-aggregator/internal/domain"
	"github.com/skyfare/flight-offer-aggregator/internal/usecase"
	"github.com/skyfare/flight-offer-aggregator/test/mock"
)

// TestUseCase_Search_MergesIdenticalOffers verifies the price provenance
// scenario: two providers quote the same physical flight at different
// prices, and the merged offer carries both with the lowest on top.
func TestUseCase_Search_MergesIdenticalOffers(t *testing.T) {
	departure := "2026-03-15T10:00:00"
	expensive := mock.NewProvider("amadeus").WithOffers([]domain.FlightOffer{
		mock.Offer("amadeus", "CDG", "AUS", departure, 500),
	})
	cheap := mock.NewProvider("serpapi").WithOffers([]domain.FlightOffer{
		mock.Offer("serpapi", "CDG", "AUS", departure, 480),
	})

	uc := CreateUseCase(expensive, cheap)

	resp, err := uc.Search(context.Background(), DefaultSearchRequest())

	require.NoError(t, err)
	require.Len(t, resp.Offers, 1)

	offer := resp.Offers[0]
	require.Len(t, offer.PriceOptions, 2)
	assert.Equal(t, "amadeus", offer.PriceOptions[0].Provider)
	assert.Equal(t, "serpapi", offer.PriceOptions[1].Provider)
	assert.Equal(t, 480.0, offer.LowestPrice)
	assert.ElementsMatch(t, []string{"amadeus", "serpapi"}, resp.Metadata.ContributingProviders)
}

// TestUseCase_Search_SortsByLowestPrice verifies the price sort over merged
// offers from different providers.
func TestUseCase_Search_SortsByLowestPrice(t *testing.T) {
	first := mock.NewProvider("amadeus").WithOffers([]domain.FlightOffer{
		mock.Offer("amadeus", "CDG", "AUS", "2026-03-15T08:00:00", 700),
		mock.Offer("amadeus", "CDG", "AUS", "2026-03-15T12:00:00", 450),
	})
	second := mock.NewProvider("serpapi").WithOffers([]domain.FlightOffer{
		mock.Offer("serpapi", "CDG", "AUS", "2026-03-15T16:00:00", 620),
	})

	uc := CreateUseCase(first, second)

	resp, err := uc.Search(context.Background(), DefaultSearchRequest())

	require.NoError(t, err)
	require.Len(t, resp.Offers, 3)
	assert.Equal(t, 450.0, resp.Offers[0].LowestPrice)
	assert.Equal(t, 620.0, resp.Offers[1].LowestPrice)
	assert.Equal(t, 700.0, resp.Offers[2].LowestPrice)
}

// TestUseCase_Search_PartialFailure verifies that provider failures are
// reported per provider without failing the whole search.
func TestUseCase_Search_PartialFailure(t *testing.T) {
	healthy := mock.NewProvider("serpapi").WithOffers(mock.SampleOffers("serpapi", 2))
	failing := mock.NewProvider("skyscanner").WithError(errors.New("connection refused"))

	uc := CreateUseCase(healthy, failing)

	resp, err := uc.Search(context.Background(), DefaultSearchRequest())

	require.NoError(t, err)
	assert.Len(t, resp.Offers, 2)
	assert.Equal(t, "connection refused", resp.Metadata.PerProviderErrors["skyscanner"])
	assert.NotContains(t, resp.Metadata.ContributingProviders, "skyscanner")
}

// TestUseCase_Search_AllProvidersFailed verifies the exhaustion error when
// no provider settles successfully.
func TestUseCase_Search_AllProvidersFailed(t *testing.T) {
	first := mock.NewProvider("amadeus").WithError(errors.New("401 unauthorized"))
	second := mock.NewProvider("serpapi").WithError(errors.New("timeout"))

	uc := CreateUseCase(first, second)

	resp, err := uc.Search(context.Background(), DefaultSearchRequest())

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrAllProvidersFailed)
}

// TestUseCase_Search_NoProviders verifies the exhaustion error on an empty
// registry.
func TestUseCase_Search_NoProviders(t *testing.T) {
	uc := CreateUseCase()

	_, err := uc.Search(context.Background(), DefaultSearchRequest())

	assert.ErrorIs(t, err, domain.ErrAllProvidersFailed)
}

// TestUseCase_Search_ProviderPanic verifies that a panicking provider is
// treated as a failed provider, not a crashed search.
func TestUseCase_Search_ProviderPanic(t *testing.T) {
	healthy := mock.NewProvider("serpapi").WithOffers(mock.SampleOffers("serpapi", 1))
	panicking := mock.NewProvider("amadeus").WithPanic("nil dereference in normalizer")

	uc := CreateUseCase(healthy, panicking)

	resp, err := uc.Search(context.Background(), DefaultSearchRequest())

	require.NoError(t, err)
	assert.Len(t, resp.Offers, 1)
	assert.Contains(t, resp.Metadata.PerProviderErrors["amadeus"], "provider panic")
}

// TestUseCase_Search_SlowProviderTimesOut verifies that a provider slower
// than its budget fails alone while fast siblings still contribute.
func TestUseCase_Search_SlowProviderTimesOut(t *testing.T) {
	fast := mock.NewProvider("serpapi").WithOffers(mock.SampleOffers("serpapi", 2))
	slow := mock.NewProvider("skyscanner").WithDelay(300 * time.Millisecond)

	uc := CreateUseCaseWithConfig(&usecase.Config{
		GlobalTimeout:   2 * time.Second,
		ProviderTimeout: 50 * time.Millisecond,
	}, fast, slow)

	resp, err := uc.Search(context.Background(), DefaultSearchRequest())

	require.NoError(t, err)
	assert.Len(t, resp.Offers, 2)
	assert.Contains(t, resp.Metadata.PerProviderErrors, "skyscanner")
}

// TestUseCase_Search_InvalidRequest verifies domain validation surfaces as
// ErrInvalidRequest.
func TestUseCase_Search_InvalidRequest(t *testing.T) {
	uc := CreateUseCase(mock.NewProvider("serpapi"))

	req := DefaultSearchRequest()
	req.Origin = ""

	_, err := uc.Search(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

// TestUseCase_Search_FilterWarningOnRoundTrip verifies the one-way warning
// when a round-trip search yields only one-way offers.
func TestUseCase_Search_FilterWarningOnRoundTrip(t *testing.T) {
	provider := mock.NewProvider("serpapi").WithOffers(mock.SampleOffers("serpapi", 2))

	uc := CreateUseCase(provider)

	req := DefaultSearchRequest()
	req.ReturnDate = time.Now().AddDate(0, 0, 37).Format("2006-01-02")

	resp, err := uc.Search(context.Background(), req)

	require.NoError(t, err)
	assert.Len(t, resp.Offers, 2)
	assert.NotEmpty(t, resp.Metadata.Warnings)
}
