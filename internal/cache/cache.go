// Package cache provides an optional short-TTL cache for merged aggregation
// results. Cached entries hold the pre-filter merged offer list, so the
// filter pipeline still runs on every request.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skyfare/flight-offer-aggregator/internal/domain"
)

// Entry is one cached aggregation result.
type Entry struct {
	// Offers is the merged, price-sorted offer list before filtering.
	Offers []domain.FlightOffer `json:"offers"`

	// Providers names the providers that contributed to Offers.
	Providers []string `json:"providers"`
}

// Cache stores merged aggregation results keyed by the canonical request.
type Cache interface {
	Get(ctx context.Context, req domain.SearchRequest) (Entry, bool)
	Set(ctx context.Context, req domain.SearchRequest, entry Entry) error
	Close() error
}

// Config holds redis cache settings.
type Config struct {
	// Addr is the redis host:port. Empty disables caching entirely.
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// DefaultTTL bounds how stale a cached result may get. Provider quotes age
// quickly, so the window is short.
const DefaultTTL = 2 * time.Minute

// Redis is a Cache backed by a redis instance.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to redis and verifies the connection with a ping.
func NewRedis(cfg Config) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Redis{client: client, ttl: ttl}, nil
}

// Get looks up the cached entry for a request.
func (c *Redis) Get(ctx context.Context, req domain.SearchRequest) (Entry, bool) {
	data, err := c.client.Get(ctx, Key(req)).Bytes()
	if err != nil {
		return Entry{}, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, false
	}
	return entry, true
}

// Set stores the entry with the configured TTL.
func (c *Redis) Set(ctx context.Context, req domain.SearchRequest, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, Key(req), data, c.ttl).Err()
}

// Close releases the redis connection.
func (c *Redis) Close() error {
	return c.client.Close()
}

// NoOp is a Cache that never hits. It is used when no redis address is
// configured.
type NoOp struct{}

// NewNoOp creates a disabled cache.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Get always misses.
func (*NoOp) Get(context.Context, domain.SearchRequest) (Entry, bool) {
	return Entry{}, false
}

// Set discards the entry.
func (*NoOp) Set(context.Context, domain.SearchRequest, Entry) error {
	return nil
}

// Close is a no-op.
func (*NoOp) Close() error {
	return nil
}

// Key derives a deterministic cache key from the fields that influence the
// provider fan-out. Filter-only fields (stops, result cap) are excluded so
// differently filtered views share one upstream fetch.
func Key(req domain.SearchRequest) string {
	keyData := struct {
		Origin        string
		Destination   string
		DepartureDate string
		ReturnDate    string
		Adults        int
		Children      int
		Infants       int
		Cabin         domain.CabinClass
		Currency      string
	}{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Adults:        req.Passengers.Adults,
		Children:      req.Passengers.Children,
		Infants:       req.Passengers.Infants,
		Cabin:         req.Cabin,
		Currency:      req.Currency,
	}

	data, _ := json.Marshal(keyData)
	hash := sha256.Sum256(data)
	return "offers:" + hex.EncodeToString(hash[:])
}

// Ensure implementations satisfy Cache at compile time.
var (
	_ Cache = (*Redis)(nil)
	_ Cache = (*NoOp)(nil)
)
