package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrLocationNotFound = errors.New("location not found")

// Geocoder resolves a free-form address or city name to coordinates.
type Geocoder interface {
	Lookup(ctx context.Context, query string) (Coordinates, error)
}

// Resolver is the unified lookup path: the static city table is the
// fast path, the remote geocoder the fallback, with results cached in
// Redis so repeated fallback lookups stay off the network.
type Resolver struct {
	fallback Geocoder
	redis    *redis.Client
	cacheTTL time.Duration
}

func NewResolver(fallback Geocoder, redisClient *redis.Client, cacheTTL time.Duration) *Resolver {
	return &Resolver{
		fallback: fallback,
		redis:    redisClient,
		cacheTTL: cacheTTL,
	}
}

func (r *Resolver) Lookup(ctx context.Context, query string) (Coordinates, error) {
	if coords, ok := CityToCoordinates(query); ok {
		return coords, nil
	}

	cacheKey := "geocode:" + query
	if r.redis != nil {
		if cached, err := r.redis.Get(ctx, cacheKey).Result(); err == nil {
			var coords Coordinates
			if json.Unmarshal([]byte(cached), &coords) == nil {
				return coords, nil
			}
		}
	}

	if r.fallback == nil {
		return Coordinates{}, ErrLocationNotFound
	}

	coords, err := r.fallback.Lookup(ctx, query)
	if err != nil {
		return Coordinates{}, err
	}

	if r.redis != nil {
		if payload, err := json.Marshal(coords); err == nil {
			_ = r.redis.Set(ctx, cacheKey, payload, r.cacheTTL).Err()
		}
	}

	return coords, nil
}

// HTTPGeocoder queries a Nominatim-compatible search endpoint.
type HTTPGeocoder struct {
	baseURL string
	client  *http.Client
}

func NewHTTPGeocoder(baseURL string, timeout time.Duration) *HTTPGeocoder {
	return &HTTPGeocoder{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (g *HTTPGeocoder) Lookup(ctx context.Context, query string) (Coordinates, error) {
	endpoint := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", g.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Coordinates{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geocoder request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Coordinates{}, fmt.Errorf("geocoder response decode failed: %w", err)
	}
	if len(results) == 0 {
		return Coordinates{}, ErrLocationNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geocoder returned bad latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geocoder returned bad longitude: %w", err)
	}

	return Coordinates{Lat: lat, Lon: lon}, nil
}
