package geo_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pasar-kerja/internal/service/geo"

	"github.com/stretchr/testify/assert"
)

type stubGeocoder struct {
	coords geo.Coordinates
	err    error
	calls  int
}

func (s *stubGeocoder) Lookup(ctx context.Context, query string) (geo.Coordinates, error) {
	s.calls++
	return s.coords, s.err
}

func TestResolver_Lookup(t *testing.T) {
	ctx := context.Background()

	t.Run("Static Table Fast Path", func(t *testing.T) {
		fallback := &stubGeocoder{}
		resolver := geo.NewResolver(fallback, nil, time.Hour)

		coords, err := resolver.Lookup(ctx, "Pune")

		assert.NoError(t, err)
		assert.InDelta(t, 18.5204, coords.Lat, 0.0001)
		assert.Zero(t, fallback.calls)
	})

	t.Run("Falls Back For Unknown Locations", func(t *testing.T) {
		fallback := &stubGeocoder{coords: geo.Coordinates{Lat: 48.8566, Lon: 2.3522}}
		resolver := geo.NewResolver(fallback, nil, time.Hour)

		coords, err := resolver.Lookup(ctx, "Paris")

		assert.NoError(t, err)
		assert.InDelta(t, 48.8566, coords.Lat, 0.0001)
		assert.Equal(t, 1, fallback.calls)
	})

	t.Run("Fallback Error Propagates", func(t *testing.T) {
		fallback := &stubGeocoder{err: geo.ErrLocationNotFound}
		resolver := geo.NewResolver(fallback, nil, time.Hour)

		_, err := resolver.Lookup(ctx, "Nowhere")

		assert.ErrorIs(t, err, geo.ErrLocationNotFound)
	})

	t.Run("No Fallback Configured", func(t *testing.T) {
		resolver := geo.NewResolver(nil, nil, time.Hour)

		_, err := resolver.Lookup(ctx, "Paris")

		assert.ErrorIs(t, err, geo.ErrLocationNotFound)
	})
}

func TestHTTPGeocoder_Lookup(t *testing.T) {
	ctx := context.Background()

	t.Run("Parses First Result", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "json", r.URL.Query().Get("format"))
			assert.Equal(t, "Paris", r.URL.Query().Get("q"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"lat":"48.8566","lon":"2.3522"}]`))
		}))
		defer server.Close()

		geocoder := geo.NewHTTPGeocoder(server.URL, 5*time.Second)
		coords, err := geocoder.Lookup(ctx, "Paris")

		assert.NoError(t, err)
		assert.InDelta(t, 48.8566, coords.Lat, 0.0001)
		assert.InDelta(t, 2.3522, coords.Lon, 0.0001)
	})

	t.Run("Empty Result Set", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))
		defer server.Close()

		geocoder := geo.NewHTTPGeocoder(server.URL, 5*time.Second)
		_, err := geocoder.Lookup(ctx, "Nowhere")

		assert.ErrorIs(t, err, geo.ErrLocationNotFound)
	})

	t.Run("Non-200 Status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		geocoder := geo.NewHTTPGeocoder(server.URL, 5*time.Second)
		_, err := geocoder.Lookup(ctx, "Paris")

		assert.Error(t, err)
		assert.False(t, errors.Is(err, geo.ErrLocationNotFound))
	})
}
