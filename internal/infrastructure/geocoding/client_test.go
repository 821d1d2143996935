package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shyapp/shy-backend/internal/config"
	"github.com/stretchr/testify/require"
)

func TestSearchCities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, "Lyon", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"lat":"45.7640","lon":"4.8357","name":"Lyon","address":{"city":"Lyon","country":"France"}},
			{"lat":"not-a-number","lon":"0","name":"Bogus","address":{"country":"Nowhere"}}
		]`))
	}))
	defer srv.Close()

	client := NewClient(&config.GeocodingConfig{BaseURL: srv.URL, Timeout: time.Second})
	destinations, err := client.SearchCities(context.Background(), "Lyon")
	require.NoError(t, err)

	// The unparsable row is dropped, not surfaced as an error.
	require.Len(t, destinations, 1)
	require.Equal(t, "Lyon", destinations[0].City)
	require.Equal(t, "France", destinations[0].Country)
	require.InDelta(t, 45.7640, destinations[0].Latitude, 0.001)
}

func TestSearchCities_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(&config.GeocodingConfig{BaseURL: srv.URL, Timeout: time.Second})
	_, err := client.SearchCities(context.Background(), "Lyon")
	require.Error(t, err)
}
