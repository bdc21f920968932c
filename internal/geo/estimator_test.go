package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKnownDistance(t *testing.T) {
	// Jakarta -> Bandung, roughly 116 km as the crow flies
	jakarta := Point{Lat: -6.2088, Lng: 106.8456}
	bandung := Point{Lat: -6.9175, Lng: 107.6191}

	d := Haversine(jakarta, bandung)
	assert.InDelta(t, 116000, d, 5000)
}

func TestHaversineZeroDistance(t *testing.T) {
	p := Point{Lat: 52.37, Lng: 4.89}
	assert.InDelta(t, 0, Haversine(p, p), 0.001)
}

func TestFallbackEstimate(t *testing.T) {
	from := Point{Lat: -6.2088, Lng: 106.8456}
	to := Point{Lat: -6.9175, Lng: 107.6191}

	est := FallbackEstimate(from, to)

	assert.True(t, est.Fallback)
	assert.Greater(t, est.DistanceMeters, Haversine(from, to))
	assert.Greater(t, est.Duration, time.Hour)
}

func TestEstimateRouteUsesAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":"Ok","routes":[{"distance":150000,"duration":7200}]}`))
	}))
	defer srv.Close()

	c := NewClient()
	c.baseURL = srv.URL

	est := c.EstimateRoute(context.Background(), Point{Lat: 1, Lng: 1}, Point{Lat: 2, Lng: 2})

	assert.False(t, est.Fallback)
	assert.Equal(t, 150000.0, est.DistanceMeters)
	assert.Equal(t, 2*time.Hour, est.Duration)
}

func TestEstimateRouteFallsBackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient()
	c.baseURL = srv.URL

	est := c.EstimateRoute(context.Background(), Point{Lat: 1, Lng: 1}, Point{Lat: 2, Lng: 2})
	assert.True(t, est.Fallback)
	assert.Greater(t, est.DistanceMeters, 0.0)
}
