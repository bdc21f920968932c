package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"os"
	"time"

	"go.uber.org/zap"
)

const (
	earthRadiusMeters = 6371000.0

	// assumed average road speed when the directions API is unreachable
	fallbackSpeedKmh = 40.0

	// road distance is rarely the straight line; pad the haversine figure
	fallbackDetourFactor = 1.3
)

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type RouteEstimate struct {
	DistanceMeters float64       `json:"distance_meters"`
	Duration       time.Duration `json:"duration"`
	Fallback       bool          `json:"fallback"`
}

//go:generate mockgen -source=estimator.go -destination=mock/estimator_mock.go -package=mock
type Estimator interface {
	EstimateRoute(ctx context.Context, from, to Point) RouteEstimate
}

// Client talks to an OSRM-compatible directions endpoint. Any failure
// degrades to a straight-line estimate so delivery operations never
// fail on the maps provider.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(logger ...*zap.Logger) *Client {
	l := zap.L().Named("geo.client")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("geo.client")
	}
	return &Client{
		baseURL: os.Getenv("GEO_API_BASE_URL"),
		http:    &http.Client{Timeout: 5 * time.Second},
		logger:  l,
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

func (c *Client) EstimateRoute(ctx context.Context, from, to Point) RouteEstimate {
	if c.baseURL == "" {
		return FallbackEstimate(from, to)
	}

	endpoint := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f",
		c.baseURL, from.Lng, from.Lat, to.Lng, to.Lat)
	u, err := url.Parse(endpoint)
	if err != nil {
		c.logger.Warn("geo endpoint invalid, using fallback", zap.Error(err))
		return FallbackEstimate(from, to)
	}
	q := u.Query()
	q.Set("overview", "false")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return FallbackEstimate(from, to)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("geo request failed, using fallback", zap.Error(err))
		return FallbackEstimate(from, to)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("geo request non-200, using fallback", zap.Int("status", resp.StatusCode))
		return FallbackEstimate(from, to)
	}

	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.Warn("geo response decode failed, using fallback", zap.Error(err))
		return FallbackEstimate(from, to)
	}
	if body.Code != "Ok" || len(body.Routes) == 0 {
		return FallbackEstimate(from, to)
	}

	route := body.Routes[0]
	return RouteEstimate{
		DistanceMeters: route.Distance,
		Duration:       time.Duration(route.Duration * float64(time.Second)),
	}
}

// FallbackEstimate is the straight-line estimate used when the
// directions API cannot be reached.
func FallbackEstimate(from, to Point) RouteEstimate {
	distance := Haversine(from, to) * fallbackDetourFactor
	hours := (distance / 1000.0) / fallbackSpeedKmh
	return RouteEstimate{
		DistanceMeters: distance,
		Duration:       time.Duration(hours * float64(time.Hour)),
		Fallback:       true,
	}
}

// Haversine returns the great-circle distance between two points in
// meters.
func Haversine(from, to Point) float64 {
	lat1 := from.Lat * math.Pi / 180
	lat2 := to.Lat * math.Pi / 180
	dLat := (to.Lat - from.Lat) * math.Pi / 180
	dLng := (to.Lng - from.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}
