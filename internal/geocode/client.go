package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"backend-routewise/internal/shared/geo"

	"github.com/redis/go-redis/v9"
)

const (
	resolveTimeout = 10 * time.Second
	cacheTTL       = 24 * time.Hour
)

var (
	// ErrEmptyPlace is returned before any outbound call is made.
	ErrEmptyPlace = errors.New("place text required")
	// ErrResolution covers upstream non-OK statuses and transport failures.
	ErrResolution = errors.New("place resolution failed")
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cache   *redis.Client
}

// NewClient builds a geocoding client. cache may be nil, in which case
// every lookup goes upstream.
func NewClient(baseURL, apiKey string, cache *redis.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: resolveTimeout},
		cache:   cache,
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Resolve turns a free-text place name into a coordinate, taking the first
// upstream match. cityHint, when set, is appended to scope ambiguous names.
// Never retries.
func (c *Client) Resolve(ctx context.Context, placeText, cityHint string) (geo.Coordinate, error) {
	placeText = strings.TrimSpace(placeText)
	if placeText == "" {
		return geo.Coordinate{}, ErrEmptyPlace
	}

	query := placeText
	if cityHint != "" {
		query = placeText + ", " + cityHint
	}

	if coord, ok := c.cached(ctx, query); ok {
		return coord, nil
	}

	params := url.Values{}
	params.Set("address", query)
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/geocode/json?"+params.Encode(), nil)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("%w: %v", ErrResolution, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("%w: %v", ErrResolution, err)
	}
	defer resp.Body.Close()

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return geo.Coordinate{}, fmt.Errorf("%w: %v", ErrResolution, err)
	}
	if body.Status != "OK" || len(body.Results) == 0 {
		return geo.Coordinate{}, fmt.Errorf("%w: status %s", ErrResolution, body.Status)
	}

	coord := geo.Coordinate{
		Lat: body.Results[0].Geometry.Location.Lat,
		Lng: body.Results[0].Geometry.Location.Lng,
	}
	if !coord.Valid() {
		return geo.Coordinate{}, fmt.Errorf("%w: coordinate out of range", ErrResolution)
	}

	c.store(ctx, query, coord)
	return coord, nil
}

func cacheKey(query string) string {
	return "geocode:" + strings.ToLower(query)
}

func (c *Client) cached(ctx context.Context, query string) (geo.Coordinate, bool) {
	if c.cache == nil {
		return geo.Coordinate{}, false
	}
	raw, err := c.cache.Get(ctx, cacheKey(query)).Bytes()
	if err != nil {
		return geo.Coordinate{}, false
	}
	var coord geo.Coordinate
	if err := json.Unmarshal(raw, &coord); err != nil {
		return geo.Coordinate{}, false
	}
	return coord, true
}

func (c *Client) store(ctx context.Context, query string, coord geo.Coordinate) {
	if c.cache == nil {
		return
	}
	raw, _ := json.Marshal(coord)
	_ = c.cache.Set(ctx, cacheKey(query), raw, cacheTTL).Err()
}
