package qweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/RRRwang/vxtuisong/internal/domain"
	"github.com/RRRwang/vxtuisong/internal/ports"
)

var _ ports.WeatherProvider = (*Resolver)(nil)

const (
	defaultGeoBaseURL     = "https://geoapi.qweather.com"
	defaultWeatherBaseURL = "https://devapi.qweather.com"

	successCode = "200"

	defaultRequestTimeout  = 10 * time.Second
	defaultMaxRetries      = 3
	maxLookupResponseBytes = 1 << 20
)

// Client performs JSON GET lookups with a fixed retry budget. Transport and
// decode failures are treated alike: log a warning, burn one attempt, try
// again immediately. There is no backoff between attempts.
type Client struct {
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	MaxRetries     int
	Logger         *slog.Logger
}

func (c Client) GetJSON(ctx context.Context, endpoint string, out any) error {
	retries := c.MaxRetries
	if retries <= 0 {
		retries = defaultMaxRetries
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		if err := c.getJSONOnce(ctx, endpoint, out); err != nil {
			lastErr = err
			c.logger().Warn("lookup request failed, retrying",
				"attempt", attempt, "max_retries", retries, "error", err)
			continue
		}
		return nil
	}

	return fmt.Errorf("%w after %d attempts: %v", domain.ErrLookupExhausted, retries, lastErr)
}

func (c Client) getJSONOnce(ctx context.Context, endpoint string, out any) error {
	timeout := c.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create lookup request: %w", err)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("lookup request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxLookupResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode lookup response: %w", err)
	}
	return nil
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

type cityLookupResponse struct {
	Code     string `json:"code"`
	Location []struct {
		ID string `json:"id"`
	} `json:"location"`
}

type nowWeatherResponse struct {
	Code string `json:"code"`
	Now  struct {
		Text    string `json:"text"`
		Temp    string `json:"temp"`
		WindDir string `json:"windDir"`
	} `json:"now"`
}

// Resolver turns a region name into a weather snapshot via the two-step
// QWeather chain (city lookup, then current weather) and memoizes the result
// for the process lifetime. Each cache key is written at most once.
type Resolver struct {
	Client         Client
	APIKey         string
	GeoBaseURL     string
	WeatherBaseURL string

	mu    sync.Mutex
	cache map[string]domain.Weather
}

func NewResolver(client Client, apiKey string) *Resolver {
	return &Resolver{
		Client: client,
		APIKey: apiKey,
		cache:  make(map[string]domain.Weather),
	}
}

func (r *Resolver) Resolve(ctx context.Context, region string) (domain.Weather, error) {
	r.mu.Lock()
	if cached, ok := r.cache[region]; ok {
		r.mu.Unlock()
		return cached, nil
	}
	r.mu.Unlock()

	locationID, err := r.lookupLocation(ctx, region)
	if err != nil {
		return domain.Weather{}, err
	}

	snapshot, err := r.lookupWeather(ctx, locationID)
	if err != nil {
		return domain.Weather{}, err
	}

	r.mu.Lock()
	if r.cache == nil {
		r.cache = make(map[string]domain.Weather)
	}
	r.cache[region] = snapshot
	r.mu.Unlock()

	return snapshot, nil
}

func (r *Resolver) lookupLocation(ctx context.Context, region string) (string, error) {
	endpoint := fmt.Sprintf("%s/v2/city/lookup?location=%s&key=%s",
		r.geoBaseURL(), url.QueryEscape(region), url.QueryEscape(r.APIKey))

	var resp cityLookupResponse
	if err := r.Client.GetJSON(ctx, endpoint, &resp); err != nil {
		return "", fmt.Errorf("%w: %q: %v", domain.ErrRegionNotFound, region, err)
	}
	if resp.Code != successCode || len(resp.Location) == 0 {
		return "", fmt.Errorf("%w: %q: city lookup code %q", domain.ErrRegionNotFound, region, resp.Code)
	}
	return resp.Location[0].ID, nil
}

func (r *Resolver) lookupWeather(ctx context.Context, locationID string) (domain.Weather, error) {
	endpoint := fmt.Sprintf("%s/v7/weather/now?location=%s&key=%s",
		r.weatherBaseURL(), url.QueryEscape(locationID), url.QueryEscape(r.APIKey))

	var resp nowWeatherResponse
	if err := r.Client.GetJSON(ctx, endpoint, &resp); err != nil {
		return domain.Weather{}, fmt.Errorf("%w: %v", domain.ErrWeatherUnavailable, err)
	}
	if resp.Code != successCode {
		return domain.Weather{}, fmt.Errorf("%w: weather code %q", domain.ErrWeatherUnavailable, resp.Code)
	}

	return domain.Weather{
		Condition:   resp.Now.Text,
		Temperature: resp.Now.Temp + "°C",
		WindDir:     resp.Now.WindDir,
	}, nil
}

func (r *Resolver) geoBaseURL() string {
	if r.GeoBaseURL != "" {
		return r.GeoBaseURL
	}
	return defaultGeoBaseURL
}

func (r *Resolver) weatherBaseURL() string {
	if r.WeatherBaseURL != "" {
		return r.WeatherBaseURL
	}
	return defaultWeatherBaseURL
}
