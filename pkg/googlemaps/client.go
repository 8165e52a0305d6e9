// Package googlemaps provides clients for the Google Geocoding API and the
// legacy Places API (nearby search and place details), with rate limiting
// and transient-failure retry built in.
package googlemaps

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/compscan/internal/resilience"
)

const (
	defaultGeocodeBaseURL = "https://maps.googleapis.com/maps/api/geocode"
	defaultPlacesBaseURL  = "https://maps.googleapis.com/maps/api/place"

	// defaultPageTokenDelay is the settling time before a pagination token
	// becomes valid upstream. Shorter delays risk INVALID_REQUEST responses.
	defaultPageTokenDelay = 2 * time.Second

	metersPerMile = 1609.34
)

// Client performs Google Maps API operations.
type Client struct {
	apiKey         string
	geocodeBaseURL string
	placesBaseURL  string
	http           *http.Client
	limiter        *rate.Limiter
	retry          resilience.RetryConfig
	pageTokenDelay time.Duration
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithGeocodeBaseURL overrides the Geocoding API base URL.
func WithGeocodeBaseURL(u string) Option {
	return func(c *Client) {
		c.geocodeBaseURL = u
	}
}

// WithPlacesBaseURL overrides the Places API base URL.
func WithPlacesBaseURL(u string) Option {
	return func(c *Client) {
		c.placesBaseURL = u
	}
}

// WithPageTokenDelay sets the wait before consuming a pagination token.
// Production configuration enforces a 2s floor; tests shorten it.
func WithPageTokenDelay(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.pageTokenDelay = d
		}
	}
}

// WithRateLimit sets the request rate limit in requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithRetryConfig overrides the transient-failure retry configuration.
func WithRetryConfig(cfg resilience.RetryConfig) Option {
	return func(c *Client) {
		c.retry = cfg
	}
}

// NewClient creates a Google Maps client.
func NewClient(apiKey string, opts ...Option) *Client {
	retry := resilience.DefaultRetryConfig()
	retry.OnRetry = resilience.RetryLogger("googlemaps", "get")

	c := &Client{
		apiKey:         apiKey,
		geocodeBaseURL: defaultGeocodeBaseURL,
		placesBaseURL:  defaultPlacesBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter:        rate.NewLimiter(rate.Limit(10), 1),
		retry:          retry,
		pageTokenDelay: defaultPageTokenDelay,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// getJSON issues a rate-limited GET with retry on transient failures and
// unmarshals the response body into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	params.Set("key", c.apiKey)
	reqURL := endpoint + "?" + params.Encode()

	body, err := resilience.DoVal(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "googlemaps: rate limit")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, eris.Wrap(err, "googlemaps: build request")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, eris.Wrap(err, "googlemaps: send request")
		}
		defer resp.Body.Close() //nolint:errcheck

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, eris.Wrap(err, "googlemaps: read response")
		}

		if resp.StatusCode != http.StatusOK {
			statusErr := eris.Errorf("googlemaps: unexpected status %d: %s", resp.StatusCode, string(respBody))
			if resilience.IsTransientHTTPStatus(resp.StatusCode) {
				return nil, resilience.NewTransientError(statusErr, resp.StatusCode)
			}
			return nil, statusErr
		}

		return respBody, nil
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrap(err, "googlemaps: unmarshal response")
	}
	return nil
}

// sleep waits for d or until the context is canceled.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
