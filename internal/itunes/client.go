// Package itunes provides rate-limited access to the iTunes search and
// search-hints endpoints.
package itunes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const userAgent = "asoscope/1.0"

// Client issues GET requests against the iTunes endpoints with a minimum
// spacing between calls and a bounded retry policy. One instance serializes
// every outbound call it makes, across all endpoints: the guarded lastCall
// timestamp is the single spacing point.
type Client struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger

	cache    *Cache // optional response cache, may be nil
	cacheTTL time.Duration

	mu       sync.Mutex
	lastCall time.Time

	// Overridable in tests.
	now   func() time.Time
	sleep func(time.Duration)
}

// NewClient creates a client with the given configuration.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	return &Client{
		cfg:   cfg,
		http:  &http.Client{Timeout: cfg.Timeout},
		log:   log,
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// WithCache attaches a response cache consulted before any network call.
// Cached bodies younger than ttl are served without touching the network
// or the rate limiter.
func (c *Client) WithCache(cache *Cache, ttl time.Duration) *Client {
	c.cache = cache
	c.cacheTTL = ttl
	return c
}

// waitTurn blocks until at least MinInterval has passed since the previous
// outbound call, then claims the slot.
func (c *Client) waitTurn() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.lastCall.IsZero() {
		if elapsed := c.now().Sub(c.lastCall); elapsed < c.cfg.MinInterval {
			c.sleep(c.cfg.MinInterval - elapsed)
		}
	}
	c.lastCall = c.now()
}

// Get issues a rate-limited GET and returns the response body. Transient
// failures are retried up to MaxAttempts; HTTP 403/429 trigger exponential
// backoff instead of the flat retry wait. A returned error means every
// attempt was exhausted and callers should treat it as "no data available",
// never as a fatal condition.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values, header http.Header) ([]byte, error) {
	reqURL := rawURL
	if len(params) > 0 {
		reqURL = rawURL + "?" + params.Encode()
	}

	if c.cache != nil {
		if body, ok := c.cache.Get(reqURL, c.cacheTTL); ok {
			c.log.Debug().Str("url", rawURL).Msg("serving response from cache")
			return body, nil
		}
	}

	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxAttempts; attempt++ {
		c.waitTurn()

		body, status, err := c.do(ctx, reqURL, header)
		if err == nil && status >= 200 && status < 300 {
			if c.cache != nil {
				if err := c.cache.Put(reqURL, body); err != nil {
					c.log.Warn().Err(err).Msg("failed to write response cache")
				}
			}
			return body, nil
		}

		if status == http.StatusForbidden || status == http.StatusTooManyRequests {
			wait := c.cfg.BackoffBase * (1 << attempt)
			c.log.Warn().
				Int("status", status).
				Int("attempt", attempt+1).
				Dur("wait", wait).
				Msg("rate limited, backing off")
			c.sleep(wait)
			lastErr = fmt.Errorf("rate limited (HTTP %d)", status)
			continue
		}

		if err == nil {
			err = fmt.Errorf("unexpected status %d", status)
		}
		lastErr = err
		if attempt == c.cfg.MaxAttempts-1 {
			break
		}
		c.log.Warn().
			Err(err).
			Int("attempt", attempt+1).
			Msg("request failed, retrying")
		c.sleep(c.cfg.RetryWait)
	}

	c.log.Error().Err(lastErr).Str("url", rawURL).Msg("all attempts exhausted")
	return nil, fmt.Errorf("request failed after %d attempts: %w", c.cfg.MaxAttempts, lastErr)
}

func (c *Client) do(ctx context.Context, reqURL string, header http.Header) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", userAgent)
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}
