// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package scrape drives the acquisition side of the pipeline: it fetches a
// page's rendered markup and screenshot from a remote rendering API, mines
// the markup for brand assets, and persists everything with an audit log.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// maxRequestRetries caps attempts against the scraping service for
	// retryable (5xx) responses, including the first try.
	maxRequestRetries = 3

	// retryDelay is the base backoff unit; attempt N waits N×retryDelay.
	retryDelay = 2 * time.Second

	// quotaSignature is the body substring that marks an HTTP 401 as
	// account quota exhaustion rather than an auth failure.
	quotaSignature = "API calls limit reached"
)

// cookieScenario is the scripted interaction sent with screenshot requests:
// wait for the page, click the first element whose text contains "Accept"
// (cookie banners), then wait for any relayout.
const cookieScenario = `{"instructions":[{"wait":3000},{"wait_for_and_click":"//*[contains(text(), 'Accept')]"},{"wait":2000}]}`

// Client talks to a ScrapingBee-compatible rendering API. It owns per-call
// retry handling for server errors; network-class failures are returned as
// ErrNetwork for the orchestrator's outer retry loop.
type Client struct {
	apiKey  string
	baseURL string
	timeout time.Duration
	http    *http.Client
	metrics *Metrics

	// sleep is swappable in tests to avoid real backoff waits.
	sleep func(time.Duration)
}

// NewClient creates a scraping service client. timeout is forwarded to the
// remote renderer as its page budget; the local HTTP client allows extra
// headroom on top of it.
func NewClient(apiKey, baseURL string, timeout time.Duration, metrics *Metrics) *Client {
	if baseURL == "" {
		baseURL = "https://app.scrapingbee.com/api/v1/"
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    &http.Client{Timeout: timeout + 30*time.Second},
		metrics: metrics,
		sleep:   time.Sleep,
	}
}

// Configured reports whether the client has an API key.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// WithTransport swaps the underlying HTTP transport. Used by tests.
func (c *Client) WithTransport(rt http.RoundTripper) {
	c.http.Transport = rt
}

// baseParams builds the fixed option set shared by every request:
// JavaScript rendering on, premium/stealth proxy, ad blocking, desktop
// device, bounded timeout.
func (c *Client) baseParams(target string) url.Values {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("url", target)
	params.Set("render_js", "true")
	params.Set("premium_proxy", "true")
	params.Set("block_ads", "true")
	params.Set("country_code", "us")
	params.Set("device", "desktop")
	params.Set("timeout", strconv.FormatInt(c.timeout.Milliseconds(), 10))
	params.Set("stealth_proxy", "true")
	return params
}

// FetchHTML requests the rendered markup for target. HTTP 5xx responses are
// retried up to maxRequestRetries with linearly increasing delay; a 401
// carrying the quota signature fails immediately with ErrQuotaExceeded;
// any other non-2xx fails with ErrScrape.
func (c *Client) FetchHTML(ctx context.Context, target string) (string, error) {
	body, err := c.fetch(ctx, "html", c.baseParams(target))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchScreenshot requests a full-page screenshot of target. wait is the
// unconditional page wait; withScenario attaches the cookie-banner click
// script used on the primary attempt (the fallback request omits it).
func (c *Client) FetchScreenshot(ctx context.Context, target string, wait time.Duration, withScenario bool) ([]byte, error) {
	params := c.baseParams(target)
	params.Set("screenshot", "true")
	params.Set("window_width", "1920")
	params.Set("window_height", "1080")
	params.Set("screenshot_full_page", "true")
	params.Set("wait", strconv.FormatInt(wait.Milliseconds(), 10))
	params.Set("wait_browser", "load")

	phase := "screenshot_fallback"
	if withScenario {
		params.Set("js_scenario", cookieScenario)
		phase = "screenshot"
	}

	return c.fetch(ctx, phase, params)
}

// fetch executes one logical request with the internal 5xx retry loop.
func (c *Client) fetch(ctx context.Context, phase string, params url.Values) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= maxRequestRetries; attempt++ {
		body, retryable, err := c.doRequest(ctx, phase, params)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
		if attempt < maxRequestRetries {
			c.metrics.IncRetries()
			c.sleep(time.Duration(attempt) * retryDelay)
		}
	}

	return nil, lastErr
}

// doRequest performs a single HTTP GET. The second return value reports
// whether the failure is retryable at this level (server errors only).
func (c *Client) doRequest(ctx context.Context, phase string, params url.Values) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, false, fmt.Errorf("scrape request: %w", err)
	}

	c.metrics.IncRequest(phase)
	start := time.Now()

	resp, err := c.http.Do(req)
	c.metrics.ObserveDuration(time.Since(start))
	if err != nil {
		return nil, false, ErrNetwork{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, ErrNetwork{Err: err}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, false, nil
	case resp.StatusCode == http.StatusUnauthorized && strings.Contains(string(body), quotaSignature):
		return nil, false, ErrQuotaExceeded{Body: strings.TrimSpace(string(body))}
	case resp.StatusCode >= 500:
		return nil, true, ErrScrape{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	default:
		return nil, false, ErrScrape{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
}
