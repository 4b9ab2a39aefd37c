// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package scrape

import (
	"errors"
	"fmt"
)

// ErrConfiguration indicates missing service credentials. Not retryable.
type ErrConfiguration struct {
	Missing string
}

func (e ErrConfiguration) Error() string {
	return fmt.Sprintf("configuration: %s is not set", e.Missing)
}

// ErrInvalidURL indicates a malformed target URL. Not retryable.
type ErrInvalidURL struct {
	URL string
}

func (e ErrInvalidURL) Error() string {
	return fmt.Sprintf("invalid url: %q (use http:// or https://)", e.URL)
}

// ErrQuotaExceeded indicates the scraping service account limit was hit.
// Surfaced verbatim so callers can halt further attempts.
type ErrQuotaExceeded struct {
	Body string
}

func (e ErrQuotaExceeded) Error() string {
	return fmt.Sprintf("quota exceeded: %s", e.Body)
}

// ErrNetwork indicates a transient network or server failure. Retryable
// until the attempt budget is exhausted.
type ErrNetwork struct {
	Err error
}

func (e ErrNetwork) Error() string {
	return fmt.Errorf("network: %w", e.Err).Error()
}

func (e ErrNetwork) Unwrap() error {
	return e.Err
}

// ErrScrape is the generic non-retryable failure for unexpected responses.
type ErrScrape struct {
	Status int
	Body   string
}

func (e ErrScrape) Error() string {
	return fmt.Sprintf("scrape failed (status %d): %s", e.Status, e.Body)
}

// errorTypeLabel maps an error to its metrics label.
func errorTypeLabel(err error) string {
	if err == nil {
		return "unknown"
	}
	var cfg ErrConfiguration
	if errors.As(err, &cfg) {
		return "configuration"
	}
	var inv ErrInvalidURL
	if errors.As(err, &inv) {
		return "invalid_url"
	}
	var quota ErrQuotaExceeded
	if errors.As(err, &quota) {
		return "quota_exceeded"
	}
	var network ErrNetwork
	if errors.As(err, &network) {
		return "network"
	}
	var scrapeErr ErrScrape
	if errors.As(err, &scrapeErr) {
		return "scrape"
	}
	return "other"
}
