// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package scrape

import (
	"net/url"
	"strings"
)

// previewHost is the sandboxed in-browser preview domain whose asset URLs
// get rewritten away from the original site. Such URLs are re-rooted at
// their assets/ path segment relative to the scraped site.
const previewHost = "local-credentialless.webcontainer-api.io"

// ValidateURL reports whether raw parses as an absolute http(s) URL.
func ValidateURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ResolveURL turns a discovered asset URL into an absolute, public URL
// relative to the scraped page. Data URIs and empty candidates resolve to
// the empty string: they are never stored as asset references. Resolution
// failures also yield the empty string rather than an error.
func ResolveURL(baseURL, raw string) string {
	if raw == "" || strings.HasPrefix(raw, "data:") {
		return ""
	}

	if strings.Contains(raw, previewHost) {
		parts := strings.Split(raw, "/")
		for i, part := range parts {
			if part == "assets" {
				return resolveRelative(baseURL, strings.Join(parts[i:], "/"))
			}
		}
		return ""
	}

	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	if strings.HasPrefix(raw, "//") {
		return "https:" + raw
	}
	return resolveRelative(baseURL, raw)
}

// resolveRelative resolves ref against base, returning "" on any parse error.
func resolveRelative(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return b.ResolveReference(r).String()
}
