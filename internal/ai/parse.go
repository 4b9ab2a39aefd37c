// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoHTML marks a completion that contains no recognizable markup.
// A malformed reply is a validation failure, not a transient error, and is
// never retried.
var ErrNoHTML = errors.New("no valid HTML found in response")

// markupRe matches a fenced code block (optionally tagged html) or a
// complete <html>…</html> span anywhere in the reply.
var markupRe = regexp.MustCompile("(?is)```(?:html)?\\s*(.*?)```|<html.*?</html>")

// ExtractHTML pulls the markup document out of a raw completion. A reply
// that already starts with markup is returned as-is; otherwise the fenced
// block's inner content or the matched document span is used.
func ExtractHTML(response string) (string, error) {
	if strings.HasPrefix(strings.TrimSpace(response), "<") {
		return response, nil
	}

	m := markupRe.FindStringSubmatch(response)
	if m == nil {
		return "", ErrNoHTML
	}
	if m[1] != "" {
		return strings.TrimSpace(m[1]), nil
	}
	return m[0], nil
}
