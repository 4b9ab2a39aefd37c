// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"brandforge/internal/models"
)

// stubProvider returns scripted results per call.
type stubProvider struct {
	calls     int
	responses []string
	errs      []error
	requests  []Request
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Complete(_ context.Context, req Request) (string, error) {
	i := p.calls
	p.calls++
	p.requests = append(p.requests, req)
	var err error
	if i < len(p.errs) {
		err = p.errs[i]
	}
	resp := ""
	if i < len(p.responses) {
		resp = p.responses[i]
	}
	return resp, err
}

func newTestGenerator(p Provider) *Generator {
	gate := NewGate(time.Nanosecond)
	gate.sleep = func(context.Context, time.Duration) error { return nil }
	g := NewGenerator(p, gate, "vision-model", "edit-model")
	g.sleep = func(context.Context, time.Duration) error { return nil }
	return g
}

func TestGenerateSuccess(t *testing.T) {
	p := &stubProvider{responses: []string{"<html><body>done</body></html>"}}
	g := newTestGenerator(p)

	style := &models.SiteStyle{Screenshot: "https://assets.test/shot.jpg"}
	res := g.Generate(context.Background(), "make it blue", style, style.Screenshot)

	if res.Error != "" {
		t.Fatalf("error: got %q", res.Error)
	}
	if res.HTML != "<html><body>done</body></html>" {
		t.Errorf("html: got %q", res.HTML)
	}
	if p.calls != 1 {
		t.Errorf("calls: got %d, want 1", p.calls)
	}

	req := p.requests[0]
	if req.Model != "vision-model" {
		t.Errorf("model: got %q", req.Model)
	}
	if req.ImageURL != style.Screenshot {
		t.Errorf("image url: got %q, want screenshot attached", req.ImageURL)
	}
	if !strings.Contains(req.UserPrompt, "make it blue") {
		t.Error("user prompt missing caller requirements")
	}
}

func TestGenerateRetriesRetryableErrors(t *testing.T) {
	p := &stubProvider{
		errs:      []error{errors.New("rate_limit hit"), errors.New("upstream timeout"), nil},
		responses: []string{"", "", "<html>ok</html>"},
	}
	g := newTestGenerator(p)

	var delays []time.Duration
	g.sleep = func(_ context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}

	res := g.Generate(context.Background(), "p", &models.SiteStyle{}, "")
	if res.Error != "" {
		t.Fatalf("error: got %q", res.Error)
	}
	if res.HTML != "<html>ok</html>" {
		t.Errorf("html: got %q", res.HTML)
	}
	if p.calls != 3 {
		t.Errorf("calls: got %d, want 3", p.calls)
	}

	// Linear backoff on the cumulative failure count.
	want := []time.Duration{5 * time.Second, 10 * time.Second}
	if len(delays) != len(want) || delays[0] != want[0] || delays[1] != want[1] {
		t.Errorf("delays: got %v, want %v", delays, want)
	}
}

func TestGenerateExhaustionFallsBackToTemplate(t *testing.T) {
	p := &stubProvider{
		errs: []error{
			errors.New("network: connection reset"),
			errors.New("network: connection reset"),
			errors.New("network: connection reset"),
		},
	}
	g := newTestGenerator(p)

	style := &models.SiteStyle{Logo: "https://example.com/logo.png"}
	res := g.Generate(context.Background(), "p", style, "")

	if p.calls != 3 {
		t.Errorf("calls: got %d, want exactly 3 attempts", p.calls)
	}
	if res.Error == "" {
		t.Error("want the last error reported")
	}
	if !strings.Contains(res.HTML, "https://example.com/logo.png") {
		t.Error("fallback template missing the style logo")
	}
	if !strings.Contains(res.HTML, "<html") {
		t.Errorf("fallback is not a page: %q", res.HTML[:40])
	}
}

func TestGenerateFatalErrorDoesNotRetry(t *testing.T) {
	p := &stubProvider{errs: []error{errors.New("invalid_request: bad model")}}
	g := newTestGenerator(p)

	res := g.Generate(context.Background(), "p", &models.SiteStyle{}, "")
	if p.calls != 1 {
		t.Errorf("calls: got %d, want 1", p.calls)
	}
	if res.Error == "" {
		t.Error("want error surfaced")
	}
}

func TestGenerateMalformedReplyIsFatal(t *testing.T) {
	p := &stubProvider{responses: []string{"I will not produce markup."}}
	g := newTestGenerator(p)

	res := g.Generate(context.Background(), "p", &models.SiteStyle{}, "")
	if p.calls != 1 {
		t.Errorf("calls: got %d, want 1 (no retry on malformed reply)", p.calls)
	}
	if !strings.Contains(res.Error, ErrNoHTML.Error()) {
		t.Errorf("error: got %q, want ErrNoHTML", res.Error)
	}
}

func TestEditSuccess(t *testing.T) {
	p := &stubProvider{responses: []string{"<html>edited</html>"}}
	g := newTestGenerator(p)

	res := g.Edit(context.Background(), "<html>old</html>", "make the header red", "", "")
	if res.Error != "" {
		t.Fatalf("error: got %q", res.Error)
	}
	if res.HTML != "<html>edited</html>" {
		t.Errorf("html: got %q", res.HTML)
	}

	req := p.requests[0]
	if req.Model != "edit-model" {
		t.Errorf("model: got %q, want the edit default", req.Model)
	}
	if req.ImageURL != "" {
		t.Error("edits must not attach an image")
	}
	if !strings.Contains(req.UserPrompt, "<html>old</html>") {
		t.Error("user prompt missing current markup")
	}
	if !strings.Contains(req.UserPrompt, "make the header red") {
		t.Error("user prompt missing instructions")
	}
}

func TestEditModelOverride(t *testing.T) {
	p := &stubProvider{responses: []string{"<html>x</html>"}}
	g := newTestGenerator(p)

	g.Edit(context.Background(), "<html>old</html>", "i", "", "custom-model")
	if p.requests[0].Model != "custom-model" {
		t.Errorf("model: got %q, want custom-model", p.requests[0].Model)
	}
}

func TestEditExhaustionReturnsUnmodifiedMarkup(t *testing.T) {
	p := &stubProvider{
		errs: []error{
			errors.New("internal_error"),
			errors.New("internal_error"),
			errors.New("internal_error"),
		},
	}
	g := newTestGenerator(p)

	current := "<html>untouched</html>"
	res := g.Edit(context.Background(), current, "i", "", "")
	if res.HTML != current {
		t.Errorf("html: got %q, want current markup unchanged", res.HTML)
	}
	if res.Error == "" {
		t.Error("want error surfaced")
	}
	if p.calls != 3 {
		t.Errorf("calls: got %d, want 3", p.calls)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{errors.New("rate_limit exceeded"), true},
		{errors.New("request timeout"), true},
		{errors.New("network: dial tcp"), true},
		{errors.New("internal_error from upstream"), true},
		{errors.New("invalid_request"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := isRetryable(tt.err); got != tt.want {
			t.Errorf("isRetryable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
