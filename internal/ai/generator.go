// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"brandforge/internal/models"
)

const (
	// maxAttempts caps generation tries per call, including the first.
	maxAttempts = 3

	// retryDelay is the backoff unit; after N cumulative failures the
	// next attempt waits N×retryDelay.
	retryDelay = 5 * time.Second
)

// retryableSignatures classify a failure as transient. Anything else aborts
// the retry loop immediately.
var retryableSignatures = []string{
	"rate_limit",
	"timeout",
	"network",
	"internal_error",
}

// Result is what every generation or edit call returns. The client never
// raises: on exhaustion HTML holds the fallback content and Error carries
// the last failure's message. CSS is always empty; styling is embedded in
// the markup.
type Result struct {
	HTML  string `json:"html"`
	CSS   string `json:"css"`
	Error string `json:"error,omitempty"`
}

// Generator produces and edits landing page markup through a Provider,
// honoring the global rate gate and the bounded retry discipline.
type Generator struct {
	provider    Provider
	gate        *Gate
	visionModel string
	editModel   string

	// sleep is swappable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewGenerator wires a generation client. visionModel handles full-page
// generation with image input; editModel handles text-only edits.
func NewGenerator(provider Provider, gate *Gate, visionModel, editModel string) *Generator {
	return &Generator{
		provider:    provider,
		gate:        gate,
		visionModel: visionModel,
		editModel:   editModel,
		sleep:       sleepCtx,
	}
}

// VisionModel returns the model used for full-page generation.
func (g *Generator) VisionModel() string { return g.visionModel }

// EditModel returns the default model used for edits.
func (g *Generator) EditModel() string { return g.editModel }

// Generate creates a fresh landing page from the prompt, style guide, and
// optional screenshot reference. On exhaustion it falls back to the static
// default template parameterized by the style.
func (g *Generator) Generate(ctx context.Context, prompt string, style *models.SiteStyle, screenshot string) Result {
	req := Request{
		Model:        g.visionModel,
		SystemPrompt: SystemPrompt(),
		UserPrompt:   FullPrompt(prompt, style, screenshot),
		ImageURL:     screenshot,
	}

	html, err := g.complete(ctx, req)
	if err != nil {
		slog.Error("generation failed, serving fallback template", "error", err)
		return Result{HTML: DefaultTemplate(style), Error: err.Error()}
	}
	return Result{HTML: html}
}

// Edit applies free-text instructions to the current markup. On exhaustion
// it returns the markup unmodified with Error set.
func (g *Generator) Edit(ctx context.Context, currentHTML, instructions, screenshot, model string) Result {
	if model == "" {
		model = g.editModel
	}
	req := Request{
		Model:        model,
		SystemPrompt: EditSystemPrompt(),
		UserPrompt:   EditPrompt(currentHTML, instructions, screenshot),
	}

	html, err := g.complete(ctx, req)
	if err != nil {
		slog.Error("edit failed, returning unmodified markup", "error", err)
		return Result{HTML: currentHTML, Error: err.Error()}
	}
	return Result{HTML: html}
}

// complete runs the rate-gated retry loop around one logical request.
// Retryable failures back off linearly on the cumulative failure count;
// anything else (including a malformed reply) aborts immediately.
func (g *Generator) complete(ctx context.Context, req Request) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := g.gate.Wait(ctx); err != nil {
			return "", err
		}

		raw, err := g.provider.Complete(ctx, req)
		if err == nil {
			html, perr := ExtractHTML(raw)
			if perr == nil {
				return html, nil
			}
			err = perr
		}

		lastErr = err
		if !isRetryable(err) {
			break
		}
		if attempt < maxAttempts {
			slog.Warn("generation attempt failed, retrying",
				"attempt", attempt,
				"error", err,
			)
			if serr := g.sleep(ctx, time.Duration(attempt)*retryDelay); serr != nil {
				return "", serr
			}
		}
	}

	return "", lastErr
}

// isRetryable matches the error message against the fixed signature set.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, sig := range retryableSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}
