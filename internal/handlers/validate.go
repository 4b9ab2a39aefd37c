// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"unicode/utf8"

	"brandforge/internal/scrape"
)

// Validation limits for project and generation inputs.
const (
	maxNameLen         = 200
	maxBrandLen        = 200
	maxPromptLen       = 10_000
	maxInstructionsLen = 10_000
	maxColorLen        = 100
	maxFontLen         = 200
)

// validateProject checks project creation inputs and returns the first
// error found, or "" when the inputs are acceptable.
func validateProject(name, sourceURL, brand string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "name is required"
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "name is too long (max 200 characters)"
	}
	if strings.TrimSpace(sourceURL) == "" {
		return "source_url is required"
	}
	if !scrape.ValidateURL(sourceURL) {
		return "source_url must be a valid http(s) URL"
	}
	if utf8.RuneCountInString(brand) > maxBrandLen {
		return "brand is too long (max 200 characters)"
	}
	return ""
}

// validatePrompt checks a generation prompt.
func validatePrompt(prompt string) string {
	if strings.TrimSpace(prompt) == "" {
		return "prompt is required"
	}
	if utf8.RuneCountInString(prompt) > maxPromptLen {
		return "prompt is too long (max 10,000 characters)"
	}
	return ""
}

// validateInstructions checks edit instructions.
func validateInstructions(instructions string) string {
	if strings.TrimSpace(instructions) == "" {
		return "instructions are required"
	}
	if utf8.RuneCountInString(instructions) > maxInstructionsLen {
		return "instructions are too long (max 10,000 characters)"
	}
	return ""
}

// validateStyleOverride checks the user-selected style override fields.
func validateStyleOverride(dominantColor, primaryFont string) string {
	if utf8.RuneCountInString(dominantColor) > maxColorLen {
		return "dominant_color is too long (max 100 characters)"
	}
	if utf8.RuneCountInString(primaryFont) > maxFontLen {
		return "primary_font is too long (max 200 characters)"
	}
	return ""
}
