// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"strings"
	"testing"

	"brandforge/internal/models"
)

func TestDefaultTemplateNilStyle(t *testing.T) {
	page := DefaultTemplate(nil)
	if !strings.Contains(page, "<html") {
		t.Fatal("fallback is not an HTML page")
	}
	if !strings.Contains(page, "system-ui") {
		t.Error("nil style should fall back to system fonts")
	}
}

func TestDefaultTemplateWithStyle(t *testing.T) {
	style := &models.SiteStyle{
		Fonts: []string{"Lato"},
		Logo:  "https://example.com/logo.png",
		Images: []string{
			"https://example.com/hero.jpg",
			"https://example.com/f1.jpg",
			"https://example.com/f2.jpg",
		},
	}

	page := DefaultTemplate(style)

	for _, want := range []string{
		"font-family: Lato",
		`src="https://example.com/logo.png"`,
		"url('https://example.com/hero.jpg')",
		`src="https://example.com/f1.jpg"`,
		`src="https://example.com/f2.jpg"`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}

	// The hero image is not repeated as a feature card.
	if strings.Contains(page, `src="https://example.com/hero.jpg"`) {
		t.Error("hero image should only appear as the section background")
	}
}

func TestDefaultTemplateWithoutLogo(t *testing.T) {
	page := DefaultTemplate(&models.SiteStyle{})
	if strings.Contains(page, `alt="Logo"`) {
		t.Error("page should omit the logo img without a logo")
	}
}
