// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// RGB is a single palette color as red/green/blue components (0-255).
type RGB [3]int

// SiteStyle is the set of brand assets mined from a scraped website.
// Colors and Fonts preserve first-discovery order. The struct is stored
// as the project's style (JSONB) and is only ever replaced as a whole.
type SiteStyle struct {
	Colors        []string `json:"colors,omitempty"`
	Fonts         []string `json:"fonts,omitempty"`
	Images        []string `json:"images,omitempty"`
	Logo          string   `json:"logo,omitempty"`
	Screenshot    string   `json:"screenshot,omitempty"`
	Palette       []RGB    `json:"palette,omitempty"`
	DominantColor string   `json:"dominant_color,omitempty"`
	PrimaryFont   string   `json:"primary_font,omitempty"`
}

// Merge returns a full structural copy of the style with the user-selected
// dominant color and primary font replacing the existing values. Empty
// selections leave the corresponding field untouched. The receiver is not
// modified.
func (s SiteStyle) Merge(dominantColor, primaryFont string) SiteStyle {
	merged := s
	merged.Colors = append([]string(nil), s.Colors...)
	merged.Fonts = append([]string(nil), s.Fonts...)
	merged.Images = append([]string(nil), s.Images...)
	merged.Palette = append([]RGB(nil), s.Palette...)

	if dominantColor != "" {
		merged.DominantColor = dominantColor
	}
	if primaryFont != "" {
		merged.PrimaryFont = primaryFont
	}
	return merged
}

// ScrapeResult is the raw outcome of a single scrape attempt: the rendered
// markup, an optional stored screenshot URL, and an optional palette derived
// from that screenshot. It is produced once per attempt and never mutated.
type ScrapeResult struct {
	HTML       string
	Screenshot string
	Timestamp  string
	Palette    []RGB
}
