// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"fmt"
	"strings"
	"time"

	"brandforge/internal/models"
)

// SystemPrompt is the fixed system role for full-page generation.
func SystemPrompt() string {
	return `You are an expert web developer and designer.
You can accept and analyze images and screenshots. Your task is to analyze a screenshot of a brand website
with a fresh perspective while maintaining brand consistency. Focus on recreating
the layout, spacing, and visual hierarchy while using Lorem Ipsum text.`
}

// EditSystemPrompt is the fixed system role for incremental edits.
func EditSystemPrompt() string {
	return "You are an expert web developer and designer. Your task is to edit the provided HTML to fulfill the user instructions precisely."
}

// StyleGuide renders the supplementary style block: typography, logo, and
// the discovered image inventory. Returns "" for a nil style.
func StyleGuide(style *models.SiteStyle) string {
	if style == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("Style Guide:\n")

	if len(style.Fonts) > 0 {
		b.WriteString("Typography (use exactly):\n")
		for _, font := range style.Fonts {
			fmt.Fprintf(&b, "- %s\n", font)
		}
	} else {
		b.WriteString("Use system fonts\n")
	}

	if style.Logo != "" {
		fmt.Fprintf(&b, "\nBrand Logo: %s\n", style.Logo)
	}

	if len(style.Images) > 0 {
		b.WriteString("\nVisual Assets:\n")
		for _, img := range style.Images {
			fmt.Fprintf(&b, "- %s\n", img)
		}
	}

	return b.String()
}

// FullPrompt assembles the user prompt for full-page generation: screenshot
// reference, palette (derived palette wins over style-supplied colors),
// style guide, user-selected overrides, the fixed requirements list with the
// current year substituted, and the caller's free-text requirements.
func FullPrompt(prompt string, style *models.SiteStyle, screenshot string) string {
	var b strings.Builder

	b.WriteString(`Create a high-converting, single-page landing page that captures the essence and branding of the screenshot referenced website.
Focus primarily on replicating the design elements provided in the attached screenshot and adhering to the specified
color palette using backgrounds, border-radius, etc. seen in the screenshot. Use the supplementary style information
below as additional guidance, but if those details are missing or incomplete, rely on the screenshot's design and
provided color palette.

`)

	if screenshot != "" {
		b.WriteString("Screenshot Reference (HIGHEST PRIORITY):\n")
		b.WriteString("Please carefully review the attached screenshot for its layout, colors, buttons, and border radius.\n")
		fmt.Fprintf(&b, "Screenshot URL: %s\n\n", screenshot)
	}

	b.WriteString(paletteBlock(style))
	b.WriteString(styleBlock(style))
	b.WriteString(criteriaBlock(style))

	fmt.Fprintf(&b, `Requirements:
1. Create a modern, responsive, and semantic HTML5 layout.
2. The navigation bar should be white background or match the screenshot.
3. Ensure accessibility compliance.
4. Ensure there are 4 defined sections outside of the header navigation bar: hero, content, content-2, footer.
5. Section background colors, widths, max-width, and margins should match the screenshot.
6. Hero section should include an image provided in Visual Assets.
7. Use Lorem Ipsum for all text content unless otherwise specified, at least 2 paragraphs.
8. Do not include any navigation or extraneous links in the header except the logo.
9. Button styles and colors should match the screenshot.
10. Place the logo in the top left corner of the page unless otherwise specified or if the screenshot shows a different location.
11. Use Google fonts in the head element for any provided fonts that require it.
12. Update any years to the current year (%d).

Additional Content Requirements:
%s

Respond ONLY with the complete HTML code including embedded CSS. Do not include any explanations or markdown.`,
		time.Now().Year(), prompt)

	return b.String()
}

// EditPrompt combines the current markup with the requested modifications
// and an optional screenshot reference line. Unlike full generation, no
// image is attached.
func EditPrompt(currentHTML, instructions, screenshot string) string {
	screenshotRef := ""
	if screenshot != "" {
		screenshotRef = fmt.Sprintf("Screenshot URL: %s\n", screenshot)
	}

	return fmt.Sprintf(`Below is the current HTML of your landing page:
%s

The user has requested the following modifications:
%s

%s
Extra pointers:
- Maintain layout, spacing, and overall structure.
- Use the same color scheme and fonts as in the current design unless otherwise specified.
- Preserve any embedded CSS unless explicit modifications are requested.

Respond ONLY with the complete updated HTML code including embedded CSS. Do not include any explanations or markdown.`,
		currentHTML, instructions, screenshotRef)
}

// paletteBlock prefers the palette derived from the screenshot over any
// style-supplied color list.
func paletteBlock(style *models.SiteStyle) string {
	if style == nil {
		return ""
	}

	var b strings.Builder
	switch {
	case len(style.Palette) > 0:
		b.WriteString("Color Palette:\n")
		for _, c := range style.Palette {
			fmt.Fprintf(&b, "- rgb(%d, %d, %d)\n", c[0], c[1], c[2])
		}
		b.WriteString("\n")
	case len(style.Colors) > 0:
		b.WriteString("Color Palette:\n")
		for _, c := range style.Colors {
			fmt.Fprintf(&b, "- %s\n", c)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func styleBlock(style *models.SiteStyle) string {
	guide := StyleGuide(style)
	if guide == "" {
		return ""
	}
	return "Optional Supplementary Style Guide:\n" + guide + "\n"
}

// criteriaBlock renders the user-selected dominant color and primary font
// overrides, if any.
func criteriaBlock(style *models.SiteStyle) string {
	if style == nil || (style.DominantColor == "" && style.PrimaryFont == "") {
		return ""
	}

	var b strings.Builder
	b.WriteString("User Selected Design Criteria:\n")
	if style.DominantColor != "" {
		fmt.Fprintf(&b, "- Dominant Color: %s\n", style.DominantColor)
	}
	if style.PrimaryFont != "" {
		fmt.Fprintf(&b, "- Primary Font: %s\n", style.PrimaryFont)
	}
	b.WriteString("\n")
	return b.String()
}
