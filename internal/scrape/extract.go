// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// extract.go mines a parsed document for brand signals: font families,
// a logo, a hero image, and feature images. The heuristics are deliberate
// text-pattern matching over markup and style attributes, best-effort and
// never authoritative. Extraction cannot fail; absent signals yield empty
// results.
package scrape

import (
	"encoding/base64"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// genericFonts are system and generic font families that carry no brand
// signal and are dropped from extraction results.
var genericFonts = map[string]bool{
	"serif":            true,
	"sans-serif":       true,
	"monospace":        true,
	"cursive":          true,
	"fantasy":          true,
	"system-ui":        true,
	"-apple-system":    true,
	"blinkmacsystemfont": true,
	"segoe ui":         true,
	"helvetica neue":   true,
	"arial":            true,
	"noto sans":        true,
	"liberation sans":  true,
	"apple color emoji": true,
	"segoe ui emoji":   true,
	"segoe ui symbol":  true,
	"noto color emoji": true,
}

var (
	inlineFontRe = regexp.MustCompile(`(?i)font-family:\s*([^;]+)`)
	blockFontRe  = regexp.MustCompile(`(?i)font-family:\s*([^;}]+)`)
	fontParamRe  = regexp.MustCompile(`family=([^&]+)`)
	rasterExtRe  = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|webp)(\?.*)?$`)
)

// ExtractFonts collects font-family names from inline style attributes,
// <style> blocks, and Google Fonts link tags. Results keep first-discovery
// order and exclude generic/system fonts.
func ExtractFonts(doc *goquery.Document) []string {
	var fonts []string
	seen := make(map[string]bool)

	add := func(name string) {
		name = strings.TrimSpace(strings.Trim(strings.TrimSpace(name), `'"`))
		if name == "" {
			return
		}
		key := strings.ToLower(name)
		if seen[key] || genericFonts[key] {
			return
		}
		seen[key] = true
		fonts = append(fonts, name)
	}

	addList := func(list string) {
		for _, part := range strings.Split(list, ",") {
			add(part)
		}
	}

	// Inline style attributes.
	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		style, _ := s.Attr("style")
		if m := inlineFontRe.FindStringSubmatch(style); m != nil {
			addList(m[1])
		}
	})

	// <style> block contents. Pattern matching, not CSS parsing.
	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		for _, m := range blockFontRe.FindAllStringSubmatch(s.Text(), -1) {
			addList(m[1])
		}
	})

	// Google Fonts link hrefs: family=Roboto:400|Open+Sans
	doc.Find(`link[href*="fonts.googleapis.com"]`).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		m := fontParamRe.FindStringSubmatch(href)
		if m == nil {
			return
		}
		decoded, err := url.QueryUnescape(m[1])
		if err != nil {
			decoded = m[1]
		}
		for _, family := range strings.Split(decoded, "|") {
			name, _, _ := strings.Cut(family, ":")
			add(strings.ReplaceAll(name, "+", " "))
		}
	})

	return fonts
}

// ImageCandidates holds the raw (unresolved) image URLs discovered by FindImages.
type ImageCandidates struct {
	Logo          string
	HeroImage     string
	FeatureImages []string
}

// FindImages locates the logo, hero image, and up to three feature images
// in the document. brand is an optional hint matched case-insensitively
// alongside "logo" and "brand".
func FindImages(doc *goquery.Document, brand string) ImageCandidates {
	terms := []string{"logo", "brand"}
	if brand != "" {
		terms = append(terms, strings.ToLower(brand))
	}

	return ImageCandidates{
		Logo:          findLogo(doc, terms),
		HeroImage:     findHeroImage(doc),
		FeatureImages: findFeatureImages(doc),
	}
}

// findLogo applies the logo heuristics in priority order: a matching <img>
// in a header/nav/logo container, then an inline <svg> re-encoded as a data
// URI, then an <img> nested in a matching anchor. First match wins.
func findLogo(doc *goquery.Document, terms []string) string {
	container := doc.Find("header, nav, .navbar, .logo").First()
	if container.Length() == 0 {
		return ""
	}

	// 1. <img> whose src, alt, or class contains a term.
	var logo string
	container.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src, _ := img.Attr("src")
		alt, _ := img.Attr("alt")
		class, _ := img.Attr("class")
		if matchesAny(terms, src, alt, class) {
			logo = imageSource(img)
			return false
		}
		return true
	})
	if logo != "" {
		return logo
	}

	// 2. Inline <svg> with a matching aria-label, <title>, or class.
	container.Find("svg").EachWithBreak(func(_ int, svg *goquery.Selection) bool {
		ariaLabel, _ := svg.Attr("aria-label")
		class, _ := svg.Attr("class")
		title := svg.Find("title").Text()
		if matchesAny(terms, ariaLabel, title, class) {
			if markup, err := goquery.OuterHtml(svg); err == nil {
				logo = "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(markup))
			}
			return false
		}
		return true
	})
	if logo != "" {
		return logo
	}

	// 3. Anchor whose text mentions a term, using the nested <img> if present.
	container.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if !matchesAny(terms, a.Text()) {
			return true
		}
		img := a.Find("img").First()
		if img.Length() > 0 {
			logo = imageSource(img)
		}
		return false
	})
	return logo
}

// findHeroImage returns the first <img> inside an element classed or
// identified as "hero".
func findHeroImage(doc *goquery.Document) string {
	hero := doc.Find(`.hero, [class*="hero"], #hero, [id*="hero"]`).First()
	if hero.Length() == 0 {
		return ""
	}
	img := hero.Find("img").First()
	if img.Length() == 0 {
		return ""
	}
	return imageSource(img)
}

// findFeatureImages returns up to three raster images from feature/card
// sections.
func findFeatureImages(doc *goquery.Document) []string {
	var images []string
	doc.Find(`.features, [class*="feature"], .cards, [class*="card"]`).
		Find("img").
		EachWithBreak(func(_ int, img *goquery.Selection) bool {
			src := imageSource(img)
			if src != "" && rasterExtRe.MatchString(src) {
				images = append(images, src)
			}
			return len(images) < 3
		})
	return images
}

// imageSource reads an image's src, falling back to data-src for
// lazy-loaded images.
func imageSource(img *goquery.Selection) string {
	if src, ok := img.Attr("src"); ok && src != "" {
		return src
	}
	if src, ok := img.Attr("data-src"); ok && src != "" {
		return src
	}
	return ""
}

// matchesAny reports whether any value contains any term, case-insensitively.
func matchesAny(terms []string, values ...string) bool {
	for _, v := range values {
		lower := strings.ToLower(v)
		for _, term := range terms {
			if strings.Contains(lower, term) {
				return true
			}
		}
	}
	return false
}
