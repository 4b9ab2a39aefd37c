// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging validates downloaded image blobs and derives small color
// palettes from screenshots. Both operations run a decode goroutine raced
// against a timer; a decode that finishes after the deadline is disregarded
// rather than cancelled.
package imaging

import (
	"bytes"
	"errors"
	"image"
	"sort"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"brandforge/internal/models"
)

// PaletteSize is the number of representative colors extracted from a screenshot.
const PaletteSize = 6

// DefaultTimeout bounds validation and palette extraction.
const DefaultTimeout = 5 * time.Second

var errDecodeTimeout = errors.New("imaging: decode timed out")

// Validate reports whether data decodes as a supported image (JPEG, PNG,
// GIF, WebP) within the timeout. A successful decode is the sole validity
// criterion; blank frames pass.
func Validate(data []byte, timeout time.Duration) bool {
	img, err := decodeBounded(data, timeout)
	return err == nil && img != nil
}

// Palette extracts up to count representative colors from an image,
// ordered most dominant first. Pixels are sampled on a coarse grid and
// bucketed at 5 bits per channel; each returned color is the average of
// its bucket.
func Palette(data []byte, count int, timeout time.Duration) ([]models.RGB, error) {
	if count <= 0 {
		count = PaletteSize
	}

	img, err := decodeBounded(data, timeout)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil, errors.New("imaging: empty image")
	}

	// Sample at most ~100x100 points regardless of image size.
	stepX := max(1, width/100)
	stepY := max(1, height/100)

	type bucket struct {
		count   int
		r, g, b int
	}
	buckets := make(map[uint16]*bucket)

	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			r, g, b, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			r8, g8, b8 := int(r>>8), int(g>>8), int(b>>8)
			key := uint16(r8>>3)<<10 | uint16(g8>>3)<<5 | uint16(b8>>3)
			bk := buckets[key]
			if bk == nil {
				bk = &bucket{}
				buckets[key] = bk
			}
			bk.count++
			bk.r += r8
			bk.g += g8
			bk.b += b8
		}
	}

	if len(buckets) == 0 {
		return nil, errors.New("imaging: no opaque pixels sampled")
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, bk := range buckets {
		ordered = append(ordered, bk)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].count > ordered[j].count })

	if len(ordered) > count {
		ordered = ordered[:count]
	}

	palette := make([]models.RGB, 0, len(ordered))
	for _, bk := range ordered {
		palette = append(palette, models.RGB{bk.r / bk.count, bk.g / bk.count, bk.b / bk.count})
	}
	return palette, nil
}

// decodeBounded decodes data, giving up after timeout. The decode goroutine
// writes to a buffered channel so a late result is dropped, not leaked.
func decodeBounded(data []byte, timeout time.Duration) (image.Image, error) {
	type result struct {
		img image.Image
		err error
	}
	done := make(chan result, 1)

	go func() {
		img, _, err := image.Decode(bytes.NewReader(data))
		done <- result{img: img, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-done:
		return res.img, res.err
	case <-timer.C:
		return nil, errDecodeTimeout
	}
}
