// Package icons renders the fixed ladder of PNG app icons, either by
// resampling a supplied source image or by painting letter placeholders.
package icons

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"sync"
	"unicode"

	_ "image/gif"
	_ "image/jpeg"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/webp"

	"github.com/jakoblorz/go-pwaforge/internal/models"
)

// gradientDarken is subtracted from each channel for the second gradient
// stop in placeholder mode.
const gradientDarken = 0x33

var (
	letterFont     *opentype.Font
	letterFontOnce sync.Once
)

// Generate produces all 8 icon sizes, keyed by their bundle-relative path.
// With a source image it resamples; without one it paints placeholders from
// the theme color and the short name's first letter.
func Generate(source []byte, cfg models.Config) (map[string][]byte, error) {
	if len(source) == 0 {
		return generatePlaceholders(cfg)
	}
	return generateResampled(source, cfg)
}

func generateResampled(source []byte, cfg models.Config) (map[string][]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("failed to decode icon image: %w", err)
	}

	bg := parseHexColor(cfg.BackgroundColor, models.DefaultBackgroundColor)

	out := make(map[string][]byte, len(models.IconSizes()))
	for _, size := range models.IconSizes() {
		img := coverFit(src, size, bg)

		encoded, err := encodePNG(img)
		if err != nil {
			return nil, err
		}
		out[models.IconFileName(size)] = encoded
	}

	return out, nil
}

func generatePlaceholders(cfg models.Config) (map[string][]byte, error) {
	c1 := parseHexColor(cfg.ThemeColor, models.DefaultThemeColor)
	c2 := darken(c1, gradientDarken)
	letter := firstLetter(cfg.ShortName)

	out := make(map[string][]byte, len(models.IconSizes()))
	for _, size := range models.IconSizes() {
		img := image.NewRGBA(image.Rect(0, 0, size, size))
		paintDiagonalGradient(img, c1, c2)

		if letter != "" {
			if err := drawCenteredLetter(img, letter, size); err != nil {
				return nil, err
			}
		}

		encoded, err := encodePNG(img)
		if err != nil {
			return nil, err
		}
		out[models.IconFileName(size)] = encoded
	}

	return out, nil
}

// coverFit scales src by the larger axis ratio so it covers the whole
// square, centers it and lets the canvas clip the overflow.
func coverFit(src image.Image, size int, bg color.Color) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, xdraw.Src)

	sb := src.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 {
		return dst
	}

	scale := math.Max(float64(size)/float64(sb.Dx()), float64(size)/float64(sb.Dy()))
	w := int(math.Round(float64(sb.Dx()) * scale))
	h := int(math.Round(float64(sb.Dy()) * scale))
	offX := (size - w) / 2
	offY := (size - h) / 2

	target := image.Rect(offX, offY, offX+w, offY+h)
	xdraw.CatmullRom.Scale(dst, target, src, sb, xdraw.Over, nil)

	return dst
}

func paintDiagonalGradient(img *image.RGBA, c1, c2 color.RGBA) {
	b := img.Bounds()
	span := float64(b.Dx() + b.Dy() - 2)
	if span <= 0 {
		span = 1
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			t := float64(x+y) / span
			img.SetRGBA(x, y, lerpColor(c1, c2, t))
		}
	}
}

func drawCenteredLetter(img *image.RGBA, letter string, size int) error {
	var fontErr error
	letterFontOnce.Do(func() {
		letterFont, fontErr = opentype.Parse(gobold.TTF)
	})
	if fontErr != nil {
		return fmt.Errorf("failed to parse placeholder font: %w", fontErr)
	}
	if letterFont == nil {
		return fmt.Errorf("placeholder font unavailable")
	}

	face, err := opentype.NewFace(letterFont, &opentype.FaceOptions{
		Size:    float64(size) / 2,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("failed to build font face: %w", err)
	}
	defer face.Close()

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
	}

	bounds, advance := font.BoundString(face, letter)
	height := bounds.Max.Y - bounds.Min.Y
	drawer.Dot = fixed.Point26_6{
		X: (fixed.I(size) - advance) / 2,
		Y: (fixed.I(size)-height)/2 - bounds.Min.Y,
	}
	drawer.DrawString(letter)

	return nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// parseHexColor reads #rgb and #rrggbb strings. Anything unparsable falls
// back to the given default so drawing always has a usable color; the raw
// string still flows unvalidated into the text artifacts.
func parseHexColor(s, fallback string) color.RGBA {
	c, ok := hexToRGBA(s)
	if ok {
		return c
	}
	if c, ok = hexToRGBA(fallback); ok {
		return c
	}
	return color.RGBA{A: 0xff}
}

func hexToRGBA(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, false
	}
	hex := s[1:]

	switch len(hex) {
	case 3:
		r, ok1 := hexNibble(hex[0])
		g, ok2 := hexNibble(hex[1])
		b, ok3 := hexNibble(hex[2])
		if !ok1 || !ok2 || !ok3 {
			return color.RGBA{}, false
		}
		return color.RGBA{R: r * 17, G: g * 17, B: b * 17, A: 0xff}, true
	case 6:
		var rgb [3]uint8
		for i := 0; i < 3; i++ {
			hi, ok1 := hexNibble(hex[i*2])
			lo, ok2 := hexNibble(hex[i*2+1])
			if !ok1 || !ok2 {
				return color.RGBA{}, false
			}
			rgb[i] = hi<<4 | lo
		}
		return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}, true
	}

	return color.RGBA{}, false
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func darken(c color.RGBA, amount uint8) color.RGBA {
	sub := func(v uint8) uint8 {
		if v < amount {
			return 0
		}
		return v - amount
	}
	return color.RGBA{R: sub(c.R), G: sub(c.G), B: sub(c.B), A: c.A}
}

func lerpColor(c1, c2 color.RGBA, t float64) color.RGBA {
	lerp := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return color.RGBA{
		R: lerp(c1.R, c2.R),
		G: lerp(c1.G, c2.G),
		B: lerp(c1.B, c2.B),
		A: 0xff,
	}
}

func firstLetter(s string) string {
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		return string(unicode.ToUpper(r))
	}
	return ""
}
