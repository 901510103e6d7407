package docshell

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"

	"github.com/eringen/docshell/theme"
	"github.com/eringen/docshell/views"
)

const (
	faviconSize        = 32
	appleTouchIconSize = 180

	// supersample renders the glyph this many times larger before scaling
	// down, which anti-aliases the circle edge.
	supersample = 4
)

// iconLogo returns the logo used for generated icons. Only views.Logo
// components have a glyph to rasterise.
func iconLogo(cfg *theme.SiteConfiguration) (views.Logo, bool) {
	if cfg == nil || cfg.Logo.Value == nil {
		return views.Logo{}, false
	}
	switch l := cfg.Logo.Value.(type) {
	case views.Logo:
		return l, true
	case *views.Logo:
		if l != nil {
			return *l, true
		}
	}
	return views.Logo{}, false
}

// RenderIconPNG rasterises the logo glyph into a size x size PNG.
func RenderIconPNG(logo views.Logo, size int) ([]byte, error) {
	if size <= 0 || logo.Size <= 0 {
		return nil, fmt.Errorf("icon: invalid size %d for glyph size %d", size, logo.Size)
	}
	fill, err := parseColor(logo.Fill)
	if err != nil {
		return nil, err
	}

	hiSize := size * supersample
	hi := image.NewRGBA(image.Rect(0, 0, hiSize, hiSize))
	scale := float64(hiSize) / float64(logo.Size)
	cx, cy, r := float64(logo.CX), float64(logo.CY), float64(logo.Radius)
	for y := 0; y < hiSize; y++ {
		gy := (float64(y)+0.5)/scale - cy
		for x := 0; x < hiSize; x++ {
			gx := (float64(x)+0.5)/scale - cx
			if gx*gx+gy*gy <= r*r {
				hi.SetRGBA(x, y, fill)
			}
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), hi, hi.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("icon: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// parseColor accepts SVG colour keywords and #rgb / #rrggbb.
func parseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	if h, ok := strings.CutPrefix(s, "#"); ok {
		if len(h) == 3 {
			h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
		}
		if b, err := hex.DecodeString(h); err == nil && len(b) == 3 {
			return color.RGBA{R: b[0], G: b[1], B: b[2], A: 0xff}, nil
		}
	}
	return color.RGBA{}, fmt.Errorf("icon: unsupported fill colour %q", s)
}
