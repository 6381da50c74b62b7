package meridian

import (
	"fmt"
	"image/color"
	"math"

	"github.com/goccy/go-json"
)

// Style is the complete visual configuration of a map: background, grid,
// marker, overlay, and control colors. Styles are plain data; applying one
// is an in-place swap via [Map.SetStyle], never a map rebuild.
type Style struct {
	Name string `json:"name"`

	// Background fills the map canvas.
	Background Color `json:"background"`
	// Grid colors the graticule lines drawn over the background.
	Grid Color `json:"grid"`
	// Marker is the fill of the default marker dot.
	Marker Color `json:"marker"`
	// Text colors element text content.
	Text Color `json:"text"`

	PopupBackground Color `json:"popupBackground"`
	PopupText       Color `json:"popupText"`
	PopupBorder     Color `json:"popupBorder"`

	ControlBackground Color `json:"controlBackground"`
	ControlIcon       Color `json:"controlIcon"`

	// Veil covers the canvas while the map or style is still loading.
	Veil Color `json:"veil"`
}

// StyleLight is the default day style.
var StyleLight = &Style{
	Name:              "light",
	Background:        Color{0.93, 0.93, 0.91, 1},
	Grid:              Color{0.85, 0.85, 0.83, 1},
	Marker:            Color{0.20, 0.45, 0.90, 1},
	Text:              Color{0.15, 0.15, 0.17, 1},
	PopupBackground:   Color{1, 1, 1, 1},
	PopupText:         Color{0.15, 0.15, 0.17, 1},
	PopupBorder:       Color{0.80, 0.80, 0.80, 1},
	ControlBackground: Color{1, 1, 1, 0.95},
	ControlIcon:       Color{0.25, 0.25, 0.28, 1},
	Veil:              Color{0.93, 0.93, 0.91, 1},
}

// StyleDark is the default night style.
var StyleDark = &Style{
	Name:              "dark",
	Background:        Color{0.11, 0.12, 0.15, 1},
	Grid:              Color{0.18, 0.19, 0.23, 1},
	Marker:            Color{0.38, 0.62, 1, 1},
	Text:              Color{0.92, 0.92, 0.94, 1},
	PopupBackground:   Color{0.16, 0.17, 0.21, 1},
	PopupText:         Color{0.92, 0.92, 0.94, 1},
	PopupBorder:       Color{0.30, 0.31, 0.36, 1},
	ControlBackground: Color{0.16, 0.17, 0.21, 0.95},
	ControlIcon:       Color{0.85, 0.85, 0.88, 1},
	Veil:              Color{0.11, 0.12, 0.15, 1},
}

// LoadStyle parses a style document from JSON. Colors are hex strings
// ("#rgb", "#rrggbb", or "#rrggbbaa"). Missing fields inherit from
// [StyleLight] so partial documents stay usable.
func LoadStyle(data []byte) (*Style, error) {
	s := *StyleLight
	s.Name = ""
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse style: %w", err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("parse style: missing name")
	}
	return &s, nil
}

// --- Color helpers ---

// ParseColor parses a hex color string: "#rgb", "#rrggbb", or "#rrggbbaa".
func ParseColor(s string) (Color, error) {
	if len(s) == 0 || s[0] != '#' {
		return Color{}, fmt.Errorf("parse color %q: missing #", s)
	}
	hex := s[1:]
	var r, g, b int
	a := 255
	switch len(hex) {
	case 3:
		var ok bool
		if r, ok = hexNibble(hex[0]); !ok {
			return Color{}, fmt.Errorf("parse color %q: bad digit", s)
		}
		r *= 17
		if g, ok = hexNibble(hex[1]); !ok {
			return Color{}, fmt.Errorf("parse color %q: bad digit", s)
		}
		g *= 17
		if b, ok = hexNibble(hex[2]); !ok {
			return Color{}, fmt.Errorf("parse color %q: bad digit", s)
		}
		b *= 17
	case 8:
		var ok bool
		if a, ok = hexByte(hex[6], hex[7]); !ok {
			return Color{}, fmt.Errorf("parse color %q: bad digit", s)
		}
		fallthrough
	case 6:
		var ok bool
		if r, ok = hexByte(hex[0], hex[1]); !ok {
			return Color{}, fmt.Errorf("parse color %q: bad digit", s)
		}
		if g, ok = hexByte(hex[2], hex[3]); !ok {
			return Color{}, fmt.Errorf("parse color %q: bad digit", s)
		}
		if b, ok = hexByte(hex[4], hex[5]); !ok {
			return Color{}, fmt.Errorf("parse color %q: bad digit", s)
		}
	default:
		return Color{}, fmt.Errorf("parse color %q: bad length", s)
	}
	return Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}, nil
}

func hexNibble(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}

func hexByte(hi, lo byte) (int, bool) {
	h, ok1 := hexNibble(hi)
	l, ok2 := hexNibble(lo)
	return h*16 + l, ok1 && ok2
}

// Hex returns the color as a "#rrggbb" or "#rrggbbaa" string.
func (c Color) Hex() string {
	r := clampByte(c.R)
	g := clampByte(c.G)
	b := clampByte(c.B)
	a := clampByte(c.A)
	if a == 255 {
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)
}

func clampByte(v float64) int {
	i := int(math.Round(v * 255))
	if i < 0 {
		return 0
	}
	if i > 255 {
		return 255
	}
	return i
}

// UnmarshalJSON decodes a color from a hex string.
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalJSON encodes the color as a hex string.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Hex())
}

// toRGBA converts to a premultiplied color.RGBA for Ebitengine fills.
func (c Color) toRGBA() color.RGBA {
	a := c.A
	return color.RGBA{
		R: uint8(clampByte(c.R * a)),
		G: uint8(clampByte(c.G * a)),
		B: uint8(clampByte(c.B * a)),
		A: uint8(clampByte(a)),
	}
}

// withAlpha returns the color with its alpha multiplied by a.
func (c Color) withAlpha(a float64) Color {
	c.A *= a
	return c
}
