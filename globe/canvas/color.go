package canvas

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// ParseColor parses the CSS colour forms used by the map styling:
// #rgb, #rrggbb, #rrggbbaa, rgb(r,g,b) and rgba(r,g,b,a) with a in [0,1].
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgba("):len(s)-1], 4)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgb("):len(s)-1], 3)
	}
	return color.NRGBA{}, fmt.Errorf("parse color %q: unsupported format", s)
}

// MustParseColor is ParseColor for package-level defaults.
func MustParseColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// WithAlpha returns c with alpha a in [0,1].
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(math.Round(clamp01(a) * 255))
	return c
}

// FormatColor renders c as #rrggbb, or rgba(...) when translucent.
func FormatColor(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B,
		strconv.FormatFloat(float64(c.A)/255, 'f', -1, 64))
}

func parseHex(h string) (color.NRGBA, error) {
	var v [4]uint8
	v[3] = 0xff
	switch len(h) {
	case 3:
		for i := 0; i < 3; i++ {
			n, err := strconv.ParseUint(h[i:i+1], 16, 8)
			if err != nil {
				return color.NRGBA{}, fmt.Errorf("parse color #%s: %w", h, err)
			}
			v[i] = uint8(n * 17)
		}
	case 6, 8:
		for i := 0; i < len(h)/2; i++ {
			n, err := strconv.ParseUint(h[2*i:2*i+2], 16, 8)
			if err != nil {
				return color.NRGBA{}, fmt.Errorf("parse color #%s: %w", h, err)
			}
			v[i] = uint8(n)
		}
	default:
		return color.NRGBA{}, fmt.Errorf("parse color #%s: bad length", h)
	}
	return color.NRGBA{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
}

func parseFunc(body string, n int) (color.NRGBA, error) {
	parts := strings.Split(body, ",")
	if len(parts) != n {
		return color.NRGBA{}, fmt.Errorf("parse color (%s): want %d components", body, n)
	}
	var v [4]float64
	v[3] = 1
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("parse color (%s): %w", body, err)
		}
		v[i] = f
	}
	c := color.NRGBA{
		R: uint8(math.Round(math.Max(0, math.Min(255, v[0])))),
		G: uint8(math.Round(math.Max(0, math.Min(255, v[1])))),
		B: uint8(math.Round(math.Max(0, math.Min(255, v[2])))),
	}
	return WithAlpha(c, v[3]), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
