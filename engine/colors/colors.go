package colors

import "fmt"

type Color [4]float32

var (
	White    = Color{1, 1, 1, 1}
	Red      = Color{1, 0, 0, 1}
	Green    = Color{0, 1, 0, 1}
	Blue     = Color{0, 0, 1, 1}
	Black    = Color{0, 0, 0, 1}
	Magenta  = Color{1, 0, 1, 1}
	Cyan     = Color{0, 1, 1, 1}
	Yellow   = Color{1, 1, 0, 1}
	Gray     = Color{0.5, 0.5, 0.5, 1}
	DarkGray = Color{0.08, 0.10, 0.12, 1}

	// Inspector palette.
	LightGray = Color{0.86, 0.87, 0.89, 1}
	Slate     = Color{0.20, 0.23, 0.27, 1}
	SlateHot  = Color{0.28, 0.32, 0.38, 1}
	Accent    = Color{0.26, 0.52, 0.96, 1}
	Panel     = Color{0.13, 0.15, 0.18, 0.98}
	Warning   = Color{0.96, 0.72, 0.26, 1}
)

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Hex parses "#rrggbb" or "#rrggbbaa".
func Hex(s string) (Color, error) {
	var r, g, b, a uint8 = 0, 0, 0, 255
	switch len(s) {
	case 7:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
			return Color{}, fmt.Errorf("colors: parse %q: %w", s, err)
		}
	case 9:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
			return Color{}, fmt.Errorf("colors: parse %q: %w", s, err)
		}
	default:
		return Color{}, fmt.Errorf("colors: parse %q: want #rrggbb or #rrggbbaa", s)
	}
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}, nil
}

// Hex formats c as "#rrggbbaa".
func (c Color) Hex() string {
	b := func(f float32) uint8 {
		if f <= 0 {
			return 0
		}
		if f >= 1 {
			return 255
		}
		return uint8(f*255 + 0.5)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", b(c[0]), b(c[1]), b(c[2]), b(c[3]))
}
