package css

import (
	"image/color"
	"strconv"
	"strings"
)

// Unset marks a percentage position that was not specified.
const Unset = -1

// Style holds resolved values used for drawing.
// LeftPct/TopPct are 0-100 for percentage positioning of the box within the screen; Unset means
// Left/Top are pixels.
type Style struct {
	Background color.RGBA
	Color      color.RGBA
	Accent     color.RGBA
	Border     color.RGBA
	HasBorder  bool
	Width      int32
	Height     int32
	Left       int32
	Top        int32
	LeftPct    int32
	TopPct     int32
	Padding    int32
	FontSize   int32
	Gap        int32
}

// DefaultStyle is a transparent box with white 20px text and 4px padding.
func DefaultStyle() Style {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	return Style{
		Color:    white,
		Accent:   white,
		Border:   color.RGBA{A: 255},
		LeftPct:  Unset,
		TopPct:   Unset,
		Padding:  4,
		FontSize: 20,
		Gap:      8,
	}
}

// Resolve builds a Style from merged properties. Unparseable values are ignored.
func Resolve(props map[string]string) Style {
	out := DefaultStyle()
	for k, v := range props {
		switch k {
		case "background":
			if c, ok := ParseColor(v); ok {
				out.Background = c
			}
		case "color":
			if c, ok := ParseColor(v); ok {
				out.Color = c
			}
		case "accent":
			if c, ok := ParseColor(v); ok {
				out.Accent = c
			}
		case "border":
			if c, ok := ParseColor(v); ok {
				out.Border = c
				out.HasBorder = true
			}
		case "width":
			if n, ok := ParsePx(v); ok {
				out.Width = n
			}
		case "height":
			if n, ok := ParsePx(v); ok {
				out.Height = n
			}
		case "left", "x":
			if pct, ok := ParsePct(v); ok {
				out.LeftPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Left = n
			}
		case "top", "y":
			if pct, ok := ParsePct(v); ok {
				out.TopPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Top = n
			}
		case "padding":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "font-size":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.FontSize = n
			}
		case "gap":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Gap = n
			}
		}
	}
	return out
}

// Place returns the top-left corner of a w x h box on a screen of the given size, honoring
// percentage positioning (0% = flush left/top, 100% = flush right/bottom). Negative pixel
// offsets count from the right/bottom edge.
func (s Style) Place(screenW, screenH, w, h int32) (x, y int32) {
	x, y = s.Left, s.Top
	if s.LeftPct != Unset {
		x = (screenW - w) * s.LeftPct / 100
	} else if x < 0 {
		x = screenW - w + x
	}
	if s.TopPct != Unset {
		y = (screenH - h) * s.TopPct / 100
	} else if y < 0 {
		y = screenH - h + y
	}
	return x, y
}

// ParseColor parses #RGB, #RRGGBB, #RRGGBBAA or rgba(r, g, b, a) with a in [0,1].
func ParseColor(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")") {
		return parseRGBA(s[len("rgba(") : len(s)-1])
	}
	if len(s) < 4 || s[0] != '#' {
		return color.RGBA{}, false
	}
	hex := s[1:]
	for i := 0; i < len(hex); i++ {
		if _, ok := hexDigit(hex[i]); !ok {
			return color.RGBA{}, false
		}
	}
	nib := func(i int) uint8 { v, _ := hexDigit(hex[i]); return v }
	switch len(hex) {
	case 3:
		return color.RGBA{R: nib(0) * 17, G: nib(1) * 17, B: nib(2) * 17, A: 255}, true
	case 6, 8:
		c := color.RGBA{R: nib(0)<<4 | nib(1), G: nib(2)<<4 | nib(3), B: nib(4)<<4 | nib(5), A: 255}
		if len(hex) == 8 {
			c.A = nib(6)<<4 | nib(7)
		}
		return c, true
	}
	return color.RGBA{}, false
}

func parseRGBA(body string) (color.RGBA, bool) {
	parts := strings.Split(body, ",")
	if len(parts) != 4 {
		return color.RGBA{}, false
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return color.RGBA{}, false
		}
		ch[i] = uint8(n)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
	if err != nil || a < 0 || a > 1 {
		return color.RGBA{}, false
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: uint8(a*255 + 0.5)}, true
}

func hexDigit(c byte) (uint8, bool) {
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

// ParsePx parses an integer with an optional "px" suffix.
func ParsePx(s string) (int32, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// ParsePct parses "N%" with N in 0-100.
func ParsePct(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[len(s)-1] != '%' {
		return 0, false
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int32(n), true
}
