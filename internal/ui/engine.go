package ui

import (
	_ "embed"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio3d/internal/ui/css"
	"portfolio3d/internal/ui/wrap"
)

//go:embed default.css
var defaultCSS string

const textSpacing = 1

// Engine holds the stylesheet and font, and draws nodes and primitives with raylib.
// Resolved styles are cached per class/id pair and dropped when the sheet changes.
// If a font is loaded (LoadFont), text is drawn with that font; otherwise raylib's default font is used.
type Engine struct {
	sheet  *css.Stylesheet
	styles map[string]css.Style
	font   rl.Font
}

// New creates an engine using the built-in stylesheet.
func New() *Engine {
	return &Engine{sheet: css.Parse(defaultCSS), styles: make(map[string]css.Style)}
}

// LoadCSS parses the file at path and merges it over the built-in stylesheet.
func (e *Engine) LoadCSS(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ui: load css: %w", err)
	}
	e.SetStylesheet(css.Merge(css.Parse(defaultCSS), css.Parse(string(data))))
	return nil
}

// SetStylesheet replaces the stylesheet.
func (e *Engine) SetStylesheet(sheet *css.Stylesheet) {
	e.sheet = sheet
	clear(e.styles)
}

// LoadFont loads a TTF font from path for text rendering. If loading fails, the engine keeps
// using the current font. Call after the window exists.
func (e *Engine) LoadFont(path string) error {
	f := rl.LoadFontEx(path, 64, nil, 0)
	if f.Texture.ID == 0 {
		return fmt.Errorf("ui: load font %s: %w", path, os.ErrNotExist)
	}
	rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
	}
	e.font = f
	return nil
}

// Font returns the loaded font; a zero texture ID means raylib's default font.
func (e *Engine) Font() rl.Font {
	return e.font
}

// Unload releases the font. Safe to call more than once.
func (e *Engine) Unload() {
	if e == nil || e.font.Texture.ID == 0 {
		return
	}
	rl.UnloadFont(e.font)
	e.font = rl.Font{}
}

// Style returns the resolved style for an element with class and id.
func (e *Engine) Style(class, id string) css.Style {
	key := class + "#" + id
	if st, ok := e.styles[key]; ok {
		return st
	}
	st := css.Resolve(e.sheet.Match(class, id))
	e.styles[key] = st
	return st
}

// Measure returns the width of text drawn at size.
func (e *Engine) Measure(text string, size int32) int32 {
	if e.font.Texture.ID != 0 {
		return int32(rl.MeasureTextEx(e.font, text, float32(size), textSpacing).X)
	}
	return rl.MeasureText(text, size)
}

// Text draws text with its top-left corner at x, y.
func (e *Engine) Text(text string, x, y, size int32, c rl.Color) {
	if e.font.Texture.ID != 0 {
		rl.DrawTextEx(e.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), textSpacing, c)
		return
	}
	rl.DrawText(text, x, y, size, c)
}

// Box draws the background and 1px border of st over r.
func (e *Engine) Box(st css.Style, r rl.Rectangle) {
	if st.Background.A > 0 {
		rl.DrawRectangleRec(r, st.Background)
	}
	if st.HasBorder && r.Width > 0 && r.Height > 0 {
		rl.DrawRectangleLinesEx(r, 1, st.Border)
	}
}

func lineHeight(size int32) int32 {
	return size + size/3
}

// layout sizes and places n from its style: width from CSS, height from content unless set.
func (e *Engine) layout(n *Node, st css.Style, screenW, screenH int32) {
	w := st.Width
	if w <= 0 || w > screenW {
		w = screenW
	}
	inner := w - 2*st.Padding
	h := st.Padding * 2
	if n.Heading != "" {
		h += lineHeight(st.FontSize+4) + st.Gap
	}
	h += int32(len(n.Rows)) * (lineHeight(st.FontSize) + st.Gap)
	if n.Text != "" {
		h += int32(len(wrap.Lines(n.Text, inner, st.FontSize, e.Measure))) * lineHeight(st.FontSize)
	}
	if st.Height > 0 {
		h = st.Height
	}
	x, y := st.Place(screenW, screenH, w, h)
	n.Bounds = rl.NewRectangle(float32(x), float32(y), float32(w), float32(h))
}

// Draw lays out and draws nodes in order (first node drawn first). Hidden nodes are skipped.
func (e *Engine) Draw(nodes []*Node) {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())
	for _, n := range nodes {
		if n.Hidden {
			continue
		}
		st := e.Style(n.Class, n.ID)
		e.layout(n, st, screenW, screenH)
		e.Box(st, n.Bounds)

		x := int32(n.Bounds.X) + st.Padding
		y := int32(n.Bounds.Y) + st.Padding
		if n.Heading != "" {
			e.Text(n.Heading, x, y, st.FontSize+4, st.Accent)
			y += lineHeight(st.FontSize+4) + st.Gap
		}
		for _, row := range n.Rows {
			key := row.Key + ":"
			e.Text(key, x, y, st.FontSize, st.Accent)
			e.Text(row.Value, x+e.Measure(key+" ", st.FontSize), y, st.FontSize, st.Color)
			y += lineHeight(st.FontSize) + st.Gap
		}
		if n.Text != "" {
			inner := int32(n.Bounds.Width) - 2*st.Padding
			for _, line := range wrap.Lines(n.Text, inner, st.FontSize, e.Measure) {
				e.Text(line, x, y, st.FontSize, st.Color)
				y += lineHeight(st.FontSize)
			}
		}
	}
}
