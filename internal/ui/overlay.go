package ui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio3d/internal/content"
	"portfolio3d/internal/ui/wrap"
)

// Action is what a click on the overlay hit.
type Action int

const (
	ActionNone Action = iota
	ActionClose
	ActionOpenLink
)

// View is the state the overlay renders for one frame.
type View struct {
	Captured bool
	Item     *content.Item // nil when nothing is selected
	Loading  bool
	Help     bool
	Time     float64 // seconds, drives the loading spinner
}

// Overlay draws the 2D layer above the scene: controls panel, welcome panel, crosshair,
// selection popup and loading screen. It remembers the popup's button rectangles from the last
// Draw for HitTest.
type Overlay struct {
	engine   *Engine
	controls *Node
	info     *Node
	closeBtn rl.Rectangle
	linkBtn  rl.Rectangle
	hasPopup bool
	hasLink  bool
}

// NewOverlay builds the overlay on engine.
func NewOverlay(engine *Engine) *Overlay {
	controls := NewNode("panel", "controls", "")
	controls.Heading = "Controls"
	controls.Rows = []Row{
		{Key: "WASD", Value: "Move around"},
		{Key: "Mouse", Value: "Look around"},
		{Key: "Click", Value: "Interact with objects"},
		{Key: "ESC", Value: "Release mouse"},
	}
	info := NewNode("panel", "info", "Navigate through this 3D space to explore my portfolio. Click on the floating objects to learn more about my projects and skills.")
	info.Heading = "Welcome!"
	return &Overlay{engine: engine, controls: controls, info: info}
}

// Draw renders v. The loading screen, when shown, covers everything else.
func (o *Overlay) Draw(v View) {
	sw := int32(rl.GetScreenWidth())
	sh := int32(rl.GetScreenHeight())

	o.info.Hidden = !v.Help
	o.engine.Draw([]*Node{o.controls, o.info})
	o.drawCrosshair(sw, sh, v.Captured)

	o.hasPopup = v.Item != nil
	if o.hasPopup {
		o.drawPopup(*v.Item, sw, sh)
	}
	if v.Loading {
		o.drawLoading(sw, sh, v.Time)
	}
}

// HitTest maps a click at screen position (x, y) to the popup button under it.
func (o *Overlay) HitTest(x, y float32) Action {
	if !o.hasPopup {
		return ActionNone
	}
	p := rl.NewVector2(x, y)
	if rl.CheckCollisionPointRec(p, o.closeBtn) {
		return ActionClose
	}
	if o.hasLink && rl.CheckCollisionPointRec(p, o.linkBtn) {
		return ActionOpenLink
	}
	return ActionNone
}

// drawCrosshair draws a ring at the screen center, accented while the pointer is captured.
func (o *Overlay) drawCrosshair(sw, sh int32, active bool) {
	st := o.engine.Style("", "crosshair")
	c := st.Color
	if active {
		c = st.Accent
	}
	r := float32(st.Width) / 2
	center := rl.NewVector2(float32(sw)/2, float32(sh)/2)
	rl.DrawRing(center, r-2, r, 0, 360, 32, c)
	rl.DrawCircleV(center, 2, c)
}

func (o *Overlay) drawPopup(item content.Item, sw, sh int32) {
	e := o.engine
	st := e.Style("popup", "")
	title := e.Style("popup-title", "")
	heading := e.Style("popup-heading", "")
	tag := e.Style("tag", "")
	link := e.Style("link", "")
	closeSt := e.Style("close", "")

	w := min(st.Width, sw-40)
	inner := w - 2*st.Padding

	titleLines := wrap.Lines(item.Title, inner-closeSt.Width, title.FontSize, e.Measure)
	descLines := wrap.Lines(item.Description, inner, st.FontSize, e.Measure)
	chips, chipsH := wrap.Chips(item.Technologies, inner, tag.FontSize, tag.Padding, tag.Height, tag.Gap, e.Measure)
	const headingText = "Technologies Used:"
	linkText := "View Project"
	linkW := e.Measure(linkText, link.FontSize) + 4*link.Padding
	linkH := link.FontSize + 2*link.Padding

	h := 2 * st.Padding
	h += int32(len(titleLines))*lineHeight(title.FontSize) + st.Gap
	h += int32(len(descLines))*lineHeight(st.FontSize) + st.Gap
	h += lineHeight(heading.FontSize) + heading.Gap + chipsH
	o.hasLink = item.HasLink()
	if o.hasLink {
		h += 20 + linkH
	}
	h = min(h, sh-20)
	x, y := st.Place(sw, sh, w, h)

	// Dim the scene behind the popup.
	rl.DrawRectangle(0, 0, sw, sh, rl.NewColor(0, 0, 0, 80))
	e.Box(st, rl.NewRectangle(float32(x), float32(y), float32(w), float32(h)))

	o.closeBtn = rl.NewRectangle(float32(x+w-st.Padding/2-closeSt.Width), float32(y+st.Padding/2), float32(closeSt.Width), float32(closeSt.Height))
	closeColor := closeSt.Color
	mouse := rl.GetMousePosition()
	if rl.CheckCollisionPointRec(mouse, o.closeBtn) {
		closeColor = closeSt.Accent
	}
	cw := e.Measure("x", closeSt.FontSize)
	e.Text("x", int32(o.closeBtn.X)+(closeSt.Width-cw)/2, int32(o.closeBtn.Y)+(closeSt.Height-closeSt.FontSize)/2, closeSt.FontSize, closeColor)

	cx := x + st.Padding
	cy := y + st.Padding
	for _, line := range titleLines {
		e.Text(line, cx, cy, title.FontSize, title.Color)
		cy += lineHeight(title.FontSize)
	}
	cy += st.Gap
	for _, line := range descLines {
		e.Text(line, cx, cy, st.FontSize, st.Color)
		cy += lineHeight(st.FontSize)
	}
	cy += st.Gap
	e.Text(headingText, cx, cy, heading.FontSize, heading.Color)
	cy += lineHeight(heading.FontSize) + heading.Gap
	for _, c := range chips {
		r := rl.NewRectangle(float32(cx+c.X), float32(cy+c.Y), float32(c.Width), float32(c.Height))
		if tag.Background.A > 0 {
			rl.DrawRectangleRounded(r, 1, 8, tag.Background)
		}
		if tag.HasBorder {
			rl.DrawRectangleRoundedLinesEx(r, 1, 8, 1, tag.Border)
		}
		e.Text(c.Text, cx+c.X+tag.Padding, cy+c.Y+(c.Height-tag.FontSize)/2, tag.FontSize, tag.Color)
	}
	cy += chipsH

	if o.hasLink {
		cy += 20
		o.linkBtn = rl.NewRectangle(float32(cx), float32(cy), float32(linkW), float32(linkH))
		bg := link.Background
		if rl.CheckCollisionPointRec(mouse, o.linkBtn) {
			bg = rl.ColorBrightness(bg, 0.2)
		}
		rl.DrawRectangleRounded(o.linkBtn, 0.25, 6, bg)
		e.Text(linkText, cx+2*link.Padding, cy+link.Padding, link.FontSize, link.Color)
	}
}

// drawLoading covers the screen with the loading message and a spinning arc.
func (o *Overlay) drawLoading(sw, sh int32, t float64) {
	e := o.engine
	st := e.Style("", "loading")
	rl.DrawRectangle(0, 0, sw, sh, st.Background)

	center := rl.NewVector2(float32(sw)/2, float32(sh)/2-60)
	rl.DrawRing(center, 20, 25, 0, 360, 48, rl.NewColor(st.Accent.R, st.Accent.G, st.Accent.B, 60))
	start := float32(math.Mod(t*360, 360))
	rl.DrawRing(center, 20, 25, start, start+90, 16, st.Accent)

	title := "Loading 3D Portfolio..."
	y := int32(center.Y) + 50
	e.Text(title, (sw-e.Measure(title, st.FontSize))/2, y, st.FontSize, st.Color)
	sub := "Initializing the experience"
	subSize := st.FontSize * 4 / 7
	e.Text(sub, (sw-e.Measure(sub, subSize))/2, y+lineHeight(st.FontSize)+st.Gap, subSize, st.Color)
}
