package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fpsFontSize    = 20
	fpsPadding     = 12
	fpsLineHeight  = fpsFontSize + 4
	updateInterval = 30 // frames between text refreshes
)

var overlayColor = rl.NewColor(0, 255, 136, 255)

// Debug draws the FPS, heap and camera position overlays. All are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowPosition bool
	Position     [3]float32 // camera position, set by the caller each frame
	font         rl.Font
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetShowFPS sets whether the FPS counter is drawn.
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowMemAlloc sets whether heap allocation is drawn.
func (d *Debug) SetShowMemAlloc(show bool) {
	d.ShowMemAlloc = show
}

// SetFont sets the overlay font. A zero texture ID keeps raylib's default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// Draw renders the enabled overlays stacked at the top-right: FPS, memory, then position.
// Call last in the draw loop. FPS and memory text refresh every updateInterval frames.
func (d *Debug) Draw() {
	d.frameCount++
	refresh := d.frameCount%updateInterval == 0 ||
		(d.ShowFPS && d.lastFpsText == "") ||
		(d.ShowMemAlloc && d.lastMemText == "")
	if refresh {
		d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		runtime.ReadMemStats(&d.lastMemStats)
		d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(d.lastMemStats.Alloc)/(1<<20))
	}

	lines := make([]string, 0, 3)
	if d.ShowFPS {
		lines = append(lines, d.lastFpsText)
	}
	if d.ShowMemAlloc {
		lines = append(lines, d.lastMemText)
	}
	if d.ShowPosition {
		p := d.Position
		lines = append(lines, fmt.Sprintf("Pos: %.1f %.1f %.1f", p[0], p[1], p[2]))
	}

	screenW := int32(rl.GetScreenWidth())
	for i, line := range lines {
		d.drawRight(line, screenW, fpsPadding+int32(i)*fpsLineHeight)
	}
}

// drawRight draws text right-aligned against the screen edge.
func (d *Debug) drawRight(text string, screenW, y int32) {
	if text == "" {
		return
	}
	if d.font.Texture.ID != 0 {
		sz := float32(fpsFontSize)
		pos := rl.NewVector2(float32(screenW)-rl.MeasureTextEx(d.font, text, sz, 1).X-float32(fpsPadding), float32(y))
		rl.DrawTextEx(d.font, text, pos, sz, 1, overlayColor)
		return
	}
	x := screenW - rl.MeasureText(text, fpsFontSize) - fpsPadding
	rl.DrawText(text, x, y, fpsFontSize, overlayColor)
}
