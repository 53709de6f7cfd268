package graphics

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Window describes the window to open.
type Window struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool // borderless at monitor size; Width/Height are ignored
	TargetFPS  int
	Background rl.Color
}

// Run opens the window and runs the main loop until the window is closed or ctx is done. Each
// frame it calls update (input, simulation), then clears the screen and calls draw. setup runs
// once after the window and GL context exist; teardown runs before the window closes, so GPU
// resources can be released while the context is still valid.
func Run(ctx context.Context, w Window, setup func() error, update, draw func(), teardown func()) error {
	flags := uint32(rl.FlagMsaa4xHint | rl.FlagVsyncHint)
	if w.Fullscreen {
		flags |= rl.FlagFullscreenMode
	} else {
		flags |= rl.FlagWindowResizable
	}
	rl.SetConfigFlags(flags)
	width, height := int32(w.Width), int32(w.Height)
	if w.Fullscreen {
		width, height = 0, 0 // raylib uses the monitor size
	}
	rl.InitWindow(width, height, w.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull) // ESC releases the mouse, not quit; close via window button
	rl.SetTargetFPS(int32(w.TargetFPS))

	if teardown != nil {
		defer teardown()
	}
	if setup != nil {
		if err := setup(); err != nil {
			return err
		}
	}

	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			break
		}
		update()

		rl.BeginDrawing()
		rl.ClearBackground(w.Background)
		draw()
		rl.EndDrawing()
	}
	return nil
}
