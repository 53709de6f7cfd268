// Package app is the render loop controller. It converts raylib input polling into events,
// advances the session, draws the scene and overlays, and owns every acquired resource so that
// Dispose can release them in reverse order.
package app

import (
	"context"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio3d/internal/commands"
	"portfolio3d/internal/config"
	"portfolio3d/internal/console"
	"portfolio3d/internal/content"
	"portfolio3d/internal/controls"
	"portfolio3d/internal/debug"
	"portfolio3d/internal/events"
	"portfolio3d/internal/fonts"
	"portfolio3d/internal/graphics"
	"portfolio3d/internal/httpapi"
	"portfolio3d/internal/logger"
	"portfolio3d/internal/metrics"
	"portfolio3d/internal/scene"
	"portfolio3d/internal/session"
	"portfolio3d/internal/ui"
	"portfolio3d/internal/world"
)

const (
	windowTitle     = "3D Portfolio"
	shutdownTimeout = 5 * time.Second
)

// keyMap lists the keys forwarded to the session and their platform codes.
var keyMap = []struct {
	platform int32
	key      controls.Key
}{
	{rl.KeyW, controls.KeyW},
	{rl.KeyA, controls.KeyA},
	{rl.KeyS, controls.KeyS},
	{rl.KeyD, controls.KeyD},
	{rl.KeyUp, controls.KeyUp},
	{rl.KeyDown, controls.KeyDown},
	{rl.KeyLeft, controls.KeyLeft},
	{rl.KeyRight, controls.KeyRight},
	{rl.KeyEscape, controls.KeyEscape},
	{rl.KeyBackspace, controls.KeyBackspace},
	{rl.KeyF3, controls.KeyF3},
}

// cursor captures the mouse by hiding and locking the OS cursor.
type cursor struct{}

func (cursor) Capture() { rl.DisableCursor() }
func (cursor) Release() { rl.EnableCursor() }

// App owns the viewer for one window lifetime.
type App struct {
	prefs   config.Prefs
	log     *logger.Logger
	metrics *metrics.Metrics

	session  *session.Session
	dispatch *events.Dispatcher
	life     events.Lifecycle
	cmds     *commands.Registry

	scene   *scene.Scene
	ui      *ui.Engine
	overlay *ui.Overlay
	console *console.Console
	debug   *debug.Debug
	hub     *httpapi.Hub

	stylesheet string
	configPath string
	frameStart time.Time
	disposed   bool
}

// Options are the inputs of New.
type Options struct {
	Prefs      config.Prefs
	Items      []content.Item
	Log        *logger.Logger
	Metrics    *metrics.Metrics // nil disables metrics collection
	Stylesheet string           // optional CSS file merged over the built-in overlay style
	ConfigPath string           // preferences file the console's "save" writes; empty disables it
}

// New builds the controller. No window or GPU resource exists yet; Run creates them.
func New(opts Options) *App {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	p := opts.Prefs
	a := &App{
		prefs:      p,
		log:        log,
		metrics:    opts.Metrics,
		dispatch:   events.NewDispatcher(),
		cmds:       commands.NewRegistry(),
		stylesheet: opts.Stylesheet,
		configPath: opts.ConfigPath,
	}
	a.session = session.New(session.Options{
		Speed:        p.MoveSpeed,
		Sensitivity:  p.LookSensitivity,
		Aspect:       float32(p.Width) / float32(p.Height),
		Arrangement:  world.Arrangement{Radius: p.MarkerRadius},
		Particles:    p.ParticleCount,
		LoadingDelay: p.LoadingDelay,
		HelpDuration: p.HelpDuration,
		Toggles: session.Toggles{
			ShowFPS: p.ShowFPS,
			ShowMem: p.ShowMemAlloc,
			Floor:   p.FloorVisible,
		},
	}, opts.Items, cursor{}, log.Logger, opts.Metrics, time.Now())
	return a
}

// Run opens the window and blocks until it is closed or ctx is done. Resources are released
// before the window closes.
func (a *App) Run(ctx context.Context) error {
	return graphics.Run(ctx, graphics.Window{
		Title:      windowTitle,
		Width:      a.prefs.Width,
		Height:     a.prefs.Height,
		Fullscreen: a.prefs.Fullscreen,
		TargetFPS:  a.prefs.TargetFPS,
		Background: world.ClearColor,
	}, a.setup, a.update, a.draw, func() {
		if err := a.Dispose(); err != nil {
			a.log.Error().Err(err).Msg("dispose")
		}
	})
}

// setup acquires GPU resources, listeners and the debug server. Each acquisition registers its
// release before the next one starts, so a failure part way still tears down what exists.
func (a *App) setup() error {
	a.scene = scene.New(a.session.Layout)
	a.life.Defer("scene", a.scene.Unload)

	a.ui = ui.New()
	a.life.Defer("ui", a.ui.Unload)
	if a.stylesheet != "" {
		if err := a.ui.LoadCSS(a.stylesheet); err != nil {
			a.log.Warn().Err(err).Msg("stylesheet not loaded, using built-in style")
		}
	}
	if path, err := fonts.Resolve(a.prefs.Font); err == nil {
		if err := a.ui.LoadFont(path); err != nil {
			a.log.Warn().Err(err).Msg("font not loaded")
		}
	} else if a.prefs.Font != "" {
		a.log.Warn().Str("font", a.prefs.Font).Msg("font not found, using default")
	}
	a.overlay = ui.NewOverlay(a.ui)

	a.console = console.New(a.log, a.cmds)
	a.console.SetFont(a.ui.Font())
	a.debug = debug.New()
	a.debug.SetFont(a.ui.Font())
	a.session.RegisterCommands(a.cmds)

	hooks := session.Hooks{
		HitTest: func(x, y float32) session.Hit {
			switch a.overlay.HitTest(x, y) {
			case ui.ActionClose:
				return session.HitClose
			case ui.ActionOpenLink:
				return session.HitLink
			}
			return session.HitNone
		},
		OpenURL: rl.OpenURL,
	}
	if a.configPath != "" {
		hooks.SaveToggles = a.saveToggles
	}
	if a.prefs.MetricsAddr != "" {
		if err := a.startDebugServer(); err != nil {
			a.log.Warn().Err(err).Msg("debug server not started, continuing without it")
		} else {
			hooks.Notify = a.publish
		}
	}
	a.session.SetHooks(hooks)
	a.session.Bind(a.dispatch, &a.life)
	a.life.Defer("cursor", rl.EnableCursor)

	a.dispatch.Emit(events.Event{Kind: events.Resize, Width: rl.GetScreenWidth(), Height: rl.GetScreenHeight()})
	a.log.Info().Int("items", len(a.session.Items())).Msg("scene ready")
	return nil
}

// startDebugServer serves metrics, the portfolio and the event feed until Dispose.
func (a *App) startDebugServer() error {
	srv, err := httpapi.StartDebug(a.log.Logger, a.prefs.MetricsAddr, a.metrics, a.session.Items())
	if err != nil {
		return err
	}
	a.hub = srv.Hub
	return a.life.Acquire("debug server", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	})
}

// saveToggles writes the overlay and floor toggles into the preferences file.
func (a *App) saveToggles(t session.Toggles) error {
	return config.Update(a.configPath, func(p *config.Prefs) {
		p.ShowFPS = t.ShowFPS
		p.ShowMemAlloc = t.ShowMem
		p.FloorVisible = t.Floor
	})
}

func (a *App) publish(n session.Notice) {
	m := httpapi.Message{Type: n.Kind, Title: n.Title}
	if n.Kind == session.NoticeSelect {
		m.Index = n.Index + 1
	}
	a.hub.Publish(m)
}

// update polls raylib input into events, then advances the session.
func (a *App) update() {
	now := time.Now()
	a.frameStart = now
	if rl.IsWindowResized() {
		a.dispatch.Emit(events.Event{Kind: events.Resize, Width: rl.GetScreenWidth(), Height: rl.GetScreenHeight()})
	}

	if rl.IsKeyPressed(rl.KeyGrave) {
		a.toggleConsole()
	}
	if a.console.IsOpen() {
		if rl.IsKeyPressed(rl.KeyEscape) {
			a.toggleConsole()
		} else {
			a.console.Update()
		}
	} else {
		a.pollKeys()
		a.pollMouse()
	}

	a.session.Tick(now, rl.IsCursorHidden())

	t := a.session.Toggles
	a.scene.SetFloorVisible(t.Floor)
	a.debug.SetShowFPS(t.ShowFPS)
	a.debug.SetShowMemAlloc(t.ShowMem)
	a.debug.ShowPosition = t.ShowPosition
	pos := a.session.Camera.Position
	a.debug.Position = [3]float32{pos[0], pos[1], pos[2]}
}

// toggleConsole opens or closes the console. Held movement keys are dropped so the camera does
// not keep flying while typing, and the pointer is released for the console.
func (a *App) toggleConsole() {
	a.console.Toggle()
	a.session.Input.ReleaseAll()
	if a.console.IsOpen() && rl.IsCursorHidden() {
		rl.EnableCursor()
	}
}

func (a *App) pollKeys() {
	for _, k := range keyMap {
		if rl.IsKeyPressed(k.platform) {
			a.dispatch.Emit(events.Event{Kind: events.KeyDown, Key: k.key})
		}
		if rl.IsKeyReleased(k.platform) {
			a.dispatch.Emit(events.Event{Kind: events.KeyUp, Key: k.key})
		}
	}
}

func (a *App) pollMouse() {
	if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
		a.dispatch.Emit(events.Event{Kind: events.MouseMove, DX: d.X, DY: d.Y})
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		p := rl.GetMousePosition()
		a.dispatch.Emit(events.Event{Kind: events.Click, X: p.X, Y: p.Y})
	}
}

// draw renders one frame: scene, overlay, console, debug text.
func (a *App) draw() {
	now := time.Now()
	a.scene.Draw(a.session.Camera)

	s := a.session
	view := ui.View{
		Captured: s.Input.Captured(),
		Loading:  s.Intro.LoadingVisible(now),
		Help:     s.Intro.HelpVisible(now),
		Time:     s.Elapsed(now).Seconds(),
	}
	if item, _, ok := s.Selection.Current(); ok {
		view.Item = &item
	}
	a.overlay.Draw(view)
	a.console.Draw()
	a.debug.Draw()

	a.metrics.ObserveFrame(time.Since(a.frameStart))
}

// Dispose releases everything acquired by setup in reverse order. Safe to call more than once
// and after a failed setup. The logger belongs to the caller and stays open.
func (a *App) Dispose() error {
	if a == nil || a.disposed {
		return nil
	}
	a.disposed = true
	err := a.life.Close()
	a.scene, a.ui, a.overlay, a.console, a.debug, a.hub = nil, nil, nil, nil, nil, nil
	a.session.SetHooks(session.Hooks{})
	return err
}
