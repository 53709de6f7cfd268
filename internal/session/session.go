// Package session is the interaction core of the viewer: it owns the camera, input state, scene
// layout, selection and onboarding sequence, reacts to input events and advances everything
// once per frame. It has no graphics dependency; the app package feeds it platform input and
// draws its state.
package session

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"portfolio3d/internal/camera"
	"portfolio3d/internal/content"
	"portfolio3d/internal/controls"
	"portfolio3d/internal/events"
	"portfolio3d/internal/metrics"
	"portfolio3d/internal/onboarding"
	"portfolio3d/internal/picking"
	"portfolio3d/internal/selection"
	"portfolio3d/internal/world"
)

// Hit is what a click landed on in the 2D overlay.
type Hit int

const (
	HitNone Hit = iota
	HitClose
	HitLink
)

// Toggles are the switchable overlays and scene parts. The app reads them every frame.
type Toggles struct {
	ShowFPS      bool
	ShowMem      bool
	ShowPosition bool
	Floor        bool
}

// Options configures a session. Zero values fall back to package defaults, except Particles:
// zero draws no particles and a negative count means world.ParticleCount.
type Options struct {
	Speed        float32
	Sensitivity  float32
	Aspect       float32
	Arrangement  world.Arrangement
	Particles    int
	Seed         int64
	LoadingDelay time.Duration
	HelpDuration time.Duration
	Toggles      Toggles
}

// Notice kinds passed to Hooks.Notify.
const (
	NoticeSelect  = "select"
	NoticeClose   = "close"
	NoticeCapture = "capture"
)

// Notice reports an interaction to observers outside the render loop.
type Notice struct {
	Kind  string
	Index int // 0-based item index for NoticeSelect
	Title string
}

// Hooks connect the session to the presentation layer. Nil hooks are skipped.
type Hooks struct {
	// HitTest maps an uncaptured click position to an overlay button.
	HitTest func(x, y float32) Hit
	// OpenURL opens a project link in the system browser.
	OpenURL func(url string)
	// Notify is called on the render thread and must not block.
	Notify func(Notice)
	// SaveToggles persists the current toggles as the next run's defaults.
	SaveToggles func(Toggles) error
}

// Session is the viewer state. Not safe for concurrent use; everything runs on the render thread.
type Session struct {
	Camera    *camera.Camera
	Input     *controls.State
	Layout    *world.Layout
	Selection selection.Selection
	Intro     *onboarding.Sequence
	Toggles   Toggles

	items   []content.Item
	log     zerolog.Logger
	metrics *metrics.Metrics
	hooks   Hooks
	start   time.Time
}

// New builds a session showing items, starting its clocks at now. Pointer capture requests go through p.
func New(opts Options, items []content.Item, p controls.Pointer, log zerolog.Logger, m *metrics.Metrics, now time.Time) *Session {
	cam := camera.New(opts.Aspect)
	if opts.Speed > 0 {
		cam.Speed = opts.Speed
	}
	particles := opts.Particles
	if particles < 0 {
		particles = world.ParticleCount
	}
	seed := opts.Seed
	if seed == 0 {
		seed = now.UnixNano()
	}
	return &Session{
		Camera:  cam,
		Input:   controls.New(p, opts.Sensitivity),
		Layout:  world.NewLayout(len(items), opts.Arrangement, rand.New(rand.NewSource(seed)), particles),
		Intro:   onboarding.New(now, opts.LoadingDelay, opts.HelpDuration),
		Toggles: opts.Toggles,
		items:   items,
		log:     log,
		metrics: m,
		start:   now,
	}
}

// Items returns the portfolio items shown by the markers.
func (s *Session) Items() []content.Item {
	return s.items
}

// SetHooks installs the presentation callbacks.
func (s *Session) SetHooks(h Hooks) {
	s.hooks = h
}

// Bind registers the session's input handlers on d and records their removal in life.
func (s *Session) Bind(d *events.Dispatcher, life *events.Lifecycle) {
	life.Listen(d, events.KeyDown, s.onKeyDown)
	life.Listen(d, events.KeyUp, func(ev events.Event) { s.Input.KeyUp(ev.Key) })
	life.Listen(d, events.MouseMove, func(ev events.Event) { s.Input.MouseMove(ev.DX, ev.DY) })
	life.Listen(d, events.Click, s.onClick)
	life.Listen(d, events.Resize, func(ev events.Event) { s.Camera.SetAspect(ev.Width, ev.Height) })
}

func (s *Session) onKeyDown(ev events.Event) {
	s.Input.KeyDown(ev.Key)
	switch ev.Key {
	case controls.KeyBackspace:
		s.CloseSelection()
	case controls.KeyF3:
		on := !(s.Toggles.ShowFPS || s.Toggles.ShowMem || s.Toggles.ShowPosition)
		s.Toggles.ShowFPS, s.Toggles.ShowMem, s.Toggles.ShowPosition = on, on, on
	}
}

// onClick lets overlay buttons consume uncaptured clicks, then either requests capture or picks.
func (s *Session) onClick(ev events.Event) {
	if !s.Input.Captured() && s.hooks.HitTest != nil {
		switch s.hooks.HitTest(ev.X, ev.Y) {
		case HitClose:
			s.CloseSelection()
			return
		case HitLink:
			if item, _, ok := s.Selection.Current(); ok && item.HasLink() && s.hooks.OpenURL != nil {
				s.log.Info().Str("url", item.Link).Msg("opening project link")
				s.hooks.OpenURL(item.Link)
			}
			return
		}
	}
	switch s.Input.Click() {
	case controls.ActionCapture:
		s.metrics.IncCapture()
		s.notify(Notice{Kind: NoticeCapture})
	case controls.ActionPick:
		s.Pick()
	}
}

// Tick advances one frame at now. captured is the platform's current pointer capture state.
// Order: sync capture, movement from held keys, orientation from look angles, planar move,
// then marker and particle animation and the onboarding sequence.
func (s *Session) Tick(now time.Time, captured bool) {
	s.Input.Sync(captured)

	fwd, back, left, right := s.Input.Movement()
	dir := camera.Direction(fwd, back, left, right, s.Camera.Speed)
	s.Camera.Yaw, s.Camera.Pitch = s.Input.Look()
	s.Camera.Move(dir)

	s.Layout.Step(now.Sub(s.start).Seconds())

	if phase, changed := s.Intro.Advance(now); changed {
		s.log.Debug().Str("phase", phase.String()).Msg("onboarding")
	}
}

// Pick casts a ray through the screen center and selects the nearest marker's item. The cursor
// position is irrelevant while captured since the crosshair is fixed at the center.
func (s *Session) Pick() (int, bool) {
	origin, dir := s.Camera.Ray(0, 0)
	hit, ok := picking.Nearest(origin, dir, s.Layout.Boxes())
	if !ok {
		return -1, false
	}
	s.Select(hit.Index)
	return hit.Index, true
}

// Select shows item index (0-based), replacing any current selection. Out of range is ignored.
func (s *Session) Select(index int) bool {
	if index < 0 || index >= len(s.items) {
		return false
	}
	item := s.items[index]
	s.Selection.Select(index, item)
	s.metrics.IncSelection(item.Title)
	s.log.Info().Int("index", index).Str("title", item.Title).Msg("item selected")
	s.notify(Notice{Kind: NoticeSelect, Index: index, Title: item.Title})
	return true
}

// CloseSelection hides the popup if one is shown.
func (s *Session) CloseSelection() {
	if !s.Selection.Showing() {
		return
	}
	s.Selection.Close()
	s.log.Debug().Msg("popup closed")
	s.notify(Notice{Kind: NoticeClose})
}

func (s *Session) notify(n Notice) {
	if s.hooks.Notify != nil {
		s.hooks.Notify(n)
	}
}

// Elapsed returns the time since the session started.
func (s *Session) Elapsed(now time.Time) time.Duration {
	return now.Sub(s.start)
}
