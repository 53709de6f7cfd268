package session

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"portfolio3d/internal/commands"
	"portfolio3d/internal/content"
	"portfolio3d/internal/controls"
	"portfolio3d/internal/events"
	"portfolio3d/internal/onboarding"
)

type fakePointer struct {
	captures, releases int
}

func (p *fakePointer) Capture() { p.captures++ }
func (p *fakePointer) Release() { p.releases++ }

var t0 = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newSession(t *testing.T, items []content.Item) (*Session, *fakePointer, *events.Dispatcher) {
	t.Helper()
	p := &fakePointer{}
	s := New(Options{Seed: 1, Particles: 0, Toggles: Toggles{Floor: true}}, items, p, zerolog.Nop(), nil, t0)
	d := events.NewDispatcher()
	var life events.Lifecycle
	s.Bind(d, &life)
	t.Cleanup(func() { _ = life.Close() })
	return s, p, d
}

// lookAtFirstMarker places the camera at the origin at marker height, turned toward +X where
// marker 0 of a single-item layout sits.
func lookAtFirstMarker(s *Session, d *events.Dispatcher) {
	s.Camera.Position = mgl32.Vec3{0, 5, 0}
	s.Input.Sync(true)
	d.Emit(events.Event{Kind: events.MouseMove, DX: (math.Pi / 2) / controls.DefaultSensitivity})
	s.Tick(t0, true)
}

func TestClick_uncapturedRequestsCapture(t *testing.T) {
	s, p, d := newSession(t, content.Default())
	d.Emit(events.Event{Kind: events.Click, X: 10, Y: 10})
	if p.captures != 1 {
		t.Fatalf("captures = %d, want 1", p.captures)
	}
	if s.Selection.Showing() {
		t.Fatalf("uncaptured click must not select")
	}
}

func TestClick_capturedPicksMarkerInFront(t *testing.T) {
	items := content.Default()[:1]
	s, p, d := newSession(t, items)
	lookAtFirstMarker(s, d)

	d.Emit(events.Event{Kind: events.Click})
	item, index, ok := s.Selection.Current()
	if !ok || index != 0 || item.Title != items[0].Title {
		t.Fatalf("selection = %v %d %v", item.Title, index, ok)
	}
	if p.captures != 0 {
		t.Fatalf("captured click requested capture again")
	}
}

func TestClick_capturedMissSelectsNothing(t *testing.T) {
	s, _, d := newSession(t, content.Default()[:1])
	s.Tick(t0, true)
	d.Emit(events.Event{Kind: events.Click})
	if s.Selection.Showing() {
		t.Fatalf("default camera faces away from marker 0 and must miss")
	}
}

func TestClick_overlayButtonsConsumeClick(t *testing.T) {
	items := []content.Item{{Title: "A", Link: "https://example.com/a"}}
	s, p, d := newSession(t, items)
	hit := HitNone
	var opened []string
	s.SetHooks(Hooks{
		HitTest: func(x, y float32) Hit { return hit },
		OpenURL: func(url string) { opened = append(opened, url) },
	})
	s.Select(0)

	hit = HitLink
	d.Emit(events.Event{Kind: events.Click})
	if len(opened) != 1 || opened[0] != "https://example.com/a" || p.captures != 0 {
		t.Fatalf("link click: opened %v captures %d", opened, p.captures)
	}

	hit = HitClose
	d.Emit(events.Event{Kind: events.Click})
	if s.Selection.Showing() || p.captures != 0 {
		t.Fatalf("close click should hide popup without capture")
	}
}

func TestKeys_backspaceClosesAndEscapeReleases(t *testing.T) {
	s, p, d := newSession(t, content.Default())
	s.Select(2)
	d.Emit(events.Event{Kind: events.KeyDown, Key: controls.KeyBackspace})
	if s.Selection.Showing() {
		t.Fatalf("backspace should close the popup")
	}

	s.Tick(t0, true)
	d.Emit(events.Event{Kind: events.KeyDown, Key: controls.KeyEscape})
	if p.releases != 1 || s.Input.Captured() {
		t.Fatalf("escape: releases %d captured %v", p.releases, s.Input.Captured())
	}
}

func TestKeys_f3TogglesDebugOverlays(t *testing.T) {
	s, _, d := newSession(t, content.Default())
	d.Emit(events.Event{Kind: events.KeyDown, Key: controls.KeyF3})
	if !s.Toggles.ShowFPS || !s.Toggles.ShowMem || !s.Toggles.ShowPosition {
		t.Fatalf("F3 should enable all overlays: %+v", s.Toggles)
	}
	d.Emit(events.Event{Kind: events.KeyDown, Key: controls.KeyF3})
	if s.Toggles.ShowFPS || s.Toggles.ShowMem || s.Toggles.ShowPosition {
		t.Fatalf("F3 again should disable all overlays: %+v", s.Toggles)
	}
}

func TestTick_movesAlongLookDirection(t *testing.T) {
	s, _, d := newSession(t, content.Default())
	start := s.Camera.Position
	d.Emit(events.Event{Kind: events.KeyDown, Key: controls.KeyW})
	s.Tick(t0, false)
	moved := s.Camera.Position.Sub(start)
	if math.Abs(float64(moved.Z()+0.3)) > 1e-5 || math.Abs(float64(moved.X())) > 1e-5 || moved.Y() != 0 {
		t.Fatalf("W moved by %v, want (0,0,-0.3)", moved)
	}

	d.Emit(events.Event{Kind: events.KeyDown, Key: controls.KeyD})
	before := s.Camera.Position
	s.Tick(t0, false)
	if step := s.Camera.Position.Sub(before).Len(); math.Abs(float64(step-0.3)) > 1e-5 {
		t.Fatalf("diagonal step = %v, want 0.3", step)
	}
}

func TestTick_uncapturedMouseDoesNotLook(t *testing.T) {
	s, _, d := newSession(t, content.Default())
	s.Tick(t0, false)
	d.Emit(events.Event{Kind: events.MouseMove, DX: 100, DY: 100})
	s.Tick(t0, false)
	if s.Camera.Yaw != 0 || s.Camera.Pitch != 0 {
		t.Fatalf("look changed while uncaptured: %v %v", s.Camera.Yaw, s.Camera.Pitch)
	}
}

func TestTick_advancesOnboarding(t *testing.T) {
	s, _, _ := newSession(t, content.Default())
	s.Tick(t0.Add(time.Second), false)
	if got := s.Intro.PhaseAt(t0.Add(time.Second)); got != onboarding.Loading {
		t.Fatalf("phase at 1s = %v", got)
	}
	s.Tick(t0.Add(3*time.Second), false)
	if !s.Intro.HelpVisible(t0.Add(3 * time.Second)) {
		t.Fatalf("help should be visible at 3s")
	}
	if s.Intro.HelpVisible(t0.Add(8 * time.Second)) {
		t.Fatalf("help should be hidden at 8s")
	}
}

func TestResize_updatesAspect(t *testing.T) {
	s, _, d := newSession(t, content.Default())
	d.Emit(events.Event{Kind: events.Resize, Width: 1000, Height: 500})
	if s.Camera.Aspect != 2 {
		t.Fatalf("aspect = %v", s.Camera.Aspect)
	}
}

func TestBind_listenersRemovedOnClose(t *testing.T) {
	s := New(Options{Seed: 1}, content.Default(), &fakePointer{}, zerolog.Nop(), nil, t0)
	d := events.NewDispatcher()
	var life events.Lifecycle
	s.Bind(d, &life)
	if d.Len() != 5 {
		t.Fatalf("handlers = %d, want 5", d.Len())
	}
	if err := life.Close(); err != nil {
		t.Fatal(err)
	}
	if d.Len() != 0 {
		t.Fatalf("handlers after close = %d", d.Len())
	}
}

func TestCommands(t *testing.T) {
	s, _, _ := newSession(t, content.Default())
	reg := commands.NewRegistry()
	s.RegisterCommands(reg)

	run := func(line string) error {
		args, ok := commands.Parse(line)
		if !ok {
			t.Fatalf("not a command: %q", line)
		}
		return reg.Execute(args)
	}

	if err := run("cmd select 2"); err != nil {
		t.Fatal(err)
	}
	if _, index, ok := s.Selection.Current(); !ok || index != 1 {
		t.Fatalf("select 2 -> index %d %v", index, ok)
	}
	if err := run("cmd select 9"); err == nil {
		t.Fatalf("out of range select should fail")
	}
	if err := run("cmd close"); err != nil || s.Selection.Showing() {
		t.Fatalf("close: %v showing=%v", err, s.Selection.Showing())
	}

	if err := run("cmd floor off"); err != nil || s.Toggles.Floor {
		t.Fatalf("floor off: %v %v", err, s.Toggles.Floor)
	}
	if err := run("cmd fps on"); err != nil || !s.Toggles.ShowFPS {
		t.Fatalf("fps on: %v %v", err, s.Toggles.ShowFPS)
	}

	if err := run("cmd tp -- -5 2 10"); err != nil {
		t.Fatal(err)
	}
	if s.Camera.Position != (mgl32.Vec3{-5, 2, 10}) {
		t.Fatalf("tp -> %v", s.Camera.Position)
	}
	if err := run("cmd tp -r 1 1 1"); err != nil {
		t.Fatal(err)
	}
	if s.Camera.Position != (mgl32.Vec3{-4, 3, 11}) {
		t.Fatalf("tp -r -> %v", s.Camera.Position)
	}
	if err := run("cmd tp 1 2 3"); err != nil || s.Camera.Position != (mgl32.Vec3{1, 2, 3}) {
		t.Fatalf("relative flag leaked into next tp: %v %v", err, s.Camera.Position)
	}
	if err := run("cmd tp -r -5 0 0"); err == nil {
		t.Fatalf("negative coordinate without -- should fail to parse")
	}
	if err := run("cmd tp 4 5 6"); err != nil || s.Camera.Position != (mgl32.Vec3{4, 5, 6}) {
		t.Fatalf("relative flag from failed tp leaked: %v %v", err, s.Camera.Position)
	}
	if err := run("cmd tp 1 2"); err == nil {
		t.Fatalf("tp with two coordinates should fail")
	}
	for _, line := range []string{"cmd items", "cmd help"} {
		if err := run(line); err != nil {
			t.Fatalf("%s: %v", line, err)
		}
	}
}

func TestHooks_notifyInteractions(t *testing.T) {
	s, _, d := newSession(t, content.Default())
	var got []Notice
	s.SetHooks(Hooks{Notify: func(n Notice) { got = append(got, n) }})

	d.Emit(events.Event{Kind: events.Click})
	s.Select(1)
	s.CloseSelection()
	s.CloseSelection()

	want := []Notice{
		{Kind: NoticeCapture},
		{Kind: NoticeSelect, Index: 1, Title: "Task Management App"},
		{Kind: NoticeClose},
	}
	if len(got) != len(want) {
		t.Fatalf("notices = %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("notice %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCommands_saveHandsTogglesToHook(t *testing.T) {
	s, _, _ := newSession(t, content.Default())
	reg := commands.NewRegistry()
	s.RegisterCommands(reg)

	if err := reg.Execute([]string{"save"}); err == nil {
		t.Fatalf("save without a hook should fail")
	}

	var saved []Toggles
	s.SetHooks(Hooks{SaveToggles: func(tg Toggles) error {
		saved = append(saved, tg)
		return nil
	}})
	for _, args := range [][]string{{"fps", "on"}, {"floor", "off"}, {"save"}} {
		if err := reg.Execute(args); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}
	want := Toggles{ShowFPS: true, Floor: false}
	if len(saved) != 1 || saved[0] != want {
		t.Fatalf("saved %+v, want [%+v]", saved, want)
	}

	s.SetHooks(Hooks{SaveToggles: func(Toggles) error { return errors.New("disk full") }})
	if err := reg.Execute([]string{"save"}); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("save error not surfaced: %v", err)
	}
}
