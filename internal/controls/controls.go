// Package controls holds the input state read by the render loop: held keys, accumulated look
// angles and whether the pointer is captured for free-look.
package controls

import "math"

// Key is a platform-independent key identifier.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
	KeyBackspace
	KeyGrave
	KeyF3
)

// DefaultSensitivity converts mouse movement in pixels to radians.
const DefaultSensitivity = 0.002

// MaxPitch bounds the vertical look angle so the camera never flips over.
const MaxPitch = math.Pi / 2

// Pointer captures and releases the mouse for free-look.
type Pointer interface {
	Capture()
	Release()
}

// ClickAction is what a click should do given the current capture state.
type ClickAction int

const (
	// ActionCapture requests pointer capture; the click does not interact with the scene.
	ActionCapture ClickAction = iota
	// ActionPick casts a ray from the screen center into the scene.
	ActionPick
)

// State is the input state. It is mutated by the handlers below and read once per frame.
type State struct {
	keys        map[Key]bool
	yaw, pitch  float32
	captured    bool
	sensitivity float32
	pointer     Pointer
}

// New returns an input state that captures and releases through p. sensitivity <= 0 uses DefaultSensitivity.
func New(p Pointer, sensitivity float32) *State {
	if sensitivity <= 0 {
		sensitivity = DefaultSensitivity
	}
	return &State{keys: make(map[Key]bool), sensitivity: sensitivity, pointer: p}
}

// KeyDown marks k as held. Escape also releases pointer capture when captured.
func (s *State) KeyDown(k Key) {
	s.keys[k] = true
	if k == KeyEscape && s.captured {
		s.release()
	}
}

// KeyUp marks k as released.
func (s *State) KeyUp(k Key) {
	s.keys[k] = false
}

// Held reports whether k is currently down.
func (s *State) Held(k Key) bool {
	return s.keys[k]
}

// ReleaseAll clears every held key, e.g. when focus moves to the console.
func (s *State) ReleaseAll() {
	for k := range s.keys {
		s.keys[k] = false
	}
}

// MouseMove accumulates a movement delta into the look angles while captured. Uncaptured motion
// is ignored. Pitch stays within [-MaxPitch, MaxPitch].
func (s *State) MouseMove(dx, dy float32) {
	if !s.captured {
		return
	}
	s.yaw += dx * s.sensitivity
	s.pitch += dy * s.sensitivity
	s.pitch = clamp(s.pitch, -MaxPitch, MaxPitch)
}

// Click returns what the click should do and, when uncaptured, requests capture.
func (s *State) Click() ClickAction {
	if s.captured {
		return ActionPick
	}
	if s.pointer != nil {
		s.pointer.Capture()
	}
	return ActionCapture
}

// Sync records the platform's current capture state. Called at the start of every frame since
// capture can be lost outside the application's control (focus change, window manager).
func (s *State) Sync(captured bool) {
	s.captured = captured
}

// Captured reports whether the pointer is captured as of the last Sync or release.
func (s *State) Captured() bool {
	return s.captured
}

// Look returns the accumulated yaw and pitch in radians.
func (s *State) Look() (yaw, pitch float32) {
	return s.yaw, s.pitch
}

// Movement reports which movement directions are held. Arrow keys mirror WASD.
func (s *State) Movement() (forward, back, left, right bool) {
	return s.keys[KeyW] || s.keys[KeyUp],
		s.keys[KeyS] || s.keys[KeyDown],
		s.keys[KeyA] || s.keys[KeyLeft],
		s.keys[KeyD] || s.keys[KeyRight]
}

func (s *State) release() {
	if s.pointer != nil {
		s.pointer.Release()
	}
	s.captured = false
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
