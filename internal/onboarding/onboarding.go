// Package onboarding sequences the one-shot intro overlay: a loading screen, then a help panel
// that hides itself.
package onboarding

import "time"

const (
	DefaultLoadingDelay = 2 * time.Second
	DefaultHelpDuration = 5 * time.Second
)

// Phase is the overlay state.
type Phase int

const (
	Loading Phase = iota
	Help
	Hidden
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Help:
		return "help"
	case Hidden:
		return "hidden"
	}
	return "unknown"
}

// Sequence derives the phase from the time elapsed since Start. It holds no timers, so the
// render loop can poll it every frame and tests can drive it with fixed instants.
type Sequence struct {
	start        time.Time
	loadingDelay time.Duration
	helpDuration time.Duration
	last         Phase
}

// New returns a sequence starting at start. Non-positive durations use the defaults.
func New(start time.Time, loadingDelay, helpDuration time.Duration) *Sequence {
	if loadingDelay <= 0 {
		loadingDelay = DefaultLoadingDelay
	}
	if helpDuration <= 0 {
		helpDuration = DefaultHelpDuration
	}
	return &Sequence{start: start, loadingDelay: loadingDelay, helpDuration: helpDuration}
}

// PhaseAt returns the phase at now. Instants before start count as Loading.
func (s *Sequence) PhaseAt(now time.Time) Phase {
	elapsed := now.Sub(s.start)
	switch {
	case elapsed < s.loadingDelay:
		return Loading
	case elapsed < s.loadingDelay+s.helpDuration:
		return Help
	}
	return Hidden
}

// Advance moves the sequence to now and reports the phase and whether it changed since the
// previous call. Phases only move forward.
func (s *Sequence) Advance(now time.Time) (Phase, bool) {
	p := s.PhaseAt(now)
	if p < s.last {
		return s.last, false
	}
	changed := p != s.last
	s.last = p
	return p, changed
}

// LoadingVisible reports whether the loading screen shows at now.
func (s *Sequence) LoadingVisible(now time.Time) bool {
	return s.PhaseAt(now) == Loading
}

// HelpVisible reports whether the help panel shows at now.
func (s *Sequence) HelpVisible(now time.Time) bool {
	return s.PhaseAt(now) == Help
}
