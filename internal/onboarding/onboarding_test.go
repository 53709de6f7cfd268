package onboarding

import (
	"testing"
	"time"
)

func TestSequence_timeline(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := New(t0, 0, 0)
	cases := []struct {
		at      time.Duration
		loading bool
		help    bool
	}{
		{0, true, false},
		{1999 * time.Millisecond, true, false},
		{2000 * time.Millisecond, false, true},
		{6999 * time.Millisecond, false, true},
		{7000 * time.Millisecond, false, false},
		{time.Hour, false, false},
	}
	for _, tc := range cases {
		now := t0.Add(tc.at)
		if got := s.LoadingVisible(now); got != tc.loading {
			t.Fatalf("t=%v loading=%v, want %v", tc.at, got, tc.loading)
		}
		if got := s.HelpVisible(now); got != tc.help {
			t.Fatalf("t=%v help=%v, want %v", tc.at, got, tc.help)
		}
	}
}

func TestSequence_advanceReportsTransitionsOnce(t *testing.T) {
	t0 := time.Unix(0, 0)
	s := New(t0, time.Second, time.Second)
	steps := []struct {
		at      time.Duration
		phase   Phase
		changed bool
	}{
		{0, Loading, false},
		{500 * time.Millisecond, Loading, false},
		{time.Second, Help, true},
		{1500 * time.Millisecond, Help, false},
		{3 * time.Second, Hidden, true},
		{4 * time.Second, Hidden, false},
	}
	for _, st := range steps {
		p, changed := s.Advance(t0.Add(st.at))
		if p != st.phase || changed != st.changed {
			t.Fatalf("t=%v: got (%v, %v), want (%v, %v)", st.at, p, changed, st.phase, st.changed)
		}
	}
}

func TestSequence_neverGoesBack(t *testing.T) {
	t0 := time.Unix(100, 0)
	s := New(t0, time.Second, time.Second)
	s.Advance(t0.Add(5 * time.Second))
	if p, changed := s.Advance(t0); p != Hidden || changed {
		t.Fatalf("clock going backwards reopened the overlay: %v %v", p, changed)
	}
}

func TestPhaseString(t *testing.T) {
	if Loading.String() != "loading" || Help.String() != "help" || Hidden.String() != "hidden" {
		t.Fatalf("unexpected phase names")
	}
}
