package selection

import (
	"testing"

	"portfolio3d/internal/content"
)

func TestSelection_selectThenClose(t *testing.T) {
	var s Selection
	if _, _, ok := s.Current(); ok {
		t.Fatalf("zero value must have no selection")
	}
	items := content.Default()
	s.Select(0, items[0])
	got, idx, ok := s.Current()
	if !ok || idx != 0 || got.Title != items[0].Title {
		t.Fatalf("unexpected current %v %d %v", got.Title, idx, ok)
	}
	s.Close()
	if s.Showing() {
		t.Fatalf("close should clear selection")
	}
	if _, idx, _ := s.Current(); idx != -1 {
		t.Fatalf("index after close %d", idx)
	}
}

func TestSelection_replaceWithoutClose(t *testing.T) {
	var s Selection
	items := content.Default()
	s.Select(0, items[0])
	s.Select(1, items[1])
	got, idx, ok := s.Current()
	if !ok || idx != 1 || got.Title != items[1].Title {
		t.Fatalf("expected B to replace A, got %q (%d)", got.Title, idx)
	}
	s.Close()
	if s.Showing() {
		t.Fatalf("single close must clear a replaced selection")
	}
}
