package selection

import "portfolio3d/internal/content"

// Selection is the popup state: either nothing is shown or exactly one item is.
type Selection struct {
	item    content.Item
	index   int
	showing bool
}

// Select shows item, replacing whatever was shown.
func (s *Selection) Select(index int, item content.Item) {
	s.item = item
	s.index = index
	s.showing = true
}

// Close returns to the no-selection state.
func (s *Selection) Close() {
	*s = Selection{}
}

// Current returns the shown item and its index. ok is false when nothing is selected.
func (s *Selection) Current() (item content.Item, index int, ok bool) {
	if !s.showing {
		return content.Item{}, -1, false
	}
	return s.item, s.index, true
}

// Showing reports whether an item is shown.
func (s *Selection) Showing() bool {
	return s.showing
}
