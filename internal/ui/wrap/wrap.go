// Package wrap lays out text for the overlay: greedy word wrapping and flowing rows of tag chips.
// Text width comes from a caller-supplied Measure so layout works without a graphics context.
package wrap

import "strings"

// Measure returns the drawn width of text at the given font size.
type Measure func(text string, size int32) int32

// Lines breaks text into lines no wider than width. Words wider than width get a line of their
// own. Explicit newlines are kept. width <= 0 returns the text split on newlines only.
func Lines(text string, width, size int32, measure Measure) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		if width <= 0 {
			out = append(out, strings.Join(words, " "))
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if measure(candidate, size) <= width {
				line = candidate
				continue
			}
			out = append(out, line)
			line = w
		}
		out = append(out, line)
	}
	return out
}

// Chip is a positioned tag relative to the layout origin.
type Chip struct {
	Text          string
	X, Y          int32
	Width, Height int32
}

// Chips flows labels left to right into rows no wider than width, starting a new row when the
// next chip would overflow. Each chip is its text width plus padX on both sides and height tall;
// gap separates chips and rows. It returns the chips and the total height used.
func Chips(labels []string, width, size, padX, height, gap int32, measure Measure) ([]Chip, int32) {
	if len(labels) == 0 {
		return nil, 0
	}
	chips := make([]Chip, 0, len(labels))
	var x, y int32
	for _, label := range labels {
		w := measure(label, size) + 2*padX
		if x > 0 && width > 0 && x+w > width {
			x = 0
			y += height + gap
		}
		chips = append(chips, Chip{Text: label, X: x, Y: y, Width: w, Height: height})
		x += w + gap
	}
	return chips, y + height
}
