// Package events carries platform input to registered handlers and tracks every acquisition so
// teardown can release them in reverse order.
//
// Dispatcher and Lifecycle are used from the render thread only and are not safe for concurrent use.
package events

import "portfolio3d/internal/controls"

// Kind identifies an input event type.
type Kind int

const (
	KeyDown Kind = iota
	KeyUp
	MouseMove
	Click
	Resize
)

func (k Kind) String() string {
	switch k {
	case KeyDown:
		return "keydown"
	case KeyUp:
		return "keyup"
	case MouseMove:
		return "mousemove"
	case Click:
		return "click"
	case Resize:
		return "resize"
	}
	return "unknown"
}

// Event is one input event. Only the fields relevant to Kind are set.
type Event struct {
	Kind          Kind
	Key           controls.Key
	DX, DY        float32 // mouse movement in pixels
	X, Y          float32 // cursor position for clicks
	Width, Height int     // new framebuffer size for resizes
}

// Handler receives events of the kind it was registered for.
type Handler func(Event)

type entry struct {
	id int
	fn Handler
}

// Dispatcher fans events out to handlers in registration order.
type Dispatcher struct {
	next     int
	handlers map[Kind][]entry
}

// NewDispatcher returns a dispatcher with no handlers.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[Kind][]entry)}
}

// On registers fn for kind and returns a function that removes it. Calling the returned
// function more than once is a no-op.
func (d *Dispatcher) On(kind Kind, fn Handler) func() {
	d.next++
	id := d.next
	d.handlers[kind] = append(d.handlers[kind], entry{id: id, fn: fn})
	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		list := d.handlers[kind]
		for i, e := range list {
			if e.id == id {
				d.handlers[kind] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
		if len(d.handlers[kind]) == 0 {
			delete(d.handlers, kind)
		}
	}
}

// Emit delivers ev to every handler registered for ev.Kind.
func (d *Dispatcher) Emit(ev Event) {
	for _, e := range d.handlers[ev.Kind] {
		e.fn(ev)
	}
}

// Len returns the number of registered handlers across all kinds.
func (d *Dispatcher) Len() int {
	n := 0
	for _, list := range d.handlers {
		n += len(list)
	}
	return n
}
