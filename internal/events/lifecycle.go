package events

import (
	"errors"
	"fmt"
)

type release struct {
	name string
	fn   func() error
}

// Lifecycle records releases as resources are acquired and runs them last-in first-out on Close.
type Lifecycle struct {
	releases []release
	closed   bool
}

// Acquire records fn to run on Close. name is used in error messages.
// Acquiring after Close runs fn immediately so nothing outlives teardown.
func (l *Lifecycle) Acquire(name string, fn func() error) error {
	if fn == nil {
		return nil
	}
	if l.closed {
		return fn()
	}
	l.releases = append(l.releases, release{name: name, fn: fn})
	return nil
}

// Defer is Acquire for releases that cannot fail, such as listener removal.
func (l *Lifecycle) Defer(name string, fn func()) {
	if fn == nil {
		return
	}
	_ = l.Acquire(name, func() error {
		fn()
		return nil
	})
}

// Listen registers fn on d and records its removal.
func (l *Lifecycle) Listen(d *Dispatcher, kind Kind, fn Handler) {
	l.Defer("listener "+kind.String(), d.On(kind, fn))
}

// Close runs every recorded release in reverse order, exactly once. All releases run even if
// some fail; their errors are joined.
func (l *Lifecycle) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	var errs []error
	for i := len(l.releases) - 1; i >= 0; i-- {
		r := l.releases[i]
		if err := r.fn(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.name, err))
		}
	}
	l.releases = nil
	return errors.Join(errs...)
}

// Len returns the number of pending releases.
func (l *Lifecycle) Len() int {
	return len(l.releases)
}
