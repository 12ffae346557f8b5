// SPDX-License-Identifier: MIT

package bench

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrSectionActive indicates Enter while another section is still open.
	ErrSectionActive = errors.New("bench: a timing section is already active")
	// ErrNoActiveSection indicates Leave without a matching Enter.
	ErrNoActiveSection = errors.New("bench: no active timing section")
)

// Section is the accumulated timing of one named section.
type Section struct {
	Name  string
	Calls int
	Wall  time.Duration
}

// Timer records wall time per named section. Sections do not nest.
type Timer struct {
	clock   func() time.Time
	start   time.Time
	order   []*Section
	byName  map[string]*Section
	active  *Section
	entered time.Time
}

// NewTimer starts a timer. A nil clock means time.Now.
func NewTimer(clock func() time.Time) *Timer {
	if clock == nil {
		clock = time.Now
	}

	return &Timer{clock: clock, start: clock(), byName: make(map[string]*Section)}
}

// Enter opens section name, creating it on first use.
func (t *Timer) Enter(name string) error {
	if t.active != nil {
		return fmt.Errorf("Timer.Enter(%q) inside %q: %w", name, t.active.Name, ErrSectionActive)
	}
	s, ok := t.byName[name]
	if !ok {
		s = &Section{Name: name}
		t.byName[name] = s
		t.order = append(t.order, s)
	}
	t.active = s
	t.entered = t.clock()

	return nil
}

// Leave closes the active section and adds the elapsed time to it.
func (t *Timer) Leave() error {
	if t.active == nil {
		return fmt.Errorf("Timer.Leave: %w", ErrNoActiveSection)
	}
	t.active.Calls++
	t.active.Wall += t.clock().Sub(t.entered)
	t.active = nil

	return nil
}

// Sections returns a copy of every section in first-entered order.
func (t *Timer) Sections() []Section {
	out := make([]Section, len(t.order))
	for i, s := range t.order {
		out[i] = *s
	}

	return out
}

// Section returns the named section.
func (t *Timer) Section(name string) (Section, bool) {
	s, ok := t.byName[name]
	if !ok {
		return Section{}, false
	}

	return *s, true
}

// Total returns the wall time since NewTimer.
func (t *Timer) Total() time.Duration { return t.clock().Sub(t.start) }
