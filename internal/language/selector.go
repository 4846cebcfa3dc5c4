package language

import (
	"context"
	"fmt"
)

// Change describes a switch of the active language.
type Change struct {
	From Code
	To   Code
}

// Listener is called synchronously after the active language changes.
type Listener func(ctx context.Context, change Change)

// Selector holds the active language. It is owned by the presentation layer
// and is not safe for concurrent use.
type Selector struct {
	current   Code
	listeners map[int]Listener
	order     []int
	nextID    int
}

func NewSelector(initial Code) (*Selector, error) {
	if !initial.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, string(initial))
	}
	return &Selector{
		current:   initial,
		listeners: make(map[int]Listener),
	}, nil
}

func (s *Selector) Current() Code {
	return s.current
}

// Set makes code the active language. Setting the already active language
// is a no-op and notifies nobody.
func (s *Selector) Set(ctx context.Context, code Code) error {
	if !code.Valid() {
		return fmt.Errorf("%w: %q", ErrUnsupported, string(code))
	}
	if code == s.current {
		return nil
	}

	change := Change{From: s.current, To: code}
	s.current = code

	for _, id := range append([]int(nil), s.order...) {
		if fn, ok := s.listeners[id]; ok {
			fn(ctx, change)
		}
	}
	return nil
}

// Toggle moves to the next supported language.
func (s *Selector) Toggle(ctx context.Context) Code {
	next := Next(s.current)
	// next is always valid
	_ = s.Set(ctx, next)
	return next
}

// Subscribe registers fn for language changes and returns a function that
// removes it again.
func (s *Selector) Subscribe(fn Listener) func() {
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.order = append(s.order, id)

	return func() {
		delete(s.listeners, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}
