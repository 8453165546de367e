package domain

// signal is a list of listeners called synchronously in registration order
type signal struct {
	listeners []func()
}

func (s *signal) subscribe(fn func()) {
	if fn != nil {
		s.listeners = append(s.listeners, fn)
	}
}

func (s *signal) emit() {
	for _, fn := range s.listeners {
		fn()
	}
}

// guard keeps a composite from reacting to the writes it makes itself
// while propagating a change to its parts.
type guard struct {
	active bool
}

func (g *guard) run(fn func()) {
	if g.active {
		return
	}
	g.active = true
	defer func() { g.active = false }()
	fn()
}
