package loader

import "sync"

// EventKind distinguishes change notifications.
type EventKind int

const (
	// EventLoaded fires after a successful load replaced the documents.
	EventLoaded EventKind = iota
	// EventReset fires after Reset cleared the loader.
	EventReset
)

func (k EventKind) String() string {
	switch k {
	case EventLoaded:
		return "loaded"
	case EventReset:
		return "reset"
	}
	return "unknown"
}

// Event describes a change of the loaded state.
type Event struct {
	Kind      EventKind
	Name      string
	Digest    string
	Container Container
	Documents int
}

// subscribers is a registry of change callbacks.
type subscribers struct {
	mu    sync.Mutex
	next  int
	funcs map[int]func(Event)
	order []int
}

func (s *subscribers) add(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.funcs == nil {
		s.funcs = make(map[int]func(Event))
	}
	id := s.next
	s.next++
	s.funcs[id] = fn
	s.order = append(s.order, id)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.funcs, id)
	}
}

// notify calls every live subscriber in subscription order, outside the lock.
func (s *subscribers) notify(e Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.funcs))
	live := s.order[:0]
	for _, id := range s.order {
		if fn, ok := s.funcs[id]; ok {
			fns = append(fns, fn)
			live = append(live, id)
		}
	}
	s.order = live
	s.mu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}
