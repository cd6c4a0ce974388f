package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// ContactEvent is delivered when two bodies start or stop touching.
type ContactEvent struct {
	A, B   BodyID
	Normal rl.Vector3
	Depth  float32
}

// ContactHandler receives enter or exit notifications.
type ContactHandler func(ContactEvent)

// ContactSignal fans a contact event out to its handlers in connection
// order. Handlers run on the stepping goroutine with no lock held.
type ContactSignal struct {
	handlers []ContactHandler
}

// Connect adds h. A nil handler is dropped.
func (s *ContactSignal) Connect(h ContactHandler) {
	if h != nil {
		s.handlers = append(s.handlers, h)
	}
}

// DisconnectAll removes every handler.
func (s *ContactSignal) DisconnectAll() {
	s.handlers = nil
}

func (s *ContactSignal) emit(ev ContactEvent) {
	for _, h := range s.handlers {
		h(ev)
	}
}

type pairKey struct {
	A, B BodyID
}

func makePair(a, b BodyID) pairKey {
	if a > b {
		return pairKey{A: b, B: a}
	}
	return pairKey{A: a, B: b}
}

// contactSet tracks touching pairs in detection order.
type contactSet struct {
	order  []pairKey
	events map[pairKey]ContactEvent
}

func newContactSet() contactSet {
	return contactSet{events: make(map[pairKey]ContactEvent)}
}

func (s *contactSet) record(ev ContactEvent) {
	key := makePair(ev.A, ev.B)
	if _, seen := s.events[key]; !seen {
		s.order = append(s.order, key)
	}
	s.events[key] = ev
}

func (s *contactSet) has(key pairKey) bool {
	_, ok := s.events[key]
	return ok
}

func (s *contactSet) drop(id BodyID) {
	kept := s.order[:0]
	for _, key := range s.order {
		if key.A == id || key.B == id {
			delete(s.events, key)
			continue
		}
		kept = append(kept, key)
	}
	s.order = kept
}

// diff returns pairs present in next but not in prev (enter) and pairs in
// prev missing from next (exit).
func diff(prev, next contactSet) (enter, exit []ContactEvent) {
	for _, key := range next.order {
		if !prev.has(key) {
			enter = append(enter, next.events[key])
		}
	}
	for _, key := range prev.order {
		if !next.has(key) {
			exit = append(exit, prev.events[key])
		}
	}
	return enter, exit
}
