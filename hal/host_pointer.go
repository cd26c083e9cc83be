package hal

import "sort"

// hostPointer turns polled contact state into PointerEvents.
type hostPointer struct {
	ch chan PointerEvent

	prev    [MaxContacts]Contact
	prevN   int
	cursor  Contact
	inside  bool
	hovered bool
}

func newHostPointer() *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, 64)}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) emit(ev *PointerEvent) {
	select {
	case p.ch <- *ev:
	default:
	}
}

// update compares the contacts held this frame with the previous frame.
// cur holds the pressed contacts; cx, cy is the cursor and inside whether
// it is over the display. Contacts are reported in ID order. When the set of
// IDs changes but not its size, an Up carrying the contacts still held is
// followed by a Down carrying all of them.
func (p *hostPointer) update(cur []Contact, cx, cy float64, inside bool, wheel float64) {
	if len(cur) > MaxContacts {
		cur = cur[:MaxContacts]
	}
	var ev PointerEvent
	ev.N = copy(ev.Contacts[:], cur)
	active := ev.Contacts[:ev.N]
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })

	switch {
	case ev.N > p.prevN:
		ev.Kind = PointerDown
		p.emit(&ev)
	case ev.N < p.prevN:
		ev.Kind = PointerUp
		p.emit(&ev)
	case ev.N > 0 && !p.sameIDs(active):
		up := PointerEvent{Kind: PointerUp}
		for _, c := range active {
			if p.held(c.ID) {
				up.Contacts[up.N] = c
				up.N++
			}
		}
		p.emit(&up)
		ev.Kind = PointerDown
		p.emit(&ev)
	case ev.N > 0 && ev.Contacts != p.prev:
		ev.Kind = PointerMove
		p.emit(&ev)
	}
	p.prev, p.prevN = ev.Contacts, ev.N
	if ev.N > 0 {
		p.hovered = false
	}

	cursor := Contact{X: cx, Y: cy}
	switch {
	case ev.N == 0 && inside && (!p.hovered || cursor != p.cursor):
		hover := PointerEvent{Kind: PointerHover, N: 1}
		hover.Contacts[0] = cursor
		p.emit(&hover)
		p.hovered = true
	case !inside && p.inside:
		p.emit(&PointerEvent{Kind: PointerLeave})
		p.hovered = false
	}
	p.cursor, p.inside = cursor, inside

	if wheel != 0 {
		w := PointerEvent{Kind: PointerWheel, WheelY: wheel, N: 1}
		w.Contacts[0] = cursor
		p.emit(&w)
	}
}

// sameIDs reports whether cur, sorted by ID, holds the previous frame's IDs.
func (p *hostPointer) sameIDs(cur []Contact) bool {
	for i, c := range cur {
		if c.ID != p.prev[i].ID {
			return false
		}
	}
	return true
}

func (p *hostPointer) held(id int) bool {
	for _, c := range p.prev[:p.prevN] {
		if c.ID == id {
			return true
		}
	}
	return false
}
