package drag

import (
	"go.uber.org/zap"

	"globe/globe/projection"
)

// State is the engine's gesture state.
type State uint8

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Engine owns the projection rotation while a drag is in progress.
type Engine struct {
	proj  projection.Projection
	log   *zap.Logger
	state State
	g     Gesture
	last  Result
}

// NewEngine returns an idle engine rotating p.
func NewEngine(p projection.Projection, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{proj: p, log: log}
}

// State reports whether a drag is in progress.
func (e *Engine) State() State { return e.state }

// Dragging is State() == Dragging.
func (e *Engine) Dragging() bool { return e.state == Dragging }

// Gesture returns the current gesture; it is meaningful only while dragging.
func (e *Engine) Gesture() Gesture { return e.g }

// Last returns the result of the most recent Move.
func (e *Engine) Last() Result { return e.last }

// Start begins a drag with the given contacts.
func (e *Engine) Start(ptrs []Pointer) {
	e.g = Begin(e.proj, ptrs)
	e.state = Dragging
	e.last = Result{Gesture: e.g}
	if !e.g.Anchored {
		e.log.Debug("drag start off globe", zap.Int("pointers", e.g.Pointers))
	}
}

// Move updates the rotation. It reports whether the projection changed.
func (e *Engine) Move(ptrs []Pointer) bool {
	if e.state != Dragging {
		return false
	}
	e.last = Update(e.proj, e.g, ptrs)
	e.g = e.last.Gesture
	return e.last.Rotated
}

// End handles released contacts. With contacts remaining the gesture is
// re-anchored on them; otherwise the engine returns to Idle.
func (e *Engine) End(remaining []Pointer) {
	if len(remaining) > 0 && e.state == Dragging {
		e.g = Begin(e.proj, remaining)
		return
	}
	e.state = Idle
	e.g = Gesture{}
}
