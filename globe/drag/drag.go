// Package drag turns pointer gestures into globe rotations.
//
// Rotations are composed as unit quaternions so the globe follows the
// pointer without gimbal artefacts. A Gesture is a plain value: Begin builds
// one, Update returns the next one, and the caller drops it when the last
// pointer is released. Engine wraps that in the Idle/Dragging state machine.
package drag

import (
	"math"

	"github.com/golang/geo/r3"

	"globe/globe/projection"
	"globe/globe/versor"
)

// StabilityThreshold is the minimum scalar part of a drag delta. Below it
// the pointer is close to the antipode of its anchor and the gesture is
// re-anchored.
const StabilityThreshold = 0.7

// MaxPointers bounds the contacts a gesture looks at.
const MaxPointers = 10

// Pointer is a contact position in canvas pixels.
type Pointer struct {
	X, Y float64
}

// Gesture is the state captured when a drag starts or is re-anchored.
type Gesture struct {
	// Anchor is the unit vector under the pointer at start; valid only when
	// Anchored is true.
	Anchor   r3.Vector
	Anchored bool

	Start      versor.Quaternion
	StartAngle float64
	Rotation   projection.Rotation
	Pointers   int
}

// Result describes one Update.
type Result struct {
	Gesture Gesture
	// Quaternion is the composed rotation before roll is dropped.
	Quaternion versor.Quaternion
	// Delta is the pointer-follow rotation, before any twist.
	Delta versor.Quaternion
	// Rotated reports whether the projection rotation was committed.
	Rotated bool
	// Reanchored reports whether the returned gesture was restarted.
	Reanchored bool
}

// Begin captures the projection rotation and the sphere point under the
// centre of ptrs. With two or more pointers it also records the angle
// between the first two.
func Begin(p projection.Projection, ptrs []Pointer) Gesture {
	ptrs = limit(ptrs)
	r0 := p.Rotation()
	g := Gesture{
		Start:    versor.FromRotation(r0),
		Rotation: r0,
		Pointers: len(ptrs),
	}
	if len(ptrs) == 0 {
		return g
	}
	x, y := centre(ptrs)
	if lon, lat, ok := p.Invert(x, y); ok {
		g.Anchor = versor.Cartesian(lon, lat)
		g.Anchored = true
	}
	if len(ptrs) > 1 {
		g.StartAngle = angle(ptrs)
	}
	return g
}

// Update rotates p so the sphere point captured in g follows ptrs.
//
// A change in the number of pointers re-anchors the gesture without
// rotating. A pointer off the globe face leaves the rotation untouched for
// this event. A delta whose scalar part is below StabilityThreshold is
// committed and then the gesture is re-anchored at the new position.
func Update(p projection.Projection, g Gesture, ptrs []Pointer) Result {
	ptrs = limit(ptrs)
	if len(ptrs) == 0 {
		return Result{Gesture: g}
	}
	if len(ptrs) != g.Pointers || !g.Anchored {
		return Result{Gesture: Begin(p, ptrs), Reanchored: true}
	}

	current := p.Rotation()
	p.SetRotation(g.Rotation)
	x, y := centre(ptrs)
	lon, lat, ok := p.Invert(x, y)
	if !ok {
		p.SetRotation(current)
		return Result{Gesture: g}
	}

	v1 := versor.Cartesian(lon, lat)
	q1, delta := Compose(g, v1, ptrs)

	r := projection.Rotation(q1.Rotation())
	r[2] = 0
	p.SetRotation(r)

	res := Result{Gesture: g, Quaternion: q1, Delta: delta, Rotated: true}
	if delta.Scalar() < StabilityThreshold {
		res.Gesture = Begin(p, ptrs)
		res.Reanchored = true
	}
	return res
}

// Compose returns the rotation that carries g's anchor onto v1, with the
// two-finger twist applied when g tracks more than one pointer.
func Compose(g Gesture, v1 r3.Vector, ptrs []Pointer) (q, delta versor.Quaternion) {
	delta = versor.Delta(g.Anchor, v1)
	q = versor.Multiply(g.Start, delta)
	if g.Pointers > 1 && len(ptrs) > 1 {
		d := (angle(ptrs) - g.StartAngle) / 2
		q = versor.Multiply(versor.Twist(d), q)
	}
	return q, delta
}

func centre(ptrs []Pointer) (x, y float64) {
	if len(ptrs) == 1 {
		return ptrs[0].X, ptrs[0].Y
	}
	for _, p := range ptrs {
		x += p.X
		y += p.Y
	}
	n := float64(len(ptrs))
	return x / n, y / n
}

func angle(ptrs []Pointer) float64 {
	return math.Atan2(ptrs[1].Y-ptrs[0].Y, ptrs[1].X-ptrs[0].X)
}

func limit(ptrs []Pointer) []Pointer {
	if len(ptrs) > MaxPointers {
		return ptrs[:MaxPointers]
	}
	return ptrs
}
