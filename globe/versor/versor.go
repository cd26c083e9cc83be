// Package versor implements the unit-quaternion helpers used to rotate a
// projected globe.
//
// Conventions follow d3-geo: a rotation is a (lambda, phi, gamma) triple in
// degrees, applied as a longitude shift, then a tilt, then a roll about the
// viewing axis. Quaternions are stored scalar first.
package versor

import (
	"math"

	"github.com/golang/geo/r3"
)

const (
	radians = math.Pi / 180
	degrees = 180 / math.Pi
)

// Quaternion is a rotation quaternion (w, x, y, z).
type Quaternion [4]float64

// Identity is the zero rotation.
var Identity = Quaternion{1, 0, 0, 0}

// FromRotation converts a (lambda, phi, gamma) triple in degrees.
func FromRotation(r [3]float64) Quaternion {
	l := r[0] / 2 * radians
	sl, cl := math.Sin(l), math.Cos(l)
	p := r[1] / 2 * radians
	sp, cp := math.Sin(p), math.Cos(p)
	g := r[2] / 2 * radians
	sg, cg := math.Sin(g), math.Cos(g)
	return Quaternion{
		cl*cp*cg + sl*sp*sg,
		sl*cp*cg - cl*sp*sg,
		cl*sp*cg + sl*cp*sg,
		cl*cp*sg - sl*sp*cg,
	}
}

// Rotation converts q back to a (lambda, phi, gamma) triple in degrees.
func (q Quaternion) Rotation() [3]float64 {
	return [3]float64{
		math.Atan2(2*(q[0]*q[1]+q[2]*q[3]), 1-2*(q[1]*q[1]+q[2]*q[2])) * degrees,
		math.Asin(clamp(2*(q[0]*q[2]-q[3]*q[1]))) * degrees,
		math.Atan2(2*(q[0]*q[3]+q[1]*q[2]), 1-2*(q[2]*q[2]+q[3]*q[3])) * degrees,
	}
}

// Multiply returns the Hamilton product a*b.
func Multiply(a, b Quaternion) Quaternion {
	return Quaternion{
		a[0]*b[0] - a[1]*b[1] - a[2]*b[2] - a[3]*b[3],
		a[0]*b[1] + a[1]*b[0] + a[2]*b[3] - a[3]*b[2],
		a[0]*b[2] - a[1]*b[3] + a[2]*b[0] + a[3]*b[1],
		a[0]*b[3] + a[1]*b[2] - a[2]*b[1] + a[3]*b[0],
	}
}

// Delta returns the minimal rotation taking unit vector v0 onto v1.
//
// Parallel vectors yield Identity.
func Delta(v0, v1 r3.Vector) Quaternion {
	w := v0.Cross(v1)
	l := w.Norm()
	if l == 0 {
		return Identity
	}
	t := math.Acos(clamp(v0.Dot(v1))) / 2
	s := math.Sin(t)
	return Quaternion{math.Cos(t), w.Z / l * s, -w.Y / l * s, w.X / l * s}
}

// Twist returns the rotation about the viewing axis used for two-finger
// gestures, where d is half the change of the inter-pointer angle in radians.
func Twist(d float64) Quaternion {
	s := -math.Sin(d)
	c := 1.0
	if math.Cos(d) < 0 {
		c = -1
	}
	return Quaternion{math.Sqrt(1 - s*s), 0, 0, c * s}
}

// Cartesian converts lon/lat degrees to a unit vector.
func Cartesian(lon, lat float64) r3.Vector {
	l := lon * radians
	p := lat * radians
	cp := math.Cos(p)
	return r3.Vector{X: cp * math.Cos(l), Y: cp * math.Sin(l), Z: math.Sin(p)}
}

// Scalar is the cosine of half the rotation angle.
func (q Quaternion) Scalar() float64 { return q[0] }

// Norm is the Euclidean norm of q.
func (q Quaternion) Norm() float64 {
	return math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
}

// Normalize scales q to unit length. The zero quaternion becomes Identity.
func (q Quaternion) Normalize() Quaternion {
	n := q.Norm()
	if n == 0 {
		return Identity
	}
	return Quaternion{q[0] / n, q[1] / n, q[2] / n, q[3] / n}
}

// Equivalent reports whether q and o encode the same rotation within tol.
// q and -q are equivalent.
func (q Quaternion) Equivalent(o Quaternion, tol float64) bool {
	same, flipped := true, true
	for i := range q {
		if math.Abs(q[i]-o[i]) > tol {
			same = false
		}
		if math.Abs(q[i]+o[i]) > tol {
			flipped = false
		}
	}
	return same || flipped
}

func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
