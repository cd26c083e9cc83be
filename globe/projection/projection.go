// Package projection maps the sphere onto the screen.
//
// View space is the unit sphere after rotation: +X points at the viewer, +Y
// to screen right and +Z to screen up. For azimuthal projections clipped at
// 90 degrees the visible hemisphere is X > 0.
package projection

import (
	"math"

	"github.com/golang/geo/r3"
)

const (
	radians = math.Pi / 180
	degrees = 180 / math.Pi
)

// Rotation is a (lambda, phi, gamma) triple in degrees: longitude shift,
// tilt and roll about the viewing axis.
type Rotation [3]float64

// Canonical reduces each axis to (-360, 360) the same way SetRotation does.
func (r Rotation) Canonical() Rotation {
	return Rotation{math.Mod(r[0], 360), math.Mod(r[1], 360), math.Mod(r[2], 360)}
}

// Projection is the capability set the rotation engine, hit-tester and
// renderer rely on.
type Projection interface {
	// Project maps lon/lat degrees to screen pixels. Points on the hidden
	// side are projected too; use View to test visibility.
	Project(lon, lat float64) (x, y float64)
	// Invert maps screen pixels back to lon/lat degrees. ok is false when
	// the pixel is off the globe face.
	Invert(x, y float64) (lon, lat float64, ok bool)

	Rotation() Rotation
	SetRotation(r Rotation)

	// View returns the rotated unit vector for lon/lat degrees.
	View(lon, lat float64) r3.Vector
	// ProjectView maps a view-space vector to screen pixels.
	ProjectView(v r3.Vector) (x, y float64)

	Scale() float64
	Translate() (x, y float64)
}

// Orthographic is the globe projection: the sphere seen from infinitely far
// away along the view axis.
type Orthographic struct {
	scale  float64
	tx, ty float64

	rot     Rotation
	dLambda float64

	cosPhi, sinPhi     float64
	cosGamma, sinGamma float64
}

var _ Projection = (*Orthographic)(nil)

// NewOrthographic returns a projection with the given radius in pixels,
// centred at (tx, ty), with zero rotation.
func NewOrthographic(scale, tx, ty float64) *Orthographic {
	p := &Orthographic{scale: scale, tx: tx, ty: ty}
	p.SetRotation(Rotation{})
	return p
}

// Fit returns an orthographic projection filling a width x height canvas
// with margin pixels of padding.
func Fit(width, height, margin float64) *Orthographic {
	s := math.Min(width, height)/2 - margin
	if s < 1 {
		s = 1
	}
	return NewOrthographic(s, width/2, height/2)
}

func (p *Orthographic) Scale() float64            { return p.scale }
func (p *Orthographic) Translate() (x, y float64) { return p.tx, p.ty }

// SetScale changes the radius in pixels.
func (p *Orthographic) SetScale(s float64) { p.scale = s }

// SetTranslate moves the globe centre.
func (p *Orthographic) SetTranslate(x, y float64) { p.tx, p.ty = x, y }

func (p *Orthographic) Rotation() Rotation { return p.rot }

// SetRotation stores r reduced mod 360 on every axis.
func (p *Orthographic) SetRotation(r Rotation) {
	p.rot = r.Canonical()
	p.dLambda = p.rot[0] * radians
	phi := p.rot[1] * radians
	gamma := p.rot[2] * radians
	p.cosPhi, p.sinPhi = math.Cos(phi), math.Sin(phi)
	p.cosGamma, p.sinGamma = math.Cos(gamma), math.Sin(gamma)
}

func (p *Orthographic) View(lon, lat float64) r3.Vector {
	lambda := lon*radians + p.dLambda
	phi := lat * radians
	cp := math.Cos(phi)
	x := math.Cos(lambda) * cp
	y := math.Sin(lambda) * cp
	z := math.Sin(phi)

	k := z*p.cosPhi + x*p.sinPhi
	return r3.Vector{
		X: x*p.cosPhi - z*p.sinPhi,
		Y: y*p.cosGamma - k*p.sinGamma,
		Z: k*p.cosGamma + y*p.sinGamma,
	}
}

func (p *Orthographic) ProjectView(v r3.Vector) (float64, float64) {
	return p.tx + p.scale*v.Y, p.ty - p.scale*v.Z
}

func (p *Orthographic) Project(lon, lat float64) (float64, float64) {
	return p.ProjectView(p.View(lon, lat))
}

func (p *Orthographic) Invert(x, y float64) (float64, float64, bool) {
	if p.scale == 0 {
		return 0, 0, false
	}
	vy := (x - p.tx) / p.scale
	vz := (p.ty - y) / p.scale
	rr := vy*vy + vz*vz
	if !(rr <= 1) {
		return 0, 0, false
	}
	vx := math.Sqrt(1 - rr)

	k := vz*p.cosGamma - vy*p.sinGamma
	wy := vy*p.cosGamma + vz*p.sinGamma
	wx := vx*p.cosPhi + k*p.sinPhi
	wz := k*p.cosPhi - vx*p.sinPhi

	lon := wrapDegrees((math.Atan2(wy, wx) - p.dLambda) * degrees)
	lat := math.Asin(math.Max(-1, math.Min(1, wz))) * degrees
	return lon, lat, true
}

// Visible reports whether lon/lat is on the face of the globe turned
// towards the viewer.
func Visible(p Projection, lon, lat float64) bool {
	return p.View(lon, lat).X > 0
}

func wrapDegrees(d float64) float64 {
	return math.Remainder(d, 360)
}
