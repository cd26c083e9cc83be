// Package hittest finds the point under the cursor.
package hittest

import (
	"math"

	"globe/globe/mapdata"
)

// DefaultRadius is the hover radius in canvas pixels.
const DefaultRadius = 4.0

// Locator projects a coordinate to its screen centroid; ok is false when the
// coordinate is not drawn.
type Locator interface {
	PointCentroid(lon, lat float64) (x, y float64, ok bool)
}

// Cursor is a canvas position; the zero value is "no cursor".
type Cursor struct {
	X, Y float64
	Set  bool
}

// At returns a set cursor.
func At(x, y float64) Cursor { return Cursor{X: x, Y: y, Set: true} }

// Hover is a point found under the cursor and where it was drawn.
type Hover struct {
	Point  mapdata.Point
	X, Y   float64
	Target bool
}

// FindHover returns the candidate closest to the cursor whose distance is
// strictly less than radius.
//
// Points are visited in order, then target when non-nil. A candidate
// replaces the current best only when strictly closer, so ties go to the
// earliest point and the target wins only by being closer. The caller
// passes a nil target when the round target is not revealed.
func FindHover(points []mapdata.Point, target *mapdata.Point, loc Locator, cursor Cursor, radius float64) (Hover, bool) {
	if !cursor.Set || loc == nil {
		return Hover{}, false
	}
	var best Hover
	var found bool
	bestD := radius
	consider := func(p mapdata.Point, isTarget bool) {
		x, y, ok := loc.PointCentroid(p.Longitude, p.Latitude)
		if !ok {
			return
		}
		d := math.Hypot(x-cursor.X, y-cursor.Y)
		if d < bestD {
			best = Hover{Point: p, X: x, Y: y, Target: isTarget}
			bestD = d
			found = true
		}
	}
	for _, p := range points {
		consider(p, false)
	}
	if target != nil {
		consider(*target, true)
	}
	return best, found
}
