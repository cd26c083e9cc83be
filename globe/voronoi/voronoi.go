// Package voronoi partitions the sphere into the regions closest to each of a
// set of generator points.
package voronoi

import (
	"github.com/twpayne/go-geom"
)

// Tessellation is the lookup contract the renderer and the view consume.
type Tessellation interface {
	// Find returns the index of the generator nearest to lon/lat, or -1
	// when there are no generators.
	Find(lon, lat float64) int
	// Cells returns the cell polygons in generator order. The slice is
	// shared and must not be modified.
	Cells() []Cell
	// Hull returns the convex hull outline of the generators, if any.
	Hull() (*geom.Polygon, bool)
	// Len is the number of generators.
	Len() int
}

// Cell is the region of one generator.
type Cell struct {
	Index int
	Site  [2]float64
	// Ring holds the boundary as lon/lat degrees, counter-clockwise seen
	// from outside the sphere, without repeating the first vertex.
	Ring [][2]float64

	polygon *geom.Polygon
	area    float64
}

// Polygon returns the cell boundary as a closed go-geom polygon.
func (c Cell) Polygon() *geom.Polygon { return c.polygon }

// Area is the cell's solid angle in steradians.
func (c Cell) Area() float64 { return c.area }

// Empty is a tessellation with no generators.
var Empty Tessellation = empty{}

type empty struct{}

func (empty) Find(lon, lat float64) int   { return -1 }
func (empty) Cells() []Cell               { return nil }
func (empty) Hull() (*geom.Polygon, bool) { return nil, false }
func (empty) Len() int                    { return 0 }

func closedPolygon(ring [][2]float64) *geom.Polygon {
	coords := make([]geom.Coord, 0, len(ring)+1)
	for _, v := range ring {
		coords = append(coords, geom.Coord{v[0], v[1]})
	}
	coords = append(coords, geom.Coord{ring[0][0], ring[0][1]})
	return geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{coords})
}
