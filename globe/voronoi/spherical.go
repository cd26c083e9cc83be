package voronoi

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/twpayne/go-geom"
)

// eps separates distinct or off-plane points from coincident ones on the
// unit sphere.
const eps = 1e-12

// Spherical is a Voronoi diagram on the unit sphere with geodesic distance.
type Spherical struct {
	sites  []s2.Point
	coords [][2]float64
	index  *s2.ShapeIndex
	cells  []Cell
	hull   *geom.Polygon
}

var _ Tessellation = (*Spherical)(nil)

// Build computes the diagram of sites given as lon/lat degree pairs.
//
// Fewer than three sites yield no cells and no hull; Find still answers for
// any non-empty set. A site coinciding with an earlier one gets no cell.
func Build(sites [][2]float64) *Spherical {
	s := &Spherical{
		sites:  make([]s2.Point, len(sites)),
		coords: append([][2]float64(nil), sites...),
		index:  s2.NewShapeIndex(),
	}
	pv := make(s2.PointVector, len(sites))
	for i, c := range sites {
		s.sites[i] = s2.PointFromLatLng(s2.LatLngFromDegrees(c[1], c[0]))
		pv[i] = s.sites[i]
	}
	s.index.Add(&pv)

	if len(sites) < 3 {
		return s
	}
	s.hull = hullPolygon(s.sites)

	vertices, ok := delaunay(s.sites)
	if !ok {
		vertices = cocircular(s.sites)
	}
	s.cells = make([]Cell, 0, len(sites))
	for i, vs := range vertices {
		if len(vs) < 2 {
			continue
		}
		s.cells = append(s.cells, s.cell(i, vs))
	}
	return s
}

func (s *Spherical) Len() int { return len(s.sites) }

func (s *Spherical) Cells() []Cell { return s.cells }

func (s *Spherical) Hull() (*geom.Polygon, bool) {
	return s.hull, s.hull != nil
}

// Find returns the nearest generator using the s2 closest-edge query over
// the generator set.
func (s *Spherical) Find(lon, lat float64) int {
	if len(s.sites) == 0 {
		return -1
	}
	p := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon))
	q := s2.NewClosestEdgeQuery(s.index, s2.NewClosestEdgeQueryOptions().MaxResults(1))
	res := q.FindEdges(s2.NewMinDistanceToPointTarget(p))
	if len(res) == 0 {
		return -1
	}
	return int(res[0].EdgeID())
}

// Site returns generator i as lon/lat degrees.
func (s *Spherical) Site(i int) [2]float64 { return s.coords[i] }

func (s *Spherical) cell(i int, vs []r3.Vector) Cell {
	site := s.sites[i].Vector
	sortAround(site, vs)
	vs = dedupe(vs)

	pts := make([]s2.Point, len(vs))
	ring := make([][2]float64, len(vs))
	for j, v := range vs {
		pts[j] = s2.Point{Vector: v}
		ll := s2.LatLngFromPoint(pts[j])
		ring[j] = [2]float64{ll.Lng.Degrees(), ll.Lat.Degrees()}
	}
	c := Cell{Index: i, Site: s.coords[i], Ring: ring}
	if len(ring) >= 3 {
		c.polygon = closedPolygon(ring)
		c.area = s2.LoopFromPoints(pts).Area()
	}
	return c
}

// sortAround orders vs counter-clockwise by azimuth around site, seen from
// outside the sphere.
func sortAround(site r3.Vector, vs []r3.Vector) {
	u := site.Ortho()
	w := site.Cross(u)
	az := make([]float64, len(vs))
	for i, v := range vs {
		az[i] = math.Atan2(v.Dot(w), v.Dot(u))
	}
	sort.Sort(byAzimuth{vs, az})
}

type byAzimuth struct {
	vs []r3.Vector
	az []float64
}

func (b byAzimuth) Len() int           { return len(b.vs) }
func (b byAzimuth) Less(i, j int) bool { return b.az[i] < b.az[j] }
func (b byAzimuth) Swap(i, j int) {
	b.vs[i], b.vs[j] = b.vs[j], b.vs[i]
	b.az[i], b.az[j] = b.az[j], b.az[i]
}

func dedupe(vs []r3.Vector) []r3.Vector {
	out := vs[:0]
	for _, v := range vs {
		if len(out) > 0 && v.Sub(out[len(out)-1]).Norm() < eps {
			continue
		}
		out = append(out, v)
	}
	for len(out) > 1 && out[0].Sub(out[len(out)-1]).Norm() < eps {
		out = out[:len(out)-1]
	}
	return out
}

func hullPolygon(sites []s2.Point) *geom.Polygon {
	q := s2.NewConvexHullQuery()
	for _, p := range sites {
		q.AddPoint(p)
	}
	loop := q.ConvexHull()
	if loop.IsEmpty() || loop.IsFull() || loop.NumVertices() < 3 {
		return nil
	}
	ring := make([][2]float64, loop.NumVertices())
	for i := range ring {
		ll := s2.LatLngFromPoint(loop.Vertex(i))
		ring[i] = [2]float64{ll.Lng.Degrees(), ll.Lat.Degrees()}
	}
	return closedPolygon(ring)
}
