package voronoi

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
)

// The spherical Delaunay triangulation of points on the unit sphere is the
// 3-D convex hull of those points. The outward unit normal of each hull face
// is the centre of its empty circumcircle, so it is a Voronoi vertex of the
// three sites on that face.

type face struct {
	v    [3]int
	n    r3.Vector
	dead bool
}

// delaunay returns, per site, the Voronoi vertices of the faces around it.
// ok is false when the sites are coplanar and there is no 3-D hull.
func delaunay(sites []s2.Point) ([][]r3.Vector, bool) {
	seed, ok := tetrahedron(sites)
	if !ok {
		return nil, false
	}
	var interior r3.Vector
	for _, i := range seed {
		interior = interior.Add(sites[i].Vector)
	}
	interior = interior.Mul(0.25)

	h := &hull{pts: sites, interior: interior}
	h.add(seed[0], seed[1], seed[2])
	h.add(seed[0], seed[1], seed[3])
	h.add(seed[0], seed[2], seed[3])
	h.add(seed[1], seed[2], seed[3])

	for i := range sites {
		if i == seed[0] || i == seed[1] || i == seed[2] || i == seed[3] {
			continue
		}
		h.insert(i)
	}

	out := make([][]r3.Vector, len(sites))
	for _, f := range h.faces {
		if f.dead {
			continue
		}
		for _, v := range f.v {
			out[v] = append(out[v], f.n)
		}
	}
	return out, true
}

type hull struct {
	pts      []s2.Point
	interior r3.Vector
	faces    []face
	horizon  map[[2]int]bool
}

// add appends the face a, b, c wound so that its normal points away from
// the hull interior.
func (h *hull) add(a, b, c int) {
	pa, pb, pc := h.pts[a].Vector, h.pts[b].Vector, h.pts[c].Vector
	n := pb.Sub(pa).Cross(pc.Sub(pa)).Normalize()
	if n.Dot(pa.Sub(h.interior)) < 0 {
		b, c = c, b
		n = n.Mul(-1)
	}
	h.faces = append(h.faces, face{v: [3]int{a, b, c}, n: n})
}

// insert grows the hull to include site i. Sites already on or inside the
// hull are ignored.
func (h *hull) insert(i int) {
	p := h.pts[i].Vector
	if h.horizon == nil {
		h.horizon = make(map[[2]int]bool)
	}
	clear(h.horizon)

	visible := 0
	for k := range h.faces {
		f := &h.faces[k]
		if f.dead || f.n.Dot(p.Sub(h.pts[f.v[0]].Vector)) <= eps {
			continue
		}
		f.dead = true
		visible++
		for e := 0; e < 3; e++ {
			h.horizon[[2]int{f.v[e], f.v[(e+1)%3]}] = true
		}
	}
	if visible == 0 {
		return
	}
	for e := range h.horizon {
		if h.horizon[[2]int{e[1], e[0]}] {
			continue
		}
		h.add(e[0], e[1], i)
	}
}

func tetrahedron(sites []s2.Point) ([4]int, bool) {
	var seed [4]int
	distinct := func(i, j int) bool {
		return sites[i].Sub(sites[j].Vector).Norm() > eps
	}
	n := 1
	for i := 1; i < len(sites) && n < 3; i++ {
		ok := true
		for k := 0; k < n; k++ {
			ok = ok && distinct(i, seed[k])
		}
		if ok {
			seed[n] = i
			n++
		}
	}
	if n < 3 {
		return seed, false
	}
	a, b, c := sites[seed[0]].Vector, sites[seed[1]].Vector, sites[seed[2]].Vector
	normal := b.Sub(a).Cross(c.Sub(a)).Normalize()
	for i := range sites {
		if math.Abs(normal.Dot(sites[i].Sub(a))) > eps {
			seed[3] = i
			return seed, true
		}
	}
	return seed, false
}

// cocircular handles sites that all lie on one circle. The two poles of
// that circle are the only Voronoi vertices and every cell is a lune
// bounded by the bisectors with its neighbours along the circle.
func cocircular(sites []s2.Point) [][]r3.Vector {
	out := make([][]r3.Vector, len(sites))
	seed, _ := tetrahedron(sites)
	if seed[1] == 0 || seed[2] == 0 {
		return out
	}
	a, b, c := sites[seed[0]].Vector, sites[seed[1]].Vector, sites[seed[2]].Vector
	axis := b.Sub(a).Cross(c.Sub(a)).Normalize()
	u := a.Sub(axis.Mul(a.Dot(axis))).Normalize()
	w := axis.Cross(u)

	type onCircle struct {
		site  int
		angle float64
	}
	var ring []onCircle
	for i, p := range sites {
		t := math.Atan2(p.Dot(w), p.Dot(u))
		dup := false
		for _, o := range ring {
			if sites[o.site].Sub(p.Vector).Norm() <= eps {
				dup = true
				break
			}
		}
		if !dup {
			ring = append(ring, onCircle{site: i, angle: t})
		}
	}
	sort.Slice(ring, func(i, j int) bool { return ring[i].angle < ring[j].angle })

	at := func(t float64) r3.Vector {
		return u.Mul(math.Cos(t)).Add(w.Mul(math.Sin(t)))
	}
	for k, o := range ring {
		prev := ring[(k+len(ring)-1)%len(ring)]
		next := ring[(k+1)%len(ring)]
		gapPrev := math.Mod(o.angle-prev.angle+2*math.Pi, 2*math.Pi)
		gapNext := math.Mod(next.angle-o.angle+2*math.Pi, 2*math.Pi)
		out[o.site] = []r3.Vector{
			axis,
			at(o.angle + gapNext/2),
			axis.Mul(-1),
			at(o.angle - gapPrev/2),
		}
	}
	return out
}
