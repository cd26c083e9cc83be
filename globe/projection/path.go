package projection

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/twpayne/go-geom"

	"globe/globe/canvas"
)

const (
	// DefaultPointRadius is the marker radius for Point geometries.
	DefaultPointRadius = 4.5
	// DefaultResample is the longest great-circle step drawn as a straight
	// screen segment, in degrees.
	DefaultResample = 2.0
)

// Path streams geometries through a Projection into a canvas.Context.
//
// Lines and rings are resampled along great circles and clipped to the
// visible hemisphere; where a ring leaves and re-enters the face the gap is
// closed along the horizon. A ring that is entirely on the hidden side draws
// nothing. Path keeps scratch buffers and is not safe for concurrent use.
type Path struct {
	proj   Projection
	ctx    canvas.Context
	radius float64
	step   float64

	verts []r3.Vector
	dense []r3.Vector
}

// NewPath returns a path drawing through p.
func NewPath(p Projection) *Path {
	return &Path{
		proj:   p,
		radius: DefaultPointRadius,
		step:   DefaultResample * radians,
	}
}

// Projection returns the projection the path draws through.
func (p *Path) Projection() Projection { return p.proj }

// SetContext sets the drawing target.
func (p *Path) SetContext(ctx canvas.Context) { p.ctx = ctx }

// SetPointRadius sets the marker radius used for points.
func (p *Path) SetPointRadius(r float64) { p.radius = r }

// PointRadius returns the marker radius used for points.
func (p *Path) PointRadius() float64 { return p.radius }

// SetResample sets the resampling step in degrees.
func (p *Path) SetResample(deg float64) {
	if deg > 0 {
		p.step = deg * radians
	}
}

// Sphere draws the outline of the globe.
func (p *Path) Sphere() {
	if p.ctx == nil {
		return
	}
	x, y := p.proj.Translate()
	r := p.proj.Scale()
	p.ctx.MoveTo(x+r, y)
	p.ctx.Arc(x, y, r, 0, 2*math.Pi)
}

// Draw appends g to the current canvas path. It does not begin, fill or
// stroke the path.
func (p *Path) Draw(g geom.T) {
	if p.ctx == nil || g == nil {
		return
	}
	switch g := g.(type) {
	case *geom.Point:
		if c := g.FlatCoords(); len(c) >= 2 {
			p.point(c[0], c[1])
		}
	case *geom.MultiPoint:
		p.points(g.FlatCoords(), g.Stride())
	case *geom.LineString:
		p.line(g.FlatCoords(), g.Stride(), false)
	case *geom.LinearRing:
		p.line(g.FlatCoords(), g.Stride(), true)
	case *geom.MultiLineString:
		p.lines(g.FlatCoords(), 0, g.Ends(), g.Stride(), false)
	case *geom.Polygon:
		p.lines(g.FlatCoords(), 0, g.Ends(), g.Stride(), true)
	case *geom.MultiPolygon:
		start := 0
		for _, ends := range g.Endss() {
			p.lines(g.FlatCoords(), start, ends, g.Stride(), true)
			if len(ends) > 0 {
				start = ends[len(ends)-1]
			}
		}
	case *geom.GeometryCollection:
		for _, c := range g.Geoms() {
			p.Draw(c)
		}
	}
}

// Point draws a single marker at lon/lat when it is visible.
func (p *Path) Point(lon, lat float64) {
	if p.ctx == nil {
		return
	}
	p.point(lon, lat)
}

// Ring draws a closed ring given as flat lon/lat pairs.
func (p *Path) Ring(flat []float64) {
	if p.ctx == nil {
		return
	}
	p.line(flat, 2, true)
}

// PointCentroid returns the screen position of lon/lat, or ok=false when it
// is on the hidden side.
func (p *Path) PointCentroid(lon, lat float64) (x, y float64, ok bool) {
	v := p.proj.View(lon, lat)
	if !(v.X > 0) {
		return math.NaN(), math.NaN(), false
	}
	x, y = p.proj.ProjectView(v)
	return x, y, true
}

// Centroid returns the screen centroid of g: the projected position for a
// point, the mean of the visible projected vertices otherwise.
func (p *Path) Centroid(g geom.T) (x, y float64, ok bool) {
	var sx, sy float64
	n := p.accumulate(g, &sx, &sy)
	if n == 0 {
		return math.NaN(), math.NaN(), false
	}
	return sx / float64(n), sy / float64(n), true
}

func (p *Path) accumulate(g geom.T, sx, sy *float64) int {
	if g == nil {
		return 0
	}
	if gc, ok := g.(*geom.GeometryCollection); ok {
		n := 0
		for _, c := range gc.Geoms() {
			n += p.accumulate(c, sx, sy)
		}
		return n
	}
	flat, stride := g.FlatCoords(), g.Stride()
	n := 0
	for i := 0; i+1 < len(flat); i += stride {
		x, y, vis := p.PointCentroid(flat[i], flat[i+1])
		if !vis {
			continue
		}
		*sx += x
		*sy += y
		n++
	}
	return n
}

func (p *Path) point(lon, lat float64) {
	x, y, ok := p.PointCentroid(lon, lat)
	if !ok {
		return
	}
	p.ctx.MoveTo(x+p.radius, y)
	p.ctx.Arc(x, y, p.radius, 0, 2*math.Pi)
}

func (p *Path) points(flat []float64, stride int) {
	for i := 0; i+1 < len(flat); i += stride {
		p.point(flat[i], flat[i+1])
	}
}

func (p *Path) lines(flat []float64, start int, ends []int, stride int, closed bool) {
	for _, end := range ends {
		p.line(flat[start:end], stride, closed)
		start = end
	}
}

func (p *Path) line(flat []float64, stride int, closed bool) {
	p.verts = p.verts[:0]
	for i := 0; i+1 < len(flat); i += stride {
		p.verts = append(p.verts, p.proj.View(flat[i], flat[i+1]))
	}
	if closed && len(p.verts) > 1 && p.verts[0] == p.verts[len(p.verts)-1] {
		p.verts = p.verts[:len(p.verts)-1]
	}
	if len(p.verts) == 0 {
		return
	}
	p.resample(closed)
	if closed {
		p.emitRing()
	} else {
		p.emitLine()
	}
}

// resample fills p.dense with p.verts plus great-circle interpolants so no
// step exceeds p.step. Closed rings get the closing edge but do not repeat
// the first vertex.
func (p *Path) resample(closed bool) {
	p.dense = p.dense[:0]
	n := len(p.verts)
	edges := n - 1
	if closed {
		edges = n
	}
	for i := 0; i < edges; i++ {
		a, b := p.verts[i], p.verts[(i+1)%n]
		p.dense = append(p.dense, a)
		theta := math.Acos(math.Max(-1, math.Min(1, a.Dot(b))))
		s := math.Sin(theta)
		if theta <= p.step || s < 1e-12 {
			continue
		}
		k := int(math.Ceil(theta / p.step))
		for j := 1; j < k; j++ {
			t := float64(j) / float64(k)
			p.dense = append(p.dense, a.Mul(math.Sin((1-t)*theta)/s).Add(b.Mul(math.Sin(t*theta)/s)))
		}
	}
	if !closed {
		p.dense = append(p.dense, p.verts[n-1])
	}
}

func (p *Path) emitRing() {
	n := len(p.dense)
	first := -1
	for i, v := range p.dense {
		if v.X > 0 {
			first = i
			break
		}
	}
	if first < 0 {
		return
	}

	p.moveTo(p.dense[first])
	var exit r3.Vector
	for k := 0; k < n; k++ {
		a := p.dense[(first+k)%n]
		b := p.dense[(first+k+1)%n]
		ain, bin := a.X > 0, b.X > 0
		switch {
		case ain && bin:
			if k < n-1 {
				p.lineTo(b)
			}
		case ain && !bin:
			exit = horizonCrossing(a, b)
			p.lineTo(exit)
		case !ain && bin:
			entry := horizonCrossing(a, b)
			p.horizonArc(exit, entry)
			p.lineTo(entry)
			if k < n-1 {
				p.lineTo(b)
			}
		}
	}
	p.ctx.ClosePath()
}

func (p *Path) emitLine() {
	a := p.dense[0]
	if a.X > 0 {
		p.moveTo(a)
	}
	for _, b := range p.dense[1:] {
		ain, bin := a.X > 0, b.X > 0
		switch {
		case ain && bin:
			p.lineTo(b)
		case ain && !bin:
			p.lineTo(horizonCrossing(a, b))
		case !ain && bin:
			p.moveTo(horizonCrossing(a, b))
			p.lineTo(b)
		}
		a = b
	}
}

// horizonArc walks the horizon the short way from one crossing to the next.
func (p *Path) horizonArc(from, to r3.Vector) {
	t0 := math.Atan2(from.Z, from.Y)
	t1 := math.Atan2(to.Z, to.Y)
	d := math.Remainder(t1-t0, 2*math.Pi)
	k := int(math.Ceil(math.Abs(d) / p.step))
	for j := 1; j < k; j++ {
		t := t0 + d*float64(j)/float64(k)
		p.lineTo(r3.Vector{Y: math.Cos(t), Z: math.Sin(t)})
	}
}

// horizonCrossing returns where the arc a-b meets the plane X = 0. a and b
// lie on opposite sides.
func horizonCrossing(a, b r3.Vector) r3.Vector {
	t := a.X / (a.X - b.X)
	c := a.Add(b.Sub(a).Mul(t))
	c.X = 0
	return c.Normalize()
}

func (p *Path) moveTo(v r3.Vector) {
	x, y := p.proj.ProjectView(v)
	p.ctx.MoveTo(x, y)
}

func (p *Path) lineTo(v r3.Vector) {
	x, y := p.proj.ProjectView(v)
	p.ctx.LineTo(x, y)
}
