package projection

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"globe/globe/canvas"
)

func TestProjectCentre(t *testing.T) {
	p := NewOrthographic(100, 200, 150)
	x, y := p.Project(0, 0)
	assert.InDelta(t, 200, x, 1e-9)
	assert.InDelta(t, 150, y, 1e-9)

	x, y = p.Project(90, 0)
	assert.InDelta(t, 300, x, 1e-9)
	assert.InDelta(t, 150, y, 1e-9)

	x, y = p.Project(0, 90)
	assert.InDelta(t, 200, x, 1e-9)
	assert.InDelta(t, 50, y, 1e-9)
}

func TestRotationCentresLongitude(t *testing.T) {
	p := NewOrthographic(100, 0, 0)
	p.SetRotation(Rotation{-10, -20, 0})
	x, y := p.Project(10, 20)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)
	assert.True(t, Visible(p, 10, 20))
	assert.False(t, Visible(p, -170, -20))
}

func TestSetRotationCanonical(t *testing.T) {
	p := NewOrthographic(1, 0, 0)
	p.SetRotation(Rotation{370, -400, 725})
	r := p.Rotation()
	assert.InDelta(t, 10, r[0], 1e-9)
	assert.InDelta(t, -40, r[1], 1e-9)
	assert.InDelta(t, 5, r[2], 1e-9)

	// Canonical rotations render identically.
	q := NewOrthographic(1, 0, 0)
	q.SetRotation(Rotation{10, -40, 5})
	x1, y1 := p.Project(33, 12)
	x2, y2 := q.Project(33, 12)
	assert.InDelta(t, x2, x1, 1e-12)
	assert.InDelta(t, y2, y1, 1e-12)
}

func TestInvertRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	p := NewOrthographic(250, 480, 250)
	for i := 0; i < 300; i++ {
		p.SetRotation(Rotation{rng.Float64()*360 - 180, rng.Float64()*180 - 90, rng.Float64()*360 - 180})
		lon, lat := rng.Float64()*360-180, rng.Float64()*170-85
		if !Visible(p, lon, lat) {
			continue
		}
		x, y := p.Project(lon, lat)
		gotLon, gotLat, ok := p.Invert(x, y)
		require.True(t, ok)
		assert.InDelta(t, lat, gotLat, 1e-6)
		assert.InDelta(t, 0, math.Remainder(lon-gotLon, 360), 1e-6)
	}
}

func TestInvertOffGlobe(t *testing.T) {
	p := NewOrthographic(100, 100, 100)
	_, _, ok := p.Invert(201, 100)
	assert.False(t, ok)
	_, _, ok = p.Invert(math.NaN(), 0)
	assert.False(t, ok)
	_, _, ok = p.Invert(100, 100)
	assert.True(t, ok)
	_, _, ok = NewOrthographic(0, 0, 0).Invert(0, 0)
	assert.False(t, ok)
}

func TestFit(t *testing.T) {
	p := Fit(800, 600, 10)
	assert.Equal(t, 290.0, p.Scale())
	x, y := p.Translate()
	assert.Equal(t, [2]float64{400, 300}, [2]float64{x, y})
}

func TestPathSphere(t *testing.T) {
	rec := canvas.NewRecorder(200, 200)
	path := NewPath(NewOrthographic(90, 100, 100))
	path.SetContext(rec)
	path.Sphere()
	require.Len(t, rec.Ops, 2)
	assert.Equal(t, "moveTo", rec.Ops[0].Name)
	assert.Equal(t, []float64{100, 100, 90, 0, 2 * math.Pi}, rec.Ops[1].Args)
}

func square(lon0, lat0, size float64) *geom.Polygon {
	return geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{
		{lon0, lat0}, {lon0 + size, lat0}, {lon0 + size, lat0 + size}, {lon0, lat0 + size}, {lon0, lat0},
	}})
}

func TestPathPolygonVisible(t *testing.T) {
	rec := canvas.NewRecorder(200, 200)
	path := NewPath(NewOrthographic(90, 100, 100))
	path.SetContext(rec)
	path.Draw(square(-10, -10, 19))

	assert.Equal(t, "moveTo", rec.Ops[0].Name)
	assert.Equal(t, "closePath", rec.Ops[len(rec.Ops)-1].Name)
	assert.Len(t, rec.Named("moveTo"), 1)
	// Four ~19 degree edges resampled every 2 degrees: 40 vertices.
	assert.Len(t, rec.Named("lineTo"), 39)
}

func TestPathPolygonHidden(t *testing.T) {
	rec := canvas.NewRecorder(200, 200)
	path := NewPath(NewOrthographic(90, 100, 100))
	path.SetContext(rec)
	path.Draw(square(170, -10, 15))
	assert.Empty(t, rec.Ops)
}

func TestPathPolygonClippedToDisc(t *testing.T) {
	rec := canvas.NewRecorder(200, 200)
	path := NewPath(NewOrthographic(90, 100, 100))
	path.SetContext(rec)
	path.Draw(square(60, -20, 60))

	require.NotEmpty(t, rec.Ops)
	assert.Equal(t, "closePath", rec.Ops[len(rec.Ops)-1].Name)
	for _, op := range rec.Ops {
		if op.Name != "moveTo" && op.Name != "lineTo" {
			continue
		}
		d := math.Hypot(op.Args[0]-100, op.Args[1]-100)
		assert.LessOrEqual(t, d, 90+1e-6)
	}
}

func TestPathLineSplitsAtHorizon(t *testing.T) {
	rec := canvas.NewRecorder(200, 200)
	path := NewPath(NewOrthographic(90, 100, 100))
	path.SetContext(rec)
	// Along the equator: visible, hidden, visible again.
	line := geom.NewLineString(geom.XY).MustSetCoords([]geom.Coord{{-60, 0}, {0, 0}, {120, 0}, {180, 0}, {240, 0}, {300, 0}})
	path.Draw(line)
	assert.Len(t, rec.Named("moveTo"), 2)
	for _, op := range rec.Ops {
		d := math.Hypot(op.Args[0]-100, op.Args[1]-100)
		assert.LessOrEqual(t, d, 90+1e-6)
	}
}

func TestPathMultiPolygon(t *testing.T) {
	rec := canvas.NewRecorder(200, 200)
	path := NewPath(NewOrthographic(90, 100, 100))
	path.SetContext(rec)
	mp := geom.NewMultiPolygon(geom.XY)
	require.NoError(t, mp.Push(square(0, 0, 4)))
	require.NoError(t, mp.Push(square(20, 20, 4)))
	path.Draw(mp)
	assert.Len(t, rec.Named("moveTo"), 2)
	assert.Len(t, rec.Named("closePath"), 2)
}

func TestPathPoints(t *testing.T) {
	rec := canvas.NewRecorder(200, 200)
	path := NewPath(NewOrthographic(90, 100, 100))
	path.SetContext(rec)
	path.SetPointRadius(3)
	mp := geom.NewMultiPoint(geom.XY).MustSetCoords([]geom.Coord{{0, 0}, {180, 0}, {10, 10}})
	path.Draw(mp)
	arcs := rec.Named("arc")
	require.Len(t, arcs, 2)
	assert.Equal(t, 3.0, arcs[0].Args[2])
}

func TestCentroid(t *testing.T) {
	path := NewPath(NewOrthographic(90, 100, 100))
	x, y, ok := path.Centroid(geom.NewPointFlat(geom.XY, []float64{0, 0}))
	require.True(t, ok)
	assert.InDelta(t, 100, x, 1e-9)
	assert.InDelta(t, 100, y, 1e-9)

	_, _, ok = path.Centroid(geom.NewPointFlat(geom.XY, []float64{180, 0}))
	assert.False(t, ok)

	x, _, ok = path.Centroid(geom.NewMultiPointFlat(geom.XY, []float64{-10, 0, 10, 0, 180, 0}))
	require.True(t, ok)
	assert.InDelta(t, 100, x, 1e-9)

	_, _, ok = path.Centroid(nil)
	assert.False(t, ok)
}
