package voronoi

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
)

// FeatureCollection exports the cells of t as Polygon features carrying
// "index" and "site" properties, followed by the hull as a feature with
// "hull" set when there is one.
func FeatureCollection(t Tessellation) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, c := range t.Cells() {
		if len(c.Ring) < 3 {
			continue
		}
		f := geojson.NewPolygonFeature([][][]float64{closedRing(c.Ring)})
		f.SetProperty("index", c.Index)
		f.SetProperty("site", []float64{c.Site[0], c.Site[1]})
		fc.AddFeature(f)
	}
	if h, ok := t.Hull(); ok {
		var ring [][]float64
		for _, c := range h.LinearRing(0).Coords() {
			ring = append(ring, []float64{c.X(), c.Y()})
		}
		f := geojson.NewPolygonFeature([][][]float64{ring})
		f.SetProperty("hull", true)
		fc.AddFeature(f)
	}
	return fc
}

// FromFeatures builds a diagram from the Point features of fc, in order.
func FromFeatures(fc *geojson.FeatureCollection) (*Spherical, error) {
	sites := make([][2]float64, 0, len(fc.Features))
	for i, f := range fc.Features {
		if f.Geometry == nil || !f.Geometry.IsPoint() || len(f.Geometry.Point) < 2 {
			return nil, fmt.Errorf("voronoi: feature %d is not a point", i)
		}
		sites = append(sites, [2]float64{f.Geometry.Point[0], f.Geometry.Point[1]})
	}
	return Build(sites), nil
}

func closedRing(ring [][2]float64) [][]float64 {
	out := make([][]float64, 0, len(ring)+1)
	for _, v := range ring {
		out = append(out, []float64{v[0], v[1]})
	}
	return append(out, []float64{ring[0][0], ring[0][1]})
}
