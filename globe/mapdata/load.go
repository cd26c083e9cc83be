package mapdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/twpayne/go-geom"
	geomjson "github.com/twpayne/go-geom/encoding/geojson"
)

// ErrNoGeometry is returned for a basemap layer without any geometry.
var ErrNoGeometry = errors.New("mapdata: no geometry")

// LoadPoints reads a FeatureCollection of Point features. The label comes
// from the "label" property, falling back to "name".
func LoadPoints(r io.Reader) ([]Point, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("mapdata: read points: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("mapdata: decode points: %w", err)
	}
	points := make([]Point, 0, len(fc.Features))
	for i, f := range fc.Features {
		if f.Geometry == nil || !f.Geometry.IsPoint() || len(f.Geometry.Point) < 2 {
			return nil, fmt.Errorf("mapdata: feature %d: not a point", i)
		}
		lon, lat := f.Geometry.Point[0], f.Geometry.Point[1]
		if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
			return nil, fmt.Errorf("mapdata: feature %d: coordinate %v out of range", i, f.Geometry.Point)
		}
		label := f.PropertyMustString("label", "")
		if label == "" {
			label = f.PropertyMustString("name", "")
		}
		points = append(points, Point{
			Longitude: lon,
			Latitude:  lat,
			Label:     label,
			URL:       f.PropertyMustString("url", ""),
		})
	}
	return points, nil
}

// LoadPointsFile is LoadPoints on a file.
func LoadPointsFile(path string) ([]Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mapdata: %w", err)
	}
	defer f.Close()
	points, err := LoadPoints(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return points, nil
}

// LoadGeometry reads a GeoJSON geometry, Feature or FeatureCollection. A
// collection comes back as a geom.GeometryCollection of its features.
func LoadGeometry(r io.Reader) (geom.T, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("mapdata: read geometry: %w", err)
	}
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("mapdata: decode geometry: %w", err)
	}

	switch head.Type {
	case "FeatureCollection":
		var fc struct {
			Features []json.RawMessage `json:"features"`
		}
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("mapdata: decode feature collection: %w", err)
		}
		gc := geom.NewGeometryCollection()
		for i, raw := range fc.Features {
			var f geomjson.Feature
			if err := f.UnmarshalJSON(raw); err != nil {
				return nil, fmt.Errorf("mapdata: feature %d: %w", i, err)
			}
			if f.Geometry == nil {
				continue
			}
			if err := gc.Push(f.Geometry); err != nil {
				return nil, fmt.Errorf("mapdata: feature %d: %w", i, err)
			}
		}
		if gc.NumGeoms() == 0 {
			return nil, ErrNoGeometry
		}
		return gc, nil
	case "Feature":
		var f geomjson.Feature
		if err := f.UnmarshalJSON(data); err != nil {
			return nil, fmt.Errorf("mapdata: decode feature: %w", err)
		}
		if f.Geometry == nil {
			return nil, ErrNoGeometry
		}
		return f.Geometry, nil
	default:
		var g geom.T
		if err := geomjson.Unmarshal(data, &g); err != nil {
			return nil, fmt.Errorf("mapdata: decode geometry: %w", err)
		}
		if g == nil {
			return nil, ErrNoGeometry
		}
		return g, nil
	}
}

// LoadGeometryFile is LoadGeometry on a file.
func LoadGeometryFile(path string) (geom.T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mapdata: %w", err)
	}
	defer f.Close()
	g, err := LoadGeometry(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Basemap is the static background: filled land and stroked borders.
// Either layer may be nil.
type Basemap struct {
	Land    geom.T
	Borders geom.T
}

// LoadBasemap reads both layers; an empty path leaves that layer nil.
func LoadBasemap(landPath, bordersPath string) (Basemap, error) {
	var b Basemap
	var err error
	if landPath != "" {
		if b.Land, err = LoadGeometryFile(landPath); err != nil {
			return Basemap{}, err
		}
	}
	if bordersPath != "" {
		if b.Borders, err = LoadGeometryFile(bordersPath); err != nil {
			return Basemap{}, err
		}
	}
	return b, nil
}
