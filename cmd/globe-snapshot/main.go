// Command globe-snapshot renders one frame of the globe to a PNG file and
// optionally writes the Voronoi cells of the points as GeoJSON.
package main

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"globe/app"
	"globe/globe/canvas"
	"globe/globe/mapdata"
	"globe/globe/projection"
	"globe/globe/render"
	"globe/globe/voronoi"
	"globe/hal"
)

func main() {
	var (
		cfgPath  = pflag.String("config", "", "YAML config file for the style and dataset")
		points   = pflag.String("points", "", "points GeoJSON file (default: bundled sample)")
		land     = pflag.String("land", "", "land GeoJSON file (default: bundled sample)")
		borders  = pflag.String("borders", "", "borders GeoJSON file")
		rotate   = pflag.Float64Slice("rotate", nil, "rotation λ,φ in degrees")
		size     = pflag.Int("size", 640, "image width and height in pixels")
		outPath  = pflag.String("out", "globe.png", "output PNG file")
		cellsOut = pflag.String("cells-geojson", "", "also write the Voronoi cells to this GeoJSON file")
		target   = pflag.Float64Slice("target", nil, "reveal a target lon,lat and highlight its cell")
		hull     = pflag.Bool("hull", false, "outline the convex hull of the points")
		logLevel = pflag.String("log-level", "warn", "debug, info, warn or error")
	)
	pflag.Parse()

	log, err := hal.NewLogger(*logLevel, nil)
	if err != nil {
		fatalf("%v", err)
	}
	defer func() { _ = log.Sync() }()

	cfg := app.Default()
	if *cfgPath != "" {
		if cfg, err = app.Load(*cfgPath); err != nil {
			fatalf("%v", err)
		}
	}
	if *points != "" {
		cfg.Data.Points = *points
	}
	if *land != "" {
		cfg.Data.Land = *land
	}
	if *borders != "" {
		cfg.Data.Borders = *borders
	}
	if len(*rotate) > 0 {
		cfg.Globe.Rotation = *rotate
	}
	if *hull {
		cfg.Layers.Hull = true
	}
	if *size <= 0 {
		fatalf("invalid size: %d", *size)
	}
	cfg.Window.Width, cfg.Window.Height = *size, *size
	if err := cfg.Validate(); err != nil {
		fatalf("%v", err)
	}

	ds, err := app.LoadDataset(cfg.Data)
	if err != nil {
		fatalf("%v", err)
	}
	opts, err := cfg.Options()
	if err != nil {
		fatalf("%v", err)
	}

	cells := voronoi.Build(mapdata.Coordinates(ds.Points))
	log.Info("tessellation built", zap.Int("points", len(ds.Points)), zap.Int("cells", len(cells.Cells())))

	proj := projection.Fit(float64(*size), float64(*size), opts.Margin)
	proj.SetRotation(opts.Rotation)
	frame := render.Frame{
		Projection: proj,
		Basemap:    ds.Basemap,
		Cells:      cells,
		Points:     ds.Points,
		Found:      -1,
	}
	switch len(*target) {
	case 0:
	case 2:
		t := mapdata.Point{Longitude: (*target)[0], Latitude: (*target)[1], Label: opts.Render.TargetLabel}
		frame.Target = &t
		frame.Found = cells.Find(t.Longitude, t.Latitude)
	default:
		fatalf("--target wants lon,lat, got %d values", len(*target))
	}

	img := image.NewRGBA(image.Rect(0, 0, *size, *size))
	render.New(opts.Render).Render(canvas.NewRaster(img), frame)
	if err := writePNG(*outPath, img); err != nil {
		fatalf("%v", err)
	}
	log.Info("snapshot written", zap.String("path", *outPath), zap.Int("found", frame.Found))

	if *cellsOut != "" {
		if err := writeCells(*cellsOut, cells); err != nil {
			fatalf("%v", err)
		}
		log.Info("cells written", zap.String("path", *cellsOut))
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func writeCells(path string, t voronoi.Tessellation) error {
	data, err := voronoi.FeatureCollection(t).MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode cells: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
