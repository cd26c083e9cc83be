package app

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"globe/globe/canvas"
	"globe/globe/mapdata"
	"globe/globe/projection"
	"globe/globe/render"
	"globe/globe/view"
	"globe/hal"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the YAML configuration of the map. Keys missing from the file
// keep their Default value.
type Config struct {
	Window   WindowConfig   `yaml:"window,omitempty"`
	Globe    GlobeConfig    `yaml:"globe,omitempty"`
	Style    StyleConfig    `yaml:"style,omitempty"`
	Layers   LayersConfig   `yaml:"layers,omitempty"`
	Data     DataConfig     `yaml:"data,omitempty"`
	Headless HeadlessConfig `yaml:"headless,omitempty"`
	LogLevel string         `yaml:"log_level,omitempty"`
}

// WindowConfig sizes the canvas and the host window.
type WindowConfig struct {
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
	Scale  int `yaml:"scale,omitempty"`
}

// GlobeConfig sets up the projection and the interaction.
type GlobeConfig struct {
	Margin float64 `yaml:"margin,omitempty"`
	// Rotation is the initial λ, φ, γ in degrees; missing angles are 0.
	Rotation    []float64 `yaml:"rotation,omitempty"`
	HoverRadius float64   `yaml:"hover_radius,omitempty"`
	ClickSlop   float64   `yaml:"click_slop,omitempty"`
	MinZoom     float64   `yaml:"min_zoom,omitempty"`
	MaxZoom     float64   `yaml:"max_zoom,omitempty"`
	// AutoRotate spins the globe by this many degrees of longitude per
	// second while no drag is in progress.
	AutoRotate float64 `yaml:"auto_rotate,omitempty"`
}

// StyleConfig holds the colours, as CSS colour strings, and the marker sizes.
type StyleConfig struct {
	Sphere        string   `yaml:"sphere,omitempty"`
	Land          string   `yaml:"land,omitempty"`
	Border        string   `yaml:"border,omitempty"`
	Palette       []string `yaml:"palette,omitempty"`
	Highlight     string   `yaml:"highlight,omitempty"`
	HighlightFill string   `yaml:"highlight_fill,omitempty"`
	Point         string   `yaml:"point,omitempty"`
	Target        string   `yaml:"target,omitempty"`
	Guess         string   `yaml:"guess,omitempty"`
	PointRadius   float64  `yaml:"point_radius,omitempty"`
	TooltipOffset float64  `yaml:"tooltip_offset,omitempty"`
}

// LayersConfig toggles the overlays.
type LayersConfig struct {
	Cells   bool `yaml:"cells"`
	Hull    bool `yaml:"hull"`
	Points  bool `yaml:"points"`
	Target  bool `yaml:"target"`
	Guess   bool `yaml:"guess"`
	Tooltip bool `yaml:"tooltip"`
}

// DataConfig names the dataset files. An empty Points or Land path uses
// the bundled sample; an empty Borders path draws no borders unless the
// sample is in use.
type DataConfig struct {
	Points  string          `yaml:"points,omitempty"`
	Land    string          `yaml:"land,omitempty"`
	Borders string          `yaml:"borders,omitempty"`
	Rounds  []mapdata.Round `yaml:"rounds,omitempty"`
}

// HeadlessConfig runs the map without a window.
type HeadlessConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Hz      int    `yaml:"hz,omitempty"`
	Ticks   uint64 `yaml:"ticks,omitempty"`
}

// Default returns the stock configuration.
func Default() Config {
	rc := render.DefaultConfig()
	palette := make([]string, len(rc.Palette))
	for i, c := range rc.Palette {
		palette[i] = canvas.FormatColor(c)
	}
	return Config{
		Window: WindowConfig{Width: 640, Height: 640, Scale: 1},
		Globe: GlobeConfig{
			Margin:      10,
			Rotation:    []float64{0, 0, 0},
			HoverRadius: 4,
			ClickSlop:   3,
			MinZoom:     0.5,
			MaxZoom:     8,
		},
		Style: StyleConfig{
			Sphere:        "#849fff",
			Land:          "#ccc",
			Border:        "#fff",
			Palette:       palette,
			Highlight:     "#000dff",
			HighlightFill: "rgba(0,0,255,0.5)",
			Point:         "#f00",
			Target:        "#000dff",
			Guess:         "#0a0",
			PointRadius:   rc.PointRadius,
			TooltipOffset: rc.TooltipOffset,
		},
		Layers: LayersConfig{
			Cells:   true,
			Points:  true,
			Target:  true,
			Guess:   true,
			Tooltip: true,
		},
		Headless: HeadlessConfig{Hz: 60},
		LogLevel: "info",
	}
}

// Load reads a YAML file over Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes YAML data over Default. name labels errors.
func Parse(data []byte, name string) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid YAML for %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}

// Validate checks sizes and ranges. Colours are checked by Options.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Window.Scale < 0:
		return fmt.Errorf("%w: window scale %d", ErrInvalidConfig, c.Window.Scale)
	case len(c.Globe.Rotation) > 3:
		return fmt.Errorf("%w: rotation has %d angles", ErrInvalidConfig, len(c.Globe.Rotation))
	case len(c.Globe.Rotation) == 3 && c.Globe.Rotation[2] != 0:
		return fmt.Errorf("%w: roll %v, the globe only rotates in λ and φ", ErrInvalidConfig, c.Globe.Rotation[2])
	case c.Globe.HoverRadius < 0:
		return fmt.Errorf("%w: hover radius %v", ErrInvalidConfig, c.Globe.HoverRadius)
	case c.Globe.MinZoom <= 0 || c.Globe.MaxZoom < c.Globe.MinZoom:
		return fmt.Errorf("%w: zoom range [%v, %v]", ErrInvalidConfig, c.Globe.MinZoom, c.Globe.MaxZoom)
	case c.Headless.Hz < 0:
		return fmt.Errorf("%w: headless hz %d", ErrInvalidConfig, c.Headless.Hz)
	}
	return nil
}

// Rotation returns the initial rotation triple.
func (c Config) Rotation() projection.Rotation {
	var r projection.Rotation
	copy(r[:], c.Globe.Rotation)
	return r
}

// Options converts c into view options, parsing every colour.
func (c Config) Options() (view.Options, error) {
	opts := view.DefaultOptions(c.Window.Width, c.Window.Height)
	opts.Margin = c.Globe.Margin
	opts.Rotation = c.Rotation()
	opts.HoverRadius = c.Globe.HoverRadius
	opts.ClickSlop = c.Globe.ClickSlop
	opts.MinZoom = c.Globe.MinZoom
	opts.MaxZoom = c.Globe.MaxZoom

	rc := render.DefaultConfig()
	s := c.Style
	for _, f := range []struct {
		name string
		in   string
		out  *color.NRGBA
	}{
		{"sphere", s.Sphere, &rc.Sphere},
		{"land", s.Land, &rc.Land},
		{"border", s.Border, &rc.Border},
		{"highlight", s.Highlight, &rc.Found},
		{"highlight_fill", s.HighlightFill, &rc.FoundFill},
		{"point", s.Point, &rc.Point},
		{"target", s.Target, &rc.Target},
		{"guess", s.Guess, &rc.Guess},
	} {
		if f.in == "" {
			continue
		}
		col, err := canvas.ParseColor(f.in)
		if err != nil {
			return view.Options{}, fmt.Errorf("%w: style.%s: %w", ErrInvalidConfig, f.name, err)
		}
		*f.out = col
	}
	if len(s.Palette) > 0 {
		rc.Palette = rc.Palette[:0]
		for i, p := range s.Palette {
			col, err := canvas.ParseColor(p)
			if err != nil {
				return view.Options{}, fmt.Errorf("%w: style.palette[%d]: %w", ErrInvalidConfig, i, err)
			}
			rc.Palette = append(rc.Palette, col)
		}
	}
	if s.PointRadius > 0 {
		rc.PointRadius = s.PointRadius
	}
	if s.TooltipOffset > 0 {
		rc.TooltipOffset = s.TooltipOffset
	}
	rc.Cells = c.Layers.Cells
	rc.Hull = c.Layers.Hull
	rc.Points = c.Layers.Points
	rc.Targets = c.Layers.Target
	rc.Guesses = c.Layers.Guess
	rc.Tooltip = c.Layers.Tooltip
	opts.Render = rc
	return opts, nil
}

// HAL returns the host configuration.
func (c Config) HAL() hal.Config {
	return hal.Config{Width: c.Window.Width, Height: c.Window.Height, Scale: c.Window.Scale}
}

// HeadlessRun returns the headless runner configuration.
func (c Config) HeadlessRun() hal.HeadlessConfig {
	return hal.HeadlessConfig{Enabled: c.Headless.Enabled, Hz: c.Headless.Hz, Ticks: c.Headless.Ticks}
}

// BindFlags registers a flag for every command-line overridable field of c.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.IntVar(&c.Window.Width, "width", c.Window.Width, "canvas width in pixels")
	fs.IntVar(&c.Window.Height, "height", c.Window.Height, "canvas height in pixels")
	fs.IntVar(&c.Window.Scale, "scale", c.Window.Scale, "window pixels per canvas pixel")
	fs.Float64SliceVar(&c.Globe.Rotation, "rotate", c.Globe.Rotation, "initial rotation λ,φ in degrees")
	fs.Float64Var(&c.Globe.HoverRadius, "hover-radius", c.Globe.HoverRadius, "tooltip hit radius in pixels")
	fs.Float64Var(&c.Globe.AutoRotate, "auto-rotate", c.Globe.AutoRotate, "idle spin in degrees per second")
	fs.StringSliceVar(&c.Style.Palette, "palette", c.Style.Palette, "cell colours")
	fs.StringVar(&c.Style.Highlight, "highlight", c.Style.Highlight, "found cell and target colour")
	fs.BoolVar(&c.Layers.Cells, "cells", c.Layers.Cells, "draw the Voronoi cells")
	fs.BoolVar(&c.Layers.Hull, "hull", c.Layers.Hull, "draw the convex hull of the points")
	fs.BoolVar(&c.Layers.Points, "points-layer", c.Layers.Points, "draw the points")
	fs.BoolVar(&c.Layers.Tooltip, "tooltip", c.Layers.Tooltip, "label the hovered point")
	fs.StringVar(&c.Data.Points, "points", c.Data.Points, "points GeoJSON file")
	fs.StringVar(&c.Data.Land, "land", c.Data.Land, "land GeoJSON file")
	fs.StringVar(&c.Data.Borders, "borders", c.Data.Borders, "borders GeoJSON file")
	fs.BoolVar(&c.Headless.Enabled, "headless", c.Headless.Enabled, "run without a window")
	fs.IntVar(&c.Headless.Hz, "hz", c.Headless.Hz, "tick rate in headless mode")
	fs.Uint64Var(&c.Headless.Ticks, "ticks", c.Headless.Ticks, "stop after N ticks in headless mode (0 = run forever)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
}

// ParseArgs builds the configuration from command-line arguments: the file
// named by --config is loaded first and the flags given explicitly override
// it.
func ParseArgs(name string, args []string) (Config, error) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	path := fs.String("config", "", "YAML config file")
	scratch := Default()
	scratch.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if *path != "" {
		var err error
		if cfg, err = Load(*path); err != nil {
			return Config{}, err
		}
	}

	apply := pflag.NewFlagSet(name, pflag.ContinueOnError)
	cfg.BindFlags(apply)
	var err error
	fs.Visit(func(f *pflag.Flag) {
		dst := apply.Lookup(f.Name)
		if dst == nil || err != nil {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			err = dst.Value.(pflag.SliceValue).Replace(sv.GetSlice())
			return
		}
		err = dst.Value.Set(f.Value.String())
	})
	if err != nil {
		return Config{}, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
