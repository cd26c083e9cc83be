// Package app wires the host devices, the configuration and the dataset
// into the interactive globe.
package app

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"go.uber.org/zap"

	"globe/globe/canvas"
	"globe/globe/mapdata"
	"globe/globe/view"
	"globe/globe/voronoi"
	"globe/hal"
	"globe/internal/buildinfo"
)

//go:embed assets/*.geojson
var assets embed.FS

// ErrNoDisplay is returned when the HAL has no framebuffer to draw into.
var ErrNoDisplay = errors.New("app: no display")

// Dataset is what the globe shows and plays.
type Dataset struct {
	Points  []mapdata.Point
	Basemap mapdata.Basemap
	Rounds  []mapdata.Round
}

// LoadDataset reads the files named by dc. Missing points or land fall
// back to the bundled sample; with the sample land the sample borders are
// used unless a borders file is named. Rounds default to one per point.
func LoadDataset(dc DataConfig) (Dataset, error) {
	var ds Dataset
	var err error

	if dc.Points != "" {
		ds.Points, err = mapdata.LoadPointsFile(dc.Points)
	} else {
		ds.Points, err = loadAsset("assets/points.geojson", mapdata.LoadPoints)
	}
	if err != nil {
		return Dataset{}, err
	}

	if dc.Land != "" {
		ds.Basemap, err = mapdata.LoadBasemap(dc.Land, dc.Borders)
	} else {
		ds.Basemap.Land, err = loadAsset("assets/land.geojson", mapdata.LoadGeometry)
		if err == nil {
			if dc.Borders != "" {
				ds.Basemap.Borders, err = mapdata.LoadGeometryFile(dc.Borders)
			} else {
				ds.Basemap.Borders, err = loadAsset("assets/borders.geojson", mapdata.LoadGeometry)
			}
		}
	}
	if err != nil {
		return Dataset{}, err
	}

	ds.Rounds = dc.Rounds
	if len(ds.Rounds) == 0 {
		ds.Rounds = mapdata.RoundsFromPoints(ds.Points)
	}
	return ds, nil
}

func loadAsset[T any](name string, load func(io.Reader) (T, error)) (T, error) {
	var zero T
	data, err := fs.ReadFile(assets, name)
	if err != nil {
		return zero, fmt.Errorf("app: %w", err)
	}
	v, err := load(bytes.NewReader(data))
	if err != nil {
		return zero, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

// App is one running globe bound to a HAL.
type App struct {
	cfg  Config
	log  *zap.Logger
	view *view.View

	fb     hal.Framebuffer
	raster *canvas.Raster

	pointer <-chan hal.PointerEvent
	keys    <-chan hal.KeyEvent
	ticks   <-chan uint64

	frames uint64
	failed bool
}

// New loads the dataset named by cfg and builds the view over the HAL's
// framebuffer.
func New(h hal.HAL, cfg Config) (*App, error) {
	ds, err := LoadDataset(cfg.Data)
	if err != nil {
		return nil, err
	}
	return NewWithDataset(h, cfg, ds)
}

// NewWithDataset is New with an already loaded dataset.
func NewWithDataset(h hal.HAL, cfg Config, ds Dataset) (*App, error) {
	log := h.Logger()
	if log == nil {
		log = zap.NewNop()
	}
	disp := h.Display()
	if disp == nil || disp.Framebuffer() == nil {
		return nil, ErrNoDisplay
	}
	fb := disp.Framebuffer()
	if fb.Format() != hal.PixelFormatRGBA8888 {
		return nil, fmt.Errorf("app: unsupported pixel format %d", fb.Format())
	}

	// The canvas follows the framebuffer; the config sizes only the window.
	cfg.Window.Width, cfg.Window.Height = fb.Width(), fb.Height()
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:    cfg,
		log:    log,
		fb:     fb,
		raster: canvas.NewRasterFromBuffer(fb.Buffer(), fb.StrideBytes(), fb.Width(), fb.Height()),
	}
	a.view = view.New(opts, ds.Points, ds.Basemap, ds.Rounds, voronoi.NewLookup(log), log)

	if in := h.Input(); in != nil {
		if p := in.Pointer(); p != nil {
			a.pointer = p.Events()
		}
		if k := in.Keyboard(); k != nil {
			a.keys = k.Events()
		}
	}
	if t := h.Time(); t != nil {
		a.ticks = t.Ticks()
	}

	log.Info("globe ready",
		zap.String("build", buildinfo.Short()),
		zap.Int("points", len(ds.Points)),
		zap.Int("rounds", len(ds.Rounds)),
		zap.Int("width", fb.Width()),
		zap.Int("height", fb.Height()))
	return a, nil
}

// Runner adapts New to the host runners.
func Runner(cfg Config) func(hal.HAL) (func() error, error) {
	return func(h hal.HAL) (func() error, error) {
		a, err := New(h, cfg)
		if err != nil {
			return nil, err
		}
		return a.Step, nil
	}
}

// Step drains pending input, advances the idle spin and presents a frame
// when the picture changed. A panic inside the view is reported on screen
// and returned as ErrPanic; later steps do nothing.
func (a *App) Step() (err error) {
	if a.failed {
		return nil
	}
	defer a.recoverPanic(&err)

	a.drainInput()
	if n := a.drainTicks(); n > 0 && a.cfg.Globe.AutoRotate != 0 {
		elapsed := time.Duration(n) * hal.TickDuration
		a.view.Spin(a.cfg.Globe.AutoRotate * elapsed.Seconds())
	}
	if !a.view.Step(a.raster) {
		return nil
	}
	a.frames++
	if err := a.fb.Present(); err != nil {
		return fmt.Errorf("app: present: %w", err)
	}
	return nil
}

func (a *App) drainInput() {
	for {
		select {
		case ev := <-a.pointer:
			a.view.HandlePointer(&ev)
		case ev := <-a.keys:
			a.view.HandleKey(ev)
		default:
			return
		}
	}
}

func (a *App) drainTicks() uint64 {
	var n uint64
	for {
		select {
		case <-a.ticks:
			n++
		default:
			return n
		}
	}
}

// View returns the interactive view.
func (a *App) View() *view.View { return a.view }

// Frames returns the number of frames presented.
func (a *App) Frames() uint64 { return a.frames }
