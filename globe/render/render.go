// Package render draws one frame of the map.
package render

import (
	"image/color"
	"math"

	"globe/globe/canvas"
	"globe/globe/hittest"
	"globe/globe/mapdata"
	"globe/globe/projection"
	"globe/globe/voronoi"
)

// Frame is everything one pass draws. Nil layers are skipped.
type Frame struct {
	Projection projection.Projection
	Basemap    mapdata.Basemap
	Cells      voronoi.Tessellation
	Points     []mapdata.Point

	// Target is the round target, set only while it is revealed.
	Target *mapdata.Point
	// Found is the index of the cell to highlight, or -1.
	Found int
	Guess *mapdata.Point
	Hover *hittest.Hover
}

// Renderer draws frames. It keeps path scratch buffers between passes and
// must be used from one goroutine.
type Renderer struct {
	cfg  Config
	path *projection.Path
}

// New returns a renderer with the given styling.
func New(cfg Config) *Renderer {
	return &Renderer{cfg: cfg}
}

// Config returns the renderer's styling.
func (r *Renderer) Config() Config { return r.cfg }

// SetConfig replaces the styling for subsequent frames.
func (r *Renderer) SetConfig(cfg Config) { r.cfg = cfg }

// Render clears ctx and draws f. Every layer sets the fill and stroke state
// it paints with.
func (r *Renderer) Render(ctx canvas.Context, f Frame) {
	w, h := ctx.Dimensions()
	ctx.ClearRect(0, 0, float64(w), float64(h))
	if f.Projection == nil {
		return
	}
	if r.path == nil || r.path.Projection() != f.Projection {
		r.path = projection.NewPath(f.Projection)
	}
	path := r.path
	path.SetContext(ctx)
	path.SetPointRadius(r.cfg.PointRadius)
	defer path.SetContext(nil)

	ctx.BeginPath()
	path.Sphere()
	ctx.SetFillStyle(r.cfg.Sphere)
	ctx.Fill()

	if f.Basemap.Land != nil {
		ctx.BeginPath()
		path.Draw(f.Basemap.Land)
		ctx.SetFillStyle(r.cfg.Land)
		ctx.Fill()
	}
	if f.Basemap.Borders != nil {
		ctx.BeginPath()
		path.Draw(f.Basemap.Borders)
		ctx.SetStrokeStyle(r.cfg.Border)
		ctx.SetLineWidth(r.cfg.BorderWidth)
		ctx.Stroke()
	}

	if f.Cells != nil {
		if r.cfg.Cells {
			r.cells(ctx, f.Cells.Cells(), f.Found)
		}
		if hull, ok := f.Cells.Hull(); ok && r.cfg.Hull {
			ctx.BeginPath()
			path.Draw(hull)
			ctx.SetStrokeStyle(r.cfg.HullColor)
			ctx.SetLineWidth(r.cfg.HullWidth)
			ctx.Stroke()
		}
	}

	if r.cfg.Points && len(f.Points) > 0 {
		ctx.BeginPath()
		for _, p := range f.Points {
			path.Point(p.Longitude, p.Latitude)
		}
		ctx.SetFillStyle(r.cfg.Point)
		ctx.Fill()
	}
	if r.cfg.Targets && f.Target != nil {
		r.marker(ctx, *f.Target, r.cfg.Target)
	}
	if r.cfg.Guesses && f.Guess != nil {
		r.marker(ctx, *f.Guess, r.cfg.Guess)
	}
	if r.cfg.Tooltip && f.Hover != nil {
		r.tooltip(ctx, *f.Hover)
	}
}

func (r *Renderer) cells(ctx canvas.Context, cells []voronoi.Cell, found int) {
	for _, c := range cells {
		poly := c.Polygon()
		if poly == nil {
			continue
		}
		ctx.BeginPath()
		r.path.Draw(poly)
		if c.Index == found {
			ctx.SetStrokeStyle(r.cfg.Found)
			ctx.SetLineWidth(r.cfg.FoundWidth)
			ctx.Stroke()
			ctx.SetFillStyle(r.cfg.FoundFill)
			ctx.Fill()
			continue
		}
		col := r.paletteColor(c.Index)
		ctx.SetStrokeStyle(canvas.WithAlpha(col, 1))
		ctx.SetLineWidth(r.cfg.CellWidth)
		ctx.Stroke()
		ctx.SetFillStyle(canvas.WithAlpha(col, r.cfg.CellFillAlpha))
		ctx.Fill()
	}
}

func (r *Renderer) paletteColor(i int) color.NRGBA {
	if len(r.cfg.Palette) == 0 {
		return r.cfg.Point
	}
	return r.cfg.Palette[i%len(r.cfg.Palette)]
}

func (r *Renderer) marker(ctx canvas.Context, p mapdata.Point, c color.NRGBA) {
	ctx.BeginPath()
	r.path.Point(p.Longitude, p.Latitude)
	ctx.SetFillStyle(c)
	ctx.Fill()
}

func (r *Renderer) tooltip(ctx canvas.Context, h hittest.Hover) {
	fill := r.cfg.Point
	label := h.Point.Label
	if h.Target {
		fill = r.cfg.Target
		if label == "" {
			label = r.cfg.TargetLabel
		}
	}
	ctx.BeginPath()
	ctx.MoveTo(h.X+r.cfg.HoverRadius, h.Y)
	ctx.Arc(h.X, h.Y, r.cfg.HoverRadius, 0, 2*math.Pi)
	ctx.SetFillStyle(fill)
	ctx.Fill()

	if label == "" {
		return
	}
	ctx.SetFont(r.cfg.TooltipFont)
	ctx.SetTextAlign(canvas.AlignCenter)
	ctx.SetFillStyle(r.cfg.TooltipColor)
	ctx.FillText(label, h.X, h.Y-r.cfg.TooltipOffset)
}
