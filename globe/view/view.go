// Package view is the interactive globe: it consumes pointer and key events,
// drives the rotation engine and the game session, and renders when the
// picture changed.
package view

import (
	"math"

	"go.uber.org/zap"

	"globe/globe/canvas"
	"globe/globe/drag"
	"globe/globe/game"
	"globe/globe/hittest"
	"globe/globe/mapdata"
	"globe/globe/projection"
	"globe/globe/render"
	"globe/globe/voronoi"
	"globe/hal"
)

// Options configures a View.
type Options struct {
	Width, Height int
	Margin        float64
	Rotation      projection.Rotation
	HoverRadius   float64
	// ClickSlop is how far a press may travel, in canvas pixels, and still
	// count as a click that places the guess.
	ClickSlop float64
	// MinZoom and MaxZoom bound wheel zoom relative to the fitted scale.
	MinZoom, MaxZoom float64
	Render           render.Config
}

// DefaultOptions returns options for a width x height canvas.
func DefaultOptions(width, height int) Options {
	return Options{
		Width:       width,
		Height:      height,
		Margin:      10,
		HoverRadius: hittest.DefaultRadius,
		ClickSlop:   3,
		MinZoom:     0.5,
		MaxZoom:     8,
		Render:      render.DefaultConfig(),
	}
}

type press struct {
	x, y   float64
	active bool
	moved  bool
	multi  bool
}

// View owns the projection, gesture, hover and round state of one map.
type View struct {
	opts Options
	log  *zap.Logger

	proj      *projection.Orthographic
	baseScale float64
	engine    *drag.Engine
	path      *projection.Path
	renderer  *render.Renderer

	lookup  *voronoi.Lookup
	points  []mapdata.Point
	basemap mapdata.Basemap
	session *game.Session

	cursor   hittest.Cursor
	hover    hittest.Hover
	hovering bool
	found    int
	guess    *mapdata.Point
	result   *game.Result
	press    press

	clientW, clientH float64
	ptrs             [hal.MaxContacts]drag.Pointer
	dirty            bool
}

// New returns a view over points and basemap playing rounds. The
// tessellation of points is built into lookup.
func New(opts Options, points []mapdata.Point, basemap mapdata.Basemap, rounds []mapdata.Round, lookup *voronoi.Lookup, log *zap.Logger) *View {
	if log == nil {
		log = zap.NewNop()
	}
	if lookup == nil {
		lookup = voronoi.NewLookup(log)
	}
	if opts.HoverRadius <= 0 {
		opts.HoverRadius = hittest.DefaultRadius
	}
	// The globe never rolls; drags only change λ and φ.
	opts.Rotation[2] = 0
	proj := projection.Fit(float64(opts.Width), float64(opts.Height), opts.Margin)
	proj.SetRotation(opts.Rotation)

	v := &View{
		opts:      opts,
		log:       log,
		proj:      proj,
		baseScale: proj.Scale(),
		engine:    drag.NewEngine(proj, log),
		path:      projection.NewPath(proj),
		renderer:  render.New(opts.Render),
		lookup:    lookup,
		session:   game.NewSession(rounds, log),
		found:     -1,
		clientW:   float64(opts.Width),
		clientH:   float64(opts.Height),
		dirty:     true,
	}
	v.SetDataset(points, basemap)
	return v
}

// SetDataset replaces the points and basemap and rebuilds the tessellation.
func (v *View) SetDataset(points []mapdata.Point, basemap mapdata.Basemap) {
	v.points = points
	v.basemap = basemap
	v.lookup.Rebuild(mapdata.Coordinates(points))
	v.refreshFound()
	v.refreshHover()
	v.dirty = true
}

// SetClientSize sets the size the pointer coordinates are measured in when
// it differs from the canvas size.
func (v *View) SetClientSize(w, h float64) {
	if w > 0 && h > 0 {
		v.clientW, v.clientH = w, h
	}
}

// canvasPos maps client coordinates to canvas pixels.
func (v *View) canvasPos(x, y float64) (float64, float64) {
	return x * float64(v.opts.Width) / v.clientW, y * float64(v.opts.Height) / v.clientH
}

func (v *View) pointers(ev *hal.PointerEvent) []drag.Pointer {
	n := 0
	for _, c := range ev.Active() {
		x, y := v.canvasPos(c.X, c.Y)
		v.ptrs[n] = drag.Pointer{X: x, Y: y}
		n++
	}
	return v.ptrs[:n]
}

// HandlePointer applies one pointer event.
func (v *View) HandlePointer(ev *hal.PointerEvent) {
	ptrs := v.pointers(ev)
	switch ev.Kind {
	case hal.PointerDown:
		if v.engine.Dragging() {
			v.engine.Move(ptrs)
		} else {
			v.engine.Start(ptrs)
			v.press = press{active: true}
			if len(ptrs) > 0 {
				v.press.x, v.press.y = ptrs[0].X, ptrs[0].Y
			}
		}
		if len(ptrs) > 1 {
			v.press.multi = true
		}
	case hal.PointerMove:
		if v.press.active && len(ptrs) > 0 &&
			math.Hypot(ptrs[0].X-v.press.x, ptrs[0].Y-v.press.y) > v.opts.ClickSlop {
			v.press.moved = true
		}
		if v.engine.Move(ptrs) {
			v.dirty = true
		}
		if len(ptrs) == 1 && ev.Contacts[0].ID == 0 {
			v.cursor = hittest.At(ptrs[0].X, ptrs[0].Y)
		}
		v.refreshHover()
	case hal.PointerUp:
		if len(ptrs) > 0 {
			v.engine.End(ptrs)
			return
		}
		v.engine.End(nil)
		if v.press.active && !v.press.moved && !v.press.multi {
			v.place(v.press.x, v.press.y)
		}
		v.press = press{}
	case hal.PointerHover:
		if len(ptrs) > 0 {
			v.cursor = hittest.At(ptrs[0].X, ptrs[0].Y)
			v.refreshHover()
		}
	case hal.PointerLeave:
		v.cursor = hittest.Cursor{}
		v.refreshHover()
	case hal.PointerWheel:
		v.zoom(ev.WheelY)
	}
}

// HandleKey applies one key event. Enter submits the guess, Escape resets
// the view, R reveals the target and Space starts the next round.
func (v *View) HandleKey(ev hal.KeyEvent) {
	if !ev.Press {
		return
	}
	switch ev.Code {
	case hal.KeyEnter:
		v.Submit()
	case hal.KeyEscape:
		v.ResetView()
	case hal.KeySpace:
		v.NextRound()
	case hal.KeyR:
		v.Reveal()
	}
}

// Submit scores the current guess. It reports whether a submission was
// accepted.
func (v *View) Submit() bool {
	if v.guess == nil {
		return false
	}
	res, err := v.session.Submit(v.guess.Longitude, v.guess.Latitude)
	if err != nil {
		v.log.Debug("submission rejected", zap.Error(err))
		return false
	}
	v.result = &res
	v.refreshHover()
	v.dirty = true
	return true
}

// Reveal shows the current round target without submitting a guess. It
// reports whether the target was hidden before.
func (v *View) Reveal() bool {
	if v.session.Revealed() {
		return false
	}
	v.session.Reveal()
	if !v.session.Revealed() {
		return false
	}
	v.refreshHover()
	v.dirty = true
	return true
}

// NextRound advances the session and clears the guess. Once the last round
// is passed the session score is logged.
func (v *View) NextRound() bool {
	wasLast := v.session.Len() > 0 && v.session.Number() == v.session.Len()
	ok := v.session.Next()
	if !ok && wasLast {
		v.log.Info("session score",
			zap.Int("submitted", len(v.session.Results())),
			zap.Int("rounds", v.session.Len()),
			zap.Stringer("total", v.session.Total()))
	}
	v.guess = nil
	v.result = nil
	v.refreshFound()
	v.refreshHover()
	v.dirty = true
	return ok
}

// ResetView restores the initial rotation and zoom.
func (v *View) ResetView() {
	v.proj.SetRotation(v.opts.Rotation)
	v.proj.SetScale(v.baseScale)
	v.refreshHover()
	v.dirty = true
}

// Spin turns the globe by deg degrees of longitude unless a drag is in
// progress.
func (v *View) Spin(deg float64) {
	if deg == 0 || v.engine.Dragging() {
		return
	}
	r := v.proj.Rotation()
	r[0] += deg
	v.proj.SetRotation(r)
	v.refreshHover()
	v.dirty = true
}

func (v *View) zoom(wheel float64) {
	if wheel == 0 {
		return
	}
	s := v.proj.Scale() * math.Exp(wheel*0.1)
	s = math.Max(v.baseScale*v.opts.MinZoom, math.Min(v.baseScale*v.opts.MaxZoom, s))
	v.proj.SetScale(s)
	v.refreshHover()
	v.dirty = true
}

// place sets the guess to the coordinate under canvas position x, y.
func (v *View) place(x, y float64) {
	if r, ok := v.session.Current(); !ok || !r.Ongoing {
		return
	}
	lon, lat, ok := v.proj.Invert(x, y)
	if !ok {
		return
	}
	v.guess = &mapdata.Point{Longitude: lon, Latitude: lat}
	v.dirty = true
	v.log.Debug("guess placed", zap.Float64("lon", lon), zap.Float64("lat", lat))
}

func (v *View) refreshFound() {
	v.found = -1
	if r, ok := v.session.Current(); ok {
		v.found = v.lookup.Find(r.Longitude, r.Latitude)
	}
}

func (v *View) refreshHover() {
	var target *mapdata.Point
	if t, ok := v.session.Target(); ok {
		target = &t
	}
	h, ok := hittest.FindHover(v.points, target, v.path, v.cursor, v.opts.HoverRadius)
	if ok != v.hovering || h != v.hover {
		v.dirty = true
	}
	v.hover, v.hovering = h, ok
}

// Step renders into ctx when the picture changed. It reports whether it
// drew.
func (v *View) Step(ctx canvas.Context) bool {
	if !v.dirty {
		return false
	}
	v.dirty = false
	v.renderer.Render(ctx, v.Frame())
	return true
}

// Frame returns the render inputs for the current state.
func (v *View) Frame() render.Frame {
	f := render.Frame{
		Projection: v.proj,
		Basemap:    v.basemap,
		Cells:      v.lookup.Load(),
		Points:     v.points,
		Found:      -1,
		Guess:      v.guess,
	}
	if t, ok := v.session.Target(); ok {
		f.Target = &t
		f.Found = v.found
	}
	if v.hovering {
		h := v.hover
		f.Hover = &h
	}
	return f
}

// Invalidate forces the next Step to render.
func (v *View) Invalidate() { v.dirty = true }

// Hover returns the point under the cursor.
func (v *View) Hover() (hittest.Hover, bool) { return v.hover, v.hovering }

// Found returns the index of the cell containing the current round target,
// or -1.
func (v *View) Found() int { return v.found }

// Projection returns the rotated projection.
func (v *View) Projection() projection.Projection { return v.proj }

// Guess returns the placed guess.
func (v *View) Guess() (mapdata.Point, bool) {
	if v.guess == nil {
		return mapdata.Point{}, false
	}
	return *v.guess, true
}

// Result returns the score of the current round once submitted.
func (v *View) Result() (game.Result, bool) {
	if v.result == nil {
		return game.Result{}, false
	}
	return *v.result, true
}

// Session returns the game session.
func (v *View) Session() *game.Session { return v.session }

// Dragging reports whether a rotation gesture is in progress.
func (v *View) Dragging() bool { return v.engine.Dragging() }
