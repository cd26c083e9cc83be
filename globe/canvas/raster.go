package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
)

// Fonts available to SetFont. The empty name selects DefaultFont.
var Fonts = map[string]tinyfont.Fonter{
	"mono":      &freemono.Regular9pt7b,
	"mono-bold": &freemono.Bold9pt7b,
	"mono-12":   &freemono.Regular12pt7b,
}

// DefaultFont is used when SetFont names an unknown font.
const DefaultFont = "mono"

// joinMinWidth is the line width above which strokes get round joins.
const joinMinWidth = 1.5

type fpt struct{ x, y float32 }

type subpath struct {
	start  int
	closed bool
}

// Raster is a software Context drawing into an RGBA image.
//
// Fills and strokes are anti-aliased by golang.org/x/image/vector using the
// non-zero rule; text is drawn with tinyfont. Raster reuses its buffers
// between frames.
type Raster struct {
	img *image.RGBA
	ras vector.Rasterizer
	src image.Uniform

	pts  []fpt
	subs []subpath
	// reopen is set after ClosePath: the next LineTo starts a new subpath
	// at the closed subpath's first point.
	reopen bool

	fill      color.NRGBA
	stroke    color.NRGBA
	lineWidth float64
	font      tinyfont.Fonter
	align     TextAlign
}

var (
	_ Context           = (*Raster)(nil)
	_ drivers.Displayer = (*Raster)(nil)
)

// NewRaster draws into img.
func NewRaster(img *image.RGBA) *Raster {
	return &Raster{
		img:       img,
		fill:      color.NRGBA{A: 0xff},
		stroke:    color.NRGBA{A: 0xff},
		lineWidth: 1,
		font:      Fonts[DefaultFont],
	}
}

// NewRasterFromBuffer wraps an RGBA8888 pixel buffer.
func NewRasterFromBuffer(buf []byte, stride, width, height int) *Raster {
	return NewRaster(&image.RGBA{
		Pix:    buf,
		Stride: stride,
		Rect:   image.Rect(0, 0, width, height),
	})
}

// Image returns the destination image.
func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) Dimensions() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// Size reports the image size for drivers.Displayer.
func (r *Raster) Size() (x, y int16) {
	w, h := r.Dimensions()
	return int16(w), int16(h)
}

func (r *Raster) ClearRect(x, y, w, h float64) {
	rect := image.Rect(int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h))).Intersect(r.img.Bounds())
	draw.Draw(r.img, rect, image.Transparent, image.Point{}, draw.Src)
}

func (r *Raster) BeginPath() {
	r.pts = r.pts[:0]
	r.subs = r.subs[:0]
	r.reopen = false
}

func (r *Raster) MoveTo(x, y float64) {
	r.subs = append(r.subs, subpath{start: len(r.pts)})
	r.pts = append(r.pts, fpt{float32(x), float32(y)})
	r.reopen = false
}

func (r *Raster) LineTo(x, y float64) {
	if len(r.subs) == 0 {
		r.MoveTo(x, y)
		return
	}
	if r.reopen {
		first := r.pts[r.subs[len(r.subs)-1].start]
		r.MoveTo(float64(first.x), float64(first.y))
	}
	r.pts = append(r.pts, fpt{float32(x), float32(y)})
}

func (r *Raster) Arc(x, y, radius, start, end float64) {
	sweep := end - start
	n := int(math.Ceil(math.Abs(sweep) * math.Max(radius, 1) / 2))
	if n < 8 {
		n = 8
	}
	if n > 128 {
		n = 128
	}
	for i := 0; i <= n; i++ {
		a := start + sweep*float64(i)/float64(n)
		r.LineTo(x+radius*math.Cos(a), y+radius*math.Sin(a))
	}
}

func (r *Raster) ClosePath() {
	if len(r.subs) == 0 {
		return
	}
	r.subs[len(r.subs)-1].closed = true
	r.reopen = true
}

func (r *Raster) Fill() {
	w, h := r.Dimensions()
	r.ras.Reset(w, h)
	drawn := false
	for i := range r.subs {
		pts := r.subpathPoints(i)
		if len(pts) < 3 {
			continue
		}
		r.ras.MoveTo(pts[0].x, pts[0].y)
		for _, p := range pts[1:] {
			r.ras.LineTo(p.x, p.y)
		}
		r.ras.ClosePath()
		drawn = true
	}
	if drawn {
		r.paint(r.fill)
	}
}

func (r *Raster) Stroke() {
	if r.lineWidth <= 0 {
		return
	}
	w, h := r.Dimensions()
	r.ras.Reset(w, h)
	hw := float32(r.lineWidth / 2)
	joins := r.lineWidth > joinMinWidth
	drawn := false
	for i := range r.subs {
		pts := r.subpathPoints(i)
		if len(pts) < 2 {
			continue
		}
		n := len(pts) - 1
		if r.subs[i].closed {
			n = len(pts)
		}
		for j := 0; j < n; j++ {
			a, b := pts[j], pts[(j+1)%len(pts)]
			if r.segment(a, b, hw) {
				drawn = true
			}
			if joins {
				r.disc(b, hw)
			}
		}
		if joins && !r.subs[i].closed {
			r.disc(pts[0], hw)
		}
	}
	if drawn {
		r.paint(r.stroke)
	}
}

// segment adds a quad of half-width hw around a-b. All quads share one
// winding so overlaps saturate instead of cancelling.
func (r *Raster) segment(a, b fpt, hw float32) bool {
	dx, dy := b.x-a.x, b.y-a.y
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return false
	}
	nx, ny := -dy/l*hw, dx/l*hw
	r.ras.MoveTo(a.x+nx, a.y+ny)
	r.ras.LineTo(b.x+nx, b.y+ny)
	r.ras.LineTo(b.x-nx, b.y-ny)
	r.ras.LineTo(a.x-nx, a.y-ny)
	r.ras.ClosePath()
	return true
}

// disc adds a round join with the same winding as segment.
func (r *Raster) disc(c fpt, rad float32) {
	const n = 10
	r.ras.MoveTo(c.x+rad, c.y)
	for i := 1; i < n; i++ {
		a := -2 * math.Pi * float64(i) / n
		r.ras.LineTo(c.x+rad*float32(math.Cos(a)), c.y+rad*float32(math.Sin(a)))
	}
	r.ras.ClosePath()
}

func (r *Raster) paint(c color.NRGBA) {
	r.src.C = c
	r.ras.DrawOp = draw.Over
	r.ras.Draw(r.img, r.img.Bounds(), &r.src, image.Point{})
}

func (r *Raster) subpathPoints(i int) []fpt {
	end := len(r.pts)
	if i+1 < len(r.subs) {
		end = r.subs[i+1].start
	}
	return r.pts[r.subs[i].start:end]
}

// FillText draws s with its baseline at y using the fill style.
func (r *Raster) FillText(s string, x, y float64) {
	if r.font == nil || s == "" {
		return
	}
	_, w := tinyfont.LineWidth(r.font, s)
	switch r.align {
	case AlignCenter:
		x -= float64(w) / 2
	case AlignRight:
		x -= float64(w)
	}
	tinyfont.WriteLine(r, r.font, int16(math.Round(x)), int16(math.Round(y)), s, toRGBA(r.fill))
}

func (r *Raster) SetFillStyle(c color.NRGBA)   { r.fill = c }
func (r *Raster) SetStrokeStyle(c color.NRGBA) { r.stroke = c }
func (r *Raster) SetLineWidth(w float64)       { r.lineWidth = w }
func (r *Raster) SetTextAlign(a TextAlign)     { r.align = a }

func (r *Raster) SetFont(name string) {
	f, ok := Fonts[name]
	if !ok {
		f = Fonts[DefaultFont]
	}
	r.font = f
}

// SetPixel blends c over the pixel at x, y. It makes Raster a
// drivers.Displayer so tinyfont can draw into it.
func (r *Raster) SetPixel(x, y int16, c color.RGBA) {
	px, py := int(x), int(y)
	if !(image.Point{X: px, Y: py}).In(r.img.Bounds()) {
		return
	}
	if c.A == 0xff {
		r.img.SetRGBA(px, py, c)
		return
	}
	d := r.img.RGBAAt(px, py)
	ia := uint32(0xff - c.A)
	r.img.SetRGBA(px, py, color.RGBA{
		R: uint8(uint32(c.R) + uint32(d.R)*ia/0xff),
		G: uint8(uint32(c.G) + uint32(d.G)*ia/0xff),
		B: uint8(uint32(c.B) + uint32(d.B)*ia/0xff),
		A: uint8(uint32(c.A) + uint32(d.A)*ia/0xff),
	})
}

// Display is a no-op; presenting the image is the caller's job.
func (r *Raster) Display() error { return nil }

func toRGBA(c color.NRGBA) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}
