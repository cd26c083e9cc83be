package canvas

import "image/color"

// Op is one recorded Context call.
type Op struct {
	Name  string
	Args  []float64
	Text  string
	Color color.NRGBA
	// Points is the number of path vertices at the time of a fill or stroke.
	Points int
}

// Recorder is a Context that records calls instead of drawing.
type Recorder struct {
	Width, Height int

	Ops []Op

	fill, stroke color.NRGBA
	lineWidth    float64
	points       int
}

var _ Context = (*Recorder)(nil)

// NewRecorder returns a recorder reporting the given size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height, lineWidth: 1}
}

// Reset drops recorded operations.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// Named returns the recorded ops with the given name, in order.
func (r *Recorder) Named(name string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Name == name {
			out = append(out, op)
		}
	}
	return out
}

func (r *Recorder) add(op Op) { r.Ops = append(r.Ops, op) }

func (r *Recorder) Dimensions() (int, int) { return r.Width, r.Height }

func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.add(Op{Name: "clearRect", Args: []float64{x, y, w, h}})
}

func (r *Recorder) BeginPath() {
	r.points = 0
	r.add(Op{Name: "beginPath"})
}

func (r *Recorder) MoveTo(x, y float64) {
	r.points++
	r.add(Op{Name: "moveTo", Args: []float64{x, y}})
}

func (r *Recorder) LineTo(x, y float64) {
	r.points++
	r.add(Op{Name: "lineTo", Args: []float64{x, y}})
}

func (r *Recorder) Arc(x, y, rad, start, end float64) {
	r.points++
	r.add(Op{Name: "arc", Args: []float64{x, y, rad, start, end}})
}

func (r *Recorder) ClosePath() { r.add(Op{Name: "closePath"}) }

func (r *Recorder) Fill() {
	r.add(Op{Name: "fill", Color: r.fill, Points: r.points})
}

func (r *Recorder) Stroke() {
	r.add(Op{Name: "stroke", Color: r.stroke, Args: []float64{r.lineWidth}, Points: r.points})
}

func (r *Recorder) FillText(s string, x, y float64) {
	r.add(Op{Name: "fillText", Text: s, Args: []float64{x, y}, Color: r.fill})
}

func (r *Recorder) SetFillStyle(c color.NRGBA) {
	r.fill = c
	r.add(Op{Name: "fillStyle", Color: c})
}

func (r *Recorder) SetStrokeStyle(c color.NRGBA) {
	r.stroke = c
	r.add(Op{Name: "strokeStyle", Color: c})
}

func (r *Recorder) SetLineWidth(w float64) {
	r.lineWidth = w
	r.add(Op{Name: "lineWidth", Args: []float64{w}})
}

func (r *Recorder) SetFont(name string) { r.add(Op{Name: "font", Text: name}) }

func (r *Recorder) SetTextAlign(a TextAlign) {
	r.add(Op{Name: "textAlign", Args: []float64{float64(a)}})
}
