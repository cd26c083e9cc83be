// Package canvas is the 2-D immediate-mode drawing surface the globe is
// painted on.
//
// Context mirrors the subset of the HTML canvas API the renderer needs: path
// construction, fill, stroke, clear and text with explicit style state. Every
// paint call uses the style that is current at the time of the call.
package canvas

import "image/color"

// TextAlign controls horizontal anchoring in FillText.
type TextAlign uint8

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// Context is a 2-D drawing context.
type Context interface {
	Dimensions() (width, height int)

	ClearRect(x, y, w, h float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Arc appends a clockwise arc (screen coordinates, y down) from angle
	// start to end, in radians, connecting it to the current point.
	Arc(x, y, r, start, end float64)
	ClosePath()
	Fill()
	Stroke()

	FillText(s string, x, y float64)

	SetFillStyle(c color.NRGBA)
	SetStrokeStyle(c color.NRGBA)
	SetLineWidth(w float64)
	SetFont(name string)
	SetTextAlign(a TextAlign)
}
