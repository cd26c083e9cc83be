package render

import (
	"image/color"

	"globe/globe/canvas"
)

// Config is the fixed styling of a renderer plus the overlay toggles.
type Config struct {
	Sphere      color.NRGBA
	Land        color.NRGBA
	Border      color.NRGBA
	BorderWidth float64

	// Palette colours the cells by index. Fills use CellFillAlpha, strokes
	// are opaque.
	Palette       []color.NRGBA
	CellFillAlpha float64
	CellWidth     float64

	Found      color.NRGBA
	FoundFill  color.NRGBA
	FoundWidth float64

	HullColor color.NRGBA
	HullWidth float64

	Point       color.NRGBA
	PointRadius float64
	Target      color.NRGBA
	Guess       color.NRGBA

	HoverRadius   float64
	TooltipOffset float64
	TooltipColor  color.NRGBA
	TooltipFont   string
	TargetLabel   string

	Cells   bool
	Hull    bool
	Points  bool
	Targets bool
	Guesses bool
	Tooltip bool
}

// DefaultPalette is a set of distinguishable cell colours.
var DefaultPalette = []color.NRGBA{
	canvas.MustParseColor("rgb(230,25,75)"),
	canvas.MustParseColor("rgb(60,180,75)"),
	canvas.MustParseColor("rgb(255,225,25)"),
	canvas.MustParseColor("rgb(245,130,48)"),
	canvas.MustParseColor("rgb(145,30,180)"),
	canvas.MustParseColor("rgb(70,240,240)"),
	canvas.MustParseColor("rgb(240,50,230)"),
	canvas.MustParseColor("rgb(210,245,60)"),
}

// DefaultConfig returns the stock map styling with every overlay enabled
// except the hull.
func DefaultConfig() Config {
	return Config{
		Sphere:      canvas.MustParseColor("#849fff"),
		Land:        canvas.MustParseColor("#ccc"),
		Border:      canvas.MustParseColor("#fff"),
		BorderWidth: 0.5,

		Palette:       append([]color.NRGBA(nil), DefaultPalette...),
		CellFillAlpha: 0.5,
		CellWidth:     1,

		Found:      canvas.MustParseColor("#000dff"),
		FoundFill:  canvas.MustParseColor("rgba(0,0,255,0.5)"),
		FoundWidth: 3,

		HullColor: canvas.MustParseColor("#000"),
		HullWidth: 1.5,

		Point:       canvas.MustParseColor("#f00"),
		PointRadius: 4.5,
		Target:      canvas.MustParseColor("#000dff"),
		Guess:       canvas.MustParseColor("#0a0"),

		HoverRadius:   7,
		TooltipOffset: 12,
		TooltipColor:  canvas.MustParseColor("#000"),
		TooltipFont:   canvas.DefaultFont,
		TargetLabel:   "Target",

		Cells:   true,
		Points:  true,
		Targets: true,
		Guesses: true,
		Tooltip: true,
	}
}
