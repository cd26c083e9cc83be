package app

import (
	"errors"
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"tinygo.org/x/tinyfont"

	"globe/globe/canvas"
)

// ErrPanic is returned by Step after it recovered from a panic.
var ErrPanic = errors.New("app: panic")

var (
	panicBackground = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	panicForeground = color.NRGBA{A: 0xff}
)

func (a *App) recoverPanic(err *error) {
	v := recover()
	if v == nil {
		return
	}
	a.failed = true
	stack := debug.Stack()
	a.log.Error("globe panic", zap.Any("panic", v), zap.ByteString("stack", stack))

	lines := []string{
		"Globe Panic:",
		fmt.Sprintf("panic: %v", v),
		"stack:",
	}
	for _, line := range strings.Split(string(stack), "\n") {
		if line != "" {
			lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
		}
	}
	drawPanic(a.raster, lines)
	_ = a.fb.Present()
	*err = fmt.Errorf("%w: %v", ErrPanic, v)
}

// drawPanic fills ctx with lines of text, wrapped to the width and cut at
// the bottom.
func drawPanic(ctx canvas.Context, lines []string) {
	w, h := ctx.Dimensions()
	ctx.ClearRect(0, 0, float64(w), float64(h))
	ctx.SetFillStyle(panicBackground)
	ctx.BeginPath()
	ctx.MoveTo(0, 0)
	ctx.LineTo(float64(w), 0)
	ctx.LineTo(float64(w), float64(h))
	ctx.LineTo(0, float64(h))
	ctx.ClosePath()
	ctx.Fill()

	font := canvas.Fonts[canvas.DefaultFont]
	_, glyphW := tinyfont.LineWidth(font, "0")
	lineH := int(font.GetYAdvance())
	if glyphW == 0 || lineH <= 0 {
		return
	}
	cols := w / int(glyphW)
	if cols <= 0 {
		cols = 1
	}

	ctx.SetFont(canvas.DefaultFont)
	ctx.SetTextAlign(canvas.AlignLeft)
	ctx.SetFillStyle(panicForeground)
	y := lineH
	for _, line := range lines {
		for len(line) > 0 {
			if y > h {
				return
			}
			var chunk string
			chunk, line = takeRunes(line, cols)
			ctx.FillText(chunk, 0, float64(y))
			y += lineH
			line = strings.TrimLeft(line, " ")
		}
	}
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
