package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
)

// Widget colors
var (
	ColorText    = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorBarBg   = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill = rl.Color{R: 100, G: 180, B: 100, A: 255}
	ColorBarHigh = rl.Color{R: 220, G: 160, B: 60, A: 255}
	ColorDial    = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorNeedle  = rl.Color{R: 255, G: 200, B: 100, A: 255}
	ColorOn      = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorOff     = rl.Color{R: 80, G: 80, B: 80, A: 255}

	axisColors = [3]rl.Color{
		{R: 230, G: 90, B: 90, A: 255},
		{R: 110, G: 210, B: 110, A: 255},
		{R: 100, G: 140, B: 240, A: 255},
	}
)

const valueColumn = 80

// DrawLabel renders "name: text" and returns the height used.
func DrawLabel(x, y int32, name, text string) int32 {
	rl.DrawText(name+": "+text, x, y, 16, ColorText)
	return 20
}

// DrawBar renders value as a fraction of peak.
func DrawBar(x, y int32, name string, value, peak float32) int32 {
	ratio := float32(0)
	if peak > 0 {
		ratio = min(max(value/peak, 0), 1)
	}

	const w, h = 120, 14
	bx := x + valueColumn
	rl.DrawText(name, x, y, 14, ColorTextDim)
	rl.DrawRectangle(bx, y, w, h, ColorBarBg)

	fill := ColorBarFill
	if ratio > 0.8 {
		fill = ColorBarHigh
	}
	rl.DrawRectangle(bx, y, int32(w*ratio), h, fill)
	rl.DrawText(fmt.Sprintf("%.2f", value), bx+w+5, y, 14, ColorTextDim)
	return 18
}

// DrawVec renders the three components of v in axis colours.
func DrawVec(x, y int32, name string, v mgl64.Vec3, format string) int32 {
	if format == "" {
		format = "%.2f"
	}
	rl.DrawText(name, x, y, 14, ColorTextDim)

	cx := x + valueColumn
	for i, c := range axisColors {
		text := fmt.Sprintf(format, v[i])
		rl.DrawText(text, cx, y, 14, c)
		cx += rl.MeasureText(text, 14) + 10
	}
	return 18
}

// DrawHeading renders a yaw dial, 0 degrees pointing up the panel.
func DrawHeading(x, y int32, name string, degrees float64) int32 {
	const size = 40
	cx, cy := x+60+size/2, y+size/2

	rl.DrawText(name, x, cy-7, 14, ColorTextDim)
	rl.DrawCircle(cx, cy, size/2, ColorDial)
	rl.DrawCircleLines(cx, cy, size/2, ColorTextDim)

	rad := degrees * math.Pi / 180
	r := float64(size/2 - 4)
	end := rl.Vector2{X: float32(float64(cx) + r*math.Sin(rad)), Y: float32(float64(cy) - r*math.Cos(rad))}
	rl.DrawLineEx(rl.Vector2{X: float32(cx), Y: float32(cy)}, end, 2, ColorNeedle)

	rl.DrawText(fmt.Sprintf("%.0f deg", degrees), x+60+size+5, cy-7, 14, ColorTextDim)
	return size + 4
}

// DrawBool renders an on/off mark.
func DrawBool(x, y int32, name string, on bool) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)

	c, text := ColorOff, "OFF"
	if on {
		c, text = ColorOn, "ON"
	}
	rl.DrawRectangle(x+valueColumn, y, 14, 14, c)
	rl.DrawText(text, x+valueColumn+19, y, 14, c)
	return 18
}

// DrawField renders f with its widget, falling back to a label when the
// value does not fit the widget.
func DrawField(x, y int32, f Field) int32 {
	switch f.Widget {
	case WidgetVec:
		if v, ok := f.Value.(mgl64.Vec3); ok {
			return DrawVec(x, y, f.Name, v, f.Format)
		}
	case WidgetBool:
		if v, ok := f.Value.(bool); ok {
			return DrawBool(x, y, f.Name, v)
		}
	}
	return DrawLabel(x, y, f.Name, FormatValue(f.Value, f.Format))
}
