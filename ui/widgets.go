package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Renderer draws panel elements in a Theme.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawTitle draws a panel title and returns the Y below it.
func (r *Renderer) DrawTitle(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.TitleFontSize, r.Theme.Title)
	return y + r.Theme.TitleFontSize + 6
}

// DrawHeader draws a section header and returns the Y below it.
func (r *Renderer) DrawHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.Header)
	return y + r.Theme.LineHeight
}

// DrawLabel draws a text label and returns the Y below it.
func (r *Renderer) DrawLabel(x, y int32, text string) int32 {
	rl.DrawText(text, x, y, r.Theme.FontSize, r.Theme.Label)
	return y + r.Theme.FontSize + 2
}

// DrawLabelValue draws a label and value on one line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.Label)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.Value)
	return y + r.Theme.LineHeight
}

// DrawToggle draws an on/off mark, the name and a right-aligned key hint
// across width.
func (r *Renderer) DrawToggle(x, y, width int32, name, key string, on bool) {
	mark, text := r.Theme.ToggleOff, r.Theme.Label
	if on {
		mark, text = r.Theme.ToggleOn, r.Theme.Title
	}
	rl.DrawRectangle(x, y+2, 8, 8, mark)
	rl.DrawText(name, x+14, y, r.Theme.FontSize, text)

	if key != "" {
		hint := "[" + key + "]"
		w := rl.MeasureText(hint, r.Theme.FontSize)
		rl.DrawText(hint, x+width-w, y, r.Theme.FontSize, r.Theme.Muted)
	}
}
