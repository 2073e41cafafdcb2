package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsPanel renders the left-side controls panel with overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  false,
	}
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the controls panel.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	// Calculate panel height based on content
	categories := overlays.Categories()
	totalItems := 0
	for _, cat := range categories {
		totalItems += len(overlays.ByCategory(cat)) + 1 // +1 for category header
	}
	panelHeight := int32(totalItems)*lineHeight + padding*3 + lineHeight // Extra for title

	// Draw panel background
	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := c.y + padding

	y = r.DrawTitle(c.x+padding, y, "Overlays")

	for _, category := range categories {
		y = r.DrawHeader(c.x+padding, y, categoryLabel(category))

		for _, desc := range overlays.ByCategory(category) {
			r.DrawToggle(c.x+padding, y, c.width-padding*2, desc.Name, desc.KeyLabel, overlays.IsEnabled(desc.ID))
			y += lineHeight
		}

		y += 4 // Gap between categories
	}

	return y
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "visual":
		return "Visual"
	case "panels":
		return "Panels"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}

// PortalSettings are the live-tunable portal values shown on the panel.
type PortalSettings struct {
	ExitImpulse float32
	Cooldown    float32
	NearClip    float32 // current viewer near clip, display only
}

// PortalControlsResult reports what the user changed this frame.
type PortalControlsResult struct {
	ResetPortals bool
	ExitImpulse  float32
	Cooldown     float32
}

// PortalControls renders raygui controls for the portal pair.
type PortalControls struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPortalControls creates a portal controls panel.
func NewPortalControls(x, y, width int32) *PortalControls {
	return &PortalControls{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PortalControls) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the panel and returns the user's changes.
func (p *PortalControls) Draw(s PortalSettings) PortalControlsResult {
	r := p.renderer
	padding := r.Theme.Padding
	res := PortalControlsResult{ExitImpulse: s.ExitImpulse, Cooldown: s.Cooldown}

	r.DrawPanel(p.x, p.y, p.width, 150)

	x := float32(p.x + padding)
	y := p.y + padding
	y = r.DrawTitle(p.x+padding, y, "Portals")

	sliderW := float32(p.width - padding*2 - 70)

	y = r.DrawLabel(p.x+padding, y, "Exit impulse")
	res.ExitImpulse = gui.SliderBar(
		rl.Rectangle{X: x, Y: float32(y), Width: sliderW, Height: 16},
		"", fmt.Sprintf("%.1f", s.ExitImpulse),
		s.ExitImpulse, 0, 20,
	)
	y += 22

	y = r.DrawLabel(p.x+padding, y, "Cooldown (s)")
	res.Cooldown = gui.SliderBar(
		rl.Rectangle{X: x, Y: float32(y), Width: sliderW, Height: 16},
		"", fmt.Sprintf("%.2f", s.Cooldown),
		s.Cooldown, 0.1, 1,
	)
	y += 22

	y = r.DrawLabelValue(p.x+padding, y, "Near clip", fmt.Sprintf("%.2f", s.NearClip))

	res.ResetPortals = gui.Button(rl.Rectangle{X: x, Y: float32(y + 2), Width: 120, Height: 24}, "Reset Portals")

	return res
}
