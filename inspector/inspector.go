package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/portals/components"
	"github.com/pthm-cable/portals/geom"
)

// Panel dimensions
const (
	PanelWidth   = 320
	PanelPadding = 10
	HeaderHeight = 30
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// Inspector shows the components of one selected body.
type Inspector struct {
	world       *ecs.World
	selected    ecs.Entity
	hasSelected bool
	visible     bool

	panelX, panelY int32

	transforms *ecs.Map[components.Transform]
	bodies     *ecs.Map[components.RigidBody]
	colliders  *ecs.Map[components.Collider]
	crossings  *ecs.Map[components.Crossing]
	players    *ecs.Map[components.Player]
	props      *ecs.Map[components.Prop]
	pickable   *ecs.Filter2[components.Transform, components.Collider]
}

// NewInspector creates an inspector over w, anchored to the right edge.
func NewInspector(w *ecs.World, screenWidth int32) *Inspector {
	return &Inspector{
		world:      w,
		visible:    true,
		panelX:     screenWidth - PanelWidth - 10,
		panelY:     10,
		transforms: ecs.NewMap[components.Transform](w),
		bodies:     ecs.NewMap[components.RigidBody](w),
		colliders:  ecs.NewMap[components.Collider](w),
		crossings:  ecs.NewMap[components.Crossing](w),
		players:    ecs.NewMap[components.Player](w),
		props:      ecs.NewMap[components.Prop](w),
		pickable:   ecs.NewFilter2[components.Transform, components.Collider](w),
	}
}

// Resize re-anchors the panel.
func (ins *Inspector) Resize(screenWidth int32) {
	ins.panelX = screenWidth - PanelWidth - 10
}

// Toggle switches panel visibility.
func (ins *Inspector) Toggle() bool {
	ins.visible = !ins.visible
	return ins.visible
}

// Select makes e the inspected entity.
func (ins *Inspector) Select(e ecs.Entity) {
	ins.selected = e
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the currently selected entity.
func (ins *Inspector) Selected() (ecs.Entity, bool) {
	if ins.hasSelected && !ins.world.Alive(ins.selected) {
		ins.hasSelected = false
	}
	return ins.selected, ins.hasSelected
}

// Pick selects the nearest body the ray passes through, ignoring the one
// the ray starts inside (the viewer's own body). Returns false if nothing
// was hit; the selection is then unchanged.
func (ins *Inspector) Pick(ray geom.Ray) bool {
	var closest ecs.Entity
	closestDist := math.Inf(1)
	found := false

	query := ins.pickable.Query()
	for query.Next() {
		tr, col := query.Get()
		t, ok := ray.Sphere(tr.Position, col.Radius)
		if ok && t < closestDist {
			closest = query.Entity()
			closestDist = t
			found = true
		}
	}

	if found {
		ins.Select(closest)
	}
	return found
}

// Draw renders the inspector panel if an entity is selected.
func (ins *Inspector) Draw() {
	e, ok := ins.Selected()
	if !ok || !ins.visible {
		return
	}

	type section struct {
		title     string
		component any
	}
	var sections []section
	if ins.transforms.Has(e) {
		sections = append(sections, section{"TRANSFORM", ins.transforms.Get(e)})
	}
	if ins.bodies.Has(e) {
		sections = append(sections, section{"RIGID BODY", ins.bodies.Get(e)})
	}
	if ins.colliders.Has(e) {
		sections = append(sections, section{"COLLIDER", ins.colliders.Get(e)})
	}
	if ins.players.Has(e) {
		sections = append(sections, section{"PLAYER", ins.players.Get(e)})
	}

	fields := make([][]Field, len(sections))
	height := int32(HeaderHeight + PanelPadding + 22 + 44 + PanelPadding)
	for i, s := range sections {
		fields[i] = ExtractFields(s.component)
		height += 20 + int32(len(fields[i]))*20
	}
	if ins.bodies.Has(e) {
		height += 18
	}

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, height, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(height)},
		1,
		ColorPanelBorder,
	)
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("INSPECTOR", ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding

	rl.DrawText(ins.title(e), x, y, 14, ColorHeaderText)
	y += 22

	if ins.transforms.Has(e) {
		y += DrawHeading(x, y, "Heading", ins.transforms.Get(e).Rotation.Y())
	}
	if ins.bodies.Has(e) {
		rb := ins.bodies.Get(e)
		walk := 6.0
		if ins.players.Has(e) {
			walk = ins.players.Get(e).WalkSpeed
		}
		y += DrawBar(x, y, "Speed", float32(rb.Speed()), float32(2*walk))
	}

	for i, s := range sections {
		ins.drawSectionHeader(x, y, s.title)
		y += 20
		for _, f := range fields[i] {
			y += DrawField(x, y, f)
		}
	}
}

// title names the entity and its crossing latch state.
func (ins *Inspector) title(e ecs.Entity) string {
	kind := "Body"
	switch {
	case ins.players.Has(e):
		kind = "Player"
	case ins.props.Has(e):
		kind = fmt.Sprintf("Prop %d", ins.props.Get(e).ID)
	}
	latch := "-"
	if ins.crossings.Has(e) {
		latch = ins.crossings.Get(e).Latch.State().String()
	}
	return fmt.Sprintf("ID: %d  %s  latch: %s", e.ID(), kind, latch)
}

// drawSectionHeader renders a section title.
func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}
