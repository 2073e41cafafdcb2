package components

import "image/color"

// Player marks the entity the first-person camera rides on.
type Player struct {
	EyeHeight float64 `inspect:"label,fmt:%.2f"`
	WalkSpeed float64 `inspect:"label,fmt:%.1f"`
	JumpSpeed float64 `inspect:"skip"`
}

// Prop is a loose physics object that can fall through portals.
type Prop struct {
	ID    uint32     `inspect:"label"`
	Color color.RGBA `inspect:"skip"`
}
