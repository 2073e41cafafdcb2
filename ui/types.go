// Package ui draws the arena HUD: status text, crosshair, overlay toggles,
// portal controls and the performance panel.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds the colours and metrics shared by all panels.
type Theme struct {
	PanelBg     rl.Color
	PanelBorder rl.Color
	Title       rl.Color
	Header      rl.Color
	Label       rl.Color
	Value       rl.Color
	Muted       rl.Color
	ToggleOn    rl.Color
	ToggleOff   rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	FontSize       int32
	HeaderFontSize int32
	TitleFontSize  int32
}

// DefaultTheme returns the panel theme used throughout the HUD.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 18, G: 22, B: 30, A: 235},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 85, A: 255},
		Title:          rl.White,
		Header:         rl.Yellow,
		Label:          rl.LightGray,
		Value:          rl.RayWhite,
		Muted:          rl.Color{R: 150, G: 150, B: 150, A: 255},
		ToggleOn:       rl.Color{R: 100, G: 200, B: 100, A: 255},
		ToggleOff:      rl.Color{R: 80, G: 80, B: 80, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		FontSize:       12,
		HeaderFontSize: 14,
		TitleFontSize:  16,
	}
}
