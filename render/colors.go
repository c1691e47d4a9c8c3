package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/swimrace/components"
)

// Scene palette
var (
	RgbBackground  = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbWater       = tcell.NewRGBColor(36, 52, 71)    // Lane ripple
	RgbLaneMarker  = tcell.NewRGBColor(60, 80, 110)   // Start line
	RgbFinishLine  = tcell.NewRGBColor(255, 255, 255) // Finish line
	RgbObstacle    = tcell.NewRGBColor(239, 68, 68)   // Red hazard
	RgbBooster     = tcell.NewRGBColor(250, 204, 21)  // Yellow pickup
	RgbStatusText  = tcell.NewRGBColor(0, 0, 0)       // Dark text on status backgrounds
	RgbStatusBar   = tcell.NewRGBColor(255, 255, 255) // White
	RgbCommentary  = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbNoticeBg    = tcell.NewRGBColor(128, 0, 128)   // Dark purple popup
	RgbCountdown   = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbShieldRing  = tcell.NewRGBColor(96, 165, 250)  // Light blue
	RgbMagnetField = tcell.NewRGBColor(232, 121, 249) // Pink
	RgbWinBanner   = tcell.NewRGBColor(144, 238, 144) // Light grass green
	RgbLoseBanner  = tcell.NewRGBColor(200, 50, 50)   // Red
	RgbUnfilled    = tcell.NewRGBColor(50, 50, 50)    // Empty bar segment
)

// RacerColor resolves a "#rrggbb" tag, falling back to white
func RacerColor(hex string) tcell.Color {
	c := tcell.GetColor(hex)
	if c == tcell.ColorDefault {
		return tcell.ColorWhite
	}
	return c
}

// ParticleColor maps a particle tag to its draw color
func ParticleColor(c components.ParticleColor) tcell.Color {
	switch c {
	case components.ParticleColorHit:
		return RgbObstacle
	case components.ParticleColorShield:
		return RgbShieldRing
	case components.ParticleColorPickup:
		return RgbBooster
	case components.ParticleColorBoost:
		return tcell.NewRGBColor(34, 211, 238)
	case components.ParticleColorWin:
		return RgbWinBanner
	default:
		return RgbCommentary
	}
}

// particleColorByName resolves the wire name carried in snapshots
func particleColorByName(name string) tcell.Color {
	for c := components.ParticleColorNone; c <= components.ParticleColorWin; c++ {
		if c.String() == name {
			return ParticleColor(c)
		}
	}
	return RgbCommentary
}

// ProgressColor returns the bar color for progress in [0, 1]: red, through yellow, to green
func ProgressColor(progress float64) tcell.Color {
	if progress <= 0 {
		return RgbUnfilled
	}
	if progress > 1 {
		progress = 1
	}

	if progress < 0.5 {
		t := progress / 0.5
		return tcell.NewRGBColor(int32(200+55*t), int32(50+165*t), 0)
	}
	t := (progress - 0.5) / 0.5
	return tcell.NewRGBColor(int32(255-221*t), int32(215-76*t), int32(34*t))
}
