package components

import (
	"github.com/lixenwraith/swimrace/constants"
	"github.com/lixenwraith/swimrace/vmath"
)

// Track is the static race layout: start/finish coordinates, lanes and movement bounds
type Track struct {
	Width, Height float64
	StartX        float64
	FinishX       float64
	MinY, MaxY    float64
	Lanes         [constants.RacerCount]float64
}

// DefaultTrack returns the 900x500 layout with the finish line 100 units before the right edge
func DefaultTrack() Track {
	return Track{
		Width:   constants.TrackWidth,
		Height:  constants.TrackHeight,
		StartX:  constants.StartX,
		FinishX: constants.FinishX,
		MinY:    constants.MinY,
		MaxY:    constants.MaxY,
		Lanes:   constants.LaneY,
	}
}

// ClampY bounds a lane position to [MinY, MaxY]
func (t Track) ClampY(y float64) float64 {
	return vmath.Clamp(y, t.MinY, t.MaxY)
}

// Progress returns completion percentage for x, clamped to [0, 100]
func (t Track) Progress(x float64) float64 {
	span := t.FinishX - t.StartX
	if span <= 0 {
		return 0
	}
	return vmath.Clamp((x-t.StartX)/span*100, 0, 100)
}

// Crossed reports whether x has reached the finish line
func (t Track) Crossed(x float64) bool {
	return x >= t.FinishX
}
