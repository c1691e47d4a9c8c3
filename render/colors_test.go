package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/swimrace/components"
)

func TestRacerColor(t *testing.T) {
	if got := RacerColor("#06b6d4"); got != tcell.NewRGBColor(0x06, 0xb6, 0xd4) {
		t.Errorf("Unexpected color for player tag: %v", got)
	}
	if got := RacerColor("not-a-color"); got != tcell.ColorWhite {
		t.Errorf("Expected white fallback, got %v", got)
	}
}

func TestProgressColorEndpoints(t *testing.T) {
	if ProgressColor(0) != RgbUnfilled {
		t.Error("Zero progress must be the unfilled color")
	}
	r, g, _ := ProgressColor(0.01).RGB()
	if r < g {
		t.Error("Early progress must lean red")
	}
	r, g, _ = ProgressColor(1).RGB()
	if g <= r {
		t.Error("Full progress must lean green")
	}
	if ProgressColor(2) != ProgressColor(1) {
		t.Error("Progress above 1 must clamp")
	}
}

func TestParticleColorByName(t *testing.T) {
	for c := components.ParticleColorNone; c <= components.ParticleColorWin; c++ {
		if particleColorByName(c.String()) != ParticleColor(c) {
			t.Errorf("Name round trip failed for %s", c)
		}
	}
}
