package systems

import (
	"github.com/lixenwraith/swimrace/components"
	"github.com/lixenwraith/swimrace/constants"
	"github.com/lixenwraith/swimrace/engine"
)

// LayoutCounts is the number of objects to place per kind
type LayoutCounts struct {
	Obstacles int
	Boosters  int
}

// DefaultLayoutCounts is the standard 8 obstacles and 6 boosters
var DefaultLayoutCounts = LayoutCounts{
	Obstacles: constants.ObstacleCount,
	Boosters:  constants.BoosterCount,
}

// GenerateLayout scatters obstacles then boosters between the lead-in and lead-out margins
// Draw order is fixed (x then y, obstacles first) so a seeded source reproduces the layout
func GenerateLayout(track components.Track, rng engine.Rand, counts LayoutCounts) (obstacles, boosters []*components.TrackObject) {
	minX := track.StartX + constants.LayoutLeadIn
	maxX := track.FinishX - constants.LayoutLeadOut
	if maxX < minX {
		maxX = minX
	}

	place := func(kind components.ObjectKind, radius float64) *components.TrackObject {
		return &components.TrackObject{
			Kind:   kind,
			X:      engine.Between(rng, minX, maxX),
			Y:      engine.Between(rng, track.MinY, track.MaxY),
			Radius: radius,
		}
	}

	for i := 0; i < counts.Obstacles; i++ {
		obstacles = append(obstacles, place(components.ObjectObstacle, constants.ObstacleRadius))
	}
	for i := 0; i < counts.Boosters; i++ {
		boosters = append(boosters, place(components.ObjectBooster, constants.BoosterRadius))
	}
	return obstacles, boosters
}
