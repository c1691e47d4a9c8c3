package constants

// Track Geometry
const (
	// TrackWidth is the horizontal extent of the track in world units
	TrackWidth = 900.0

	// TrackHeight is the vertical extent of the track in world units
	TrackHeight = 500.0

	// StartX is the start line coordinate, every racer begins here
	StartX = 50.0

	// FinishX is the finish line coordinate, first racer at or past it wins
	FinishX = TrackWidth - 100.0

	// MinY is the upper movement bound for racers
	MinY = 40.0

	// MaxY is the lower movement bound for racers
	MaxY = TrackHeight - 40.0
)

// LaneY holds the starting lane of each racer in start order (player first)
var LaneY = [RacerCount]float64{80, 180, 280, 380}

// RacerCount is the number of contestants in every race
const RacerCount = 4

// Procedural Layout
const (
	// ObstacleCount is the default number of obstacles placed per race
	ObstacleCount = 8

	// BoosterCount is the default number of boosters placed per race
	BoosterCount = 6

	// LayoutLeadIn keeps the start area clear of track objects
	LayoutLeadIn = 100.0

	// LayoutLeadOut keeps the area before the finish line clear
	LayoutLeadOut = 50.0

	// ObstacleRadius is the drawn radius of an obstacle
	ObstacleRadius = 12.0

	// BoosterRadius is the drawn radius of a booster
	BoosterRadius = 10.0

	// RacerRadius is the drawn head radius of a racer
	RacerRadius = 10.0
)
