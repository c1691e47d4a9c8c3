package constants

// Base Speed
const (
	// MinBaseSpeed is the floor applied to the player's score-derived speed
	MinBaseSpeed = 0.5

	// ScoreSpeedDivisor maps score to speed: score/400*2
	ScoreSpeedDivisor = 400.0

	// ScoreSpeedFactor is the multiplier applied after dividing the score
	ScoreSpeedFactor = 2.0
)

// SpeedRange is a half-open [Min, Max) draw range for a non-player base speed
type SpeedRange struct {
	Min, Max float64
}

// OpponentSpeeds are the base speed ranges for the three non-player racers in start order
var OpponentSpeeds = [RacerCount - 1]SpeedRange{
	{Min: 1.5, Max: 2.3},
	{Min: 1.2, Max: 2.0},
	{Min: 1.0, Max: 1.8},
}

// Movement
const (
	// PlayerLaneStep is the vertical distance the player moves per frame while a direction is held
	PlayerLaneStep = 4.0

	// SwimAmplitude is the vertical swing of non-player racers around their lane
	SwimAmplitude = 6.0

	// SwimFrequency is the per-frame phase advance of the vertical swing
	SwimFrequency = 0.05

	// JitterAmplitude is the magnitude of the non-player horizontal jitter
	JitterAmplitude = 0.3

	// JitterFrequency is the per-frame phase advance of the horizontal jitter (~0.01 rad/ms at 60 Hz)
	JitterFrequency = 0.16
)

// Track Contact
const (
	// ObstacleHitDistance is the center distance below which an obstacle is hit
	ObstacleHitDistance = 20.0

	// BoosterTouchDistance is the center distance below which a booster is collected
	BoosterTouchDistance = 20.0

	// MagnetRange is the booster attraction range while a racer is magnetized
	MagnetRange = 120.0

	// MagnetPullStep is the distance a booster moves toward a magnetized racer per frame
	MagnetPullStep = 4.0

	// StaleMargin is how far behind the leader an object becomes inert and hidden
	StaleMargin = 100.0

	// ObstacleSlowFactor is the speed multiplier applied by an obstacle hit
	ObstacleSlowFactor = 0.3

	// ObstacleSlowFrames is how long an obstacle slow lasts
	ObstacleSlowFrames = 60

	// BoosterSpeedFactor is the speed multiplier applied by a booster pickup
	BoosterSpeedFactor = 2.5

	// BoosterSpeedFrames is how long a booster boost lasts
	BoosterSpeedFrames = 90
)

// Power-Ups
const (
	DoubleSpeedFactor = 2.0
	DoubleSpeedFrames = 120

	SpeedBoostFactor = 1.5
	SpeedBoostFrames = 90

	SlowEnemiesFactor = 0.3
	SlowEnemiesFrames = 120

	MagnetFrames = 180

	// InstantBoostDistance is the one-time forward displacement of an instant boost
	InstantBoostDistance = 50.0
)

// Race Lifecycle
const (
	// CountdownStepFrames is the length of each countdown label (3, 2, 1, GO)
	CountdownStepFrames = FramesPerSecond

	// GraceFrames is the delay between the finish and the completion signal (3 s)
	GraceFrames = 3 * FramesPerSecond

	// CommentaryIntervalFrames throttles commentary refresh to once every two seconds
	CommentaryIntervalFrames = 2 * FramesPerSecond

	// CommentaryBucketWidth is the progress percentage covered by one commentary phrase
	CommentaryBucketWidth = 15.0
)

// Particles
const (
	// ParticleBurst is the number of particles spawned per feedback event
	ParticleBurst = 20

	// ParticleMaxSpeed is the maximum outward speed of a spawned particle
	ParticleMaxSpeed = 3.0

	// ParticleDecay is the life lost by every particle per frame
	ParticleDecay = 0.02
)
