package constants

import "time"

// Frame Loop Timing
const (
	// FramesPerSecond is the nominal display refresh the simulation is tuned for
	FramesPerSecond = 60

	// FrameUpdateInterval is the interval between simulation frames (~60 FPS)
	FrameUpdateInterval = time.Second / FramesPerSecond

	// BroadcastEvery is how many frames pass between network snapshot pushes (30 Hz)
	BroadcastEvery = 2
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)

// System Execution Priorities (lower runs first)
const (
	PriorityPowerUps   = 5
	PriorityTimers     = 10
	PriorityMovement   = 20
	PriorityCollision  = 30
	PriorityParticles  = 800 // After gameplay, runs in every state
	PriorityCommentary = 900 // Last: derived view over authoritative positions
)
