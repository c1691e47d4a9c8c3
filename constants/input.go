package constants

import "time"

// Steering Hold Detection
// Terminals report key presses and auto-repeats but never releases
const (
	// SteerHoldInitial keeps a steer key held across the terminal's initial auto-repeat delay
	SteerHoldInitial = 300 * time.Millisecond

	// SteerHoldRepeat keeps a steer key held between auto-repeat presses
	SteerHoldRepeat = 120 * time.Millisecond
)
