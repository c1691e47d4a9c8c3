package input

import "github.com/lixenwraith/swimrace/components"

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit       // q, Esc, Ctrl+C
	IntentToggleMute // m
	IntentResize     // Terminal resize event

	// Race intents
	IntentStart     // Enter, Space
	IntentSteerUp   // Up, k, w
	IntentSteerDown // Down, j, s
	IntentPowerUp   // 1-6
)

// Intent represents a parsed semantic action
type Intent struct {
	Type    IntentType
	PowerUp components.PowerUpKind // Valid for IntentPowerUp
}
