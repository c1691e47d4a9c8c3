package input

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/swimrace/constants"
)

// holdState tracks one steering direction from press timestamps
type holdState struct {
	lastPress time.Time
	until     time.Time
}

func (h *holdState) press(now time.Time) {
	window := constants.SteerHoldInitial
	if !h.lastPress.IsZero() && now.Before(h.until) {
		// Auto-repeat arrived while held
		window = constants.SteerHoldRepeat
	}
	h.lastPress = now
	h.until = now.Add(window)
}

func (h *holdState) release() {
	h.until = time.Time{}
}

func (h *holdState) held(now time.Time) bool {
	return now.Before(h.until)
}

// Machine parses tcell events into intents and tracks held steering keys
// Not safe for concurrent use; owned by the host's event goroutine
type Machine struct {
	keyTable *KeyTable
	up       holdState
	down     holdState
}

// NewMachine creates a new input machine; nil selects the default bindings
func NewMachine(kt *KeyTable) *Machine {
	if kt == nil {
		kt = DefaultKeyTable()
	}
	return &Machine{keyTable: kt}
}

// Process parses a terminal event and returns an Intent
// Returns nil for unbound keys and ignored events
func (m *Machine) Process(ev tcell.Event) *Intent {
	return m.process(ev, ev.When())
}

func (m *Machine) process(ev tcell.Event, now time.Time) *Intent {
	switch e := ev.(type) {
	case *tcell.EventResize:
		return &Intent{Type: IntentResize}
	case *tcell.EventError:
		return &Intent{Type: IntentQuit}
	case *tcell.EventKey:
		return m.processKey(e, now)
	}
	return nil
}

func (m *Machine) processKey(ev *tcell.EventKey, now time.Time) *Intent {
	entry, ok := m.keyTable.Lookup(ev)
	if !ok || entry.Intent == IntentNone {
		return nil
	}

	switch entry.Intent {
	case IntentSteerUp:
		m.up.press(now)
		m.down.release()
	case IntentSteerDown:
		m.down.press(now)
		m.up.release()
	}

	return &Intent{Type: entry.Intent, PowerUp: entry.PowerUp}
}

// Held reports the steering keys considered held at now
func (m *Machine) Held(now time.Time) (up, down bool) {
	return m.up.held(now), m.down.held(now)
}

// Release drops both steering holds, used when the race leaves the racing state
func (m *Machine) Release() {
	m.up.release()
	m.down.release()
}
