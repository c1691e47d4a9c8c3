package input

import (
	"maps"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/swimrace/components"
)

// KeyEntry describes a key's action without function pointers
// The zero value is the unbound entry
type KeyEntry struct {
	Intent  IntentType
	PowerUp components.PowerUpKind
}

// KeyTable maps keys to actions
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Enter, Esc)
	SpecialKeys map[tcell.Key]KeyEntry

	// Printable rune bindings
	Runes map[rune]KeyEntry
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	kt := &KeyTable{
		SpecialKeys: map[tcell.Key]KeyEntry{
			tcell.KeyCtrlC:  {Intent: IntentQuit},
			tcell.KeyEscape: {Intent: IntentQuit},
			tcell.KeyEnter:  {Intent: IntentStart},
			tcell.KeyUp:     {Intent: IntentSteerUp},
			tcell.KeyDown:   {Intent: IntentSteerDown},
		},

		Runes: map[rune]KeyEntry{
			'q': {Intent: IntentQuit},
			'm': {Intent: IntentToggleMute},
			' ': {Intent: IntentStart},
			'k': {Intent: IntentSteerUp},
			'w': {Intent: IntentSteerUp},
			'j': {Intent: IntentSteerDown},
			's': {Intent: IntentSteerDown},
		},
	}

	for _, info := range components.PowerUpCatalog {
		kt.Runes[info.Hotkey] = KeyEntry{Intent: IntentPowerUp, PowerUp: info.Kind}
	}
	return kt
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{
		SpecialKeys: maps.Clone(kt.SpecialKeys),
		Runes:       maps.Clone(kt.Runes),
	}
}

// Lookup resolves a key event against the table
func (kt *KeyTable) Lookup(ev *tcell.EventKey) (KeyEntry, bool) {
	if ev.Key() == tcell.KeyRune {
		e, ok := kt.Runes[ev.Rune()]
		return e, ok
	}
	e, ok := kt.SpecialKeys[ev.Key()]
	return e, ok
}
