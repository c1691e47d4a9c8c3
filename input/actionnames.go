package input

import "github.com/lixenwraith/swimrace/components"

// actionRegistry maps canonical action names to KeyEntry structs
// Used by keymap config loader to resolve TOML action strings to bindings
var actionRegistry map[string]KeyEntry

func init() {
	actionRegistry = buildActionRegistry()
}

func buildActionRegistry() map[string]KeyEntry {
	reg := map[string]KeyEntry{
		// Unbind sentinel
		"none": {},

		"quit":        {Intent: IntentQuit},
		"toggle_mute": {Intent: IntentToggleMute},
		"start":       {Intent: IntentStart},
		"steer_up":    {Intent: IntentSteerUp},
		"steer_down":  {Intent: IntentSteerDown},
	}

	// powerup_<id> per catalogue entry, e.g. powerup_shield
	for _, info := range components.PowerUpCatalog {
		reg["powerup_"+info.ID] = KeyEntry{Intent: IntentPowerUp, PowerUp: info.Kind}
	}
	return reg
}

// ActionEntry returns the binding for an action name
func ActionEntry(name string) (KeyEntry, bool) {
	e, ok := actionRegistry[name]
	return e, ok
}
