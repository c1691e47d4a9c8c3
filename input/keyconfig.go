package input

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"
)

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// specialKeyNames lists the non-rune keys a keymap may bind
var specialKeyNames = map[string]tcell.Key{
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"enter":     tcell.KeyEnter,
	"esc":       tcell.KeyEscape,
	"escape":    tcell.KeyEscape,
	"tab":       tcell.KeyTab,
	"backspace": tcell.KeyBackspace2,
	"pgup":      tcell.KeyPgUp,
	"pgdn":      tcell.KeyPgDn,
	"ctrl+c":    tcell.KeyCtrlC,
	"ctrl+q":    tcell.KeyCtrlQ,
}

// LoadKeyConfig parses TOML keymap data into a sparse override KeyTable
// Sections: [keys] for runes, [special_keys] for named keys; values are action names
// Returns error on unknown action names, invalid key names, or parse failure
func LoadKeyConfig(data []byte) (*KeyTable, error) {
	var raw map[string]any
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}

	kt := &KeyTable{}
	for name, section := range raw {
		sectionMap, ok := section.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("section [%s]: expected table, got %T", name, section)
		}

		var err error
		switch name {
		case "keys":
			kt.Runes, err = parseRuneSection(name, sectionMap)
		case "special_keys":
			kt.SpecialKeys, err = parseSpecialKeySection(name, sectionMap)
		default:
			return nil, fmt.Errorf("unknown keymap section: [%s]", name)
		}
		if err != nil {
			return nil, err
		}
	}

	return kt, nil
}

// parseRuneSection parses a TOML section of rune key → action name bindings
func parseRuneSection(section string, data map[string]any) (map[rune]KeyEntry, error) {
	result := make(map[rune]KeyEntry, len(data))

	for keyStr, val := range data {
		r, err := resolveRune(keyStr)
		if err != nil {
			return nil, fmt.Errorf("[%s] key %q: %w", section, keyStr, err)
		}

		entry, err := resolveValue(val)
		if err != nil {
			return nil, fmt.Errorf("[%s] key %q: %w", section, keyStr, err)
		}
		result[r] = entry
	}

	return result, nil
}

// parseSpecialKeySection parses a TOML section of key name → action name bindings
func parseSpecialKeySection(section string, data map[string]any) (map[tcell.Key]KeyEntry, error) {
	result := make(map[tcell.Key]KeyEntry, len(data))

	for keyStr, val := range data {
		k, ok := specialKeyNames[strings.ToLower(keyStr)]
		if !ok {
			return nil, fmt.Errorf("[%s] unknown key name: %q", section, keyStr)
		}

		entry, err := resolveValue(val)
		if err != nil {
			return nil, fmt.Errorf("[%s] key %q: %w", section, keyStr, err)
		}
		result[k] = entry
	}

	return result, nil
}

// resolveRune converts a TOML key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}

	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}

	return 0, fmt.Errorf("invalid rune key: %q (expected single character or alias)", s)
}

func resolveValue(val any) (KeyEntry, error) {
	name, ok := val.(string)
	if !ok {
		return KeyEntry{}, fmt.Errorf("value must be string, got %T", val)
	}
	name = strings.ToLower(strings.TrimSpace(name))
	entry, ok := ActionEntry(name)
	if !ok {
		return KeyEntry{}, fmt.Errorf("unknown action: %q", name)
	}
	return entry, nil
}

// MergeKeyTable returns a new KeyTable with base values overridden by non-nil override maps
// Override entries bound to "none" delete the key from the result
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	if override == nil {
		return result
	}

	for k, v := range override.Runes {
		if v.Intent == IntentNone {
			delete(result.Runes, k)
		} else {
			result.Runes[k] = v
		}
	}
	for k, v := range override.SpecialKeys {
		if v.Intent == IntentNone {
			delete(result.SpecialKeys, k)
		} else {
			result.SpecialKeys[k] = v
		}
	}

	return result
}
