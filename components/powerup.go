package components

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// PowerUpKind identifies a consumable bought in the shop
type PowerUpKind uint8

const (
	PowerUpDoubleSpeed PowerUpKind = iota
	PowerUpSpeedBoost
	PowerUpShield
	PowerUpSlowEnemies
	PowerUpInstantBoost
	PowerUpMagnet
	powerUpKindCount
)

// PowerUpInfo is the catalogue entry for a power-up kind
type PowerUpInfo struct {
	Kind        PowerUpKind
	ID          string // Stable id shared with the shop
	Name        string
	Description string
	Cost        int
	Hotkey      rune
	Group       bool // Targets all non-player racers instead of the player
}

// PowerUpCatalog lists every power-up in hotkey order
var PowerUpCatalog = [powerUpKindCount]PowerUpInfo{
	{PowerUpDoubleSpeed, "doubleSpeed", "Double Speed", "2x speed for 2 seconds", 50, '1', false},
	{PowerUpSpeedBoost, "speedBoost", "Speed Boost", "1.5x speed for 1.5 seconds", 30, '2', false},
	{PowerUpShield, "shield", "Shield", "Ignore next obstacle hit", 40, '3', false},
	{PowerUpSlowEnemies, "slowEnemies", "Slow Enemies", "Slow all enemies for 2 seconds", 60, '4', true},
	{PowerUpInstantBoost, "instantBoost", "Instant Boost", "Instant speed burst", 25, '5', false},
	{PowerUpMagnet, "magnet", "Magnet", "Attract boosters from distance", 35, '6', false},
}

// AllPowerUps returns every kind in catalogue order
func AllPowerUps() []PowerUpKind {
	kinds := make([]PowerUpKind, 0, powerUpKindCount)
	for k := PowerUpKind(0); k < powerUpKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Valid reports whether k is a known kind
func (k PowerUpKind) Valid() bool {
	return k < powerUpKindCount
}

// Info returns the catalogue entry for k
func (k PowerUpKind) Info() PowerUpInfo {
	if !k.Valid() {
		return PowerUpInfo{Kind: k, ID: "unknown", Name: "Unknown"}
	}
	return PowerUpCatalog[k]
}

// String returns the stable shop id
func (k PowerUpKind) String() string {
	return k.Info().ID
}

// MarshalText encodes the kind as its shop id
func (k PowerUpKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("unknown power-up kind %d", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a shop id
func (k *PowerUpKind) UnmarshalText(text []byte) error {
	parsed, err := ParsePowerUpKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParsePowerUpKind resolves a shop id such as "slowEnemies"
func ParsePowerUpKind(id string) (PowerUpKind, error) {
	for _, info := range PowerUpCatalog {
		if info.ID == id {
			return info.Kind, nil
		}
	}
	return 0, fmt.Errorf("unknown power-up %q", id)
}

// PowerUpForHotkey resolves a HUD hotkey
func PowerUpForHotkey(r rune) (PowerUpKind, bool) {
	for _, info := range PowerUpCatalog {
		if info.Hotkey == r {
			return info.Kind, true
		}
	}
	return 0, false
}

// Inventory maps power-up kinds to owned quantity
// Quantities never drop below zero
type Inventory struct {
	counts [powerUpKindCount]int
}

// NewInventory builds an inventory from a purchase record
// Negative quantities clamp to zero, unknown kinds are dropped
func NewInventory(purchased map[PowerUpKind]int) *Inventory {
	inv := &Inventory{}
	for k, qty := range purchased {
		if !k.Valid() || qty <= 0 {
			continue
		}
		inv.counts[k] = qty
	}
	return inv
}

// Count returns the owned quantity of k
func (inv *Inventory) Count(k PowerUpKind) int {
	if inv == nil || !k.Valid() {
		return 0
	}
	return inv.counts[k]
}

// Take removes one unit of k, returns false if none were owned
func (inv *Inventory) Take(k PowerUpKind) bool {
	if inv == nil || !k.Valid() || inv.counts[k] <= 0 {
		return false
	}
	inv.counts[k]--
	return true
}

// Map returns a copy keyed by shop id, zero quantities omitted
func (inv *Inventory) Map() map[string]int {
	out := make(map[string]int)
	if inv == nil {
		return out
	}
	for k, qty := range inv.counts {
		if qty > 0 {
			out[PowerUpKind(k).String()] = qty
		}
	}
	return out
}

// Clone returns an independent copy
func (inv *Inventory) Clone() *Inventory {
	if inv == nil {
		return &Inventory{}
	}
	c := *inv
	return &c
}

// Total returns the number of units owned across all kinds
func (inv *Inventory) Total() int {
	if inv == nil {
		return 0
	}
	total := 0
	for _, qty := range inv.counts {
		total += qty
	}
	return total
}

// ParseInventory parses "shield=1,magnet=2" into a purchase record
// A bare id counts as one unit. Unknown ids are reported in skipped rather than failing the record
func ParseInventory(spec string) (purchased map[PowerUpKind]int, skipped []string, err error) {
	purchased = make(map[PowerUpKind]int)

	for _, field := range strings.Split(spec, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		id, qtyText, hasQty := strings.Cut(field, "=")
		id = strings.TrimSpace(id)
		qty := 1
		if hasQty {
			qty, err = strconv.Atoi(strings.TrimSpace(qtyText))
			if err != nil {
				return nil, nil, fmt.Errorf("power-up %q: bad quantity: %w", id, err)
			}
		}

		kind, parseErr := ParsePowerUpKind(id)
		if parseErr != nil {
			skipped = append(skipped, id)
			continue
		}
		purchased[kind] += qty
	}

	sort.Strings(skipped)
	return purchased, skipped, nil
}
