// Package entities provides the core data structures for rpg-battle.
package entities

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// LevelIncrement is how many levels a unit gains for winning a round
const LevelIncrement int32 = 1

// MaxStat bounds unit health, attack, defence and speed
const MaxStat int32 = 1_000_000

// EntityTypeUnit is the rpg-toolkit entity type reported by Unit
const EntityTypeUnit = "unit"

// Unit is a single combatant owned by one roster at a time.
// Health is kept within [0, MaxHealth].
type Unit struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Species   string   `json:"species,omitempty"`
	Category  Category `json:"category"`
	Health    int32    `json:"health"`
	MaxHealth int32    `json:"max_health"`
	Attack    int32    `json:"attack"`
	Defence   int32    `json:"defence"`
	Speed     int32    `json:"speed"`
	Level     int32    `json:"level"`
}

// GetID implements core.Entity
func (u *Unit) GetID() string {
	return u.ID
}

// GetType implements core.Entity
func (u *Unit) GetType() string {
	return EntityTypeUnit
}

// IsFainted reports whether the unit has no health left
func (u *Unit) IsFainted() bool {
	return u.Health <= 0
}

// SetHealth stores value clamped to [0, MaxHealth]
func (u *Unit) SetHealth(value int32) {
	switch {
	case value < 0:
		u.Health = 0
	case value > u.MaxHealth:
		u.Health = u.MaxHealth
	default:
		u.Health = value
	}
}

// LevelUp adds LevelIncrement to the unit's level
func (u *Unit) LevelUp() {
	u.Level += LevelIncrement
}

// Regenerate restores the unit to full health
func (u *Unit) Regenerate() {
	u.Health = u.MaxHealth
}

// Clone returns an independent copy of the unit
func (u *Unit) Clone() *Unit {
	c := *u
	return &c
}

// String implements fmt.Stringer
func (u *Unit) String() string {
	return fmt.Sprintf("%s[%s] lv%d %d/%d hp", u.Name, u.Category, u.Level, u.Health, u.MaxHealth)
}

var _ core.Entity = (*Unit)(nil)
