// Package builders provides fluent builders for test fixtures
package builders

import (
	"github.com/KirkDiggler/rpg-battle/internal/entities"
)

// UnitBuilder builds test units
type UnitBuilder struct {
	unit *entities.Unit
}

// NewUnitBuilder starts from a healthy level 1 fire unit
func NewUnitBuilder() *UnitBuilder {
	return &UnitBuilder{
		unit: &entities.Unit{
			ID:        "unit_test_1",
			Name:      "Testling",
			Species:   "Testling",
			Category:  "fire",
			Health:    10,
			MaxHealth: 10,
			Attack:    5,
			Defence:   2,
			Speed:     5,
			Level:     1,
		},
	}
}

// WithID sets the unit ID
func (b *UnitBuilder) WithID(id string) *UnitBuilder {
	b.unit.ID = id
	return b
}

// WithName sets the name and species
func (b *UnitBuilder) WithName(name string) *UnitBuilder {
	b.unit.Name = name
	b.unit.Species = name
	return b
}

// WithCategory sets the category
func (b *UnitBuilder) WithCategory(c entities.Category) *UnitBuilder {
	b.unit.Category = c
	return b
}

// WithHealth sets current and maximum health
func (b *UnitBuilder) WithHealth(health int32) *UnitBuilder {
	b.unit.Health = health
	b.unit.MaxHealth = health
	return b
}

// WithStats sets attack, defence and speed
func (b *UnitBuilder) WithStats(attack, defence, speed int32) *UnitBuilder {
	b.unit.Attack = attack
	b.unit.Defence = defence
	b.unit.Speed = speed
	return b
}

// WithLevel sets the level
func (b *UnitBuilder) WithLevel(level int32) *UnitBuilder {
	b.unit.Level = level
	return b
}

// Fainted sets health to zero
func (b *UnitBuilder) Fainted() *UnitBuilder {
	b.unit.Health = 0
	return b
}

// Build returns a copy of the unit
func (b *UnitBuilder) Build() *entities.Unit {
	return b.unit.Clone()
}
