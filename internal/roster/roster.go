// Package roster implements the bounded unit containers a participant draws
// from during a battle. Each battle mode has its own discipline; the battle
// engine only ever sees the Roster interface.
package roster

import (
	"github.com/KirkDiggler/rpg-battle/internal/entities"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// Capacity is the maximum number of units a roster holds
const Capacity = 6

// Roster is a bounded, ordered collection of units. Implementations are not
// safe for concurrent use; a battle engine owns a roster exclusively.
type Roster interface {
	// Mode returns the discipline this roster was assembled under
	Mode() entities.Mode

	// Draw removes and returns the next unit. An empty roster returns an
	// OutOfRange error, see IsEmptyRoster.
	Draw() (*entities.Unit, error)

	// ReturnMember puts a living unit back according to the discipline
	ReturnMember(unit *entities.Unit) error

	// Settle applies the mode's return policy to a unit after a round and
	// reports whether it went back into the roster
	Settle(unit *entities.Unit, won bool) (bool, error)

	// Len returns the number of units held
	Len() int

	// IsEmpty reports whether no unit remains
	IsEmpty() bool

	// Members returns the units in draw order without removing them
	Members() []*entities.Unit
}

// Assemble builds a roster for mode from units given in team order, the
// first unit being the team's front.
func Assemble(mode entities.Mode, units []*entities.Unit) (Roster, error) {
	if err := validateMembers(units); err != nil {
		return nil, err
	}

	switch mode {
	case entities.ModeSequential:
		return newSequential(units), nil
	case entities.ModeRotating:
		return newRotating(units), nil
	case entities.ModePriorityByLevel:
		return newPriority(units), nil
	default:
		return nil, errors.InvalidArgumentf("invalid battle mode %q", mode).
			WithMeta("mode", string(mode))
	}
}

// IsEmptyRoster reports whether err signals a draw from an empty roster
func IsEmptyRoster(err error) bool {
	return errors.IsOutOfRange(err)
}

func emptyRosterError() error {
	return errors.OutOfRange("roster is empty")
}

func fullRosterError() error {
	return errors.ResourceExhaustedf("roster is full (capacity %d)", Capacity).
		WithMeta("capacity", Capacity)
}

func validateMembers(units []*entities.Unit) error {
	if len(units) > Capacity {
		return errors.ResourceExhaustedf("roster holds at most %d units, got %d", Capacity, len(units)).
			WithMeta("capacity", Capacity)
	}

	seen := make(map[*entities.Unit]struct{}, len(units))
	for i, u := range units {
		if u == nil {
			return errors.InvalidArgumentf("unit %d is nil", i)
		}
		if u.IsFainted() {
			return errors.InvalidArgumentf("unit %s has fainted", u.Name).WithMeta("unit_id", u.ID)
		}
		if _, dup := seen[u]; dup {
			return errors.InvalidArgumentf("unit %s appears twice", u.Name).WithMeta("unit_id", u.ID)
		}
		seen[u] = struct{}{}
	}
	return nil
}

func validateReturn(unit *entities.Unit, size int) error {
	if unit == nil {
		return errors.InvalidArgument("unit is required")
	}
	if unit.IsFainted() {
		return errors.InvalidArgumentf("fainted unit %s cannot return to a roster", unit.Name).
			WithMeta("unit_id", unit.ID)
	}
	if size >= Capacity {
		return fullRosterError()
	}
	return nil
}

// settle holds the policy shared by every discipline: fainted units are
// discarded, living units go back when keep allows it.
func settle(r Roster, unit *entities.Unit, keep bool) (bool, error) {
	if unit == nil {
		return false, errors.InvalidArgument("unit is required")
	}
	if unit.IsFainted() || !keep {
		return false, nil
	}
	if err := r.ReturnMember(unit); err != nil {
		return false, err
	}
	return true, nil
}
