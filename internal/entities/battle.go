package entities

import (
	"strings"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// Mode selects the roster discipline for a battle
type Mode string

// Battle modes
const (
	// ModeSequential draws from a stack, the winner goes back on top
	ModeSequential Mode = "set"
	// ModeRotating draws from a queue, survivors go to the back
	ModeRotating Mode = "rotate"
	// ModePriorityByLevel draws the lowest level first
	ModePriorityByLevel Mode = "optimise"
)

var modeAliases = map[string]Mode{
	"set":        ModeSequential,
	"sequential": ModeSequential,
	"rotate":     ModeRotating,
	"rotating":   ModeRotating,
	"optimise":   ModePriorityByLevel,
	"optimize":   ModePriorityByLevel,
	"priority":   ModePriorityByLevel,
}

// Modes lists the canonical mode tags
func Modes() []Mode {
	return []Mode{ModeSequential, ModeRotating, ModePriorityByLevel}
}

// ParseMode resolves a mode tag or alias. Unknown tags are an
// InvalidArgument error, never a default.
func ParseMode(tag string) (Mode, error) {
	if m, ok := modeAliases[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return m, nil
	}
	return "", errors.InvalidArgumentf("invalid battle mode %q", tag).
		WithMeta("mode", tag)
}

// Valid reports whether m is one of the canonical modes
func (m Mode) Valid() bool {
	switch m {
	case ModeSequential, ModeRotating, ModePriorityByLevel:
		return true
	}
	return false
}

// String implements fmt.Stringer
func (m Mode) String() string {
	return string(m)
}

// Side identifies one of the two participants
type Side string

// Battle sides
const (
	SideA Side = "a"
	SideB Side = "b"
)

// Outcome is the final result of a battle
type Outcome string

// Battle outcomes
const (
	OutcomeSideAWins Outcome = "side_a_wins"
	OutcomeSideBWins Outcome = "side_b_wins"
	OutcomeDraw      Outcome = "draw"
)

// Winner returns the winning side, or "" for a draw
func (o Outcome) Winner() Side {
	switch o {
	case OutcomeSideAWins:
		return SideA
	case OutcomeSideBWins:
		return SideB
	}
	return ""
}
