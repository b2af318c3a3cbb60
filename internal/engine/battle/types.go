package battle

import (
	"github.com/KirkDiggler/rpg-battle/internal/engine/combat"
	"github.com/KirkDiggler/rpg-battle/internal/entities"
)

// State is a battle engine state
type State string

// Engine states. Every state but StateActive is terminal.
const (
	StateActive         State = "active"
	StateSideAExhausted State = "side_a_exhausted"
	StateSideBExhausted State = "side_b_exhausted"
	StateDraw           State = "draw"
)

// Terminal reports whether no further rounds can be fought
func (s State) Terminal() bool {
	return s != StateActive
}

// Outcome maps a terminal state to the battle outcome
func (s State) Outcome() (entities.Outcome, bool) {
	switch s {
	case StateSideAExhausted:
		return entities.OutcomeSideBWins, true
	case StateSideBExhausted:
		return entities.OutcomeSideAWins, true
	case StateDraw:
		return entities.OutcomeDraw, true
	}
	return "", false
}

const (
	eventExhaustA    = "exhaust_a"
	eventExhaustB    = "exhaust_b"
	eventExhaustBoth = "exhaust_both"
)

// Event types published on the event bus
const (
	EventBattleStarted = "battle.started"
	EventRoundResolved = "battle.round_resolved"
	EventBattleEnded   = "battle.ended"
)

// EntityTypeBattle is the rpg-toolkit entity type of a battle
const EntityTypeBattle = "battle"

// RoundRecord is what happened in one round. Units are snapshots taken after
// the result was applied.
type RoundRecord struct {
	Number    int            `json:"number"`
	UnitA     *entities.Unit `json:"unit_a"`
	UnitB     *entities.Unit `json:"unit_b"`
	Result    *combat.Result `json:"result"`
	ReturnedA bool           `json:"returned_a"`
	ReturnedB bool           `json:"returned_b"`
}

// SideSummary describes one participant at the end of a battle
type SideSummary struct {
	Name            string              `json:"name"`
	StartingUnits   int                 `json:"starting_units"`
	Remaining       []*entities.Unit    `json:"remaining"`
	Registry        []entities.Category `json:"registry"`
	CompletionRatio float64             `json:"completion_ratio"`
}

// Report is the full account of a commenced battle
type Report struct {
	BattleID string           `json:"battle_id"`
	Mode     entities.Mode    `json:"mode"`
	Outcome  entities.Outcome `json:"outcome"`
	SideA    *SideSummary     `json:"side_a"`
	SideB    *SideSummary     `json:"side_b"`
	Rounds   []*RoundRecord   `json:"rounds"`
}

// Winner returns the name of the winning participant, or "" for a draw
func (r *Report) Winner() string {
	switch r.Outcome.Winner() {
	case entities.SideA:
		return r.SideA.Name
	case entities.SideB:
		return r.SideB.Name
	}
	return ""
}
