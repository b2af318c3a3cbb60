package battle

import (
	"time"

	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	"github.com/KirkDiggler/rpg-battle/internal/engine/combat"
	"github.com/KirkDiggler/rpg-battle/internal/entities"
	"github.com/KirkDiggler/rpg-battle/internal/repositories/participants"
	"github.com/KirkDiggler/rpg-battle/internal/services/assembly"
)

// SideInput names a participant and the team it brings
type SideInput struct {
	Name string
	Team *assembly.BuildTeamInput
}

// CommenceBattleInput defines the request for running a battle
type CommenceBattleInput struct {
	// Mode is a mode tag or alias, see entities.ParseMode
	Mode  string
	SideA *SideInput
	SideB *SideInput
}

// CommenceBattleOutput defines the response for running a battle
type CommenceBattleOutput struct {
	Report    *battle.Report
	ExpiresAt time.Time
}

// GetBattleInput defines the request for a stored battle report
type GetBattleInput struct {
	BattleID string
}

// GetBattleOutput defines the response for a stored battle report
type GetBattleOutput struct {
	Report    *battle.Report
	CreatedAt time.Time
	ExpiresAt time.Time
}

// ListBattlesInput defines the request for a participant's recent battles
type ListBattlesInput struct {
	ParticipantName string
	Limit           int
}

// BattleSummary is one line of a participant's battle history
type BattleSummary struct {
	BattleID  string
	Mode      entities.Mode
	Outcome   entities.Outcome
	Winner    string
	Rounds    int
	CreatedAt time.Time
}

// ListBattlesOutput defines the response for a participant's recent battles
type ListBattlesOutput struct {
	Battles []*BattleSummary
}

// RoundSide is one side of a single round
type RoundSide struct {
	// Participant is optional; its stored registry sets the completion ratio
	Participant string
	Unit        assembly.UnitSpec
}

// ResolveRoundInput defines the request for resolving one round
type ResolveRoundInput struct {
	SideA *RoundSide
	SideB *RoundSide
}

// ResolveRoundOutput defines the response for resolving one round
type ResolveRoundOutput struct {
	Result *combat.Result
	Winner entities.Side
	// UnitA and UnitB are the units after the result was applied
	UnitA  *entities.Unit
	UnitB  *entities.Unit
	RatioA float64
	RatioB float64
}

// GetParticipantInput defines the request for a participant
type GetParticipantInput struct {
	Name string
}

// GetParticipantOutput defines the response for a participant
type GetParticipantOutput struct {
	Participant     *participants.Data
	CompletionRatio float64
}
