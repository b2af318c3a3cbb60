package v1alpha1

import (
	"encoding/json"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	"github.com/KirkDiggler/rpg-battle/internal/engine/combat"
	"github.com/KirkDiggler/rpg-battle/internal/entities"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/services/assembly"
)

// SideRequest names a participant and its team
type SideRequest struct {
	Name string                   `json:"name"`
	Team *assembly.BuildTeamInput `json:"team"`
}

// CommenceBattleRequest asks for a full battle
type CommenceBattleRequest struct {
	Mode  string       `json:"mode"`
	SideA *SideRequest `json:"side_a"`
	SideB *SideRequest `json:"side_b"`
}

// CommenceBattleResponse carries the finished battle's report
type CommenceBattleResponse struct {
	Report    *battle.Report `json:"report"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// GetBattleRequest asks for a stored report
type GetBattleRequest struct {
	BattleID string `json:"battle_id"`
}

// GetBattleResponse carries a stored report
type GetBattleResponse struct {
	Report    *battle.Report `json:"report"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// ListBattlesRequest asks for a participant's recent battles
type ListBattlesRequest struct {
	ParticipantName string `json:"participant_name"`
	Limit           int    `json:"limit,omitempty"`
}

// BattleSummary is one entry of a battle history
type BattleSummary struct {
	BattleID  string           `json:"battle_id"`
	Mode      entities.Mode    `json:"mode"`
	Outcome   entities.Outcome `json:"outcome"`
	Winner    string           `json:"winner,omitempty"`
	Rounds    int              `json:"rounds"`
	CreatedAt time.Time        `json:"created_at"`
}

// ListBattlesResponse carries a battle history, newest first
type ListBattlesResponse struct {
	Battles []*BattleSummary `json:"battles"`
}

// RoundSideRequest is one side of a single round
type RoundSideRequest struct {
	Participant string            `json:"participant,omitempty"`
	Unit        assembly.UnitSpec `json:"unit"`
}

// ResolveRoundRequest asks for a single round
type ResolveRoundRequest struct {
	SideA *RoundSideRequest `json:"side_a" yaml:"side_a"`
	SideB *RoundSideRequest `json:"side_b" yaml:"side_b"`
}

// ResolveRoundResponse carries the result of a single round
type ResolveRoundResponse struct {
	Result *combat.Result `json:"result"`
	Winner entities.Side  `json:"winner,omitempty"`
	UnitA  *entities.Unit `json:"unit_a"`
	UnitB  *entities.Unit `json:"unit_b"`
	RatioA float64        `json:"ratio_a"`
	RatioB float64        `json:"ratio_b"`
}

// GetParticipantRequest asks for a participant
type GetParticipantRequest struct {
	Name string `json:"name"`
}

// GetParticipantResponse carries a participant's registry and tallies
type GetParticipantResponse struct {
	Name            string              `json:"name"`
	Registry        []entities.Category `json:"registry"`
	CompletionRatio float64             `json:"completion_ratio"`
	BattlesFought   int64               `json:"battles_fought"`
	BattlesWon      int64               `json:"battles_won"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// Encode converts a message into its wire struct
func Encode(msg interface{}) (*structpb.Struct, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to marshal message")
	}

	s := &structpb.Struct{}
	if err := protojson.Unmarshal(b, s); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to convert message")
	}
	return s, nil
}

// Decode fills msg from its wire struct. A nil struct leaves msg untouched.
func Decode(s *structpb.Struct, msg interface{}) error {
	if s == nil {
		return nil
	}

	b, err := protojson.Marshal(s)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read request")
	}
	if err := json.Unmarshal(b, msg); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed request")
	}
	return nil
}
