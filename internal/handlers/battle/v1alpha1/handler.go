package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/orchestrators/battle"
)

// HandlerConfig holds dependencies for the battle handler
type HandlerConfig struct {
	BattleService battle.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.BattleService == nil {
		return errors.InvalidArgument("battle service is required")
	}
	return nil
}

// Handler implements the battle gRPC service
type Handler struct {
	battleService battle.Service
}

var _ BattleServiceServer = (*Handler)(nil)

// NewHandler creates a new battle handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		battleService: cfg.BattleService,
	}, nil
}

// CommenceBattle runs a full battle between two participants
func (h *Handler) CommenceBattle(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req := &CommenceBattleRequest{}
	if err := Decode(in, req); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	input := &battle.CommenceBattleInput{Mode: req.Mode}
	if req.SideA != nil {
		input.SideA = &battle.SideInput{Name: req.SideA.Name, Team: req.SideA.Team}
	}
	if req.SideB != nil {
		input.SideB = &battle.SideInput{Name: req.SideB.Name, Team: req.SideB.Team}
	}

	out, err := h.battleService.CommenceBattle(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&CommenceBattleResponse{
		Report:    out.Report,
		ExpiresAt: out.ExpiresAt,
	})
}

// GetBattle returns a stored battle report
func (h *Handler) GetBattle(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req := &GetBattleRequest{}
	if err := Decode(in, req); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if req.BattleID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("battle_id is required"))
	}

	out, err := h.battleService.GetBattle(ctx, &battle.GetBattleInput{BattleID: req.BattleID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&GetBattleResponse{
		Report:    out.Report,
		CreatedAt: out.CreatedAt,
		ExpiresAt: out.ExpiresAt,
	})
}

// ListBattles returns a participant's recent battles
func (h *Handler) ListBattles(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req := &ListBattlesRequest{}
	if err := Decode(in, req); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if req.ParticipantName == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("participant_name is required"))
	}

	out, err := h.battleService.ListBattles(ctx, &battle.ListBattlesInput{
		ParticipantName: req.ParticipantName,
		Limit:           req.Limit,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&ListBattlesResponse{Battles: ConvertSummaries(out.Battles)})
}

// ResolveRound fights a single round between two units
func (h *Handler) ResolveRound(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req := &ResolveRoundRequest{}
	if err := Decode(in, req); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	input := &battle.ResolveRoundInput{}
	if req.SideA != nil {
		input.SideA = &battle.RoundSide{Participant: req.SideA.Participant, Unit: req.SideA.Unit}
	}
	if req.SideB != nil {
		input.SideB = &battle.RoundSide{Participant: req.SideB.Participant, Unit: req.SideB.Unit}
	}

	out, err := h.battleService.ResolveRound(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&ResolveRoundResponse{
		Result: out.Result,
		Winner: out.Winner,
		UnitA:  out.UnitA,
		UnitB:  out.UnitB,
		RatioA: out.RatioA,
		RatioB: out.RatioB,
	})
}

// GetParticipant returns a participant's registry and tallies
func (h *Handler) GetParticipant(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req := &GetParticipantRequest{}
	if err := Decode(in, req); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if req.Name == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("name is required"))
	}

	out, err := h.battleService.GetParticipant(ctx, &battle.GetParticipantInput{Name: req.Name})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(ConvertParticipant(out))
}

// ConvertSummaries converts orchestrator summaries to their wire form
func ConvertSummaries(in []*battle.BattleSummary) []*BattleSummary {
	out := make([]*BattleSummary, 0, len(in))
	for _, b := range in {
		out = append(out, &BattleSummary{
			BattleID:  b.BattleID,
			Mode:      b.Mode,
			Outcome:   b.Outcome,
			Winner:    b.Winner,
			Rounds:    b.Rounds,
			CreatedAt: b.CreatedAt,
		})
	}
	return out
}

// ConvertParticipant converts a participant to its wire form
func ConvertParticipant(out *battle.GetParticipantOutput) *GetParticipantResponse {
	p := out.Participant
	return &GetParticipantResponse{
		Name:            p.Name,
		Registry:        p.Registry,
		CompletionRatio: out.CompletionRatio,
		BattlesFought:   p.BattlesFought,
		BattlesWon:      p.BattlesWon,
		UpdatedAt:       p.UpdatedAt,
	}
}

func respond(msg interface{}) (*structpb.Struct, error) {
	s, err := Encode(msg)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return s, nil
}
