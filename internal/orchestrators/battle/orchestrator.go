// Package battle implements the battle orchestrator: it assembles teams,
// runs the engine, and keeps participant registries and battle reports.
package battle

//go:generate mockgen -destination=mock/mock_service.go -package=battlemock github.com/KirkDiggler/rpg-battle/internal/orchestrators/battle Service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	"github.com/KirkDiggler/rpg-battle/internal/entities"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/participant"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-battle/internal/repositories/battles"
	"github.com/KirkDiggler/rpg-battle/internal/repositories/participants"
	"github.com/KirkDiggler/rpg-battle/internal/services/assembly"
)

// Service defines the interface for battle operations
type Service interface {
	// CommenceBattle assembles both teams, fights the battle and stores the report
	CommenceBattle(ctx context.Context, input *CommenceBattleInput) (*CommenceBattleOutput, error)

	// GetBattle returns a stored battle report
	GetBattle(ctx context.Context, input *GetBattleInput) (*GetBattleOutput, error)

	// ListBattles returns a participant's recent battles, newest first
	ListBattles(ctx context.Context, input *ListBattlesInput) (*ListBattlesOutput, error)

	// ResolveRound fights a single round between two custom units. Nothing is
	// persisted.
	ResolveRound(ctx context.Context, input *ResolveRoundInput) (*ResolveRoundOutput, error)

	// GetParticipant returns a participant's registry and tallies
	GetParticipant(ctx context.Context, input *GetParticipantInput) (*GetParticipantOutput, error)
}

// Config holds the dependencies for the battle orchestrator
type Config struct {
	BattleRepo      battles.Repository
	ParticipantRepo participants.Repository
	Assembler       assembly.Service
	Universe        *entities.Universe
	IDGenerator     idgen.Generator

	// EventBus is optional and handed to every engine
	EventBus events.EventBus

	// ReportTTL defaults to battles.DefaultTTL
	ReportTTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.BattleRepo == nil {
		vb.RequiredField("BattleRepo")
	}
	if c.ParticipantRepo == nil {
		vb.RequiredField("ParticipantRepo")
	}
	if c.Assembler == nil {
		vb.RequiredField("Assembler")
	}
	if c.Universe == nil {
		vb.RequiredField("Universe")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.ReportTTL < 0 {
		vb.Field("ReportTTL", "cannot be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	battleRepo      battles.Repository
	participantRepo participants.Repository
	assembler       assembly.Service
	universe        *entities.Universe
	idGen           idgen.Generator
	eventBus        events.EventBus
	reportTTL       time.Duration
}

// New creates a new battle orchestrator with the provided dependencies
func New(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.ReportTTL
	if ttl == 0 {
		ttl = battles.DefaultTTL
	}

	return &orchestrator{
		battleRepo:      cfg.BattleRepo,
		participantRepo: cfg.ParticipantRepo,
		assembler:       cfg.Assembler,
		universe:        cfg.Universe,
		idGen:           cfg.IDGenerator,
		eventBus:        cfg.EventBus,
		reportTTL:       ttl,
	}, nil
}

// CommenceBattle runs a full battle
func (o *orchestrator) CommenceBattle(ctx context.Context, input *CommenceBattleInput) (*CommenceBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	validateSide("side_a", input.SideA, vb)
	validateSide("side_b", input.SideB, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}
	if sameName(input.SideA.Name, input.SideB.Name) {
		return nil, errors.InvalidArgument("participants must have different names").
			WithMeta("name", input.SideA.Name)
	}

	mode, err := entities.ParseMode(input.Mode)
	if err != nil {
		return nil, err
	}

	battleID := o.idGen.Generate()
	slog.Info("Battle requested",
		"battle_id", battleID,
		"mode", mode,
		"side_a", input.SideA.Name,
		"side_b", input.SideB.Name,
	)

	sideA, err := o.prepareSide(ctx, mode, input.SideA)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to prepare %s", input.SideA.Name)
	}
	sideB, err := o.prepareSide(ctx, mode, input.SideB)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to prepare %s", input.SideB.Name)
	}

	engine, err := battle.New(&battle.Config{
		BattleID: battleID,
		SideA:    sideA,
		SideB:    sideB,
		EventBus: o.eventBus,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create battle engine")
	}

	report, err := engine.Commence(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to run battle")
	}

	winner := report.Outcome.Winner()
	sides := []struct {
		side entities.Side
		p    *participant.Participant
	}{{entities.SideA, sideA}, {entities.SideB, sideB}}
	for _, s := range sides {
		_, err := o.participantRepo.Record(ctx, &participants.RecordInput{
			Name:     s.p.Name(),
			Registry: s.p.Registry(),
			Won:      winner == s.side,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to record participant %s", s.p.Name())
		}
	}

	created, err := o.battleRepo.Create(ctx, &battles.CreateInput{
		Report: report,
		TTL:    o.reportTTL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store battle report")
	}

	slog.Info("Battle completed",
		"battle_id", battleID,
		"outcome", report.Outcome,
		"winner", report.Winner(),
		"rounds", len(report.Rounds),
	)

	return &CommenceBattleOutput{
		Report:    report,
		ExpiresAt: created.Record.ExpiresAt,
	}, nil
}

// GetBattle returns a stored battle report
func (o *orchestrator) GetBattle(ctx context.Context, input *GetBattleInput) (*GetBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("battle_id", input.BattleID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, err := o.battleRepo.Get(ctx, &battles.GetInput{BattleID: input.BattleID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get battle %s", input.BattleID)
	}

	return &GetBattleOutput{
		Report:    out.Record.Report,
		CreatedAt: out.Record.CreatedAt,
		ExpiresAt: out.Record.ExpiresAt,
	}, nil
}

// ListBattles returns a participant's recent battles
func (o *orchestrator) ListBattles(ctx context.Context, input *ListBattlesInput) (*ListBattlesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("participant_name", input.ParticipantName, vb)
	errors.ValidateMin("limit", input.Limit, 0, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, err := o.battleRepo.List(ctx, &battles.ListInput{
		ParticipantName: input.ParticipantName,
		Limit:           input.Limit,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list battles for %s", input.ParticipantName)
	}

	summaries := make([]*BattleSummary, 0, len(out.Records))
	for _, rec := range out.Records {
		summaries = append(summaries, &BattleSummary{
			BattleID:  rec.ID,
			Mode:      rec.Report.Mode,
			Outcome:   rec.Report.Outcome,
			Winner:    rec.Report.Winner(),
			Rounds:    len(rec.Report.Rounds),
			CreatedAt: rec.CreatedAt,
		})
	}

	return &ListBattlesOutput{Battles: summaries}, nil
}

// ResolveRound fights a single round between two custom units
func (o *orchestrator) ResolveRound(ctx context.Context, input *ResolveRoundInput) (*ResolveRoundOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if input.SideA == nil {
		vb.RequiredField("side_a")
	}
	if input.SideB == nil {
		vb.RequiredField("side_b")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	team, err := o.assembler.BuildTeam(ctx, &assembly.BuildTeamInput{
		Units: []assembly.UnitSpec{input.SideA.Unit, input.SideB.Unit},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to build units")
	}
	unitA, unitB := team.Units[0], team.Units[1]

	sideA, err := o.roundParticipant(ctx, input.SideA.Participant, "side_a")
	if err != nil {
		return nil, err
	}
	sideB, err := o.roundParticipant(ctx, input.SideB.Participant, "side_b")
	if err != nil {
		return nil, err
	}

	engine, err := battle.New(&battle.Config{
		BattleID: o.idGen.Generate(),
		SideA:    sideA,
		SideB:    sideB,
		EventBus: o.eventBus,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create battle engine")
	}

	ratioA, ratioB := sideA.CompletionRatio(), sideB.CompletionRatio()
	record, err := engine.Round(ctx, unitA, unitB)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve round")
	}

	return &ResolveRoundOutput{
		Result: record.Result,
		Winner: record.Result.Winner(),
		UnitA:  record.UnitA,
		UnitB:  record.UnitB,
		RatioA: ratioA,
		RatioB: ratioB,
	}, nil
}

// GetParticipant returns a participant's registry and tallies
func (o *orchestrator) GetParticipant(ctx context.Context, input *GetParticipantInput) (*GetParticipantOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", input.Name, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, err := o.participantRepo.Get(ctx, &participants.GetInput{Name: input.Name})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get participant %s", input.Name)
	}

	p, err := o.newParticipant(out.Data.Name, out.Data.Registry)
	if err != nil {
		return nil, err
	}

	return &GetParticipantOutput{
		Participant:     out.Data,
		CompletionRatio: p.CompletionRatio(),
	}, nil
}

// prepareSide loads the participant's registry, builds its team and
// assembles the roster
func (o *orchestrator) prepareSide(ctx context.Context, mode entities.Mode, side *SideInput) (*participant.Participant, error) {
	registry, err := o.storedRegistry(ctx, side.Name)
	if err != nil {
		return nil, err
	}

	team, err := o.assembler.BuildTeam(ctx, side.Team)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build team")
	}

	regen, err := o.assembler.Regenerate(ctx, &assembly.RegenerateInput{
		Units: team.Units,
		Mode:  mode,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to assemble roster")
	}

	p, err := o.newParticipant(side.Name, registry)
	if err != nil {
		return nil, err
	}
	p.SetRoster(regen.Roster)

	return p, nil
}

// roundParticipant loads the named participant for a single round. An
// empty name is an anonymous participant with an empty registry.
func (o *orchestrator) roundParticipant(ctx context.Context, name, side string) (*participant.Participant, error) {
	if strings.TrimSpace(name) == "" {
		return o.newParticipant(side, nil)
	}

	registry, err := o.storedRegistry(ctx, name)
	if err != nil {
		return nil, err
	}
	return o.newParticipant(name, registry)
}

// storedRegistry returns the participant's saved registry, empty for a
// participant never seen before
func (o *orchestrator) storedRegistry(ctx context.Context, name string) ([]entities.Category, error) {
	out, err := o.participantRepo.Get(ctx, &participants.GetInput{Name: name})
	if errors.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load participant %s", name)
	}
	return out.Data.Registry, nil
}

// newParticipant drops stored categories the current universe no longer has
func (o *orchestrator) newParticipant(name string, registry []entities.Category) (*participant.Participant, error) {
	known := make([]entities.Category, 0, len(registry))
	for _, c := range registry {
		if o.universe.Contains(c) {
			known = append(known, c)
		} else {
			slog.Warn("Dropping unknown category from registry",
				"participant", name,
				"category", c,
			)
		}
	}

	p, err := participant.New(&participant.Config{
		Name:     name,
		Universe: o.universe,
		Registry: known,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create participant")
	}
	return p, nil
}

func validateSide(field string, side *SideInput, vb *errors.ValidationBuilder) {
	if side == nil {
		vb.RequiredField(field)
		return
	}
	errors.ValidateRequired(field+".name", side.Name, vb)
	if side.Team == nil {
		vb.RequiredField(field + ".team")
	}
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
