// Package battle runs the round loop between two participants' rosters.
package battle

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/looplab/fsm"

	"github.com/KirkDiggler/rpg-battle/internal/engine/combat"
	"github.com/KirkDiggler/rpg-battle/internal/entities"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/participant"
	"github.com/KirkDiggler/rpg-battle/internal/roster"
)

// Config holds the dependencies for an engine
type Config struct {
	// BattleID labels events and the report
	BattleID string

	SideA *participant.Participant
	SideB *participant.Participant

	// EventBus is optional; round and battle events are published when set
	EventBus events.EventBus
}

// Validate validates the config. Rosters are optional for an engine that
// only resolves single rounds, but when both sides have one they must share a
// mode and never share a unit.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.SideA == nil {
		vb.RequiredField("side_a")
	}
	if c.SideB == nil {
		vb.RequiredField("side_b")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if c.SideA == c.SideB {
		vb.Field("side_b", "must differ from side_a")
	}

	rosterA, rosterB := c.SideA.Roster(), c.SideB.Roster()
	if rosterA == nil || rosterB == nil {
		return vb.Build()
	}

	if rosterA.Mode() != rosterB.Mode() {
		vb.Fieldf("side_b", "roster mode %s does not match side_a mode %s", rosterB.Mode(), rosterA.Mode())
	}

	inA := make(map[*entities.Unit]struct{})
	for _, u := range rosterA.Members() {
		inA[u] = struct{}{}
	}
	for _, u := range rosterB.Members() {
		if _, shared := inA[u]; shared {
			vb.Fieldf("side_b", "unit %s is already in side_a's roster", u.Name)
		}
	}

	return vb.Build()
}

// Engine fights one battle. It is the only writer of both rosters and of
// the drawn units' health and level while it runs, and is not safe for
// concurrent use.
type Engine struct {
	id       string
	sideA    *participant.Participant
	sideB    *participant.Participant
	eventBus events.EventBus
	machine  *fsm.FSM
	rounds   int
}

// New creates an engine with the given config
func New(cfg *Config) (*Engine, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	e := &Engine{
		id:       cfg.BattleID,
		sideA:    cfg.SideA,
		sideB:    cfg.SideB,
		eventBus: cfg.EventBus,
	}
	e.machine = fsm.NewFSM(
		string(StateActive),
		fsm.Events{
			{Name: eventExhaustA, Src: []string{string(StateActive)}, Dst: string(StateSideAExhausted)},
			{Name: eventExhaustB, Src: []string{string(StateActive)}, Dst: string(StateSideBExhausted)},
			{Name: eventExhaustBoth, Src: []string{string(StateActive)}, Dst: string(StateDraw)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, ev *fsm.Event) {
				slog.Debug("battle state changed",
					"battle_id", e.id,
					"from", ev.Src,
					"to", ev.Dst,
					"rounds", e.rounds)
			},
		},
	)

	return e, nil
}

// State returns the current engine state
func (e *Engine) State() State {
	return State(e.machine.Current())
}

// Mode returns the battle mode both rosters share, or "" without rosters
func (e *Engine) Mode() entities.Mode {
	if e.sideA.Roster() == nil {
		return ""
	}
	return e.sideA.Roster().Mode()
}

// Commence fights rounds until a roster runs out and reports the outcome.
// An engine commences once.
func (e *Engine) Commence(ctx context.Context) (*Report, error) {
	if e.sideA.Roster() == nil || e.sideB.Roster() == nil {
		return nil, errors.FailedPrecondition("both sides need a roster to commence")
	}
	if e.State().Terminal() {
		return nil, errors.FailedPreconditionf("battle already ended in state %s", e.State()).
			WithMeta("state", string(e.State()))
	}

	report := &Report{
		BattleID: e.id,
		Mode:     e.Mode(),
		SideA:    &SideSummary{Name: e.sideA.Name(), StartingUnits: e.sideA.Roster().Len()},
		SideB:    &SideSummary{Name: e.sideB.Name(), StartingUnits: e.sideB.Roster().Len()},
	}
	e.publish(ctx, EventBattleStarted, e.entity(), nil)

	rosterA, rosterB := e.sideA.Roster(), e.sideB.Roster()
	for {
		if event, done := exhaustion(rosterA, rosterB); done {
			if err := e.machine.Event(ctx, event); err != nil {
				return nil, errors.Wrapf(err, "failed to end battle with %s", event)
			}
			break
		}

		unitA, err := rosterA.Draw()
		if err != nil {
			return nil, errors.Wrap(err, "failed to draw from side_a")
		}
		unitB, err := rosterB.Draw()
		if err != nil {
			return nil, errors.Wrap(err, "failed to draw from side_b")
		}

		record, err := e.fight(ctx, unitA, unitB)
		if err != nil {
			return nil, err
		}

		record.ReturnedA, err = rosterA.Settle(unitA, record.Result.Verdict == combat.VerdictSideA)
		if err != nil {
			return nil, errors.Wrap(err, "failed to settle side_a unit")
		}
		record.ReturnedB, err = rosterB.Settle(unitB, record.Result.Verdict == combat.VerdictSideB)
		if err != nil {
			return nil, errors.Wrap(err, "failed to settle side_b unit")
		}

		report.Rounds = append(report.Rounds, record)
	}

	report.Outcome, _ = e.State().Outcome()
	fillSummary(report.SideA, e.sideA)
	fillSummary(report.SideB, e.sideB)

	slog.Info("battle ended",
		"battle_id", e.id,
		"mode", report.Mode,
		"outcome", report.Outcome,
		"rounds", len(report.Rounds))
	e.publish(ctx, EventBattleEnded, e.entity(), nil)

	return report, nil
}

// ResolveRound fights a single round between a unit of side A and a unit of
// side B outside the battle loop. The result is applied to both units and to
// the winner's registry; the winning unit is returned, nil when none won.
func (e *Engine) ResolveRound(ctx context.Context, a, b *entities.Unit) (*entities.Unit, error) {
	record, err := e.fight(ctx, a, b)
	if err != nil {
		return nil, err
	}

	switch record.Result.Winner() {
	case entities.SideA:
		return a, nil
	case entities.SideB:
		return b, nil
	}
	return nil, nil
}

// Round is ResolveRound returning the full record of the round
func (e *Engine) Round(ctx context.Context, a, b *entities.Unit) (*RoundRecord, error) {
	return e.fight(ctx, a, b)
}

func (e *Engine) fight(ctx context.Context, a, b *entities.Unit) (*RoundRecord, error) {
	res, err := combat.Resolve(a, b, e.sideA.CompletionRatio(), e.sideB.CompletionRatio())
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve round")
	}

	a.SetHealth(res.HealthA)
	b.SetHealth(res.HealthB)

	switch res.Winner() {
	case entities.SideA:
		if err := win(e.sideA, a); err != nil {
			return nil, err
		}
	case entities.SideB:
		if err := win(e.sideB, b); err != nil {
			return nil, err
		}
	}

	e.rounds++
	record := &RoundRecord{
		Number: e.rounds,
		UnitA:  a.Clone(),
		UnitB:  b.Clone(),
		Result: res,
	}

	slog.Debug("round resolved",
		"battle_id", e.id,
		"round", record.Number,
		"unit_a", a.Name,
		"unit_b", b.Name,
		"verdict", res.Verdict,
		"health_a", res.HealthA,
		"health_b", res.HealthB)
	e.publish(ctx, EventRoundResolved, a, b)

	return record, nil
}

func win(p *participant.Participant, u *entities.Unit) error {
	u.LevelUp()
	if err := p.Register(u.Category); err != nil {
		return errors.Wrapf(err, "failed to register %s for %s", u.Category, p.Name())
	}
	return nil
}

func exhaustion(a, b roster.Roster) (string, bool) {
	switch {
	case a.IsEmpty() && b.IsEmpty():
		return eventExhaustBoth, true
	case a.IsEmpty():
		return eventExhaustA, true
	case b.IsEmpty():
		return eventExhaustB, true
	}
	return "", false
}

func fillSummary(s *SideSummary, p *participant.Participant) {
	members := p.Roster().Members()
	s.Remaining = make([]*entities.Unit, 0, len(members))
	for _, u := range members {
		s.Remaining = append(s.Remaining, u.Clone())
	}
	s.Registry = p.Registry()
	s.CompletionRatio = p.CompletionRatio()
}

func (e *Engine) publish(ctx context.Context, eventType string, source, target core.Entity) {
	if e.eventBus == nil {
		return
	}
	if err := e.eventBus.Publish(ctx, events.NewGameEvent(eventType, source, target)); err != nil {
		slog.Warn("failed to publish battle event",
			"battle_id", e.id,
			"event", eventType,
			"error", err)
	}
}

type battleEntity struct {
	id string
}

func (b *battleEntity) GetID() string   { return b.id }
func (b *battleEntity) GetType() string { return EntityTypeBattle }

func (e *Engine) entity() core.Entity {
	return &battleEntity{id: e.id}
}
