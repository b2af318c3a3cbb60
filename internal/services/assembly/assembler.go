package assembly

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-battle/internal/config"
	"github.com/KirkDiggler/rpg-battle/internal/entities"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-battle/internal/roster"
)

// Config holds the dependencies for the assembler
type Config struct {
	GameData    *config.GameData
	Roller      dice.Roller
	IDGenerator idgen.Generator
}

// Validate validates the config
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.GameData == nil {
		vb.RequiredField("game_data")
	}
	if c.Roller == nil {
		vb.RequiredField("roller")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("id_generator")
	}
	return vb.Build()
}

type assembler struct {
	gameData *config.GameData
	roller   dice.Roller
	idGen    idgen.Generator
}

// New creates an assembly service
func New(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &assembler{
		gameData: cfg.GameData,
		roller:   cfg.Roller,
		idGen:    cfg.IDGenerator,
	}, nil
}

func (a *assembler) BuildTeam(ctx context.Context, input *BuildTeamInput) (*BuildTeamOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if input.RandomCount < 0 {
		vb.Field("random_count", "cannot be negative")
	}
	errors.ValidateRange("team_size", input.Size(), 1, roster.Capacity, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	units := make([]*entities.Unit, 0, input.Size())
	for i, spec := range input.Units {
		u, err := a.fromSpec(spec)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid unit %d", i)
		}
		units = append(units, u)
	}

	for _, name := range input.Species {
		sp, ok := a.gameData.Lookup(name)
		if !ok {
			return nil, errors.NotFoundf("species %q not found", name).WithMeta("species", name)
		}
		units = append(units, a.fromSpecies(sp))
	}

	for i := 0; i < input.RandomCount; i++ {
		sp, err := a.randomSpecies()
		if err != nil {
			return nil, err
		}
		units = append(units, a.fromSpecies(sp))
	}

	slog.DebugContext(ctx, "team built",
		"custom", len(input.Units),
		"species", len(input.Species),
		"random", input.RandomCount)

	return &BuildTeamOutput{Units: units}, nil
}

func (a *assembler) Regenerate(_ context.Context, input *RegenerateInput) (*RegenerateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	for _, u := range input.Units {
		if u == nil {
			return nil, errors.InvalidArgument("unit is required")
		}
		u.Regenerate()
	}

	r, err := roster.Assemble(input.Mode, input.Units)
	if err != nil {
		return nil, errors.Wrap(err, "failed to assemble roster")
	}

	return &RegenerateOutput{Roster: r}, nil
}

func (a *assembler) fromSpec(spec UnitSpec) (*entities.Unit, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", spec.Name, vb)
	if !a.gameData.Universe().Contains(spec.Category) {
		vb.InvalidField("category", "unknown category "+string(spec.Category))
	}
	errors.ValidateRange("health", int(spec.Health), 1, int(entities.MaxStat), vb)
	errors.ValidateRange("attack", int(spec.Attack), 0, int(entities.MaxStat), vb)
	errors.ValidateRange("defence", int(spec.Defence), 0, int(entities.MaxStat), vb)
	errors.ValidateRange("speed", int(spec.Speed), 0, int(entities.MaxStat), vb)
	errors.ValidateMin("level", int(spec.Level), 0, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	level := spec.Level
	if level == 0 {
		level = 1
	}

	return &entities.Unit{
		ID:        a.idGen.Generate(),
		Name:      strings.TrimSpace(spec.Name),
		Category:  entities.NormalizeCategory(spec.Category),
		Health:    spec.Health,
		MaxHealth: spec.Health,
		Attack:    spec.Attack,
		Defence:   spec.Defence,
		Speed:     spec.Speed,
		Level:     level,
	}, nil
}

func (a *assembler) fromSpecies(sp *config.Species) *entities.Unit {
	return &entities.Unit{
		ID:        a.idGen.Generate(),
		Name:      sp.Name,
		Species:   sp.Name,
		Category:  entities.NormalizeCategory(entities.Category(sp.Category)),
		Health:    sp.Health,
		MaxHealth: sp.Health,
		Attack:    sp.Attack,
		Defence:   sp.Defence,
		Speed:     sp.Speed,
		Level:     sp.Level,
	}
}

// randomSpecies rolls a die with one face per species
func (a *assembler) randomSpecies() (*config.Species, error) {
	species := a.gameData.Species
	roll, err := a.roller.Roll(len(species))
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll for species")
	}
	if roll < 1 || roll > len(species) {
		return nil, errors.Internalf("roll %d outside 1..%d", roll, len(species))
	}

	sp := species[roll-1]
	return &sp, nil
}
