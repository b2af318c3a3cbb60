// Package assembly builds the units a participant brings to a battle and
// resets them between battles.
package assembly

import (
	"context"

	"github.com/KirkDiggler/rpg-battle/internal/entities"
	"github.com/KirkDiggler/rpg-battle/internal/roster"
)

//go:generate mockgen -destination=mock/mock_service.go -package=assemblymock github.com/KirkDiggler/rpg-battle/internal/services/assembly Service

// Service defines roster assembly
type Service interface {
	// BuildTeam creates units from custom stats, named species and random
	// species picks, in that order
	BuildTeam(ctx context.Context, input *BuildTeamInput) (*BuildTeamOutput, error)

	// Regenerate restores every unit to full health and assembles them into a
	// fresh roster for mode
	Regenerate(ctx context.Context, input *RegenerateInput) (*RegenerateOutput, error)
}

// UnitSpec describes a custom unit
type UnitSpec struct {
	Name     string            `json:"name"`
	Category entities.Category `json:"category"`
	Health   int32             `json:"health"`
	Attack   int32             `json:"attack"`
	Defence  int32             `json:"defence"`
	Speed    int32             `json:"speed"`
	Level    int32             `json:"level,omitempty"`
}

// BuildTeamInput contains the picks for one team
type BuildTeamInput struct {
	Units       []UnitSpec `json:"units,omitempty"`
	Species     []string   `json:"species,omitempty"`
	RandomCount int        `json:"random_count,omitempty"`
}

// Size is the number of units the input asks for
func (i *BuildTeamInput) Size() int {
	return len(i.Units) + len(i.Species) + i.RandomCount
}

// BuildTeamOutput contains the units in team order
type BuildTeamOutput struct {
	Units []*entities.Unit `json:"units"`
}

// RegenerateInput contains the units to reset
type RegenerateInput struct {
	Units []*entities.Unit
	Mode  entities.Mode
}

// RegenerateOutput contains the re-assembled roster
type RegenerateOutput struct {
	Roster roster.Roster
}
