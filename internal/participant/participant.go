// Package participant models one side of a battle: a named owner of a roster
// and of the registry of unit categories it has won with.
package participant

import (
	"math"
	"sort"
	"strings"

	"github.com/KirkDiggler/rpg-battle/internal/entities"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/roster"
)

// Config holds the dependencies for a participant
type Config struct {
	Name     string
	Universe *entities.Universe

	// Roster is optional and can be attached later with SetRoster
	Roster roster.Roster

	// Registry seeds categories seen in earlier battles
	Registry []entities.Category
}

// Validate validates the config
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("name", c.Name, vb)
	if c.Universe == nil {
		vb.RequiredField("universe")
	} else {
		for _, cat := range c.Registry {
			if !c.Universe.Contains(cat) {
				vb.InvalidField("registry", "category "+string(cat)+" is not in the universe")
			}
		}
	}

	return vb.Build()
}

// Participant owns a roster and a category registry. The registry only
// grows, so the completion ratio never decreases.
type Participant struct {
	name     string
	universe *entities.Universe
	roster   roster.Roster
	registry map[entities.Category]struct{}
}

// New creates a participant with the given config
func New(cfg *Config) (*Participant, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	p := &Participant{
		name:     strings.TrimSpace(cfg.Name),
		universe: cfg.Universe,
		roster:   cfg.Roster,
		registry: make(map[entities.Category]struct{}, cfg.Universe.Size()),
	}
	for _, cat := range cfg.Registry {
		p.registry[entities.NormalizeCategory(cat)] = struct{}{}
	}

	return p, nil
}

// Name returns the participant's name
func (p *Participant) Name() string {
	return p.name
}

// Roster returns the roster under the caller's exclusive use
func (p *Participant) Roster() roster.Roster {
	return p.roster
}

// SetRoster replaces the roster, typically after re-assembly between battles
func (p *Participant) SetRoster(r roster.Roster) {
	p.roster = r
}

// Register records a category won with. Unknown categories are rejected.
func (p *Participant) Register(cat entities.Category) error {
	if !p.universe.Contains(cat) {
		return errors.InvalidArgumentf("category %q is not in the universe", cat).
			WithMeta("category", string(cat))
	}
	p.registry[entities.NormalizeCategory(cat)] = struct{}{}
	return nil
}

// HasSeen reports whether cat is in the registry
func (p *Participant) HasSeen(cat entities.Category) bool {
	_, ok := p.registry[entities.NormalizeCategory(cat)]
	return ok
}

// Registry returns the registered categories in name order
func (p *Participant) Registry() []entities.Category {
	out := make([]entities.Category, 0, len(p.registry))
	for cat := range p.registry {
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CompletionRatio is |registry| / |universe| rounded to two decimals
func (p *Participant) CompletionRatio() float64 {
	ratio := float64(len(p.registry)) / float64(p.universe.Size())
	return math.Round(ratio*100) / 100
}
