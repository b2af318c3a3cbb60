// Package config loads the game data a battle server runs with: the
// category universe and the species templates rosters are assembled from.
package config

import (
	_ "embed"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-battle/internal/entities"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

//go:embed default.yaml
var defaultGameData []byte

// Species is a template units are built from
type Species struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Health   int32  `yaml:"health"`
	Attack   int32  `yaml:"attack"`
	Defence  int32  `yaml:"defence"`
	Speed    int32  `yaml:"speed"`
	Level    int32  `yaml:"level"`
}

// GameData is the parsed game data file
type GameData struct {
	Categories []string  `yaml:"categories"`
	Species    []Species `yaml:"species"`

	universe *entities.Universe
	index    map[string]int
}

// Default returns the embedded game data
func Default() (*GameData, error) {
	return Parse(defaultGameData)
}

// Load reads game data from path. An empty path loads the embedded default.
func Load(path string) (*GameData, error) {
	if path == "" {
		return Default()
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("game data file %s not found", path).WithMeta("path", path)
		}
		return nil, errors.Wrapf(err, "failed to read game data file %s", path)
	}

	gd, err := Parse(b)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", path)
	}
	return gd, nil
}

// Parse decodes and validates game data
func Parse(b []byte) (*GameData, error) {
	var gd GameData
	if err := yaml.Unmarshal(b, &gd); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse game data")
	}

	if err := gd.Validate(); err != nil {
		return nil, err
	}

	return &gd, nil
}

// Validate checks the game data and builds its lookup tables. Species levels
// default to 1.
func (g *GameData) Validate() error {
	cats := make([]entities.Category, 0, len(g.Categories))
	for _, c := range g.Categories {
		cats = append(cats, entities.Category(c))
	}
	universe, err := entities.NewUniverse(cats...)
	if err != nil {
		return errors.Wrap(err, "invalid categories")
	}

	vb := errors.NewValidationBuilder()
	if len(g.Species) == 0 {
		vb.Field("species", "at least one species is required")
	}

	index := make(map[string]int, len(g.Species))
	for i := range g.Species {
		sp := &g.Species[i]
		field := "species[" + sp.Name + "]"

		key := strings.ToLower(strings.TrimSpace(sp.Name))
		if key == "" {
			vb.Fieldf("species", "entry %d has no name", i)
			continue
		}
		if _, dup := index[key]; dup {
			vb.Field(field, "is defined more than once")
		}
		index[key] = i

		if !universe.Contains(entities.Category(sp.Category)) {
			vb.InvalidField(field, "category "+sp.Category+" is not a known category")
		}
		if sp.Health < 1 {
			vb.Field(field, "health must be at least 1")
		}
		if sp.Attack < 0 || sp.Defence < 0 || sp.Speed < 0 {
			vb.Field(field, "attack, defence and speed cannot be negative")
		}
		if sp.Health > entities.MaxStat || sp.Attack > entities.MaxStat ||
			sp.Defence > entities.MaxStat || sp.Speed > entities.MaxStat {
			vb.Fieldf(field, "stats cannot exceed %d", entities.MaxStat)
		}
		if sp.Level == 0 {
			sp.Level = 1
		}
		if sp.Level < 0 {
			vb.Field(field, "level cannot be negative")
		}
	}

	if err := vb.Build(); err != nil {
		return err
	}

	g.universe = universe
	g.index = index
	return nil
}

// Universe returns the category universe
func (g *GameData) Universe() *entities.Universe {
	return g.universe
}

// Lookup finds a species by name, ignoring case
func (g *GameData) Lookup(name string) (*Species, bool) {
	i, ok := g.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	sp := g.Species[i]
	return &sp, true
}
