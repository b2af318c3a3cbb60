package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-battle/internal/config"
	"github.com/KirkDiggler/rpg-battle/internal/entities"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestDefault() {
	gd, err := config.Default()
	s.Require().NoError(err)

	s.Equal(15, gd.Universe().Size())
	s.True(gd.Universe().Contains("fire"))

	sp, ok := gd.Lookup("emberkit")
	s.Require().True(ok)
	s.Equal("Emberkit", sp.Name)
	s.Equal(int32(1), sp.Level)

	for _, sp := range gd.Species {
		s.True(gd.Universe().Contains(entities.Category(sp.Category)), sp.Name)
	}
}

func (s *ConfigTestSuite) TestLoad_EmptyPathUsesDefault() {
	gd, err := config.Load("")
	s.Require().NoError(err)
	s.NotEmpty(gd.Species)
}

func (s *ConfigTestSuite) TestLoad_File() {
	path := filepath.Join(s.T().TempDir(), "game.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(`
categories: [fire, water]
species:
  - name: Blaze
    category: fire
    health: 10
    attack: 4
    defence: 1
    speed: 3
    level: 4
`), 0o600))

	gd, err := config.Load(path)
	s.Require().NoError(err)
	s.Equal(2, gd.Universe().Size())

	sp, ok := gd.Lookup(" BLAZE ")
	s.Require().True(ok)
	s.Equal(int32(4), sp.Level)

	_, ok = gd.Lookup("missing")
	s.False(ok)
}

func (s *ConfigTestSuite) TestLoad_MissingFile() {
	_, err := config.Load(filepath.Join(s.T().TempDir(), "nope.yaml"))
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *ConfigTestSuite) TestParse_Invalid() {
	testCases := []struct {
		name string
		data string
	}{
		{name: "malformed yaml", data: "categories: [fire"},
		{name: "no categories", data: "species: [{name: A, category: fire, health: 1}]"},
		{name: "no species", data: "categories: [fire]"},
		{name: "unknown category", data: "categories: [fire]\nspecies: [{name: A, category: rock, health: 1}]"},
		{name: "zero health", data: "categories: [fire]\nspecies: [{name: A, category: fire, health: 0}]"},
		{name: "negative attack", data: "categories: [fire]\nspecies: [{name: A, category: fire, health: 3, attack: -1}]"},
		{name: "attack too large", data: "categories: [fire]\nspecies: [{name: A, category: fire, health: 3, attack: 2000000000}]"},
		{name: "duplicate species", data: "categories: [fire]\nspecies: [{name: A, category: fire, health: 1}, {name: a, category: fire, health: 2}]"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			gd, err := config.Parse([]byte(tc.data))
			s.Nil(gd)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err), err.Error())
		})
	}
}
