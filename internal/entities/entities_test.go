package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-battle/internal/entities"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

func TestUnit_SetHealthClamps(t *testing.T) {
	u := &entities.Unit{Health: 10, MaxHealth: 10}

	u.SetHealth(-7)
	assert.Equal(t, int32(0), u.Health)
	assert.True(t, u.IsFainted())

	u.SetHealth(25)
	assert.Equal(t, int32(10), u.Health)
	assert.False(t, u.IsFainted())
}

func TestUnit_LevelUpAndRegenerate(t *testing.T) {
	u := &entities.Unit{Health: 2, MaxHealth: 12, Level: 3}

	u.LevelUp()
	u.Regenerate()

	assert.Equal(t, int32(3)+entities.LevelIncrement, u.Level)
	assert.Equal(t, int32(12), u.Health)
}

func TestUnit_CloneIsIndependent(t *testing.T) {
	u := &entities.Unit{ID: "unit_1", Health: 5, MaxHealth: 5}
	c := u.Clone()
	c.SetHealth(1)

	assert.Equal(t, int32(5), u.Health)
	assert.Equal(t, "unit_1", c.GetID())
	assert.Equal(t, entities.EntityTypeUnit, c.GetType())
}

func TestNewUniverse(t *testing.T) {
	u, err := entities.NewUniverse("Water", " fire ", "grass")
	require.NoError(t, err)

	assert.Equal(t, 3, u.Size())
	assert.True(t, u.Contains("FIRE"))
	assert.False(t, u.Contains("rock"))
	assert.Equal(t, []entities.Category{"fire", "grass", "water"}, u.Categories())
}

func TestNewUniverse_Errors(t *testing.T) {
	testCases := []struct {
		name       string
		categories []entities.Category
	}{
		{name: "empty", categories: nil},
		{name: "blank name", categories: []entities.Category{"fire", "  "}},
		{name: "duplicate", categories: []entities.Category{"fire", "Fire"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u, err := entities.NewUniverse(tc.categories...)
			assert.Nil(t, u)
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}

func TestParseMode(t *testing.T) {
	testCases := []struct {
		tag  string
		want entities.Mode
	}{
		{"set", entities.ModeSequential},
		{"Sequential", entities.ModeSequential},
		{"rotate", entities.ModeRotating},
		{" rotating ", entities.ModeRotating},
		{"optimise", entities.ModePriorityByLevel},
		{"priority", entities.ModePriorityByLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.tag, func(t *testing.T) {
			got, err := entities.ParseMode(tc.tag)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestParseMode_Invalid(t *testing.T) {
	_, err := entities.ParseMode("random")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.False(t, entities.Mode("random").Valid())
}

func TestOutcome_Winner(t *testing.T) {
	assert.Equal(t, entities.SideA, entities.OutcomeSideAWins.Winner())
	assert.Equal(t, entities.SideB, entities.OutcomeSideBWins.Winner())
	assert.Equal(t, entities.Side(""), entities.OutcomeDraw.Winner())
}
