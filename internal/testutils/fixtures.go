package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-battle/internal/entities"
)

// Test fixture names
const (
	TestBattleID      = "battle_test_001"
	TestTrainerA      = "Ash"
	TestTrainerB      = "Gary"
	TestDefaultHealth = int32(10)
)

// TestCategories is the universe most tests run with
var TestCategories = []entities.Category{"fire", "grass", "water", "electric"}

// CreateTestUniverse builds a universe from TestCategories
func CreateTestUniverse(t *testing.T) *entities.Universe {
	t.Helper()

	u, err := entities.NewUniverse(TestCategories...)
	require.NoError(t, err)
	return u
}

// CreateTestUnit creates a level 1 unit with even stats
func CreateTestUnit(id string, category entities.Category) *entities.Unit {
	return &entities.Unit{
		ID:        id,
		Name:      id,
		Category:  category,
		Health:    TestDefaultHealth,
		MaxHealth: TestDefaultHealth,
		Attack:    5,
		Defence:   2,
		Speed:     5,
		Level:     1,
	}
}
