// Package participants stores what outlives a single battle for a
// participant: the category registry and win/loss tallies.
package participants

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-battle/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=participantsmock github.com/KirkDiggler/rpg-battle/internal/repositories/participants Repository

// Data is the stored state of a participant. The registry only grows.
type Data struct {
	Name          string              `json:"name"`
	Registry      []entities.Category `json:"registry"`
	BattlesFought int64               `json:"battles_fought"`
	BattlesWon    int64               `json:"battles_won"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// Repository defines the storage interface for participants. Names are
// matched case-insensitively.
type Repository interface {
	// Get retrieves a participant by name
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Record merges a battle's result into the participant, creating it on
	// first use
	Record(ctx context.Context, input *RecordInput) (*RecordOutput, error)

	// Delete removes a participant
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}

// GetInput defines the request for retrieving a participant
type GetInput struct {
	Name string
}

// GetOutput defines the response for retrieving a participant
type GetOutput struct {
	Data *Data
}

// RecordInput defines a battle result to merge
type RecordInput struct {
	Name     string
	Registry []entities.Category
	Won      bool
}

// RecordOutput returns the participant after the merge
type RecordOutput struct {
	Data *Data
}

// DeleteInput defines the request for deleting a participant
type DeleteInput struct {
	Name string
}

// DeleteOutput defines the response for deleting a participant
type DeleteOutput struct{}
