// Package battles stores the reports of commenced battles
package battles

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=battlesmock github.com/KirkDiggler/rpg-battle/internal/repositories/battles Repository

// DefaultTTL is how long a report is kept when CreateInput.TTL is zero
const DefaultTTL = 24 * time.Hour

// DefaultListLimit caps List when ListInput.Limit is zero
const DefaultListLimit = 20

// Record is a stored battle report
type Record struct {
	ID        string         `json:"id"`
	Report    *battle.Report `json:"report"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// Repository defines the storage interface for battle reports
type Repository interface {
	// Create stores a report under its battle ID
	Create(ctx context.Context, input *CreateInput) (*CreateOutput, error)

	// Get retrieves a report by battle ID
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// List returns a participant's most recent battles, newest first
	List(ctx context.Context, input *ListInput) (*ListOutput, error)

	// Delete removes a report
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the request for storing a report
type CreateInput struct {
	Report *battle.Report
	TTL    time.Duration
}

// CreateOutput defines the response for storing a report
type CreateOutput struct {
	Record *Record
}

// GetInput defines the request for retrieving a report
type GetInput struct {
	BattleID string
}

// GetOutput defines the response for retrieving a report
type GetOutput struct {
	Record *Record
}

// ListInput defines the request for listing a participant's battles
type ListInput struct {
	ParticipantName string
	Limit           int
}

// ListOutput defines the response for listing a participant's battles
type ListOutput struct {
	Records []*Record
}

// DeleteInput defines the request for deleting a report
type DeleteInput struct {
	BattleID string
}

// DeleteOutput defines the response for deleting a report
type DeleteOutput struct{}
