package battles

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/clock"
)

// InMemoryRepository implements Repository in process memory. Expired
// records are dropped on read.
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	store map[string]*Record
}

// NewInMemory creates an in-memory repository. A nil clock uses real time.
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		clock: c,
		store: make(map[string]*Record),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Create stores a report
func (r *InMemoryRepository) Create(_ context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.Report == nil {
		return nil, errors.InvalidArgument(errReportNil)
	}
	if input.Report.BattleID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	if existing, ok := r.store[input.Report.BattleID]; ok && now.Before(existing.ExpiresAt) {
		return nil, errors.Newf(errors.CodeAlreadyExists, "battle %s already exists", existing.ID).
			WithMeta("battle_id", existing.ID)
	}

	record := newRecord(input, now)
	r.store[record.ID] = record

	return &CreateOutput{Record: record}, nil
}

// Get retrieves a report by battle ID
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.live(input.BattleID)
	if !ok {
		return nil, errors.NotFoundf("battle %s not found", input.BattleID).WithMeta("battle_id", input.BattleID)
	}

	// Return a copy to prevent external modification of the stored record
	out := *record
	return &GetOutput{Record: &out}, nil
}

// List returns a participant's battles, newest first
func (r *InMemoryRepository) List(_ context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	name := normalizeName(input.ParticipantName)
	if name == "" {
		return nil, errors.InvalidArgument(errParticipantNil)
	}
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []*Record
	for id := range r.store {
		record, ok := r.live(id)
		if !ok {
			continue
		}
		for _, n := range participantNames(record.Report) {
			if n == name {
				out := *record
				records = append(records, &out)
				break
			}
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID > records[j].ID
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	if len(records) > limit {
		records = records[:limit]
	}

	return &ListOutput{Records: records}, nil
}

// Delete removes a report
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.live(input.BattleID); !ok {
		return nil, errors.NotFoundf("battle %s not found", input.BattleID).WithMeta("battle_id", input.BattleID)
	}
	delete(r.store, input.BattleID)

	return &DeleteOutput{}, nil
}

// live returns the record if it has not expired. Callers hold the lock.
func (r *InMemoryRepository) live(id string) (*Record, bool) {
	record, ok := r.store[id]
	if !ok || !r.clock.Now().Before(record.ExpiresAt) {
		return nil, false
	}
	return record, true
}
