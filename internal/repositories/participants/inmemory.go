package participants

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-battle/internal/entities"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/clock"
)

type memEntry struct {
	name      string
	registry  map[entities.Category]struct{}
	fought    int64
	won       int64
	updatedAt time.Time
}

// InMemoryRepository implements Repository in process memory
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	store map[string]*memEntry
}

// NewInMemory creates an in-memory repository. A nil clock uses real time.
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		clock: c,
		store: make(map[string]*memEntry),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Get retrieves a participant by name
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	key := normalizeName(input.Name)
	if key == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.store[key]
	if !ok {
		return nil, errors.NotFoundf("participant %s not found", key).WithMeta("participant", key)
	}

	return &GetOutput{Data: entry.snapshot()}, nil
}

// Record merges a battle result into the participant
func (r *InMemoryRepository) Record(_ context.Context, input *RecordInput) (*RecordOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	key := normalizeName(input.Name)
	if key == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.store[key]
	if !ok {
		entry = &memEntry{
			name:     strings.TrimSpace(input.Name),
			registry: make(map[entities.Category]struct{}),
		}
		r.store[key] = entry
	}

	entry.fought++
	if input.Won {
		entry.won++
	}
	for _, c := range input.Registry {
		if c = entities.NormalizeCategory(c); c != "" {
			entry.registry[c] = struct{}{}
		}
	}
	entry.updatedAt = r.clock.Now()

	return &RecordOutput{Data: entry.snapshot()}, nil
}

// Delete removes a participant
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	key := normalizeName(input.Name)
	if key == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[key]; !ok {
		return nil, errors.NotFoundf("participant %s not found", input.Name).WithMeta("participant", input.Name)
	}
	delete(r.store, key)

	return &DeleteOutput{}, nil
}

func (e *memEntry) snapshot() *Data {
	registry := make([]entities.Category, 0, len(e.registry))
	for c := range e.registry {
		registry = append(registry, c)
	}
	sortRegistry(registry)

	return &Data{
		Name:          e.name,
		Registry:      registry,
		BattlesFought: e.fought,
		BattlesWon:    e.won,
		UpdatedAt:     e.updatedAt,
	}
}
