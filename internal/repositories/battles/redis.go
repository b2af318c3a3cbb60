package battles

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-battle/internal/redis"
)

const (
	// battle:{id} holds the JSON record
	battleKeyPrefix = "battle:"
	// battles:participant:{name} is a sorted set of battle IDs scored by creation time
	participantIndexPrefix = "battles:participant:"

	errInputNil       = "input is required"
	errBattleIDEmpty  = "battle ID is required"
	errReportNil      = "report is required"
	errParticipantNil = "participant name is required"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("client")
	}
	if c.Clock == nil {
		vb.RequiredField("clock")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedis creates a Redis backed repository
func NewRedis(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// Create stores the report with a TTL and indexes it under both participants
func (r *redisRepository) Create(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.Report == nil {
		return nil, errors.InvalidArgument(errReportNil)
	}
	if input.Report.BattleID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	record := newRecord(input, r.clock.Now())
	ttl := record.ExpiresAt.Sub(record.CreatedAt)

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal battle record")
	}

	key := battleKey(record.ID)
	created, err := r.client.SetNX(ctx, key, recordJSON, ttl).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to store battle record")
	}
	if !created {
		return nil, errors.Newf(errors.CodeAlreadyExists, "battle %s already exists", record.ID).
			WithMeta("battle_id", record.ID)
	}

	score := float64(record.CreatedAt.UnixNano())
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, name := range participantNames(record.Report) {
			pipe.ZAdd(ctx, participantIndexKey(name), redis.Z{Score: score, Member: record.ID})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to index battle record")
	}

	return &CreateOutput{Record: record}, nil
}

// Get retrieves a report by battle ID
func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	record, err := r.load(ctx, input.BattleID)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Record: record}, nil
}

// List walks the participant's index newest first, dropping IDs whose
// reports have expired
func (r *redisRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
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

	indexKey := participantIndexKey(name)
	ids, err := r.client.ZRevRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read participant battle index")
	}

	records := make([]*Record, 0, min(limit, len(ids)))
	var stale []interface{}
	for _, id := range ids {
		if len(records) == limit {
			break
		}
		record, err := r.load(ctx, id)
		if errors.IsNotFound(err) {
			stale = append(stale, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if len(stale) > 0 {
		if err := r.client.ZRem(ctx, indexKey, stale...).Err(); err != nil {
			slog.Warn("failed to trim battle index",
				"participant", name,
				"stale", len(stale),
				"error", err)
		}
	}

	return &ListOutput{Records: records}, nil
}

// Delete removes a report. Index entries are cleaned up lazily by List.
func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	removed, err := r.client.Del(ctx, battleKey(input.BattleID)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete battle record")
	}
	if removed == 0 {
		return nil, errors.NotFoundf("battle %s not found", input.BattleID).WithMeta("battle_id", input.BattleID)
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) load(ctx context.Context, id string) (*Record, error) {
	recordJSON, err := r.client.Get(ctx, battleKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("battle %s not found", id).WithMeta("battle_id", id)
		}
		return nil, errors.Wrap(err, "failed to get battle record")
	}

	var record Record
	if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal battle record")
	}

	return &record, nil
}

func battleKey(id string) string {
	return battleKeyPrefix + id
}

func participantIndexKey(name string) string {
	return participantIndexPrefix + name
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
