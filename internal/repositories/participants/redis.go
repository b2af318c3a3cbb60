package participants

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-battle/internal/entities"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-battle/internal/redis"
)

const (
	// participant:{name} is a hash of the display name and tallies
	participantKeyPrefix = "participant:"
	// participant:{name}:registry is the set of categories seen
	registryKeySuffix = ":registry"

	fieldName      = "name"
	fieldFought    = "battles_fought"
	fieldWon       = "battles_won"
	fieldUpdatedAt = "updated_at"

	errInputNil  = "input is required"
	errNameEmpty = "participant name is required"
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

// Get retrieves a participant by name
func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	key := normalizeName(input.Name)
	if key == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	data, err := r.load(ctx, key)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Data: data}, nil
}

// Record adds the registry to the stored set and bumps the tallies in one
// transaction
func (r *redisRepository) Record(ctx context.Context, input *RecordInput) (*RecordOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	key := normalizeName(input.Name)
	if key == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	hashKey := participantKey(key)
	now := r.clock.Now()
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSetNX(ctx, hashKey, fieldName, strings.TrimSpace(input.Name))
		pipe.HIncrBy(ctx, hashKey, fieldFought, 1)
		if input.Won {
			pipe.HIncrBy(ctx, hashKey, fieldWon, 1)
		} else {
			pipe.HIncrBy(ctx, hashKey, fieldWon, 0)
		}
		pipe.HSet(ctx, hashKey, fieldUpdatedAt, now.Format(time.RFC3339Nano))
		if members := registryMembers(input.Registry); len(members) > 0 {
			pipe.SAdd(ctx, registryKey(key), members...)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to record participant")
	}

	data, err := r.load(ctx, key)
	if err != nil {
		return nil, err
	}

	return &RecordOutput{Data: data}, nil
}

// Delete removes a participant and its registry
func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	key := normalizeName(input.Name)
	if key == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	removed, err := r.client.Del(ctx, participantKey(key), registryKey(key)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete participant")
	}
	if removed == 0 {
		return nil, errors.NotFoundf("participant %s not found", input.Name).WithMeta("participant", input.Name)
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) load(ctx context.Context, key string) (*Data, error) {
	fields, err := r.client.HGetAll(ctx, participantKey(key)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get participant")
	}
	if len(fields) == 0 {
		return nil, errors.NotFoundf("participant %s not found", key).WithMeta("participant", key)
	}

	members, err := r.client.SMembers(ctx, registryKey(key)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get participant registry")
	}

	data := &Data{
		Name:     fields[fieldName],
		Registry: make([]entities.Category, 0, len(members)),
	}
	for _, m := range members {
		data.Registry = append(data.Registry, entities.Category(m))
	}
	sortRegistry(data.Registry)

	if data.BattlesFought, err = parseCount(fields[fieldFought]); err != nil {
		return nil, err
	}
	if data.BattlesWon, err = parseCount(fields[fieldWon]); err != nil {
		return nil, err
	}
	if v := fields[fieldUpdatedAt]; v != "" {
		if data.UpdatedAt, err = time.Parse(time.RFC3339Nano, v); err != nil {
			return nil, errors.Wrap(err, "failed to parse participant updated_at")
		}
	}

	return data, nil
}

func parseCount(v string) (int64, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid participant counter %q", v)
	}
	return n, nil
}

func registryMembers(cats []entities.Category) []interface{} {
	out := make([]interface{}, 0, len(cats))
	for _, c := range cats {
		if c = entities.NormalizeCategory(c); c != "" {
			out = append(out, string(c))
		}
	}
	return out
}

func sortRegistry(cats []entities.Category) {
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
}

func participantKey(name string) string {
	return participantKeyPrefix + name
}

func registryKey(name string) string {
	return participantKeyPrefix + name + registryKeySuffix
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
