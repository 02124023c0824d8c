package player

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-forms/internal/entities"
	"github.com/KirkDiggler/rpg-forms/internal/errors"
	"github.com/KirkDiggler/rpg-forms/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-forms/internal/redis"
)

const (
	recordKeyPrefix = "forms:player:"
	recordIndexKey  = "forms:players"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis player repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed player repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.EntityID == "" {
		return nil, errors.InvalidArgument(errEntityIDEmpty)
	}

	result, err := r.client.Get(ctx, recordKeyPrefix+input.EntityID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("player record %s not found", input.EntityID)
		}
		return nil, errors.Wrapf(err, "failed to get player record")
	}

	var record entities.PlayerRecord
	if err := json.Unmarshal([]byte(result), &record); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal player record %s", input.EntityID)
	}
	normalize(&record)

	return &GetOutput{Record: &record}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	record, err := prepare(input.Record, r.clock)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal player record")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, recordKeyPrefix+record.EntityID, data, 0)
	pipe.SAdd(ctx, recordIndexKey, record.EntityID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to save player record")
	}

	slog.DebugContext(ctx, "Saved player record",
		"entity_id", record.EntityID,
		"achievements", len(record.Achievements),
		"is_legendary", record.IsLegendary)

	return &SaveOutput{Record: record}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.EntityID == "" {
		return nil, errors.InvalidArgument(errEntityIDEmpty)
	}

	key := recordKeyPrefix + input.EntityID
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("player record %s not found", input.EntityID)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, recordIndexKey, input.EntityID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete player record")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, recordIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get player records from index %s", recordIndexKey)
	}

	records := make([]*entities.PlayerRecord, 0, len(ids))
	for _, id := range ids {
		out, err := r.Get(ctx, GetInput{EntityID: id})
		if err != nil {
			// Record expired or was removed out of band, clean up the index
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "Player record not found, cleaning up index",
					"entity_id", id,
					"index_key", recordIndexKey)
				r.client.SRem(ctx, recordIndexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get player record %s", id)
		}
		records = append(records, out.Record)
	}
	sortRecords(records)

	return &ListOutput{Records: records}, nil
}

// normalize replaces nil maps left by older payloads
func normalize(record *entities.PlayerRecord) {
	if record.Achievements == nil {
		record.Achievements = make(map[entities.FormKey]bool)
	}
	if record.Mastery == nil {
		record.Mastery = make(map[entities.FormKey]entities.MasteryProgress)
	}
}
