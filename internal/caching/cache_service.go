package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"housebill/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Dashboard stats snapshot
	GetStats(ctx context.Context) (*models.Stats, error)
	SetStats(ctx context.Context, stats *models.Stats, ttl time.Duration) error

	// Per-house breakdown
	GetHouseStats(ctx context.Context, houseID uuid.UUID) (*models.HouseStats, error)
	SetHouseStats(ctx context.Context, stats *models.HouseStats, ttl time.Duration) error

	// InvalidateStats drops every cached stats snapshot. Called after each
	// house/member/payment mutation so the next read re-aggregates.
	InvalidateStats(ctx context.Context) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis:// and rediss:// style addresses as well as host:port.
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsedAddr = strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", err, parsedAddr)
	}

	return &redisCacheService{client: client}
}

const statsKey = "housebill:stats"

func houseStatsKey(houseID uuid.UUID) string {
	return fmt.Sprintf("housebill:stats:house:%s", houseID.String())
}

func (r *redisCacheService) GetStats(ctx context.Context) (*models.Stats, error) {
	data, err := r.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var stats models.Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *redisCacheService) SetStats(ctx context.Context, stats *models.Stats, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, statsKey, data, ttl).Err()
}

func (r *redisCacheService) GetHouseStats(ctx context.Context, houseID uuid.UUID) (*models.HouseStats, error) {
	data, err := r.client.Get(ctx, houseStatsKey(houseID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var stats models.HouseStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *redisCacheService) SetHouseStats(ctx context.Context, stats *models.HouseStats, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, houseStatsKey(stats.HouseID), data, ttl).Err()
}

func (r *redisCacheService) InvalidateStats(ctx context.Context) error {
	keys, err := r.client.Keys(ctx, "housebill:stats*").Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
