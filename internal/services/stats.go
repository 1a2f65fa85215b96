package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/wooil/sheetsync/internal/logger"
	"github.com/wooil/sheetsync/internal/repos"
	"github.com/wooil/sheetsync/internal/types"
)

const statsCacheKey = "sheetsync:stats:keywords"

// StatsService serves the dashboard visibility counters. Counts run three
// collection scans, so results sit in redis for a short TTL when a redis
// address is configured; without one the service degrades to direct counts.
type StatsService interface {
	VisibilityStats(ctx context.Context) (types.VisibilityStats, error)
	Invalidate(ctx context.Context)
}

type statsService struct {
	log         *logger.Logger
	keywordRepo repos.KeywordRepo
	rdb         *goredis.Client
	ttl         time.Duration
}

func NewStatsService(log *logger.Logger, keywordRepo repos.KeywordRepo) StatsService {
	serviceLog := log.With("service", "StatsService")

	var rdb *goredis.Client
	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		rdb = goredis.NewClient(&goredis.Options{
			Addr:        addr,
			DialTimeout: 5 * time.Second,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			serviceLog.Warn("Redis unreachable, stats cache disabled", "error", err)
			_ = rdb.Close()
			rdb = nil
		}
	}

	return &statsService{
		log:         serviceLog,
		keywordRepo: keywordRepo,
		rdb:         rdb,
		ttl:         60 * time.Second,
	}
}

func (s *statsService) VisibilityStats(ctx context.Context) (types.VisibilityStats, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, statsCacheKey).Bytes(); err == nil {
			var cached types.VisibilityStats
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	stats, err := s.keywordRepo.Stats(ctx)
	if err != nil {
		return types.VisibilityStats{}, fmt.Errorf("count keywords: %w", err)
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.rdb.Set(ctx, statsCacheKey, raw, s.ttl).Err(); err != nil {
				s.log.Warn("Stats cache write failed", "error", err)
			}
		}
	}
	return stats, nil
}

// Invalidate drops the cached counters; called after any write that changes
// them.
func (s *statsService) Invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, statsCacheKey).Err(); err != nil {
		s.log.Warn("Stats cache invalidation failed", "error", err)
	}
}
