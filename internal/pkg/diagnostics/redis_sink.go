package diagnostics

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisKey = "equiplend:diagnostics"

// RedisSink keeps the most recent failures in a capped Redis list so they
// can be inspected without shell access to the API hosts.
type RedisSink struct {
	rdb redis.Cmdable
	key string
	max int64
}

func NewRedisSink(rdb redis.Cmdable, key string, max int64) *RedisSink {
	if key == "" {
		key = DefaultRedisKey
	}
	if max <= 0 {
		max = 1000
	}
	return &RedisSink{rdb: rdb, key: key, max: max}
}

func (s *RedisSink) Report(ctx context.Context, op string, err error) {
	if err == nil {
		return
	}
	b, mErr := json.Marshal(newEntry(ctx, op, err))
	if mErr != nil {
		return
	}

	// Diagnostics must not fail the request, so the write is detached from
	// the request's cancellation.
	ctx = context.WithoutCancel(ctx)
	pipe := s.rdb.TxPipeline()
	pipe.LPush(ctx, s.key, b)
	pipe.LTrim(ctx, s.key, 0, s.max-1)
	if _, xErr := pipe.Exec(ctx); xErr != nil {
		log.Printf("diagnostics_redis_error key=%s error=%q", s.key, xErr.Error())
	}
}
