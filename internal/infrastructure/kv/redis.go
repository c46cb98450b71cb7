package kv

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/groceryhub/grocery-api/pkg/metrics"
)

// redisStore adapts go-redis to the Store interface. The connection pool
// inside the client is the only cross-request synchronization point; all
// atomicity comes from WATCH/MULTI/EXEC.
type redisStore struct {
	rdb *redis.Client
}

// NewRedis wraps an already constructed client. Lifecycle (Close) stays
// with the caller.
func NewRedis(rdb *redis.Client) Store {
	return &redisStore{rdb: rdb}
}

func nilErr(err error) error {
	if errors.Is(err, redis.Nil) {
		return ErrNil
	}
	return err
}

func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	return v, nilErr(err)
}

func (s *redisStore) Set(ctx context.Context, key, value string) error {
	return s.rdb.Set(ctx, key, value, 0).Err()
}

func (s *redisStore) Incr(ctx context.Context, key string) (int64, error) {
	return s.rdb.Incr(ctx, key).Result()
}

func (s *redisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.rdb.Exists(ctx, key).Result()
	return n > 0, err
}

func (s *redisStore) Del(ctx context.Context, key string) (bool, error) {
	n, err := s.rdb.Del(ctx, key).Result()
	return n > 0, err
}

func (s *redisStore) HGet(ctx context.Context, key, field string) (string, error) {
	v, err := s.rdb.HGet(ctx, key, field).Result()
	return v, nilErr(err)
}

func (s *redisStore) HSet(ctx context.Context, key, field, value string) error {
	return s.rdb.HSet(ctx, key, field, value).Err()
}

func (s *redisStore) HSetMultiple(ctx context.Context, key string, fields map[string]string) error {
	args := make([]interface{}, 0, len(fields)*2)
	for f, v := range fields {
		args = append(args, f, v)
	}
	return s.rdb.HSet(ctx, key, args...).Err()
}

func (s *redisStore) HDel(ctx context.Context, key, field string) error {
	return s.rdb.HDel(ctx, key, field).Err()
}

func (s *redisStore) HExists(ctx context.Context, key, field string) (bool, error) {
	return s.rdb.HExists(ctx, key, field).Result()
}

func (s *redisStore) SAdd(ctx context.Context, key, member string) error {
	return s.rdb.SAdd(ctx, key, member).Err()
}

func (s *redisStore) SRem(ctx context.Context, key, member string) (bool, error) {
	n, err := s.rdb.SRem(ctx, key, member).Result()
	return n > 0, err
}

func (s *redisStore) SMembers(ctx context.Context, key string) ([]string, error) {
	return s.rdb.SMembers(ctx, key).Result()
}

func (s *redisStore) SIsMember(ctx context.Context, key, member string) (bool, error) {
	return s.rdb.SIsMember(ctx, key, member).Result()
}

func (s *redisStore) Transaction(ctx context.Context, watch []string, body func(tx Tx) error) error {
	err := s.rdb.Watch(ctx, func(rtx *redis.Tx) error {
		_, err := rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			return body(&redisTx{ctx: ctx, pipe: pipe})
		})
		return err
	}, watch...)
	if errors.Is(err, redis.TxFailedErr) {
		metrics.TxConflicts.Inc()
		return ErrTxFailed
	}
	return err
}

// redisTx queues commands on a MULTI pipeline. Command replies are
// discarded; the transaction either applies every write or none.
type redisTx struct {
	ctx  context.Context
	pipe redis.Pipeliner
}

func (t *redisTx) Set(key, value string) { t.pipe.Set(t.ctx, key, value, 0) }
func (t *redisTx) Del(key string)        { t.pipe.Del(t.ctx, key) }

func (t *redisTx) HSet(key, field, value string) { t.pipe.HSet(t.ctx, key, field, value) }

func (t *redisTx) HSetMultiple(key string, fields map[string]string) {
	args := make([]interface{}, 0, len(fields)*2)
	for f, v := range fields {
		args = append(args, f, v)
	}
	t.pipe.HSet(t.ctx, key, args...)
}

func (t *redisTx) HDel(key, field string) { t.pipe.HDel(t.ctx, key, field) }
func (t *redisTx) SAdd(key, member string) {
	t.pipe.SAdd(t.ctx, key, member)
}
func (t *redisTx) SRem(key, member string) { t.pipe.SRem(t.ctx, key, member) }
