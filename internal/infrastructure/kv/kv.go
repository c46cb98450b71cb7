package kv

import (
	"context"
	"errors"
)

// ErrNil is returned when a key, hash field or set member does not exist.
var ErrNil = errors.New("kv: nil reply")

// ErrTxFailed is returned by Transaction when a watched key changed between
// watch and commit. There is no automatic retry; callers treat it as a
// transient failure.
var ErrTxFailed = errors.New("kv: transaction aborted, watched key changed")

// Tx queues writes inside a Transaction body. Nothing is executed until the
// engine commits the whole batch atomically.
type Tx interface {
	Set(key, value string)
	Del(key string)
	HSet(key, field, value string)
	HSetMultiple(key string, fields map[string]string)
	HDel(key, field string)
	SAdd(key, member string)
	SRem(key, member string)
}

// Store is the narrow capability interface the data layer depends on:
// scalar, hash and set primitives plus an optimistic multi-key transaction.
// Two implementations exist, a Redis client and an in-memory store for
// tests; both are injected, never reached through globals.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Incr(ctx context.Context, key string) (int64, error)
	Exists(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, key string) (bool, error)

	HGet(ctx context.Context, key, field string) (string, error)
	HSet(ctx context.Context, key, field, value string) error
	HSetMultiple(ctx context.Context, key string, fields map[string]string) error
	HDel(ctx context.Context, key, field string) error
	HExists(ctx context.Context, key, field string) (bool, error)

	SAdd(ctx context.Context, key, member string) error
	SRem(ctx context.Context, key, member string) (bool, error)
	SMembers(ctx context.Context, key string) ([]string, error)
	SIsMember(ctx context.Context, key, member string) (bool, error)

	// Transaction watches the given keys, runs body to queue writes, and
	// commits the batch atomically. The commit fails with ErrTxFailed if
	// any watched key was modified after the watch began. Reads performed
	// by body go through the Store as usual.
	Transaction(ctx context.Context, watch []string, body func(tx Tx) error) error
}
