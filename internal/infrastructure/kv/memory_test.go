package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryScalars(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNil)

	require.NoError(t, m.Set(ctx, "k", "v"))
	v, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	exists, err := m.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)

	existed, err := m.Del(ctx, "k")
	require.NoError(t, err)
	assert.True(t, existed)

	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNil)

	exists, err = m.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)

	existed, err = m.Del(ctx, "k")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestMemoryIncr(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	n, err := m.Incr(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = m.Incr(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	v, err := m.Get(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}

func TestMemoryHashes(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.HGet(ctx, "h", "f")
	assert.ErrorIs(t, err, ErrNil)

	require.NoError(t, m.HSet(ctx, "h", "f", "1"))
	require.NoError(t, m.HSetMultiple(ctx, "h", map[string]string{"g": "2", "i": "3"}))

	v, err := m.HGet(ctx, "h", "g")
	require.NoError(t, err)
	assert.Equal(t, "2", v)

	ok, err := m.HExists(ctx, "h", "i")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, m.HDel(ctx, "h", "i"))
	ok, err = m.HExists(ctx, "h", "i")
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = m.HGet(ctx, "h", "i")
	assert.ErrorIs(t, err, ErrNil)
}

func TestMemorySets(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	members, err := m.SMembers(ctx, "s")
	require.NoError(t, err)
	assert.Empty(t, members)

	require.NoError(t, m.SAdd(ctx, "s", "a"))
	require.NoError(t, m.SAdd(ctx, "s", "b"))
	require.NoError(t, m.SAdd(ctx, "s", "a")) // idempotent

	members, err = m.SMembers(ctx, "s")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, members)

	ok, err := m.SIsMember(ctx, "s", "a")
	require.NoError(t, err)
	assert.True(t, ok)

	removed, err := m.SRem(ctx, "s", "a")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = m.SRem(ctx, "s", "a")
	require.NoError(t, err)
	assert.False(t, removed)

	ok, err = m.SIsMember(ctx, "s", "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryTransactionCommit(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	err := m.Transaction(ctx, []string{"record", "members"}, func(tx Tx) error {
		tx.HSet("record", "name", "dairy")
		tx.SAdd("members", "record")
		return nil
	})
	require.NoError(t, err)

	v, err := m.HGet(ctx, "record", "name")
	require.NoError(t, err)
	assert.Equal(t, "dairy", v)

	ok, err := m.SIsMember(ctx, "members", "record")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryTransactionConflict(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, "watched", "before"))

	err := m.Transaction(ctx, []string{"watched"}, func(tx Tx) error {
		// a competing writer touches the watched key mid-flight
		require.NoError(t, m.Set(ctx, "watched", "racer"))
		tx.Set("watched", "mine")
		return nil
	})
	assert.ErrorIs(t, err, ErrTxFailed)

	v, err := m.Get(ctx, "watched")
	require.NoError(t, err)
	assert.Equal(t, "racer", v, "losing batch must not be applied")
}

func TestMemoryTransactionBodyError(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	boom := assert.AnError
	err := m.Transaction(ctx, []string{"k"}, func(tx Tx) error {
		tx.Set("k", "should not land")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNil)
}

func TestMemoryTransactionDeleteIsConflict(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, "watched", "v"))

	err := m.Transaction(ctx, []string{"watched"}, func(tx Tx) error {
		_, derr := m.Del(ctx, "watched")
		require.NoError(t, derr)
		tx.Set("other", "x")
		return nil
	})
	assert.ErrorIs(t, err, ErrTxFailed)
}
