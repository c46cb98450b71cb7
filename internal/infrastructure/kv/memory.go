package kv

import (
	"context"
	"strconv"
	"sync"
)

// Memory is an in-process Store used by tests. Unlike a recording mock it
// honors the optimistic concurrency contract: every key carries a version
// counter and Transaction aborts when a watched key moved between watch
// and commit.
type Memory struct {
	mu   sync.Mutex
	data map[string]*memEntry
}

type memEntry struct {
	scalar    string
	hasScalar bool
	hash      map[string]string
	set       map[string]struct{}
	ver       uint64
}

func (e *memEntry) live() bool {
	return e.hasScalar || len(e.hash) > 0 || len(e.set) > 0
}

func (e *memEntry) clear() {
	e.ver++
	e.scalar = ""
	e.hasScalar = false
	e.hash = nil
	e.set = nil
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]*memEntry)}
}

func (m *Memory) entry(key string) *memEntry {
	e, ok := m.data[key]
	if !ok {
		e = &memEntry{}
		m.data[key] = e
	}
	return e
}

func (m *Memory) touch(key string) *memEntry {
	e := m.entry(key)
	e.ver++
	return e
}

func (m *Memory) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.data[key]
	if !ok || !e.hasScalar {
		return "", ErrNil
	}
	return e.scalar, nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.touch(key)
	e.scalar = value
	e.hasScalar = true
	return nil
}

func (m *Memory) Incr(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.touch(key)
	n, _ := strconv.ParseInt(e.scalar, 10, 64)
	n++
	e.scalar = strconv.FormatInt(n, 10)
	e.hasScalar = true
	return n, nil
}

func (m *Memory) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return e.live(), nil
}

func (m *Memory) Del(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.data[key]
	existed := ok && e.live()
	if ok {
		e.clear()
	}
	return existed, nil
}

func (m *Memory) HGet(ctx context.Context, key, field string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.data[key]
	if !ok || e.hash == nil {
		return "", ErrNil
	}
	v, ok := e.hash[field]
	if !ok {
		return "", ErrNil
	}
	return v, nil
}

func (m *Memory) HSet(ctx context.Context, key, field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hset(key, field, value)
	return nil
}

func (m *Memory) hset(key, field, value string) {
	e := m.touch(key)
	if e.hash == nil {
		e.hash = make(map[string]string)
	}
	e.hash[field] = value
}

func (m *Memory) HSetMultiple(ctx context.Context, key string, fields map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for f, v := range fields {
		m.hset(key, f, v)
	}
	return nil
}

func (m *Memory) HDel(ctx context.Context, key, field string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.data[key]; ok && e.hash != nil {
		e.ver++
		delete(e.hash, field)
	}
	return nil
}

func (m *Memory) HExists(ctx context.Context, key, field string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.data[key]
	if !ok || e.hash == nil {
		return false, nil
	}
	_, ok = e.hash[field]
	return ok, nil
}

func (m *Memory) SAdd(ctx context.Context, key, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sadd(key, member)
	return nil
}

func (m *Memory) sadd(key, member string) {
	e := m.touch(key)
	if e.set == nil {
		e.set = make(map[string]struct{})
	}
	e.set[member] = struct{}{}
}

func (m *Memory) SRem(ctx context.Context, key, member string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.srem(key, member), nil
}

func (m *Memory) srem(key, member string) bool {
	e, ok := m.data[key]
	if !ok || e.set == nil {
		return false
	}
	_, present := e.set[member]
	if present {
		e.ver++
		delete(e.set, member)
	}
	return present
}

func (m *Memory) SMembers(ctx context.Context, key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.data[key]
	if !ok || e.set == nil {
		return nil, nil
	}
	out := make([]string, 0, len(e.set))
	for member := range e.set {
		out = append(out, member)
	}
	return out, nil
}

func (m *Memory) SIsMember(ctx context.Context, key, member string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.data[key]
	if !ok || e.set == nil {
		return false, nil
	}
	_, ok = e.set[member]
	return ok, nil
}

// Transaction snapshots the versions of the watched keys, lets body queue
// writes (reads inside body go through the Store and take the lock per
// call), then applies the batch only if no watched key changed.
func (m *Memory) Transaction(ctx context.Context, watch []string, body func(tx Tx) error) error {
	m.mu.Lock()
	seen := make(map[string]uint64, len(watch))
	for _, key := range watch {
		if e, ok := m.data[key]; ok {
			seen[key] = e.ver
		}
	}
	m.mu.Unlock()

	tx := &memTx{}
	if err := body(tx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range watch {
		var cur uint64
		if e, ok := m.data[key]; ok {
			cur = e.ver
		}
		if cur != seen[key] {
			return ErrTxFailed
		}
	}
	for _, op := range tx.ops {
		op(m)
	}
	return nil
}

// memTx accumulates the queued writes as closures applied under the lock
// at commit time.
type memTx struct {
	ops []func(*Memory)
}

func (t *memTx) Set(key, value string) {
	t.ops = append(t.ops, func(m *Memory) {
		e := m.touch(key)
		e.scalar = value
		e.hasScalar = true
	})
}

func (t *memTx) Del(key string) {
	t.ops = append(t.ops, func(m *Memory) {
		if e, ok := m.data[key]; ok {
			e.clear()
		}
	})
}

func (t *memTx) HSet(key, field, value string) {
	t.ops = append(t.ops, func(m *Memory) { m.hset(key, field, value) })
}

func (t *memTx) HSetMultiple(key string, fields map[string]string) {
	copied := make(map[string]string, len(fields))
	for f, v := range fields {
		copied[f] = v
	}
	t.ops = append(t.ops, func(m *Memory) {
		for f, v := range copied {
			m.hset(key, f, v)
		}
	})
}

func (t *memTx) HDel(key, field string) {
	t.ops = append(t.ops, func(m *Memory) {
		if e, ok := m.data[key]; ok && e.hash != nil {
			e.ver++
			delete(e.hash, field)
		}
	})
}

func (t *memTx) SAdd(key, member string) {
	t.ops = append(t.ops, func(m *Memory) { m.sadd(key, member) })
}

func (t *memTx) SRem(key, member string) {
	t.ops = append(t.ops, func(m *Memory) { m.srem(key, member) })
}
