package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/landlease/internal/common"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each record under "<prefix><kind>/<id>" and maintains a
// per-kind sorted set index for Scan.
//
// Both Update and View WATCH every key they read. Update buffers writes and
// commits them with MULTI/EXEC; View ends with an EXEC of a lone PING so the
// reads are only returned if none of them changed underneath. Either way a
// changed key fails the call with common.ErrConflict; it is not retried.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore uses client with keys namespaced by prefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// RedisOptions configures OpenRedis.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// OpenRedis connects and pings the server.
func OpenRedis(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return NewRedisStore(client, opts.Prefix), nil
}

func (s *RedisStore) recordKey(key Key) string {
	return s.prefix + key.String()
}

func (s *RedisStore) indexKey(kind Kind) string {
	return s.prefix + "index/" + string(kind)
}

func (s *RedisStore) Update(ctx context.Context, fn TxFunc) error {
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		t := &redisTxn{store: s, tx: tx, writes: make(map[Key][]byte)}
		if err := fn(ctx, t); err != nil {
			return err
		}
		if len(t.order) == 0 {
			return nil
		}

		_, err := tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			for _, key := range t.order {
				p.Set(ctx, s.recordKey(key), t.writes[key], 0)
				p.ZAdd(ctx, s.indexKey(key.Kind), redis.Z{Score: 0, Member: sortableID(key.ID)})
			}
			return nil
		})
		return err
	})
	return translateRedisError(err)
}

func (s *RedisStore) View(ctx context.Context, fn TxFunc) error {
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		if err := fn(ctx, &redisTxn{store: s, tx: tx, readOnly: true}); err != nil {
			return err
		}

		// EXEC returns nil when a watched key moved since it was read.
		_, err := tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Ping(ctx)
			return nil
		})
		return err
	})
	return translateRedisError(err)
}

func translateRedisError(err error) error {
	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("%w: %v", common.ErrConflict, err)
	}
	return err
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

type redisTxn struct {
	store    *RedisStore
	tx       *redis.Tx
	writes   map[Key][]byte
	order    []Key
	readOnly bool
}

func (t *redisTxn) watch(ctx context.Context, key string) error {
	return t.tx.Watch(ctx, key).Err()
}

func (t *redisTxn) Get(ctx context.Context, key Key) ([]byte, error) {
	if v, ok := t.writes[key]; ok {
		return clone(v), nil
	}

	rk := t.store.recordKey(key)
	if err := t.watch(ctx, rk); err != nil {
		return nil, fmt.Errorf("watch %s: %w", key, err)
	}

	v, err := t.tx.Get(ctx, rk).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s: %w", key, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return v, nil
}

func (t *redisTxn) Set(_ context.Context, key Key, value []byte) error {
	if t.readOnly {
		return fmt.Errorf("set %s: read-only transaction", key)
	}
	if _, ok := t.writes[key]; !ok {
		t.order = append(t.order, key)
	}
	t.writes[key] = clone(value)
	return nil
}

func (t *redisTxn) Scan(ctx context.Context, kind Kind, fn func(Key, []byte) error) error {
	ik := t.store.indexKey(kind)
	if err := t.watch(ctx, ik); err != nil {
		return fmt.Errorf("watch %s: %w", ik, err)
	}

	members, err := t.tx.ZRange(ctx, ik, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("scan %s: %w", kind, err)
	}

	seen := make(map[uint64]struct{}, len(members))
	ids := make([]uint64, 0, len(members))
	for _, m := range members {
		id, err := parseSortableID(m)
		if err != nil {
			return fmt.Errorf("%w: %s index member %q", common.ErrInvariantViolation, kind, m)
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for key := range t.writes {
		if key.Kind != kind {
			continue
		}
		if _, ok := seen[key.ID]; !ok {
			seen[key.ID] = struct{}{}
			ids = append(ids, key.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		key := Key{Kind: kind, ID: id}
		v, err := t.Get(ctx, key)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return fmt.Errorf("%w: %s indexed but missing", common.ErrInvariantViolation, key)
			}
			return err
		}
		if err := fn(key, v); err != nil {
			return err
		}
	}
	return nil
}
