package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/landlease/internal/common"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_LostRaceIsConflict(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	s := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "landlease:")
	defer s.Close()

	require.NoError(t, s.Update(ctx, func(ctx context.Context, tx Txn) error {
		return PutRecord(ctx, tx, CounterKey, uint64(1))
	}))

	err := s.Update(ctx, func(ctx context.Context, tx Txn) error {
		var n uint64
		if err := GetRecord(ctx, tx, CounterKey, &n); err != nil {
			return err
		}
		// a concurrent writer touches the watched key
		mr.Set("landlease:counter/0", "changed")
		return PutRecord(ctx, tx, CounterKey, n+1)
	})
	assert.ErrorIs(t, err, common.ErrConflict)

	got, err := mr.Get("landlease:counter/0")
	require.NoError(t, err)
	assert.Equal(t, "changed", got)
}

func TestRedisStore_ViewSeesOneMoment(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	s := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "landlease:")
	defer s.Close()
	writer := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "landlease:")
	defer writer.Close()

	require.NoError(t, s.Update(ctx, func(ctx context.Context, tx Txn) error {
		if err := PutRecord(ctx, tx, CounterKey, uint64(1)); err != nil {
			return err
		}
		return tx.Set(ctx, LeaseKey(1), []byte("one"))
	}))

	tests := []struct {
		name  string
		write func(t *testing.T)
	}{
		{
			name: "record read earlier is rewritten",
			write: func(t *testing.T) {
				mr.Set("landlease:counter/0", "7")
			},
		},
		{
			name: "record added between reads",
			write: func(t *testing.T) {
				require.NoError(t, writer.Update(ctx, func(ctx context.Context, tx Txn) error {
					if err := PutRecord(ctx, tx, CounterKey, uint64(2)); err != nil {
						return err
					}
					return tx.Set(ctx, LeaseKey(2), []byte("two"))
				}))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.View(ctx, func(ctx context.Context, tx Txn) error {
				var n uint64
				if err := GetRecord(ctx, tx, CounterKey, &n); err != nil {
					return err
				}
				tt.write(t)
				return tx.Scan(ctx, KindLease, func(Key, []byte) error { return nil })
			})
			assert.ErrorIs(t, err, common.ErrConflict)
		})
	}

	t.Run("quiet view succeeds", func(t *testing.T) {
		var ids []uint64
		err := s.View(ctx, func(ctx context.Context, tx Txn) error {
			var n uint64
			if err := GetRecord(ctx, tx, CounterKey, &n); err != nil {
				return err
			}
			return tx.Scan(ctx, KindLease, func(k Key, _ []byte) error {
				ids = append(ids, k.ID)
				return nil
			})
		})
		require.NoError(t, err)
		assert.Equal(t, []uint64{1, 2}, ids)
	})
}

func TestRedisStore_KeyLayout(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	s := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "ll:")
	defer s.Close()

	require.NoError(t, s.Update(ctx, func(ctx context.Context, tx Txn) error {
		return tx.Set(ctx, LeaseKey(3), []byte("x"))
	}))

	assert.True(t, mr.Exists("ll:lease/3"))
	members, err := mr.ZMembers("ll:index/lease")
	require.NoError(t, err)
	assert.Equal(t, []string{"00000000000000000003"}, members)
}

func TestRedisStore_NoWritesSkipsExec(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	s := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "ll:")
	defer s.Close()

	err := s.Update(ctx, func(ctx context.Context, tx Txn) error {
		_, err := tx.Get(ctx, AssetKey(1))
		assert.ErrorIs(t, err, common.ErrNotFound)
		return nil
	})
	require.NoError(t, err)
	assert.Empty(t, mr.Keys())
}

func TestOpenRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := OpenRedis(context.Background(), RedisOptions{Addr: addr})
	assert.Error(t, err)
}
