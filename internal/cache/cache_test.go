package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetSetExpire(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	c := New(30 * time.Second)
	c.now = func() time.Time { return now }

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", []byte("payload")))

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("payload"), got)

	now = now.Add(31 * time.Second)

	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "entry should expire after ttl")
}

func TestMemory_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	c := New(0)

	require.NoError(t, c.Set(ctx, "a", []byte("1")))
	require.NoError(t, c.Set(ctx, "b", []byte("2")))

	require.NoError(t, c.Delete(ctx, "a"))
	_, ok, _ := c.Get(ctx, "a")
	assert.False(t, ok)

	c.Clear()
	_, ok, _ = c.Get(ctx, "b")
	assert.False(t, ok)
}

func TestRedis_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	c := NewRedis(rdb, time.Minute)

	mock.ExpectGet("k").RedisNil()
	mock.ExpectSet("k", []byte("payload"), time.Minute).SetVal("OK")
	mock.ExpectGet("k").SetVal("payload")
	mock.ExpectDel("k").SetVal(1)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", []byte("payload")))

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("payload"), got)

	require.NoError(t, c.Delete(ctx, "k"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis_GetError(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := NewRedis(rdb, time.Minute)

	mock.ExpectGet("k").SetErr(errors.New("redis down"))

	_, ok, err := c.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestTournamentListKey(t *testing.T) {
	assert.Equal(t, "tournaments:list:v1:collection=tournament:limit=0", TournamentListKey(" Tournament ", 0))
}
