package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransport(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	p := NewFromAddr(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	require.NoError(t, p.Connect(context.Background()))
	return p, mr
}

func TestNewRejectsNilClient(t *testing.T) {
	_, err := New(Config{})
	require.ErrorIs(t, err, ErrNilClient)
}

func TestGetSetDelete(t *testing.T) {
	ctx := context.Background()
	p, _ := newTestTransport(t)

	_, ok, err := p.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, p.Set(ctx, "k", []byte{0, 1, 2, 0xff}, 7, 0))
	got, ok, err := p.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte{0, 1, 2, 0xff}, got)

	require.NoError(t, p.Delete(ctx, "k"))
	require.NoError(t, p.Delete(ctx, "k"), "second delete must be a no-op")

	_, ok, err = p.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetTTLExpires(t *testing.T) {
	ctx := context.Background()
	p, mr := newTestTransport(t)

	require.NoError(t, p.Set(ctx, "ttl", []byte("v"), 0, 10*time.Second))
	mr.FastForward(11 * time.Second)

	_, ok, err := p.Get(ctx, "ttl")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReplaceOnlyExisting(t *testing.T) {
	ctx := context.Background()
	p, mr := newTestTransport(t)

	ok, err := p.Replace(ctx, "absent", []byte("v"), 0, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists("absent"), "replace must not create keys")

	require.NoError(t, p.Set(ctx, "k", []byte("old"), 0, 5*time.Second))
	ok, err = p.Replace(ctx, "k", []byte("new"), 0, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	// replace refreshed the TTL
	mr.FastForward(30 * time.Second)
	got, ok, err := p.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", string(got))
}

func TestFlushAll(t *testing.T) {
	ctx := context.Background()
	p, _ := newTestTransport(t)

	require.NoError(t, p.Set(ctx, "a", []byte("1"), 0, 0))
	require.NoError(t, p.Set(ctx, "other:b", []byte("2"), 0, 0))
	require.NoError(t, p.FlushAll(ctx))

	for _, k := range []string{"a", "other:b"} {
		_, ok, err := p.Get(ctx, k)
		require.NoError(t, err)
		assert.False(t, ok, k)
	}
}

func TestConnectFailsWhenServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	p := NewFromAddr(addr, "", 0)
	defer p.Close(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.Error(t, p.Connect(ctx))
}

func TestCloseDoesNotCloseBorrowedClient(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	p, err := New(Config{Client: rdb})
	require.NoError(t, err)
	require.NoError(t, p.Close(ctx))
	require.NoError(t, rdb.Ping(ctx).Err())
	assert.True(t, p.Available())
}
