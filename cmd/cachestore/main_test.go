package main

import (
	"bytes"
	"context"
	"errors"
	"net"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/cachestore"
)

func redisEnv(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)

	chdir(t, t.TempDir())
	t.Setenv("CACHESTORE_BACKEND", "redis")
	t.Setenv("CACHESTORE_HOST", host)
	t.Setenv("CACHESTORE_PORT", port)
	t.Setenv("CACHESTORE_PREFIX", "cli:")
	t.Setenv("CACHESTORE_LOG_LEVEL", "warn")
	return mr
}

func exec(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := run(context.Background(), args, &out, &errOut)
	return out.String(), err
}

func TestSetGetRemove(t *testing.T) {
	mr := redisEnv(t)

	_, err := exec(t, "set", "-ttl", "1m", "greeting", "hello")
	require.NoError(t, err)
	assert.True(t, mr.Exists("cli:greeting"))

	out, err := exec(t, "get", "greeting")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)

	_, err = exec(t, "rm", "greeting")
	require.NoError(t, err)

	out, err = exec(t, "get", "greeting")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFlush(t *testing.T) {
	mr := redisEnv(t)

	_, err := exec(t, "set", "a", "1")
	require.NoError(t, err)
	require.NoError(t, mr.Set("unrelated", "x"))

	_, err = exec(t, "flush")
	require.NoError(t, err)
	assert.Empty(t, mr.Keys())
}

func TestUsageErrors(t *testing.T) {
	redisEnv(t)

	cases := [][]string{
		nil,
		{"get"},
		{"set", "only-key"},
		{"rm", "a", "b"},
		{"flush", "extra"},
		{"bogus"},
	}
	for _, args := range cases {
		_, err := exec(t, args...)
		if !errors.Is(err, errUsage) {
			t.Fatalf("%q: err=%v, want usage error", strings.Join(args, " "), err)
		}
	}
}

func TestConnectionFailure(t *testing.T) {
	mr := redisEnv(t)
	mr.Close()

	_, err := exec(t, "get", "k")
	require.ErrorIs(t, err, cachestore.ErrConnection)
}
