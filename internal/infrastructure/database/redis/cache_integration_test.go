//go:build integration

package redis_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/turtacn/CineMood/internal/infrastructure/database/redis"
	"github.com/turtacn/CineMood/internal/infrastructure/monitoring/logging"
)

// startRedis launches a Redis 7 container and returns a connected client.
func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client, err := redis.NewClient(&redis.RedisConfig{
		Addrs: []string{fmt.Sprintf("%s:%s", host, port.Port())},
	}, logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisCache_RoundTrip(t *testing.T) {
	client := startRedis(t)
	cache := redis.NewRedisCache(client, logging.NewNopLogger(), redis.WithPrefix("it:"))
	ctx := context.Background()

	type entry struct {
		Emotion string   `json:"emotion"`
		Titles  []string `json:"titles"`
	}

	var got entry
	assert.ErrorIs(t, cache.Get(ctx, "rec:v1:happy:20", &got), redis.ErrCacheMiss)

	want := entry{Emotion: "happy", Titles: []string{"Toy Story", "Up"}}
	require.NoError(t, cache.Set(ctx, "rec:v1:happy:20", want, time.Minute))
	require.NoError(t, cache.Get(ctx, "rec:v1:happy:20", &got))
	assert.Equal(t, want, got)

	loads := 0
	loader := func(context.Context) (interface{}, error) {
		loads++
		return entry{Emotion: "sad", Titles: []string{"Heat"}}, nil
	}
	for i := 0; i < 2; i++ {
		var sad entry
		require.NoError(t, cache.GetOrSet(ctx, "rec:v1:sad:20", &sad, time.Minute, loader))
		assert.Equal(t, []string{"Heat"}, sad.Titles)
	}
	assert.Equal(t, 1, loads)
}

//Personal.AI order the ending
