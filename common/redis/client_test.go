package redis

import (
	"context"
	"encoding/json"
	"testing"

	"relief-dispatch/common/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), &config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	require.NoError(t, Close(client))
	assert.NoError(t, Close(nil))
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect(context.Background(), &config.RedisConfig{Addr: "127.0.0.1:1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}

func TestPublishJSON_ReadRange(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedisClient(&config.RedisConfig{Addr: mr.Addr()})
	defer Close(client)
	ctx := context.Background()

	type event struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
	}

	id1, err := PublishJSON(ctx, client, "events", "created", event{ID: "a", Quantity: 1}, 0)
	require.NoError(t, err)
	id2, err := PublishJSON(ctx, client, "events", "created", event{ID: "b", Quantity: 2}, 0)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	entries, err := ReadRange(ctx, client, "events", "-", "+")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, id1, entries[0].ID)
	assert.Equal(t, "created", entries[1].Type)
	assert.False(t, entries[1].Timestamp.IsZero())

	var got event
	require.NoError(t, json.Unmarshal(entries[1].Payload, &got))
	assert.Equal(t, event{ID: "b", Quantity: 2}, got)
}

func TestPublishJSON_Unencodable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedisClient(&config.RedisConfig{Addr: mr.Addr()})
	defer Close(client)

	_, err := PublishJSON(context.Background(), client, "events", "bad", make(chan int), 0)
	assert.Error(t, err)
}

func TestReadRange_MissingStream(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedisClient(&config.RedisConfig{Addr: mr.Addr()})
	defer Close(client)

	entries, err := ReadRange(context.Background(), client, "nothing", "-", "+")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
