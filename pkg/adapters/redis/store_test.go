package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/adapters/redis"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/domain"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/ports"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	return mr, backend.NewClient(&backend.Options{Addr: mr.Addr()})
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newTestClient(t)
	ports.RunGraphStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newTestClient(t)
	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	g := domain.Graph{Name: "ephemeral", Nodes: []domain.Node{
		{ID: "t1", Kind: "trigger.webhook", Role: domain.RoleTrigger, Label: "Webhook"},
	}}

	require.NoError(t, store.Save(ctx, "draft", g))

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, keys, "draft")

	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "draft")
	assert.ErrorIs(t, err, domain.ErrGraphNotFound)

	// List filters out index entries whose document already expired.
	keys, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newTestClient(t)
	store := redis.NewFromClient(client, redis.WithPrefix("custom:flows:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "mine", domain.Graph{Name: "mine"}))

	assert.True(t, mr.Exists("custom:flows:mine"), "expected document under custom prefix")
	assert.True(t, mr.Exists("custom:flows:index"), "expected index under custom prefix")

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, keys, "mine")
}
