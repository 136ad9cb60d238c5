package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/domain"
)

// RunGraphStoreContract runs a suite of tests to verify that a GraphStore
// implementation adheres to the defined interface contract.
func RunGraphStoreContract(t *testing.T, store GraphStore) {
	ctx := context.Background()
	key := "contract-test-graph-" + time.Now().Format("20060102150405")

	sample := domain.Graph{
		Name: "morning digest",
		Nodes: []domain.Node{
			{ID: "t1", Kind: "trigger.schedule", Role: domain.RoleTrigger, Label: "Schedule 0 9 * * *",
				Config: map[string]any{"cron": "0 9 * * *"}},
			{ID: "a1", Kind: "action.notify", Role: domain.RoleAction, Label: "Notify #general",
				Position: domain.Position{X: 120, Y: 40},
				Config:   map[string]any{"channel": "#general"}},
		},
		Edges: []domain.Edge{{ID: "e1", Source: "t1", Target: "a1"}},
	}

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, key, sample)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sample.Name, loaded.Name)
		require.Len(t, loaded.Nodes, 2)
		assert.Equal(t, "t1", loaded.Nodes[0].ID)
		assert.Equal(t, "trigger.schedule", loaded.Nodes[0].Kind)
		assert.Equal(t, "0 9 * * *", loaded.Nodes[0].Config["cron"])
		assert.Equal(t, sample.Nodes[1].Position, loaded.Nodes[1].Position)
		require.Len(t, loaded.Edges, 1)
		assert.Equal(t, sample.Edges[0], loaded.Edges[0])
	})

	t.Run("Load Is Isolated", func(t *testing.T) {
		first, err := store.Load(ctx, key)
		require.NoError(t, err)

		// Mutating a loaded copy must not leak into the store.
		first.Nodes[0].Config["cron"] = "tampered"
		first.Name = "tampered"

		second, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, sample.Name, second.Name)
		assert.Equal(t, "0 9 * * *", second.Nodes[0].Config["cron"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrGraphNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, sample))
		require.NoError(t, store.Delete(ctx, key))

		_, err := store.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrGraphNotFound, "Load after Delete should return ErrGraphNotFound")

		assert.NoError(t, store.Delete(ctx, key), "deleting a missing key should not fail")
	})

	t.Run("List", func(t *testing.T) {
		key1 := key + "-1"
		key2 := key + "-2"
		require.NoError(t, store.Save(ctx, key1, sample))
		require.NoError(t, store.Save(ctx, key2, sample))

		defer func() {
			_ = store.Delete(ctx, key1)
			_ = store.Delete(ctx, key2)
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, key1)
		assert.Contains(t, keys, key2)
	})
}
