package registry_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/domain"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/registry"
)

func TestLookup(t *testing.T) {
	k, ok := registry.Lookup("trigger.schedule")
	require.True(t, ok)
	assert.Equal(t, "trigger.schedule", k.ID)
	assert.Equal(t, domain.RoleTrigger, k.Role())

	_, ok = registry.Lookup("trigger.psychic")
	assert.False(t, ok)
	assert.False(t, registry.Known("trigger.psychic"))
}

func TestAll_SortedAndConsistent(t *testing.T) {
	kinds := registry.All()
	require.NotEmpty(t, kinds)

	assert.True(t, sort.SliceIsSorted(kinds, func(i, j int) bool {
		return kinds[i].ID < kinds[j].ID
	}))

	for _, k := range kinds {
		assert.True(t, registry.Known(k.ID))
		assert.NotEmpty(t, k.Description, k.ID)
	}
}

func TestLintConfig(t *testing.T) {
	t.Run("Clean Config", func(t *testing.T) {
		assert.Empty(t, registry.LintConfig("trigger.schedule", map[string]any{"cron": "0 9 * * 1"}))
	})

	t.Run("Missing Field Warns", func(t *testing.T) {
		issues := registry.LintConfig("trigger.schedule", map[string]any{})
		require.Len(t, issues, 1)
		assert.Equal(t, domain.CodeBadPatch, issues[0].Code)
	})

	t.Run("Wrong Type Warns", func(t *testing.T) {
		issues := registry.LintConfig("action.http", map[string]any{"url": 42})
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0].Message, "url")
	})

	t.Run("Unknown Kind Warns", func(t *testing.T) {
		issues := registry.LintConfig("mystery.kind", nil)
		require.Len(t, issues, 1)
		assert.Equal(t, "mystery.kind", issues[0].Ref)
	})

	t.Run("Extra Keys Are Tolerated", func(t *testing.T) {
		assert.Empty(t, registry.LintConfig("action.http", map[string]any{
			"url":     "https://example.com",
			"comment": "kept for the UI",
		}))
	})
}

func TestLintGraph(t *testing.T) {
	nodes := []domain.Node{
		{ID: "t1", Kind: "trigger.schedule", Config: map[string]any{"cron": "0 9 * * 1"}},
		{ID: "a1", Kind: "action.http", Config: map[string]any{"url": 42}},
		{ID: "x1", Kind: "mystery.kind"},
	}

	issues := registry.LintGraph(nodes)
	require.Len(t, issues, 2)
	assert.Equal(t, "a1", issues[0].Ref, "warnings point at the node, not the kind")
	assert.Equal(t, "x1", issues[1].Ref)
}

func TestDecodeConfig(t *testing.T) {
	var sched registry.ScheduleConfig
	err := registry.DecodeConfig(map[string]any{"cron": "0 9 * * 1", "timezone": "UTC"}, &sched)
	require.NoError(t, err)
	assert.Equal(t, "0 9 * * 1", sched.Cron)
	assert.Equal(t, "UTC", sched.Timezone)

	// Weak typing tolerates JSON numerics arriving where strings are wanted.
	var http registry.HTTPConfig
	err = registry.DecodeConfig(map[string]any{"url": "https://example.com", "method": 1}, &http)
	require.NoError(t, err)
	assert.Equal(t, "1", http.Method)
}
