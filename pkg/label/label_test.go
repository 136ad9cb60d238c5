package label_test

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"

	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/label"
)

func TestGenerate_KindRules(t *testing.T) {
	cases := []struct {
		kind   string
		config map[string]any
		want   string
	}{
		{"trigger.schedule", map[string]any{"cron": "0 9 * * *"}, "Schedule 0 9 * * *"},
		{"trigger.schedule", nil, "Schedule"},
		{"trigger.webhook", map[string]any{"path": "/orders"}, "Webhook /orders"},
		{"logic.filter", map[string]any{"field": "status"}, "Filter status"},
		{"logic.delay", map[string]any{"duration": "2h"}, "Wait 2h"},
		{"ai.summarize", nil, "Summarize"},
		{"action.notify", map[string]any{"channel": "#ops"}, "Notify #ops"},
		{"action.notify", map[string]any{"destination": "ops team"}, "Notify ops team"},
		{"action.email", map[string]any{"to": "a@b.co"}, "Email a@b.co"},
		{"action.http", map[string]any{"method": "post", "url": "api.io/x"}, "POST api.io/x"},
	}

	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			assert.Equal(t, tc.want, label.Generate(tc.kind, tc.config))
		})
	}
}

func TestGenerate_FallsBackToKind(t *testing.T) {
	assert.Equal(t, "custom.thing", label.Generate("custom.thing", nil))
}

func TestGenerate_NeverEmpty(t *testing.T) {
	assert.NotEmpty(t, label.Generate("", nil))
	assert.NotEmpty(t, label.Generate("   ", nil))
}

func TestGenerate_Truncation(t *testing.T) {
	long := label.Generate("action.email", map[string]any{
		"to": "some.very.long.address@example-corporation.com",
	})
	assert.LessOrEqual(t, runewidth.StringWidth(long), label.MaxWidth)
	assert.Contains(t, long, "…")
}

func TestGenerate_WideRunes(t *testing.T) {
	// CJK runes occupy two cells; width, not rune count, is what is bounded.
	wide := label.Generate("action.notify", map[string]any{"channel": "通知チャンネルの名前がとても長い場合"})
	assert.LessOrEqual(t, runewidth.StringWidth(wide), label.MaxWidth)
}

func TestGenerate_Deterministic(t *testing.T) {
	config := map[string]any{"cron": "30 8 * * 1-5"}
	first := label.Generate("trigger.schedule", config)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, label.Generate("trigger.schedule", config))
	}
}

func TestGenerate_CoercesScalarConfig(t *testing.T) {
	// Typed config decoding is weakly typed, so canvas forms sending
	// numerics still produce a usable label.
	assert.Equal(t, "Schedule 42", label.Generate("trigger.schedule", map[string]any{"cron": 42}))
}

func TestGenerate_UndecodableConfigFallsBack(t *testing.T) {
	assert.Equal(t, "Schedule", label.Generate("trigger.schedule", map[string]any{
		"cron": map[string]any{"nested": true},
	}))
	assert.Equal(t, "Filter", label.Generate("logic.filter", map[string]any{"field": 42}))
}
