/*
Package label derives display labels for nodes from their kind and config.

Generate is pure and total: every input yields a non-empty string of at most
MaxWidth visible characters, so callers never need a fallback of their own.
*/
package label

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/registry"
)

// MaxWidth is the maximum visible width of a label, measured in terminal
// cells (wide runes count as two).
const MaxWidth = 24

// Generate returns the display label for a node of the given kind.
// Per-kind rules surface the most salient config field; unrecognized kinds
// fall back to the raw kind identifier.
func Generate(kind string, config map[string]any) string {
	s := generate(kind, config)
	if strings.TrimSpace(s) == "" {
		s = kind
	}
	if strings.TrimSpace(s) == "" {
		s = "Step"
	}
	return Truncate(s)
}

// Truncate clips a string to MaxWidth visible characters, appending an
// ellipsis when anything was cut.
func Truncate(s string) string {
	return runewidth.Truncate(s, MaxWidth, "…")
}

func generate(kind string, config map[string]any) string {
	switch kind {
	case "trigger.schedule":
		var c registry.ScheduleConfig
		if err := registry.DecodeConfig(config, &c); err == nil && c.Cron != "" {
			return "Schedule " + c.Cron
		}
		return "Schedule"
	case "trigger.webhook":
		if p := str(config, "path"); p != "" {
			return "Webhook " + p
		}
		return "Webhook"
	case "trigger.email":
		if from := str(config, "from"); from != "" {
			return "Email from " + from
		}
		return "Email received"
	case "logic.filter":
		if f := str(config, "field"); f != "" {
			return "Filter " + f
		}
		return "Filter"
	case "logic.branch":
		if f := str(config, "field"); f != "" {
			return "Branch on " + f
		}
		return "Branch"
	case "logic.delay":
		if d := str(config, "duration"); d != "" {
			return "Wait " + d
		}
		return "Wait"
	case "ai.summarize":
		return "Summarize"
	case "ai.classify":
		if labels := str(config, "labels"); labels != "" {
			return "Classify: " + labels
		}
		return "Classify"
	case "action.notify":
		var c registry.NotifyConfig
		if err := registry.DecodeConfig(config, &c); err == nil {
			if c.Channel != "" {
				return "Notify " + c.Channel
			}
			if c.Destination != "" {
				return "Notify " + c.Destination
			}
		}
		return "Send notification"
	case "action.email":
		if to := str(config, "to"); to != "" {
			return "Email " + to
		}
		return "Send email"
	case "action.http":
		var c registry.HTTPConfig
		if err := registry.DecodeConfig(config, &c); err == nil {
			method := strings.ToUpper(c.Method)
			switch {
			case method != "" && c.URL != "":
				return method + " " + c.URL
			case c.URL != "":
				return "Call " + c.URL
			}
		}
		return "HTTP request"
	}
	return kind
}

func str(config map[string]any, key string) string {
	if config == nil {
		return ""
	}
	switch v := config[key].(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}
