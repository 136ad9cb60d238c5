package registry

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Typed views over the open config maps for the kinds whose settings the
// engine itself needs to read. Decoding is weakly typed to tolerate JSON
// numerics and stringly-typed canvas forms.

// ScheduleConfig is the typed config of trigger.schedule.
type ScheduleConfig struct {
	Cron     string `mapstructure:"cron"`
	Timezone string `mapstructure:"timezone"`
}

// NotifyConfig is the typed config of action.notify.
type NotifyConfig struct {
	Channel     string `mapstructure:"channel"`
	Destination string `mapstructure:"destination"`
	Message     string `mapstructure:"message"`
}

// HTTPConfig is the typed config of action.http.
type HTTPConfig struct {
	URL    string `mapstructure:"url"`
	Method string `mapstructure:"method"`
}

// DecodeConfig decodes an open config map into one of the typed views.
func DecodeConfig(config map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := dec.Decode(config); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}
