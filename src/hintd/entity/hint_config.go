package entity

import (
	"encoding/json"
	"fmt"
)

// TriggerList is an ordered collection of trigger event names. On the wire it
// accepts either a single name or a list of names.
type TriggerList []string

// UnmarshalJSON accepts "textDocument/didSave" as shorthand for a one-element list.
func (l *TriggerList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = TriggerList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("triggers must be a string or a list of strings: %w", err)
	}
	*l = TriggerList(many)
	return nil
}

// UnmarshalYAML accepts the same shorthand in configuration and workspace
// override files. The legacy signature is required: go.uber.org/config
// decodes through yaml.v2, which ignores the yaml.v3 node form, while
// yaml.v3 still falls back to this one.
func (l *TriggerList) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		*l = TriggerList{single}
		return nil
	}

	var many []string
	if err := unmarshal(&many); err != nil {
		return fmt.Errorf("triggers must be a string or a list of strings: %w", err)
	}
	*l = TriggerList(many)
	return nil
}

// HintConfig is a normalized hint configuration.
// Triggers is always a non-empty ordered collection of distinct event names.
type HintConfig struct {
	Triggers         []string
	EnabledAtStartup bool
	// RootCommand resolves the workspace root directory for a document.
	// It is executed once per document-session start; a malformed command is
	// not validated here and fails at its first invocation.
	RootCommand []string
}

// RawHintOptions are caller-supplied options for setup. Unset fields keep
// their configured defaults.
type RawHintOptions struct {
	Triggers         TriggerList `json:"triggers,omitempty" yaml:"triggers,omitempty"`
	EnabledAtStartup *bool       `json:"enabledAtStartup,omitempty" yaml:"enabledAtStartup,omitempty"`
	RootCommand      []string    `json:"rootCommand,omitempty" yaml:"rootCommand,omitempty"`
}

// DefaultTrigger is used when neither the configuration nor the caller names any trigger.
const DefaultTrigger = "textDocument/didSave"

// NormalizeHintOptions merges caller-supplied options over defaults. Caller
// values win only where explicitly set. Trigger names are deduplicated with
// their first-seen order preserved.
func NormalizeHintOptions(raw RawHintOptions, defaults HintConfig) HintConfig {
	cfg := HintConfig{
		Triggers:         append([]string(nil), defaults.Triggers...),
		EnabledAtStartup: defaults.EnabledAtStartup,
		RootCommand:      append([]string(nil), defaults.RootCommand...),
	}

	if len(raw.Triggers) > 0 {
		cfg.Triggers = append([]string(nil), raw.Triggers...)
	}
	if raw.EnabledAtStartup != nil {
		cfg.EnabledAtStartup = *raw.EnabledAtStartup
	}
	if len(raw.RootCommand) > 0 {
		cfg.RootCommand = append([]string(nil), raw.RootCommand...)
	}

	cfg.Triggers = dedupeTriggers(cfg.Triggers)
	if len(cfg.Triggers) == 0 {
		cfg.Triggers = []string{DefaultTrigger}
	}

	return cfg
}

func dedupeTriggers(triggers []string) []string {
	seen := make(map[string]struct{}, len(triggers))
	result := make([]string, 0, len(triggers))
	for _, trigger := range triggers {
		if trigger == "" {
			continue
		}
		if _, ok := seen[trigger]; ok {
			continue
		}
		seen[trigger] = struct{}{}
		result = append(result, trigger)
	}
	return result
}
