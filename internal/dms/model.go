package dms

import "time"

// Command is one step of an action's command pipeline.
type Command struct {
	Program    string   `yaml:"program"`
	Args       []string `yaml:"args,omitempty"`
	Stdin      *string  `yaml:"stdin,omitempty"`
	WorkingDir string   `yaml:"working_dir,omitempty"`
}

// Action fires its Commands once ThresholdSeconds have elapsed since the
// config's LastValidTimestamp, and then latches Triggered so it never
// fires twice for the same timestamp.
type Action struct {
	Commands         []Command `yaml:"commands"`
	ThresholdSeconds uint64    `yaml:"threshold_seconds"`
	Triggered        *bool     `yaml:"triggered,omitempty"`
}

// IsTriggered reports whether this action has already fired for the
// current baseline.
func (a Action) IsTriggered() bool {
	return a.Triggered != nil && *a.Triggered
}

// Config is the dead-man's-switch's durable document.
type Config struct {
	TimestampSources   []string   `yaml:"timestamp_sources"`
	PGPKeyringFile     string     `yaml:"pgp_keyring_file"`
	ThresholdActions   []Action   `yaml:"threshold_actions"`
	LastValidTimestamp *time.Time `yaml:"last_valid_timestamp,omitempty"`
}

// ResetTriggers clears every action's Triggered flag, called whenever a
// newer valid timestamp is adopted.
func (c *Config) ResetTriggers() {
	f := false
	for i := range c.ThresholdActions {
		c.ThresholdActions[i].Triggered = &f
	}
}
