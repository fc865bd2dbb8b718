package layer

import "github.com/hashworks/perimetr/internal/vsss"

// State is the layer's position in its Idle -> Decrypting -> Decrypted
// lifecycle. It serializes to exactly these lowercase strings.
type State string

const (
	StateIdle       State = "idle"
	StateDecrypting State = "decrypting"
	StateDecrypted  State = "decrypted"
)

// Command is one step of a layer's decryption pipeline.
type Command struct {
	Program     string   `yaml:"program" json:"program"`
	Args        []string `yaml:"args,omitempty" json:"args,omitempty"`
	WorkingDir  string   `yaml:"working_dir,omitempty" json:"working_dir,omitempty"`
	SecretStdin bool     `yaml:"secret_stdin" json:"secret_stdin"`
}

// VSSSMetadata is the optional Feldman configuration attached to a layer.
// Absent iff threshold == 1 and no splitting was ever performed.
type VSSSMetadata struct {
	Threshold int                  `yaml:"threshold" json:"threshold"`
	Verifier  vsss.FeldmanVerifier `yaml:"feldman_verifier" json:"feldman_verifier"`
}

// Layer is one protected artifact's durable record.
type Layer struct {
	UUID     string        `yaml:"uuid" json:"uuid"`
	State    State         `yaml:"state" json:"state"`
	Commands []Command     `yaml:"commands" json:"commands"`
	VSSS     *VSSSMetadata `yaml:"vsss,omitempty" json:"vsss,omitempty"`
}

// Threshold returns the number of shares required to reconstruct this
// layer's secret: the configured VSSS threshold, or 1 if no VSSS metadata
// was ever attached (the T=1 fast path).
func (l Layer) Threshold() int {
	if l.VSSS == nil {
		return 1
	}
	return l.VSSS.Threshold
}

// New constructs an Idle layer with the given UUID and no commands.
func New(uuid string) Layer {
	return Layer{
		UUID:     uuid,
		State:    StateIdle,
		Commands: []Command{},
	}
}
