package dms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestEvaluateAdoptsNewerTimestampAndResetsTriggers(t *testing.T) {
	triggeredTrue := true
	cfg := &Config{
		TimestampSources: []string{"https://example.com/ts"},
		PGPKeyringFile:   "keyring.gpg",
		LastValidTimestamp: func() *time.Time {
			v := ts("2024-01-01T00:00:00Z")
			return &v
		}(),
		ThresholdActions: []Action{
			{ThresholdSeconds: 3600, Triggered: &triggeredTrue},
			{ThresholdSeconds: 86400, Triggered: &triggeredTrue},
		},
	}

	persisted := 0
	ev := Evaluator{
		Fetch:   func(string) ([]byte, error) { return []byte("signed-blob"), nil },
		Verify:  func([]byte, string) ([]byte, error) { return []byte("2024-01-02T00:00:00Z\n"), nil },
		Persist: func(*Config) error { persisted++; return nil },
		Now:     func() time.Time { return ts("2024-01-02T00:00:00Z") },
	}

	require.NoError(t, ev.Evaluate(cfg))

	assert.Equal(t, ts("2024-01-02T00:00:00Z"), *cfg.LastValidTimestamp)
	assert.False(t, cfg.ThresholdActions[0].IsTriggered())
	assert.False(t, cfg.ThresholdActions[1].IsTriggered())
	// Once for the mid-sweep adoption, once for the end-of-sweep write.
	assert.Equal(t, 2, persisted)
}

func TestEvaluateFiresActionPastThreshold(t *testing.T) {
	baseline := ts("2024-01-01T00:00:00Z")
	cfg := &Config{
		LastValidTimestamp: &baseline,
		ThresholdActions: []Action{
			{ThresholdSeconds: 10, Commands: []Command{{Program: "true"}}},
		},
	}

	ev := Evaluator{
		Fetch:   func(string) ([]byte, error) { return nil, assertNoSources(t) },
		Verify:  func([]byte, string) ([]byte, error) { return nil, nil },
		Persist: func(*Config) error { return nil },
		Now:     func() time.Time { return baseline.Add(time.Hour) },
		BaseDir: t.TempDir(),
	}

	require.NoError(t, ev.Evaluate(cfg))
	assert.True(t, cfg.ThresholdActions[0].IsTriggered())
}

func TestEvaluateSkipsActionBelowThreshold(t *testing.T) {
	baseline := ts("2024-01-01T00:00:00Z")
	cfg := &Config{
		LastValidTimestamp: &baseline,
		ThresholdActions: []Action{
			{ThresholdSeconds: 86400, Commands: []Command{{Program: "true"}}},
		},
	}

	ev := Evaluator{
		Persist: func(*Config) error { return nil },
		Now:     func() time.Time { return baseline.Add(time.Hour) },
		BaseDir: t.TempDir(),
	}

	require.NoError(t, ev.Evaluate(cfg))
	assert.False(t, cfg.ThresholdActions[0].IsTriggered())
}

func TestEvaluateMovesPastFailedActionToNext(t *testing.T) {
	baseline := ts("2024-01-01T00:00:00Z")
	cfg := &Config{
		LastValidTimestamp: &baseline,
		ThresholdActions: []Action{
			{ThresholdSeconds: 1, Commands: []Command{{Program: "false"}}},
			{ThresholdSeconds: 1, Commands: []Command{{Program: "true"}}},
		},
	}

	ev := Evaluator{
		Persist: func(*Config) error { return nil },
		Now:     func() time.Time { return baseline.Add(time.Hour) },
		BaseDir: t.TempDir(),
	}

	require.NoError(t, ev.Evaluate(cfg))
	assert.False(t, cfg.ThresholdActions[0].IsTriggered())
	assert.True(t, cfg.ThresholdActions[1].IsTriggered())
}

func TestEvaluateReturnsErrorWithoutAnyValidTimestamp(t *testing.T) {
	cfg := &Config{
		TimestampSources: []string{"https://example.com/ts"},
	}
	ev := Evaluator{
		Fetch:   func(string) ([]byte, error) { return nil, assertFetchErr() },
		Persist: func(*Config) error { return nil },
		Now:     time.Now,
	}
	err := ev.Evaluate(cfg)
	assert.ErrorIs(t, err, ErrNoValidTimestamp)
}

func assertFetchErr() error {
	return assertErr{}
}

type assertErr struct{}

func (assertErr) Error() string { return "network unreachable" }

func assertNoSources(t *testing.T) error {
	t.Helper()
	t.Fatal("Fetch should not be called when there are no timestamp sources")
	return nil
}
