package cmd

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/hashworks/perimetr/internal/dms"
)

func TestLoadConfigAndPersistConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dms.yml")

	ts := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	original := &dms.Config{
		TimestampSources:   []string{"https://example.com/ts"},
		PGPKeyringFile:     "keyring.gpg",
		LastValidTimestamp: &ts,
		ThresholdActions: []dms.Action{
			{ThresholdSeconds: 3600},
		},
	}

	if err := persistConfig(path, original); err != nil {
		t.Fatalf("persistConfig: %v", err)
	}

	loaded, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if len(loaded.TimestampSources) != 1 || loaded.TimestampSources[0] != "https://example.com/ts" {
		t.Fatalf("unexpected timestamp sources: %+v", loaded.TimestampSources)
	}
	if loaded.LastValidTimestamp == nil || !loaded.LastValidTimestamp.Equal(ts) {
		t.Fatalf("unexpected last valid timestamp: %+v", loaded.LastValidTimestamp)
	}
	if len(loaded.ThresholdActions) != 1 || loaded.ThresholdActions[0].ThresholdSeconds != 3600 {
		t.Fatalf("unexpected threshold actions: %+v", loaded.ThresholdActions)
	}
}

func TestLoadConfigReportsMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
