package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hashworks/perimetr/internal/config"
	"github.com/hashworks/perimetr/internal/dms"
	"github.com/hashworks/perimetr/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "perimetr-dms",
	Short: "Service that checks endpoints for signed timestamps and executes commands when thresholds are reached.",
	RunE:  run,
}

var configPath string

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultDMSConfigPath, "Path to config file")
}

// Execute runs the root command and exits non-zero on error, including
// when the sweep completes without finding any valid timestamp -- this
// mirrors the original tool's behavior of signaling callers (cron, systemd
// timers) that the switch is effectively unarmed.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*dms.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var cfg dms.Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// persistConfig rewrites path with cfg's current state. Unlike the layer
// store, the config file is rewritten directly rather than via
// temp-then-rename: it has a single writer (one sweep runs at a time, via
// cron or a systemd timer) so the stronger atomicity guarantee isn't
// needed here.
func persistConfig(path string, cfg *dms.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()
	return enc.Encode(cfg)
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	absConfigPath, err := filepath.Abs(configPath)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	ev := dms.Evaluator{
		Fetch:  dms.HTTPFetch,
		Verify: dms.VerifyPGPSignature,
		Persist: func(c *dms.Config) error {
			return persistConfig(configPath, c)
		},
		BaseDir: filepath.Dir(absConfigPath),
	}

	if err := ev.Evaluate(cfg); err != nil {
		if !errors.Is(err, dms.ErrNoValidTimestamp) {
			return err
		}
		log.Log().Warn("perimetr-dms", "msg", "sweep ended without a valid timestamp", "err", err.Error())
		fmt.Println("No valid timestamp found. Exiting.")
		os.Exit(1)
	}

	return nil
}
