package dms

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashworks/perimetr/internal/log"
	"github.com/hashworks/perimetr/internal/pipeline"
)

// FetchFunc retrieves the raw body of a timestamp source URL.
type FetchFunc func(url string) ([]byte, error)

// VerifyFunc checks signature against keyringFile and returns the verified
// plaintext, matching VerifyPGPSignature's signature so tests can stub it.
type VerifyFunc func(signature []byte, keyringFile string) ([]byte, error)

// PersistFunc durably rewrites cfg, called both mid-sweep (on every newer
// timestamp) and once more at the end of the sweep.
type PersistFunc func(cfg *Config) error

// Evaluator runs a single dead-man's-switch sweep.
type Evaluator struct {
	Fetch   FetchFunc
	Verify  VerifyFunc
	Persist PersistFunc
	Now     func() time.Time

	// BaseDir resolves relative command working directories, normally
	// the directory containing the config file.
	BaseDir string
}

// HTTPFetch is the default FetchFunc, a blocking GET with the response
// body fully buffered.
func HTTPFetch(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// Evaluate performs one sweep over cfg: it scans every timestamp source
// adopting the newest verified timestamp, then walks every threshold
// action firing those whose time has come.
func (e Evaluator) Evaluate(cfg *Config) error {
	log.Audit(log.AuditEntry{
		Timestamp: e.now(),
		Action:    log.AuditDMSSweep,
		Resource:  filepath.Clean(e.BaseDir),
		State:     log.AuditCreated,
	})

	for _, url := range cfg.TimestampSources {
		if err := e.considerSource(cfg, url); err != nil {
			log.Log().Error("dms", "msg", "timestamp source rejected", "url", url, "err", err.Error())
		}
	}

	if cfg.LastValidTimestamp == nil {
		return ErrNoValidTimestamp
	}

	e.runActions(cfg)

	if err := e.Persist(cfg); err != nil {
		return fmt.Errorf("dms: persist config: %w", err)
	}
	return nil
}

// considerSource fetches and verifies one source, adopting its timestamp
// (and persisting immediately) if it is newer than the current baseline.
// Any failure here is non-fatal to the sweep: the caller logs and moves to
// the next source.
func (e Evaluator) considerSource(cfg *Config, url string) error {
	body, err := e.Fetch(url)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	plaintext, err := e.Verify(body, cfg.PGPKeyringFile)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(string(plaintext)))
	if err != nil {
		return fmt.Errorf("parse timestamp: %w", err)
	}

	if cfg.LastValidTimestamp != nil && !ts.After(*cfg.LastValidTimestamp) {
		return nil
	}

	cfg.LastValidTimestamp = &ts
	cfg.ResetTriggers()
	if err := e.Persist(cfg); err != nil {
		return fmt.Errorf("persist: %w", err)
	}
	return nil
}

// runActions walks threshold_actions in order. A failure partway through
// one action's command pipeline moves on to the next action; it never
// aborts the sweep.
func (e Evaluator) runActions(cfg *Config) {
	now := e.now()
	baseline := *cfg.LastValidTimestamp

	for i := range cfg.ThresholdActions {
		action := &cfg.ThresholdActions[i]
		if action.IsTriggered() {
			continue
		}

		elapsed := now.Sub(baseline)
		if elapsed < time.Duration(action.ThresholdSeconds)*time.Second {
			continue
		}

		steps := make([]pipeline.Step, len(action.Commands))
		for j, c := range action.Commands {
			step := pipeline.Step{Program: c.Program, Args: c.Args, WorkingDir: c.WorkingDir}
			if c.Stdin != nil {
				step.Stdin = []byte(*c.Stdin)
			}
			steps[j] = step
		}

		if err := pipeline.Run(e.BaseDir, steps); err != nil {
			log.Log().Error("dms", "msg", "action failed, skipping to next", "err", err.Error())
			continue
		}

		triggered := true
		action.Triggered = &triggered
		log.Audit(log.AuditEntry{
			Timestamp: now,
			Action:    log.AuditDMSActionFired,
			Resource:  filepath.Clean(e.BaseDir),
			State:     log.AuditSuccess,
		})
	}
}

func (e Evaluator) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

