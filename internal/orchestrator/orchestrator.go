package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashworks/perimetr/internal/layer"
	"github.com/hashworks/perimetr/internal/log"
	"github.com/hashworks/perimetr/internal/pipeline"
	"github.com/hashworks/perimetr/internal/shares"
	"github.com/hashworks/perimetr/internal/vsss"
)

// AcceptOutcome reports what accepting a share resulted in.
type AcceptOutcome int

const (
	// Accepted means the share was stored but the threshold has not yet
	// been reached.
	Accepted AcceptOutcome = iota
	// ThresholdReached means the share was stored, the threshold was
	// reached, and a reconstruction task has been dispatched.
	ThresholdReached
)

// Orchestrator wires the layer metadata store and the share store
// together to implement C6.
type Orchestrator struct {
	LayerPath   string
	LayerSuffix string
	Store       shares.Store
}

// ListLayers recursively collects every layer document under LayerPath,
// logging (and skipping) any file that fails to parse.
func (o *Orchestrator) ListLayers() ([]layer.Layer, error) {
	return layer.List(o.LayerPath, o.LayerSuffix, func(path string, err error) {
		log.Log().Warn("orchestrator", "msg", "skipping unparsable layer file", "path", path, "err", err.Error())
	})
}

// AcceptShare locates the layer matching uuid, verifies shareB64 against
// its verifier (if any), persists it, and -- if the threshold is now met
// -- dispatches a detached reconstruction task. It returns layer.ErrNotFound
// if no matching layer file exists, or ErrInvalidShare if verification
// fails.
func (o *Orchestrator) AcceptShare(ctx context.Context, uuid, shareB64 string) (AcceptOutcome, error) {
	path, err := layer.Find(o.LayerPath, o.LayerSuffix, uuid, func(p string, err error) {
		log.Log().Warn("orchestrator", "msg", "skipping unparsable layer file", "path", p, "err", err.Error())
	})
	if err != nil {
		return 0, err
	}

	l, err := layer.Read(path)
	if err != nil {
		return 0, fmt.Errorf("orchestrator: re-read layer %s: %w", path, err)
	}

	threshold := l.Threshold()
	if l.VSSS != nil {
		share, perr := vsss.ShareFromBase64(shareB64)
		if perr != nil || !l.VSSS.Verifier.Verify(share) {
			log.Audit(log.AuditEntry{Timestamp: time.Now(), Action: log.AuditShareRejected, Resource: uuid, State: log.AuditErrored})
			return 0, ErrInvalidShare
		}
	}

	ok, err := o.Store.InsertShare(ctx, uuid, shareB64)
	if err != nil {
		return 0, fmt.Errorf("orchestrator: insert share: %w", err)
	}
	if !ok {
		return 0, ErrStorageFailure
	}
	log.Audit(log.AuditEntry{Timestamp: time.Now(), Action: log.AuditShareAccepted, Resource: uuid, State: log.AuditSuccess})

	count, err := o.Store.CountShares(ctx, uuid)
	if err != nil {
		return 0, fmt.Errorf("orchestrator: count shares: %w", err)
	}

	if count < int64(threshold) {
		return Accepted, nil
	}

	log.Audit(log.AuditEntry{Timestamp: time.Now(), Action: log.AuditThresholdReached, Resource: uuid, State: log.AuditSuccess})

	go func() {
		bg := context.Background()
		if err := Reconstruct(bg, o.Store, path); err != nil {
			log.Log().Error("orchestrator", "msg", "reconstruction failed", "uuid", uuid, "err", err.Error())
		}
	}()

	return ThresholdReached, nil
}

// Reconstruct re-reads the layer at path, claims it by writing
// state=Decrypting, reconstructs the secret from stored shares, and runs
// the layer's command pipeline. It is idempotent: a layer not in state
// Idle is left untouched. On any failure after claiming the layer, state
// is rolled back to Idle so a retry remains possible.
func Reconstruct(ctx context.Context, store shares.Store, path string) error {
	l, err := layer.Read(path)
	if err != nil {
		return fmt.Errorf("orchestrator: reconstruct: read %s: %w", path, err)
	}
	if l.State != layer.StateIdle {
		return nil
	}

	l.State = layer.StateDecrypting
	if err := layer.Write(path, l); err != nil {
		return fmt.Errorf("orchestrator: reconstruct: claim %s: %w", path, err)
	}

	log.Audit(log.AuditEntry{Timestamp: time.Now(), Action: log.AuditReconstructStart, Resource: l.UUID, State: log.AuditCreated})

	if err := doReconstruct(ctx, store, path, l); err != nil {
		log.Log().Error("orchestrator", "msg", "reconstruction step failed", "uuid", l.UUID, "err", err.Error())
		log.Audit(log.AuditEntry{Timestamp: time.Now(), Action: log.AuditReconstructFailed, Resource: l.UUID, State: log.AuditErrored, Err: err.Error()})
		rollback(path, l)
		return err
	}

	log.Audit(log.AuditEntry{Timestamp: time.Now(), Action: log.AuditReconstructSuccess, Resource: l.UUID, State: log.AuditSuccess})
	return nil
}

func doReconstruct(ctx context.Context, store shares.Store, path string, l layer.Layer) error {
	threshold := l.Threshold()

	rawShares, err := store.SelectShares(ctx, l.UUID)
	if err != nil {
		return fmt.Errorf("select shares: %w", err)
	}
	if len(rawShares) < threshold {
		return fmt.Errorf("%w: have %d, need %d", vsss.ErrInsufficientShares, len(rawShares), threshold)
	}

	secret, err := materializeSecret(rawShares, threshold)
	if err != nil {
		return err
	}

	baseDir := filepath.Dir(path)
	steps := make([]pipeline.Step, len(l.Commands))
	for i, c := range l.Commands {
		step := pipeline.Step{Program: c.Program, Args: c.Args, WorkingDir: c.WorkingDir}
		if c.SecretStdin {
			step.Stdin = []byte(secret)
		}
		steps[i] = step
	}
	if err := pipeline.Run(baseDir, steps); err != nil {
		return fmt.Errorf("command pipeline: %w", err)
	}

	if _, statErr := os.Stat(path); statErr == nil {
		l.State = layer.StateDecrypted
		if err := layer.Write(path, l); err != nil {
			return fmt.Errorf("persist decrypted state: %w", err)
		}
	}
	return nil
}

// materializeSecret recovers the layer's secret from its stored shares: via
// Feldman reconstruction when threshold > 1, or verbatim when threshold ==
// 1 (the T=1 fast path, where the single submitted value IS the secret).
func materializeSecret(rawShares []string, threshold int) (string, error) {
	if threshold == 1 {
		return rawShares[0], nil
	}

	distinct := dedupeByXCoordinate(rawShares)
	if len(distinct) < threshold {
		return "", fmt.Errorf("%w: have %d distinct, need %d", vsss.ErrInsufficientShares, len(distinct), threshold)
	}

	secret, err := vsss.Combine(distinct, threshold)
	if err != nil {
		return "", fmt.Errorf("combine: %w", err)
	}
	return vsss.ScalarToSecretBytes(secret)
}

// dedupeByXCoordinate parses base64 shares, drops any that fail to parse,
// and keeps only the first occurrence of each x-coordinate.
func dedupeByXCoordinate(rawShares []string) []vsss.Share {
	seen := make(map[string]struct{}, len(rawShares))
	out := make([]vsss.Share, 0, len(rawShares))
	for _, raw := range rawShares {
		s, err := vsss.ShareFromBase64(raw)
		if err != nil {
			continue
		}
		xb := s.X.Bytes()
		key := string(xb[:])
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

// rollback attempts to return a layer to Idle after a failed
// reconstruction so a future submission can retry it. Failure to write is
// logged, not propagated: the caller has already returned the original
// error.
func rollback(path string, l layer.Layer) {
	l.State = layer.StateIdle
	if err := layer.Write(path, l); err != nil {
		log.Log().Error("orchestrator", "msg", "failed to roll back layer state to idle", "uuid", l.UUID, "err", err.Error())
	}
}
