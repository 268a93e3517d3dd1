package organize

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"organizer/internal/fileutil"
	"organizer/internal/logging"
	"organizer/internal/services"
)

// Outcome classifies the result of relocating one file.
type Outcome int

const (
	// OutcomeMoved means the file was moved, or would be under dry-run.
	OutcomeMoved Outcome = iota
	// OutcomeSkipped means the source vanished or already sits at its
	// destination; nothing happened and nothing needed to.
	OutcomeSkipped
	// OutcomeFailed means the move was attempted and did not complete.
	OutcomeFailed
)

// MoveResult is the Relocator's return contract, consumed immediately by the
// orchestrator; it is never persisted.
type MoveResult struct {
	Outcome     Outcome
	Destination string
	Err         error
}

// Relocator moves single files into destination directories. It holds no
// state between calls beyond its mode and logger.
type Relocator struct {
	dryRun bool
	logger *slog.Logger
}

// NewRelocator constructs a relocator. Under dry-run it reports intended
// moves without touching the filesystem.
func NewRelocator(dryRun bool, logger *slog.Logger) *Relocator {
	return &Relocator{dryRun: dryRun, logger: logging.NewComponentLogger(logger, "relocate")}
}

// Move relocates src into destDir, resolving name collisions with a numeric
// suffix and refusing self-moves. The move is all-or-nothing from the
// caller's perspective; there are no retries.
func (r *Relocator) Move(ctx context.Context, src, destDir string) MoveResult {
	logger := logging.WithContext(ctx, r.logger)

	srcInfo, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("source vanished, skipping", logging.String("source", src))
			return MoveResult{Outcome: OutcomeSkipped, Err: services.Wrap(services.ErrNotFound, "", "move", src, err)}
		}
		logger.Warn("cannot stat source", logging.String("source", src), logging.Error(err))
		return MoveResult{Outcome: OutcomeFailed, Err: services.Wrap(services.ErrTransient, "", "stat source", src, err)}
	}

	dest := filepath.Join(destDir, filepath.Base(src))
	if destInfo, err := os.Stat(dest); err == nil {
		if os.SameFile(srcInfo, destInfo) {
			logger.Debug("already in place, skipping", logging.String("source", src))
			return MoveResult{Outcome: OutcomeSkipped, Destination: dest}
		}
		free, err := nextFreePath(destDir, filepath.Base(src))
		if err != nil {
			logger.Warn("cannot allocate conflict-free name",
				logging.String("source", src),
				logging.String("destination", destDir),
				logging.Error(err))
			return MoveResult{Outcome: OutcomeFailed, Err: services.Wrap(services.ErrTransient, "", "allocate destination name", src, err)}
		}
		dest = free
	}

	if r.dryRun {
		logger.Info("would move",
			logging.String("source", src),
			logging.String("destination", dest))
		return MoveResult{Outcome: OutcomeMoved, Destination: dest}
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		logger.Warn("cannot create destination directory",
			logging.String("destination", destDir), logging.Error(err))
		return MoveResult{Outcome: OutcomeFailed, Err: services.Wrap(services.ErrTransient, "", "create destination", destDir, err)}
	}
	if err := fileutil.MoveFile(src, dest); err != nil {
		logger.Warn("move failed",
			logging.String("source", src),
			logging.String("destination", dest),
			logging.Error(err))
		return MoveResult{Outcome: OutcomeFailed, Err: services.Wrap(services.ErrTransient, "", "move", src, err)}
	}

	logger.Info("moved",
		logging.String("source", filepath.Base(src)),
		logging.String("destination", filepath.Join(filepath.Base(destDir), filepath.Base(dest))))
	return MoveResult{Outcome: OutcomeMoved, Destination: dest}
}

// nextFreePath probes stem_1, stem_2, ... inside dir until a non-existing
// candidate is found. Suffix numbering is deterministic and preserves the
// extension. A stat failure other than "does not exist" is surfaced rather
// than risking an overwrite of a candidate that could not be examined.
func nextFreePath(dir, name string) (string, error) {
	const maxAttempts = 10000
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 1; n <= maxAttempts; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
		if _, err := os.Stat(candidate); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return candidate, nil
			}
			return "", err
		}
	}
	return "", fmt.Errorf("exhausted conflict suffixes in %s", dir)
}
