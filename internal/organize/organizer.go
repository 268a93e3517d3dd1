package organize

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"organizer/internal/dupes"
	"organizer/internal/logging"
	"organizer/internal/scan"
	"organizer/internal/services"
)

// Stage names, in the fixed order stages run.
const (
	StageDuplicates = "duplicates"
	StageByType     = "by-type"
	StageByDate     = "by-date"
)

// Options selects what a run does. At least one policy must be enabled.
type Options struct {
	Source    string
	Dest      string
	Recursive bool
	DryRun    bool

	Duplicates bool
	ByType     bool
	ByDate     bool
}

// StageCount aggregates outcomes for one stage.
type StageCount struct {
	Stage   string
	Moved   int
	Skipped int
	Failed  int
}

// Summary is the run's report: per-stage counts plus the scan total.
type Summary struct {
	DryRun  bool
	Scanned int
	Stages  []StageCount
}

// Moved returns the total count of files moved (or intended under dry-run)
// across all stages. A file claimed by an earlier stage is never counted
// twice.
func (s *Summary) Moved() int {
	total := 0
	for _, stage := range s.Stages {
		total += stage.Moved
	}
	return total
}

// Organizer enumerates candidates once and applies the enabled policies in a
// fixed order, sharing a skip-set so no file is claimed by two stages.
type Organizer struct {
	opts      Options
	logger    *slog.Logger
	relocator *Relocator
	detector  *dupes.Detector
	table     Table
	now       func() time.Time
}

// New constructs an organizer. extraCategories extends the built-in
// extension table; nil is fine.
func New(opts Options, extraCategories map[string]string, logger *slog.Logger) *Organizer {
	if opts.Dest == "" {
		opts.Dest = opts.Source
	}
	return &Organizer{
		opts:      opts,
		logger:    logging.NewComponentLogger(logger, "organize"),
		relocator: NewRelocator(opts.DryRun, logger),
		detector:  dupes.New(logger),
		table:     NewTable(extraCategories),
		now:       time.Now,
	}
}

// Run validates inputs, enumerates candidates, and executes the enabled
// stages in order: duplicates, by-type, by-date. Per-file failures are
// recovered locally; only invalid inputs abort the run.
func (o *Organizer) Run(ctx context.Context) (*Summary, error) {
	logger := logging.WithContext(ctx, o.logger)

	info, err := os.Stat(o.opts.Source)
	if err != nil || !info.IsDir() {
		return nil, services.Wrap(services.ErrValidation, "setup", "check source", o.opts.Source+" is not a valid directory", err)
	}
	if !o.opts.Duplicates && !o.opts.ByType && !o.opts.ByDate {
		return nil, services.Wrap(services.ErrValidation, "setup", "check policies", "no organization policy selected", nil)
	}

	files, err := scan.Files(o.opts.Source, o.opts.Recursive)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "setup", "enumerate files", o.opts.Source, err)
	}

	logger.Info("run started",
		logging.String("source", o.opts.Source),
		logging.String("output", o.opts.Dest),
		logging.Int("files", len(files)),
		logging.Bool("dry_run", o.opts.DryRun))
	if o.opts.Recursive {
		logger.Info("recursive mode flattens directory structure")
	}

	summary := &Summary{DryRun: o.opts.DryRun, Scanned: len(files)}
	seen := make(map[string]struct{})

	if o.opts.Duplicates {
		summary.Stages = append(summary.Stages, o.runDuplicates(ctx, files, seen))
	}
	if o.opts.ByType {
		summary.Stages = append(summary.Stages, o.runByType(ctx, files, seen))
	}
	if o.opts.ByDate {
		summary.Stages = append(summary.Stages, o.runByDate(ctx, files, seen))
	}

	logger.Info("run finished", logging.Int("moved", summary.Moved()))
	return summary, nil
}

func (o *Organizer) runDuplicates(ctx context.Context, files []*scan.File, seen map[string]struct{}) StageCount {
	ctx = services.WithStage(ctx, StageDuplicates)
	logger := logging.WithContext(ctx, o.logger)

	count := StageCount{Stage: StageDuplicates}
	clusters := o.detector.Find(ctx, files)
	duplicates := dupes.Duplicates(clusters)
	if len(duplicates) == 0 {
		logger.Info("no duplicates found")
		return count
	}
	logger.Info("duplicates found", logging.Int("count", len(duplicates)))

	destDir := filepath.Join(o.opts.Dest, DuplicatesFolder)
	for _, f := range duplicates {
		o.relocate(ctx, f, destDir, seen, &count)
	}
	return count
}

func (o *Organizer) runByType(ctx context.Context, files []*scan.File, seen map[string]struct{}) StageCount {
	ctx = services.WithStage(ctx, StageByType)

	count := StageCount{Stage: StageByType}
	for _, f := range files {
		if _, claimed := seen[f.Path]; claimed {
			continue
		}
		destDir := filepath.Join(o.opts.Dest, o.table.Category(f.Path))
		o.relocate(ctx, f, destDir, seen, &count)
	}
	return count
}

func (o *Organizer) runByDate(ctx context.Context, files []*scan.File, seen map[string]struct{}) StageCount {
	ctx = services.WithStage(ctx, StageByDate)
	now := o.now()

	count := StageCount{Stage: StageByDate}
	for _, f := range files {
		if _, claimed := seen[f.Path]; claimed {
			continue
		}
		modTime, ok := f.ModTime()
		destDir := filepath.Join(o.opts.Dest, DateBucket(now, modTime, ok))
		o.relocate(ctx, f, destDir, seen, &count)
	}
	return count
}

// relocate performs one move, updates the stage counters, and claims the
// file in the shared skip-set when it was (or would be) moved.
func (o *Organizer) relocate(ctx context.Context, f *scan.File, destDir string, seen map[string]struct{}, count *StageCount) {
	switch result := o.relocator.Move(ctx, f.Path, destDir); result.Outcome {
	case OutcomeMoved:
		count.Moved++
		seen[f.Path] = struct{}{}
	case OutcomeSkipped:
		count.Skipped++
	case OutcomeFailed:
		count.Failed++
	}
}
