// Package app orchestrates the contract-diff pipeline: load, diff,
// classify, version, report. Each stage is a pure transform over the
// previous stage's output; the Runner just wires them in order.
package app

import (
	"context"
	"fmt"

	"github.com/artpar/contractdiff/config"
	"github.com/artpar/contractdiff/core/classify"
	"github.com/artpar/contractdiff/core/diff"
	"github.com/artpar/contractdiff/core/report"
	"github.com/artpar/contractdiff/core/schema"
	"github.com/artpar/contractdiff/core/version"
	"github.com/artpar/contractdiff/ports"
	"github.com/rs/zerolog"
)

// Runner executes one end-to-end diff run.
type Runner struct {
	// OldDir and NewDir are the snapshot roots. When they are equal the
	// old side is treated as empty, so every schema reports as an
	// addition (single-snapshot audit mode).
	OldDir string
	NewDir string

	// Output is the report path, VersionFile the current-version path,
	// ConfigPath the diff policy path.
	Output      string
	VersionFile string
	ConfigPath  string

	Logger  zerolog.Logger
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	History ports.RunStore // optional
}

// Run executes the pipeline and writes the report. The returned report
// backs the console summary. Any error is fatal to the run; no partial
// report is written.
func (r *Runner) Run(ctx context.Context) (*report.Report, error) {
	cfg, warn := config.Load(r.ConfigPath)
	if warn != nil {
		r.Logger.Warn().Msg(warn.String())
	}

	loader := schema.NewLoader(r.Logger)

	var oldFiles []schema.File
	if r.OldDir == r.NewDir {
		r.Logger.Info().Str("dir", r.NewDir).Msg("old and new snapshots are the same directory, auditing as all additions")
	} else {
		var err error
		oldFiles, err = loader.Load(r.OldDir)
		if err != nil {
			return nil, fmt.Errorf("load old snapshot: %w", err)
		}
	}

	newFiles, err := loader.Load(r.NewDir)
	if err != nil {
		return nil, fmt.Errorf("load new snapshot: %w", err)
	}

	changes := diff.NewEngine().Compare(oldFiles, newFiles)
	cls := classify.New(cfg).Classify(changes)

	current, vwarn := version.ReadFile(r.VersionFile)
	if vwarn != nil {
		r.Logger.Warn().Msg(vwarn.String())
	}

	rep := report.Build(r.IDGen, r.Clock, cls, version.NewInfo(current, cls))

	if r.History != nil {
		if err := r.recordHistory(ctx, rep); err != nil {
			r.Logger.Warn().Err(err).Msg("recording run history failed")
		}
	}

	if err := rep.Write(r.Output); err != nil {
		return nil, err
	}

	r.Logger.Info().
		Str("run_id", rep.RunID).
		Int("breaking", rep.Counts.Breaking).
		Int("additive", rep.Counts.Additive).
		Int("docs_only", rep.Counts.DocsOnly).
		Int("refactor", rep.Counts.Refactor).
		Str("bump", string(rep.Version.RequiredBump)).
		Str("output", r.Output).
		Msg("diff report written")

	return rep, nil
}

func (r *Runner) recordHistory(ctx context.Context, rep *report.Report) error {
	return r.History.Record(ctx, ports.Run{
		ID:            rep.RunID,
		OldDir:        r.OldDir,
		NewDir:        r.NewDir,
		BreakingCount: rep.Counts.Breaking,
		AdditiveCount: rep.Counts.Additive,
		DocsOnlyCount: rep.Counts.DocsOnly,
		RefactorCount: rep.Counts.Refactor,
		RequiredBump:  string(rep.Version.RequiredBump),
		OldVersion:    rep.Version.Current,
		NewVersion:    rep.Version.SuggestedNew,
		CreatedAt:     r.Clock.Now(),
	})
}
