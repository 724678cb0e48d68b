// Package operation drives a replacement run: enumerate targets, read,
// substitute, conditionally write, log, and summarize.
package operation

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/walteh/resed/pkg/config"
	"github.com/walteh/resed/pkg/fileio"
	"github.com/walteh/resed/pkg/filter"
	"github.com/walteh/resed/pkg/replace"
	"github.com/walteh/resed/pkg/runlog"
	"gitlab.com/tozd/go/errors"
)

// 📊 Stats aggregates the run counters. A file contributes iff it had at
// least one match; zero-match files are reported but uncounted.
type Stats struct {
	FilesModified int // files with >=1 match (modified or would-modify)
	Replacements  int // total matches across all files
}

// 🔧 Options contains the collaborators for a replace operation
type Options struct {
	// Config is the validated run configuration
	Config *config.Config
	// Engine is the compiled substitution engine
	Engine *replace.Engine
	// Log accumulates the per-replacement audit log
	Log *runlog.Log
	// Console receives user-facing per-file and summary lines
	Console io.Writer
}

// 🏭 New creates a replace operation with the given options
func New(opts Options) (*ReplaceOperation, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Engine == nil {
		return nil, errors.Errorf("engine is required")
	}
	if opts.Log == nil {
		return nil, errors.Errorf("log is required")
	}
	return &ReplaceOperation{
		config:   opts.Config,
		engine:   opts.Engine,
		log:      opts.Log,
		reporter: newReporter(opts.Console, opts.Config.SummaryOnly),
	}, nil
}

// 🎮 ReplaceOperation implements the full run pipeline
type ReplaceOperation struct {
	config   *config.Config
	engine   *replace.Engine
	log      *runlog.Log
	reporter *reporter
}

// 🏃 Execute runs the pipeline and returns the aggregated counters. The
// first fatal read/write error aborts the remaining enumeration; files
// already written keep their changes. A log-flush failure is reported
// but does not fail a completed run.
func (op *ReplaceOperation) Execute(ctx context.Context) (Stats, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().
		Str("target", op.config.Target().Describe()).
		Str("pattern", op.engine.Pattern()).
		Bool("dry_run", op.config.DryRun).
		Int("jobs", op.config.Jobs).
		Msg("starting replacement run")

	flt := filter.New(op.config.Files, op.config.FilesExclude)

	stats, err := op.run(ctx, flt)
	if err != nil {
		return stats, err
	}

	summary := op.log.Finalize(stats.FilesModified, stats.Replacements)
	op.reporter.Summary(summary)

	if err := op.log.Flush(); err != nil {
		logger.Error().Err(err).Str("log", op.log.Destination()).Msg("persisting log")
		op.reporter.FlushFailed(err)
	}

	logger.Debug().
		Int("files_modified", stats.FilesModified).
		Int("replacements", stats.Replacements).
		Msg("replacement run complete")

	return stats, nil
}

// 📄 processFile handles one candidate path: read, substitute, write
// (unless dry-run), record, report. It returns the file's match count.
func (op *ReplaceOperation) processFile(ctx context.Context, path string) (int, error) {
	logger := zerolog.Ctx(ctx)

	content, err := fileio.ReadText(path)
	if err != nil {
		return 0, err
	}

	matches, newContent := op.engine.Process(content)
	if len(matches) == 0 {
		logger.Debug().Str("file", path).Msg("no matches")
		op.reporter.Skipped(path)
		return 0, nil
	}

	// Match records are produced identically in dry-run mode so the log
	// reflects intended changes either way.
	if op.config.DryRun {
		op.reporter.WouldModify(path, matches)
	} else {
		if err := fileio.WriteText(path, newContent); err != nil {
			return 0, err
		}
		op.reporter.Modified(path)
	}

	pairs := make([][2]string, len(matches))
	for i, m := range matches {
		pairs[i] = [2]string{m.Old, m.New}
	}
	op.log.RecordAll(path, pairs)

	logger.Debug().
		Str("file", path).
		Int("matches", len(matches)).
		Bool("dry_run", op.config.DryRun).
		Msg("file processed")

	return len(matches), nil
}
