package main

import (
	"context"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/resed/pkg/operation"
	"github.com/walteh/resed/pkg/runlog"
	"gitlab.com/tozd/go/errors"
)

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "resed",
		Short: "Recursive regex search-and-replace for text files",
		Long: `resed scans a directory tree (or an explicit file list) for regex
matches and rewrites them using a replacement template with numbered
backreferences (\1, \2, ...). Every replacement is recorded in a
timestamped log, and --dry-run previews the changes without touching
any file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
		RunE: runReplace,
	}

	// Add shared flags
	addRootFlags(rootCmd)

	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		pterm.Error.Printfln("%v", err)
		os.Exit(1)
	}
}

// 🏃 runReplace assembles the run configuration, compiles the pattern,
// and executes the pipeline. Configuration errors surface here, before
// any file is read or any log is created.
func runReplace(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	cfg, err := buildConfig(ctx, cmd)
	if err != nil {
		return err
	}

	engine, err := cfg.Compile()
	if err != nil {
		return err
	}

	op, err := operation.New(operation.Options{
		Config:  cfg,
		Engine:  engine,
		Log:     runlog.New(cfg.Log),
		Console: cmd.OutOrStdout(),
	})
	if err != nil {
		return errors.Errorf("creating operation: %w", err)
	}

	stats, err := op.Execute(ctx)
	if err != nil {
		return errors.Errorf("running replacement: %w", err)
	}

	logger.Debug().
		Int("files_modified", stats.FilesModified).
		Int("replacements", stats.Replacements).
		Msg("done")
	return nil
}
