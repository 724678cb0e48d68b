package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/resed/pkg/config"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	settingsFile string
	rootDir      string
	paths        []string
	pathsFile    string
	pattern      string
	replaceTpl   string
	dryRun       bool
	logPath      string
	files        []string
	filesExclude []string
	summaryOnly  bool
	jobs         int
	debug        bool
)

// addRootFlags adds the run flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&rootDir, "root", "", "root directory to recursively scan")
	cmd.Flags().StringArrayVar(&paths, "paths", nil, "explicit list of files to process")
	cmd.Flags().StringVar(&pathsFile, "paths-file", "", "text file containing one file path per line")
	cmd.MarkFlagsMutuallyExclusive("root", "paths", "paths-file")

	cmd.Flags().StringVar(&pattern, "pattern", "", `regex pattern to search (with optional capture groups)`)
	cmd.Flags().StringVar(&replaceTpl, "replace", "", `replacement string (supports \1, \2, etc.)`)

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "simulate only, do not modify files")
	cmd.Flags().StringVar(&logPath, "log", config.DefaultLogPath, "log file path")
	cmd.Flags().StringArrayVar(&files, "files", nil, "include only files matching these patterns (e.g. *.xml)")
	cmd.Flags().StringArrayVar(&filesExclude, "files-exclude", nil, "exclude files matching these patterns (e.g. *.bak)")
	cmd.Flags().BoolVar(&summaryOnly, "summary-only", false, "suppress file-level replacement output")
	cmd.Flags().IntVar(&jobs, "jobs", 1, "number of files to process concurrently")

	cmd.Flags().StringVarP(&settingsFile, "config", "c", "", "optional run-settings file (.yaml or .hcl)")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// buildConfig assembles the run configuration: an optional settings file
// provides the base, explicitly set flags override it, and the result is
// validated before anything touches the filesystem.
func buildConfig(ctx context.Context, cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{}
	if settingsFile != "" {
		loaded, err := config.Load(ctx, settingsFile)
		if err != nil {
			return nil, errors.Errorf("loading settings: %w", err)
		}
		cfg = loaded
	}

	setString := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	setString("root", &cfg.Root, rootDir)
	setString("paths-file", &cfg.PathsFile, pathsFile)
	setString("pattern", &cfg.Pattern, pattern)
	setString("log", &cfg.Log, logPath)
	if cmd.Flags().Changed("replace") {
		// --replace "" is a legal template (delete matches); only a
		// flag that was never given leaves the settings-file value, or
		// nothing, in place.
		cfg.Replace = &replaceTpl
	}
	if cmd.Flags().Changed("paths") {
		cfg.Paths = paths
	}
	if cmd.Flags().Changed("files") {
		cfg.Files = files
	}
	if cmd.Flags().Changed("files-exclude") {
		cfg.FilesExclude = filesExclude
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = dryRun
	}
	if cmd.Flags().Changed("summary-only") {
		cfg.SummaryOnly = summaryOnly
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = jobs
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
