// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/resed/pkg/enumerate"
	"github.com/walteh/resed/pkg/replace"
	"gitlab.com/tozd/go/errors"
)

// 📜 DefaultLogPath is where the replacement log lands when no --log is given.
const DefaultLogPath = "replacement_log.txt"

// 📚 Config is the complete run configuration. It is assembled once at
// startup (from flags, optionally seeded by a settings file) and is
// read-only afterwards.
type Config struct {
	Root         string   `json:"root,omitempty" yaml:"root,omitempty" hcl:"root,optional"`
	Paths        []string `json:"paths,omitempty" yaml:"paths,omitempty" hcl:"paths,optional"`
	PathsFile    string   `json:"paths_file,omitempty" yaml:"paths_file,omitempty" hcl:"paths_file,optional"`
	Pattern      string   `json:"pattern" yaml:"pattern" hcl:"pattern,optional"`
	Replace      *string  `json:"replace" yaml:"replace" hcl:"replace,optional"`
	DryRun       bool     `json:"dry_run,omitempty" yaml:"dry_run,omitempty" hcl:"dry_run,optional"`
	Log          string   `json:"log,omitempty" yaml:"log,omitempty" hcl:"log,optional"`
	Files        []string `json:"files,omitempty" yaml:"files,omitempty" hcl:"files,optional"`
	FilesExclude []string `json:"files_exclude,omitempty" yaml:"files_exclude,omitempty" hcl:"files_exclude,optional"`
	SummaryOnly  bool     `json:"summary_only,omitempty" yaml:"summary_only,omitempty" hcl:"summary_only,optional"`
	Jobs         int      `json:"jobs,omitempty" yaml:"jobs,omitempty" hcl:"jobs,optional"`
}

// 🔍 Validate checks the invariants that must hold before any file I/O:
// exactly one target source, a non-empty pattern, sane defaults filled in.
func (cfg *Config) Validate() error {
	selected := 0
	if cfg.Root != "" {
		selected++
	}
	if len(cfg.Paths) > 0 {
		selected++
	}
	if cfg.PathsFile != "" {
		selected++
	}
	if selected == 0 {
		return errors.Errorf("one of root, paths, or paths_file is required")
	}
	if selected > 1 {
		return errors.Errorf("root, paths, and paths_file are mutually exclusive")
	}

	if cfg.Pattern == "" {
		return errors.Errorf("pattern is required")
	}
	// Replace must be supplied, though an explicit empty template is
	// legal (it deletes every match). A nil pointer means it was never
	// given, which would otherwise delete content by accident.
	if cfg.Replace == nil {
		return errors.Errorf("replace is required")
	}

	// Set defaults
	if cfg.Log == "" {
		cfg.Log = DefaultLogPath
	}
	if cfg.Jobs <= 0 {
		cfg.Jobs = 1
	}

	return nil
}

// 🎯 Target returns the tagged target variant for the configured source.
// Validate must have passed.
func (cfg *Config) Target() enumerate.Target {
	switch {
	case cfg.Root != "":
		return enumerate.RootDir(cfg.Root)
	case len(cfg.Paths) > 0:
		return enumerate.PathList(cfg.Paths)
	case cfg.PathsFile != "":
		return enumerate.PathsFile(cfg.PathsFile)
	default:
		return enumerate.Target{}
	}
}

// ⚙️ Compile builds the substitution engine from the configured pattern
// and template. An invalid pattern fails here, before enumeration.
func (cfg *Config) Compile() (*replace.Engine, error) {
	if cfg.Replace == nil {
		return nil, errors.Errorf("replace is required")
	}
	engine, err := replace.NewEngine(cfg.Pattern, *cfg.Replace)
	if err != nil {
		return nil, errors.Errorf("invalid regex pattern: %w", err)
	}
	return engine, nil
}

// 🎯 Load reads a run-settings file and parses it with the first parser
// that recognizes the filename. The result is not validated here: a
// settings file usually carries only part of the run configuration, and
// flags fill in the rest before Validate runs.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading run settings")

	return parseFile(ctx, path)
}
