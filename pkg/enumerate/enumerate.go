// Package enumerate produces the sequence of candidate file paths for a
// run, from exactly one of three sources: an explicit path list, a file
// of paths, or a recursive directory walk.
package enumerate

import (
	"bufio"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/resed/pkg/filter"
	"gitlab.com/tozd/go/errors"
)

// 🎯 source tags the configured target variant.
type source int

const (
	sourceNone source = iota
	sourceRootDir
	sourcePathList
	sourcePathsFile
)

// 📦 Target is a tagged variant holding the single configured source.
// The zero value is unconfigured and fails enumeration, so "exactly one
// source" is enforced by construction rather than by field checks.
type Target struct {
	src       source
	root      string
	paths     []string
	pathsFile string
}

// 🏭 RootDir targets every regular file under dir, recursively, filtered
// by filename globs.
func RootDir(dir string) Target {
	return Target{src: sourceRootDir, root: dir}
}

// 🏭 PathList targets the given paths verbatim. Explicit selection is an
// intentional override: the filename filter does not apply.
func PathList(paths []string) Target {
	return Target{src: sourcePathList, paths: paths}
}

// 🏭 PathsFile targets the paths listed one per line in the given file.
// Blank lines are skipped; the filename filter does not apply.
func PathsFile(path string) Target {
	return Target{src: sourcePathsFile, pathsFile: path}
}

// 🔍 Configured reports whether a source has been selected.
func (t Target) Configured() bool {
	return t.src != sourceNone
}

// 📝 Describe returns a short human description of the target for logs.
func (t Target) Describe() string {
	switch t.src {
	case sourceRootDir:
		return "root " + t.root
	case sourcePathList:
		return "explicit paths"
	case sourcePathsFile:
		return "paths file " + t.pathsFile
	default:
		return "unconfigured"
	}
}

// 🏃 Each yields candidate paths to fn, stopping at the first error fn
// returns. Enumeration is restartable: calling Each again replays the
// source from scratch.
//
// For the directory-walk source, visit order is the walker's lexical
// directory order; callers must not depend on any particular ordering.
func (t Target) Each(ctx context.Context, f *filter.Filter, fn func(path string) error) error {
	switch t.src {
	case sourcePathList:
		return eachOf(t.paths, fn)
	case sourcePathsFile:
		return t.eachLine(fn)
	case sourceRootDir:
		return t.walk(ctx, f, fn)
	default:
		return errors.Errorf("no target source configured")
	}
}

func eachOf(paths []string, fn func(path string) error) error {
	for _, p := range paths {
		if err := fn(p); err != nil {
			return err
		}
	}
	return nil
}

// eachLine streams the paths file line by line, trimming whitespace and
// skipping blanks.
func (t Target) eachLine(fn func(path string) error) error {
	file, err := os.Open(t.pathsFile)
	if err != nil {
		return errors.Errorf("opening paths file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		path := strings.TrimSpace(scanner.Text())
		if path == "" {
			continue
		}
		if err := fn(path); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Errorf("reading paths file: %w", err)
	}
	return nil
}

// walk recursively visits the root, applying the filename filter to each
// file's base name. Symlinks are resolved: a link to a regular file is a
// candidate like the file itself, while links to directories are neither
// followed nor yielded.
func (t Target) walk(ctx context.Context, f *filter.Filter, fn func(path string) error) error {
	logger := zerolog.Ctx(ctx)

	return filepath.WalkDir(t.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Errorf("walking %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		if !f.Included(d.Name()) {
			logger.Debug().Str("file", path).Msg("filtered out by glob patterns")
			return nil
		}
		if !d.Type().IsRegular() {
			info, err := os.Stat(path)
			if err != nil {
				return errors.Errorf("resolving %s: %w", path, err)
			}
			if !info.Mode().IsRegular() {
				return nil
			}
		}
		return fn(path)
	})
}
