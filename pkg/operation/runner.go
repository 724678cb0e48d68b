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

package operation

import (
	"context"

	"github.com/walteh/resed/pkg/filter"
	"golang.org/x/sync/errgroup"
)

// 🏃 run dispatches between the strictly sequential pipeline (jobs = 1,
// the default) and the bounded worker pool.
func (op *ReplaceOperation) run(ctx context.Context, flt *filter.Filter) (Stats, error) {
	if op.config.Jobs <= 1 {
		return op.runSync(ctx, flt)
	}
	return op.runParallel(ctx, flt)
}

// 🔄 runSync processes each enumerated path fully before the next one.
// Counters are reduced from per-file results as they arrive.
func (op *ReplaceOperation) runSync(ctx context.Context, flt *filter.Filter) (Stats, error) {
	var stats Stats
	err := op.config.Target().Each(ctx, flt, func(path string) error {
		count, err := op.processFile(ctx, path)
		if err != nil {
			return err
		}
		if count > 0 {
			stats.FilesModified++
			stats.Replacements += count
		}
		return nil
	})
	return stats, err
}

// ⚡ runParallel fans the candidate paths out over a bounded errgroup.
// Each path is handled by exactly one worker, the runlog keeps one
// file's entries contiguous, and the counters are reduced from the
// per-file results after the group finishes, so no shared counter is
// mutated during processing. Console line order across files becomes
// nondeterministic.
func (op *ReplaceOperation) runParallel(ctx context.Context, flt *filter.Filter) (Stats, error) {
	var paths []string
	if err := op.config.Target().Each(ctx, flt, func(path string) error {
		paths = append(paths, path)
		return nil
	}); err != nil {
		return Stats{}, err
	}

	counts := make([]int, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(op.config.Jobs)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			count, err := op.processFile(gctx, path)
			if err != nil {
				return err
			}
			counts[i] = count
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	var stats Stats
	for _, count := range counts {
		if count > 0 {
			stats.FilesModified++
			stats.Replacements += count
		}
	}
	return stats, nil
}
