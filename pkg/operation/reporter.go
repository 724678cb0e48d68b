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
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/walteh/resed/pkg/replace"
)

// 🎯 reporter writes the user-facing per-file and summary lines. Per-file
// lines are suppressed in summary-only mode; the summary never is. The
// mutex keeps one file's lines together when workers run concurrently.
type reporter struct {
	mu          sync.Mutex
	console     io.Writer
	summaryOnly bool
}

func newReporter(console io.Writer, summaryOnly bool) *reporter {
	return &reporter{
		console:     console,
		summaryOnly: summaryOnly,
	}
}

// 📝 Skipped reports a file with no matches
func (r *reporter) Skipped(path string) {
	if r.summaryOnly {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.console, color.New(color.FgHiBlack).Sprintf("[Skipped] %s", path))
}

// 📝 Modified reports a file that was rewritten on disk
func (r *reporter) Modified(path string) {
	if r.summaryOnly {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.console, color.New(color.FgGreen).Sprintf("[Modified] %s", path))
}

// 📝 WouldModify reports a dry-run hit with its per-match previews
func (r *reporter) WouldModify(path string, matches []replace.Match) {
	if r.summaryOnly {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.console, color.New(color.FgGreen).Sprintf("[Dry Run] Would modify: %s", path))
	for _, m := range matches {
		fmt.Fprintf(r.console, "  Replace: %s → %s\n", m.Old, m.New)
	}
}

// 📊 Summary prints the trailing summary block
func (r *reporter) Summary(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.console, text)
}

// ⚠️ FlushFailed reports a log-persistence failure without failing the run
func (r *reporter) FlushFailed(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.console, color.New(color.FgYellow).Sprintf("⚠️  could not write log file: %v", err))
}
