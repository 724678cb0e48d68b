// Package runlog accumulates the per-replacement audit log for a run and
// persists it in a single write at the end.
package runlog

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"gitlab.com/tozd/go/errors"
)

// timestampLayout mirrors an ISO-8601 timestamp with microseconds.
const timestampLayout = "2006-01-02T15:04:05.000000"

// 🎯 Log is the in-memory replacement log. Entries are ordered; each
// file's entries stay contiguous because recording is batched per file.
type Log struct {
	mu      sync.Mutex
	dest    string
	entries []string
	now     func() time.Time
}

// 🏭 New creates a log that will be flushed to dest.
func New(dest string) *Log {
	return &Log{
		dest: dest,
		now:  time.Now,
	}
}

// 📝 Record appends one timestamped entry for a single replacement.
func (l *Log) Record(path, old, new string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(path, old, new)
}

// 📝 RecordAll appends entries for every (old, new) pair of one file as
// one contiguous batch, even when files are processed concurrently.
func (l *Log) RecordAll(path string, pairs [][2]string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, p := range pairs {
		l.record(path, p[0], p[1])
	}
}

func (l *Log) record(path, old, new string) {
	timestamp := l.now().Format(timestampLayout)
	entry := fmt.Sprintf("[%s] File: %s\n    Replaced: %s -> %s\n", timestamp, path, old, new)
	l.entries = append(l.entries, entry)
}

// 📊 Finalize appends the trailing summary block and returns it, so the
// console and the log file report the same text.
func (l *Log) Finalize(filesModified, totalReplacements int) string {
	summary := fmt.Sprintf(
		"\n=== SUMMARY ===\nFiles modified:    %d\nReplacements made: %d\nLog saved to:      %s\n",
		filesModified, totalReplacements, l.dest)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, summary)
	return summary
}

// 💾 Flush writes the accumulated log to its destination in one write,
// UTF-8 encoded. A flush failure does not invalidate the run that
// produced the log; callers report it and move on.
func (l *Log) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.WriteFile(l.dest, []byte(strings.Join(l.entries, "")), 0644); err != nil {
		return errors.Errorf("writing log file: %w", err)
	}
	return nil
}

// 📝 Destination returns the log file path.
func (l *Log) Destination() string {
	return l.dest
}
