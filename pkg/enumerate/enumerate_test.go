package enumerate_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/resed/pkg/enumerate"
	"github.com/walteh/resed/pkg/filter"
	"gitlab.com/tozd/go/errors"
)

// collect runs one enumeration and returns every yielded path.
func collect(t *testing.T, target enumerate.Target, f *filter.Filter) []string {
	t.Helper()
	var got []string
	err := target.Each(context.Background(), f, func(path string) error {
		got = append(got, path)
		return nil
	})
	require.NoError(t, err)
	return got
}

func TestTarget_PathList(t *testing.T) {
	target := enumerate.PathList([]string{"a.txt", "b.bak"})

	// Explicit paths are yielded verbatim; the filter does not apply,
	// so a glob that would exclude b.bak is ignored.
	got := collect(t, target, filter.New(nil, []string{"*.bak"}))
	assert.Equal(t, []string{"a.txt", "b.bak"}, got)
}

func TestTarget_PathsFile(t *testing.T) {
	pathsFile := filepath.Join(t.TempDir(), "targets.txt")
	require.NoError(t, os.WriteFile(pathsFile, []byte("  \n/tmp/a.txt\n\n\t\n"), 0644))

	target := enumerate.PathsFile(pathsFile)
	got := collect(t, target, filter.New(nil, nil))
	assert.Equal(t, []string{"/tmp/a.txt"}, got)
}

func TestTarget_PathsFile_Missing(t *testing.T) {
	target := enumerate.PathsFile(filepath.Join(t.TempDir(), "nope.txt"))
	err := target.Each(context.Background(), filter.New(nil, nil), func(string) error {
		return nil
	})
	require.Error(t, err)
}

func TestTarget_RootDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	for _, name := range []string{"a.txt", "b.bak", filepath.Join("sub", "c.txt")} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	target := enumerate.RootDir(dir)
	got := collect(t, target, filter.New([]string{"*.txt"}, nil))

	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "sub", "c.txt"),
	}, got)
}

func TestTarget_RootDir_ExcludeGlob(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"keep.txt", "drop.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	target := enumerate.RootDir(dir)
	got := collect(t, target, filter.New([]string{"*.txt"}, []string{"drop*"}))
	assert.Equal(t, []string{filepath.Join(dir, "keep.txt")}, got)
}

func TestTarget_RootDir_SymlinkedFile(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real.txt")
	require.NoError(t, os.WriteFile(real, []byte("x"), 0644))

	// A link to a regular file is yielded like the file itself.
	link := filepath.Join(dir, "link.txt")
	require.NoError(t, os.Symlink(real, link))

	// A link to a directory is neither yielded nor descended into, even
	// when its name passes the filter.
	dirTarget := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dirTarget, "inner.txt"), []byte("x"), 0644))
	require.NoError(t, os.Symlink(dirTarget, filepath.Join(dir, "linkdir.txt")))

	target := enumerate.RootDir(dir)
	got := collect(t, target, filter.New([]string{"*.txt"}, nil))
	assert.ElementsMatch(t, []string{real, link}, got)
}

func TestTarget_Restartable(t *testing.T) {
	target := enumerate.PathList([]string{"a", "b"})
	f := filter.New(nil, nil)

	first := collect(t, target, f)
	second := collect(t, target, f)
	assert.Equal(t, first, second)
}

func TestTarget_StopsOnCallbackError(t *testing.T) {
	target := enumerate.PathList([]string{"a", "b", "c"})

	var seen []string
	sentinel := errors.New("stop")
	err := target.Each(context.Background(), filter.New(nil, nil), func(path string) error {
		seen = append(seen, path)
		if path == "b" {
			return sentinel
		}
		return nil
	})
	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestTarget_Unconfigured(t *testing.T) {
	var target enumerate.Target
	assert.False(t, target.Configured())

	err := target.Each(context.Background(), filter.New(nil, nil), func(string) error {
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no target source configured")
}
