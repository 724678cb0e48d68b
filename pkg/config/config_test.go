package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/resed/pkg/config"
)

func strPtr(s string) *string {
	return &s
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.Config
		wantError string
	}{
		{
			name:      "no_target_source",
			cfg:       config.Config{Pattern: "foo", Replace: strPtr("bar")},
			wantError: "one of root, paths, or paths_file is required",
		},
		{
			name: "two_target_sources",
			cfg: config.Config{
				Root:    "/tmp",
				Paths:   []string{"a.txt"},
				Pattern: "foo",
				Replace: strPtr("bar"),
			},
			wantError: "mutually exclusive",
		},
		{
			name:      "missing_pattern",
			cfg:       config.Config{Root: "/tmp", Replace: strPtr("bar")},
			wantError: "pattern is required",
		},
		{
			name:      "missing_replace",
			cfg:       config.Config{Root: "/tmp", Pattern: "foo"},
			wantError: "replace is required",
		},
		{
			name: "valid_root",
			cfg:  config.Config{Root: "/tmp", Pattern: "foo", Replace: strPtr("bar")},
		},
		{
			name: "valid_paths_file",
			cfg:  config.Config{PathsFile: "targets.txt", Pattern: "foo", Replace: strPtr("bar")},
		},
		{
			// Explicitly empty is legal (deletes matches); only an
			// unset template is rejected.
			name: "explicit_empty_replace_is_allowed",
			cfg:  config.Config{Root: "/tmp", Pattern: "foo", Replace: strPtr("")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestConfig_ValidateDefaults(t *testing.T) {
	cfg := config.Config{Root: "/tmp", Pattern: "foo", Replace: strPtr("bar")}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, config.DefaultLogPath, cfg.Log)
	assert.Equal(t, 1, cfg.Jobs)
}

func TestConfig_Target(t *testing.T) {
	root := config.Config{Root: "/tmp", Pattern: "x"}
	assert.True(t, root.Target().Configured())
	assert.Equal(t, "root /tmp", root.Target().Describe())

	list := config.Config{Paths: []string{"a"}, Pattern: "x"}
	assert.Equal(t, "explicit paths", list.Target().Describe())

	file := config.Config{PathsFile: "t.txt", Pattern: "x"}
	assert.Equal(t, "paths file t.txt", file.Target().Describe())
}

func TestConfig_Compile(t *testing.T) {
	good := config.Config{Root: "/tmp", Pattern: `foo(\d+)`, Replace: strPtr(`bar\1`)}
	engine, err := good.Compile()
	require.NoError(t, err)
	require.NotNil(t, engine)

	bad := config.Config{Root: "/tmp", Pattern: `foo(`, Replace: strPtr("bar")}
	_, err = bad.Compile()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid regex pattern")

	unset := config.Config{Root: "/tmp", Pattern: "foo"}
	_, err = unset.Compile()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "replace is required")
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
root: ./src
pattern: 'foo(\d+)'
replace: 'bar\1'
dry_run: true
files:
  - "*.txt"
files_exclude:
  - "*.bak"
summary_only: true
jobs: 4
`), 0644))

	cfg, err := config.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "./src", cfg.Root)
	assert.Equal(t, `foo(\d+)`, cfg.Pattern)
	require.NotNil(t, cfg.Replace)
	assert.Equal(t, `bar\1`, *cfg.Replace)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, []string{"*.txt"}, cfg.Files)
	assert.Equal(t, []string{"*.bak"}, cfg.FilesExclude)
	assert.True(t, cfg.SummaryOnly)
	assert.Equal(t, 4, cfg.Jobs)
}

func TestLoad_YAML_UnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rooot: typo\n"), 0644))

	_, err := config.Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestLoad_HCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
root    = "./src"
pattern = "v(\\d+)"
replace = "rev\\1"
log     = "runs/replacements.log"
`), 0644))

	cfg, err := config.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "./src", cfg.Root)
	assert.Equal(t, `v(\d+)`, cfg.Pattern)
	require.NotNil(t, cfg.Replace)
	assert.Equal(t, `rev\1`, *cfg.Replace)
	assert.Equal(t, "runs/replacements.log", cfg.Log)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("root = '/tmp'\n"), 0644))

	_, err := config.Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no parser found")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
