package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "default", cfg.Workspace)
	assert.Equal(t, 50, cfg.History.Limit)
	assert.Equal(t, 5, cfg.Review.DueSoonWeekdays)
	assert.Equal(t, 60, cfg.Gantt.Width)
	assert.False(t, cfg.Log.UseCases)
	assert.Equal(t, "waypoint.db", filepath.Base(cfg.DB.Path))
	assert.Empty(t, cfg.Validate())
}

func TestConfigDir_HonoursWaypointHome(t *testing.T) {
	t.Setenv("WAYPOINT_HOME", "/tmp/wp-home")

	assert.Equal(t, "/tmp/wp-home", ConfigDir())
	assert.Equal(t, "/tmp/wp-home/config.yaml", ConfigFile())
}

func TestInit_NoConfigFileUsesDefaults(t *testing.T) {
	t.Setenv("WAYPOINT_HOME", t.TempDir())
	v := viper.New()

	require.NoError(t, Init(v, ""))
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.History.Limit)
}

func TestInit_ExplicitFileMissing(t *testing.T) {
	v := viper.New()

	err := Init(v, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestInit_ReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "workspace: home\nhistory:\n  limit: 7\nreview:\n  due_soon_weekdays: 3\ngantt:\n  width: 80\nlog:\n  use_cases: true\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	v := viper.New()
	require.NoError(t, Init(v, path))
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "home", cfg.Workspace)
	assert.Equal(t, 7, cfg.History.Limit)
	assert.Equal(t, 3, cfg.Review.DueSoonWeekdays)
	assert.Equal(t, 80, cfg.Gantt.Width)
	assert.True(t, cfg.Log.UseCases)
}

func TestInit_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WAYPOINT_HOME", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("history:\n  limit: 7\n"), 0o644))
	t.Setenv("WAYPOINT_HISTORY_LIMIT", "12")
	t.Setenv("WAYPOINT_DB_PATH", ":memory:")

	v := viper.New()
	require.NoError(t, Init(v, ""))
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.History.Limit)
	assert.Equal(t, ":memory:", cfg.DB.Path)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("history.limit", 0)
	v.Set("gantt.width", 2)
	v.Set("workspace", "../escape")

	_, err := Load(v)
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)
	assert.Contains(t, err.Error(), "3 validation errors")
	assert.Contains(t, err.Error(), "history.limit")
}

func TestValidationError_Single(t *testing.T) {
	errs := ValidationErrors{{Field: "gantt.width", Value: 2, Message: "must be between 10 and 400"}}

	assert.Equal(t, "gantt.width: must be between 10 and 400 (got: 2)", errs.Error())
}
