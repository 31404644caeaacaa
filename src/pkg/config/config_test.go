package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echomw "donation-report/src/pkg/echo-middleware"
	"donation-report/src/pkg/email"
)

func TestReadConfigMissingFile(t *testing.T) {
	cfg, e := ReadConfig(filepath.Join(t.TempDir(), "absent.json"))
	require.Nil(t, e)
	assert.Nil(t, cfg.Report)
	assert.Nil(t, cfg.Fetch)
}

func TestReadConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, e := ReadConfig(path)
	require.NotNil(t, e)
}

func TestInitializeConfigAppliesSections(t *testing.T) {
	defer func() {
		email.Cfg = email.DefaultValueConfig()
		echomw.Cfg = echomw.DefaultValueConfig()
	}()

	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"report": {"title": "Laporan", "grid_columns": 3},
		"fetch":  {"timeout_seconds": 5},
		"email":  {"provider": "ses"},
		"server": {"port": 9090}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	InitializeConfig(path)

	assert.Equal(t, "Laporan", Cfg.Report.Title)
	assert.Equal(t, 3, Cfg.Report.GridColumns)
	assert.Equal(t, 2, Cfg.Report.GridRows)
	assert.Equal(t, 5, Cfg.Fetch.TimeoutSeconds)
	assert.Equal(t, "ses", Cfg.Email.Provider)
	assert.Equal(t, 9090, Cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", Cfg.Server.Address)
}

func TestCheckIfEnvVarsPresent(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DONATION_REPORT_PRESENT", "yes")
	t.Setenv("DONATION_REPORT_BLANK", "  ")

	missing := CheckIfEnvVarsPresent("DONATION_REPORT_PRESENT", "DONATION_REPORT_BLANK", "DONATION_REPORT_NEVER_SET")
	assert.Equal(t, []string{"DONATION_REPORT_BLANK", "DONATION_REPORT_NEVER_SET"}, missing)
}

func TestCheckIfEnvVarsPresentReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DONATION_REPORT_FROM_FILE=1\n"), 0o644))
	t.Chdir(dir)
	t.Setenv("DONATION_REPORT_FROM_FILE", "")
	os.Unsetenv("DONATION_REPORT_FROM_FILE")

	missing := CheckIfEnvVarsPresent("DONATION_REPORT_FROM_FILE")
	assert.Empty(t, missing)
}
