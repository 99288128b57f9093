package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/2beens/hrvreport/internal/charts"
	"github.com/2beens/hrvreport/internal/reference"
	"github.com/2beens/hrvreport/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_RepoConfig(t *testing.T) {
	cfg, err := Load("dev", "../../config.toml")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "2112", cfg.PrometheusMetricsPort)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, 268435456, cfg.ChartCacheSize)
	assert.GreaterOrEqual(t, cfg.ChartCacheSize, charts.MinCacheSize)
	assert.Equal(t, "assets/heart.png", cfg.Assets.Heart)
	assert.Equal(t, report.DefaultTitle, cfg.ReportTitle)

	hr, ok := cfg.KnownHRDefaults.Lookup("Lili Rose")
	require.True(t, ok)
	assert.Equal(t, reference.HRDefaults{HRSupine: 61, HRStanding: 97}, hr)

	prod, err := Load("production", "../../config.toml")
	require.NoError(t, err)
	assert.True(t, prod.SentryEnabled)
	// no table in the file, the built-in defaults apply
	assert.Equal(t, reference.DefaultKnownDefaults(), prod.KnownHRDefaults)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[development]
report_title = "Bilan VFC"

[development.known_hr_defaults.zoe]
hr_supine = 50
hr_standing = 80
`)

	cfg, err := Load("Development", path)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "tmp", cfg.ScratchDir)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, "Bilan VFC", cfg.ReportTitle)
	assert.Zero(t, cfg.ChartCacheSize)
	assert.Empty(t, cfg.Assets.LeftLogo)

	require.Len(t, cfg.KnownHRDefaults, 1)
	hr, ok := cfg.KnownHRDefaults.Lookup("Zoe")
	require.True(t, ok)
	assert.Equal(t, 80.0, hr.HRStanding)
}

func TestLoad_Errors(t *testing.T) {
	path := writeConfig(t, "[development]\nport = 8080\n")

	_, err := Load("staging", path)
	assert.ErrorContains(t, err, "unknown env: staging")

	_, err = Load("prod", path)
	assert.ErrorIs(t, err, ErrEnvNotConfigured)

	_, err = Load("dev", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load("dev", writeConfig(t, "[development\nport = "))
	assert.Error(t, err)
}
