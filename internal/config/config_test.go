package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "leadgen.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "https://api.hunter.io/v2", cfg.Hunter.BaseURL)
	assert.InDelta(t, 1.0, cfg.Hunter.RequestsPerSecond, 0.001)
	assert.InDelta(t, 3.0, cfg.PubMed.RequestsPerSecond, 0.001)
	assert.Equal(t, 1000, cfg.Generator.MaxLeads)
	assert.Len(t, cfg.Generator.TargetRoles, 10)
	assert.Len(t, cfg.Generator.TargetCompanies, 20)
	assert.Len(t, cfg.Generator.Hubs, 9)
	assert.Len(t, cfg.Generator.FundingRounds, 5)

	assert.InDelta(t, 0.30, cfg.Scoring.Weights.RoleFit, 0.001)
	assert.InDelta(t, 0.20, cfg.Scoring.Weights.CompanyIntent, 0.001)
	assert.InDelta(t, 0.15, cfg.Scoring.Weights.Technographic, 0.001)
	assert.InDelta(t, 0.10, cfg.Scoring.Weights.Location, 0.001)
	assert.InDelta(t, 0.40, cfg.Scoring.Weights.ScientificIntent, 0.001)

	require.NoError(t, cfg.Validate())
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/leads
log:
  level: debug
  format: console
server:
  port: 9090
scoring:
  weights:
    role_fit: 0.25
    company_intent: 0.25
    technographic: 0.15
    location: 0.10
    scientific_intent: 0.25
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.InDelta(t, 0.25, cfg.Scoring.Weights.RoleFit, 0.001)
	// Defaults still apply for unset values.
	assert.Equal(t, 1000, cfg.Generator.MaxLeads)

	require.NoError(t, cfg.Validate())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := "log:\n  level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))
	t.Setenv("LEADGEN_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestValidate_BadWeights(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
scoring:
  weights:
    role_fit: 0.90
    company_intent: 0.20
    technographic: 0.15
    location: 0.10
    scientific_intent: 0.40
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 1.0")
}

func TestValidate_BadDriver(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.Store.Driver = "mysql"

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store driver")
}

func TestTables(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	tables := cfg.Tables()
	assert.Equal(t, cfg.Scoring.DomainKeywords, tables.DomainKeywords)
	assert.Equal(t, cfg.Generator.Hubs, tables.Hubs)
}
