package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Resolve:
// - No sources at all yields the static defaults
// - The worked scenario: env yaml + thresholds yaml + env var combine with
//   the chunk_tokens fallback suppressed
// - Precedence end-to-end: explicit override > env var > dotenv > yaml > secret
// - Dotenv contributes only PRJ_-prefixed entries
// - Secret files rank below every other source
// - PRJ_ENVIRONMENT then ENVIRONMENT select the env yaml file
// - Env var values that cannot coerce fail, naming variable and field
// - Constraint violations from any source fail with the dotted key
// - Path fields are absolute after resolution
// - paths.project_root cannot be set by any source
// - Logging level is normalized to lower case
// - Root discovery walks up from the work dir; no marker is fatal

// newProject lays out a minimal project fixture and returns its root.
func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, configDirName, "env"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, configDirName, "policies"), 0o755))
	return root
}

func writeProjectFile(t *testing.T, root string, rel string, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolve_DefaultsWhenNoSources(t *testing.T) {
	root := newProject(t)

	settings, err := NewResolver(WithProjectRoot(root)).Resolve()
	require.NoError(t, err)

	assert.Equal(t, "dev", settings.Environment)
	assert.False(t, settings.Debug)
	assert.Equal(t, 4, settings.Data.NumWorkers)
	assert.Equal(t, 512, settings.Data.ChunkTokens)
	assert.Equal(t, 1000, settings.Data.BatchSize)
	assert.Equal(t, 10, settings.Data.MinRows)
	assert.Equal(t, 0.05, settings.Data.MaxMissing)
	assert.Equal(t, "baseline_xgb", settings.Model.ModelName)
	assert.Equal(t, "info", settings.Logging.Level)
	assert.True(t, settings.Schema.StrictValidation)
	assert.Equal(t, "v1", settings.Schema.Version)

	assert.Equal(t, root, settings.Paths.ProjectRoot)
	assert.Equal(t, filepath.Join(root, "data"), settings.Paths.DataRoot)
	assert.Equal(t, filepath.Join(root, "app_config"), settings.Paths.ConfigRoot)
	assert.Equal(t, filepath.Join(root, ".cache"), settings.Paths.CacheRoot)
}

func TestResolve_WorkedScenario(t *testing.T) {
	root := newProject(t)
	writeProjectFile(t, root, "app_config/env/dev.yaml", `
pipeline:
  num_workers: 8
  chunk_tokens: 256
`)
	writeProjectFile(t, root, "app_config/policies/thresholds.yaml", `
validation:
  min_rows: 20
rag:
  chunk_tokens: 999
`)
	t.Setenv("PRJ_DATA__BATCH_SIZE", "2000")

	settings, err := NewResolver(WithProjectRoot(root)).Resolve()
	require.NoError(t, err)

	assert.Equal(t, 8, settings.Data.NumWorkers)
	assert.Equal(t, 256, settings.Data.ChunkTokens, "thresholds fallback must not clobber the env file value")
	assert.Equal(t, 20, settings.Data.MinRows)
	assert.Equal(t, 2000, settings.Data.BatchSize)
	// Everything else stays at defaults.
	assert.Equal(t, 0.05, settings.Data.MaxMissing)
	assert.Equal(t, "dev", settings.Environment)
	assert.Equal(t, "baseline_xgb", settings.Model.ModelName)
}

func TestResolve_ThresholdsFallbackAppliesWhenUnset(t *testing.T) {
	root := newProject(t)
	writeProjectFile(t, root, "app_config/policies/thresholds.yaml", `
rag:
  chunk_tokens: 999
`)

	settings, err := NewResolver(WithProjectRoot(root)).Resolve()
	require.NoError(t, err)

	assert.Equal(t, 999, settings.Data.ChunkTokens)
}

func TestResolve_PrecedenceEndToEnd(t *testing.T) {
	root := newProject(t)
	writeProjectFile(t, root, "app_config/env/dev.yaml", `
pipeline:
  num_workers: 8
`)
	t.Setenv("PRJ_DATA__NUM_WORKERS", "16")

	// Env var beats YAML.
	settings, err := NewResolver(WithProjectRoot(root)).Resolve()
	require.NoError(t, err)
	assert.Equal(t, 16, settings.Data.NumWorkers)

	// Explicit override beats both.
	settings, err = NewResolver(
		WithProjectRoot(root),
		WithOverrides(map[string]any{"data": map[string]any{"num_workers": 32}}),
	).Resolve()
	require.NoError(t, err)
	assert.Equal(t, 32, settings.Data.NumWorkers)
}

func TestResolve_DotenvLayer(t *testing.T) {
	root := newProject(t)
	writeProjectFile(t, root, ".env", "PRJ_MODEL__MODEL_NAME=dotenv_model\nUNRELATED=ignored\n")

	settings, err := NewResolver(WithProjectRoot(root)).Resolve()
	require.NoError(t, err)
	assert.Equal(t, "dotenv_model", settings.Model.ModelName)

	// Process environment beats dotenv.
	t.Setenv("PRJ_MODEL__MODEL_NAME", "env_model")
	settings, err = NewResolver(WithProjectRoot(root)).Resolve()
	require.NoError(t, err)
	assert.Equal(t, "env_model", settings.Model.ModelName)
}

func TestResolve_SecretFilesAreLowestPrecedence(t *testing.T) {
	root := newProject(t)
	secrets := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(secrets, "model__artefact_bucket"), []byte("s3://secret\n"), 0o600))

	settings, err := NewResolver(WithProjectRoot(root), WithSecretsDir(secrets)).Resolve()
	require.NoError(t, err)
	assert.Equal(t, "s3://secret", settings.Model.ArtefactBucket)

	// Any other source wins over the secret file.
	writeProjectFile(t, root, ".env", "PRJ_MODEL__ARTEFACT_BUCKET=s3://dotenv\n")
	settings, err = NewResolver(WithProjectRoot(root), WithSecretsDir(secrets)).Resolve()
	require.NoError(t, err)
	assert.Equal(t, "s3://dotenv", settings.Model.ArtefactBucket)
}

func TestResolve_EnvironmentFileSelection(t *testing.T) {
	root := newProject(t)
	writeProjectFile(t, root, "app_config/env/dev.yaml", "pipeline:\n  num_workers: 1\n")
	writeProjectFile(t, root, "app_config/env/staging.yaml", "pipeline:\n  num_workers: 2\n")
	writeProjectFile(t, root, "app_config/env/prod.yaml", "pipeline:\n  num_workers: 3\n")

	// Unprefixed ENVIRONMENT is the fallback selector.
	t.Setenv("ENVIRONMENT", "staging")
	settings, err := NewResolver(WithProjectRoot(root)).Resolve()
	require.NoError(t, err)
	assert.Equal(t, 2, settings.Data.NumWorkers)
	assert.Equal(t, "dev", settings.Environment, "selector variable alone does not set the environment field")

	// PRJ_ENVIRONMENT wins over ENVIRONMENT and also sets the field.
	t.Setenv("PRJ_ENVIRONMENT", "prod")
	settings, err = NewResolver(WithProjectRoot(root)).Resolve()
	require.NoError(t, err)
	assert.Equal(t, 3, settings.Data.NumWorkers)
	assert.Equal(t, "prod", settings.Environment)
}

func TestResolve_UncoercibleEnvValueFails(t *testing.T) {
	root := newProject(t)
	t.Setenv("PRJ_DATA__NUM_WORKERS", "not-a-number")

	_, err := NewResolver(WithProjectRoot(root)).Resolve()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSetting)
	assert.Contains(t, err.Error(), "data.num_workers")
	assert.Contains(t, err.Error(), "PRJ_DATA__NUM_WORKERS")
}

func TestResolve_ConstraintViolationFails(t *testing.T) {
	root := newProject(t)
	writeProjectFile(t, root, "app_config/env/dev.yaml", `
pipeline:
  num_workers: -3
`)

	_, err := NewResolver(WithProjectRoot(root)).Resolve()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSetting)
	assert.Contains(t, err.Error(), "data.num_workers")
}

func TestResolve_MaxMissingRange(t *testing.T) {
	root := newProject(t)
	writeProjectFile(t, root, "app_config/policies/thresholds.yaml", `
validation:
  max_missing: 1.5
`)

	_, err := NewResolver(WithProjectRoot(root)).Resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data.max_missing")
}

func TestResolve_PathOverridesAbsolutized(t *testing.T) {
	root := newProject(t)
	writeProjectFile(t, root, "app_config/env/dev.yaml", `
data:
  root: lake/raw
`)

	settings, err := NewResolver(WithProjectRoot(root)).Resolve()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "lake", "raw"), settings.Paths.DataRoot)

	// An absolute override stays as-is.
	t.Setenv("PRJ_PATHS__DATA_ROOT", "/mnt/lake")
	settings, err = NewResolver(WithProjectRoot(root)).Resolve()
	require.NoError(t, err)
	assert.Equal(t, "/mnt/lake", settings.Paths.DataRoot)
}

func TestResolve_ProjectRootIsNotConfigurable(t *testing.T) {
	root := newProject(t)
	t.Setenv("PRJ_PATHS__PROJECT_ROOT", "/elsewhere")

	settings, err := NewResolver(
		WithProjectRoot(root),
		WithOverrides(map[string]any{"paths": map[string]any{"project_root": "/also-elsewhere"}}),
	).Resolve()
	require.NoError(t, err)
	assert.Equal(t, root, settings.Paths.ProjectRoot)
}

func TestResolve_LoggingLevelNormalized(t *testing.T) {
	root := newProject(t)
	writeProjectFile(t, root, "app_config/env/dev.yaml", `
logging:
  level: WARN
`)

	settings, err := NewResolver(WithProjectRoot(root)).Resolve()
	require.NoError(t, err)
	assert.Equal(t, "warn", settings.Logging.Level)
}

func TestResolve_InvalidLoggingLevelFails(t *testing.T) {
	root := newProject(t)
	t.Setenv("PRJ_LOGGING__LEVEL", "loud")

	_, err := NewResolver(WithProjectRoot(root)).Resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestResolve_DiscoversRootFromWorkDir(t *testing.T) {
	root := newProject(t)
	nested := filepath.Join(root, "src", "flows")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	settings, err := NewResolver(WithWorkDir(nested)).Resolve()
	require.NoError(t, err)
	assert.Equal(t, root, settings.Paths.ProjectRoot)
}

func TestResolve_MissingRootIsFatal(t *testing.T) {
	_, err := NewResolver(WithWorkDir(t.TempDir())).Resolve()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProjectRootNotFound)
}
