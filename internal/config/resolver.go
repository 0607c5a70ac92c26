package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
)

const (
	// envPrefix marks process environment variables that carry settings.
	envPrefix = "PRJ_"
	// envDelimiter separates nesting levels inside a variable name:
	// PRJ_DATA__NUM_WORKERS sets data.num_workers.
	envDelimiter = "__"

	// envSelectVar and envSelectFallbackVar choose which
	// env/{environment}.yaml file to load. Only the process environment is
	// consulted for this; dotenv values do not influence file selection.
	envSelectVar         = "PRJ_ENVIRONMENT"
	envSelectFallbackVar = "ENVIRONMENT"
	defaultEnvironment   = "dev"

	dotenvFileName = ".env"
)

// Resolver gathers override mappings from each source and produces the
// final validated Settings. Resolution is a one-shot deterministic
// computation over local inputs; construct once, call Resolve once.
type Resolver struct {
	projectRoot string
	workDir     string
	secretsDir  string
	overrides   map[string]any
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithProjectRoot fixes the project root instead of discovering it. This is
// a structural input for embedding the resolver (CLI flag, tests), not a
// configuration override: YAML and environment can never set the root.
func WithProjectRoot(root string) Option {
	return func(r *Resolver) { r.projectRoot = root }
}

// WithWorkDir sets the directory root discovery starts from. Defaults to
// the process working directory.
func WithWorkDir(dir string) Option {
	return func(r *Resolver) { r.workDir = dir }
}

// WithSecretsDir points at a directory holding one file per secret setting.
// File names use the lowercase delimiter convention (model__artefact_bucket)
// and file contents are the raw value. Secrets rank below every other
// source.
func WithSecretsDir(dir string) Option {
	return func(r *Resolver) { r.secretsDir = dir }
}

// WithOverrides supplies explicit overrides, the highest-precedence source.
// Keys follow the nested settings structure, e.g.
// {"data": {"num_workers": 8}}.
func WithOverrides(overrides map[string]any) Option {
	return func(r *Resolver) { r.overrides = overrides }
}

// NewResolver builds a resolver from options.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve merges all sources in ascending precedence, decodes the result
// onto the defaults, validates it, and absolutizes path fields.
func (r *Resolver) Resolve() (*Settings, error) {
	root := r.projectRoot
	if root == "" {
		start := r.workDir
		if start == "" {
			wd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get working directory: %w", err)
			}
			start = wd
		}
		found, err := findProjectRoot(start)
		if err != nil {
			return nil, err
		}
		root = found
	}

	configRoot := filepath.Join(root, configDirName)

	layers := []struct {
		overrides map[string]any
		label     func(key string) string
	}{
		{r.secretFileLayer(), r.secretLabel},
		{r.yamlLayer(configRoot), constLabel("yaml overrides under " + configRoot)},
		{r.dotenvLayer(root), dotenvLabel(filepath.Join(root, dotenvFileName))},
		{r.envLayer(), envLabel},
		{r.overrides, constLabel("explicit override")},
	}

	merged := map[string]any{}
	prov := provenance{}
	for _, layer := range layers {
		if len(layer.overrides) == 0 {
			continue
		}
		safe := withoutProjectRoot(layer.overrides)
		merged = Merge(merged, safe)
		prov.recordAll(safe, "", layer.label)
	}

	settings := Default(root)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           settings,
		TagName:          "mapstructure",
		WeaklyTypedInput: true, // env and dotenv values arrive as strings
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build settings decoder: %w", err)
	}
	if err := decoder.Decode(merged); err != nil {
		return nil, describeDecodeError(err, prov)
	}

	settings.Logging.Level = strings.ToLower(settings.Logging.Level)

	if err := validateSettings(settings, prov); err != nil {
		return nil, err
	}

	absolutizePaths(&settings.Paths)
	return settings, nil
}

// yamlLayer builds the YAML-derived override mapping: the environment file
// first, then the thresholds file merged on top with its fallback rule
// applied against what the environment file already staged.
func (r *Resolver) yamlLayer(configRoot string) map[string]any {
	env := selectEnvironment()

	staged := mapEnvironmentFile(ReadYAMLFile(filepath.Join(configRoot, "env", env+".yaml")))
	thresholds := mapThresholdsFile(ReadYAMLFile(filepath.Join(configRoot, "policies", "thresholds.yaml")), staged)
	return Merge(staged, thresholds)
}

// selectEnvironment picks which env/{environment}.yaml file to load.
func selectEnvironment() string {
	if env := os.Getenv(envSelectVar); env != "" {
		return env
	}
	if env := os.Getenv(envSelectFallbackVar); env != "" {
		return env
	}
	return defaultEnvironment
}

// dotenvLayer parses {project_root}/.env. Only PRJ_-prefixed entries
// contribute, using the same key translation as the environment layer.
func (r *Resolver) dotenvLayer(root string) map[string]any {
	values, err := godotenv.Read(filepath.Join(root, dotenvFileName))
	if err != nil {
		return nil
	}

	out := map[string]any{}
	for name, value := range values {
		if path := envKeyPath(name); path != nil {
			setKeyPath(out, path, value)
		}
	}
	return out
}

// envLayer collects PRJ_-prefixed process environment variables.
func (r *Resolver) envLayer() map[string]any {
	out := map[string]any{}
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if path := envKeyPath(name); path != nil {
			setKeyPath(out, path, value)
		}
	}
	return out
}

// secretFileLayer reads the optional secrets directory: one file per
// setting, filename is the delimited key, content is the value.
func (r *Resolver) secretFileLayer() map[string]any {
	if r.secretsDir == "" {
		return nil
	}
	entries, err := os.ReadDir(r.secretsDir)
	if err != nil {
		return nil
	}

	out := map[string]any{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.secretsDir, entry.Name()))
		if err != nil {
			continue
		}
		path := strings.Split(strings.ToLower(entry.Name()), envDelimiter)
		setKeyPath(out, path, strings.TrimSpace(string(data)))
	}
	return out
}

// envKeyPath translates a variable name into a nested key path:
// PRJ_DATA__NUM_WORKERS -> [data num_workers]. Returns nil for names
// without the prefix.
func envKeyPath(name string) []string {
	if !strings.HasPrefix(name, envPrefix) {
		return nil
	}
	key := strings.ToLower(strings.TrimPrefix(name, envPrefix))
	if key == "" {
		return nil
	}
	path := strings.Split(key, envDelimiter)
	for _, segment := range path {
		if segment == "" {
			return nil
		}
	}
	return path
}

// withoutProjectRoot strips paths.project_root from an override mapping.
// The root is a discovered structural fact; no source may set it. The input
// is never mutated.
func withoutProjectRoot(m map[string]any) map[string]any {
	paths, ok := m["paths"].(map[string]any)
	if !ok {
		return m
	}
	if _, ok := paths["project_root"]; !ok {
		return m
	}

	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	cleaned := make(map[string]any, len(paths))
	for k, v := range paths {
		if k == "project_root" {
			continue
		}
		cleaned[k] = v
	}
	out["paths"] = cleaned
	return out
}

func constLabel(label string) func(string) string {
	return func(string) string { return label }
}

func envLabel(key string) string {
	return "environment variable " + envVarName(key)
}

func dotenvLabel(path string) func(string) string {
	return func(key string) string {
		return envVarName(key) + " in " + path
	}
}

func (r *Resolver) secretLabel(key string) string {
	return "secret file " + filepath.Join(r.secretsDir, strings.ReplaceAll(key, ".", envDelimiter))
}

// envVarName is the inverse of envKeyPath: data.num_workers ->
// PRJ_DATA__NUM_WORKERS.
func envVarName(key string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", envDelimiter))
}
