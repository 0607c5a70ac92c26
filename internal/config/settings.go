package config

// Settings is the root configuration object for a project. It is resolved
// once per process and read-only afterwards; collaborators read fields but
// never construct or mutate it directly.
type Settings struct {
	Environment string `mapstructure:"environment" yaml:"environment" validate:"required"`
	Debug       bool   `mapstructure:"debug" yaml:"debug"`

	Paths        PathsSettings        `mapstructure:"paths" yaml:"paths"`
	Data         DataSettings         `mapstructure:"data" yaml:"data"`
	Model        ModelSettings        `mapstructure:"model" yaml:"model"`
	Logging      LoggingSettings      `mapstructure:"logging" yaml:"logging"`
	Orchestrator OrchestratorSettings `mapstructure:"orchestrator" yaml:"orchestrator"`
	Schema       SchemaSettings       `mapstructure:"schema" yaml:"schema"`
}

// PathsSettings anchors the project's directory layout. After resolution
// every field is an absolute path; relative values are joined onto
// ProjectRoot. ProjectRoot itself is discovered, never configured.
type PathsSettings struct {
	ProjectRoot string `mapstructure:"project_root" yaml:"project_root"`
	DataRoot    string `mapstructure:"data_root" yaml:"data_root"`
	ConfigRoot  string `mapstructure:"config_root" yaml:"config_root"`
	CacheRoot   string `mapstructure:"cache_root" yaml:"cache_root"`
}

// DataSettings controls ingestion and chunking behavior.
type DataSettings struct {
	NumWorkers  int     `mapstructure:"num_workers" yaml:"num_workers" validate:"gt=0"`
	ChunkTokens int     `mapstructure:"chunk_tokens" yaml:"chunk_tokens" validate:"gt=0"`
	BatchSize   int     `mapstructure:"batch_size" yaml:"batch_size" validate:"gt=0"`
	MinRows     int     `mapstructure:"min_rows" yaml:"min_rows" validate:"gte=0"`
	MaxMissing  float64 `mapstructure:"max_missing" yaml:"max_missing" validate:"gte=0,lte=1"`
}

// ModelSettings identifies the model and its artefact destination.
type ModelSettings struct {
	ModelName      string `mapstructure:"model_name" yaml:"model_name" validate:"required"`
	ArtefactBucket string `mapstructure:"artefact_bucket" yaml:"artefact_bucket"`
}

// LoggingSettings selects log verbosity and output format.
type LoggingSettings struct {
	Level string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json" yaml:"json"`
}

// OrchestratorSettings carries work-pool and deployment identifiers
// consumed by the orchestration layer. No internal logic depends on them.
type OrchestratorSettings struct {
	WorkPool       string `mapstructure:"work_pool" yaml:"work_pool"`
	WorkQueue      string `mapstructure:"work_queue" yaml:"work_queue"`
	DeploymentName string `mapstructure:"deployment_name" yaml:"deployment_name"`
}

// SchemaSettings controls record validation strictness and schema version.
type SchemaSettings struct {
	StrictValidation bool   `mapstructure:"strict_validation" yaml:"strict_validation"`
	Version          string `mapstructure:"version" yaml:"version" validate:"required"`
}

// Default returns settings populated with the static defaults. Every field
// has one; resolution starts from this value and layers overrides on top.
func Default(projectRoot string) *Settings {
	return &Settings{
		Environment: "dev",
		Debug:       false,
		Paths: PathsSettings{
			ProjectRoot: projectRoot,
			DataRoot:    "data",
			ConfigRoot:  "app_config",
			CacheRoot:   ".cache",
		},
		Data: DataSettings{
			NumWorkers:  4,
			ChunkTokens: 512,
			BatchSize:   1000,
			MinRows:     10,
			MaxMissing:  0.05,
		},
		Model: ModelSettings{
			ModelName:      "baseline_xgb",
			ArtefactBucket: "",
		},
		Logging: LoggingSettings{
			Level: "info",
			JSON:  false,
		},
		Orchestrator: OrchestratorSettings{},
		Schema: SchemaSettings{
			StrictValidation: true,
			Version:          "v1",
		},
	}
}
