package flows

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/forgedata/mlforge/internal/config"
)

// dataSourcesFile is the per-project pipeline input catalog, relative to
// the project root.
var dataSourcesFile = filepath.Join("configs", "data_sources.yaml")

// TrainEval loads the data-source catalog, trains, and logs a model card.
// Returns the evaluation metrics.
func TrainEval(ctx context.Context, settings *config.Settings, logger *slog.Logger) (any, error) {
	catalog := config.ReadYAMLFile(filepath.Join(settings.Paths.ProjectRoot, dataSourcesFile))
	logger.Info("loaded data sources", "sources", len(catalog))

	metrics := trainModel()

	logger.Info("model card",
		"name", settings.Model.ModelName,
		"version", "0.1.0",
		"metrics", metrics,
		"artefact_bucket", settings.Model.ArtefactBucket,
	)
	return metrics, nil
}

// trainModel is a stub trainer; it only reports a placeholder metric.
func trainModel() map[string]float64 {
	return map[string]float64{"auc": 0.5}
}
