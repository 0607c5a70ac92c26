package flows

import (
	"context"
	"log/slog"

	"github.com/forgedata/mlforge/internal/config"
)

// FeatureBuild materializes the feature set. Stub: reports one feature
// batch built.
func FeatureBuild(ctx context.Context, settings *config.Settings, logger *slog.Logger) (any, error) {
	logger.Info("building features", "num_workers", settings.Data.NumWorkers)
	return 1, nil
}

// Deploy publishes the current model to the orchestrator deployment.
func Deploy(ctx context.Context, settings *config.Settings, logger *slog.Logger) (any, error) {
	logger.Info("deploying",
		"deployment", settings.Orchestrator.DeploymentName,
		"work_pool", settings.Orchestrator.WorkPool,
	)
	return "deployed", nil
}
