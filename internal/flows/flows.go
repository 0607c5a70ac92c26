// Package flows holds the named pipeline flows a project can run. Each
// flow is a function of the resolved settings; the CLI dispatches them by
// name through the Registry.
package flows

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/forgedata/mlforge/internal/config"
)

// ErrUnknownFlow indicates a flow name with no registered implementation.
var ErrUnknownFlow = errors.New("unknown flow")

// Flow runs one pipeline against the resolved settings and returns its
// result.
type Flow func(ctx context.Context, settings *config.Settings, logger *slog.Logger) (any, error)

// Registry maps flow names to implementations.
type Registry map[string]Flow

// DefaultRegistry returns the built-in flows.
func DefaultRegistry() Registry {
	return Registry{
		"ingest-validate": IngestValidate,
		"train-eval":      TrainEval,
		"feature-build":   FeatureBuild,
		"deploy":          Deploy,
	}
}

// Names returns the registered flow names, sorted.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run dispatches a flow by name, tagging its log output with a fresh run ID.
func (r Registry) Run(ctx context.Context, name string, settings *config.Settings, logger *slog.Logger) (any, error) {
	flow, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFlow, name)
	}

	runLogger := logger.With("flow", name, "run_id", uuid.NewString())
	runLogger.Info("flow started", "environment", settings.Environment)

	start := time.Now()
	result, err := flow(ctx, settings, runLogger)
	if err != nil {
		runLogger.Error("flow failed", "error", err, "duration", time.Since(start))
		return nil, err
	}

	runLogger.Info("flow finished", "duration", time.Since(start))
	return result, nil
}
