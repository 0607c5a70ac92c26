package flows

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/forgedata/mlforge/internal/config"
)

// ingest pulls one batch of raw records. Stub payload until a real source
// is wired into the generated project.
func ingest() map[string]any {
	return map[string]any{"rows": 10}
}

// IngestValidate ingests a batch and checks it against the data
// thresholds. The result is whether the batch passed; with strict
// validation enabled a failing batch is an error instead.
func IngestValidate(ctx context.Context, settings *config.Settings, logger *slog.Logger) (any, error) {
	payload := ingest()

	rows, _ := payload["rows"].(int)
	logger.Info("ingested batch", "rows", rows, "min_rows", settings.Data.MinRows)

	ok := rows >= settings.Data.MinRows
	if !ok && settings.Schema.StrictValidation {
		return nil, fmt.Errorf("batch has %d rows, below min_rows %d", rows, settings.Data.MinRows)
	}
	return ok, nil
}
