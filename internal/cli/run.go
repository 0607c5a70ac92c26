package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/forgedata/mlforge/internal/config"
	"github.com/forgedata/mlforge/internal/flows"
)

// runCmd dispatches a named pipeline flow against the resolved settings.
var runCmd = &cobra.Command{
	Use:   "run <flow>",
	Short: "Run a pipeline flow",
	Long: `Run a named pipeline flow (ingest-validate, train-eval, feature-build,
deploy) in the current project. Settings are resolved once from the layered
sources before the flow starts.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := configureSettings(cmd); err != nil {
			return err
		}
		settings, err := config.Get()
		if err != nil {
			return fmt.Errorf("failed to resolve settings: %w", err)
		}
		logger := setupLogger(settings)

		registry := flows.DefaultRegistry()
		name := args[0]
		result, err := registry.Run(cmd.Context(), name, settings, logger)
		if err != nil {
			if errors.Is(err, flows.ErrUnknownFlow) {
				return fmt.Errorf("%w (available: %s)", err, strings.Join(registry.Names(), ", "))
			}
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
