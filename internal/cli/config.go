package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/forgedata/mlforge/internal/config"
)

// configCmd groups settings inspection subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect resolved project settings",
}

// configShowCmd prints the fully resolved settings as YAML.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := configureSettings(cmd); err != nil {
			return err
		}
		settings, err := config.Get()
		if err != nil {
			return fmt.Errorf("failed to resolve settings: %w", err)
		}

		out, err := yaml.Marshal(settings)
		if err != nil {
			return fmt.Errorf("failed to render settings: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

// configPathCmd prints the discovered project and config roots.
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the project root and config root",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := configureSettings(cmd); err != nil {
			return err
		}
		settings, err := config.Get()
		if err != nil {
			return fmt.Errorf("failed to resolve settings: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "project root: %s\n", settings.Paths.ProjectRoot)
		fmt.Fprintf(cmd.OutOrStdout(), "config root:  %s\n", settings.Paths.ConfigRoot)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}
