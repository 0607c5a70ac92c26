package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/forgedata/mlforge/internal/config"
)

var (
	flagEnvironment string
	flagLogLevel    string
	flagDebug       bool
	flagProjectRoot string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mlforge",
	Short: "mlforge - scaffold and run ML projects",
	Long: `mlforge generates new ML project skeletons and runs their pipeline
flows against layered project settings (defaults, YAML policy files,
.env files, PRJ_* environment variables, and command-line flags).`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&flagEnvironment, "environment", "", "environment name (dev, staging, prod)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug mode")
	rootCmd.PersistentFlags().StringVar(&flagProjectRoot, "project-root", "", "project root (default: discovered from the working directory)")

	// Bind flags to viper
	viper.BindPFlag("environment", rootCmd.PersistentFlags().Lookup("environment"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("project_root", rootCmd.PersistentFlags().Lookup("project-root"))
}

// configureSettings wires flag values into the settings accessor: changed
// flags become the explicit-override layer (highest precedence) and
// --project-root fixes root discovery. Commands that read settings call
// this before the first config.Get.
func configureSettings(cmd *cobra.Command) error {
	overrides := buildOverrides(cmd.Flags())

	opts := []config.Option{}
	if len(overrides) > 0 {
		opts = append(opts, config.WithOverrides(overrides))
	}
	if root := viper.GetString("project_root"); root != "" {
		opts = append(opts, config.WithProjectRoot(root))
	}
	if len(opts) == 0 {
		return nil
	}
	return config.Configure(opts...)
}

// buildOverrides collects explicitly set flags into a nested override
// mapping. Unchanged flags contribute nothing so file and environment
// sources keep their say.
func buildOverrides(flags *pflag.FlagSet) map[string]any {
	overrides := map[string]any{}

	if flags.Changed("environment") {
		overrides["environment"] = viper.GetString("environment")
	}
	if flags.Changed("debug") {
		overrides["debug"] = viper.GetBool("debug")
	}
	if flags.Changed("log-level") {
		overrides["logging"] = map[string]any{"level": viper.GetString("log_level")}
	}
	return overrides
}
