package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forgedata/mlforge/internal/scaffold"
)

var (
	newName      string
	newParentDir string
	newQuiet     bool
)

// newCmd generates a fresh project skeleton from the embedded template.
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new ML project from the template",
	Long: `Create a new project skeleton as {parent-dir}/{name}: source layout,
app_config YAML files, .env example, and pipeline configs. The target
directory must not already contain files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		parent := newParentDir
		if parent == "" {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			parent = wd
		}

		gen := scaffold.DefaultGenerator()
		projectDir, err := gen.Generate(scaffold.Request{
			Name:      newName,
			ParentDir: parent,
			Quiet:     newQuiet,
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), scaffold.NextSteps(projectDir))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVarP(&newName, "name", "n", "", "new project folder name (kebab-case recommended)")
	newCmd.Flags().StringVar(&newParentDir, "parent-dir", "", "directory to create the project in (default: working directory)")
	newCmd.Flags().BoolVarP(&newQuiet, "quiet", "q", false, "suppress progress output")
	newCmd.MarkFlagRequired("name")
}
