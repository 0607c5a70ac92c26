package scaffold

import "fmt"

// NextSteps returns the post-generation summary printed after a project is
// created.
func NextSteps(projectDir string) string {
	return fmt.Sprintf(`Project generated at: %s

Next steps:
  1) cd %s
  2) Review app_config/env/dev.yaml and app_config/policies/thresholds.yaml
  3) Copy .env.example to .env and fill in secrets
  4) Inspect settings: mlforge config show
  5) Try a flow: mlforge run train-eval`, projectDir, projectDir)
}
