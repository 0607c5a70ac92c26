package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ReadYAMLFile loads a YAML mapping from path. A file that is missing,
// unreadable, malformed, or whose top level is not a mapping yields an
// empty map. Policy files are optional and must never block resolution.
func ReadYAMLFile(path string) map[string]any {
	data, err := os.ReadFile(path)
	if err != nil {
		return map[string]any{}
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil || doc == nil {
		return map[string]any{}
	}
	return doc
}
