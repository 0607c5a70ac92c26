// Package config provides layered settings resolution for mlforge projects.
//
// A project's settings are assembled from ranked sources and merged into a
// single validated Settings value. Sources, from lowest to highest
// precedence:
//
//  1. Built-in defaults
//  2. Secret files (one file per setting in an optional secrets directory)
//  3. YAML-derived overrides (app_config/env/{env}.yaml, then
//     app_config/policies/thresholds.yaml)
//  4. Dotenv values ({project_root}/.env)
//  5. Process environment variables (PRJ_* prefix)
//  6. Explicit overrides supplied by the caller
//
// Environment Variable Convention:
//   - Prefix: PRJ_
//   - Nested fields: double underscore separates levels
//     (PRJ_DATA__NUM_WORKERS sets data.num_workers)
//   - Unprefixed ENVIRONMENT is honored only for choosing which
//     env/{environment}.yaml file to load
//
// Each source contributes a possibly-empty nested mapping; the mappings are
// folded through Merge so that later sources overwrite scalar leaves while
// deep-merging into nested sections. The fully merged mapping is decoded
// onto the defaults, validated, and path fields are absolutized against the
// discovered project root.
//
// Missing or malformed source files contribute nothing and never fail
// resolution. A value that was explicitly supplied but cannot coerce or
// violates a field constraint fails resolution with an error naming the
// setting and, when known, the source that supplied it.
//
// Example usage:
//
//	settings, err := config.Get()
//	if err != nil {
//	    return err
//	}
//	workers := settings.Data.NumWorkers
//
// Get resolves at most once per process; every subsequent call returns the
// identical Settings instance. There is no reload: a process that needs
// fresh configuration must restart.
package config
