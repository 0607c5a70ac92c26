package config

// Field mappings from the two external YAML file schemas into the nested
// settings structure. Unrecognized keys are ignored so policy files can
// carry extra, unrelated sections without breaking resolution.

// mapEnvironmentFile translates an env/{environment}.yaml document.
//
// Supported keys:
//
//	environment            -> environment
//	logging.level          -> logging.level
//	data.root              -> paths.data_root
//	pipeline.num_workers   -> data.num_workers
//	pipeline.chunk_tokens  -> data.chunk_tokens
func mapEnvironmentFile(doc map[string]any) map[string]any {
	out := map[string]any{}
	if len(doc) == 0 {
		return out
	}

	if v, ok := doc["environment"]; ok {
		out["environment"] = v
	}

	if logging, ok := doc["logging"].(map[string]any); ok {
		if v, ok := logging["level"]; ok {
			section(out, "logging")["level"] = v
		}
	}

	if data, ok := doc["data"].(map[string]any); ok {
		if v, ok := data["root"]; ok {
			section(out, "paths")["data_root"] = v
		}
	}

	if pipeline, ok := doc["pipeline"].(map[string]any); ok {
		if v, ok := pipeline["num_workers"]; ok {
			section(out, "data")["num_workers"] = v
		}
		if v, ok := pipeline["chunk_tokens"]; ok {
			section(out, "data")["chunk_tokens"] = v
		}
	}

	return out
}

// mapThresholdsFile translates a policies/thresholds.yaml document. The
// staged mapping holds overrides already accumulated earlier in the same
// resolution pass.
//
// Supported keys:
//
//	validation.min_rows    -> data.min_rows
//	validation.max_missing -> data.max_missing
//	rag.chunk_tokens       -> data.chunk_tokens, fallback only
//
// rag.chunk_tokens is a fallback, not an override: it contributes nothing
// when data.chunk_tokens is already staged (typically by the environment
// file's pipeline.chunk_tokens).
func mapThresholdsFile(doc, staged map[string]any) map[string]any {
	out := map[string]any{}
	if len(doc) == 0 {
		return out
	}

	if validation, ok := doc["validation"].(map[string]any); ok {
		if v, ok := validation["min_rows"]; ok {
			section(out, "data")["min_rows"] = v
		}
		if v, ok := validation["max_missing"]; ok {
			section(out, "data")["max_missing"] = v
		}
	}

	if rag, ok := doc["rag"].(map[string]any); ok {
		if v, ok := rag["chunk_tokens"]; ok && !hasKey(staged, "data", "chunk_tokens") {
			section(out, "data")["chunk_tokens"] = v
		}
	}

	return out
}
