package config

// Merge combines two nested mappings and returns the result. For each key
// in incoming: when both sides hold a mapping the merge recurses, otherwise
// the incoming value replaces (or inserts over) whatever base held. Keys
// present only in base are preserved.
//
// Neither input is mutated. Subtrees taken wholesale from one input are
// shared by reference, so callers must not modify a merged result in place.
func Merge(base, incoming map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(incoming))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range incoming {
		existing, present := out[k]
		if present {
			bm, baseIsMap := existing.(map[string]any)
			im, incomingIsMap := v.(map[string]any)
			if baseIsMap && incomingIsMap {
				out[k] = Merge(bm, im)
				continue
			}
		}
		out[k] = v
	}
	return out
}

// section returns the nested mapping stored under key, creating it when
// absent. A non-mapping value under key is replaced.
func section(m map[string]any, key string) map[string]any {
	if s, ok := m[key].(map[string]any); ok {
		return s
	}
	s := map[string]any{}
	m[key] = s
	return s
}

// hasKey reports whether m holds any value at section/key.
func hasKey(m map[string]any, sectionKey, key string) bool {
	s, ok := m[sectionKey].(map[string]any)
	if !ok {
		return false
	}
	_, ok = s[key]
	return ok
}

// setKeyPath writes v at the nested key path, creating intermediate
// sections as needed.
func setKeyPath(m map[string]any, path []string, v any) {
	if len(path) == 0 {
		return
	}
	for _, k := range path[:len(path)-1] {
		m = section(m, k)
	}
	m[path[len(path)-1]] = v
}
