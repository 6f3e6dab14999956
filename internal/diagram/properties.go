package diagram

// prop returns m[key] as a T, or the zero T.
func prop[T any](m map[string]any, key string) T {
	v, _ := m[key].(T)
	return v
}

// PropString returns a string property; empty when missing or not a string.
func PropString(m map[string]any, key string) string { return prop[string](m, key) }

// PropInt returns an integer property. JSON numbers decode as float64 and are truncated.
func PropInt(m map[string]any, key string) int {
	switch n := m[key].(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}

// PropStringMap returns the string-valued entries of a nested object property, such as
// env. Non-string values are skipped.
func PropStringMap(m map[string]any, key string) map[string]string {
	raw := prop[map[string]any](m, key)
	if raw == nil {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
