// Package stats turns loosely shaped ESPN box-score payloads into uniform
// player lines, folds them into season totals and decides game outcomes.
package stats

// Lookup returns the value of the first key present in m whose value is not
// nil. Every "try these spellings in order" site in the package goes through
// here.
func Lookup[V any](m map[string]V, keys ...string) (V, bool) {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || any(v) == nil {
			continue
		}
		return v, true
	}
	var zero V
	return zero, false
}
