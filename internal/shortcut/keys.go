package shortcut

import "slices"

// NormalizeSet returns keys with empty entries and duplicates removed,
// keeping the first occurrence of each combination.
func NormalizeSet(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == "" || slices.Contains(out, k) {
			continue
		}
		out = append(out, k)
	}
	return out
}

// SameSet reports whether a and b hold the same key combinations, ignoring
// order and duplicates.
func SameSet(a, b []string) bool {
	a, b = NormalizeSet(a), NormalizeSet(b)
	if len(a) != len(b) {
		return false
	}
	for _, k := range a {
		if !slices.Contains(b, k) {
			return false
		}
	}
	return true
}
