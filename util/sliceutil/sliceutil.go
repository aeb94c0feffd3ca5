package sliceutil

// Contains reports whether s is present in slice.
func Contains[T comparable](slice []T, s T) bool {
	for _, e := range slice {
		if e == s {
			return true
		}
	}
	return false
}

// RemoveDuplicates returns a copy of slice with all duplicate entries
// removed, keeping the first occurrence of each entry.
func RemoveDuplicates[T comparable](slice []T) []T {
	seen := make(map[T]struct{}, len(slice))
	var result []T
	for _, e := range slice {
		if _, exists := seen[e]; exists {
			continue
		}
		seen[e] = struct{}{}
		result = append(result, e)
	}
	return result
}
