package dataset

func sliceContain[T comparable](a []T, b T) bool {
	return sliceContainIndex(a, b) > -1
}

func sliceContainIndex[T comparable](a []T, b T) int {
	for k, v := range a {
		if v == b {
			return k
		}
	}
	return -1
}

// sliceUnique keeps the first occurrence of every element.
func sliceUnique[T comparable](a []T) []T {
	seen := make(map[T]struct{}, len(a))
	ret := make([]T, 0, len(a))
	for _, v := range a {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		ret = append(ret, v)
	}
	return ret
}
