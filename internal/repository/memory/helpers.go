package memory

import "strings"

func applyValue[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func equalFold(a, b string) bool {
	return strings.EqualFold(a, b)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
