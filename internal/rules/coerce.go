package rules

import (
	"fmt"
	"strings"
)

// Value coercion helpers. Rule values arrive from YAML or JSON, so numbers
// may be any integer or float kind and lists may be []any or []string.

// toFloat converts numeric Go kinds to float64. Strings and everything else
// are not numbers; numeric operators fail closed on them.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// stringOf returns the string form of a string-like value, empty for
// anything else.
func stringOf(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func lowerString(v any) string {
	return strings.ToLower(stringOf(v))
}

// looseEqual compares two values numerically when both are numbers and as
// strings otherwise.
func looseEqual(a, b any) bool {
	if an, aok := toFloat(a); aok {
		if bn, bok := toFloat(b); bok {
			return an == bn
		}
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// asList normalizes a condition value into a slice of elements.
func asList(v any) []any {
	switch list := v.(type) {
	case []any:
		return list
	case []string:
		out := make([]any, len(list))
		for i, s := range list {
			out[i] = s
		}
		return out
	case nil:
		return nil
	}
	return []any{v}
}

// listContains reports whether the declared list holds the actual value.
// String elements compare case-insensitively.
func listContains(declared, actual any) bool {
	for _, elem := range asList(declared) {
		if elementEqual(elem, actual) {
			return true
		}
	}
	return false
}

// valueContains reports whether the actual value contains the declared one:
// substring match for strings, membership for slices.
func valueContains(actual, declared any) bool {
	switch a := actual.(type) {
	case string:
		return strings.Contains(strings.ToLower(a), lowerStringOrPrint(declared))
	case []string:
		for _, elem := range a {
			if elementEqual(elem, declared) {
				return true
			}
		}
	case []any:
		for _, elem := range a {
			if elementEqual(elem, declared) {
				return true
			}
		}
	}
	return false
}

func elementEqual(a, b any) bool {
	if an, aok := toFloat(a); aok {
		if bn, bok := toFloat(b); bok {
			return an == bn
		}
	}
	return strings.EqualFold(fmt.Sprint(a), fmt.Sprint(b))
}

func lowerStringOrPrint(v any) string {
	if s := stringOf(v); s != "" {
		return strings.ToLower(s)
	}
	return strings.ToLower(fmt.Sprint(v))
}

// containsFold reports whether any haystack entry contains the needle,
// case-insensitively. Used for certification and technology matching.
func containsFold(haystack []string, needle string) bool {
	needle = strings.ToLower(needle)
	for _, h := range haystack {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}
