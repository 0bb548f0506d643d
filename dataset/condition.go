package dataset

import (
	"sort"
	"strings"
	"unicode"
)

// normalizeCondition trims the clause and drops a leading WHERE keyword,
// so "WHERE a > 1" and "a > 1" load and cache the same way.
func normalizeCondition(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 5 && strings.EqualFold(s[:5], "where") {
		if len(s) == 5 {
			return ""
		}
		if unicode.IsSpace(rune(s[5])) {
			s = strings.TrimSpace(s[5:])
		}
	}
	return s
}

// resolveCondition picks the table's own condition, then the global one,
// then none.
func resolveCondition(conditions map[string]string, table string) string {
	if c, ok := conditions[table]; ok {
		return normalizeCondition(c)
	}
	if c, ok := conditions[GlobalCondition]; ok {
		return normalizeCondition(c)
	}
	return ""
}

// strayConditions returns condition keys naming tables outside tables.
func strayConditions(conditions map[string]string, tables []string) []string {
	var ret []string
	for k := range conditions {
		if k == GlobalCondition || sliceContain(tables, k) {
			continue
		}
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}
