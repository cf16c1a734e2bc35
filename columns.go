package main

import (
	"strconv"
	"strings"
	"unicode"
)

// ValidColumnNames rewrites result column names so they are acceptable to
// structured sinks: invalid characters become '_', and names appearing more
// than once get a zero-based occurrence suffix. Order and length are
// preserved; a unique valid name passes through unchanged.
func ValidColumnNames(names []string) []string {
	valid := make([]string, len(names))
	for at, name := range names {
		valid[at] = makeValidColumnName(name)
	}
	occurrences := make(map[string]int, len(valid))
	for _, name := range valid {
		occurrences[name]++
	}
	seen := make(map[string]int, len(valid))
	result := make([]string, len(valid))
	for at, name := range valid {
		if occurrences[name] > 1 {
			result[at] = name + strconv.Itoa(seen[name])
			seen[name]++
		} else {
			result[at] = name
		}
	}
	return result
}

func makeValidColumnName(name string) string {
	if name == "" {
		return "_"
	}
	var builder strings.Builder
	builder.Grow(len(name))
	first := true
	for _, c := range name {
		valid := isColumnPart(c)
		if first {
			valid = isColumnStart(c)
			first = false
		}
		if valid {
			builder.WriteRune(c)
		} else {
			builder.WriteByte('_')
		}
	}
	return builder.String()
}

func isColumnStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isColumnPart(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
}
