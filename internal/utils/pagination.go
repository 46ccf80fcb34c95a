// Package utils provides small helpers for parsing and bounding the numeric
// query parameters the API accepts (planner pagination, stats ranges).
package utils

import "strconv"

// AtoiDefault converts a string to an int using strconv.Atoi.
// If the string is empty or cannot be parsed as an integer,
// it returns the provided default value instead.
//
// Example:
//
//	n := utils.AtoiDefault("42", 0) // returns 42
//	n = utils.AtoiDefault("", 10)   // returns 10
//	n = utils.AtoiDefault("x", 5)   // returns 5
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// ClampInt parses s like AtoiDefault and bounds the result to [min, max].
// Used for query parameters where out-of-range values should degrade to the
// nearest allowed value instead of erroring (page sizes, day ranges).
func ClampInt(s string, def, min, max int) int {
	n := AtoiDefault(s, def)
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
