package util

import (
	"strconv"
)

// QueryInt parses s, returning def when it is empty or not a number.
func QueryInt(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// QueryFloat parses s, returning def when it is empty or not a number.
func QueryFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}
