package estimate

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultQuantity is used when no usable quantity was requested.
const DefaultQuantity = 1

var leadingInteger = regexp.MustCompile(`^[+-]?\d+`)

// ParseQuantity reads the leading integer of raw, so "12 Stk" is 12.
// Missing, non-numeric and non-positive input yields DefaultQuantity.
func ParseQuantity(raw string) int {
	digits := leadingInteger.FindString(strings.TrimSpace(raw))
	if digits == "" {
		return DefaultQuantity
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return DefaultQuantity
	}
	return NormalizeQuantity(n)
}

// NormalizeQuantity maps quantities below one to DefaultQuantity.
func NormalizeQuantity(n int) int {
	if n < 1 {
		return DefaultQuantity
	}
	return n
}
