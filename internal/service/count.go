package service

import (
	"math"
	"strings"
)

// DefaultCount is the number of jokes returned when the caller asks for none,
// or asks in a way that cannot be understood.
const DefaultCount = 1

// ParseCount turns the raw `count` query value into a positive integer.
//
// It reads an optional leading '+' followed by the longest run of ASCII digits,
// ignoring surrounding whitespace and anything after the digits, so "3abc" is 3.
// Malformed input is never an error: empty, non-numeric, zero and negative
// values all become DefaultCount. Values too large for an int clamp to MaxInt.
func ParseCount(raw string) int {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "+")

	n := 0
	digits := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		digits++
		d := int(r - '0')
		if n > (math.MaxInt-d)/10 {
			return math.MaxInt
		}
		n = n*10 + d
	}

	if digits == 0 || n < 1 {
		return DefaultCount
	}
	return n
}
