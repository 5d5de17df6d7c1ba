package cmd

import "math"

// atoi converts s the way C's atoi does: leading white space is skipped, an
// optional sign is accepted, and digits are consumed up to the first
// non-digit. Anything unparsable yields 0. Values saturate instead of
// overflowing.
func atoi(s string) int {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	var n int64
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int64(s[i]-'0')
		if n > math.MaxInt32 {
			n = math.MaxInt32 + 1
		}
	}
	if neg {
		n = -n
	}
	if n > math.MaxInt32 {
		n = math.MaxInt32
	}
	return int(n)
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// loopCount parses an iteration count. Negative counts mean no iterations.
func loopCount(s string) uint64 {
	n := atoi(s)
	if n < 0 {
		return 0
	}
	return uint64(n)
}
