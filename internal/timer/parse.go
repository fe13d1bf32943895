package timer

import (
	"strconv"
	"strings"
)

// ParseMinutes reads the leading integer of s, the way a browser number
// field is read: surrounding space is ignored, trailing garbage after the
// digits is dropped. ok is false when s does not start with a number.
func ParseMinutes(s string) (minutes int, ok bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
