package kv0

import "strconv"

// arrayKey reports the positive integer that s names as a KV0 array
// index, or ok=false if s is not a plain decimal positive integer.
func arrayKey(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	// Reject non-canonical spellings like "01" or "+1" that strconv
	// would otherwise accept as representing the same integer.
	if strconv.Itoa(n) != s {
		return 0, false
	}
	return n, true
}
