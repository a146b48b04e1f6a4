package utils

import (
	"strconv"
)

// ParseID parses a positive integer path parameter such as a post id.
func ParseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
