package strutil

import "strconv"

// ConvertToInt parses s as a base-10 int. A value that does not parse
// yields 0, letting query defaults apply.
func ConvertToInt(s string) int {
	value, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return value
}

// ConvertToInt64 parses s as a base-10 int64, returning 0 on failure.
func ConvertToInt64(s string) int64 {
	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return value
}
