package staleness

import (
	"regexp"
	"strconv"
	"time"
)

var intervalRegex = regexp.MustCompile(`^(\d+)(s|m|h|d)$`)

// ParseInterval converts strings like "30m", "2h" or "3d" to a duration.
// Anything that does not match parses to zero.
func ParseInterval(s string) time.Duration {
	match := intervalRegex.FindStringSubmatch(s)
	if match == nil {
		return 0
	}

	n, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0
	}

	switch match[2] {
	case "s":
		return time.Duration(n) * time.Second
	case "m":
		return time.Duration(n) * time.Minute
	case "h":
		return time.Duration(n) * time.Hour
	case "d":
		return time.Duration(n) * 24 * time.Hour
	}
	return 0
}
