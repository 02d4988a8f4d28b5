package videos

import (
	"fmt"
	"strings"
)

// FormatViews projects a numeric view count to the compact display string:
// millions and thousands truncate to one decimal, everything below a
// thousand is the literal integer.
func FormatViews(n uint64) string {
	switch {
	case n >= 1_000_000:
		tenths := n / 100_000
		return fmt.Sprintf("%d.%dM views", tenths/10, tenths%10)
	case n >= 1_000:
		tenths := n / 100
		return fmt.Sprintf("%d.%dK views", tenths/10, tenths%10)
	default:
		return fmt.Sprintf("%d views", n)
	}
}

// ParseISODuration normalizes an ISO 8601 duration ("PT1H2M30S") to whole
// minutes, rounding a partial final minute up. Malformed input yields 0.
func ParseISODuration(s string) int {
	s = strings.TrimPrefix(s, "P")
	if s == "" {
		return 0
	}

	var minutes, seconds, value int
	inTime := false
	sawDigit := false

	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			value = value*10 + int(r-'0')
			sawDigit = true
		case r == 'T':
			inTime = true
			value = 0
			sawDigit = false
		default:
			if !sawDigit {
				return 0
			}
			switch {
			case !inTime && r == 'D':
				minutes += value * 24 * 60
			case inTime && r == 'H':
				minutes += value * 60
			case inTime && r == 'M':
				minutes += value
			case inTime && r == 'S':
				seconds = value
			default:
				// Years, months, weeks never appear in video durations.
				return 0
			}
			value = 0
			sawDigit = false
		}
	}

	// The seconds component may exceed a minute ("PT90S"); whole minutes
	// carry over and the remainder rounds up.
	return minutes + (seconds+59)/60
}
