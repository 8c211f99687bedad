package entity

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	hourToken   = regexp.MustCompile(`(?i)(\d+)\s*h`)
	minuteToken = regexp.MustCompile(`(?i)(\d+)\s*m`)
)

// ParseDuration converts a free-text duration string to total minutes.
// Accepted shapes: "8h", "30m", "1h 30m", "2h30m", case-insensitive.
// A string carrying neither token parses to 0. Values are taken literally,
// no range validation.
func ParseDuration(duration string) int {
	total := 0

	if m := hourToken.FindStringSubmatch(duration); m != nil {
		hours, _ := strconv.Atoi(m[1])
		total += hours * 60
	}

	if m := minuteToken.FindStringSubmatch(duration); m != nil {
		minutes, _ := strconv.Atoi(m[1])
		total += minutes
	}

	return total
}

// FormatMinutes renders minutes as a duration string: "8h 30m", "8h", "30m".
// Zero and negative values render as "0m".
func FormatMinutes(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}

	hours := minutes / 60
	mins := minutes % 60

	if hours > 0 && mins > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dm", mins)
}
