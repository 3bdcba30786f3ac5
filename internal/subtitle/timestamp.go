package subtitle

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Pre-compiled regex for a single SRT timestamp
var timestampRegex = regexp.MustCompile(`^(\d+):(\d{1,2}):(\d{1,2})[,.](\d{1,3})$`)

// ParseTimestamp converts an SRT timestamp string to time.Duration.
// Supports both comma and dot as millisecond separators.
// Format: 00:00:00,000 or 00:00:00.000
func ParseTimestamp(ts string) (time.Duration, error) {
	m := timestampRegex.FindStringSubmatch(strings.TrimSpace(ts))
	if m == nil {
		return 0, fmt.Errorf("invalid timestamp %q", ts)
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	// "1,5" means 500ms, not 5ms
	millis, _ := strconv.Atoi(m[4] + strings.Repeat("0", 3-len(m[4])))

	if minutes > 59 || seconds > 59 {
		return 0, fmt.Errorf("invalid timestamp %q", ts)
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}

// FormatTimestamp converts a time.Duration to SRT timestamp format.
// Output format: 00:00:00,000
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}
