package party

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDuration indica que el texto de duración no se pudo interpretar.
var ErrInvalidDuration = errors.New("duración inválida: usa por ejemplo \"2h\", \"45m\" o \"1d 12h\"")

var durationTokenRegex = regexp.MustCompile(`(?i)^(\d+)\s*(d|h|m|s)`)

// ParseDuration interprets a human duration like "2h", "45m", "1d 12h" or
// "2h30m". Units are days, hours, minutes and seconds; tokens may be
// separated by spaces. The whole string must be consumed.
func ParseDuration(input string) (time.Duration, error) {
	rest := strings.TrimSpace(input)
	if rest == "" {
		return 0, ErrInvalidDuration
	}

	var total time.Duration
	for rest != "" {
		m := durationTokenRegex.FindStringSubmatch(rest)
		if m == nil {
			return 0, ErrInvalidDuration
		}

		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, ErrInvalidDuration
		}

		switch strings.ToLower(m[2]) {
		case "d":
			total += time.Duration(n) * 24 * time.Hour
		case "h":
			total += time.Duration(n) * time.Hour
		case "m":
			total += time.Duration(n) * time.Minute
		case "s":
			total += time.Duration(n) * time.Second
		}

		rest = strings.TrimSpace(rest[len(m[0]):])
	}

	if total <= 0 {
		return 0, ErrInvalidDuration
	}
	return total, nil
}

// FormatDuration renders a duration for user-facing messages, e.g. "1d 2h 30m".
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0m"
	}

	var parts []string
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute

	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	return strings.Join(parts, " ")
}
