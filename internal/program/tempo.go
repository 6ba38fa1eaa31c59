package program

import (
	"strconv"
	"strings"

	"github.com/lowaak/smart-trainer/rest-timer-app/internal/resttimer"
)

// ParseTempo reads a tempo written as "312", "3120" or "3-1-2".
// Only the first three positions are used. A zero or unreadable position takes
// the default for that position. ok is false when s is not a tempo at all, in
// which case the default tempo is returned.
func ParseTempo(s string) (resttimer.TempoDescriptor, bool) {
	s = strings.TrimSpace(s)

	var parts []string
	switch {
	case strings.Contains(s, "-"):
		parts = strings.Split(s, "-")
		if len(parts) < 3 {
			return resttimer.DefaultTempo(), false
		}
	case (len(s) == 3 || len(s) == 4) && isDigits(s):
		parts = strings.Split(s, "")
	default:
		return resttimer.DefaultTempo(), false
	}

	return resttimer.TempoDescriptor{
		EccentricSeconds:  positionOrDefault(parts[0], resttimer.DefaultEccentricSeconds),
		PauseSeconds:      positionOrDefault(parts[1], resttimer.DefaultPauseSeconds),
		ConcentricSeconds: positionOrDefault(parts[2], resttimer.DefaultConcentricSeconds),
	}, true
}

func positionOrDefault(part string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(part))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
