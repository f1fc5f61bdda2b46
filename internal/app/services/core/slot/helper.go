package slot

import (
	"fmt"
	"strconv"
	"strings"
)

// parseClock accepts "HH:MM" and the "HH.MM" variant some profiles carry.
func parseClock(s string) (clock, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", ":")
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return clock{}, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return clock{}, false
	}
	return clock{H: h, M: m}, true
}

func parseWindow(startOfDay, endOfDay string) (dayWindow, error) {
	start, ok := parseClock(startOfDay)
	if !ok {
		return dayWindow{}, fmt.Errorf("invalid start of day '%s'", startOfDay)
	}
	end, ok := parseClock(endOfDay)
	if !ok {
		return dayWindow{}, fmt.Errorf("invalid end of day '%s'", endOfDay)
	}
	return dayWindow{Start: start, End: end}, nil
}
