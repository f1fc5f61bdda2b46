package slot

import (
	"fmt"
	"time"
)

// GenerateSlots lists the start labels of every interval-long slot that fits
// in [startOfDay, endOfDay). A trailing partial slot is dropped and an empty
// or inverted window yields no slots.
func GenerateSlots(startOfDay, endOfDay string, interval time.Duration) ([]string, error) {
	window, err := parseWindow(startOfDay, endOfDay)
	if err != nil {
		return nil, err
	}
	step := int(interval / time.Minute)
	if step <= 0 {
		return nil, fmt.Errorf("slot interval must be at least one minute, got %s", interval)
	}

	slots := []string{}
	for start := window.Start.minutes(); start+step <= window.End.minutes(); start += step {
		slots = append(slots, clockFromMinutes(start).String())
	}
	return slots, nil
}

// IsValidSlot reports whether label is one of the slots generated for the window.
func IsValidSlot(startOfDay, endOfDay string, interval time.Duration, label string) bool {
	requested, ok := parseClock(label)
	if !ok {
		return false
	}
	slots, err := GenerateSlots(startOfDay, endOfDay, interval)
	if err != nil {
		return false
	}
	for _, slot := range slots {
		if slot == requested.String() {
			return true
		}
	}
	return false
}

// AvailableSlots returns the generated slots minus the taken labels, in order.
func AvailableSlots(startOfDay, endOfDay string, interval time.Duration, taken []string) ([]string, error) {
	slots, err := GenerateSlots(startOfDay, endOfDay, interval)
	if err != nil {
		return nil, err
	}

	booked := make(map[string]struct{}, len(taken))
	for _, label := range taken {
		if c, ok := parseClock(label); ok {
			booked[c.String()] = struct{}{}
		}
	}

	available := make([]string, 0, len(slots))
	for _, slot := range slots {
		if _, ok := booked[slot]; !ok {
			available = append(available, slot)
		}
	}
	return available, nil
}

// NormalizeLabel rewrites a time-of-day into the canonical "HH:MM" slot label.
func NormalizeLabel(label string) (string, bool) {
	c, ok := parseClock(label)
	if !ok {
		return "", false
	}
	return c.String(), true
}
