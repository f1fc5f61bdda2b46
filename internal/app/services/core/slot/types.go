package slot

import "fmt"

// clock holds a local wall time (hour and minute).
type clock struct {
	H int
	M int
}

func (c clock) minutes() int {
	return c.H*60 + c.M
}

func (c clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.H, c.M)
}

func clockFromMinutes(minutes int) clock {
	return clock{H: minutes / 60, M: minutes % 60}
}

// dayWindow defines an inclusive start and exclusive end wall-clock window for a single day.
type dayWindow struct {
	Start clock
	End   clock
}
