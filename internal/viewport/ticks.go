package viewport

import (
	"fmt"
	"math"
)

// Tick is a ruler mark.
type Tick struct {
	X     float64
	Time  float64
	Label string
}

// NiceInterval rounds raw up to 1, 2 or 5 times a power of ten.
func NiceInterval(raw float64) float64 {
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0
	}
	base := math.Pow(10, math.Floor(math.Log10(raw)))
	switch ratio := raw / base; {
	case ratio <= 1:
		return base
	case ratio <= 2:
		return 2 * base
	case ratio <= 5:
		return 5 * base
	default:
		return 10 * base
	}
}

// maxTicks caps one ruler regardless of spacing.
const maxTicks = 4096

// Ticks returns ruler marks for m spaced at least minSpacing pixels apart.
// origin and Tick.Time are in mapper time; labels are relative to origin.
func Ticks(m Mapper, origin, minSpacing float64) []Tick {
	if m.Width <= 0 || m.Span() <= 0 || minSpacing <= 0 {
		return nil
	}
	interval := NiceInterval(minSpacing / m.Scale())
	if interval <= 0 {
		return nil
	}
	first := origin + math.Ceil((m.T0-origin)/interval)*interval
	var out []Tick
	for k := 0; k < maxTicks; k++ {
		t := first + float64(k)*interval
		if t > m.T1 {
			break
		}
		x := m.TimeToPixel(t)
		if x >= m.Width {
			break
		}
		out = append(out, Tick{X: x, Time: t, Label: FormatTimeLabel(t-origin, interval)})
	}
	return out
}

// FormatTimeLabel formats rel using the unit suited to interval.
func FormatTimeLabel(rel, interval float64) string {
	switch {
	case interval >= 1e9:
		return fmt.Sprintf("%.2f s", rel/1e9)
	case interval >= 1e6:
		return fmt.Sprintf("%.2f ms", rel/1e6)
	case interval >= 1e3:
		return fmt.Sprintf("%.2f µs", rel/1e3)
	default:
		return fmt.Sprintf("%.0f ns", rel)
	}
}

// FormatDuration formats nanoseconds with two decimals in the largest unit.
func FormatDuration(ns int64) string {
	switch {
	case ns >= 1e9:
		return fmt.Sprintf("%.2f s", float64(ns)/1e9)
	case ns >= 1e6:
		return fmt.Sprintf("%.2f ms", float64(ns)/1e6)
	case ns >= 1e3:
		return fmt.Sprintf("%.2f µs", float64(ns)/1e3)
	default:
		return fmt.Sprintf("%d ns", ns)
	}
}
