// Package threshold maps deviation magnitudes onto severity tiers.
package threshold

// Tier is the severity bucket for a metric deviation.
type Tier int

const (
	Normal Tier = iota
	Warning
	Danger
)

// String returns the style class name for the tier.
func (t Tier) String() string {
	switch t {
	case Normal:
		return "normal"
	case Warning:
		return "warning"
	case Danger:
		return "danger"
	default:
		return "unknown"
	}
}

// MarshalText encodes the tier by its class name.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Classify returns Danger when magnitude >= danger, Warning when
// magnitude >= warning, and Normal otherwise. Both bounds are inclusive.
func Classify(magnitude, warning, danger float64) Tier {
	switch {
	case magnitude >= danger:
		return Danger
	case magnitude >= warning:
		return Warning
	default:
		return Normal
	}
}

// Pair is the warning/danger threshold pair for one metric family.
type Pair struct {
	Warning float64
	Danger  float64
}

// Classify applies the pair's thresholds to magnitude.
func (p Pair) Classify(magnitude float64) Tier {
	return Classify(magnitude, p.Warning, p.Danger)
}

// Thresholds of the monitored grid, applied to the absolute deviation.
var (
	Voltage   = Pair{Warning: 15, Danger: 25}   // volts
	Latency   = Pair{Warning: 120, Danger: 200} // milliseconds
	Frequency = Pair{Warning: 0.3, Danger: 0.5} // hertz
)
