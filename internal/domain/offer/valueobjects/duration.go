package valueobjects

// Duration describes for how long a discount-style offer keeps applying.
type Duration string

const (
	// DurationOnce applies to a single billing period.
	DurationOnce Duration = "once"
	// DurationRepeating applies for a fixed number of months.
	DurationRepeating Duration = "repeating"
	// DurationForever never stops applying.
	DurationForever Duration = "forever"
)

func (d Duration) String() string {
	return string(d)
}

var ValidDurations = map[Duration]bool{
	DurationOnce:      true,
	DurationRepeating: true,
	DurationForever:   true,
}
