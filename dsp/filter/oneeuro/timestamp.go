package oneeuro

import (
	"strconv"
	"time"
)

// Timestamp is an optional sample time in seconds. The zero value is
// NoTimestamp.
type Timestamp struct {
	seconds float64
	valid   bool
}

// NoTimestamp marks a sample without a time. The filter then uses the last
// configured or estimated frequency.
var NoTimestamp = Timestamp{}

// At returns a timestamp of the given number of seconds.
func At(seconds float64) Timestamp {
	return Timestamp{seconds: seconds, valid: true}
}

// AtTime returns the timestamp of t in seconds since the Unix epoch,
// rounded once to the nearest float64. At present-day epochs that resolves
// about 0.24µs; for finer intervals pass At the time since stream start.
func AtTime(t time.Time) Timestamp {
	return At(float64(t.Unix()) + float64(t.Nanosecond())/float64(time.Second))
}

// Value returns the time in seconds and whether it is present.
func (t Timestamp) Value() (float64, bool) { return t.seconds, t.valid }

// IsSet reports whether the timestamp is present.
func (t Timestamp) IsSet() bool { return t.valid }

func (t Timestamp) String() string {
	if !t.valid {
		return "none"
	}

	return strconv.FormatFloat(t.seconds, 'g', -1, 64) + "s"
}
