package transcript

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrMalformedTimestamp is returned when a timestamp does not split into
	// two or three integer fields.
	ErrMalformedTimestamp = errors.New("malformed timestamp")

	// ErrTimestampRange is returned when a minutes or seconds field is 60 or
	// more, or when the total does not fit in a time.Duration.
	ErrTimestampRange = errors.New("timestamp out of range (minutes/seconds 0-59)")
)

// TimestampError reports which input failed validation and why.
type TimestampError struct {
	Value string
	Err   error
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("%v: %q (expected mm:ss or hh:mm:ss)", e.Err, e.Value)
}

func (e *TimestampError) Unwrap() error {
	return e.Err
}

// largest whole-second count a time.Duration can hold
const maxSeconds = math.MaxInt64 / int64(time.Second)

// ParseTimestamp converts "mm:ss" or "hh:mm:ss" to a duration since the start
// of the media. Hours are not bounded, and neither are minutes in the
// two-field form, beyond what a time.Duration can represent. Fields may use
// any Unicode decimal digits.
func ParseTimestamp(s string) (time.Duration, error) {
	parts := strings.Split(asciiDigits(s), ":")
	fields := make([]int64, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return 0, &TimestampError{Value: s, Err: ErrMalformedTimestamp}
		}
		fields = append(fields, n)
	}

	var h, m, sec int64
	switch len(fields) {
	case 2:
		m, sec = fields[0], fields[1]
		if sec >= 60 {
			return 0, &TimestampError{Value: s, Err: ErrTimestampRange}
		}
	case 3:
		h, m, sec = fields[0], fields[1], fields[2]
		if m >= 60 || sec >= 60 {
			return 0, &TimestampError{Value: s, Err: ErrTimestampRange}
		}
	default:
		return 0, &TimestampError{Value: s, Err: ErrMalformedTimestamp}
	}

	total, ok := totalSeconds(h, m, sec)
	if !ok {
		return 0, &TimestampError{Value: s, Err: ErrTimestampRange}
	}
	return time.Duration(total) * time.Second, nil
}

// totalSeconds sums the fields, failing when the result would not fit in a
// time.Duration.
func totalSeconds(h, m, s int64) (int64, bool) {
	if h > maxSeconds/3600 || h < -maxSeconds/3600 ||
		m > maxSeconds/60 || m < -maxSeconds/60 ||
		s > maxSeconds || s < -maxSeconds {
		return 0, false
	}
	total := h*3600 + m*60 + s
	if total > maxSeconds || total < -maxSeconds {
		return 0, false
	}
	return total, true
}

// FormatClock renders d as HH:MM:SS, dropping any sub-second part.
func FormatClock(d time.Duration) string {
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
