package timestamp

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata" // zone database travels with the binary
)

// Zone is the IANA name of the US Pacific zone every message is normalized into.
const Zone = "America/Los_Angeles"

// Supported calendar range of a normalized date.
const (
	MinYear = 1
	MaxYear = 9999
)

// maxAbsUnix is well past both calendar bounds yet far from int64 overflow.
const maxAbsUnix = 1 << 40

// ErrTimestampOutOfRange indicates a timestamp whose local date cannot be represented.
var ErrTimestampOutOfRange = errors.New("timestamp out of range")

var pacific = mustLoadLocation(Zone)

// Date is a zone-local calendar date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return compareInt(d.Year, o.Year)
	case d.Month != o.Month:
		return compareInt(int(d.Month), int(o.Month))
	default:
		return compareInt(d.Day, o.Day)
	}
}

// Time is a zone-local time of day.
type Time struct {
	Hour   int
	Minute int
	Second int
}

// String formats the time as HH:MM:SS.
func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Stamp is the normalized form of a raw timestamp.
type Stamp struct {
	Date    Date
	Time    Time
	Weekday int // 0 = Sunday ... 6 = Saturday
}

// Normalize converts a Unix timestamp in seconds to US Pacific local time,
// applying that zone's daylight saving rules for the date in question.
func Normalize(ts int64) (Stamp, error) {
	// time.Unix overflows silently far outside the calendar range
	if ts < -maxAbsUnix || ts > maxAbsUnix {
		return Stamp{}, fmt.Errorf("%w: %d", ErrTimestampOutOfRange, ts)
	}

	t := time.Unix(ts, 0).In(pacific)
	if t.Year() < MinYear || t.Year() > MaxYear {
		return Stamp{}, fmt.Errorf("%w: %d", ErrTimestampOutOfRange, ts)
	}

	return Stamp{
		Date: Date{
			Year:  t.Year(),
			Month: t.Month(),
			Day:   t.Day(),
		},
		Time: Time{
			Hour:   t.Hour(),
			Minute: t.Minute(),
			Second: t.Second(),
		},
		Weekday: SundayFirst(MondayFirst(t.Weekday())),
	}, nil
}

// MondayFirst maps a weekday onto the 0-6 convention where 0 is Monday.
func MondayFirst(w time.Weekday) int {
	return (int(w) + 6) % 7
}

// SundayFirst remaps a Monday-first weekday index (0 = Monday) to a
// Sunday-first one (0 = Sunday).
func SundayFirst(mondayFirst int) int {
	return (mondayFirst + 1) % 7
}

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("failed to load time zone %s: %v", name, err))
	}

	return loc
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
