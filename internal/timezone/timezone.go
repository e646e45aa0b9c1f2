package timezone

import "time"

const DefaultTimezone = "UTC"

const (
	DateLayout        = "2006-01-02"
	TimeLayout        = "15:04"
	TimeSecondsLayout = "15:04:05"
	DateTimeLayout    = DateLayout + " " + TimeLayout
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.UTC
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ParseDateTime combines a YYYY-MM-DD date and an HH:MM time in loc.
// HH:MM:SS is accepted too; the seconds are validated and then dropped.
func ParseDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	if len(clock) == len(TimeSecondsLayout) {
		t, err := time.ParseInLocation(DateLayout+" "+TimeSecondsLayout, date+" "+clock, loc)
		if err != nil {
			return time.Time{}, err
		}
		return t.Add(-time.Duration(t.Second()) * time.Second), nil
	}
	return time.ParseInLocation(DateTimeLayout, date+" "+clock, loc)
}
