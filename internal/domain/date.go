package domain

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// DateOf truncates t to its UTC civil date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: malformed date %q", ErrValidation, s)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// DaysBetween counts calendar days from a to b; negative when b precedes a.
func DaysBetween(a, b time.Time) int64 {
	return (DateOf(b).Unix() - DateOf(a).Unix()) / 86400
}
